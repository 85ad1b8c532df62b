package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/swimhall/receipt_management_app/internal/apperrors"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
	portssvc "github.com/swimhall/receipt_management_app/internal/core/ports/services"
	"github.com/swimhall/receipt_management_app/internal/core/services"
	"github.com/swimhall/receipt_management_app/internal/dto"
)

type FeeItemServiceTestSuite struct {
	suite.Suite
	mockFeeItemRepo *MockFeeItemRepository
	service         portssvc.FeeItemSvcFacade

	manager domain.Actor
}

func (suite *FeeItemServiceTestSuite) SetupTest() {
	suite.mockFeeItemRepo = new(MockFeeItemRepository)
	suite.service = services.NewFeeItemService(suite.mockFeeItemRepo)

	suite.manager = domain.Actor{
		OperatorID:   uuid.NewString(),
		DisplayName:  "Manager",
		Capabilities: []domain.Capability{domain.CapManageItems},
	}
}

func (suite *FeeItemServiceTestSuite) TestCreateFeeItem_Success() {
	ctx := context.Background()
	req := dto.CreateFeeItemRequest{
		ItemCode:     "ADM-CHILD",
		ItemName:     " Child Admission ",
		Category:     "ADMISSION",
		DefaultPrice: decimal.NewFromInt(60),
	}

	suite.mockFeeItemRepo.On("SaveFeeItem", ctx, mock.AnythingOfType("domain.FeeItem")).Return(nil).Once()

	item, err := suite.service.CreateFeeItem(ctx, req, suite.manager)

	suite.Require().NoError(err)
	suite.NotEmpty(item.ItemID)
	suite.Equal("Child Admission", item.ItemName)
	suite.Equal(domain.CategoryAdmission, item.Category)
	suite.True(item.IsActive)
	suite.Equal(suite.manager.OperatorID, item.CreatedBy)
	suite.mockFeeItemRepo.AssertExpectations(suite.T())
}

func (suite *FeeItemServiceTestSuite) TestCreateFeeItem_MissingCapability() {
	ctx := context.Background()
	noCaps := domain.Actor{OperatorID: uuid.NewString()}

	_, err := suite.service.CreateFeeItem(ctx, dto.CreateFeeItemRequest{Category: "ADMISSION"}, noCaps)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *FeeItemServiceTestSuite) TestCreateFeeItem_UnknownCategory() {
	ctx := context.Background()
	req := dto.CreateFeeItemRequest{ItemCode: "X", ItemName: "X", Category: "SNACKS"}

	_, err := suite.service.CreateFeeItem(ctx, req, suite.manager)

	suite.Require().ErrorIs(err, services.ErrUnknownCategory)
	suite.mockFeeItemRepo.AssertNotCalled(suite.T(), "SaveFeeItem", mock.Anything, mock.Anything)
}

func (suite *FeeItemServiceTestSuite) TestCreateFeeItem_UnknownIdentityTier() {
	ctx := context.Background()
	req := dto.CreateFeeItemRequest{ItemCode: "X", ItemName: "X", Category: "ADMISSION", IdentityTier: "ALUMNI"}

	_, err := suite.service.CreateFeeItem(ctx, req, suite.manager)

	suite.Require().ErrorIs(err, services.ErrUnknownTier)
	suite.mockFeeItemRepo.AssertNotCalled(suite.T(), "SaveFeeItem", mock.Anything, mock.Anything)
}

func (suite *FeeItemServiceTestSuite) TestUpdateFeeItem_UnknownIdentityTier() {
	ctx := context.Background()
	existing := domain.FeeItem{
		ItemID:   uuid.NewString(),
		ItemCode: "ADM-ADULT",
		Category: domain.CategoryAdmission,
		IsActive: true,
	}
	tier := "ALUMNI"
	req := dto.UpdateFeeItemRequest{IdentityTier: &tier}

	suite.mockFeeItemRepo.On("FindFeeItemByID", ctx, existing.ItemID).Return(&existing, nil).Once()

	_, err := suite.service.UpdateFeeItem(ctx, existing.ItemID, req, suite.manager)

	suite.Require().ErrorIs(err, services.ErrUnknownTier)
	suite.mockFeeItemRepo.AssertNotCalled(suite.T(), "UpdateFeeItem", mock.Anything, mock.Anything)
}

func (suite *FeeItemServiceTestSuite) TestCreateFeeItem_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateFeeItemRequest{ItemCode: "ADM-ADULT", ItemName: "Adult", Category: "ADMISSION"}

	suite.mockFeeItemRepo.On("SaveFeeItem", ctx, mock.AnythingOfType("domain.FeeItem")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateFeeItem(ctx, req, suite.manager)

	suite.Require().ErrorIs(err, services.ErrItemCodeTaken)
}

func (suite *FeeItemServiceTestSuite) TestUpdateFeeItem_PartialUpdate() {
	ctx := context.Background()
	existing := domain.FeeItem{
		ItemID:       uuid.NewString(),
		ItemCode:     "ADM-ADULT",
		ItemName:     "Adult Admission",
		Category:     domain.CategoryAdmission,
		DefaultPrice: decimal.NewFromInt(120),
		IsActive:     true,
	}
	newPrice := decimal.NewFromInt(150)
	deactivate := false
	req := dto.UpdateFeeItemRequest{DefaultPrice: &newPrice, IsActive: &deactivate}

	suite.mockFeeItemRepo.On("FindFeeItemByID", ctx, existing.ItemID).Return(&existing, nil).Once()
	suite.mockFeeItemRepo.On("UpdateFeeItem", ctx, mock.AnythingOfType("domain.FeeItem")).Return(nil).Once()

	updated, err := suite.service.UpdateFeeItem(ctx, existing.ItemID, req, suite.manager)

	suite.Require().NoError(err)
	suite.True(updated.DefaultPrice.Equal(newPrice))
	suite.False(updated.IsActive)
	suite.Equal("Adult Admission", updated.ItemName)
	suite.Equal(suite.manager.OperatorID, updated.LastUpdatedBy)
}

func (suite *FeeItemServiceTestSuite) TestUpdateFeeItem_NotFound() {
	ctx := context.Background()
	itemID := uuid.NewString()

	suite.mockFeeItemRepo.On("FindFeeItemByID", ctx, itemID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateFeeItem(ctx, itemID, dto.UpdateFeeItemRequest{}, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *FeeItemServiceTestSuite) TestListActiveFeeItems_FiltersByCategory() {
	ctx := context.Background()
	items := []domain.FeeItem{{ItemID: uuid.NewString(), Category: domain.CategoryRental}}

	suite.mockFeeItemRepo.On("ListActiveFeeItems", ctx, domain.CategoryRental).Return(items, nil).Once()

	result, err := suite.service.ListActiveFeeItems(ctx, domain.CategoryRental)

	suite.Require().NoError(err)
	suite.Len(result, 1)
}

func TestFeeItemServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeeItemServiceTestSuite))
}
