package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swimhall/receipt_management_app/internal/apperrors"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
	portsrepo "github.com/swimhall/receipt_management_app/internal/core/ports/repositories"
	portssvc "github.com/swimhall/receipt_management_app/internal/core/ports/services"
	"github.com/swimhall/receipt_management_app/internal/dto"
	"github.com/swimhall/receipt_management_app/internal/middleware"
)

var (
	ErrItemCodeTaken   = fmt.Errorf("%w: item code is already in use", apperrors.ErrDuplicate)
	ErrUnknownCategory = fmt.Errorf("%w: unknown fee item category", apperrors.ErrValidation)
	ErrUnknownTier     = fmt.Errorf("%w: unknown identity tier", apperrors.ErrValidation)
)

// feeItemService manages the fee item catalog.
type feeItemService struct {
	feeItemRepo portsrepo.FeeItemRepositoryFacade
}

// NewFeeItemService creates a new FeeItemService.
func NewFeeItemService(feeItemRepo portsrepo.FeeItemRepositoryFacade) portssvc.FeeItemSvcFacade {
	return &feeItemService{feeItemRepo: feeItemRepo}
}

var _ portssvc.FeeItemSvcFacade = (*feeItemService)(nil)

// parseCategory maps the wire value onto the closed category set.
func parseCategory(value string) (domain.FeeItemCategory, error) {
	switch domain.FeeItemCategory(value) {
	case domain.CategoryAdmission, domain.CategoryPass, domain.CategoryCourse, domain.CategoryRental, domain.CategoryOther:
		return domain.FeeItemCategory(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, value)
	}
}

// parseIdentityTier maps the wire value onto the closed tier set. The tier is
// optional, so an empty value passes through unchanged.
func parseIdentityTier(value string) (domain.IdentityTier, error) {
	switch domain.IdentityTier(value) {
	case "", domain.TierStudent, domain.TierStaff, domain.TierExternal, domain.TierDiscount:
		return domain.IdentityTier(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, value)
	}
}

// CreateFeeItem adds a new catalog entry.
func (s *feeItemService) CreateFeeItem(ctx context.Context, req dto.CreateFeeItemRequest, actor domain.Actor) (*domain.FeeItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Can(domain.CapManageItems) {
		return nil, apperrors.ErrForbidden
	}

	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	tier, err := parseIdentityTier(req.IdentityTier)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := domain.FeeItem{
		ItemID:       uuid.NewString(),
		ItemCode:     strings.TrimSpace(req.ItemCode),
		ItemName:     strings.TrimSpace(req.ItemName),
		Category:     category,
		IdentityTier: tier,
		DefaultPrice: req.DefaultPrice,
		Description:  req.Description,
		IsActive:     true,
		SortOrder:    req.SortOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.OperatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.OperatorID,
		},
	}

	if err := s.feeItemRepo.SaveFeeItem(ctx, item); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrItemCodeTaken, item.ItemCode)
		}
		logger.Error("Failed to save fee item", slog.String("item_code", item.ItemCode), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Fee item created", slog.String("item_id", item.ItemID), slog.String("item_code", item.ItemCode))
	return &item, nil
}

// UpdateFeeItem edits an existing catalog entry. Receipts keep the item name
// they captured at creation, so renames never rewrite history.
func (s *feeItemService) UpdateFeeItem(ctx context.Context, itemID string, req dto.UpdateFeeItemRequest, actor domain.Actor) (*domain.FeeItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Can(domain.CapManageItems) {
		return nil, apperrors.ErrForbidden
	}

	item, err := s.feeItemRepo.FindFeeItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.ItemName != nil {
		item.ItemName = strings.TrimSpace(*req.ItemName)
	}
	if req.Category != nil {
		category, err := parseCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		item.Category = category
	}
	if req.IdentityTier != nil {
		tier, err := parseIdentityTier(*req.IdentityTier)
		if err != nil {
			return nil, err
		}
		item.IdentityTier = tier
	}
	if req.DefaultPrice != nil {
		item.DefaultPrice = *req.DefaultPrice
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}
	item.LastUpdatedAt = time.Now().UTC()
	item.LastUpdatedBy = actor.OperatorID

	if err := s.feeItemRepo.UpdateFeeItem(ctx, *item); err != nil {
		logger.Error("Failed to update fee item", slog.String("item_id", itemID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Fee item updated", slog.String("item_id", itemID))
	return item, nil
}

// GetFeeItemByID retrieves one catalog entry.
func (s *feeItemService) GetFeeItemByID(ctx context.Context, itemID string) (*domain.FeeItem, error) {
	return s.feeItemRepo.FindFeeItemByID(ctx, itemID)
}

// ListActiveFeeItems lists active entries ordered for display.
func (s *feeItemService) ListActiveFeeItems(ctx context.Context, category domain.FeeItemCategory) ([]domain.FeeItem, error) {
	return s.feeItemRepo.ListActiveFeeItems(ctx, category)
}
