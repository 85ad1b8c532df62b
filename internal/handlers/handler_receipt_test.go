package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/swimhall/receipt_management_app/internal/apperrors"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
	portssvc "github.com/swimhall/receipt_management_app/internal/core/ports/services"
	"github.com/swimhall/receipt_management_app/internal/core/services"
	"github.com/swimhall/receipt_management_app/internal/dto"
	"github.com/swimhall/receipt_management_app/internal/handlers"
	"github.com/swimhall/receipt_management_app/pkg/config"
)

// --- Mock ReceiptService ---
type MockReceiptService struct {
	mock.Mock
}

var _ portssvc.ReceiptSvcFacade = (*MockReceiptService)(nil)

func (m *MockReceiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, actor domain.Actor) (*domain.Receipt, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) GetReceiptByNo(ctx context.Context, receiptNo string) (*domain.Receipt, error) {
	args := m.Called(ctx, receiptNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) ListDailyReceipts(ctx context.Context, day string, operatorID string) ([]domain.Receipt, error) {
	args := m.Called(ctx, day, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) VerifyReceipt(ctx context.Context, receiptID string, actor domain.Actor) (*domain.Receipt, error) {
	args := m.Called(ctx, receiptID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

// --- Test Suite ---
type ReceiptHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockReceiptService *MockReceiptService
	jwtSecret          string
	operatorID         string
	displayLoc         *time.Location
}

func (suite *ReceiptHandlerTestSuite) generateTestToken(capabilities ...string) string {
	claims := jwt.MapClaims{
		"sub":  suite.operatorID,
		"name": "Front Desk",
		"caps": capabilities,
		"exp":  jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		"iat":  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ReceiptHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.operatorID = uuid.NewString()
	suite.mockReceiptService = new(MockReceiptService)

	suite.displayLoc = time.FixedZone("UTC+8", 8*60*60)

	cfg := &config.Config{
		JWTSecret:       suite.jwtSecret,
		RateLimit:       "1000-S",
		IsProduction:    true, // keeps swagger routes out of the test router
		DisplayLocation: suite.displayLoc,
	}
	container := &portssvc.ServiceContainer{Receipt: suite.mockReceiptService}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *ReceiptHandlerTestSuite) doRequest(method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ReceiptHandlerTestSuite) TestCreateReceipt_Success() {
	itemID := uuid.NewString()
	created := &domain.Receipt{
		ReceiptID:       uuid.NewString(),
		ReceiptNo:       "SWIM-20260901-0001",
		ItemID:          itemID,
		ItemName:        "Adult Admission",
		Amount:          decimal.NewFromInt(120),
		AmountLegalText: "壹佰貳拾元整",
		OperatorID:      suite.operatorID,
		Status:          domain.ReceiptActive,
	}

	suite.mockReceiptService.On("CreateReceipt", mock.Anything, mock.AnythingOfType("dto.CreateReceiptRequest"), mock.MatchedBy(func(a domain.Actor) bool {
		return a.OperatorID == suite.operatorID && a.Can(domain.CapCreateReceipt)
	})).Return(created, nil).Once()

	body, _ := json.Marshal(dto.CreateReceiptRequest{ItemID: itemID, Amount: decimal.NewFromInt(120)})
	token := suite.generateTestToken("create-receipt")
	w := suite.doRequest(http.MethodPost, "/api/v1/receipts", token, body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ReceiptResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("SWIM-20260901-0001", resp.ReceiptNo)
	suite.Equal("壹佰貳拾元整", resp.AmountLegalText)
	suite.mockReceiptService.AssertExpectations(suite.T())
}

func (suite *ReceiptHandlerTestSuite) TestCreateReceipt_MissingToken() {
	body, _ := json.Marshal(dto.CreateReceiptRequest{ItemID: uuid.NewString(), Amount: decimal.NewFromInt(120)})
	w := suite.doRequest(http.MethodPost, "/api/v1/receipts", "", body)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *ReceiptHandlerTestSuite) TestCreateReceipt_Forbidden() {
	suite.mockReceiptService.On("CreateReceipt", mock.Anything, mock.AnythingOfType("dto.CreateReceiptRequest"), mock.AnythingOfType("domain.Actor")).
		Return(nil, apperrors.ErrForbidden).Once()

	body, _ := json.Marshal(dto.CreateReceiptRequest{ItemID: uuid.NewString(), Amount: decimal.NewFromInt(120)})
	token := suite.generateTestToken("view-reports")
	w := suite.doRequest(http.MethodPost, "/api/v1/receipts", token, body)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ReceiptHandlerTestSuite) TestCreateReceipt_InvalidBody() {
	token := suite.generateTestToken("create-receipt")
	w := suite.doRequest(http.MethodPost, "/api/v1/receipts", token, []byte(`{"amount":`))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReceiptService.AssertNotCalled(suite.T(), "CreateReceipt", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReceiptHandlerTestSuite) TestGetReceipt_NotFound() {
	receiptID := uuid.NewString()
	suite.mockReceiptService.On("GetReceiptByID", mock.Anything, receiptID).Return(nil, apperrors.ErrNotFound).Once()

	token := suite.generateTestToken()
	w := suite.doRequest(http.MethodGet, "/api/v1/receipts/"+receiptID, token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ReceiptHandlerTestSuite) TestVerifyReceipt_Conflict() {
	receiptID := uuid.NewString()
	suite.mockReceiptService.On("VerifyReceipt", mock.Anything, receiptID, mock.AnythingOfType("domain.Actor")).
		Return(nil, services.ErrAlreadyVerified).Once()

	token := suite.generateTestToken("verify-receipt")
	w := suite.doRequest(http.MethodPost, "/api/v1/receipts/"+receiptID+"/verify", token, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ReceiptHandlerTestSuite) TestListDailyReceipts_DefaultsToDisplayDay() {
	day := time.Now().In(suite.displayLoc).Format("2006-01-02")
	suite.mockReceiptService.On("ListDailyReceipts", mock.Anything, day, "").
		Return([]domain.Receipt{}, nil).Once()

	token := suite.generateTestToken()
	w := suite.doRequest(http.MethodGet, "/api/v1/receipts", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReceiptService.AssertExpectations(suite.T())
}

func (suite *ReceiptHandlerTestSuite) TestGetReceiptByNo_Success() {
	receipt := &domain.Receipt{
		ReceiptID: uuid.NewString(),
		ReceiptNo: "SWIM-20260901-0042",
		Status:    domain.ReceiptActive,
	}
	suite.mockReceiptService.On("GetReceiptByNo", mock.Anything, receipt.ReceiptNo).Return(receipt, nil).Once()

	token := suite.generateTestToken()
	w := suite.doRequest(http.MethodGet, "/api/v1/receipts/by-no/"+receipt.ReceiptNo, token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ReceiptResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(receipt.ReceiptNo, resp.ReceiptNo)
}

func TestReceiptHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReceiptHandlerTestSuite))
}
