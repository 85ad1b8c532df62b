package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/swimhall/receipt_management_app/internal/apperrors"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
	portsrepo "github.com/swimhall/receipt_management_app/internal/core/ports/repositories"
	portssvc "github.com/swimhall/receipt_management_app/internal/core/ports/services"
	"github.com/swimhall/receipt_management_app/internal/core/services"
	"github.com/swimhall/receipt_management_app/internal/dto"
)

// --- Mock PaymentRecordRepository ---
type MockPaymentRecordRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRecordRepositoryFacade = (*MockPaymentRecordRepository)(nil)

func (m *MockPaymentRecordRepository) SavePaymentRecord(ctx context.Context, record domain.PaymentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPaymentRecordRepository) ListPaymentRecords(ctx context.Context, operatorID string, from, to time.Time) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, operatorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}

// --- Mock ReceiptService (as used by the reporting batch verifier) ---
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
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReceiptRepo *MockReceiptRepository
	mockReceiptSvc  *MockReceiptService
	mockPaymentRepo *MockPaymentRecordRepository
	service         portssvc.ReportingSvcFacade

	cashier    domain.Actor
	operatorID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReceiptRepo = new(MockReceiptRepository)
	suite.mockReceiptSvc = new(MockReceiptService)
	suite.mockPaymentRepo = new(MockPaymentRecordRepository)
	suite.service = services.NewReportingService(suite.mockReceiptRepo, suite.mockReceiptSvc, suite.mockPaymentRepo, time.UTC)

	suite.cashier = domain.Actor{
		OperatorID:   uuid.NewString(),
		DisplayName:  "Cashier",
		Capabilities: []domain.Capability{domain.CapVerifyReceipt, domain.CapViewReports},
	}
	suite.operatorID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) activeReceipt(amount int64, verified bool) domain.Receipt {
	return domain.Receipt{
		ReceiptID:  uuid.NewString(),
		OperatorID: suite.operatorID,
		Amount:     decimal.NewFromInt(amount),
		Status:     domain.ReceiptActive,
		IsVerified: verified,
	}
}

func (suite *ReportingServiceTestSuite) TestVerifyBatch_CountsOnlySuccesses() {
	ctx := context.Background()
	ids := []string{"r1", "r2", "r3"}

	suite.mockReceiptSvc.On("VerifyReceipt", ctx, "r1", suite.cashier).Return(&domain.Receipt{}, nil).Once()
	suite.mockReceiptSvc.On("VerifyReceipt", ctx, "r2", suite.cashier).Return(nil, services.ErrAlreadyVerified).Once()
	suite.mockReceiptSvc.On("VerifyReceipt", ctx, "r3", suite.cashier).Return(&domain.Receipt{}, nil).Once()

	count, err := suite.service.VerifyBatch(ctx, ids, suite.cashier)

	suite.Require().NoError(err)
	suite.Equal(2, count)
	suite.mockReceiptSvc.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestVerifyBatch_MissingCapability() {
	ctx := context.Background()
	noCaps := domain.Actor{OperatorID: uuid.NewString()}

	_, err := suite.service.VerifyBatch(ctx, []string{"r1"}, noCaps)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReceiptSvc.AssertNotCalled(suite.T(), "VerifyReceipt", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestVerificationSummary_PartitionsActiveReceipts() {
	ctx := context.Background()
	verified := suite.activeReceipt(100, true)
	unverified := suite.activeReceipt(50, false)
	voided := suite.activeReceipt(30, false)
	voided.Status = domain.ReceiptVoided

	suite.mockReceiptRepo.On("ListReceiptsByDateRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), suite.operatorID).
		Return([]domain.Receipt{verified, unverified, voided}, nil).Once()

	summary, err := suite.service.VerificationSummary(ctx, suite.operatorID, 2026, time.September)

	suite.Require().NoError(err)
	suite.Equal(2, summary.TotalCount)
	suite.True(summary.TotalAmount.Equal(decimal.NewFromInt(150)))
	suite.Equal(1, summary.VerifiedCount)
	suite.True(summary.VerifiedAmount.Equal(decimal.NewFromInt(100)))
	suite.Equal(1, summary.UnverifiedCount)
	suite.True(summary.UnverifiedAmount.Equal(decimal.NewFromInt(50)))
	suite.Require().Len(summary.UnverifiedReceipts, 1)
	suite.Equal(unverified.ReceiptID, summary.UnverifiedReceipts[0].ReceiptID)
}

func (suite *ReportingServiceTestSuite) TestCreatePaymentRecord_RecordsShortfall() {
	ctx := context.Background()
	verified := suite.activeReceipt(300, true)

	suite.mockReceiptRepo.On("ListReceiptsByDateRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), suite.operatorID).
		Return([]domain.Receipt{verified}, nil).Once()
	suite.mockPaymentRepo.On("SavePaymentRecord", ctx, mock.AnythingOfType("domain.PaymentRecord")).Return(nil).Once()

	record, err := suite.service.CreatePaymentRecord(ctx, suite.operatorID, 2026, time.September, decimal.NewFromInt(290), "till short", suite.cashier)

	suite.Require().NoError(err)
	suite.True(record.SystemAmount.Equal(decimal.NewFromInt(300)))
	suite.True(record.ActualAmount.Equal(decimal.NewFromInt(290)))
	suite.True(record.Difference.Equal(decimal.NewFromInt(-10)))
	suite.Equal(suite.cashier.OperatorID, record.ReceivedBy)
	suite.Equal("till short", record.Notes)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCreatePaymentRecord_MissingCapability() {
	ctx := context.Background()
	noCaps := domain.Actor{OperatorID: uuid.NewString()}

	_, err := suite.service.CreatePaymentRecord(ctx, suite.operatorID, 2026, time.September, decimal.Zero, "", noCaps)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ReportingServiceTestSuite) TestListPaymentRecords_WindowFollowsDisplayTimezone() {
	ctx := context.Background()
	loc := time.FixedZone("UTC+8", 8*60*60)
	svc := services.NewReportingService(suite.mockReceiptRepo, suite.mockReceiptSvc, suite.mockPaymentRepo, loc)

	// January in UTC+8 starts eight hours before the UTC month boundary.
	from := time.Date(2025, 12, 31, 16, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 16, 0, 0, 0, time.UTC)
	suite.mockPaymentRepo.On("ListPaymentRecords", ctx, suite.operatorID, from, to).
		Return([]domain.PaymentRecord{{RecordID: uuid.NewString()}}, nil).Once()

	records, err := svc.ListPaymentRecords(ctx, suite.operatorID, 2026, time.January)

	suite.Require().NoError(err)
	suite.Len(records, 1)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestListPaymentRecords_WholeYearWindow() {
	ctx := context.Background()
	loc := time.FixedZone("UTC+8", 8*60*60)
	svc := services.NewReportingService(suite.mockReceiptRepo, suite.mockReceiptSvc, suite.mockPaymentRepo, loc)

	from := time.Date(2025, 12, 31, 16, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 16, 0, 0, 0, time.UTC)
	suite.mockPaymentRepo.On("ListPaymentRecords", ctx, suite.operatorID, from, to).
		Return([]domain.PaymentRecord{}, nil).Once()

	_, err := svc.ListPaymentRecords(ctx, suite.operatorID, 2026, 0)

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCreatePaymentRecord_LandsInItsOwnMonthWindow() {
	ctx := context.Background()
	loc := time.FixedZone("UTC+8", 8*60*60)
	svc := services.NewReportingService(suite.mockReceiptRepo, suite.mockReceiptSvc, suite.mockPaymentRepo, loc)

	suite.mockReceiptRepo.On("ListReceiptsByDateRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), suite.operatorID).
		Return([]domain.Receipt{}, nil).Once()
	var stored domain.PaymentRecord
	suite.mockPaymentRepo.On("SavePaymentRecord", ctx, mock.AnythingOfType("domain.PaymentRecord")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.PaymentRecord) }).Return(nil).Once()

	_, err := svc.CreatePaymentRecord(ctx, suite.operatorID, 2026, time.January, decimal.Zero, "", suite.cashier)
	suite.Require().NoError(err)

	var from, to time.Time
	suite.mockPaymentRepo.On("ListPaymentRecords", ctx, suite.operatorID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			from = args.Get(2).(time.Time)
			to = args.Get(3).(time.Time)
		}).Return([]domain.PaymentRecord{}, nil).Once()
	_, err = svc.ListPaymentRecords(ctx, suite.operatorID, 2026, time.January)
	suite.Require().NoError(err)

	suite.False(stored.PeriodStart.Before(from))
	suite.True(stored.PeriodStart.Before(to))
}

func (suite *ReportingServiceTestSuite) TestDailyReport_SummarizesByStatus() {
	ctx := context.Background()
	active1 := suite.activeReceipt(100, false)
	active2 := suite.activeReceipt(200, true)
	voided := suite.activeReceipt(50, false)
	voided.Status = domain.ReceiptVoided
	pending := suite.activeReceipt(70, false)
	pending.Status = domain.ReceiptVoidPending

	date := time.Date(2026, 9, 1, 15, 4, 5, 0, time.UTC)
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	suite.mockReceiptRepo.On("ListReceiptsByDateRange", ctx, from, to, "").
		Return([]domain.Receipt{active1, active2, voided, pending}, nil).Once()

	report, err := suite.service.DailyReport(ctx, date, "")

	suite.Require().NoError(err)
	suite.Len(report.Receipts, 4)
	suite.Equal(2, report.Summary.ActiveCount)
	suite.True(report.Summary.ActiveTotal.Equal(decimal.NewFromInt(300)))
	suite.Equal(1, report.Summary.VoidedCount)
	suite.True(report.Summary.VoidedTotal.Equal(decimal.NewFromInt(50)))
	suite.True(report.Summary.NetTotal.Equal(decimal.NewFromInt(300)))
}

func (suite *ReportingServiceTestSuite) TestMonthlyReport_BreaksDownByItem() {
	ctx := context.Background()
	swim1 := suite.activeReceipt(75, true)
	swim1.ItemName = "Adult Admission"
	swim2 := suite.activeReceipt(25, false)
	swim2.ItemName = "Locker Rental"
	voided := suite.activeReceipt(40, false)
	voided.ItemName = "Adult Admission"
	voided.Status = domain.ReceiptVoided

	suite.mockReceiptRepo.On("ListReceiptsByDateRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), "").
		Return([]domain.Receipt{swim1, swim2, voided}, nil).Once()

	report, err := suite.service.MonthlyReport(ctx, 2026, time.September, "")

	suite.Require().NoError(err)
	suite.Equal(2026, report.Year)
	suite.Equal(time.September, report.Month)
	suite.Require().Len(report.ItemBreakdown, 2)

	admission := report.ItemBreakdown["Adult Admission"]
	suite.Equal(1, admission.Count)
	suite.True(admission.Total.Equal(decimal.NewFromInt(75)))
	suite.InDelta(75.0, admission.Percentage, 0.001)

	rental := report.ItemBreakdown["Locker Rental"]
	suite.Equal(1, rental.Count)
	suite.InDelta(25.0, rental.Percentage, 0.001)
}

func (suite *ReportingServiceTestSuite) TestMonthlyReport_ZeroActiveTotal() {
	ctx := context.Background()

	suite.mockReceiptRepo.On("ListReceiptsByDateRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), "").
		Return([]domain.Receipt{}, nil).Once()

	report, err := suite.service.MonthlyReport(ctx, 2026, time.September, "")

	suite.Require().NoError(err)
	suite.Empty(report.ItemBreakdown)
	suite.True(report.Summary.NetTotal.IsZero())
}

func (suite *ReportingServiceTestSuite) TestListUnverifiedReceipts() {
	ctx := context.Background()
	unverified := []domain.Receipt{suite.activeReceipt(100, false)}

	suite.mockReceiptRepo.On("ListUnverifiedActive", ctx, suite.operatorID).Return(unverified, nil).Once()

	result, err := suite.service.ListUnverifiedReceipts(ctx, suite.operatorID)

	suite.Require().NoError(err)
	suite.Len(result, 1)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
