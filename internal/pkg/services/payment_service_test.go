package services

import (
	"context"
	"testing"
	"time"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentServiceFixture struct {
	service      *PaymentService
	api          *fakePaymentAPI
	payments     *fakePaymentsRepo
	loans        *fakeLoansRepo
	pending      *fakePendingRepo
	dashboard    *fakeDashboardRepo
	syncGate     *fakeSyncGate
	statusEvents *fakeStatusEventsRepo
	producer     *fakePublisher
	notifier     *fakeNotifier
}

func newPaymentServiceFixture(loans ...models.Loan) *paymentServiceFixture {
	f := &paymentServiceFixture{
		api:          &fakePaymentAPI{},
		payments:     newFakePaymentsRepo(),
		loans:        newFakeLoansRepo(loans...),
		pending:      &fakePendingRepo{},
		dashboard:    &fakeDashboardRepo{},
		syncGate:     &fakeSyncGate{},
		statusEvents: &fakeStatusEventsRepo{},
		producer:     &fakePublisher{},
		notifier:     &fakeNotifier{},
	}
	f.service = NewPaymentService(
		f.api, f.payments, f.loans, f.pending, f.dashboard,
		f.syncGate, f.statusEvents, NewValidationService(), f.producer, f.notifier,
	)
	return f
}

func activeLoan(loanID string, balance float64) models.Loan {
	return models.Loan{
		LoanID:            loanID,
		UserID:            "user-1",
		Type:              models.LoanTypeCash,
		RemainingBalance:  balance,
		Status:            models.LoanStatusActive,
		PaymentsCompleted: 3,
		TotalPayments:     12,
	}
}

func validPaymentRequest(loanID string, amount float64) models.PaymentRequest {
	return models.PaymentRequest{
		LoanID:      loanID,
		Amount:      amount,
		Method:      "ECOCASH",
		PhoneNumber: "263771234567",
	}
}

func TestProcessPayment_InvalidRequestNeverReachesRemote(t *testing.T) {
	tests := []struct {
		name string
		req  models.PaymentRequest
	}{
		{"zero amount", validPaymentRequest("loan-1", 0)},
		{"missing method", models.PaymentRequest{LoanID: "loan-1", Amount: 50, PhoneNumber: "263771234567"}},
		{"amount over balance", validPaymentRequest("loan-1", 900)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPaymentServiceFixture(activeLoan("loan-1", 600))

			_, err := f.service.ProcessPayment(context.Background(), "user-1", tt.req)

			require.Error(t, err)
			assert.Equal(t, 0, f.api.calls)
			assert.Empty(t, f.pending.began)
		})
	}
}

func TestProcessPayment_RejectsInactiveLoan(t *testing.T) {
	loan := activeLoan("loan-1", 600)
	loan.Status = models.LoanStatusCompleted
	f := newPaymentServiceFixture(loan)

	_, err := f.service.ProcessPayment(context.Background(), "user-1", validPaymentRequest("loan-1", 50))

	require.Error(t, err)
	assert.Equal(t, 0, f.api.calls)
}

func TestProcessPayment_DuplicateInFlight(t *testing.T) {
	f := newPaymentServiceFixture(activeLoan("loan-1", 600))
	f.pending.beginErr = consts.ErrorTransactionInProgress

	_, err := f.service.ProcessPayment(context.Background(), "user-1", validPaymentRequest("loan-1", 50))

	require.ErrorIs(t, err, consts.ErrorTransactionInProgress)
	assert.Equal(t, 0, f.api.calls)
}

func TestProcessPayment_SuccessFoldsIntoLoanAndDashboard(t *testing.T) {
	f := newPaymentServiceFixture(activeLoan("loan-1", 600))
	f.api.processPayment = func(ctx context.Context, userID string, req models.PaymentRequest) (models.PaymentProcessResponse, error) {
		return models.PaymentProcessResponse{PaymentID: "pay-1", Status: models.PaymentStatusSuccess}, nil
	}

	response, err := f.service.ProcessPayment(context.Background(), "user-1", validPaymentRequest("loan-1", 100))

	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccess, response.Status)

	loan, err := f.loans.LoanByID(context.Background(), "loan-1")
	require.NoError(t, err)
	assert.Equal(t, float64(500), loan.RemainingBalance)
	assert.Equal(t, 4, loan.PaymentsCompleted)

	assert.Equal(t, []float64{100}, f.dashboard.recorded)
	require.Len(t, f.statusEvents.events, 1)
	assert.Equal(t, consts.EventTypePaymentStatus, f.statusEvents.events[0].EventType)
	assert.Equal(t, []string{consts.NotificationEventPaymentSuccess}, f.notifier.events)
	assert.Len(t, f.pending.finished, 1)
}

func TestProcessPayment_PendingResponseKeepsTransactionOpen(t *testing.T) {
	f := newPaymentServiceFixture(activeLoan("loan-1", 600))
	f.api.processPayment = func(ctx context.Context, userID string, req models.PaymentRequest) (models.PaymentProcessResponse, error) {
		return models.PaymentProcessResponse{PaymentID: "pay-2", Status: models.PaymentStatusPending}, nil
	}

	_, err := f.service.ProcessPayment(context.Background(), "user-1", validPaymentRequest("loan-1", 100))

	require.NoError(t, err)
	assert.Empty(t, f.pending.finished)
}

func TestProcessPayment_RemoteFailureClearsPending(t *testing.T) {
	f := newPaymentServiceFixture(activeLoan("loan-1", 600))

	_, err := f.service.ProcessPayment(context.Background(), "user-1", validPaymentRequest("loan-1", 100))

	require.Error(t, err)
	assert.Len(t, f.pending.finished, 1)
}

func TestRetryPayment_OnlyFailedPaymentsRetry(t *testing.T) {
	f := newPaymentServiceFixture(activeLoan("loan-1", 600))
	require.NoError(t, f.payments.InsertPayment(context.Background(), models.Payment{
		PaymentID: "pay-1", LoanID: "loan-1", UserID: "user-1",
		Amount: 100, Status: models.PaymentStatusSuccess,
	}))

	_, err := f.service.RetryPayment(context.Background(), "user-1", "pay-1")

	require.Error(t, err)
	assert.Equal(t, 0, f.api.calls)
}

func TestRetryPayment_UnknownPayment(t *testing.T) {
	f := newPaymentServiceFixture()

	_, err := f.service.RetryPayment(context.Background(), "user-1", "pay-missing")

	require.ErrorIs(t, err, consts.ErrorPaymentNotFound)
}

func TestPaymentStatus_SuccessTransitionFoldsIntoLoan(t *testing.T) {
	f := newPaymentServiceFixture(activeLoan("loan-1", 600))
	require.NoError(t, f.payments.InsertPayment(context.Background(), models.Payment{
		PaymentID: "pay-1", LoanID: "loan-1", UserID: "user-1",
		Amount: 100, Status: models.PaymentStatusProcessing,
	}))
	f.api.fetchStatus = func(ctx context.Context, paymentID string) (models.Payment, error) {
		return models.Payment{
			PaymentID: paymentID, LoanID: "loan-1", UserID: "user-1",
			Amount: 100, Status: models.PaymentStatusSuccess,
		}, nil
	}

	payment, err := f.service.PaymentStatus(context.Background(), "pay-1")

	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccess, payment.Status)

	loan, err := f.loans.LoanByID(context.Background(), "loan-1")
	require.NoError(t, err)
	assert.Equal(t, float64(500), loan.RemainingBalance)
	assert.NotEmpty(t, f.pending.finished)
}

func TestPaymentStatus_BackendDownServesCache(t *testing.T) {
	f := newPaymentServiceFixture()
	require.NoError(t, f.payments.InsertPayment(context.Background(), models.Payment{
		PaymentID: "pay-1", Status: models.PaymentStatusProcessing,
	}))

	payment, err := f.service.PaymentStatus(context.Background(), "pay-1")

	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusProcessing, payment.Status)
}

func TestEligibilityForLoan(t *testing.T) {
	advancedLoan := func(loanType models.LoanType, completed int, balance float64, status models.LoanStatus) models.Loan {
		return models.Loan{
			Type:              loanType,
			PaymentsCompleted: completed,
			RemainingBalance:  balance,
			Status:            status,
			TotalPayments:     12,
		}
	}

	tests := []struct {
		name     string
		loan     models.Loan
		eligible bool
	}{
		{"cash loan at the two payment minimum", advancedLoan(models.LoanTypeCash, 2, 400, models.LoanStatusActive), true},
		{"cash loan below the minimum", advancedLoan(models.LoanTypeCash, 1, 400, models.LoanStatusActive), false},
		{"paygo loan at the four payment minimum", advancedLoan(models.LoanTypePayGo, 4, 400, models.LoanStatusActive), true},
		{"paygo loan below the minimum", advancedLoan(models.LoanTypePayGo, 3, 400, models.LoanStatusActive), false},
		{"nothing left to pay off", advancedLoan(models.LoanTypeCash, 6, 0, models.LoanStatusActive), false},
		{"loan not active", advancedLoan(models.LoanTypeCash, 6, 400, models.LoanStatusDefaulted), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := EligibilityForLoan(tt.loan)

			assert.Equal(t, tt.eligible, out.IsEligible)
			if tt.eligible {
				assert.Empty(t, out.Reasons)
				assert.InDelta(t, tt.loan.RemainingBalance*consts.EarlyPayoffSavingsRate, out.EstimatedSavings, 0.001)
			} else {
				assert.NotEmpty(t, out.Reasons)
				assert.Zero(t, out.EstimatedSavings)
			}
		})
	}
}

func TestCheckEarlyPayoffEligibility_BackendDownUsesLocalRule(t *testing.T) {
	f := newPaymentServiceFixture(activeLoan("loan-1", 600))

	eligibility, err := f.service.CheckEarlyPayoffEligibility(context.Background(), "loan-1")

	require.NoError(t, err)
	assert.True(t, eligibility.IsEligible)
	assert.InDelta(t, 30.0, eligibility.EstimatedSavings, 0.001)
}

func TestCalculateEarlyPayoff_IneligibleLoanIsRejected(t *testing.T) {
	loan := activeLoan("loan-1", 600)
	loan.PaymentsCompleted = 1
	f := newPaymentServiceFixture(loan)

	_, err := f.service.CalculateEarlyPayoff(context.Background(), "loan-1")

	require.Error(t, err)
	assert.Equal(t, 1, f.api.calls) // eligibility probe only, no quote call
}

func TestProcessEarlyPayoff_SuccessClosesLoan(t *testing.T) {
	f := newPaymentServiceFixture(activeLoan("loan-1", 600))
	f.api.processPayoff = func(ctx context.Context, loanID string, req models.EarlyPayoffRequest) (models.PaymentProcessResponse, error) {
		return models.PaymentProcessResponse{PaymentID: "payoff-1", Status: models.PaymentStatusSuccess}, nil
	}

	response, err := f.service.ProcessEarlyPayoff(context.Background(), "user-1", "loan-1", models.EarlyPayoffRequest{
		QuoteReference: "quote-1",
		Amount:         570,
		Method:         "ECOCASH",
		PhoneNumber:    "263771234567",
	})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccess, response.Status)

	loan, err := f.loans.LoanByID(context.Background(), "loan-1")
	require.NoError(t, err)
	assert.Zero(t, loan.RemainingBalance)
	assert.Equal(t, models.LoanStatusCompleted, loan.Status)
	assert.Equal(t, []string{consts.NotificationEventEarlyPayoff}, f.notifier.events)
}

func TestPaymentDashboard_RebuildCountsOnlySuccessfulPayments(t *testing.T) {
	f := newPaymentServiceFixture()
	f.syncGate.stale = true
	now := time.Now()
	require.NoError(t, f.payments.InsertPayment(context.Background(), models.Payment{
		PaymentID: "pay-1", UserID: "user-1", Amount: 100,
		Status: models.PaymentStatusSuccess, ProcessedAt: &now,
	}))
	require.NoError(t, f.payments.InsertPayment(context.Background(), models.Payment{
		PaymentID: "pay-2", UserID: "user-1", Amount: 40,
		Status: models.PaymentStatusFailed,
	}))

	dashboard, err := f.service.PaymentDashboard(context.Background(), "user-1", false)

	require.NoError(t, err)
	assert.Equal(t, float64(100), dashboard.TotalPaid)
	assert.Equal(t, 1, dashboard.PaymentsThisMonth)
	require.NotNil(t, dashboard.LastPaymentAt)
}
