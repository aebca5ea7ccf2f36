package services

import (
	"context"
	"encoding/json"
	"time"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/logger"
	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/store"

	"github.com/google/uuid"
)

// PaymentService owns repayments, early payoff and the payment dashboard.
// One in-flight payment per loan is enforced through the pending payments
// collection; its TTL index clears abandoned entries.
type PaymentService struct {
	api          PaymentAPIInterface
	payments     PaymentsRepoInterface
	loans        LoansRepoInterface
	pending      PendingPaymentsRepoInterface
	dashboard    PaymentDashboardRepoInterface
	syncGate     SyncGateInterface
	statusEvents StatusEventsRepoInterface
	validator    *ValidationService
	producer     EventPublisherInterface
	notifier     NotificationServiceInterface
}

func NewPaymentService(
	api PaymentAPIInterface,
	payments PaymentsRepoInterface,
	loans LoansRepoInterface,
	pending PendingPaymentsRepoInterface,
	dashboard PaymentDashboardRepoInterface,
	syncGate SyncGateInterface,
	statusEvents StatusEventsRepoInterface,
	validator *ValidationService,
	producer EventPublisherInterface,
	notifier NotificationServiceInterface,
) *PaymentService {
	return &PaymentService{
		api:          api,
		payments:     payments,
		loans:        loans,
		pending:      pending,
		dashboard:    dashboard,
		syncGate:     syncGate,
		statusEvents: statusEvents,
		validator:    validator,
		producer:     producer,
		notifier:     notifier,
	}
}

func (s *PaymentService) ProcessPayment(ctx context.Context, userID string, req models.PaymentRequest) (models.PaymentProcessResponse, error) {
	loan, err := s.loans.LoanByID(ctx, req.LoanID)
	if err != nil {
		loan = nil
	}
	if v := s.validator.ValidatePaymentRequest(req, loan); !v.IsValid() {
		return models.PaymentProcessResponse{}, &models.CustomError{
			Code:    consts.ErrorValidation.Code,
			Message: v.Errors[0],
		}
	}

	paymentID := uuid.NewString()
	if err := s.pending.Begin(ctx, userID, req.LoanID, paymentID); err != nil {
		return models.PaymentProcessResponse{}, err
	}

	response, err := s.api.ProcessPayment(ctx, userID, req)
	if err != nil {
		if finishErr := s.pending.Finish(ctx, paymentID); finishErr != nil {
			logger.Warn(ctx, "failed to clear pending payment %s: %v", paymentID, finishErr)
		}
		return models.PaymentProcessResponse{}, err
	}

	record := models.Payment{
		PaymentID:   response.PaymentID,
		LoanID:      req.LoanID,
		UserID:      userID,
		Amount:      req.Amount,
		Method:      req.Method,
		PhoneNumber: req.PhoneNumber,
		Status:      response.Status,
		CreatedAt:   time.Now(),
	}
	if err := s.payments.InsertPayment(ctx, record); err != nil {
		logger.Error(ctx, "failed to record payment %s locally: %v", response.PaymentID, err)
	}

	if response.Status == models.PaymentStatusSuccess {
		s.applySuccessfulPayment(ctx, userID, req.LoanID, response.PaymentID, req.Amount)
	}
	if response.Status != models.PaymentStatusPending && response.Status != models.PaymentStatusProcessing {
		if err := s.pending.Finish(ctx, paymentID); err != nil {
			logger.Warn(ctx, "failed to clear pending payment %s: %v", paymentID, err)
		}
	}

	store.Hub().Notify(store.TopicPayments)
	return response, nil
}

// applySuccessfulPayment folds a settled payment into the loan counters, the
// dashboard and the event stream.
func (s *PaymentService) applySuccessfulPayment(ctx context.Context, userID, loanID, paymentID string, amount float64) {
	now := time.Now()
	if err := s.payments.UpdatePaymentStatus(ctx, paymentID, models.PaymentStatusSuccess, ""); err != nil {
		logger.Warn(ctx, "failed to mark payment %s successful: %v", paymentID, err)
	}

	if loan, err := s.loans.LoanByID(ctx, loanID); err == nil {
		loan.RecordPayment(amount)
		if err := s.loans.UpsertLoan(ctx, *loan); err != nil {
			logger.Error(ctx, "failed to fold payment into loan %s: %v", loanID, err)
		}
		store.Hub().Notify(store.TopicLoans)
	}

	if err := s.dashboard.RecordSuccessfulPayment(ctx, userID, amount, now); err != nil {
		logger.Warn(ctx, "failed to fold payment into dashboard for user %s: %v", userID, err)
	}

	s.recordPaymentEvent(ctx, userID, paymentID, string(models.PaymentStatusSuccess), amount)
	if err := s.notifier.Send(ctx, consts.NotificationEventPaymentSuccess, userID, "",
		"Your payment has been received. Thank you."); err != nil {
		logger.Warn(ctx, "payment notification failed for user %s: %v", userID, err)
	}
}

func (s *PaymentService) recordPaymentEvent(ctx context.Context, userID, paymentID, status string, amount float64) {
	event := models.PaymentStatusEvent{
		EventID:    uuid.NewString(),
		EventType:  consts.EventTypePaymentStatus,
		UserID:     userID,
		SubjectID:  paymentID,
		Status:     status,
		Amount:     amount,
		OccurredAt: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err == nil {
		if err := s.producer.Publish(ctx, userID, payload); err == nil {
			event.PublishedToKafka = true
		} else {
			logger.Error(ctx, "failed to publish payment event %s: %v", event.EventID, err)
		}
	}
	if err := s.statusEvents.InsertEvent(ctx, event); err != nil {
		logger.Error(ctx, "failed to record payment event %s: %v", event.EventID, err)
	}
}

func (s *PaymentService) Payments(ctx context.Context, userID string, forceRefresh bool) ([]models.Payment, error) {
	if forceRefresh || s.syncGate.ShouldSync(ctx, userID, consts.SyncTypePayments) {
		if err := s.syncPaymentsFromRemote(ctx, userID); err != nil {
			cached, cacheErr := s.payments.PaymentsByUser(ctx, userID)
			if cacheErr == nil && len(cached) > 0 {
				logger.Warn(ctx, "payment sync failed for user %s, serving cache: %v", userID, err)
				return cached, nil
			}
			return nil, err
		}
	}
	return s.payments.PaymentsByUser(ctx, userID)
}

func (s *PaymentService) syncPaymentsFromRemote(ctx context.Context, userID string) error {
	payments, err := s.api.FetchPayments(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.payments.ReplaceAllForUser(ctx, userID, payments); err != nil {
		return err
	}
	return s.syncGate.MarkSynced(ctx, userID, consts.SyncTypePayments)
}

func (s *PaymentService) PaymentsForLoan(ctx context.Context, loanID string) ([]models.Payment, error) {
	return s.payments.PaymentsByLoan(ctx, loanID)
}

// PaymentStatus reads the backend and folds any status change into the local
// record, so polling keeps the cache honest.
func (s *PaymentService) PaymentStatus(ctx context.Context, paymentID string) (models.Payment, error) {
	remote, err := s.api.FetchPaymentStatus(ctx, paymentID)
	if err != nil {
		cached, cacheErr := s.payments.PaymentByID(ctx, paymentID)
		if cacheErr != nil {
			return models.Payment{}, consts.ErrorPaymentNotFound
		}
		return *cached, nil
	}

	previousStatus := models.PaymentStatusUnknown
	if cached, err := s.payments.PaymentByID(ctx, paymentID); err == nil {
		previousStatus = cached.Status
	}
	if err := s.payments.UpdatePaymentStatus(ctx, paymentID, remote.Status, remote.FailureReason); err != nil {
		logger.Warn(ctx, "failed to fold status for payment %s: %v", paymentID, err)
	}
	switch remote.Status {
	case models.PaymentStatusSuccess:
		if previousStatus != models.PaymentStatusSuccess {
			s.applySuccessfulPayment(ctx, remote.UserID, remote.LoanID, paymentID, remote.Amount)
		}
		fallthrough
	case models.PaymentStatusFailed, models.PaymentStatusCancelled:
		if err := s.pending.Finish(ctx, paymentID); err != nil {
			logger.Warn(ctx, "failed to clear pending payment %s: %v", paymentID, err)
		}
	}
	store.Hub().Notify(store.TopicPayments)
	return remote, nil
}

func (s *PaymentService) CancelPayment(ctx context.Context, userID, paymentID string) error {
	if err := s.api.CancelPayment(ctx, paymentID); err != nil {
		return err
	}
	if err := s.payments.UpdatePaymentStatus(ctx, paymentID, models.PaymentStatusCancelled, ""); err != nil {
		logger.Warn(ctx, "failed to mark payment %s cancelled: %v", paymentID, err)
	}
	if err := s.pending.Finish(ctx, paymentID); err != nil {
		logger.Warn(ctx, "failed to clear pending payment %s: %v", paymentID, err)
	}
	s.recordPaymentEvent(ctx, userID, paymentID, string(models.PaymentStatusCancelled), 0)
	store.Hub().Notify(store.TopicPayments)
	return nil
}

func (s *PaymentService) RetryPayment(ctx context.Context, userID, paymentID string) (models.PaymentProcessResponse, error) {
	cached, err := s.payments.PaymentByID(ctx, paymentID)
	if err != nil {
		return models.PaymentProcessResponse{}, consts.ErrorPaymentNotFound
	}
	if cached.Status != models.PaymentStatusFailed {
		return models.PaymentProcessResponse{}, &models.CustomError{
			Code:    consts.ErrorValidation.Code,
			Message: "Only failed payments can be retried",
		}
	}

	response, err := s.api.RetryPayment(ctx, paymentID)
	if err != nil {
		return models.PaymentProcessResponse{}, err
	}
	if err := s.payments.UpdatePaymentStatus(ctx, paymentID, response.Status, ""); err != nil {
		logger.Warn(ctx, "failed to fold retry status for payment %s: %v", paymentID, err)
	}
	if response.Status == models.PaymentStatusSuccess {
		s.applySuccessfulPayment(ctx, userID, cached.LoanID, paymentID, cached.Amount)
	}
	store.Hub().Notify(store.TopicPayments)
	return response, nil
}

func (s *PaymentService) PaymentDashboard(ctx context.Context, userID string, forceRefresh bool) (models.PaymentDashboard, error) {
	if forceRefresh || s.syncGate.ShouldSync(ctx, userID, consts.SyncTypeDashboard) {
		if err := s.rebuildDashboard(ctx, userID); err != nil {
			logger.Warn(ctx, "dashboard rebuild failed for user %s: %v", userID, err)
		}
	}
	dashboard, err := s.dashboard.DashboardByUser(ctx, userID)
	if err != nil {
		return models.PaymentDashboard{UserID: userID, UpdatedAt: time.Now()}, nil
	}
	return *dashboard, nil
}

// rebuildDashboard re-derives the aggregate from the payment cache. Only
// successful payments count.
func (s *PaymentService) rebuildDashboard(ctx context.Context, userID string) error {
	payments, err := s.payments.PaymentsByUser(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	dashboard := models.PaymentDashboard{UserID: userID, UpdatedAt: now}
	for _, p := range payments {
		if p.Status != models.PaymentStatusSuccess {
			continue
		}
		dashboard.TotalPaid += p.Amount
		if p.ProcessedAt != nil {
			if !p.ProcessedAt.Before(monthStart) {
				dashboard.PaymentsThisMonth++
			}
			if dashboard.LastPaymentAt == nil || p.ProcessedAt.After(*dashboard.LastPaymentAt) {
				dashboard.LastPaymentAt = p.ProcessedAt
			}
		}
	}

	if err := s.dashboard.UpsertDashboard(ctx, dashboard); err != nil {
		return err
	}
	return s.syncGate.MarkSynced(ctx, userID, consts.SyncTypeDashboard)
}

// EligibilityForLoan is the local early payoff rule. Cash loans need two
// completed payments, device loans four, and there must be something left to
// pay off. The savings figure is a heuristic on the remaining balance.
func EligibilityForLoan(loan models.Loan) models.EarlyPayoffEligibility {
	var out models.EarlyPayoffEligibility
	out.Reasons = []string{}

	minPayments := consts.CashEarlyPayoffMinPayments
	if loan.Type == models.LoanTypePayGo {
		minPayments = consts.PayGoEarlyPayoffMinPayments
	}
	if loan.PaymentsCompleted < minPayments {
		out.Reasons = append(out.Reasons, "Not enough completed payments")
	}
	if loan.RemainingBalance <= 0 {
		out.Reasons = append(out.Reasons, "Loan has no remaining balance")
	}
	if !loan.IsActive() {
		out.Reasons = append(out.Reasons, "Loan is not active")
	}

	out.IsEligible = len(out.Reasons) == 0
	if out.IsEligible {
		out.EstimatedSavings = loan.RemainingBalance * consts.EarlyPayoffSavingsRate
	}
	return out
}

// CheckEarlyPayoffEligibility asks the backend first and falls back to the
// local rule when the backend cannot answer.
func (s *PaymentService) CheckEarlyPayoffEligibility(ctx context.Context, loanID string) (models.EarlyPayoffEligibility, error) {
	if remote, err := s.api.CheckEarlyPayoffEligibility(ctx, loanID); err == nil {
		return remote, nil
	}
	loan, err := s.loans.LoanByID(ctx, loanID)
	if err != nil {
		return models.EarlyPayoffEligibility{}, consts.ErrorLoanNotFound
	}
	return EligibilityForLoan(*loan), nil
}

func (s *PaymentService) CalculateEarlyPayoff(ctx context.Context, loanID string) (models.EarlyPayoffQuote, error) {
	eligibility, err := s.CheckEarlyPayoffEligibility(ctx, loanID)
	if err != nil {
		return models.EarlyPayoffQuote{}, err
	}
	if !eligibility.IsEligible {
		return models.EarlyPayoffQuote{}, &models.CustomError{
			Code:    consts.ErrorValidation.Code,
			Message: "Loan is not eligible for early payoff",
		}
	}
	return s.api.CalculateEarlyPayoff(ctx, loanID)
}

func (s *PaymentService) ProcessEarlyPayoff(ctx context.Context, userID, loanID string, req models.EarlyPayoffRequest) (models.PaymentProcessResponse, error) {
	paymentID := uuid.NewString()
	if err := s.pending.Begin(ctx, userID, loanID, paymentID); err != nil {
		return models.PaymentProcessResponse{}, err
	}

	response, err := s.api.ProcessEarlyPayoff(ctx, loanID, req)
	if err != nil {
		if finishErr := s.pending.Finish(ctx, paymentID); finishErr != nil {
			logger.Warn(ctx, "failed to clear pending payoff %s: %v", paymentID, finishErr)
		}
		return models.PaymentProcessResponse{}, err
	}

	if response.Status == models.PaymentStatusSuccess {
		if loan, err := s.loans.LoanByID(ctx, loanID); err == nil {
			loan.RemainingBalance = 0
			loan.Status = models.LoanStatusCompleted
			loan.UpdatedAt = time.Now()
			if err := s.loans.UpsertLoan(ctx, *loan); err != nil {
				logger.Error(ctx, "failed to close loan %s after payoff: %v", loanID, err)
			}
			store.Hub().Notify(store.TopicLoans)
		}
		s.recordPaymentEvent(ctx, userID, response.PaymentID, string(models.PaymentStatusSuccess), req.Amount)
		if err := s.notifier.Send(ctx, consts.NotificationEventEarlyPayoff, userID, "",
			"Congratulations, your loan has been settled in full."); err != nil {
			logger.Warn(ctx, "payoff notification failed for user %s: %v", userID, err)
		}
	}
	if err := s.pending.Finish(ctx, paymentID); err != nil {
		logger.Warn(ctx, "failed to clear pending payoff %s: %v", paymentID, err)
	}
	store.Hub().Notify(store.TopicPayments)
	return response, nil
}
