package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/logger"
	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/result"
	"pesanet/kopa_lending/internal/pkg/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// LoanService owns the application flows and the loan cache. Reads serve the
// local store first; the sync gate decides when the backend is consulted.
type LoanService struct {
	api          LoanAPIInterface
	loans        LoansRepoInterface
	cashDrafts   CashDraftsRepoInterface
	payGoDrafts  PayGoDraftsRepoInterface
	formData     FormDataRepoInterface
	syncGate     SyncGateInterface
	statusEvents StatusEventsRepoInterface
	validator    *ValidationService
	producer     EventPublisherInterface
	notifier     NotificationServiceInterface
}

func NewLoanService(
	api LoanAPIInterface,
	loans LoansRepoInterface,
	cashDrafts CashDraftsRepoInterface,
	payGoDrafts PayGoDraftsRepoInterface,
	formData FormDataRepoInterface,
	syncGate SyncGateInterface,
	statusEvents StatusEventsRepoInterface,
	validator *ValidationService,
	producer EventPublisherInterface,
	notifier NotificationServiceInterface,
) *LoanService {
	return &LoanService{
		api:          api,
		loans:        loans,
		cashDrafts:   cashDrafts,
		payGoDrafts:  payGoDrafts,
		formData:     formData,
		syncGate:     syncGate,
		statusEvents: statusEvents,
		validator:    validator,
		producer:     producer,
		notifier:     notifier,
	}
}

// CashLoanFormData serves the cached reference data unless it is stale or
// the caller forces a refresh. A failed refresh falls back to whatever the
// cache still holds.
func (s *LoanService) CashLoanFormData(ctx context.Context, forceRefresh bool) (models.CashLoanFormData, error) {
	if !forceRefresh && !s.syncGate.ShouldSync(ctx, "", consts.SyncTypeFormData) {
		if cached, err := s.formData.CashLoanFormData(ctx); err == nil {
			return *cached, nil
		}
	}

	fresh, err := s.api.FetchCashLoanFormData(ctx)
	if err != nil {
		if cached, cacheErr := s.formData.CashLoanFormData(ctx); cacheErr == nil {
			logger.Warn(ctx, "form data refresh failed, serving cache: %v", err)
			return *cached, nil
		}
		return models.CashLoanFormData{}, err
	}

	if err := s.formData.SaveCashLoanFormData(ctx, fresh); err != nil {
		logger.Warn(ctx, "failed to cache form data: %v", err)
	}
	if err := s.syncGate.MarkSynced(ctx, "", consts.SyncTypeFormData); err != nil {
		logger.Warn(ctx, "failed to mark form data synced: %v", err)
	}
	return fresh, nil
}

// CalculateCashLoanTerms validates before anything leaves the process; an
// invalid request costs zero remote calls.
func (s *LoanService) CalculateCashLoanTerms(ctx context.Context, req models.CashLoanTermsRequest) (models.LoanTerms, error) {
	if v := s.validator.ValidateCashLoanTermsRequest(req); !v.IsValid() {
		return models.LoanTerms{}, &models.CustomError{
			Code:    consts.ErrorValidation.Code,
			Message: v.Errors[0],
		}
	}
	return s.api.CalculateCashLoanTerms(ctx, req)
}

func (s *LoanService) CalculatePayGoTerms(ctx context.Context, req models.PayGoTermsRequest) (models.LoanTerms, error) {
	if v := s.validator.ValidatePayGoTermsRequest(req); !v.IsValid() {
		return models.LoanTerms{}, &models.CustomError{
			Code:    consts.ErrorValidation.Code,
			Message: v.Errors[0],
		}
	}
	return s.api.CalculatePayGoTerms(ctx, req)
}

// SubmitCashLoanApplication refuses to send anything the applicant has not
// seen priced and accepted. On success the draft is gone and the application
// is stamped SUBMITTED.
func (s *LoanService) SubmitCashLoanApplication(ctx context.Context, app models.CashLoanApplication) (string, error) {
	if app.CalculatedTerms == nil {
		return "", consts.ErrorTermsNotCalculated
	}
	if !app.AcceptedTerms {
		return "", consts.ErrorTermsNotAccepted
	}

	now := time.Now()
	app.Status = models.ApplicationStatusSubmitted
	app.SubmittedAt = &now
	app.UpdatedAt = now

	applicationID, err := s.api.SubmitCashLoanApplication(ctx, app)
	if err != nil {
		return "", err
	}

	if err := s.cashDrafts.DeleteDraft(ctx, app.UserID); err != nil {
		logger.Warn(ctx, "failed to clear cash draft for user %s: %v", app.UserID, err)
	}
	s.recordApplicationEvent(ctx, app.UserID, applicationID, app.LoanAmount)
	store.Hub().Notify(store.TopicApplications)
	return applicationID, nil
}

func (s *LoanService) SubmitPayGoLoanApplication(ctx context.Context, app models.PayGoLoanApplication) (string, error) {
	if app.CalculatedTerms == nil {
		return "", consts.ErrorTermsNotCalculated
	}
	if !app.AcceptedTerms {
		return "", consts.ErrorTermsNotAccepted
	}
	if !app.Guarantor.IsComplete() {
		return "", consts.ErrorGuarantorIncomplete
	}

	now := time.Now()
	app.Status = models.ApplicationStatusSubmitted
	app.SubmittedAt = &now
	app.UpdatedAt = now

	applicationID, err := s.api.SubmitPayGoLoanApplication(ctx, app)
	if err != nil {
		return "", err
	}

	if err := s.payGoDrafts.DeleteDraft(ctx, app.UserID); err != nil {
		logger.Warn(ctx, "failed to clear paygo draft for user %s: %v", app.UserID, err)
	}
	s.recordApplicationEvent(ctx, app.UserID, applicationID, app.DevicePrice-app.DepositAmount)
	store.Hub().Notify(store.TopicApplications)
	return applicationID, nil
}

// recordApplicationEvent writes the status event locally and pushes it out.
// Kafka failure leaves the published flag unset for the retry sweep; the SMS
// is best effort.
func (s *LoanService) recordApplicationEvent(ctx context.Context, userID, applicationID string, amount float64) {
	event := models.PaymentStatusEvent{
		EventID:    uuid.NewString(),
		EventType:  consts.EventTypeApplicationStatus,
		UserID:     userID,
		SubjectID:  applicationID,
		Status:     string(models.ApplicationStatusSubmitted),
		Amount:     amount,
		OccurredAt: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err == nil {
		if err := s.producer.Publish(ctx, userID, payload); err == nil {
			event.PublishedToKafka = true
		} else {
			logger.Error(ctx, "failed to publish application event %s: %v", event.EventID, err)
		}
	}
	if err := s.statusEvents.InsertEvent(ctx, event); err != nil {
		logger.Error(ctx, "failed to record application event %s: %v", event.EventID, err)
	}

	if err := s.notifier.Send(ctx, consts.NotificationEventApplicationSubmitted, userID, "",
		"Your loan application has been submitted and is under review."); err != nil {
		logger.Warn(ctx, "application notification failed for user %s: %v", userID, err)
	}
}

// Draft passthroughs. SaveDraft in the store forces DRAFT status and bumps
// the timestamp; resubmitting an old draft can never smuggle a status in.

func (s *LoanService) SaveCashDraft(ctx context.Context, draft models.CashLoanApplication) error {
	return s.cashDrafts.SaveDraft(ctx, draft)
}

func (s *LoanService) CashDraft(ctx context.Context, userID string) (*models.CashLoanApplication, error) {
	draft, err := s.cashDrafts.DraftByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrorDraftNotFound
		}
		return nil, err
	}
	return draft, nil
}

func (s *LoanService) DeleteCashDraft(ctx context.Context, userID string) error {
	return s.cashDrafts.DeleteDraft(ctx, userID)
}

func (s *LoanService) SavePayGoDraft(ctx context.Context, draft models.PayGoLoanApplication) error {
	return s.payGoDrafts.SaveDraft(ctx, draft)
}

func (s *LoanService) PayGoDraft(ctx context.Context, userID string) (*models.PayGoLoanApplication, error) {
	draft, err := s.payGoDrafts.DraftByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrorDraftNotFound
		}
		return nil, err
	}
	return draft, nil
}

func (s *LoanService) DeletePayGoDraft(ctx context.Context, userID string) error {
	return s.payGoDrafts.DeleteDraft(ctx, userID)
}

// Loans serves the cache unless it is stale or forceRefresh is set. A failed
// refresh degrades to cached data rather than an error when the cache has
// anything to offer.
func (s *LoanService) Loans(ctx context.Context, userID string, forceRefresh bool) ([]models.Loan, error) {
	if forceRefresh || s.syncGate.ShouldSync(ctx, userID, consts.SyncTypeLoans) {
		if err := s.SyncLoansFromRemote(ctx, userID); err != nil {
			cached, cacheErr := s.loans.LoansByUser(ctx, userID)
			if cacheErr == nil && len(cached) > 0 {
				logger.Warn(ctx, "loan sync failed for user %s, serving cache: %v", userID, err)
				return cached, nil
			}
			return nil, err
		}
	}
	return s.loans.LoansByUser(ctx, userID)
}

func (s *LoanService) SyncLoansFromRemote(ctx context.Context, userID string) error {
	loans, err := s.api.FetchLoans(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.loans.ReplaceAllForUser(ctx, userID, loans); err != nil {
		return err
	}
	return s.syncGate.MarkSynced(ctx, userID, consts.SyncTypeLoans)
}

func (s *LoanService) ActiveLoans(ctx context.Context, userID string) ([]models.Loan, error) {
	return s.loans.ActiveLoansByUser(ctx, userID)
}

func (s *LoanService) LoanDetails(ctx context.Context, loanID string) (models.Loan, error) {
	if cached, err := s.loans.LoanByID(ctx, loanID); err == nil {
		return *cached, nil
	}
	loan, err := s.api.FetchLoanDetails(ctx, loanID)
	if err != nil {
		return models.Loan{}, consts.ErrorLoanNotFound
	}
	if err := s.loans.UpsertLoan(ctx, loan); err != nil {
		logger.Warn(ctx, "failed to cache loan %s: %v", loanID, err)
	}
	return loan, nil
}

func (s *LoanService) LoanHistory(ctx context.Context, userID string, page, pageSize int64) ([]models.Loan, error) {
	return s.loans.LoanHistoryPage(ctx, userID, page, pageSize)
}

// ApplicationStatus asks the backend and records the answer locally, so the
// observe stream and offline reads serve the same state. A failed fetch
// degrades to the last locally recorded status.
func (s *LoanService) ApplicationStatus(ctx context.Context, applicationID string) (models.ApplicationStatus, error) {
	status, err := s.api.FetchApplicationStatus(ctx, applicationID)
	if err != nil {
		if raw, localErr := s.statusEvents.LatestStatusForSubject(ctx, applicationID); localErr == nil {
			logger.Warn(ctx, "status fetch failed for application %s, serving local state: %v", applicationID, err)
			return models.ParseApplicationStatus(raw), nil
		}
		return "", err
	}
	s.recordObservedStatus(ctx, applicationID, status)
	return status, nil
}

// recordObservedStatus caches a backend-reported status as a local event.
// The published flag is set because the event came from the backend; there is
// nothing to re-send.
func (s *LoanService) recordObservedStatus(ctx context.Context, applicationID string, status models.ApplicationStatus) {
	if raw, err := s.statusEvents.LatestStatusForSubject(ctx, applicationID); err == nil &&
		models.ParseApplicationStatus(raw) == status {
		return
	}

	event := models.PaymentStatusEvent{
		EventID:          uuid.NewString(),
		EventType:        consts.EventTypeApplicationStatus,
		SubjectID:        applicationID,
		Status:           string(status),
		OccurredAt:       time.Now(),
		PublishedToKafka: true,
	}
	if err := s.statusEvents.InsertEvent(ctx, event); err != nil {
		logger.Warn(ctx, "failed to record status for application %s: %v", applicationID, err)
		return
	}
	store.Hub().Notify(store.TopicApplications)
}

// ObserveLoanUpdates emits Loading, then the current loans, then a fresh read
// on every local store change. The returned cancel func must be called when
// the observer goes away.
func (s *LoanService) ObserveLoanUpdates(ctx context.Context, userID string) (<-chan result.Result[[]models.Loan], func()) {
	out := make(chan result.Result[[]models.Loan], 1)
	changes, unsubscribe := store.Hub().Subscribe(store.TopicLoans)
	done := make(chan struct{})

	go func() {
		defer close(out)
		out <- result.Loading[[]models.Loan]()
		s.emitLoans(ctx, userID, out, done)
		for {
			select {
			case <-changes:
				s.emitLoans(ctx, userID, out, done)
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		unsubscribe()
		close(done)
	}
	return out, cancel
}

func (s *LoanService) emitLoans(ctx context.Context, userID string, out chan<- result.Result[[]models.Loan], done <-chan struct{}) {
	loans, err := s.loans.LoansByUser(ctx, userID)
	res := result.Ok(loans)
	if err != nil {
		res = result.Fail[[]models.Loan](err)
	}
	// The send must never outlive the observer; an undrained channel would
	// otherwise pin this goroutine forever.
	select {
	case out <- res:
	case <-done:
	case <-ctx.Done():
	}
}

// ObserveApplicationStatus re-reads the locally recorded status on every
// application change signal. The stream never touches the network; submits
// and status fetches write the local record and signal the hub.
func (s *LoanService) ObserveApplicationStatus(ctx context.Context, applicationID string) (<-chan result.Result[models.ApplicationStatus], func()) {
	out := make(chan result.Result[models.ApplicationStatus], 1)
	changes, unsubscribe := store.Hub().Subscribe(store.TopicApplications)
	done := make(chan struct{})

	go func() {
		defer close(out)
		out <- result.Loading[models.ApplicationStatus]()
		s.emitApplicationStatus(ctx, applicationID, out, done)
		for {
			select {
			case <-changes:
				s.emitApplicationStatus(ctx, applicationID, out, done)
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		unsubscribe()
		close(done)
	}
	return out, cancel
}

func (s *LoanService) emitApplicationStatus(ctx context.Context, applicationID string, out chan<- result.Result[models.ApplicationStatus], done <-chan struct{}) {
	var res result.Result[models.ApplicationStatus]
	raw, err := s.statusEvents.LatestStatusForSubject(ctx, applicationID)
	switch {
	case err == nil:
		res = result.Ok(models.ParseApplicationStatus(raw))
	case errors.Is(err, mongo.ErrNoDocuments):
		// No local record means the application has not left draft here.
		res = result.Ok(models.ApplicationStatusDraft)
	default:
		res = result.Fail[models.ApplicationStatus](err)
	}

	select {
	case out <- res:
	case <-done:
	case <-ctx.Done():
	}
}
