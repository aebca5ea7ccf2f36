package services

import (
	"bytes"
	"context"
	"errors"
	"time"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var errStub = errors.New("stub failure")

// Hand rolled fakes. Behaviour is injected through function fields; a nil
// field means the call fails, so a test that forgets to stub a dependency
// fails loudly instead of passing on a zero value.

type fakeLoanAPI struct {
	fetchLoans         func(ctx context.Context, userID string) ([]models.Loan, error)
	fetchLoanDetails   func(ctx context.Context, loanID string) (models.Loan, error)
	fetchFormData      func(ctx context.Context) (models.CashLoanFormData, error)
	calculateCashTerms func(ctx context.Context, req models.CashLoanTermsRequest) (models.LoanTerms, error)
	calculatePayGo     func(ctx context.Context, req models.PayGoTermsRequest) (models.LoanTerms, error)
	submitCash         func(ctx context.Context, app models.CashLoanApplication) (string, error)
	submitPayGo        func(ctx context.Context, app models.PayGoLoanApplication) (string, error)
	fetchAppStatus     func(ctx context.Context, applicationID string) (models.ApplicationStatus, error)

	calls int
}

func (f *fakeLoanAPI) FetchLoans(ctx context.Context, userID string) ([]models.Loan, error) {
	f.calls++
	if f.fetchLoans == nil {
		return nil, errStub
	}
	return f.fetchLoans(ctx, userID)
}

func (f *fakeLoanAPI) FetchLoanDetails(ctx context.Context, loanID string) (models.Loan, error) {
	f.calls++
	if f.fetchLoanDetails == nil {
		return models.Loan{}, errStub
	}
	return f.fetchLoanDetails(ctx, loanID)
}

func (f *fakeLoanAPI) FetchCashLoanFormData(ctx context.Context) (models.CashLoanFormData, error) {
	f.calls++
	if f.fetchFormData == nil {
		return models.CashLoanFormData{}, errStub
	}
	return f.fetchFormData(ctx)
}

func (f *fakeLoanAPI) CalculateCashLoanTerms(ctx context.Context, req models.CashLoanTermsRequest) (models.LoanTerms, error) {
	f.calls++
	if f.calculateCashTerms == nil {
		return models.LoanTerms{}, errStub
	}
	return f.calculateCashTerms(ctx, req)
}

func (f *fakeLoanAPI) CalculatePayGoTerms(ctx context.Context, req models.PayGoTermsRequest) (models.LoanTerms, error) {
	f.calls++
	if f.calculatePayGo == nil {
		return models.LoanTerms{}, errStub
	}
	return f.calculatePayGo(ctx, req)
}

func (f *fakeLoanAPI) SubmitCashLoanApplication(ctx context.Context, app models.CashLoanApplication) (string, error) {
	f.calls++
	if f.submitCash == nil {
		return "", errStub
	}
	return f.submitCash(ctx, app)
}

func (f *fakeLoanAPI) SubmitPayGoLoanApplication(ctx context.Context, app models.PayGoLoanApplication) (string, error) {
	f.calls++
	if f.submitPayGo == nil {
		return "", errStub
	}
	return f.submitPayGo(ctx, app)
}

func (f *fakeLoanAPI) FetchApplicationStatus(ctx context.Context, applicationID string) (models.ApplicationStatus, error) {
	f.calls++
	if f.fetchAppStatus == nil {
		return models.ApplicationStatusDraft, errStub
	}
	return f.fetchAppStatus(ctx, applicationID)
}

type fakePaymentAPI struct {
	processPayment   func(ctx context.Context, userID string, req models.PaymentRequest) (models.PaymentProcessResponse, error)
	fetchPayments    func(ctx context.Context, userID string) ([]models.Payment, error)
	fetchStatus      func(ctx context.Context, paymentID string) (models.Payment, error)
	cancelPayment    func(ctx context.Context, paymentID string) error
	retryPayment     func(ctx context.Context, paymentID string) (models.PaymentProcessResponse, error)
	checkEligibility func(ctx context.Context, loanID string) (models.EarlyPayoffEligibility, error)
	calculatePayoff  func(ctx context.Context, loanID string) (models.EarlyPayoffQuote, error)
	processPayoff    func(ctx context.Context, loanID string, req models.EarlyPayoffRequest) (models.PaymentProcessResponse, error)

	calls int
}

func (f *fakePaymentAPI) ProcessPayment(ctx context.Context, userID string, req models.PaymentRequest) (models.PaymentProcessResponse, error) {
	f.calls++
	if f.processPayment == nil {
		return models.PaymentProcessResponse{}, errStub
	}
	return f.processPayment(ctx, userID, req)
}

func (f *fakePaymentAPI) FetchPayments(ctx context.Context, userID string) ([]models.Payment, error) {
	f.calls++
	if f.fetchPayments == nil {
		return nil, errStub
	}
	return f.fetchPayments(ctx, userID)
}

func (f *fakePaymentAPI) FetchPaymentStatus(ctx context.Context, paymentID string) (models.Payment, error) {
	f.calls++
	if f.fetchStatus == nil {
		return models.Payment{}, errStub
	}
	return f.fetchStatus(ctx, paymentID)
}

func (f *fakePaymentAPI) CancelPayment(ctx context.Context, paymentID string) error {
	f.calls++
	if f.cancelPayment == nil {
		return errStub
	}
	return f.cancelPayment(ctx, paymentID)
}

func (f *fakePaymentAPI) RetryPayment(ctx context.Context, paymentID string) (models.PaymentProcessResponse, error) {
	f.calls++
	if f.retryPayment == nil {
		return models.PaymentProcessResponse{}, errStub
	}
	return f.retryPayment(ctx, paymentID)
}

func (f *fakePaymentAPI) CheckEarlyPayoffEligibility(ctx context.Context, loanID string) (models.EarlyPayoffEligibility, error) {
	f.calls++
	if f.checkEligibility == nil {
		return models.EarlyPayoffEligibility{}, errStub
	}
	return f.checkEligibility(ctx, loanID)
}

func (f *fakePaymentAPI) CalculateEarlyPayoff(ctx context.Context, loanID string) (models.EarlyPayoffQuote, error) {
	f.calls++
	if f.calculatePayoff == nil {
		return models.EarlyPayoffQuote{}, errStub
	}
	return f.calculatePayoff(ctx, loanID)
}

func (f *fakePaymentAPI) ProcessEarlyPayoff(ctx context.Context, loanID string, req models.EarlyPayoffRequest) (models.PaymentProcessResponse, error) {
	f.calls++
	if f.processPayoff == nil {
		return models.PaymentProcessResponse{}, errStub
	}
	return f.processPayoff(ctx, loanID, req)
}

type fakeAuthAPI struct {
	sendOtp       func(ctx context.Context, phoneNumber string) (models.OtpSession, error)
	verifyOtp     func(ctx context.Context, sessionID, otp string) (string, error)
	setPin        func(ctx context.Context, tempToken, pin string) (models.AuthToken, error)
	login         func(ctx context.Context, phoneNumber, pin string) (models.AuthToken, error)
	refreshToken  func(ctx context.Context, refreshToken string) (models.AuthToken, error)
	logout        func(ctx context.Context, accessToken string) error
	updatePin     func(ctx context.Context, accessToken, currentPin, newPin string) error
	createClient  func(ctx context.Context, tempToken string, user models.User) (models.User, error)
	startChange   func(ctx context.Context, accessToken, newPhoneNumber string) (string, error)
	verifyChange  func(ctx context.Context, accessToken, changeToken, otp string) error
	confirmChange func(ctx context.Context, accessToken, changeToken, pin string) (models.User, error)

	updatePinCalls int
}

func (f *fakeAuthAPI) SendOtp(ctx context.Context, phoneNumber string) (models.OtpSession, error) {
	if f.sendOtp == nil {
		return models.OtpSession{}, errStub
	}
	return f.sendOtp(ctx, phoneNumber)
}

func (f *fakeAuthAPI) VerifyOtp(ctx context.Context, sessionID, otp string) (string, error) {
	if f.verifyOtp == nil {
		return "", errStub
	}
	return f.verifyOtp(ctx, sessionID, otp)
}

func (f *fakeAuthAPI) SetPin(ctx context.Context, tempToken, pin string) (models.AuthToken, error) {
	if f.setPin == nil {
		return models.AuthToken{}, errStub
	}
	return f.setPin(ctx, tempToken, pin)
}

func (f *fakeAuthAPI) Login(ctx context.Context, phoneNumber, pin string) (models.AuthToken, error) {
	if f.login == nil {
		return models.AuthToken{}, errStub
	}
	return f.login(ctx, phoneNumber, pin)
}

func (f *fakeAuthAPI) RefreshToken(ctx context.Context, refreshToken string) (models.AuthToken, error) {
	if f.refreshToken == nil {
		return models.AuthToken{}, errStub
	}
	return f.refreshToken(ctx, refreshToken)
}

func (f *fakeAuthAPI) Logout(ctx context.Context, accessToken string) error {
	if f.logout == nil {
		return errStub
	}
	return f.logout(ctx, accessToken)
}

func (f *fakeAuthAPI) UpdatePin(ctx context.Context, accessToken, currentPin, newPin string) error {
	f.updatePinCalls++
	if f.updatePin == nil {
		return errStub
	}
	return f.updatePin(ctx, accessToken, currentPin, newPin)
}

func (f *fakeAuthAPI) CreateClient(ctx context.Context, tempToken string, user models.User) (models.User, error) {
	if f.createClient == nil {
		return models.User{}, errStub
	}
	return f.createClient(ctx, tempToken, user)
}

func (f *fakeAuthAPI) StartMobileChange(ctx context.Context, accessToken, newPhoneNumber string) (string, error) {
	if f.startChange == nil {
		return "", errStub
	}
	return f.startChange(ctx, accessToken, newPhoneNumber)
}

func (f *fakeAuthAPI) VerifyMobileChange(ctx context.Context, accessToken, changeToken, otp string) error {
	if f.verifyChange == nil {
		return errStub
	}
	return f.verifyChange(ctx, accessToken, changeToken, otp)
}

func (f *fakeAuthAPI) ConfirmMobileChange(ctx context.Context, accessToken, changeToken, pin string) (models.User, error) {
	if f.confirmChange == nil {
		return models.User{}, errStub
	}
	return f.confirmChange(ctx, accessToken, changeToken, pin)
}

type fakeProfileAPI struct {
	fetchProfile    func(ctx context.Context, userID string) (models.User, error)
	updateProfile   func(ctx context.Context, user models.User) (models.User, error)
	registerUpload  func(ctx context.Context, userID, documentType, objectURL string) error
	fetchCompletion func(ctx context.Context, userID string) (models.ProfileCompletion, error)
}

func (f *fakeProfileAPI) FetchProfile(ctx context.Context, userID string) (models.User, error) {
	if f.fetchProfile == nil {
		return models.User{}, errStub
	}
	return f.fetchProfile(ctx, userID)
}

func (f *fakeProfileAPI) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	if f.updateProfile == nil {
		return models.User{}, errStub
	}
	return f.updateProfile(ctx, user)
}

func (f *fakeProfileAPI) RegisterDocumentUpload(ctx context.Context, userID, documentType, objectURL string) error {
	if f.registerUpload == nil {
		return errStub
	}
	return f.registerUpload(ctx, userID, documentType, objectURL)
}

func (f *fakeProfileAPI) FetchProfileCompletion(ctx context.Context, userID string) (models.ProfileCompletion, error) {
	if f.fetchCompletion == nil {
		return models.ProfileCompletion{}, errStub
	}
	return f.fetchCompletion(ctx, userID)
}

// In memory stand-ins for the Mongo repositories.

type fakeLoansRepo struct {
	loans   map[string]models.Loan
	upserts int
}

func newFakeLoansRepo(loans ...models.Loan) *fakeLoansRepo {
	repo := &fakeLoansRepo{loans: map[string]models.Loan{}}
	for _, l := range loans {
		repo.loans[l.LoanID] = l
	}
	return repo
}

func (f *fakeLoansRepo) LoanByID(ctx context.Context, loanID string) (*models.Loan, error) {
	loan, ok := f.loans[loanID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &loan, nil
}

func (f *fakeLoansRepo) LoansByUser(ctx context.Context, userID string) ([]models.Loan, error) {
	var out []models.Loan
	for _, l := range f.loans {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLoansRepo) ActiveLoansByUser(ctx context.Context, userID string) ([]models.Loan, error) {
	var out []models.Loan
	for _, l := range f.loans {
		if l.UserID == userID && l.Status == models.LoanStatusActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLoansRepo) LoanHistoryPage(ctx context.Context, userID string, page, pageSize int64) ([]models.Loan, error) {
	return f.LoansByUser(ctx, userID)
}

func (f *fakeLoansRepo) ReplaceAllForUser(ctx context.Context, userID string, loans []models.Loan) error {
	for id, l := range f.loans {
		if l.UserID == userID {
			delete(f.loans, id)
		}
	}
	for _, l := range loans {
		f.loans[l.LoanID] = l
	}
	return nil
}

func (f *fakeLoansRepo) UpsertLoan(ctx context.Context, loan models.Loan) error {
	f.upserts++
	f.loans[loan.LoanID] = loan
	return nil
}

type fakePaymentsRepo struct {
	payments map[string]models.Payment
}

func newFakePaymentsRepo(payments ...models.Payment) *fakePaymentsRepo {
	repo := &fakePaymentsRepo{payments: map[string]models.Payment{}}
	for _, p := range payments {
		repo.payments[p.PaymentID] = p
	}
	return repo
}

func (f *fakePaymentsRepo) PaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	p, ok := f.payments[paymentID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

func (f *fakePaymentsRepo) PaymentsByLoan(ctx context.Context, loanID string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.LoanID == loanID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentsRepo) PaymentsByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentsRepo) PaymentsByUserBetween(ctx context.Context, userID string, start, end time.Time) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.UserID == userID && !p.CreatedAt.Before(start) && !p.CreatedAt.After(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentsRepo) InsertPayment(ctx context.Context, payment models.Payment) error {
	f.payments[payment.PaymentID] = payment
	return nil
}

func (f *fakePaymentsRepo) UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus, failureReason string) error {
	p, ok := f.payments[paymentID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Status = status
	p.FailureReason = failureReason
	f.payments[paymentID] = p
	return nil
}

func (f *fakePaymentsRepo) ReplaceAllForUser(ctx context.Context, userID string, payments []models.Payment) error {
	for id, p := range f.payments {
		if p.UserID == userID {
			delete(f.payments, id)
		}
	}
	for _, p := range payments {
		f.payments[p.PaymentID] = p
	}
	return nil
}

type fakeCashDraftsRepo struct {
	drafts  map[string]models.CashLoanApplication
	deletes int
}

func newFakeCashDraftsRepo() *fakeCashDraftsRepo {
	return &fakeCashDraftsRepo{drafts: map[string]models.CashLoanApplication{}}
}

func (f *fakeCashDraftsRepo) SaveDraft(ctx context.Context, draft models.CashLoanApplication) error {
	draft.Status = models.ApplicationStatusDraft
	f.drafts[draft.UserID] = draft
	return nil
}

func (f *fakeCashDraftsRepo) DraftByUser(ctx context.Context, userID string) (*models.CashLoanApplication, error) {
	d, ok := f.drafts[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &d, nil
}

func (f *fakeCashDraftsRepo) DeleteDraft(ctx context.Context, userID string) error {
	f.deletes++
	delete(f.drafts, userID)
	return nil
}

type fakePayGoDraftsRepo struct {
	drafts  map[string]models.PayGoLoanApplication
	deletes int
}

func newFakePayGoDraftsRepo() *fakePayGoDraftsRepo {
	return &fakePayGoDraftsRepo{drafts: map[string]models.PayGoLoanApplication{}}
}

func (f *fakePayGoDraftsRepo) SaveDraft(ctx context.Context, draft models.PayGoLoanApplication) error {
	draft.Status = models.ApplicationStatusDraft
	f.drafts[draft.UserID] = draft
	return nil
}

func (f *fakePayGoDraftsRepo) DraftByUser(ctx context.Context, userID string) (*models.PayGoLoanApplication, error) {
	d, ok := f.drafts[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &d, nil
}

func (f *fakePayGoDraftsRepo) DeleteDraft(ctx context.Context, userID string) error {
	f.deletes++
	delete(f.drafts, userID)
	return nil
}

type fakeFormDataRepo struct {
	data *models.CashLoanFormData
}

func (f *fakeFormDataRepo) CashLoanFormData(ctx context.Context) (*models.CashLoanFormData, error) {
	if f.data == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.data, nil
}

func (f *fakeFormDataRepo) SaveCashLoanFormData(ctx context.Context, formData models.CashLoanFormData) error {
	f.data = &formData
	return nil
}

type fakePendingRepo struct {
	beginErr error
	began    []string
	finished []string
}

func (f *fakePendingRepo) Begin(ctx context.Context, userID, loanID, paymentID string) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.began = append(f.began, paymentID)
	return nil
}

func (f *fakePendingRepo) Finish(ctx context.Context, paymentID string) error {
	f.finished = append(f.finished, paymentID)
	return nil
}

type fakeStatusEventsRepo struct {
	events []models.PaymentStatusEvent
}

func (f *fakeStatusEventsRepo) InsertEvent(ctx context.Context, event models.PaymentStatusEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeStatusEventsRepo) LatestStatusForSubject(ctx context.Context, subjectID string) (string, error) {
	var latest *models.PaymentStatusEvent
	for i := range f.events {
		e := &f.events[i]
		if e.SubjectID != subjectID {
			continue
		}
		if latest == nil || e.OccurredAt.After(latest.OccurredAt) {
			latest = e
		}
	}
	if latest == nil {
		return "", mongo.ErrNoDocuments
	}
	return latest.Status, nil
}

type fakeDashboardRepo struct {
	dashboard *models.PaymentDashboard
	recorded  []float64
}

func (f *fakeDashboardRepo) DashboardByUser(ctx context.Context, userID string) (*models.PaymentDashboard, error) {
	if f.dashboard == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.dashboard, nil
}

func (f *fakeDashboardRepo) UpsertDashboard(ctx context.Context, dashboard models.PaymentDashboard) error {
	f.dashboard = &dashboard
	return nil
}

func (f *fakeDashboardRepo) RecordSuccessfulPayment(ctx context.Context, userID string, amount float64, at time.Time) error {
	f.recorded = append(f.recorded, amount)
	return nil
}

type fakeSyncGate struct {
	stale  bool
	marked []consts.SyncType
}

func (f *fakeSyncGate) ShouldSync(ctx context.Context, userID string, syncType consts.SyncType) bool {
	return f.stale
}

func (f *fakeSyncGate) MarkSynced(ctx context.Context, userID string, syncType consts.SyncType) error {
	f.marked = append(f.marked, syncType)
	return nil
}

type fakePublisher struct {
	err       error
	published [][]byte
	keys      []string
}

func (f *fakePublisher) Publish(ctx context.Context, key string, msg []byte) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) Send(ctx context.Context, eventType, userID, phoneNumber, message string) error {
	f.events = append(f.events, eventType)
	return nil
}

type fakeTokenStorage struct {
	tokens   map[string]models.AuthToken
	temp     map[string]string
	stages   map[string]string
	attempts map[string]int64
	pins     map[string][]byte

	attemptErr error
}

func newFakeTokenStorage() *fakeTokenStorage {
	return &fakeTokenStorage{
		tokens:   map[string]models.AuthToken{},
		temp:     map[string]string{},
		stages:   map[string]string{},
		attempts: map[string]int64{},
		pins:     map[string][]byte{},
	}
}

func (f *fakeTokenStorage) SaveAuthToken(ctx context.Context, token models.AuthToken) error {
	f.tokens[token.UserID] = token
	return nil
}

func (f *fakeTokenStorage) AuthToken(ctx context.Context, userID string) (*models.AuthToken, error) {
	t, ok := f.tokens[userID]
	if !ok {
		return nil, consts.ErrorNotLoggedIn
	}
	return &t, nil
}

func (f *fakeTokenStorage) DeleteAuthToken(ctx context.Context, userID string) error {
	delete(f.tokens, userID)
	return nil
}

func (f *fakeTokenStorage) HasAuthToken(ctx context.Context, userID string) (bool, error) {
	_, ok := f.tokens[userID]
	return ok, nil
}

func (f *fakeTokenStorage) SaveTempToken(ctx context.Context, phoneNumber, tempToken string) error {
	f.temp[phoneNumber] = tempToken
	return nil
}

func (f *fakeTokenStorage) TempToken(ctx context.Context, phoneNumber string) (string, error) {
	t, ok := f.temp[phoneNumber]
	if !ok {
		return "", consts.ErrorTokenExpired
	}
	return t, nil
}

func (f *fakeTokenStorage) SaveChangeStage(ctx context.Context, changeToken, stage string) error {
	f.stages[changeToken] = stage
	return nil
}

func (f *fakeTokenStorage) ChangeStage(ctx context.Context, changeToken string) (string, error) {
	s, ok := f.stages[changeToken]
	if !ok {
		return "", consts.ErrorChangeTokenInvalid
	}
	return s, nil
}

func (f *fakeTokenStorage) DeleteChangeStage(ctx context.Context, changeToken string) error {
	delete(f.stages, changeToken)
	return nil
}

func (f *fakeTokenStorage) CountOtpAttempt(ctx context.Context, sessionID string) (int64, error) {
	if f.attemptErr != nil {
		return 0, f.attemptErr
	}
	f.attempts[sessionID]++
	return f.attempts[sessionID], nil
}

func (f *fakeTokenStorage) ResetOtpAttempts(ctx context.Context, sessionID string) error {
	delete(f.attempts, sessionID)
	return nil
}

func (f *fakeTokenStorage) SavePinHash(ctx context.Context, userID string, pinHash []byte) error {
	f.pins[userID] = pinHash
	return nil
}

func (f *fakeTokenStorage) PinHash(ctx context.Context, userID string) ([]byte, error) {
	h, ok := f.pins[userID]
	if !ok {
		return nil, consts.ErrorNotLoggedIn
	}
	return h, nil
}

func (f *fakeTokenStorage) DeletePinHash(ctx context.Context, userID string) error {
	delete(f.pins, userID)
	return nil
}

type fakeProfileCache struct {
	profiles    map[string]models.User
	invalidated []string
}

func newFakeProfileCache() *fakeProfileCache {
	return &fakeProfileCache{profiles: map[string]models.User{}}
}

func (f *fakeProfileCache) SaveProfile(ctx context.Context, user models.User) error {
	f.profiles[user.UserID] = user
	return nil
}

func (f *fakeProfileCache) Profile(ctx context.Context, userID string) (*models.User, error) {
	u, ok := f.profiles[userID]
	if !ok {
		return nil, consts.ErrorProfileNotCached
	}
	return &u, nil
}

func (f *fakeProfileCache) Invalidate(ctx context.Context, userID string) error {
	f.invalidated = append(f.invalidated, userID)
	delete(f.profiles, userID)
	return nil
}

type fakePreferencesStore struct {
	prefs map[string]models.UserPreferences
}

func (f *fakePreferencesStore) SavePreferences(ctx context.Context, userID string, prefs models.UserPreferences) error {
	if f.prefs == nil {
		f.prefs = map[string]models.UserPreferences{}
	}
	f.prefs[userID] = prefs
	return nil
}

func (f *fakePreferencesStore) Preferences(ctx context.Context, userID string) (models.UserPreferences, error) {
	p, ok := f.prefs[userID]
	if !ok {
		return models.UserPreferences{Language: "en", NotificationsEnabled: true}, nil
	}
	return p, nil
}

type fakeObjectStorage struct {
	uploads map[string][]byte
	err     error
}

func (f *fakeObjectStorage) Upload(ctx context.Context, objectName string, data *bytes.Buffer) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[objectName] = data.Bytes()
	return "gs://test-bucket/" + objectName, nil
}

type fakeSFTP struct {
	paths []string
	err   error
}

func (f *fakeSFTP) UploadFileToSFTP(data *bytes.Buffer, remoteFilePath string) error {
	if f.err != nil {
		return f.err
	}
	f.paths = append(f.paths, remoteFilePath)
	return nil
}
