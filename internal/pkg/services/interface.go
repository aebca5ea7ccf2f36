package services

import (
	"bytes"
	"context"
	"time"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/result"
)

// Remote client ports. The concrete implementations live in the remote
// package; services only see these.

type AuthAPIInterface interface {
	SendOtp(ctx context.Context, phoneNumber string) (models.OtpSession, error)
	VerifyOtp(ctx context.Context, sessionID string, otp string) (string, error)
	SetPin(ctx context.Context, tempToken string, pin string) (models.AuthToken, error)
	Login(ctx context.Context, phoneNumber string, pin string) (models.AuthToken, error)
	RefreshToken(ctx context.Context, refreshToken string) (models.AuthToken, error)
	Logout(ctx context.Context, accessToken string) error
	UpdatePin(ctx context.Context, accessToken string, currentPin string, newPin string) error
	CreateClient(ctx context.Context, tempToken string, user models.User) (models.User, error)
	StartMobileChange(ctx context.Context, accessToken string, newPhoneNumber string) (string, error)
	VerifyMobileChange(ctx context.Context, accessToken string, changeToken string, otp string) error
	ConfirmMobileChange(ctx context.Context, accessToken string, changeToken string, pin string) (models.User, error)
}

type LoanAPIInterface interface {
	FetchLoans(ctx context.Context, userID string) ([]models.Loan, error)
	FetchLoanDetails(ctx context.Context, loanID string) (models.Loan, error)
	FetchCashLoanFormData(ctx context.Context) (models.CashLoanFormData, error)
	CalculateCashLoanTerms(ctx context.Context, req models.CashLoanTermsRequest) (models.LoanTerms, error)
	CalculatePayGoTerms(ctx context.Context, req models.PayGoTermsRequest) (models.LoanTerms, error)
	SubmitCashLoanApplication(ctx context.Context, app models.CashLoanApplication) (string, error)
	SubmitPayGoLoanApplication(ctx context.Context, app models.PayGoLoanApplication) (string, error)
	FetchApplicationStatus(ctx context.Context, applicationID string) (models.ApplicationStatus, error)
}

type PaymentAPIInterface interface {
	ProcessPayment(ctx context.Context, userID string, req models.PaymentRequest) (models.PaymentProcessResponse, error)
	FetchPayments(ctx context.Context, userID string) ([]models.Payment, error)
	FetchPaymentStatus(ctx context.Context, paymentID string) (models.Payment, error)
	CancelPayment(ctx context.Context, paymentID string) error
	RetryPayment(ctx context.Context, paymentID string) (models.PaymentProcessResponse, error)
	CheckEarlyPayoffEligibility(ctx context.Context, loanID string) (models.EarlyPayoffEligibility, error)
	CalculateEarlyPayoff(ctx context.Context, loanID string) (models.EarlyPayoffQuote, error)
	ProcessEarlyPayoff(ctx context.Context, loanID string, req models.EarlyPayoffRequest) (models.PaymentProcessResponse, error)
}

type ProfileAPIInterface interface {
	FetchProfile(ctx context.Context, userID string) (models.User, error)
	UpdateProfile(ctx context.Context, user models.User) (models.User, error)
	RegisterDocumentUpload(ctx context.Context, userID string, documentType string, objectURL string) error
	FetchProfileCompletion(ctx context.Context, userID string) (models.ProfileCompletion, error)
}

// Local store ports.

type LoansRepoInterface interface {
	LoanByID(ctx context.Context, loanID string) (*models.Loan, error)
	LoansByUser(ctx context.Context, userID string) ([]models.Loan, error)
	ActiveLoansByUser(ctx context.Context, userID string) ([]models.Loan, error)
	LoanHistoryPage(ctx context.Context, userID string, page, pageSize int64) ([]models.Loan, error)
	ReplaceAllForUser(ctx context.Context, userID string, loans []models.Loan) error
	UpsertLoan(ctx context.Context, loan models.Loan) error
}

type PaymentsRepoInterface interface {
	PaymentByID(ctx context.Context, paymentID string) (*models.Payment, error)
	PaymentsByLoan(ctx context.Context, loanID string) ([]models.Payment, error)
	PaymentsByUser(ctx context.Context, userID string) ([]models.Payment, error)
	PaymentsByUserBetween(ctx context.Context, userID string, start, end time.Time) ([]models.Payment, error)
	InsertPayment(ctx context.Context, payment models.Payment) error
	UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus, failureReason string) error
	ReplaceAllForUser(ctx context.Context, userID string, payments []models.Payment) error
}

type CashDraftsRepoInterface interface {
	SaveDraft(ctx context.Context, draft models.CashLoanApplication) error
	DraftByUser(ctx context.Context, userID string) (*models.CashLoanApplication, error)
	DeleteDraft(ctx context.Context, userID string) error
}

type PayGoDraftsRepoInterface interface {
	SaveDraft(ctx context.Context, draft models.PayGoLoanApplication) error
	DraftByUser(ctx context.Context, userID string) (*models.PayGoLoanApplication, error)
	DeleteDraft(ctx context.Context, userID string) error
}

type FormDataRepoInterface interface {
	CashLoanFormData(ctx context.Context) (*models.CashLoanFormData, error)
	SaveCashLoanFormData(ctx context.Context, formData models.CashLoanFormData) error
}

type PendingPaymentsRepoInterface interface {
	Begin(ctx context.Context, userID, loanID, paymentID string) error
	Finish(ctx context.Context, paymentID string) error
}

type StatusEventsRepoInterface interface {
	InsertEvent(ctx context.Context, event models.PaymentStatusEvent) error
	LatestStatusForSubject(ctx context.Context, subjectID string) (string, error)
}

type PaymentDashboardRepoInterface interface {
	DashboardByUser(ctx context.Context, userID string) (*models.PaymentDashboard, error)
	UpsertDashboard(ctx context.Context, dashboard models.PaymentDashboard) error
	RecordSuccessfulPayment(ctx context.Context, userID string, amount float64, at time.Time) error
}

type SyncGateInterface interface {
	ShouldSync(ctx context.Context, userID string, syncType consts.SyncType) bool
	MarkSynced(ctx context.Context, userID string, syncType consts.SyncType) error
}

// Redis backed ports.

type TokenStorageInterface interface {
	SaveAuthToken(ctx context.Context, token models.AuthToken) error
	AuthToken(ctx context.Context, userID string) (*models.AuthToken, error)
	DeleteAuthToken(ctx context.Context, userID string) error
	HasAuthToken(ctx context.Context, userID string) (bool, error)
	SaveTempToken(ctx context.Context, phoneNumber, tempToken string) error
	TempToken(ctx context.Context, phoneNumber string) (string, error)
	SaveChangeStage(ctx context.Context, changeToken, stage string) error
	ChangeStage(ctx context.Context, changeToken string) (string, error)
	DeleteChangeStage(ctx context.Context, changeToken string) error
	CountOtpAttempt(ctx context.Context, sessionID string) (int64, error)
	ResetOtpAttempts(ctx context.Context, sessionID string) error
	SavePinHash(ctx context.Context, userID string, pinHash []byte) error
	PinHash(ctx context.Context, userID string) ([]byte, error)
	DeletePinHash(ctx context.Context, userID string) error
}

type ProfileCacheInterface interface {
	SaveProfile(ctx context.Context, user models.User) error
	Profile(ctx context.Context, userID string) (*models.User, error)
	Invalidate(ctx context.Context, userID string) error
}

type PreferencesStoreInterface interface {
	SavePreferences(ctx context.Context, userID string, prefs models.UserPreferences) error
	Preferences(ctx context.Context, userID string) (models.UserPreferences, error)
}

// Messaging ports.

type EventPublisherInterface interface {
	Publish(ctx context.Context, key string, msg []byte) error
}

type NotificationServiceInterface interface {
	Send(ctx context.Context, eventType, userID, phoneNumber, message string) error
}

// Export ports for the reporting pipeline.

type ObjectStorageInterface interface {
	Upload(ctx context.Context, objectName string, data *bytes.Buffer) (string, error)
}

type SFTPClientInterface interface {
	UploadFileToSFTP(data *bytes.Buffer, remoteFilePath string) error
}

// Service surface consumed by the HTTP layer.

type AuthServiceInterface interface {
	SendOtp(ctx context.Context, phoneNumber string) (models.OtpSession, error)
	VerifyOtp(ctx context.Context, sessionID, phoneNumber, otp string) (string, error)
	SetPin(ctx context.Context, phoneNumber, pin string) (models.AuthToken, error)
	Login(ctx context.Context, phoneNumber, pin string) (models.AuthToken, error)
	RefreshSession(ctx context.Context, userID string) (models.AuthToken, error)
	Logout(ctx context.Context, userID string) error
	IsLoggedIn(ctx context.Context, userID string) bool
	CurrentToken(ctx context.Context, userID string) (*models.AuthToken, error)
	UpdatePin(ctx context.Context, userID, currentPin, newPin string) error
	CreateClient(ctx context.Context, phoneNumber string, user models.User) (models.User, error)
	StartMobileChange(ctx context.Context, userID, newPhoneNumber string) (string, error)
	VerifyMobileChange(ctx context.Context, userID, changeToken, otp string) error
	ConfirmMobileChange(ctx context.Context, userID, changeToken, pin string) (models.User, error)
}

type LoanServiceInterface interface {
	CashLoanFormData(ctx context.Context, forceRefresh bool) (models.CashLoanFormData, error)
	CalculateCashLoanTerms(ctx context.Context, req models.CashLoanTermsRequest) (models.LoanTerms, error)
	CalculatePayGoTerms(ctx context.Context, req models.PayGoTermsRequest) (models.LoanTerms, error)
	SubmitCashLoanApplication(ctx context.Context, app models.CashLoanApplication) (string, error)
	SubmitPayGoLoanApplication(ctx context.Context, app models.PayGoLoanApplication) (string, error)
	SaveCashDraft(ctx context.Context, draft models.CashLoanApplication) error
	CashDraft(ctx context.Context, userID string) (*models.CashLoanApplication, error)
	DeleteCashDraft(ctx context.Context, userID string) error
	SavePayGoDraft(ctx context.Context, draft models.PayGoLoanApplication) error
	PayGoDraft(ctx context.Context, userID string) (*models.PayGoLoanApplication, error)
	DeletePayGoDraft(ctx context.Context, userID string) error
	Loans(ctx context.Context, userID string, forceRefresh bool) ([]models.Loan, error)
	ActiveLoans(ctx context.Context, userID string) ([]models.Loan, error)
	LoanDetails(ctx context.Context, loanID string) (models.Loan, error)
	LoanHistory(ctx context.Context, userID string, page, pageSize int64) ([]models.Loan, error)
	ApplicationStatus(ctx context.Context, applicationID string) (models.ApplicationStatus, error)
	ObserveLoanUpdates(ctx context.Context, userID string) (<-chan result.Result[[]models.Loan], func())
	ObserveApplicationStatus(ctx context.Context, applicationID string) (<-chan result.Result[models.ApplicationStatus], func())
}

type PaymentServiceInterface interface {
	ProcessPayment(ctx context.Context, userID string, req models.PaymentRequest) (models.PaymentProcessResponse, error)
	Payments(ctx context.Context, userID string, forceRefresh bool) ([]models.Payment, error)
	PaymentsForLoan(ctx context.Context, loanID string) ([]models.Payment, error)
	PaymentStatus(ctx context.Context, paymentID string) (models.Payment, error)
	CancelPayment(ctx context.Context, userID, paymentID string) error
	RetryPayment(ctx context.Context, userID, paymentID string) (models.PaymentProcessResponse, error)
	PaymentDashboard(ctx context.Context, userID string, forceRefresh bool) (models.PaymentDashboard, error)
	CheckEarlyPayoffEligibility(ctx context.Context, loanID string) (models.EarlyPayoffEligibility, error)
	CalculateEarlyPayoff(ctx context.Context, loanID string) (models.EarlyPayoffQuote, error)
	ProcessEarlyPayoff(ctx context.Context, userID, loanID string, req models.EarlyPayoffRequest) (models.PaymentProcessResponse, error)
}

type ProfileServiceInterface interface {
	Profile(ctx context.Context, userID string, forceRefresh bool) (models.User, error)
	UpdateProfile(ctx context.Context, user models.User) (models.User, error)
	UploadDocument(ctx context.Context, userID, documentType, fileName string, content []byte) (string, error)
	ProfileCompletion(ctx context.Context, userID string) (models.ProfileCompletion, error)
	Preferences(ctx context.Context, userID string) (models.UserPreferences, error)
	SavePreferences(ctx context.Context, userID string, prefs models.UserPreferences) error
}

type ReportServiceInterface interface {
	GeneratePaymentReport(ctx context.Context, userID string, reportType models.ReportType, start, end time.Time) (models.PaymentReport, error)
}

type ReportExportServiceInterface interface {
	ExportPaymentReport(ctx context.Context, report models.PaymentReport) (string, error)
}
