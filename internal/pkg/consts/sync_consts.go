package consts

import "time"

// SyncType keys the sync_metadata collection; one timestamp per entity class.
type SyncType string

const (
	SyncTypeLoans     SyncType = "loans"
	SyncTypePayments  SyncType = "payments"
	SyncTypeDashboard SyncType = "dashboard"
	SyncTypeFormData  SyncType = "form_data"
)

// Default minimum intervals before a cached entity class is considered stale.
const (
	LoanSyncInterval      = 15 * time.Minute
	PaymentSyncInterval   = 5 * time.Minute
	DashboardSyncInterval = 2 * time.Minute
	FormDataSyncInterval  = 24 * time.Hour
)

const (
	EventTypeApplicationStatus = "APPLICATION_STATUS"
	EventTypePaymentStatus     = "PAYMENT_STATUS"

	NotificationEventPaymentSuccess     = "PAYMENT_SUCCESS"
	NotificationEventPaymentFailed      = "PAYMENT_FAILED"
	NotificationEventApplicationSubmitted = "APPLICATION_SUBMITTED"
	NotificationEventEarlyPayoff        = "EARLY_PAYOFF_COMPLETED"
)

// Minimum completed payments before early payoff becomes available.
const (
	CashEarlyPayoffMinPayments  = 2
	PayGoEarlyPayoffMinPayments = 4
)

// Heuristic savings applied to the remaining balance on an eligible payoff.
const EarlyPayoffSavingsRate = 0.05

const (
	ReportFileNameDateFormat = "20060102"
	ReportDateTimeFormat     = "2006-01-02 15:04:05"
)

var SensitiveKeys = []string{"Authorization", "X-Api-Key", "Pin", "Token"}
