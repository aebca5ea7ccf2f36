package consts

const (
	LoansCollection               = "loans"
	LoanDetailsCollection         = "loan_details"
	PaymentsCollection            = "payments"
	PaymentDashboardCollection    = "payment_dashboard"
	LoanDashboardCollection       = "loan_dashboard"
	CashDraftsCollection          = "cash_loan_drafts"
	PayGoDraftsCollection         = "paygo_loan_drafts"
	FormDataCollection            = "form_data_cache"
	SyncMetadataCollection        = "sync_metadata"
	PendingPaymentsCollection     = "pending_payment_transactions"
	StatusEventsCollection        = "status_events"
)
