package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusSuccess    PaymentStatus = "SUCCESS"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
	PaymentStatusReversed   PaymentStatus = "REVERSED"
	PaymentStatusUnknown    PaymentStatus = "UNKNOWN"
)

func ParsePaymentStatus(s string) PaymentStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(PaymentStatusPending):
		return PaymentStatusPending
	case string(PaymentStatusProcessing):
		return PaymentStatusProcessing
	case string(PaymentStatusSuccess):
		return PaymentStatusSuccess
	case string(PaymentStatusFailed):
		return PaymentStatusFailed
	case string(PaymentStatusCancelled):
		return PaymentStatusCancelled
	case string(PaymentStatusReversed):
		return PaymentStatusReversed
	default:
		return PaymentStatusUnknown
	}
}

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PaymentID     string             `bson:"paymentId" json:"payment_id"`
	LoanID        string             `bson:"loanId" json:"loan_id"`
	UserID        string             `bson:"userId" json:"user_id"`
	Amount        float64            `bson:"amount" json:"amount"`
	Method        string             `bson:"method" json:"method"`
	PhoneNumber   string             `bson:"phoneNumber" json:"phone_number"`
	ReceiptNumber string             `bson:"receiptNumber" json:"receipt_number"`
	Status        PaymentStatus      `bson:"status" json:"status"`
	// FailureReason is only populated when Status is FAILED.
	FailureReason string     `bson:"failureReason,omitempty" json:"failure_reason,omitempty"`
	Principal     float64    `bson:"principal" json:"principal"`
	Interest      float64    `bson:"interest" json:"interest"`
	Penalties     float64    `bson:"penalties" json:"penalties"`
	CreatedAt     time.Time  `bson:"createdAt" json:"created_at"`
	ProcessedAt   *time.Time `bson:"processedAt,omitempty" json:"processed_at,omitempty"`
}

type PaymentRequest struct {
	LoanID      string  `json:"loan_id"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	PhoneNumber string  `json:"phone_number"`
}

// EarlyPayoffEligibility is derived from a loan's current counters; it is
// never persisted.
type EarlyPayoffEligibility struct {
	IsEligible       bool     `json:"is_eligible"`
	Reasons          []string `json:"reasons"`
	EstimatedSavings float64  `json:"estimated_savings"`
}

type EarlyPayoffQuote struct {
	LoanID         string    `json:"loan_id"`
	PayoffAmount   float64   `json:"payoff_amount"`
	Savings        float64   `json:"savings"`
	ValidUntil     time.Time `json:"valid_until"`
	QuoteReference string    `json:"quote_reference"`
}

type EarlyPayoffRequest struct {
	QuoteReference string  `json:"quote_reference"`
	Amount         float64 `json:"amount"`
	Method         string  `json:"method"`
	PhoneNumber    string  `json:"phone_number"`
}

type PaymentProcessResponse struct {
	PaymentID string        `json:"payment_id"`
	Status    PaymentStatus `json:"status"`
	Message   string        `json:"message"`
}

type PaymentDashboard struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"userId" json:"user_id"`
	TotalPaid       float64            `bson:"totalPaid" json:"total_paid"`
	PaymentsThisMonth int              `bson:"paymentsThisMonth" json:"payments_this_month"`
	LastPaymentAt   *time.Time         `bson:"lastPaymentAt,omitempty" json:"last_payment_at,omitempty"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updated_at"`
}

// PendingPaymentTransaction tracks an in-flight payment so duplicate requests
// can be rejected; the collection carries a TTL index on CreatedAt.
type PendingPaymentTransaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PaymentID string             `bson:"paymentId"`
	LoanID    string             `bson:"loanId"`
	UserID    string             `bson:"userId"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// PaymentStatusEvent is what gets published to Kafka on every payment or
// application state change.
type PaymentStatusEvent struct {
	EventID     string    `bson:"eventId" json:"event_id"`
	EventType   string    `bson:"eventType" json:"event_type"`
	UserID      string    `bson:"userId" json:"user_id"`
	SubjectID   string    `bson:"subjectId" json:"subject_id"`
	Status      string    `bson:"status" json:"status"`
	Amount      float64   `bson:"amount" json:"amount"`
	OccurredAt  time.Time `bson:"occurredAt" json:"occurred_at"`
	PublishedToKafka bool `bson:"publishedToKafka" json:"-"`
}
