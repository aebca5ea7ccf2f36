package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LoanType string

const (
	LoanTypeCash  LoanType = "CASH"
	LoanTypePayGo LoanType = "PAYGO"
)

// ParseLoanType never fails; anything unrecognised is treated as CASH.
func ParseLoanType(s string) LoanType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(LoanTypePayGo):
		return LoanTypePayGo
	default:
		return LoanTypeCash
	}
}

type LoanStatus string

const (
	LoanStatusPendingDisbursement LoanStatus = "PENDING_DISBURSEMENT"
	LoanStatusActive              LoanStatus = "ACTIVE"
	LoanStatusCompleted           LoanStatus = "COMPLETED"
	LoanStatusDefaulted           LoanStatus = "DEFAULTED"
	LoanStatusWrittenOff          LoanStatus = "WRITTEN_OFF"
	LoanStatusUnknown             LoanStatus = "UNKNOWN"
)

func ParseLoanStatus(s string) LoanStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(LoanStatusPendingDisbursement):
		return LoanStatusPendingDisbursement
	case string(LoanStatusActive):
		return LoanStatusActive
	case string(LoanStatusCompleted):
		return LoanStatusCompleted
	case string(LoanStatusDefaulted):
		return LoanStatusDefaulted
	case string(LoanStatusWrittenOff):
		return LoanStatusWrittenOff
	default:
		return LoanStatusUnknown
	}
}

type Loan struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LoanID                string             `bson:"loanId" json:"loan_id"`
	UserID                string             `bson:"userId" json:"user_id"`
	Type                  LoanType           `bson:"loanType" json:"loan_type"`
	OriginalAmount        float64            `bson:"originalAmount" json:"original_amount"`
	TotalAmount           float64            `bson:"totalAmount" json:"total_amount"`
	RemainingBalance      float64            `bson:"remainingBalance" json:"remaining_balance"`
	InterestRate          float64            `bson:"interestRate" json:"interest_rate"`
	RepaymentPeriodMonths int                `bson:"repaymentPeriodMonths" json:"repayment_period_months"`
	DisbursedAt           *time.Time         `bson:"disbursedAt,omitempty" json:"disbursed_at,omitempty"`
	MaturityDate          *time.Time         `bson:"maturityDate,omitempty" json:"maturity_date,omitempty"`
	Status                LoanStatus         `bson:"status" json:"status"`
	NextPaymentAmount     float64            `bson:"nextPaymentAmount" json:"next_payment_amount"`
	NextPaymentDate       *time.Time         `bson:"nextPaymentDate,omitempty" json:"next_payment_date,omitempty"`
	PaymentsCompleted     int                `bson:"paymentsCompleted" json:"payments_completed"`
	TotalPayments         int                `bson:"totalPayments" json:"total_payments"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updated_at"`
}

func (l *Loan) IsActive() bool {
	return l.Status == LoanStatusActive
}

// RecordPayment applies a successful repayment to the loan counters. The
// remaining balance never goes below zero and the completed counter never
// passes the total.
func (l *Loan) RecordPayment(amount float64) {
	l.RemainingBalance -= amount
	if l.RemainingBalance < 0 {
		l.RemainingBalance = 0
	}
	if l.PaymentsCompleted < l.TotalPayments {
		l.PaymentsCompleted++
	}
	if l.RemainingBalance == 0 {
		l.Status = LoanStatusCompleted
	}
	l.UpdatedAt = time.Now()
}

type LoanDashboard struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"userId" json:"user_id"`
	ActiveLoans      int                `bson:"activeLoans" json:"active_loans"`
	TotalOutstanding float64            `bson:"totalOutstanding" json:"total_outstanding"`
	NextPaymentDue   *time.Time         `bson:"nextPaymentDue,omitempty" json:"next_payment_due,omitempty"`
	NextPaymentTotal float64            `bson:"nextPaymentTotal" json:"next_payment_total"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updated_at"`
}
