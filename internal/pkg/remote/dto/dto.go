// Package dto holds the wire shapes of the lending backend. Field names are
// snake_case on the wire; mappers here convert to domain models with total
// parsing, so bad enum values and bad dates fall back instead of failing.
package dto

import (
	"time"

	"pesanet/kopa_lending/internal/pkg/models"
)

// ParseAPIDate parses an ISO-8601 timestamp. On failure it returns one hour
// from now, matching what the clients before it always did.
func ParseAPIDate(value string) time.Time {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t
	}
	return time.Now().Add(time.Hour)
}

func parseOptionalDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t := ParseAPIDate(value)
	return &t
}

type LoanDTO struct {
	LoanID                string  `json:"loan_id"`
	UserID                string  `json:"user_id"`
	LoanType              string  `json:"loan_type"`
	OriginalAmount        float64 `json:"original_amount"`
	TotalAmount           float64 `json:"total_amount"`
	RemainingBalance      float64 `json:"remaining_balance"`
	InterestRate          float64 `json:"interest_rate"`
	RepaymentPeriodMonths int     `json:"repayment_period_months"`
	DisbursedAt           string  `json:"disbursed_at"`
	MaturityDate          string  `json:"maturity_date"`
	Status                string  `json:"status"`
	NextPaymentAmount     float64 `json:"next_payment_amount"`
	NextPaymentDate       string  `json:"next_payment_date"`
	PaymentsCompleted     int     `json:"payments_completed"`
	TotalPayments         int     `json:"total_payments"`
}

func (d LoanDTO) ToDomain() models.Loan {
	return models.Loan{
		LoanID:                d.LoanID,
		UserID:                d.UserID,
		Type:                  models.ParseLoanType(d.LoanType),
		OriginalAmount:        d.OriginalAmount,
		TotalAmount:           d.TotalAmount,
		RemainingBalance:      d.RemainingBalance,
		InterestRate:          d.InterestRate,
		RepaymentPeriodMonths: d.RepaymentPeriodMonths,
		DisbursedAt:           parseOptionalDate(d.DisbursedAt),
		MaturityDate:          parseOptionalDate(d.MaturityDate),
		Status:                models.ParseLoanStatus(d.Status),
		NextPaymentAmount:     d.NextPaymentAmount,
		NextPaymentDate:       parseOptionalDate(d.NextPaymentDate),
		PaymentsCompleted:     d.PaymentsCompleted,
		TotalPayments:         d.TotalPayments,
		UpdatedAt:             time.Now(),
	}
}

type PaymentDTO struct {
	PaymentID     string  `json:"payment_id"`
	LoanID        string  `json:"loan_id"`
	UserID        string  `json:"user_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	PhoneNumber   string  `json:"phone_number"`
	ReceiptNumber string  `json:"receipt_number"`
	Status        string  `json:"status"`
	FailureReason string  `json:"failure_reason"`
	Principal     float64 `json:"principal"`
	Interest      float64 `json:"interest"`
	Penalties     float64 `json:"penalties"`
	CreatedAt     string  `json:"created_at"`
	ProcessedAt   string  `json:"processed_at"`
}

func (d PaymentDTO) ToDomain() models.Payment {
	status := models.ParsePaymentStatus(d.Status)
	failureReason := ""
	if status == models.PaymentStatusFailed {
		failureReason = d.FailureReason
	}
	return models.Payment{
		PaymentID:     d.PaymentID,
		LoanID:        d.LoanID,
		UserID:        d.UserID,
		Amount:        d.Amount,
		Method:        d.Method,
		PhoneNumber:   d.PhoneNumber,
		ReceiptNumber: d.ReceiptNumber,
		Status:        status,
		FailureReason: failureReason,
		Principal:     d.Principal,
		Interest:      d.Interest,
		Penalties:     d.Penalties,
		CreatedAt:     ParseAPIDate(d.CreatedAt),
		ProcessedAt:   parseOptionalDate(d.ProcessedAt),
	}
}

type LoanTermsDTO struct {
	MonthlyPayment   float64 `json:"monthly_payment"`
	TotalRepayable   float64 `json:"total_repayable"`
	InterestRate     float64 `json:"interest_rate"`
	ServiceFee       float64 `json:"service_fee"`
	NumberOfPayments int     `json:"number_of_payments"`
	FirstPaymentDue  string  `json:"first_payment_due"`
}

func (d LoanTermsDTO) ToDomain() models.LoanTerms {
	return models.LoanTerms{
		MonthlyPayment:   d.MonthlyPayment,
		TotalRepayable:   d.TotalRepayable,
		InterestRate:     d.InterestRate,
		ServiceFee:       d.ServiceFee,
		NumberOfPayments: d.NumberOfPayments,
		FirstPaymentDue:  parseOptionalDate(d.FirstPaymentDue),
	}
}

type FormDataDTO struct {
	RepaymentPeriods []string `json:"repayment_periods"`
	Industries       []string `json:"industries"`
	MinLoanAmount    float64  `json:"min_loan_amount"`
	MaxLoanAmount    float64  `json:"max_loan_amount"`
}

func (d FormDataDTO) ToDomain() models.CashLoanFormData {
	return models.CashLoanFormData{
		RepaymentPeriods: d.RepaymentPeriods,
		Industries:       d.Industries,
		MinLoanAmount:    d.MinLoanAmount,
		MaxLoanAmount:    d.MaxLoanAmount,
		FetchedAt:        time.Now(),
	}
}

type UserDTO struct {
	UserID            string `json:"user_id"`
	PhoneNumber       string `json:"phone_number"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	NationalID        string `json:"national_id"`
	DateOfBirth       string `json:"date_of_birth"`
	Address           string `json:"address"`
	Email             string `json:"email"`
	ProfilePictureURL string `json:"profile_picture_url"`
	IsVerified        bool   `json:"is_verified"`
	CanApplyForLoan   bool   `json:"can_apply_for_loan"`
}

func (d UserDTO) ToDomain() models.User {
	return models.User{
		UserID:            d.UserID,
		PhoneNumber:       d.PhoneNumber,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		NationalID:        d.NationalID,
		DateOfBirth:       parseOptionalDate(d.DateOfBirth),
		Address:           d.Address,
		Email:             d.Email,
		ProfilePictureURL: d.ProfilePictureURL,
		IsVerified:        d.IsVerified,
		CanApplyForLoan:   d.CanApplyForLoan,
		UpdatedAt:         time.Now(),
	}
}

type OtpSessionDTO struct {
	SessionID   string `json:"session_id"`
	PhoneNumber string `json:"phone_number"`
	ExpiresAt   string `json:"expires_at"`
}

func (d OtpSessionDTO) ToDomain() models.OtpSession {
	return models.OtpSession{
		SessionID:   d.SessionID,
		PhoneNumber: d.PhoneNumber,
		ExpiresAt:   ParseAPIDate(d.ExpiresAt),
	}
}

type AuthTokenDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	ExpiresAt    string `json:"expires_at"`
}

func (d AuthTokenDTO) ToDomain() models.AuthToken {
	return models.AuthToken{
		AccessToken:  d.AccessToken,
		RefreshToken: d.RefreshToken,
		UserID:       d.UserID,
		ExpiresAt:    ParseAPIDate(d.ExpiresAt),
	}
}

type EarlyPayoffQuoteDTO struct {
	LoanID         string  `json:"loan_id"`
	PayoffAmount   float64 `json:"payoff_amount"`
	Savings        float64 `json:"savings"`
	ValidUntil     string  `json:"valid_until"`
	QuoteReference string  `json:"quote_reference"`
}

func (d EarlyPayoffQuoteDTO) ToDomain() models.EarlyPayoffQuote {
	return models.EarlyPayoffQuote{
		LoanID:         d.LoanID,
		PayoffAmount:   d.PayoffAmount,
		Savings:        d.Savings,
		ValidUntil:     ParseAPIDate(d.ValidUntil),
		QuoteReference: d.QuoteReference,
	}
}

type ProcessPaymentResponseDTO struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

func (d ProcessPaymentResponseDTO) ToDomain() models.PaymentProcessResponse {
	return models.PaymentProcessResponse{
		PaymentID: d.PaymentID,
		Status:    models.ParsePaymentStatus(d.Status),
		Message:   d.Message,
	}
}
