package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationStatus string

const (
	ApplicationStatusDraft     ApplicationStatus = "DRAFT"
	ApplicationStatusSubmitted ApplicationStatus = "SUBMITTED"
	ApplicationStatusApproved  ApplicationStatus = "APPROVED"
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn ApplicationStatus = "WITHDRAWN"
)

// ParseApplicationStatus falls back to DRAFT for anything unrecognised, so a
// malformed record can never resurrect itself as submitted.
func ParseApplicationStatus(s string) ApplicationStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ApplicationStatusSubmitted):
		return ApplicationStatusSubmitted
	case string(ApplicationStatusApproved):
		return ApplicationStatusApproved
	case string(ApplicationStatusRejected):
		return ApplicationStatusRejected
	case string(ApplicationStatusWithdrawn):
		return ApplicationStatusWithdrawn
	default:
		return ApplicationStatusDraft
	}
}

// LoanTerms is the calculated financial offer for an application. An
// application cannot be submitted until terms are present and accepted.
type LoanTerms struct {
	MonthlyPayment   float64    `bson:"monthlyPayment" json:"monthly_payment"`
	TotalRepayable   float64    `bson:"totalRepayable" json:"total_repayable"`
	InterestRate     float64    `bson:"interestRate" json:"interest_rate"`
	ServiceFee       float64    `bson:"serviceFee" json:"service_fee"`
	NumberOfPayments int        `bson:"numberOfPayments" json:"number_of_payments"`
	FirstPaymentDue  *time.Time `bson:"firstPaymentDue,omitempty" json:"first_payment_due,omitempty"`
}

type CashLoanApplication struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            string             `bson:"userId" json:"user_id"`
	LoanAmount        float64            `bson:"loanAmount" json:"loan_amount"`
	RepaymentPeriod   string             `bson:"repaymentPeriod" json:"repayment_period"`
	Industry          string             `bson:"industry" json:"industry"`
	CollateralValue   float64            `bson:"collateralValue" json:"collateral_value"`
	CollateralDetails string             `bson:"collateralDetails" json:"collateral_details"`
	MonthlyIncome     float64            `bson:"monthlyIncome" json:"monthly_income"`
	Purpose           string             `bson:"purpose" json:"purpose"`
	CalculatedTerms   *LoanTerms         `bson:"calculatedTerms,omitempty" json:"calculated_terms,omitempty"`
	AcceptedTerms     bool               `bson:"acceptedTerms" json:"accepted_terms"`
	Status            ApplicationStatus  `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updated_at"`
	SubmittedAt       *time.Time         `bson:"submittedAt,omitempty" json:"submitted_at,omitempty"`
}

// Guarantor for PayGo device loans. Every field is required before the
// application can go out.
type Guarantor struct {
	FullName     string `bson:"fullName" json:"full_name"`
	PhoneNumber  string `bson:"phoneNumber" json:"phone_number"`
	NationalID   string `bson:"nationalId" json:"national_id"`
	Relationship string `bson:"relationship" json:"relationship"`
	Address      string `bson:"address" json:"address"`
}

func (g Guarantor) IsComplete() bool {
	return strings.TrimSpace(g.FullName) != "" &&
		strings.TrimSpace(g.PhoneNumber) != "" &&
		strings.TrimSpace(g.NationalID) != "" &&
		strings.TrimSpace(g.Relationship) != "" &&
		strings.TrimSpace(g.Address) != ""
}

type PayGoLoanApplication struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"userId" json:"user_id"`
	DeviceID        string             `bson:"deviceId" json:"device_id"`
	DeviceName      string             `bson:"deviceName" json:"device_name"`
	DevicePrice     float64            `bson:"devicePrice" json:"device_price"`
	DepositAmount   float64            `bson:"depositAmount" json:"deposit_amount"`
	RepaymentPeriod string             `bson:"repaymentPeriod" json:"repayment_period"`
	MonthlyIncome   float64            `bson:"monthlyIncome" json:"monthly_income"`
	Guarantor       Guarantor          `bson:"guarantor" json:"guarantor"`
	CalculatedTerms *LoanTerms         `bson:"calculatedTerms,omitempty" json:"calculated_terms,omitempty"`
	AcceptedTerms   bool               `bson:"acceptedTerms" json:"accepted_terms"`
	Status          ApplicationStatus  `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updated_at"`
	SubmittedAt     *time.Time         `bson:"submittedAt,omitempty" json:"submitted_at,omitempty"`
}

// CashLoanTermsRequest is what the applicant fills in before asking for an
// offer.
type CashLoanTermsRequest struct {
	LoanAmount      float64 `json:"loan_amount"`
	RepaymentPeriod string  `json:"repayment_period"`
	Industry        string  `json:"industry"`
	CollateralValue float64 `json:"collateral_value"`
	MonthlyIncome   float64 `json:"monthly_income"`
}

type PayGoTermsRequest struct {
	DeviceID        string  `json:"device_id"`
	DevicePrice     float64 `json:"device_price"`
	DepositAmount   float64 `json:"deposit_amount"`
	RepaymentPeriod string  `json:"repayment_period"`
	MonthlyIncome   float64 `json:"monthly_income"`
}

// CashLoanFormData is the static reference data backing the application form.
type CashLoanFormData struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RepaymentPeriods []string           `bson:"repaymentPeriods" json:"repayment_periods"`
	Industries       []string           `bson:"industries" json:"industries"`
	MinLoanAmount    float64            `bson:"minLoanAmount" json:"min_loan_amount"`
	MaxLoanAmount    float64            `bson:"maxLoanAmount" json:"max_loan_amount"`
	FetchedAt        time.Time          `bson:"fetchedAt" json:"fetched_at"`
}
