package services

import (
	"testing"

	"pesanet/kopa_lending/internal/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateCashLoanTermsRequest(t *testing.T) {
	valid := models.CashLoanTermsRequest{
		LoanAmount:      1000,
		RepaymentPeriod: "12_months",
		Industry:        "retail",
		CollateralValue: 1500,
		MonthlyIncome:   800,
	}

	tests := []struct {
		name     string
		mutate   func(*models.CashLoanTermsRequest)
		expected []string
	}{
		{
			name:   "valid request",
			mutate: func(r *models.CashLoanTermsRequest) {},
		},
		{
			name:     "zero amount",
			mutate:   func(r *models.CashLoanTermsRequest) { r.LoanAmount = 0 },
			expected: []string{"Loan amount must be greater than zero"},
		},
		{
			name:     "negative amount",
			mutate:   func(r *models.CashLoanTermsRequest) { r.LoanAmount = -50 },
			expected: []string{"Loan amount must be greater than zero"},
		},
		{
			name:     "blank repayment period",
			mutate:   func(r *models.CashLoanTermsRequest) { r.RepaymentPeriod = "  " },
			expected: []string{"Repayment period is required"},
		},
		{
			name:     "missing industry",
			mutate:   func(r *models.CashLoanTermsRequest) { r.Industry = "" },
			expected: []string{"Industry is required"},
		},
		{
			name: "everything wrong accumulates",
			mutate: func(r *models.CashLoanTermsRequest) {
				*r = models.CashLoanTermsRequest{}
			},
			expected: []string{
				"Loan amount must be greater than zero",
				"Repayment period is required",
				"Industry is required",
				"Collateral value must be greater than zero",
				"Monthly income must be greater than zero",
			},
		},
	}

	v := NewValidationService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			out := v.ValidateCashLoanTermsRequest(req)

			assert.Equal(t, len(tt.expected) == 0, out.IsValid())
			assert.Equal(t, tt.expected, out.Errors)
		})
	}
}

func TestValidatePayGoTermsRequest(t *testing.T) {
	valid := models.PayGoTermsRequest{
		DeviceID:        "dev-1",
		DevicePrice:     250,
		DepositAmount:   50,
		RepaymentPeriod: "6_months",
		MonthlyIncome:   400,
	}

	tests := []struct {
		name     string
		mutate   func(*models.PayGoTermsRequest)
		expected []string
	}{
		{
			name:   "valid request",
			mutate: func(r *models.PayGoTermsRequest) {},
		},
		{
			name:   "zero deposit is allowed",
			mutate: func(r *models.PayGoTermsRequest) { r.DepositAmount = 0 },
		},
		{
			name:     "negative deposit",
			mutate:   func(r *models.PayGoTermsRequest) { r.DepositAmount = -1 },
			expected: []string{"Deposit amount cannot be negative"},
		},
		{
			name:     "deposit equals price",
			mutate:   func(r *models.PayGoTermsRequest) { r.DepositAmount = 250 },
			expected: []string{"Deposit amount must be less than the device price"},
		},
		{
			name:     "missing device",
			mutate:   func(r *models.PayGoTermsRequest) { r.DeviceID = "" },
			expected: []string{"Device is required"},
		},
	}

	v := NewValidationService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			out := v.ValidatePayGoTermsRequest(req)

			assert.Equal(t, tt.expected, out.Errors)
		})
	}
}

func TestValidateGuarantor(t *testing.T) {
	v := NewValidationService()

	t.Run("complete guarantor passes", func(t *testing.T) {
		out := v.ValidateGuarantor(completeGuarantor())
		assert.True(t, out.IsValid())
	})

	t.Run("invalid phone is flagged even when present", func(t *testing.T) {
		g := completeGuarantor()
		g.PhoneNumber = "12345"
		out := v.ValidateGuarantor(g)
		assert.Equal(t, []string{"Guarantor phone number is not valid"}, out.Errors)
	})

	t.Run("empty guarantor reports every field", func(t *testing.T) {
		out := v.ValidateGuarantor(models.Guarantor{})
		assert.Len(t, out.Errors, 5)
	})
}

func TestValidatePaymentRequest(t *testing.T) {
	loan := activeLoan("loan-1", 600)
	v := NewValidationService()

	tests := []struct {
		name     string
		req      models.PaymentRequest
		loan     *models.Loan
		expected []string
	}{
		{
			name: "valid request",
			req:  validPaymentRequest("loan-1", 100),
			loan: &loan,
		},
		{
			name: "payment of the full balance",
			req:  validPaymentRequest("loan-1", 600),
			loan: &loan,
		},
		{
			name:     "amount over the remaining balance",
			req:      validPaymentRequest("loan-1", 600.01),
			loan:     &loan,
			expected: []string{"Payment amount cannot exceed the remaining balance of 600.00"},
		},
		{
			name:     "unknown loan",
			req:      validPaymentRequest("loan-1", 100),
			loan:     nil,
			expected: []string{"Loan not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := v.ValidatePaymentRequest(tt.req, tt.loan)
			assert.Equal(t, tt.expected, out.Errors)
		})
	}
}
