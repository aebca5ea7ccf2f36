package services

import (
	"fmt"

	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/utils"
)

// ValidationService holds the form level checks the loan flows run before
// any remote call goes out. Everything here is pure; failures come back as
// accumulated messages, never errors.
type ValidationService struct{}

func NewValidationService() *ValidationService {
	return &ValidationService{}
}

func (v *ValidationService) ValidateCashLoanTermsRequest(req models.CashLoanTermsRequest) models.ValidationResult {
	var out models.ValidationResult
	if req.LoanAmount <= 0 {
		out.Add("Loan amount must be greater than zero")
	}
	if utils.IsBlank(req.RepaymentPeriod) {
		out.Add("Repayment period is required")
	}
	if utils.IsBlank(req.Industry) {
		out.Add("Industry is required")
	}
	if req.CollateralValue <= 0 {
		out.Add("Collateral value must be greater than zero")
	}
	if req.MonthlyIncome <= 0 {
		out.Add("Monthly income must be greater than zero")
	}
	return out
}

func (v *ValidationService) ValidatePayGoTermsRequest(req models.PayGoTermsRequest) models.ValidationResult {
	var out models.ValidationResult
	if utils.IsBlank(req.DeviceID) {
		out.Add("Device is required")
	}
	if req.DevicePrice <= 0 {
		out.Add("Device price must be greater than zero")
	}
	if req.DepositAmount < 0 {
		out.Add("Deposit amount cannot be negative")
	}
	if req.DepositAmount >= req.DevicePrice && req.DevicePrice > 0 {
		out.Add("Deposit amount must be less than the device price")
	}
	if utils.IsBlank(req.RepaymentPeriod) {
		out.Add("Repayment period is required")
	}
	if req.MonthlyIncome <= 0 {
		out.Add("Monthly income must be greater than zero")
	}
	return out
}

func (v *ValidationService) ValidateGuarantor(g models.Guarantor) models.ValidationResult {
	var out models.ValidationResult
	if utils.IsBlank(g.FullName) {
		out.Add("Guarantor full name is required")
	}
	if utils.IsBlank(g.PhoneNumber) {
		out.Add("Guarantor phone number is required")
	} else if ok, _ := utils.IsValidPhoneNumber(utils.CleanPhoneNumber(g.PhoneNumber)); !ok {
		out.Add("Guarantor phone number is not valid")
	}
	if utils.IsBlank(g.NationalID) {
		out.Add("Guarantor national ID is required")
	}
	if utils.IsBlank(g.Relationship) {
		out.Add("Guarantor relationship is required")
	}
	if utils.IsBlank(g.Address) {
		out.Add("Guarantor address is required")
	}
	return out
}

// ValidatePaymentRequest checks the request against the loan it pays down.
// The amount must cover something and never exceed what remains.
func (v *ValidationService) ValidatePaymentRequest(req models.PaymentRequest, loan *models.Loan) models.ValidationResult {
	var out models.ValidationResult
	if req.Amount <= 0 {
		out.Add("Payment amount must be greater than zero")
	}
	if utils.IsBlank(req.Method) {
		out.Add("Payment method is required")
	}
	if utils.IsBlank(req.PhoneNumber) {
		out.Add("Phone number is required")
	} else if ok, _ := utils.IsValidPhoneNumber(utils.CleanPhoneNumber(req.PhoneNumber)); !ok {
		out.Add("Phone number is not valid")
	}
	if loan == nil {
		out.Add("Loan not found")
		return out
	}
	if !loan.IsActive() {
		out.Add("Payments are only accepted on active loans")
	}
	if req.Amount > loan.RemainingBalance {
		out.Add(fmt.Sprintf("Payment amount cannot exceed the remaining balance of %.2f", loan.RemainingBalance))
	}
	return out
}
