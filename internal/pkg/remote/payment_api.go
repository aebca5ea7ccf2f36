package remote

import (
	"context"
	"encoding/json"

	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/remote/dto"
)

// PaymentAPI wraps the backend's payment and early payoff endpoints.
type PaymentAPI struct{}

func NewPaymentAPI() *PaymentAPI {
	return &PaymentAPI{}
}

func (p *PaymentAPI) ProcessPayment(ctx context.Context, userID string, req models.PaymentRequest) (models.PaymentProcessResponse, error) {
	body, err := postJSON(ctx, "api/payments", map[string]string{"x-user-id": userID}, req)
	if err != nil {
		return models.PaymentProcessResponse{}, err
	}
	var out dto.ProcessPaymentResponseDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.PaymentProcessResponse{}, err
	}
	return out.ToDomain(), nil
}

func (p *PaymentAPI) FetchPayments(ctx context.Context, userID string) ([]models.Payment, error) {
	body, err := getJSON(ctx, "api/payments/user/"+userID, nil)
	if err != nil {
		return nil, err
	}
	var out []dto.PaymentDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	payments := make([]models.Payment, 0, len(out))
	for _, d := range out {
		payments = append(payments, d.ToDomain())
	}
	return payments, nil
}

func (p *PaymentAPI) FetchPaymentStatus(ctx context.Context, paymentID string) (models.Payment, error) {
	body, err := getJSON(ctx, "api/payments/"+paymentID+"/status", nil)
	if err != nil {
		return models.Payment{}, err
	}
	var out dto.PaymentDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.Payment{}, err
	}
	return out.ToDomain(), nil
}

func (p *PaymentAPI) CancelPayment(ctx context.Context, paymentID string) error {
	_, err := postJSON(ctx, "api/payments/"+paymentID+"/cancel", nil, struct{}{})
	return err
}

func (p *PaymentAPI) RetryPayment(ctx context.Context, paymentID string) (models.PaymentProcessResponse, error) {
	body, err := postJSON(ctx, "api/payments/"+paymentID+"/retry", nil, struct{}{})
	if err != nil {
		return models.PaymentProcessResponse{}, err
	}
	var out dto.ProcessPaymentResponseDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.PaymentProcessResponse{}, err
	}
	return out.ToDomain(), nil
}

// CheckEarlyPayoffEligibility asks the backend for the authoritative answer;
// callers fall back to the local heuristic when this fails.
func (p *PaymentAPI) CheckEarlyPayoffEligibility(ctx context.Context, loanID string) (models.EarlyPayoffEligibility, error) {
	body, err := getJSON(ctx, "api/payments/loans/"+loanID+"/early-payoff/check-eligibility", nil)
	if err != nil {
		return models.EarlyPayoffEligibility{}, err
	}
	var out models.EarlyPayoffEligibility
	if err := json.Unmarshal(body, &out); err != nil {
		return models.EarlyPayoffEligibility{}, err
	}
	return out, nil
}

func (p *PaymentAPI) CalculateEarlyPayoff(ctx context.Context, loanID string) (models.EarlyPayoffQuote, error) {
	body, err := postJSON(ctx, "api/payments/loans/"+loanID+"/early-payoff/calculate", nil, struct{}{})
	if err != nil {
		return models.EarlyPayoffQuote{}, err
	}
	var out dto.EarlyPayoffQuoteDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.EarlyPayoffQuote{}, err
	}
	return out.ToDomain(), nil
}

func (p *PaymentAPI) ProcessEarlyPayoff(ctx context.Context, loanID string, req models.EarlyPayoffRequest) (models.PaymentProcessResponse, error) {
	body, err := postJSON(ctx, "api/payments/loans/"+loanID+"/early-payoff/process", nil, req)
	if err != nil {
		return models.PaymentProcessResponse{}, err
	}
	var out dto.ProcessPaymentResponseDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.PaymentProcessResponse{}, err
	}
	return out.ToDomain(), nil
}
