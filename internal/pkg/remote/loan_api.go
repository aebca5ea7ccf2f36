package remote

import (
	"context"
	"encoding/json"

	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/remote/dto"
)

// LoanAPI wraps the backend's loan and application endpoints.
type LoanAPI struct{}

func NewLoanAPI() *LoanAPI {
	return &LoanAPI{}
}

func (l *LoanAPI) FetchLoans(ctx context.Context, userID string) ([]models.Loan, error) {
	body, err := getJSON(ctx, "api/loans/user/"+userID, nil)
	if err != nil {
		return nil, err
	}
	var out []dto.LoanDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	loans := make([]models.Loan, 0, len(out))
	for _, d := range out {
		loans = append(loans, d.ToDomain())
	}
	return loans, nil
}

func (l *LoanAPI) FetchLoanDetails(ctx context.Context, loanID string) (models.Loan, error) {
	body, err := getJSON(ctx, "api/loans/"+loanID, nil)
	if err != nil {
		return models.Loan{}, err
	}
	var out dto.LoanDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.Loan{}, err
	}
	return out.ToDomain(), nil
}

func (l *LoanAPI) FetchCashLoanFormData(ctx context.Context) (models.CashLoanFormData, error) {
	body, err := getJSON(ctx, "api/loans/cash/form-data", nil)
	if err != nil {
		return models.CashLoanFormData{}, err
	}
	var out dto.FormDataDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.CashLoanFormData{}, err
	}
	return out.ToDomain(), nil
}

func (l *LoanAPI) CalculateCashLoanTerms(ctx context.Context, req models.CashLoanTermsRequest) (models.LoanTerms, error) {
	body, err := postJSON(ctx, "api/loans/cash/calculate-terms", nil, req)
	if err != nil {
		return models.LoanTerms{}, err
	}
	var out dto.LoanTermsDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.LoanTerms{}, err
	}
	return out.ToDomain(), nil
}

func (l *LoanAPI) CalculatePayGoTerms(ctx context.Context, req models.PayGoTermsRequest) (models.LoanTerms, error) {
	body, err := postJSON(ctx, "api/loans/paygo/calculate-terms", nil, req)
	if err != nil {
		return models.LoanTerms{}, err
	}
	var out dto.LoanTermsDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.LoanTerms{}, err
	}
	return out.ToDomain(), nil
}

// SubmitCashLoanApplication sends the application and returns the backend's
// application reference.
func (l *LoanAPI) SubmitCashLoanApplication(ctx context.Context, app models.CashLoanApplication) (string, error) {
	body, err := postJSON(ctx, "api/loans/cash/apply", nil, app)
	if err != nil {
		return "", err
	}
	var out struct {
		ApplicationID string `json:"application_id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	return out.ApplicationID, nil
}

func (l *LoanAPI) SubmitPayGoLoanApplication(ctx context.Context, app models.PayGoLoanApplication) (string, error) {
	body, err := postJSON(ctx, "api/loans/paygo/apply", nil, app)
	if err != nil {
		return "", err
	}
	var out struct {
		ApplicationID string `json:"application_id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	return out.ApplicationID, nil
}

func (l *LoanAPI) FetchApplicationStatus(ctx context.Context, applicationID string) (models.ApplicationStatus, error) {
	body, err := getJSON(ctx, "api/loans/applications/"+applicationID+"/status", nil)
	if err != nil {
		return models.ApplicationStatusDraft, err
	}
	var out struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return models.ApplicationStatusDraft, err
	}
	return models.ParseApplicationStatus(out.Status), nil
}
