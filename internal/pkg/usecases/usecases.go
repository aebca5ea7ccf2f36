// Package usecases wraps the services with the argument preconditions the
// HTTP layer relies on. Each use case checks its inputs and delegates; no
// business logic lives here.
package usecases

import (
	"context"
	"time"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/services"
	"pesanet/kopa_lending/internal/pkg/utils"
)

const defaultPageSize = 20

type GetLoanHistoryUseCase struct {
	loanService services.LoanServiceInterface
}

func NewGetLoanHistoryUseCase(loanService services.LoanServiceInterface) *GetLoanHistoryUseCase {
	return &GetLoanHistoryUseCase{loanService: loanService}
}

func (u *GetLoanHistoryUseCase) Execute(ctx context.Context, userID string, page, pageSize int64) ([]models.Loan, error) {
	if page <= 0 {
		return nil, &models.CustomError{
			Code:    consts.ErrorValidation.Code,
			Message: "Page must be greater than 0",
		}
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return u.loanService.LoanHistory(ctx, userID, page, pageSize)
}

type SubmitCashLoanUseCase struct {
	loanService    services.LoanServiceInterface
	profileService services.ProfileServiceInterface
}

func NewSubmitCashLoanUseCase(loanService services.LoanServiceInterface, profileService services.ProfileServiceInterface) *SubmitCashLoanUseCase {
	return &SubmitCashLoanUseCase{loanService: loanService, profileService: profileService}
}

// Execute gates submission on the profile's loan eligibility before the
// application level preconditions run.
func (u *SubmitCashLoanUseCase) Execute(ctx context.Context, app models.CashLoanApplication) (string, error) {
	completion, err := u.profileService.ProfileCompletion(ctx, app.UserID)
	if err != nil {
		return "", err
	}
	if !completion.CanApplyForLoan {
		return "", &models.CustomError{
			Code:    consts.ErrorValidation.Code,
			Message: "Profile is not eligible to apply for a loan",
		}
	}
	return u.loanService.SubmitCashLoanApplication(ctx, app)
}

type SubmitPayGoLoanUseCase struct {
	loanService    services.LoanServiceInterface
	profileService services.ProfileServiceInterface
}

func NewSubmitPayGoLoanUseCase(loanService services.LoanServiceInterface, profileService services.ProfileServiceInterface) *SubmitPayGoLoanUseCase {
	return &SubmitPayGoLoanUseCase{loanService: loanService, profileService: profileService}
}

func (u *SubmitPayGoLoanUseCase) Execute(ctx context.Context, app models.PayGoLoanApplication) (string, error) {
	completion, err := u.profileService.ProfileCompletion(ctx, app.UserID)
	if err != nil {
		return "", err
	}
	if !completion.CanApplyForLoan {
		return "", &models.CustomError{
			Code:    consts.ErrorValidation.Code,
			Message: "Profile is not eligible to apply for a loan",
		}
	}
	return u.loanService.SubmitPayGoLoanApplication(ctx, app)
}

type GeneratePaymentReportUseCase struct {
	reportService services.ReportServiceInterface
	exportService services.ReportExportServiceInterface
}

func NewGeneratePaymentReportUseCase(reportService services.ReportServiceInterface, exportService services.ReportExportServiceInterface) *GeneratePaymentReportUseCase {
	return &GeneratePaymentReportUseCase{reportService: reportService, exportService: exportService}
}

// Execute builds the report and, when export is requested, archives it and
// returns the object URL alongside.
func (u *GeneratePaymentReportUseCase) Execute(ctx context.Context, userID string, reportType models.ReportType, start, end time.Time, export bool) (models.PaymentReport, string, error) {
	if utils.IsBlank(userID) {
		return models.PaymentReport{}, "", &models.CustomError{
			Code:    consts.ErrorValidation.Code,
			Message: "User is required",
		}
	}
	if end.Before(start) {
		return models.PaymentReport{}, "", &models.CustomError{
			Code:    consts.ErrorValidation.Code,
			Message: "End date must not be before start date",
		}
	}

	report, err := u.reportService.GeneratePaymentReport(ctx, userID, reportType, start, end)
	if err != nil {
		return models.PaymentReport{}, "", err
	}

	var objectURL string
	if export {
		objectURL, err = u.exportService.ExportPaymentReport(ctx, report)
		if err != nil {
			return models.PaymentReport{}, "", err
		}
	}
	return report, objectURL, nil
}
