package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/services"
	"pesanet/kopa_lending/internal/pkg/usecases"
)

type LoanHandler struct {
	service        services.LoanServiceInterface
	historyUseCase *usecases.GetLoanHistoryUseCase
	submitCash     *usecases.SubmitCashLoanUseCase
	submitPayGo    *usecases.SubmitPayGoLoanUseCase
}

func NewLoanHandler(
	service services.LoanServiceInterface,
	historyUseCase *usecases.GetLoanHistoryUseCase,
	submitCash *usecases.SubmitCashLoanUseCase,
	submitPayGo *usecases.SubmitPayGoLoanUseCase,
) *LoanHandler {
	return &LoanHandler{
		service:        service,
		historyUseCase: historyUseCase,
		submitCash:     submitCash,
		submitPayGo:    submitPayGo,
	}
}

func (h *LoanHandler) CashLoanFormData(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"
	formData, err := h.service.CashLoanFormData(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formData)
}

func (h *LoanHandler) CalculateCashLoanTerms(c *gin.Context) {
	var body models.CashLoanTermsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	terms, err := h.service.CalculateCashLoanTerms(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, terms)
}

func (h *LoanHandler) CalculatePayGoTerms(c *gin.Context) {
	var body models.PayGoTermsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	terms, err := h.service.CalculatePayGoTerms(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, terms)
}

func (h *LoanHandler) SubmitCashLoanApplication(c *gin.Context) {
	var body models.CashLoanApplication
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	body.UserID = c.Param("userId")

	applicationID, err := h.submitCash.Execute(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"application_id": applicationID})
}

func (h *LoanHandler) SubmitPayGoLoanApplication(c *gin.Context) {
	var body models.PayGoLoanApplication
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	body.UserID = c.Param("userId")

	applicationID, err := h.submitPayGo.Execute(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"application_id": applicationID})
}

func (h *LoanHandler) SaveCashDraft(c *gin.Context) {
	var body models.CashLoanApplication
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	body.UserID = c.Param("userId")

	if err := h.service.SaveCashDraft(c.Request.Context(), body); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Draft saved"})
}

func (h *LoanHandler) CashDraft(c *gin.Context) {
	draft, err := h.service.CashDraft(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *LoanHandler) DeleteCashDraft(c *gin.Context) {
	if err := h.service.DeleteCashDraft(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Draft deleted"})
}

func (h *LoanHandler) SavePayGoDraft(c *gin.Context) {
	var body models.PayGoLoanApplication
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	body.UserID = c.Param("userId")

	if err := h.service.SavePayGoDraft(c.Request.Context(), body); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Draft saved"})
}

func (h *LoanHandler) PayGoDraft(c *gin.Context) {
	draft, err := h.service.PayGoDraft(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *LoanHandler) DeletePayGoDraft(c *gin.Context) {
	if err := h.service.DeletePayGoDraft(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Draft deleted"})
}

func (h *LoanHandler) Loans(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"
	loans, err := h.service.Loans(c.Request.Context(), c.Param("userId"), forceRefresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) ActiveLoans(c *gin.Context) {
	loans, err := h.service.ActiveLoans(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) LoanDetails(c *gin.Context) {
	loan, err := h.service.LoanDetails(c.Request.Context(), c.Param("loanId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) LoanHistory(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	pageSize, _ := strconv.ParseInt(c.DefaultQuery("page_size", "20"), 10, 64)

	loans, err := h.historyUseCase.Execute(c.Request.Context(), c.Param("userId"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) ApplicationStatus(c *gin.Context) {
	status, err := h.service.ApplicationStatus(c.Request.Context(), c.Param("applicationId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
