package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/services"
)

type PaymentHandler struct {
	service services.PaymentServiceInterface
}

func NewPaymentHandler(service services.PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var body models.ProcessPaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.service.ProcessPayment(c.Request.Context(), c.Param("userId"), models.PaymentRequest{
		LoanID:      body.LoanID,
		Amount:      body.Amount,
		Method:      body.Method,
		PhoneNumber: body.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, response)
}

func (h *PaymentHandler) Payments(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"
	payments, err := h.service.Payments(c.Request.Context(), c.Param("userId"), forceRefresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) PaymentsForLoan(c *gin.Context) {
	payments, err := h.service.PaymentsForLoan(c.Request.Context(), c.Param("loanId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) PaymentStatus(c *gin.Context) {
	payment, err := h.service.PaymentStatus(c.Request.Context(), c.Param("paymentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) CancelPayment(c *gin.Context) {
	if err := h.service.CancelPayment(c.Request.Context(), c.Param("userId"), c.Param("paymentId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Payment cancelled"})
}

func (h *PaymentHandler) RetryPayment(c *gin.Context) {
	response, err := h.service.RetryPayment(c.Request.Context(), c.Param("userId"), c.Param("paymentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, response)
}

func (h *PaymentHandler) PaymentDashboard(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"
	dashboard, err := h.service.PaymentDashboard(c.Request.Context(), c.Param("userId"), forceRefresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *PaymentHandler) CheckEarlyPayoffEligibility(c *gin.Context) {
	eligibility, err := h.service.CheckEarlyPayoffEligibility(c.Request.Context(), c.Param("loanId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eligibility)
}

func (h *PaymentHandler) CalculateEarlyPayoff(c *gin.Context) {
	quote, err := h.service.CalculateEarlyPayoff(c.Request.Context(), c.Param("loanId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *PaymentHandler) ProcessEarlyPayoff(c *gin.Context) {
	var body models.EarlyPayoffRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.service.ProcessEarlyPayoff(c.Request.Context(), c.Param("userId"), c.Param("loanId"), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, response)
}
