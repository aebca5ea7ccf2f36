package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/remote/dto"
	"pesanet/kopa_lending/internal/pkg/usecases"
)

type ReportHandler struct {
	generateReport *usecases.GeneratePaymentReportUseCase
}

func NewReportHandler(generateReport *usecases.GeneratePaymentReportUseCase) *ReportHandler {
	return &ReportHandler{generateReport: generateReport}
}

func (h *ReportHandler) GeneratePaymentReport(c *gin.Context) {
	var body models.GenerateReportBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	export := c.Query("export") == "true"
	report, objectURL, err := h.generateReport.Execute(
		c.Request.Context(),
		c.Param("userId"),
		models.ParseReportType(body.Type),
		dto.ParseAPIDate(body.StartDate),
		dto.ParseAPIDate(body.EndDate),
		export,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{"report": report}
	if objectURL != "" {
		response["object_url"] = objectURL
	}
	c.JSON(http.StatusOK, response)
}
