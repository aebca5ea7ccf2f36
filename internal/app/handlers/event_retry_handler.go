package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/kafka/retry"
	"pesanet/kopa_lending/internal/pkg/models"
)

type EventRetryHandler struct {
	service *retry.RetryService
}

func NewEventRetryHandler(service *retry.RetryService) *EventRetryHandler {
	return &EventRetryHandler{service: service}
}

// RetryStatusEvents sweeps unpublished status events back onto Kafka. Wired
// for the scheduler; safe to trigger by hand.
func (h *EventRetryHandler) RetryStatusEvents(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			ErrorCode: consts.ErrorServer.Code,
			Message:   "Event retry is not available",
		})
		return
	}

	response := h.service.RetryUnpublishedEvents(c.Request.Context())
	if response.ErrorMsg != "" {
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	c.JSON(http.StatusOK, response)
}
