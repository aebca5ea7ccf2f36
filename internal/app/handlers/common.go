package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/models"
)

// respondError maps the error catalog onto HTTP statuses. Unknown errors
// come back as a generic 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	var custom *models.CustomError
	if !errors.As(err, &custom) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			ErrorCode: consts.ErrorServer.Code,
			Message:   consts.ErrorServer.Message,
		})
		return
	}

	status := http.StatusInternalServerError
	switch custom.Code {
	case consts.ErrorValidation.Code,
		consts.ErrorPhoneFormatInvalid.Code,
		consts.ErrorTermsNotCalculated.Code,
		consts.ErrorTermsNotAccepted.Code,
		consts.ErrorGuarantorIncomplete.Code:
		status = http.StatusBadRequest
	case consts.ErrorInvalidCredentials.Code,
		consts.ErrorNotLoggedIn.Code:
		status = http.StatusUnauthorized
	case consts.ErrorTokenExpired.Code,
		consts.ErrorChangeTokenInvalid.Code:
		status = http.StatusForbidden
	case consts.ErrorLoanNotFound.Code,
		consts.ErrorPaymentNotFound.Code,
		consts.ErrorDraftNotFound.Code,
		consts.ErrorProfileNotCached.Code:
		status = http.StatusNotFound
	case consts.ErrorOtpExpired.Code:
		status = http.StatusGone
	case consts.ErrorTransactionInProgress.Code:
		status = http.StatusConflict
	case consts.ErrorOtpInvalid.Code:
		status = http.StatusUnprocessableEntity
	case consts.ErrorMaxAttemptsExceeded.Code:
		status = http.StatusTooManyRequests
	}

	c.JSON(status, models.ErrorResponse{
		ErrorCode: custom.Code,
		Message:   custom.Message,
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		ErrorCode: consts.ErrorValidation.Code,
		Message:   err.Error(),
	})
}
