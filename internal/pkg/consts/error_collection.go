package consts

import "pesanet/kopa_lending/internal/pkg/models"

var (
	ErrorValidation = &models.CustomError{
		Code:    "KOPA_LENDING_VALIDATION_FAILED",
		Message: "Request validation failed",
	}
	ErrorInvalidCredentials = &models.CustomError{
		Code:    "KOPA_LENDING_AUTH_INVALID_CREDENTIALS",
		Message: "Invalid phone number or PIN",
	}
	ErrorOtpExpired = &models.CustomError{
		Code:    "KOPA_LENDING_AUTH_OTP_EXPIRED",
		Message: "OTP has expired",
	}
	ErrorOtpInvalid = &models.CustomError{
		Code:    "KOPA_LENDING_AUTH_OTP_INVALID",
		Message: "OTP code is not valid",
	}
	ErrorMaxAttemptsExceeded = &models.CustomError{
		Code:    "KOPA_LENDING_AUTH_MAX_ATTEMPTS_EXCEEDED",
		Message: "Maximum verification attempts exceeded",
	}
	ErrorTokenExpired = &models.CustomError{
		Code:    "KOPA_LENDING_AUTH_TOKEN_EXPIRED",
		Message: "Authentication token has expired",
	}
	ErrorServer = &models.CustomError{
		Code:    "KOPA_LENDING_REMOTE_SERVER_ERROR",
		Message: "Lending service returned an error",
	}
	ErrorNotLoggedIn = &models.CustomError{
		Code:    "KOPA_LENDING_AUTH_NOT_LOGGED_IN",
		Message: "No active session",
	}
	ErrorChangeTokenInvalid = &models.CustomError{
		Code:    "KOPA_LENDING_AUTH_CHANGE_TOKEN_INVALID",
		Message: "Mobile change token is missing or out of order",
	}
	ErrorTermsNotCalculated = &models.CustomError{
		Code:    "KOPA_LENDING_APPLICATION_TERMS_NOT_CALCULATED",
		Message: "Loan terms must be calculated before submission",
	}
	ErrorTermsNotAccepted = &models.CustomError{
		Code:    "KOPA_LENDING_APPLICATION_TERMS_NOT_ACCEPTED",
		Message: "Loan terms must be accepted before submission",
	}
	ErrorGuarantorIncomplete = &models.CustomError{
		Code:    "KOPA_LENDING_APPLICATION_GUARANTOR_INCOMPLETE",
		Message: "Guarantor details are incomplete",
	}
	ErrorLoanNotFound = &models.CustomError{
		Code:    "KOPA_LENDING_LOAN_NOT_FOUND",
		Message: "Loan not found",
	}
	ErrorPaymentNotFound = &models.CustomError{
		Code:    "KOPA_LENDING_PAYMENT_NOT_FOUND",
		Message: "Payment not found",
	}
	ErrorDraftNotFound = &models.CustomError{
		Code:    "KOPA_LENDING_DRAFT_NOT_FOUND",
		Message: "No draft application for this user",
	}
	ErrorTransactionInProgress = &models.CustomError{
		Code:    "KOPA_LENDING_PAYMENT_DUPLICATE_REQUEST",
		Message: "A payment for this loan is already in progress",
	}
	ErrorProfileNotCached = &models.CustomError{
		Code:    "KOPA_LENDING_PROFILE_CACHE_MISS",
		Message: "Profile not present in cache",
	}
	ErrorPhoneFormatInvalid = &models.CustomError{
		Code:    "KOPA_LENDING_VALIDATION_PHONE_FORMAT_INVALID",
		Message: "Phone number format is not valid",
	}
)
