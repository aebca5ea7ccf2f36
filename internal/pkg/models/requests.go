package models

// Request bodies bound by the gin handlers. Validation tags cover shape only;
// business rules live in the services.

type SendOtpRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type VerifyOtpRequest struct {
	SessionID   string `json:"session_id" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Code        string `json:"code" binding:"required,numeric"`
}

type SetPinRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Pin         string `json:"pin" binding:"required,len=4,numeric"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Pin         string `json:"pin" binding:"required"`
}

type UpdatePinRequest struct {
	CurrentPin string `json:"current_pin" binding:"required"`
	NewPin     string `json:"new_pin" binding:"required,len=4,numeric"`
}

type CreateClientRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	NationalID  string `json:"national_id" binding:"required"`
}

type MobileChangeStartRequest struct {
	NewPhoneNumber string `json:"new_phone_number" binding:"required"`
}

type MobileChangeVerifyRequest struct {
	ChangeToken string `json:"change_token" binding:"required"`
	Code        string `json:"code" binding:"required,numeric"`
}

type MobileChangeConfirmRequest struct {
	ChangeToken string `json:"change_token" binding:"required"`
	Pin         string `json:"pin" binding:"required,len=4,numeric"`
}

type ProcessPaymentBody struct {
	LoanID      string  `json:"loan_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Method      string  `json:"method" binding:"required"`
	PhoneNumber string  `json:"phone_number" binding:"required"`
}

type GenerateReportBody struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=SUMMARY DETAILED ANALYTICS"`
}

type UpdateProfileBody struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	Email       string `json:"email" binding:"omitempty,email"`
	DateOfBirth string `json:"date_of_birth"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}
