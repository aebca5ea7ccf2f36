package models

import "time"

type User struct {
	UserID           string     `json:"user_id"`
	PhoneNumber      string     `json:"phone_number"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	NationalID       string     `json:"national_id"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Address          string     `json:"address"`
	Email            string     `json:"email"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	IsVerified       bool       `json:"is_verified"`
	// CanApplyForLoan comes from the backend and is authoritative; local
	// completeness alone never grants it.
	CanApplyForLoan bool      `json:"can_apply_for_loan"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProfileCompletion classifies a user profile for the loan-application gate.
type ProfileCompletion struct {
	IsComplete      bool     `json:"is_complete"`
	MissingFields   []string `json:"missing_fields"`
	NextSteps       []string `json:"next_steps"`
	CanApplyForLoan bool     `json:"can_apply_for_loan"`
}

type OtpSession struct {
	SessionID   string    `json:"session_id"`
	PhoneNumber string    `json:"phone_number"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type AuthToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	UserID       string    `json:"user_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type UserPreferences struct {
	Language             string `json:"language"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	BiometricLogin       bool   `json:"biometric_login"`
}
