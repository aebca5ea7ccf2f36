package remote

import (
	"context"
	"encoding/json"

	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/remote/dto"
)

// AuthAPI wraps the backend's authentication endpoints.
type AuthAPI struct{}

func NewAuthAPI() *AuthAPI {
	return &AuthAPI{}
}

func bearer(token string) map[string]string {
	if token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

func (a *AuthAPI) SendOtp(ctx context.Context, phoneNumber string) (models.OtpSession, error) {
	body, err := postJSON(ctx, "api/mobile/client/send-otp", nil, map[string]string{
		"phone_number": phoneNumber,
	})
	if err != nil {
		return models.OtpSession{}, err
	}
	var out dto.OtpSessionDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.OtpSession{}, err
	}
	return out.ToDomain(), nil
}

func (a *AuthAPI) VerifyOtp(ctx context.Context, sessionID string, otp string) (string, error) {
	body, err := postJSON(ctx, "api/mobile/client/verify-otp", nil, map[string]string{
		"session_id": sessionID,
		"otp":        otp,
	})
	if err != nil {
		return "", err
	}
	var out struct {
		TempToken string `json:"temp_token"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	return out.TempToken, nil
}

func (a *AuthAPI) SetPin(ctx context.Context, tempToken string, pin string) (models.AuthToken, error) {
	body, err := postJSON(ctx, "api/mobile/client/set-pin", bearer(tempToken), map[string]string{
		"pin": pin,
	})
	if err != nil {
		return models.AuthToken{}, err
	}
	var out dto.AuthTokenDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.AuthToken{}, err
	}
	return out.ToDomain(), nil
}

func (a *AuthAPI) Login(ctx context.Context, phoneNumber string, pin string) (models.AuthToken, error) {
	body, err := postJSON(ctx, "api/mobile/client/login", nil, map[string]string{
		"phone_number": phoneNumber,
		"pin":          pin,
	})
	if err != nil {
		return models.AuthToken{}, err
	}
	var out dto.AuthTokenDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.AuthToken{}, err
	}
	return out.ToDomain(), nil
}

func (a *AuthAPI) RefreshToken(ctx context.Context, refreshToken string) (models.AuthToken, error) {
	body, err := postJSON(ctx, "api/mobile/client/refresh-token", nil, map[string]string{
		"refresh_token": refreshToken,
	})
	if err != nil {
		return models.AuthToken{}, err
	}
	var out dto.AuthTokenDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.AuthToken{}, err
	}
	return out.ToDomain(), nil
}

func (a *AuthAPI) Logout(ctx context.Context, accessToken string) error {
	_, err := postJSON(ctx, "api/mobile/client/logout", bearer(accessToken), struct{}{})
	return err
}

func (a *AuthAPI) UpdatePin(ctx context.Context, accessToken string, currentPin string, newPin string) error {
	_, err := postJSON(ctx, "api/mobile/client/pin", bearer(accessToken), map[string]string{
		"current_pin": currentPin,
		"new_pin":     newPin,
	})
	return err
}

func (a *AuthAPI) CreateClient(ctx context.Context, tempToken string, user models.User) (models.User, error) {
	body, err := postJSON(ctx, "api/mobile/client/create", bearer(tempToken), map[string]string{
		"phone_number": user.PhoneNumber,
		"first_name":   user.FirstName,
		"last_name":    user.LastName,
		"national_id":  user.NationalID,
	})
	if err != nil {
		return models.User{}, err
	}
	var out dto.UserDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.User{}, err
	}
	return out.ToDomain(), nil
}

// StartMobileChange begins the three step number change flow and returns the
// change token the caller must carry through verify and confirm.
func (a *AuthAPI) StartMobileChange(ctx context.Context, accessToken string, newPhoneNumber string) (string, error) {
	body, err := postJSON(ctx, "api/mobile/client/mobile/change/start", bearer(accessToken), map[string]string{
		"new_phone_number": newPhoneNumber,
	})
	if err != nil {
		return "", err
	}
	var out struct {
		ChangeToken string `json:"change_token"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	return out.ChangeToken, nil
}

func (a *AuthAPI) VerifyMobileChange(ctx context.Context, accessToken string, changeToken string, otp string) error {
	_, err := postJSON(ctx, "api/mobile/client/mobile/change/verify", bearer(accessToken), map[string]string{
		"change_token": changeToken,
		"otp":          otp,
	})
	return err
}

func (a *AuthAPI) ConfirmMobileChange(ctx context.Context, accessToken string, changeToken string, pin string) (models.User, error) {
	body, err := postJSON(ctx, "api/mobile/client/mobile/change/confirm", bearer(accessToken), map[string]string{
		"change_token": changeToken,
		"pin":          pin,
	})
	if err != nil {
		return models.User{}, err
	}
	var out dto.UserDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.User{}, err
	}
	return out.ToDomain(), nil
}
