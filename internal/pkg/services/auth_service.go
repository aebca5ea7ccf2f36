package services

import (
	"context"

	"pesanet/kopa_lending/configs"
	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/logger"
	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

const (
	changeStageStarted  = "STARTED"
	changeStageVerified = "VERIFIED"
)

// AuthService owns the OTP onboarding flow, PIN sessions and the three step
// mobile number change. The backend is authoritative for every credential
// decision; this service tracks session material and attempt counters.
type AuthService struct {
	api          AuthAPIInterface
	tokens       TokenStorageInterface
	profileCache ProfileCacheInterface
}

func NewAuthService(api AuthAPIInterface, tokens TokenStorageInterface, profileCache ProfileCacheInterface) *AuthService {
	return &AuthService{
		api:          api,
		tokens:       tokens,
		profileCache: profileCache,
	}
}

func (s *AuthService) SendOtp(ctx context.Context, phoneNumber string) (models.OtpSession, error) {
	cleaned := utils.CleanPhoneNumber(phoneNumber)
	if ok, err := utils.IsValidPhoneNumber(cleaned); !ok {
		logger.Warn(ctx, "rejected otp request for malformed number: %v", err)
		return models.OtpSession{}, consts.ErrorPhoneFormatInvalid
	}
	return s.api.SendOtp(ctx, cleaned)
}

// VerifyOtp counts attempts per session before calling out; once the counter
// passes the limit every further attempt fails locally without touching the
// backend. A correct OTP resets the counter.
func (s *AuthService) VerifyOtp(ctx context.Context, sessionID, phoneNumber, otp string) (string, error) {
	attempts, err := s.tokens.CountOtpAttempt(ctx, sessionID)
	if err != nil {
		logger.Error(ctx, "otp attempt counter unavailable: %v", err)
		return "", consts.ErrorServer
	}
	if attempts > int64(configs.OTP_MAX_ATTEMPTS) {
		return "", consts.ErrorMaxAttemptsExceeded
	}

	tempToken, err := s.api.VerifyOtp(ctx, sessionID, otp)
	if err != nil {
		return "", err
	}

	if err := s.tokens.ResetOtpAttempts(ctx, sessionID); err != nil {
		logger.Warn(ctx, "failed to reset otp attempts for session %s: %v", sessionID, err)
	}
	cleaned := utils.CleanPhoneNumber(phoneNumber)
	if err := s.tokens.SaveTempToken(ctx, cleaned, tempToken); err != nil {
		logger.Error(ctx, "failed to persist temp token: %v", err)
		return "", consts.ErrorServer
	}
	return tempToken, nil
}

func (s *AuthService) SetPin(ctx context.Context, phoneNumber, pin string) (models.AuthToken, error) {
	if !utils.IsValidPin(pin) {
		return models.AuthToken{}, consts.ErrorValidation
	}
	cleaned := utils.CleanPhoneNumber(phoneNumber)
	tempToken, err := s.tokens.TempToken(ctx, cleaned)
	if err != nil {
		return models.AuthToken{}, err
	}

	token, err := s.api.SetPin(ctx, tempToken, pin)
	if err != nil {
		return models.AuthToken{}, err
	}
	return s.establishSession(ctx, token, pin)
}

func (s *AuthService) Login(ctx context.Context, phoneNumber, pin string) (models.AuthToken, error) {
	cleaned := utils.CleanPhoneNumber(phoneNumber)
	if ok, _ := utils.IsValidPhoneNumber(cleaned); !ok {
		return models.AuthToken{}, consts.ErrorPhoneFormatInvalid
	}
	if !utils.IsValidPin(pin) {
		return models.AuthToken{}, consts.ErrorInvalidCredentials
	}

	token, err := s.api.Login(ctx, cleaned, pin)
	if err != nil {
		return models.AuthToken{}, err
	}
	return s.establishSession(ctx, token, pin)
}

func (s *AuthService) establishSession(ctx context.Context, token models.AuthToken, pin string) (models.AuthToken, error) {
	if err := s.tokens.SaveAuthToken(ctx, token); err != nil {
		logger.Error(ctx, "failed to persist auth token: %v", err)
		return models.AuthToken{}, consts.ErrorServer
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err == nil {
		if err := s.tokens.SavePinHash(ctx, token.UserID, hash); err != nil {
			logger.Warn(ctx, "failed to persist pin hash for user %s: %v", token.UserID, err)
		}
	}
	return token, nil
}

func (s *AuthService) RefreshSession(ctx context.Context, userID string) (models.AuthToken, error) {
	current, err := s.tokens.AuthToken(ctx, userID)
	if err != nil {
		return models.AuthToken{}, err
	}
	token, err := s.api.RefreshToken(ctx, current.RefreshToken)
	if err != nil {
		return models.AuthToken{}, err
	}
	if err := s.tokens.SaveAuthToken(ctx, token); err != nil {
		logger.Error(ctx, "failed to persist refreshed token: %v", err)
		return models.AuthToken{}, consts.ErrorServer
	}
	return token, nil
}

// Logout clears the local session even when the backend call fails; a dead
// session on the server side expires on its own.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if token, err := s.tokens.AuthToken(ctx, userID); err == nil {
		if err := s.api.Logout(ctx, token.AccessToken); err != nil {
			logger.Warn(ctx, "remote logout failed for user %s: %v", userID, err)
		}
	}
	if err := s.tokens.DeleteAuthToken(ctx, userID); err != nil {
		return err
	}
	if err := s.tokens.DeletePinHash(ctx, userID); err != nil {
		logger.Warn(ctx, "failed to drop pin hash for user %s: %v", userID, err)
	}
	if err := s.profileCache.Invalidate(ctx, userID); err != nil {
		logger.Warn(ctx, "failed to drop cached profile for user %s: %v", userID, err)
	}
	return nil
}

func (s *AuthService) IsLoggedIn(ctx context.Context, userID string) bool {
	has, err := s.tokens.HasAuthToken(ctx, userID)
	if err != nil {
		return false
	}
	return has
}

func (s *AuthService) CurrentToken(ctx context.Context, userID string) (*models.AuthToken, error) {
	return s.tokens.AuthToken(ctx, userID)
}

// UpdatePin verifies the current PIN against the local hash first so a wrong
// PIN never reaches the backend.
func (s *AuthService) UpdatePin(ctx context.Context, userID, currentPin, newPin string) error {
	if !utils.IsValidPin(newPin) {
		return consts.ErrorValidation
	}
	token, err := s.tokens.AuthToken(ctx, userID)
	if err != nil {
		return err
	}

	if hash, err := s.tokens.PinHash(ctx, userID); err == nil {
		if bcrypt.CompareHashAndPassword(hash, []byte(currentPin)) != nil {
			return consts.ErrorInvalidCredentials
		}
	}

	if err := s.api.UpdatePin(ctx, token.AccessToken, currentPin, newPin); err != nil {
		return err
	}

	if newHash, err := bcrypt.GenerateFromPassword([]byte(newPin), bcrypt.DefaultCost); err == nil {
		if err := s.tokens.SavePinHash(ctx, userID, newHash); err != nil {
			logger.Warn(ctx, "failed to refresh pin hash for user %s: %v", userID, err)
		}
	}
	return nil
}

func (s *AuthService) CreateClient(ctx context.Context, phoneNumber string, user models.User) (models.User, error) {
	cleaned := utils.CleanPhoneNumber(phoneNumber)
	tempToken, err := s.tokens.TempToken(ctx, cleaned)
	if err != nil {
		return models.User{}, err
	}
	user.PhoneNumber = cleaned
	created, err := s.api.CreateClient(ctx, tempToken, user)
	if err != nil {
		return models.User{}, err
	}
	if err := s.profileCache.SaveProfile(ctx, created); err != nil {
		logger.Warn(ctx, "failed to cache new profile %s: %v", created.UserID, err)
	}
	return created, nil
}

// StartMobileChange begins the number change flow. The returned change token
// must pass through VerifyMobileChange before ConfirmMobileChange accepts it;
// skipping a step fails with an invalid token error.
func (s *AuthService) StartMobileChange(ctx context.Context, userID, newPhoneNumber string) (string, error) {
	cleaned := utils.CleanPhoneNumber(newPhoneNumber)
	if ok, _ := utils.IsValidPhoneNumber(cleaned); !ok {
		return "", consts.ErrorPhoneFormatInvalid
	}
	token, err := s.tokens.AuthToken(ctx, userID)
	if err != nil {
		return "", err
	}
	changeToken, err := s.api.StartMobileChange(ctx, token.AccessToken, cleaned)
	if err != nil {
		return "", err
	}
	if err := s.tokens.SaveChangeStage(ctx, changeToken, changeStageStarted); err != nil {
		logger.Error(ctx, "failed to persist change stage: %v", err)
		return "", consts.ErrorServer
	}
	return changeToken, nil
}

func (s *AuthService) VerifyMobileChange(ctx context.Context, userID, changeToken, otp string) error {
	stage, err := s.tokens.ChangeStage(ctx, changeToken)
	if err != nil {
		return err
	}
	if stage != changeStageStarted {
		return consts.ErrorChangeTokenInvalid
	}
	token, err := s.tokens.AuthToken(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.api.VerifyMobileChange(ctx, token.AccessToken, changeToken, otp); err != nil {
		return err
	}
	return s.tokens.SaveChangeStage(ctx, changeToken, changeStageVerified)
}

func (s *AuthService) ConfirmMobileChange(ctx context.Context, userID, changeToken, pin string) (models.User, error) {
	stage, err := s.tokens.ChangeStage(ctx, changeToken)
	if err != nil {
		return models.User{}, err
	}
	if stage != changeStageVerified {
		return models.User{}, consts.ErrorChangeTokenInvalid
	}
	token, err := s.tokens.AuthToken(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	updated, err := s.api.ConfirmMobileChange(ctx, token.AccessToken, changeToken, pin)
	if err != nil {
		return models.User{}, err
	}
	if err := s.tokens.DeleteChangeStage(ctx, changeToken); err != nil {
		logger.Warn(ctx, "failed to clear change stage: %v", err)
	}
	if err := s.profileCache.SaveProfile(ctx, updated); err != nil {
		logger.Warn(ctx, "failed to refresh cached profile %s: %v", updated.UserID, err)
	}
	return updated, nil
}
