package repository

import (
	"context"
	"encoding/json"
	"time"

	"pesanet/kopa_lending/configs"
	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/models"
)

// TokenStorage keeps session material in Redis with TTLs: auth token pairs,
// the temp token issued after OTP verification, and the mobile-change step
// token. Key layout is one key per user per purpose.
type TokenStorage struct {
	store RedisStoreOperations
}

func NewTokenStorage(store RedisStoreOperations) *TokenStorage {
	return &TokenStorage{store: store}
}

const (
	authTokenKeyPrefix   = "auth:token:"
	tempTokenKeyPrefix   = "auth:temp:"
	changeStageKeyPrefix = "auth:mobile_change:"
	otpAttemptsKeyPrefix = "auth:otp_attempts:"
	pinHashKeyPrefix     = "auth:pin_hash:"
)

func (t *TokenStorage) SaveAuthToken(ctx context.Context, token models.AuthToken) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return err
	}
	ttl := time.Duration(configs.REFRESH_TOKEN_TTL_HOURS) * time.Hour
	return t.store.Set(ctx, authTokenKeyPrefix+token.UserID, payload, ttl)
}

func (t *TokenStorage) AuthToken(ctx context.Context, userID string) (*models.AuthToken, error) {
	raw, err := t.store.Get(ctx, authTokenKeyPrefix+userID)
	if err != nil {
		return nil, consts.ErrorNotLoggedIn
	}
	bytes, ok := raw.([]byte)
	if !ok {
		return nil, consts.ErrorNotLoggedIn
	}
	var token models.AuthToken
	if err := json.Unmarshal(bytes, &token); err != nil {
		return nil, consts.ErrorNotLoggedIn
	}
	return &token, nil
}

func (t *TokenStorage) DeleteAuthToken(ctx context.Context, userID string) error {
	return t.store.Delete(ctx, authTokenKeyPrefix+userID)
}

func (t *TokenStorage) HasAuthToken(ctx context.Context, userID string) (bool, error) {
	return t.store.Exists(ctx, authTokenKeyPrefix+userID)
}

func (t *TokenStorage) SaveTempToken(ctx context.Context, phoneNumber, tempToken string) error {
	ttl := time.Duration(configs.CHANGE_TOKEN_TTL_MINUTES) * time.Minute
	return t.store.Set(ctx, tempTokenKeyPrefix+phoneNumber, tempToken, ttl)
}

func (t *TokenStorage) TempToken(ctx context.Context, phoneNumber string) (string, error) {
	raw, err := t.store.Get(ctx, tempTokenKeyPrefix+phoneNumber)
	if err != nil {
		return "", consts.ErrorTokenExpired
	}
	bytes, ok := raw.([]byte)
	if !ok {
		return "", consts.ErrorTokenExpired
	}
	return string(bytes), nil
}

// SaveChangeStage records which step of the mobile-change flow the token was
// issued for. Each step consumes the previous one's record.
func (t *TokenStorage) SaveChangeStage(ctx context.Context, changeToken, stage string) error {
	ttl := time.Duration(configs.CHANGE_TOKEN_TTL_MINUTES) * time.Minute
	return t.store.Set(ctx, changeStageKeyPrefix+changeToken, stage, ttl)
}

func (t *TokenStorage) ChangeStage(ctx context.Context, changeToken string) (string, error) {
	raw, err := t.store.Get(ctx, changeStageKeyPrefix+changeToken)
	if err != nil {
		return "", consts.ErrorChangeTokenInvalid
	}
	bytes, ok := raw.([]byte)
	if !ok {
		return "", consts.ErrorChangeTokenInvalid
	}
	return string(bytes), nil
}

func (t *TokenStorage) DeleteChangeStage(ctx context.Context, changeToken string) error {
	return t.store.Delete(ctx, changeStageKeyPrefix+changeToken)
}

// CountOtpAttempt bumps the attempt counter for the session and returns the
// new count; the first attempt sets the expiry window.
func (t *TokenStorage) CountOtpAttempt(ctx context.Context, sessionID string) (int64, error) {
	key := otpAttemptsKeyPrefix + sessionID
	count, err := t.store.Incr(ctx, key)
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_, _ = t.store.Expire(ctx, key, time.Duration(configs.CHANGE_TOKEN_TTL_MINUTES)*time.Minute)
	}
	return count, nil
}

func (t *TokenStorage) ResetOtpAttempts(ctx context.Context, sessionID string) error {
	return t.store.Delete(ctx, otpAttemptsKeyPrefix+sessionID)
}

// SavePinHash keeps a local bcrypt hash of the user's PIN so sensitive
// operations can verify it without a backend round trip. The hash lives as
// long as the refresh token does.
func (t *TokenStorage) SavePinHash(ctx context.Context, userID string, pinHash []byte) error {
	ttl := time.Duration(configs.REFRESH_TOKEN_TTL_HOURS) * time.Hour
	return t.store.Set(ctx, pinHashKeyPrefix+userID, pinHash, ttl)
}

func (t *TokenStorage) PinHash(ctx context.Context, userID string) ([]byte, error) {
	raw, err := t.store.Get(ctx, pinHashKeyPrefix+userID)
	if err != nil {
		return nil, consts.ErrorNotLoggedIn
	}
	bytes, ok := raw.([]byte)
	if !ok {
		return nil, consts.ErrorNotLoggedIn
	}
	return bytes, nil
}

func (t *TokenStorage) DeletePinHash(ctx context.Context, userID string) error {
	return t.store.Delete(ctx, pinHashKeyPrefix+userID)
}
