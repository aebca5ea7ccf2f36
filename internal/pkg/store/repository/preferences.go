package repository

import (
	"context"
	"encoding/json"

	"pesanet/kopa_lending/internal/pkg/models"
)

// PreferencesStore keeps per-user app preferences in Redis without expiry;
// preferences only change when the user changes them.
type PreferencesStore struct {
	store RedisStoreOperations
}

func NewPreferencesStore(store RedisStoreOperations) *PreferencesStore {
	return &PreferencesStore{store: store}
}

const preferencesKeyPrefix = "preferences:"

func defaultPreferences() models.UserPreferences {
	return models.UserPreferences{
		Language:             "en",
		NotificationsEnabled: true,
		BiometricLogin:       false,
	}
}

func (p *PreferencesStore) SavePreferences(ctx context.Context, userID string, prefs models.UserPreferences) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return p.store.Set(ctx, preferencesKeyPrefix+userID, payload, 0)
}

// Preferences falls back to defaults on a miss; preferences are never a
// reason to fail an operation.
func (p *PreferencesStore) Preferences(ctx context.Context, userID string) (models.UserPreferences, error) {
	raw, err := p.store.Get(ctx, preferencesKeyPrefix+userID)
	if err != nil {
		return defaultPreferences(), nil
	}
	bytes, ok := raw.([]byte)
	if !ok {
		return defaultPreferences(), nil
	}
	var prefs models.UserPreferences
	if err := json.Unmarshal(bytes, &prefs); err != nil {
		return defaultPreferences(), nil
	}
	return prefs, nil
}
