package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"pesanet/kopa_lending/internal/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileServiceFixture struct {
	service     *ProfileService
	api         *fakeProfileAPI
	cache       *fakeProfileCache
	preferences *fakePreferencesStore
	storage     *fakeObjectStorage
}

func newProfileServiceFixture() *profileServiceFixture {
	f := &profileServiceFixture{
		api:         &fakeProfileAPI{},
		cache:       newFakeProfileCache(),
		preferences: &fakePreferencesStore{},
		storage:     &fakeObjectStorage{},
	}
	f.service = NewProfileService(f.api, f.cache, f.preferences, f.storage)
	return f
}

func completeUser() models.User {
	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	return models.User{
		UserID:          "user-1",
		PhoneNumber:     "263771234567",
		FirstName:       "Rudo",
		LastName:        "Chikafu",
		NationalID:      "63-123456A42",
		DateOfBirth:     &dob,
		Address:         "12 Samora Machel Ave, Harare",
		IsVerified:      true,
		CanApplyForLoan: true,
	}
}

func TestProfile_CacheHitSkipsRemote(t *testing.T) {
	f := newProfileServiceFixture()
	require.NoError(t, f.cache.SaveProfile(context.Background(), completeUser()))

	user, err := f.service.Profile(context.Background(), "user-1", false)

	require.NoError(t, err)
	assert.Equal(t, "Rudo", user.FirstName)
}

func TestProfile_ForceRefreshHitsRemote(t *testing.T) {
	f := newProfileServiceFixture()
	stale := completeUser()
	stale.FirstName = "Old"
	require.NoError(t, f.cache.SaveProfile(context.Background(), stale))
	f.api.fetchProfile = func(ctx context.Context, userID string) (models.User, error) {
		return completeUser(), nil
	}

	user, err := f.service.Profile(context.Background(), "user-1", true)

	require.NoError(t, err)
	assert.Equal(t, "Rudo", user.FirstName)

	cached, err := f.cache.Profile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Rudo", cached.FirstName)
}

func TestProfile_RemoteFailureFallsBackToCache(t *testing.T) {
	f := newProfileServiceFixture()
	require.NoError(t, f.cache.SaveProfile(context.Background(), completeUser()))

	user, err := f.service.Profile(context.Background(), "user-1", true)

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)
}

func TestUploadDocument_RegistersAndInvalidates(t *testing.T) {
	f := newProfileServiceFixture()
	var registeredURL string
	f.api.registerUpload = func(ctx context.Context, userID, documentType, objectURL string) error {
		registeredURL = objectURL
		return nil
	}

	objectURL, err := f.service.UploadDocument(context.Background(), "user-1", "national_id", "scan.jpg", []byte("content"))

	require.NoError(t, err)
	assert.Equal(t, registeredURL, objectURL)
	assert.True(t, strings.HasPrefix(objectURL, "gs://test-bucket/documents/user-1/national_id/"))
	assert.True(t, strings.HasSuffix(objectURL, "_scan.jpg"))
	assert.Equal(t, []string{"user-1"}, f.cache.invalidated)
}

func TestUploadDocument_StorageFailureSkipsRegistration(t *testing.T) {
	f := newProfileServiceFixture()
	f.storage.err = errStub
	registered := false
	f.api.registerUpload = func(ctx context.Context, userID, documentType, objectURL string) error {
		registered = true
		return nil
	}

	_, err := f.service.UploadDocument(context.Background(), "user-1", "national_id", "scan.jpg", []byte("content"))

	require.Error(t, err)
	assert.False(t, registered)
}

func TestProfileCompletion_BackendFlagIsNeverEnoughAlone(t *testing.T) {
	tests := []struct {
		name       string
		verified   bool
		backendSay bool
		complete   bool
		canApply   bool
	}{
		{"all three hold", true, true, true, true},
		{"unverified client", false, true, true, false},
		{"backend withholds the flag", true, false, true, false},
		{"incomplete profile", true, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProfileServiceFixture()
			user := completeUser()
			user.IsVerified = tt.verified
			user.CanApplyForLoan = tt.backendSay
			require.NoError(t, f.cache.SaveProfile(context.Background(), user))
			f.api.fetchCompletion = func(ctx context.Context, userID string) (models.ProfileCompletion, error) {
				return models.ProfileCompletion{IsComplete: tt.complete, CanApplyForLoan: true}, nil
			}

			completion, err := f.service.ProfileCompletion(context.Background(), "user-1")

			require.NoError(t, err)
			assert.Equal(t, tt.canApply, completion.CanApplyForLoan)
		})
	}
}

func TestValidateProfileCompletion(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*models.User)
		missingFields []string
		canApply      bool
	}{
		{
			name:     "complete verified profile",
			mutate:   func(u *models.User) {},
			canApply: true,
		},
		{
			name:          "missing names",
			mutate:        func(u *models.User) { u.FirstName = ""; u.LastName = " " },
			missingFields: []string{"first_name", "last_name"},
		},
		{
			name:          "missing date of birth",
			mutate:        func(u *models.User) { u.DateOfBirth = nil },
			missingFields: []string{"date_of_birth"},
		},
		{
			name:          "missing national id and address",
			mutate:        func(u *models.User) { u.NationalID = ""; u.Address = "" },
			missingFields: []string{"national_id", "address"},
		},
		{
			name:   "complete but unverified",
			mutate: func(u *models.User) { u.IsVerified = false },
		},
		{
			name:   "complete and verified but backend flag withheld",
			mutate: func(u *models.User) { u.CanApplyForLoan = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := completeUser()
			tt.mutate(&user)

			completion := ValidateProfileCompletion(user)

			assert.Equal(t, len(tt.missingFields) == 0, completion.IsComplete)
			assert.Equal(t, tt.missingFields, completion.MissingFields)
			assert.Equal(t, tt.canApply, completion.CanApplyForLoan)
		})
	}
}

func TestPreferences_RoundTrip(t *testing.T) {
	f := newProfileServiceFixture()

	prefs, err := f.service.Preferences(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "en", prefs.Language)

	prefs.Language = "sn"
	prefs.BiometricLogin = true
	require.NoError(t, f.service.SavePreferences(context.Background(), "user-1", prefs))

	saved, err := f.service.Preferences(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "sn", saved.Language)
	assert.True(t, saved.BiometricLogin)
}
