package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"pesanet/kopa_lending/internal/pkg/logger"
	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/utils"
)

// ProfileService fronts the client profile with a Redis cache. Reads hit the
// cache inside its TTL; writes go through to the backend and refresh the
// cache on the way back.
type ProfileService struct {
	api         ProfileAPIInterface
	cache       ProfileCacheInterface
	preferences PreferencesStoreInterface
	storage     ObjectStorageInterface
}

func NewProfileService(api ProfileAPIInterface, cache ProfileCacheInterface, preferences PreferencesStoreInterface, storage ObjectStorageInterface) *ProfileService {
	return &ProfileService{
		api:         api,
		cache:       cache,
		preferences: preferences,
		storage:     storage,
	}
}

func (s *ProfileService) Profile(ctx context.Context, userID string, forceRefresh bool) (models.User, error) {
	if !forceRefresh {
		if cached, err := s.cache.Profile(ctx, userID); err == nil {
			return *cached, nil
		}
	}

	user, err := s.api.FetchProfile(ctx, userID)
	if err != nil {
		if cached, cacheErr := s.cache.Profile(ctx, userID); cacheErr == nil {
			logger.Warn(ctx, "profile refresh failed for user %s, serving cache: %v", userID, err)
			return *cached, nil
		}
		return models.User{}, err
	}

	if err := s.cache.SaveProfile(ctx, user); err != nil {
		logger.Warn(ctx, "failed to cache profile %s: %v", userID, err)
	}
	return user, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	updated, err := s.api.UpdateProfile(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	if err := s.cache.SaveProfile(ctx, updated); err != nil {
		logger.Warn(ctx, "failed to refresh cached profile %s: %v", updated.UserID, err)
	}
	return updated, nil
}

// UploadDocument stores the file in the bucket and registers the object with
// the backend so verification can pick it up.
func (s *ProfileService) UploadDocument(ctx context.Context, userID, documentType, fileName string, content []byte) (string, error) {
	objectName := fmt.Sprintf("documents/%s/%s/%d_%s", userID, documentType, time.Now().Unix(), fileName)
	objectURL, err := s.storage.Upload(ctx, objectName, bytes.NewBuffer(content))
	if err != nil {
		return "", err
	}
	if err := s.api.RegisterDocumentUpload(ctx, userID, documentType, objectURL); err != nil {
		return "", err
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		logger.Warn(ctx, "failed to invalidate cached profile %s: %v", userID, err)
	}
	return objectURL, nil
}

// ProfileCompletion combines the backend's view with the local field check.
// CanApplyForLoan requires all three: a complete profile, a verified client
// and the backend's own flag.
func (s *ProfileService) ProfileCompletion(ctx context.Context, userID string) (models.ProfileCompletion, error) {
	user, err := s.Profile(ctx, userID, false)
	if err != nil {
		return models.ProfileCompletion{}, err
	}

	if remote, err := s.api.FetchProfileCompletion(ctx, userID); err == nil {
		remote.CanApplyForLoan = remote.IsComplete && user.IsVerified && user.CanApplyForLoan
		return remote, nil
	}

	completion := ValidateProfileCompletion(user)
	return completion, nil
}

// ValidateProfileCompletion is the local fallback when the backend cannot be
// reached. It never grants CanApplyForLoan beyond what the cached profile's
// backend flag allows.
func ValidateProfileCompletion(user models.User) models.ProfileCompletion {
	var missing []string
	if utils.IsBlank(user.FirstName) {
		missing = append(missing, "first_name")
	}
	if utils.IsBlank(user.LastName) {
		missing = append(missing, "last_name")
	}
	if utils.IsBlank(user.NationalID) {
		missing = append(missing, "national_id")
	}
	if user.DateOfBirth == nil {
		missing = append(missing, "date_of_birth")
	}
	if utils.IsBlank(user.Address) {
		missing = append(missing, "address")
	}

	var nextSteps []string
	if len(missing) > 0 {
		nextSteps = append(nextSteps, "Complete the missing profile fields")
	}
	if !user.IsVerified {
		nextSteps = append(nextSteps, "Upload a verification document")
	}

	isComplete := len(missing) == 0
	return models.ProfileCompletion{
		IsComplete:      isComplete,
		MissingFields:   missing,
		NextSteps:       nextSteps,
		CanApplyForLoan: isComplete && user.IsVerified && user.CanApplyForLoan,
	}
}

func (s *ProfileService) Preferences(ctx context.Context, userID string) (models.UserPreferences, error) {
	return s.preferences.Preferences(ctx, userID)
}

func (s *ProfileService) SavePreferences(ctx context.Context, userID string, prefs models.UserPreferences) error {
	return s.preferences.SavePreferences(ctx, userID, prefs)
}
