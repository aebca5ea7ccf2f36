package remote

import (
	"context"
	"encoding/json"

	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/remote/dto"
)

// ProfileAPI wraps the backend's client profile endpoints.
type ProfileAPI struct{}

func NewProfileAPI() *ProfileAPI {
	return &ProfileAPI{}
}

func (p *ProfileAPI) FetchProfile(ctx context.Context, userID string) (models.User, error) {
	body, err := getJSON(ctx, "api/mobile/client/profile/"+userID, nil)
	if err != nil {
		return models.User{}, err
	}
	var out dto.UserDTO
	if err := json.Unmarshal(body, &out); err != nil {
		return models.User{}, err
	}
	return out.ToDomain(), nil
}

func (p *ProfileAPI) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	body, err := postJSON(ctx, "api/mobile/client/profile/"+user.UserID, nil, map[string]string{
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"national_id": user.NationalID,
		"address":     user.Address,
		"email":       user.Email,
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

// RegisterDocumentUpload tells the backend where a verification document was
// stored so review can pick it up.
func (p *ProfileAPI) RegisterDocumentUpload(ctx context.Context, userID string, documentType string, objectURL string) error {
	_, err := postJSON(ctx, "api/mobile/client/profile/"+userID+"/documents", nil, map[string]string{
		"document_type": documentType,
		"object_url":    objectURL,
	})
	return err
}

func (p *ProfileAPI) FetchProfileCompletion(ctx context.Context, userID string) (models.ProfileCompletion, error) {
	body, err := getJSON(ctx, "api/mobile/client/profile/"+userID+"/completion", nil)
	if err != nil {
		return models.ProfileCompletion{}, err
	}
	var out models.ProfileCompletion
	if err := json.Unmarshal(body, &out); err != nil {
		return models.ProfileCompletion{}, err
	}
	return out, nil
}
