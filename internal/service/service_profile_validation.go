package service

import (
	"context"

	"github.com/MKhiriev/go-learning-platform/internal/validators"
	"github.com/MKhiriev/go-learning-platform/models"
)

type ProfileValidationService struct {
	inner     ProfileService
	validator validators.Validator
}

func NewProfileValidationService(validator validators.Validator) ProfileServiceWrapper {
	return &ProfileValidationService{
		validator: validator,
	}
}

func (v *ProfileValidationService) GetProfileSummary(ctx context.Context, userID int64) (models.ProfileSummary, error) {
	return v.inner.GetProfileSummary(ctx, userID)
}

func (v *ProfileValidationService) GetProfileDetail(ctx context.Context, userID int64) (models.ProfileDetail, error) {
	return v.inner.GetProfileDetail(ctx, userID)
}

// GetPublicProfile rejects usernames that cannot exist before querying.
func (v *ProfileValidationService) GetPublicProfile(ctx context.Context, username string) (models.PublicProfile, error) {
	if err := validators.ValidateHandle(username); err != nil {
		return models.PublicProfile{}, err
	}

	return v.inner.GetPublicProfile(ctx, username)
}

func (v *ProfileValidationService) SetupProfile(ctx context.Context, userID int64, input models.ProfileInput, picture *models.UploadedFile) (models.Profile, error) {
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Profile{}, err
	}

	return v.inner.SetupProfile(ctx, userID, input, picture)
}

func (v *ProfileValidationService) UpdateProfilePicture(ctx context.Context, userID int64, picture *models.UploadedFile) (models.Profile, error) {
	return v.inner.UpdateProfilePicture(ctx, userID, picture)
}

func (v *ProfileValidationService) Wrap(inner ProfileService) ProfileService {
	v.inner = inner
	return v
}
