package service

import (
	"context"

	"github.com/MKhiriev/go-learning-platform/internal/validators"
	"github.com/MKhiriev/go-learning-platform/models"
)

// AuthValidationService checks request bodies before they reach the wrapped
// AuthService. Validation failures are returned as *validators.ValidationError.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService(validator validators.Validator) AuthServiceWrapper {
	return &AuthValidationService{
		validator: validator,
	}
}

func (v *AuthValidationService) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.RegisterResult{}, err
	}

	return v.inner.Register(ctx, req)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Session{}, err
	}

	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) GoogleLogin(ctx context.Context, req models.GoogleLoginRequest) (models.Session, error) {
	return v.inner.GoogleLogin(ctx, req)
}

func (v *AuthValidationService) Refresh(ctx context.Context, req models.RefreshRequest) (models.TokenPair, error) {
	return v.inner.Refresh(ctx, req)
}

func (v *AuthValidationService) ParseAccessToken(ctx context.Context, tokenString string) (models.Identity, error) {
	return v.inner.ParseAccessToken(ctx, tokenString)
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}
