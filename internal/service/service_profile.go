// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-learning-platform/internal/adapter"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/store"
	"github.com/MKhiriev/go-learning-platform/internal/utils"
	"github.com/MKhiriev/go-learning-platform/models"
)

// birthDateLayout is the accepted format of ProfileInput.BirthDate.
const birthDateLayout = "2006-01-02"

type profileService struct {
	profileRepository store.ProfileRepository
	fileStorage       adapter.FileStorage
	uuidGenerator     *utils.UUIDGenerator

	logger *logger.Logger
}

func NewProfileService(storages *store.Storages, adapters *adapter.Adapters, logger *logger.Logger) ProfileService {
	return &profileService{
		profileRepository: storages.ProfileRepository,
		fileStorage:       adapters.FileStorage,
		uuidGenerator:     utils.NewUUIDGenerator(),
		logger:            logger,
	}
}

func (s *profileService) GetProfileSummary(ctx context.Context, userID int64) (models.ProfileSummary, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return models.ProfileSummary{}, err
	}

	return models.ProfileSummary{
		Username:       user.Username,
		Email:          user.Email,
		FullName:       user.Profile.FullName,
		ProfilePicture: user.Profile.ProfilePicture,
	}, nil
}

func (s *profileService) GetProfileDetail(ctx context.Context, userID int64) (models.ProfileDetail, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return models.ProfileDetail{}, err
	}

	p := user.Profile
	return models.ProfileDetail{
		Username:       user.Username,
		Email:          user.Email,
		FullName:       p.FullName,
		PhoneNumber:    models.Deref(p.PhoneNumber),
		BirthDate:      p.BirthDate,
		Address:        models.Deref(p.Address),
		City:           models.Deref(p.City),
		Country:        models.Deref(p.Country),
		Gender:         models.Deref(p.Gender),
		ProfilePicture: p.ProfilePicture,
		School:         models.Deref(p.School),
		Class:          models.Deref(p.Class),
		GraduationYear: p.GraduationYear,
		CreatedAt:      timeOrNil(p.CreatedAt),
		UpdatedAt:      timeOrNil(p.UpdatedAt),
	}, nil
}

func (s *profileService) GetPublicProfile(ctx context.Context, username string) (models.PublicProfile, error) {
	user, err := s.profileRepository.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.PublicProfile{}, ErrUserNotFound
	}
	if err != nil {
		return models.PublicProfile{}, fmt.Errorf("error finding user by username: %w", err)
	}

	p := user.Profile
	return models.PublicProfile{
		Username:       user.Username,
		FullName:       p.FullName,
		ProfilePicture: p.ProfilePicture,
		City:           models.Deref(p.City),
		Country:        models.Deref(p.Country),
		School:         models.Deref(p.School),
		Class:          models.Deref(p.Class),
		GraduationYear: p.GraduationYear,
	}, nil
}

// SetupProfile creates or replaces the profile of userID. Without a new
// picture the stored one is kept.
func (s *profileService) SetupProfile(ctx context.Context, userID int64, input models.ProfileInput, picture *models.UploadedFile) (models.Profile, error) {
	log := logger.FromContext(ctx)

	existing, err := s.profileRepository.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrProfileNotFound) {
		return models.Profile{}, fmt.Errorf("error loading profile: %w", err)
	}

	var birthDate *time.Time
	if input.BirthDate != nil && *input.BirthDate != "" {
		parsed, err := time.Parse(birthDateLayout, *input.BirthDate)
		if err != nil {
			return models.Profile{}, fmt.Errorf("%w: %w", ErrInvalidBirthDate, err)
		}
		birthDate = &parsed
	}

	pictureURL := existing.ProfilePicture
	if picture.Present() {
		pictureURL, err = s.fileStorage.Upload(ctx, s.uuidGenerator.FileName(picture.Name), picture.Content)
		if err != nil {
			log.Err(err).Str("func", "*profileService.SetupProfile").Int64("user_id", userID).Msg("error uploading profile picture")
			return models.Profile{}, fmt.Errorf("%w: %w", ErrPictureUploadFailed, err)
		}
	}

	profile, err := s.profileRepository.Upsert(ctx, models.Profile{
		UserID:         userID,
		FullName:       input.FullName,
		ProfilePicture: pictureURL,
		PhoneNumber:    input.PhoneNumber,
		BirthDate:      birthDate,
		Address:        input.Address,
		City:           input.City,
		Country:        input.Country,
		Gender:         input.Gender,
		School:         input.School,
		Class:          input.Class,
		GraduationYear: input.GraduationYear,
	})
	if err != nil {
		return models.Profile{}, fmt.Errorf("error saving profile: %w", err)
	}

	return profile, nil
}

// UpdateProfilePicture replaces the stored picture: the old file is removed
// from the storage before the new one is uploaded.
func (s *profileService) UpdateProfilePicture(ctx context.Context, userID int64, picture *models.UploadedFile) (models.Profile, error) {
	log := logger.FromContext(ctx)

	existing, err := s.profileRepository.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrProfileNotFound) {
		return models.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("error loading profile: %w", err)
	}

	if !picture.Present() {
		return models.Profile{}, ErrNoFileUploaded
	}

	if err = s.fileStorage.Delete(ctx, existing.ProfilePicture); err != nil {
		log.Err(err).Str("func", "*profileService.UpdateProfilePicture").Str("url", existing.ProfilePicture).Msg("error deleting old profile picture")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrPictureUploadFailed, err)
	}

	pictureURL, err := s.fileStorage.Upload(ctx, s.uuidGenerator.FileName(picture.Name), picture.Content)
	if err != nil {
		log.Err(err).Str("func", "*profileService.UpdateProfilePicture").Int64("user_id", userID).Msg("error uploading profile picture")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrPictureUploadFailed, err)
	}

	profile, err := s.profileRepository.UpdatePicture(ctx, userID, pictureURL)
	if errors.Is(err, store.ErrProfileNotFound) {
		return models.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("error updating profile picture: %w", err)
	}

	return profile, nil
}

func (s *profileService) findUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.profileRepository.FindByUserID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("error finding user: %w", err)
	}

	return user, nil
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
