// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-learning-platform/internal/app"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/go-chi/chi/v5"
)

// profilePictureField is the multipart part carrying a profile picture.
const profilePictureField = "profile_picture"

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	summary, err := h.services.ProfileService.GetProfileSummary(r.Context(), caller.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, app.MsgProfileRetrieved, summary)
}

func (h *Handler) getProfileDetail(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	detail, err := h.services.ProfileService.GetProfileDetail(r.Context(), caller.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, app.MsgProfileRetrieved, detail)
}

func (h *Handler) getPublicProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.services.ProfileService.GetPublicProfile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, app.MsgProfileRetrieved, profile)
}

// setupProfile accepts either a JSON body or a multipart form whose fields
// use the JSON names, with an optional profile_picture part.
func (h *Handler) setupProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	caller, err := identity(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var (
		input   models.ProfileInput
		picture *models.UploadedFile
	)
	if isMultipart(r) {
		input, picture, err = h.profileForm(w, r)
	} else {
		err = decodeBody(r, &input)
	}
	if err != nil {
		log.Err(err).Msg("invalid profile payload")
		h.fail(w, r, err)
		return
	}

	profile, err := h.services.ProfileService.SetupProfile(r.Context(), caller.UserID, input, picture)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, app.MsgProfileSetup, profile)
}

func (h *Handler) updateProfilePicture(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var picture *models.UploadedFile
	if isMultipart(r) {
		if err = h.parseMultipart(w, r); err != nil {
			h.fail(w, r, err)
			return
		}
		if picture, err = formFile(r, profilePictureField); err != nil {
			h.fail(w, r, err)
			return
		}
	}

	profile, err := h.services.ProfileService.UpdateProfilePicture(r.Context(), caller.UserID, picture)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, app.MsgProfilePictureUpdated, profile)
}

func (h *Handler) profileForm(w http.ResponseWriter, r *http.Request) (models.ProfileInput, *models.UploadedFile, error) {
	if err := h.parseMultipart(w, r); err != nil {
		return models.ProfileInput{}, nil, err
	}

	graduationYear, err := formInt(r, "graduation_year")
	if err != nil {
		return models.ProfileInput{}, nil, err
	}

	picture, err := formFile(r, profilePictureField)
	if err != nil {
		return models.ProfileInput{}, nil, err
	}

	return models.ProfileInput{
		FullName:       models.Deref(formString(r, "fullname")),
		PhoneNumber:    formString(r, "phone_number"),
		BirthDate:      formString(r, "birth_date"),
		Address:        formString(r, "address"),
		City:           formString(r, "city"),
		Country:        formString(r, "country"),
		Gender:         formString(r, "gender"),
		School:         formString(r, "school"),
		Class:          formString(r, "class"),
		GraduationYear: graduationYear,
	}, picture, nil
}
