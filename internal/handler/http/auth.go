package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-learning-platform/internal/app"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/utils"
	"github.com/MKhiriev/go-learning-platform/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.fail(w, r, err)
		return
	}

	registered, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	log.Info().Str("username", registered.Username).Msg("user registered")
	h.respond(w, r, http.StatusCreated, app.MsgRegistrationSuccessful, registered)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.fail(w, r, err)
		return
	}

	session, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	log.Debug().Str("username", session.Username).Msg("user successfully logged in")
	h.respond(w, r, http.StatusOK, app.MsgLoginSuccessful, session)
}

func (h *Handler) googleLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	// an empty body is reported by the service as a missing token
	var req models.GoogleLoginRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, utils.ErrEmptyBody) {
		log.Err(err).Msg("invalid JSON was passed")
		h.fail(w, r, err)
		return
	}

	session, err := h.services.AuthService.GoogleLogin(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	log.Debug().Str("username", session.Username).Msg("user successfully logged in with google")
	h.respond(w, r, http.StatusOK, app.MsgLoginSuccessful, session)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, utils.ErrEmptyBody) {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		h.fail(w, r, err)
		return
	}

	pair, err := h.services.AuthService.Refresh(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, app.MsgAccessTokenRefreshed, pair)
}
