package http

import (
	"net/http"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, resolves it
// via [service.AuthService.ParseAccessToken] and, on success, stores the
// resulting [models.Identity] in the request context with
// [utils.WithIdentity] before delegating to the next handler.
//
// Requests are rejected with:
//   - 401 Unauthorized when the header is absent or not "Bearer <token>";
//   - 403 Forbidden when the token is expired, malformed or is a refresh
//     token.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Err(err).Send()
			h.fail(w, r, ErrUnauthorized)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.ParseAccessToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			h.fail(w, r, ErrInvalidToken)
			return
		}

		ctx = utils.WithIdentity(ctx, identity)
		ctx = log.WithUserID(identity.UserID).WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
