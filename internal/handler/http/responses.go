package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/utils"
	"github.com/MKhiriev/go-learning-platform/models"
)

// internalServerErrorMessage replaces the error text of 500 responses
// outside development environments.
const internalServerErrorMessage = "Internal Server Error"

// emptyData is rendered as {} in envelopes that carry no payload.
var emptyData = struct{}{}

// respond writes a successful envelope.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	if data == nil {
		data = emptyData
	}

	writeEnvelope(w, r, models.Envelope{
		Error:   false,
		Code:    status,
		Message: message,
		Data:    data,
	})
}

// fail writes the error envelope for err. Field validation errors carry the
// per-field messages in data. 500 responses are persisted to the error log.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	if vErr, ok := validationError(err); ok {
		log.Debug().Err(err).Msg("request validation failed")
		writeEnvelope(w, r, models.Envelope{
			Error:   true,
			Code:    http.StatusBadRequest,
			Message: vErr.Message(),
			Data:    models.ValidationErrorData{Fields: vErr.Fields()},
		})
		return
	}

	status, sentinel := statusFromError(err)
	if status != http.StatusInternalServerError {
		log.Info().Err(err).Int("status", status).Msg("request failed")
		writeEnvelope(w, r, errorEnvelope(status, sentinel.Error()))
		return
	}

	log.Err(err).Msg("internal server error")
	h.recordError(r, err)

	message := internalServerErrorMessage
	switch {
	case sentinel != nil:
		message = sentinel.Error()
	case h.app.IsDevelopment():
		message = err.Error()
	}
	writeEnvelope(w, r, errorEnvelope(status, message))
}

// recordError persists err to the error log. A failure to save is logged
// and otherwise ignored.
func (h *Handler) recordError(r *http.Request, err error) {
	if h.services == nil || h.services.ErrorLogService == nil {
		return
	}

	entry := models.ErrorLog{
		FeatureName:  r.RequestURI,
		ProcessID:    strconv.Itoa(os.Getpid()),
		Error:        fmt.Sprintf("%T", rootCause(err)),
		ErrorMessage: err.Error(),
	}
	if identity, ok := utils.GetIdentityFromContext(r.Context()); ok {
		entry.UserID = &identity.UserID
	}
	if chain := errorChain(err); chain != "" {
		entry.ErrorStack = &chain
	}

	// the request context may already be cancelled by the timeout middleware
	ctx := context.WithoutCancel(r.Context())
	if recordErr := h.services.ErrorLogService.Record(ctx, entry); recordErr != nil {
		logger.FromRequest(r).Err(recordErr).Msg("failed to log error to database")
	}
}

func errorEnvelope(status int, message string) models.Envelope {
	return models.Envelope{
		Error:   true,
		Code:    status,
		Message: message,
		Data:    emptyData,
	}
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, envelope models.Envelope) {
	if _, err := utils.WriteJSON(w, envelope, envelope.Code); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

// errorChain renders every error reachable through Unwrap, one per line,
// outermost first.
func errorChain(err error) string {
	var lines []string
	queue := []error{err}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%T: %s", current, current.Error()))

		switch unwrapped := current.(type) {
		case interface{ Unwrap() error }:
			queue = append(queue, unwrapped.Unwrap())
		case interface{ Unwrap() []error }:
			queue = append(queue, unwrapped.Unwrap()...)
		}
	}
	return strings.Join(lines, "\n")
}

// rootCause follows single-error Unwrap chains to the innermost error.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
