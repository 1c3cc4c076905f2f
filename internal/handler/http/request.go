package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-learning-platform/internal/utils"
	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/go-chi/chi/v5"
)

// defaultMaxUploadSize applies when the server config sets no limit.
const defaultMaxUploadSize int64 = 5 << 20

// decodeBody decodes the JSON body of r into v.
func decodeBody(r *http.Request, v any) error {
	if err := utils.DecodeJSON(r, v); err != nil {
		if errors.Is(err, utils.ErrEmptyBody) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	return nil
}

// parsePageRequest reads page, limit, sort_by and sort_order from the query.
// Page and limit fall back to their defaults when absent, non-numeric or
// below 1. Page is capped at [models.MaxPage] and limit at [models.MaxLimit].
func parsePageRequest(r *http.Request) models.PageRequest {
	query := r.URL.Query()

	order := models.SortAsc
	if strings.EqualFold(query.Get("sort_order"), "desc") {
		order = models.SortDesc
	}

	return models.PageRequest{
		Page:      min(positiveOrDefault(query.Get("page"), models.DefaultPage), models.MaxPage),
		Limit:     min(positiveOrDefault(query.Get("limit"), models.DefaultLimit), models.MaxLimit),
		SortBy:    query.Get("sort_by"),
		SortOrder: order,
	}
}

func positiveOrDefault(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// pathID parses the named chi URL parameter as a positive int64.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPathParam, name)
	}
	return id, nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parseMultipart parses a multipart body bounded by the configured upload
// limit.
func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	limit := h.server.MaxUploadSize
	if limit <= 0 {
		limit = defaultMaxUploadSize
	}

	if r.ContentLength > limit {
		return ErrUploadTooLarge
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrUploadTooLarge
		}
		return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	return nil
}

// formFile reads the named file part. It returns nil without error when the
// part is absent.
func formFile(r *http.Request, field string) (*models.UploadedFile, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	defer file.Close()

	return readUploadedFile(file, header)
}

func readUploadedFile(file multipart.File, header *multipart.FileHeader) (*models.UploadedFile, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	return &models.UploadedFile{Name: header.Filename, Content: content}, nil
}

// formString returns the trimmed form value of key, or nil when it is empty.
func formString(r *http.Request, key string) *string {
	value := strings.TrimSpace(r.FormValue(key))
	if value == "" {
		return nil
	}
	return &value
}

func formInt(r *http.Request, key string) (*int, error) {
	raw := formString(r, key)
	if raw == nil {
		return nil, nil
	}
	value, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidRequestBody, key)
	}
	return &value, nil
}

func formInt64(r *http.Request, key string) (*int64, error) {
	raw := formString(r, key)
	if raw == nil {
		return nil, nil
	}
	value, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidRequestBody, key)
	}
	return &value, nil
}

func formBool(r *http.Request, key string) (*bool, error) {
	raw := formString(r, key)
	if raw == nil {
		return nil, nil
	}
	value, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a boolean", ErrInvalidRequestBody, key)
	}
	return &value, nil
}

// identity returns the caller resolved by the auth middleware.
func identity(r *http.Request) (models.Identity, error) {
	id, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		return models.Identity{}, ErrUnauthorized
	}
	return id, nil
}
