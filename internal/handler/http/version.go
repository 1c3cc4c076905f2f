package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
)

// getServerVersion answers with the bare version string, not an envelope.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(version)))
	if _, err := w.Write([]byte(version)); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing server version")
	}
}
