package http

import (
	"net/http"

	"github.com/MKhiriev/go-learning-platform/internal/app"
	"github.com/MKhiriev/go-learning-platform/models"
)

// searchMessages holds the success message of every search endpoint.
var searchMessages = map[models.SearchTarget]string{
	models.SearchChapters:     app.MsgChaptersFound,
	models.SearchTopics:       app.MsgTopicsFound,
	models.SearchDifficulties: app.MsgDifficultiesFound,
	models.SearchTypes:        app.MsgTypesFound,
}

// search returns the title search handler of target. The title comes from
// the "title" query parameter; an empty title matches everything.
func (h *Handler) search(target models.SearchTarget) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.services.SearchService.Search(r.Context(), target, r.URL.Query().Get("title"), parsePageRequest(r))
		if err != nil {
			h.fail(w, r, err)
			return
		}

		h.respond(w, r, http.StatusOK, searchMessages[target], result)
	}
}
