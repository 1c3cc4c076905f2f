package http

import (
	"net/http"

	"github.com/MKhiriev/go-learning-platform/internal/app"
	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if h.server.TrustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(h.withTraceID, h.withLogging, h.withMetrics)
	if h.server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.server.RequestTimeout))
	}

	router.Handle("/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(h.withGZip)

		// authentication, rate limited per client IP
		r.Group(func(r chi.Router) {
			r.Use(h.withRateLimit(h.server.AuthRateLimitRPS, h.server.AuthRateLimitBurst))
			r.Post("/api/auth/register", h.register)
			r.Post("/api/auth/login", h.login)
			r.Post("/api/auth/google", h.googleLogin)
			r.Post("/api/auth/refresh", h.refresh)
		})

		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Get("/api/users/{username}", h.getPublicProfile)

			r.Get("/api/search/chapters", h.search(models.SearchChapters))
			r.Get("/api/search/topics", h.search(models.SearchTopics))
			r.Get("/api/search/difficulties", h.search(models.SearchDifficulties))
			r.Get("/api/search/types", h.search(models.SearchTypes))

			r.Get("/api/version/", h.getServerVersion)
		})

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/api/users/me", h.getProfile)
			r.Get("/api/users/me/detail", h.getProfileDetail)
			r.Put("/api/users/me/profile", h.setupProfile)
			r.Put("/api/users/me/profile/picture", h.updateProfilePicture)

			r.Get("/api/chapters", h.listChapters)
			r.Post("/api/chapters", h.createChapter)
			r.Get("/api/v2/chapters", h.listChaptersPaged)
			r.Get("/api/chapters/{chapterID}/topics", h.listTopicsByChapter)
			r.Put("/api/chapters/{chapterID}/progress", h.setChapterProgress)

			r.Post("/api/topics", h.createTopic)
			r.Put("/api/topics/{topicID}/progress", h.setTopicProgress)

			r.Post("/api/questions", h.createQuestion)
		})
	})

	// a known path with an unsupported method looks like an unknown route
	router.NotFound(routeNotFound)
	router.MethodNotAllowed(routeNotFound)

	return router
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, r, errorEnvelope(http.StatusNotFound, app.MsgRouteNotFound))
}
