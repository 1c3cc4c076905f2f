// Package http serves the learning platform REST API. Routes are registered
// in [Handler.Init]; every JSON body, success or failure, is a
// models.Envelope.
package http

import (
	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/service"
)

// Handler carries the services and the slices of configuration the routes
// need. App controls error verbosity; Server holds limits and timeouts.
type Handler struct {
	services *service.Services
	app      config.App
	server   config.Server
	logger   *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	return &Handler{
		services: services,
		app:      cfg.App,
		server:   cfg.Server,
		logger:   logger,
	}
}
