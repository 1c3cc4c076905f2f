// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler assembles the inbound transports of the learning platform.
package handler

import (
	"errors"

	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/handler/grpc"
	"github.com/MKhiriev/go-learning-platform/internal/handler/http"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/service"
)

// errNoHandlersAreCreated means the configuration enables no transport at
// all, which is fatal at startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")

// Handlers holds the REST API handler and the gRPC health handler. A nil
// field means that transport is disabled.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers enables each transport whose listen address is set in
// cfg.Server.
func NewHandlers(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	var handlers Handlers

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	logger.Info().
		Bool("http", handlers.HTTP != nil).
		Bool("grpc", handlers.GRPC != nil).
		Msg("handlers created")
	return &handlers, nil
}
