// Package server runs the HTTP API and the gRPC health endpoint side by side
// and stops both when the process receives a termination signal.
package server

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/handler"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
)

var errNoServersAreCreated = errors.New("no transport is configured")

// Server is the process lifecycle returned by [NewServer]. RunServer blocks
// until the process is signalled; Shutdown may be called from elsewhere to
// stop early.
type Server interface {
	RunServer()
	Shutdown()
}

// transport is one listener owned by the server.
type transport interface {
	name() string
	RunServer()
	Shutdown()
}

type server struct {
	transports []transport
	logger     *logger.Logger
}

// NewServer creates a transport for every handler that is both present in
// handlers and has a listen address in cfg.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	s := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		s.transports = append(s.transports, newHTTPServer(handlers.HTTP.Init(), cfg, logger))
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		s.transports = append(s.transports, newGRPCServer(handlers.GRPC, cfg, logger))
	}

	if len(s.transports) == 0 {
		return nil, errNoServersAreCreated
	}

	logger.Info().Strs("transports", s.names()).Msg("server created")
	return s, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

// Shutdown stops the transports in reverse start order.
func (s *server) Shutdown() {
	for i := len(s.transports) - 1; i >= 0; i-- {
		s.transports[i].Shutdown()
	}
}

// run serves every transport until ctx is done and returns once all of them
// have stopped.
func (s *server) run(ctx context.Context) error {
	if len(s.transports) == 0 {
		return errNoServersAreCreated
	}

	var wg sync.WaitGroup
	for _, t := range s.transports {
		s.logger.Info().Str("transport", t.name()).Msg("launching")
		wg.Go(t.RunServer)
	}

	<-ctx.Done()
	s.logger.Info().Msg("shutting down")
	s.Shutdown()
	wg.Wait()

	s.logger.Info().Msg("server stopped gracefully")
	return nil
}

func (s *server) names() []string {
	names := make([]string, 0, len(s.transports))
	for _, t := range s.transports {
		names = append(names, t.name())
	}
	return names
}
