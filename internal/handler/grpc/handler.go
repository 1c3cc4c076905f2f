package grpc

import (
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Handler is the root gRPC transport handler.
//
// The gRPC listener exposes the standard health checking protocol so that
// orchestrators can probe the server next to the HTTP API. The serving
// status follows the server lifecycle through [Handler.SetServing].
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	health *health.Server

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger. The health status starts as NOT_SERVING.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.SetServing(false)

	return h
}

// Register attaches the handler's services to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h.health)
}

// ServerOptions returns the interceptors every gRPC call passes through.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.recoveryInterceptor, h.loggingInterceptor),
	}
}

// SetServing flips the overall health status reported to clients.
func (h *Handler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
	h.logger.Debug().Str("status", status.String()).Msg("gRPC health status changed")
}

// Shutdown marks every service NOT_SERVING and rejects further status
// updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
