package grpc

import (
	"bytes"
	"context"
	"testing"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func check(t *testing.T, h *Handler) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := h.health.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHandler_HealthLifecycle(t *testing.T) {
	h := NewHandler(nil, logger.Nop())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, h))

	h.SetServing(true)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, h))

	h.Shutdown()
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, h))

	h.SetServing(true)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, h), "status is frozen after shutdown")
}

func TestHandler_Register(t *testing.T) {
	h := NewHandler(nil, logger.Nop())
	srv := grpc.NewServer(h.ServerOptions()...)
	defer srv.Stop()

	h.Register(srv)

	_, ok := srv.GetServiceInfo()[healthpb.Health_ServiceDesc.ServiceName]
	assert.True(t, ok)
}

func TestLoggingInterceptor_PropagatesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(traceIDKey, "abc-123"))
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := h.loggingInterceptor(ctx, nil, info, func(ctx context.Context, _ any) (any, error) {
		logger.FromContext(ctx).Info().Msg("inside")
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Contains(t, buf.String(), `"trace_id":"abc-123"`)
	assert.Contains(t, buf.String(), `"method":"/grpc.health.v1.Health/Check"`)
	assert.Contains(t, buf.String(), `"code":"OK"`)
}

func TestRecoveryInterceptor(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	info := &grpc.UnaryServerInfo{FullMethod: "/x.Y/Z"}

	_, err := h.recoveryInterceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		panic("boom")
	})

	assert.Equal(t, codes.Internal, status.Code(err))
}
