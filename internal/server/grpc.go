package server

import (
	"net"

	"github.com/MKhiriev/go-learning-platform/internal/config"
	myGRPC "github.com/MKhiriev/go-learning-platform/internal/handler/grpc"
	"github.com/MKhiriev/go-learning-platform/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server  *grpc.Server
	address string

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	srv := grpc.NewServer(handler.ServerOptions()...)
	handler.Register(srv)

	return &grpcServer{
		handler: handler,
		server:  srv,
		address: cfg.GRPCAddress,
		logger:  logger,
	}
}

func (g *grpcServer) name() string { return "grpc" }

func (g *grpcServer) RunServer() {
	lis, err := net.Listen("tcp", g.address)
	if err != nil {
		g.logger.Error().Err(err).Str("address", g.address).Msg("gRPC server Listen")
		return
	}

	g.serve(lis)
}

func (g *grpcServer) serve(lis net.Listener) {
	g.logger.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")
	g.handler.SetServing(true)

	if err := g.server.Serve(lis); err != nil {
		g.logger.Error().Err(err).Msg("gRPC server Serve")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.handler.Shutdown()
	g.server.GracefulStop()
}
