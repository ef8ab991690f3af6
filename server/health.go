package server

import (
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the gRPC health service name reported alongside the
// overall ("") status.
const ServiceName = "firecheck.v1.Validator"

// healthServer serves grpc.health.v1 on its own listener.
type healthServer struct {
	grpcServer *grpc.Server
	listener   net.Listener
	health     *health.Server
	logger     zerolog.Logger
}

func newHealthServer(addr string, logger zerolog.Logger) (*healthServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, hs)

	return &healthServer{
		grpcServer: grpcServer,
		listener:   listener,
		health:     hs,
		logger:     logger,
	}, nil
}

// Addr returns the address the server is listening on.
func (s *healthServer) Addr() string {
	return s.listener.Addr().String()
}

// setServing flips both the overall and the named service status.
func (s *healthServer) setServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// serve blocks until the server stops.
func (s *healthServer) serve() error {
	s.setServing(true)
	s.logger.Info().Str("addr", s.Addr()).Msg("starting gRPC health server")
	if err := s.grpcServer.Serve(s.listener); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("gRPC health server error: %w", err)
	}
	return nil
}

// stop marks the service as not serving, then stops the server.
func (s *healthServer) stop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
