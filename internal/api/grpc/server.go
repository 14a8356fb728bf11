package grpcapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"

	"campusnet-service/internal/logging"
	"campusnet-service/pkg/api"
)

const defaultShutdownTimeout = 10 * time.Second

// Options describes how the gRPC server should be started.
type Options struct {
	// Address is the listen address, for example ":50051".
	Address string
	// ShutdownTimeout caps how long graceful shutdown may take before the
	// server is stopped forcefully.
	ShutdownTimeout time.Duration
	// Registerer receives the gRPC server metrics. Defaults to
	// prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// Server owns the gRPC listener and manages its lifecycle.
type Server struct {
	address         string
	logger          *logging.Logger
	grpcServer      *grpc.Server
	listener        net.Listener
	shutdownTimeout time.Duration
}

// NewServer creates a gRPC server with logging and Prometheus interceptors
// and registers the network stats service on it.
func NewServer(logger *logging.Logger, service api.NetworkStatsServer, opts Options) (*Server, error) {
	if service == nil {
		return nil, errors.New("network stats service is required")
	}

	address := opts.Address
	if address == "" {
		return nil, errors.New("address is required")
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", address, err)
	}

	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	serverMetrics := grpc_prometheus.NewServerMetrics()
	registerer := opts.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if err := registerer.Register(serverMetrics); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			if existing, ok := alreadyRegistered.ExistingCollector.(*grpc_prometheus.ServerMetrics); ok {
				serverMetrics = existing
			} else {
				return nil, fmt.Errorf("register metrics: %w", err)
			}
		} else {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			loggingUnaryInterceptor(logger),
			serverMetrics.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			serverMetrics.StreamServerInterceptor(),
		),
	)

	api.RegisterNetworkStatsServer(server, service)
	serverMetrics.InitializeMetrics(server)

	return &Server{
		address:         address,
		logger:          logger,
		grpcServer:      server,
		listener:        listener,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// Address returns the address the server is actually listening on.
func (s *Server) Address() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve runs the gRPC server until the context is cancelled, then shuts it
// down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.listener.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpcServer.Serve(s.listener)
	}()

	if s.logger != nil {
		s.logger.Info("gRPC server started", "address", s.listener.Addr().String())
	}

	select {
	case <-ctx.Done():
		if s.logger != nil {
			s.logger.Info("gRPC server shutdown initiated")
		}
		shutdownErr := s.shutdown()
		serveErr := <-errCh
		if errors.Is(serveErr, grpc.ErrServerStopped) {
			serveErr = nil
		}
		if serveErr != nil && shutdownErr == nil {
			shutdownErr = serveErr
		}
		return shutdownErr
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

func (s *Server) shutdown() error {
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		if s.logger != nil {
			s.logger.Info("gRPC server stopped gracefully")
		}
		return nil
	case <-time.After(s.shutdownTimeout):
		if s.logger != nil {
			s.logger.Warn("gRPC server graceful shutdown timed out, forcing stop", "timeout", s.shutdownTimeout.String())
		}
		s.grpcServer.Stop()
		return fmt.Errorf("graceful shutdown exceeded %s", s.shutdownTimeout)
	}
}

func loggingUnaryInterceptor(logger *logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		if logger != nil {
			fields := []any{"method", info.FullMethod, "duration", time.Since(start)}
			if err != nil {
				fields = logging.AttachError(err, fields...)
				logger.Error("gRPC unary call completed", fields...)
			} else {
				logger.Info("gRPC unary call completed", fields...)
			}
		}

		return resp, err
	}
}
