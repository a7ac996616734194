// Package server hosts the campaign core: it wires the SQLite store, the
// change event journal, and the guarded campaign service into a gRPC
// server with health reporting.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/arathel/wardtable/internal/campaign/invite"
	"github.com/arathel/wardtable/internal/campaign/service"
	"github.com/arathel/wardtable/internal/event"
	"github.com/arathel/wardtable/internal/grpcmeta"
	"github.com/arathel/wardtable/internal/storage/sqlite"
)

// Config holds the server's environment configuration.
type Config struct {
	Port   int    `env:"WARDTABLE_GRPC_PORT" envDefault:"50051"`
	DBPath string `env:"WARDTABLE_DB_PATH" envDefault:"data/wardtable.db"`
}

// Server hosts the campaign core service.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *sqlite.Store
	service    *service.Service
}

// New creates a configured server listening on the configured port.
func New(cfg Config) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", cfg.Port, err)
	}

	store, err := openStore(cfg.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	joinGrants, err := invite.LoadJoinGrantConfigFromEnv(nil)
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, fmt.Errorf("load join grant config: %w", err)
	}

	// The store doubles as the change event journal.
	svc := service.New(service.Stores{
		Campaign:   store,
		Membership: store,
		Character:  store,
		Combat:     store,
	}, event.NewEmitter(store), service.WithJoinGrants(joinGrants))

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(grpcmeta.UnaryServerInterceptor(nil)),
		grpc.ChainStreamInterceptor(grpcmeta.StreamServerInterceptor(nil)),
	)
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
		service:    svc,
	}, nil
}

// Addr returns the listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Service returns the guarded campaign service for transport handlers.
func (s *Server) Service() *service.Service {
	if s == nil {
		return nil
	}
	return s.service
}

// GRPCServer returns the underlying gRPC server for service registration.
func (s *Server) GRPCServer() *grpc.Server {
	if s == nil {
		return nil
	}
	return s.grpcServer
}

// Run creates and serves a server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	srv, err := New(cfg)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Serve starts the server and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.closeStore()

	log.Printf("server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		return handleErr(<-serveErr)
	case err := <-serveErr:
		return handleErr(err)
	}
}

func openStore(path string) (*sqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = filepath.Join("data", "wardtable.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}

func (s *Server) closeStore() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close store: %v", err)
	}
}
