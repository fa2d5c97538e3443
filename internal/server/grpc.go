package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	ledgerv1 "ImmutableLedger/gen/go/ledger/v1"
	"ImmutableLedger/internal/ledger"
	"ImmutableLedger/internal/observability"
	"ImmutableLedger/internal/seal"
)

// GRPCServer wraps the gRPC server and the gRPC-Gateway HTTP mux.
type GRPCServer struct {
	grpcServer    *grpc.Server
	httpServer    *http.Server
	grpcAddr      string
	httpAddr      string
	log           zerolog.Logger
	healthChecker *observability.HealthChecker
}

// Deps holds the dependencies of the ledger service boundary.
type Deps struct {
	Sealer        *seal.Sealer
	Logger        zerolog.Logger
	HealthChecker *observability.HealthChecker
}

// NewGRPCServer creates a gRPC server with the ledger service registered.
func NewGRPCServer(grpcAddr, httpAddr string, deps *Deps) *GRPCServer {
	grpcServer := grpc.NewServer()

	ledgerv1.RegisterLedgerServiceServer(grpcServer, &ledgerServiceImpl{
		sealer: deps.Sealer,
		log:    deps.Logger,
	})

	// Standard gRPC health service alongside the domain HealthCheck RPC.
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// Reflection for grpcurl / grpcui
	reflection.Register(grpcServer)

	return &GRPCServer{
		grpcServer:    grpcServer,
		grpcAddr:      grpcAddr,
		httpAddr:      httpAddr,
		log:           deps.Logger,
		healthChecker: deps.HealthChecker,
	}
}

// StartGRPC starts the gRPC server (blocking).
func (s *GRPCServer) StartGRPC(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.grpcAddr)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	go func() {
		<-ctx.Done()
		s.log.Info().Msg("gRPC server shutting down")
		s.grpcServer.GracefulStop()
	}()

	s.log.Info().Str("addr", s.grpcAddr).Msg("gRPC server listening")
	return s.grpcServer.Serve(lis)
}

// StartHTTPGateway starts the gRPC-Gateway HTTP reverse proxy (blocking).
// HTTP/JSON is served for tooling, dashboards, curl.
func (s *GRPCServer) StartHTTPGateway(ctx context.Context) error {
	mux := runtime.NewServeMux()

	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if err := ledgerv1.RegisterLedgerServiceHandlerFromEndpoint(ctx, mux, s.grpcAddr, opts); err != nil {
		return fmt.Errorf("register ledger gateway: %w", err)
	}

	httpMux := http.NewServeMux()
	if s.healthChecker != nil {
		httpMux.HandleFunc("/healthz", s.healthChecker.LivenessHandler)
		httpMux.HandleFunc("/readyz", s.healthChecker.ReadinessHandler)
	}
	httpMux.Handle("/", mux)

	s.httpServer = &http.Server{
		Addr:    s.httpAddr,
		Handler: httpMux,
	}

	go func() {
		<-ctx.Done()
		s.log.Info().Msg("HTTP gateway shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("addr", s.httpAddr).Str("grpc", s.grpcAddr).Msg("HTTP gateway listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// ============================================================================
// LedgerService gRPC implementation
// ============================================================================

type ledgerServiceImpl struct {
	ledgerv1.UnimplementedLedgerServiceServer
	sealer *seal.Sealer
	log    zerolog.Logger
}

func (s *ledgerServiceImpl) SubmitEvent(ctx context.Context, req *ledgerv1.CertifiedEvent) (*ledgerv1.SealedEvent, error) {
	// The payload is an opaque byte sequence of arbitrary length;
	// zero-length is as sealable as any other.
	eventID := req.EventId
	if eventID == "" {
		// Callers without their own identifier still get a traceable record.
		eventID = uuid.NewString()
		s.log.Debug().Str("event_id", eventID).Msg("assigned event id")
	}

	rec, err := s.sealer.Seal(ctx, eventID, req.Payload, req.Signature, req.Timestamp)
	if err != nil {
		s.log.Error().Err(err).Str("event_id", eventID).Msg("seal failed")
		return nil, sealStatus(err)
	}

	return sealedEventProto(rec), nil
}

func (s *ledgerServiceImpl) GetEvent(ctx context.Context, req *ledgerv1.GetEventRequest) (*ledgerv1.SealedEvent, error) {
	rec, err := s.sealer.GetRecord(ctx, req.SequenceNumber)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, status.Errorf(codes.NotFound, "no event at sequence %d", req.SequenceNumber)
		}
		s.log.Error().Err(err).Uint64("sequence", req.SequenceNumber).Msg("get event failed")
		return nil, sealStatus(err)
	}

	return sealedEventProto(rec), nil
}

func (s *ledgerServiceImpl) HealthCheck(ctx context.Context, req *ledgerv1.HealthCheckRequest) (*ledgerv1.HealthCheckResponse, error) {
	current, err := s.sealer.CurrentSequence(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("health check failed")
		return &ledgerv1.HealthCheckResponse{
			Healthy: false,
			Status:  storeHealthStatus(err),
		}, nil
	}

	return &ledgerv1.HealthCheckResponse{
		Healthy:            true,
		Status:             "ok",
		LastSequenceNumber: current,
	}, nil
}

// ============================================================================
// Helpers
// ============================================================================

func sealedEventProto(rec *ledger.SealedRecord) *ledgerv1.SealedEvent {
	return &ledgerv1.SealedEvent{
		SequenceNumber:  rec.SequenceNumber,
		EventId:         rec.EventID,
		Payload:         rec.Payload,
		EventHash:       rec.EventHash,
		PreviousHash:    rec.PreviousHash,
		SealedTimestamp: rec.SealedTimestamp,
		CommitLatencyMs: rec.CommitLatencyMS,
	}
}

// storeHealthStatus names the failure class for operators: a counter
// that fails to parse is a data problem, not a connectivity one.
func storeHealthStatus(err error) string {
	if ledger.IsCorruption(err) {
		return "counter corrupt"
	}
	return "store unavailable"
}

// sealStatus maps core errors to gRPC codes: corruption is data loss,
// everything else surfaces as unavailable store connectivity.
func sealStatus(err error) error {
	if ledger.IsCorruption(err) {
		return status.Errorf(codes.DataLoss, "%v", err)
	}
	return status.Errorf(codes.Unavailable, "%v", err)
}
