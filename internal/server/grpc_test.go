package server

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	ledgerv1 "ImmutableLedger/gen/go/ledger/v1"
	"ImmutableLedger/internal/chain"
	"ImmutableLedger/internal/ledger"
	"ImmutableLedger/internal/seal"
	"ImmutableLedger/internal/store"
)

func newTestService(t *testing.T, kv store.KV) *ledgerServiceImpl {
	t.Helper()
	s := seal.New(seal.Config{
		Store:  store.New(kv, zerolog.Nop(), nil),
		Chain:  chain.New(),
		Logger: zerolog.Nop(),
	})
	if _, err := s.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	return &ledgerServiceImpl{sealer: s, log: zerolog.Nop()}
}

// ============================================================================
// Test: SubmitEvent accepts any payload, including zero-length
// ============================================================================

func TestSubmitEvent_EmptyPayload(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV())

	resp, err := svc.SubmitEvent(ctx, &ledgerv1.CertifiedEvent{
		EventId: "evt-empty",
		Payload: []byte{},
	})
	if err != nil {
		t.Fatalf("SubmitEvent: %v", err)
	}
	if resp.SequenceNumber != 1 {
		t.Errorf("sequence: got %d, want 1", resp.SequenceNumber)
	}
	if want := seal.ComputeHash(1, "evt-empty", nil, chain.GenesisHash); resp.EventHash != want {
		t.Errorf("event hash: got %q, want %q", resp.EventHash, want)
	}

	got, err := svc.GetEvent(ctx, &ledgerv1.GetEventRequest{SequenceNumber: 1})
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if len(got.Payload) != 0 {
		t.Errorf("payload: got %d bytes, want empty", len(got.Payload))
	}
}

func TestSubmitEvent_AssignsEventID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV())

	resp, err := svc.SubmitEvent(ctx, &ledgerv1.CertifiedEvent{Payload: []byte("p")})
	if err != nil {
		t.Fatalf("SubmitEvent: %v", err)
	}
	if resp.EventId == "" {
		t.Error("empty event_id must be replaced with a generated one")
	}
}

// ============================================================================
// Test: GetEvent status mapping
// ============================================================================

func TestGetEvent_NotFound(t *testing.T) {
	svc := newTestService(t, store.NewMemoryKV())

	_, err := svc.GetEvent(context.Background(), &ledgerv1.GetEventRequest{SequenceNumber: 42})
	if status.Code(err) != codes.NotFound {
		t.Errorf("got %v, want NotFound", err)
	}
}

// ============================================================================
// Test: HealthCheck names the failure class
// ============================================================================

func TestHealthCheck_Healthy(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV())

	if _, err := svc.SubmitEvent(ctx, &ledgerv1.CertifiedEvent{EventId: "evt", Payload: []byte("p")}); err != nil {
		t.Fatalf("SubmitEvent: %v", err)
	}

	resp, err := svc.HealthCheck(ctx, &ledgerv1.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
	if !resp.Healthy || resp.Status != "ok" || resp.LastSequenceNumber != 1 {
		t.Errorf("got healthy=%v status=%q last=%d", resp.Healthy, resp.Status, resp.LastSequenceNumber)
	}
}

func TestHealthCheck_CorruptCounter(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc := newTestService(t, kv)

	if err := kv.Put(ctx, "ledger/sequence_counter", []byte("garbage")); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.HealthCheck(ctx, &ledgerv1.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
	if resp.Healthy {
		t.Error("corrupt counter must report unhealthy")
	}
	if resp.Status != "counter corrupt" {
		t.Errorf("status: got %q, want %q", resp.Status, "counter corrupt")
	}
}

// ============================================================================
// Test: error-to-code mapping
// ============================================================================

func TestSealStatus(t *testing.T) {
	corrupt := &ledger.CorruptionError{Key: "k", Reason: "bad"}
	if got := status.Code(sealStatus(corrupt)); got != codes.DataLoss {
		t.Errorf("corruption: got %v, want DataLoss", got)
	}
	if got := status.Code(sealStatus(errors.New("dial tcp: refused"))); got != codes.Unavailable {
		t.Errorf("connectivity: got %v, want Unavailable", got)
	}
}
