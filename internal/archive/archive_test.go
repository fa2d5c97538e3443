package archive_test

import (
	"context"
	"testing"

	"ImmutableLedger/internal/archive"
	"ImmutableLedger/internal/ledger"
	"ImmutableLedger/internal/testutil"
)

// ============================================================================
// Integration: Postgres archive mirror
// ============================================================================

func TestWriteBatch_Idempotent(t *testing.T) {
	testutil.RequireIntegration(t)
	db, cleanup := testutil.SetupArchiveDB(t)
	defer cleanup()

	ctx := context.Background()
	w := archive.NewWriter(db)
	if err := w.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	recs := []ledger.SealedRecord{
		{SequenceNumber: 1, EventID: "e1", Payload: []byte("a"), EventHash: "h1", PreviousHash: "g", SealedTimestamp: 1, CommitLatencyMS: 2},
		{SequenceNumber: 2, EventID: "e2", Payload: []byte("b"), EventHash: "h2", PreviousHash: "h1", SealedTimestamp: 3, CommitLatencyMS: 4},
	}

	if err := w.WriteBatch(ctx, recs); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	// Replaying the same batch must be a no-op.
	if err := w.WriteBatch(ctx, recs); err != nil {
		t.Fatalf("WriteBatch replay: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sealed_records").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("got %d rows, want 2", count)
	}

	var eventID string
	var payload []byte
	err := db.QueryRowContext(ctx,
		"SELECT event_id, payload FROM sealed_records WHERE sequence_number = 2").
		Scan(&eventID, &payload)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if eventID != "e2" || string(payload) != "b" {
		t.Errorf("row 2: got (%q, %q)", eventID, payload)
	}
}
