package seal_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"ImmutableLedger/internal/chain"
	"ImmutableLedger/internal/ledger"
	"ImmutableLedger/internal/seal"
	"ImmutableLedger/internal/store"
)

func newTestSealer(t *testing.T, kv store.KV) *seal.Sealer {
	t.Helper()
	s := seal.New(seal.Config{
		Store:  store.New(kv, zerolog.Nop(), nil),
		Chain:  chain.New(),
		Logger: zerolog.Nop(),
	})
	if _, err := s.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	return s
}

// ============================================================================
// Test: single seal
// ============================================================================

func TestSeal_FirstRecord(t *testing.T) {
	ctx := context.Background()
	s := newTestSealer(t, store.NewMemoryKV())

	payload := []byte("certified payload")
	rec, err := s.Seal(ctx, "evt-1", payload, "sig", 1700000000000)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if rec.SequenceNumber != 1 {
		t.Errorf("sequence: got %d, want 1", rec.SequenceNumber)
	}
	if rec.PreviousHash != chain.GenesisHash {
		t.Errorf("previous hash: got %q, want genesis", rec.PreviousHash)
	}
	wantHash := seal.ComputeHash(1, "evt-1", payload, chain.GenesisHash)
	if rec.EventHash != wantHash {
		t.Errorf("event hash: got %q, want %q", rec.EventHash, wantHash)
	}
	if rec.SealedTimestamp == 0 {
		t.Error("sealed timestamp not assigned")
	}
	if rec.CommitLatencyMS < 0 {
		t.Errorf("commit latency: got %d", rec.CommitLatencyMS)
	}
}

// ============================================================================
// Test: round-trip through the store
// ============================================================================

func TestSeal_GetRecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSealer(t, store.NewMemoryKV())

	payload := []byte{0, 1, 2, 253, 254, 255}
	sealed, err := s.Seal(ctx, "evt-rt", payload, "", 0)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	got, err := s.GetRecord(ctx, sealed.SequenceNumber)
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}

	if !bytes.Equal(got.Payload, payload) {
		t.Errorf("payload bytes: got %v, want %v", got.Payload, payload)
	}
	if got.EventID != sealed.EventID || got.EventHash != sealed.EventHash ||
		got.PreviousHash != sealed.PreviousHash || got.SealedTimestamp != sealed.SealedTimestamp {
		t.Errorf("stored record differs: got %+v, want %+v", got, sealed)
	}
}

func TestSeal_EmptyPayload(t *testing.T) {
	ctx := context.Background()
	s := newTestSealer(t, store.NewMemoryKV())

	rec, err := s.Seal(ctx, "evt-empty", []byte{}, "", 0)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if rec.SequenceNumber != 1 {
		t.Errorf("sequence: got %d, want 1", rec.SequenceNumber)
	}
	if want := seal.ComputeHash(1, "evt-empty", nil, chain.GenesisHash); rec.EventHash != want {
		t.Errorf("event hash: got %q, want %q", rec.EventHash, want)
	}

	got, err := s.GetRecord(ctx, rec.SequenceNumber)
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if len(got.Payload) != 0 {
		t.Errorf("payload: got %d bytes, want empty", len(got.Payload))
	}
}

func TestGetRecord_NotFound(t *testing.T) {
	s := newTestSealer(t, store.NewMemoryKV())

	_, err := s.GetRecord(context.Background(), 999)
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

// ============================================================================
// Test: chain linkage
// ============================================================================

func TestSeal_ChainLinkage(t *testing.T) {
	ctx := context.Background()
	s := newTestSealer(t, store.NewMemoryKV())

	var recs []*ledger.SealedRecord
	for i := 1; i <= 3; i++ {
		rec, err := s.Seal(ctx, fmt.Sprintf("evt-%d", i), []byte{byte(i)}, "", 0)
		if err != nil {
			t.Fatalf("Seal %d: %v", i, err)
		}
		recs = append(recs, rec)
	}

	if recs[0].PreviousHash != chain.GenesisHash {
		t.Error("first record must link to genesis")
	}
	if recs[1].PreviousHash != recs[0].EventHash {
		t.Errorf("second record links to %q, want %q", recs[1].PreviousHash, recs[0].EventHash)
	}
	if recs[2].PreviousHash != recs[1].EventHash {
		t.Errorf("third record links to %q, want %q", recs[2].PreviousHash, recs[1].EventHash)
	}
}

// ============================================================================
// Test: health reflects state
// ============================================================================

func TestCurrentSequence_AfterKSeals(t *testing.T) {
	ctx := context.Background()
	s := newTestSealer(t, store.NewMemoryKV())

	const k = 7
	for i := 0; i < k; i++ {
		if _, err := s.Seal(ctx, "evt", []byte("p"), "", 0); err != nil {
			t.Fatalf("Seal: %v", err)
		}
	}

	cur, err := s.CurrentSequence(ctx)
	if err != nil {
		t.Fatalf("CurrentSequence: %v", err)
	}
	if cur != k {
		t.Errorf("got %d, want %d", cur, k)
	}
}

// ============================================================================
// Test: concurrent seals keep the chain consistent
// ============================================================================

func TestSeal_ConcurrentUniqueAndLinked(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	s := newTestSealer(t, kv)

	const n = 32
	results := make(chan *ledger.SealedRecord, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := s.Seal(ctx, fmt.Sprintf("evt-%d", i), []byte{byte(i)}, "", 0)
			if err != nil {
				t.Errorf("Seal: %v", err)
				return
			}
			results <- rec
		}(i)
	}
	wg.Wait()
	close(results)

	bySeq := make(map[uint64]*ledger.SealedRecord)
	for rec := range results {
		if _, dup := bySeq[rec.SequenceNumber]; dup {
			t.Fatalf("sequence %d sealed twice", rec.SequenceNumber)
		}
		bySeq[rec.SequenceNumber] = rec
	}
	if len(bySeq) != n {
		t.Fatalf("got %d sealed records, want %d", len(bySeq), n)
	}

	// Contiguous [1..n], each record linked to its predecessor's hash.
	for seq := uint64(1); seq <= n; seq++ {
		rec, ok := bySeq[seq]
		if !ok {
			t.Fatalf("sequence %d missing", seq)
		}
		if seq == 1 {
			if rec.PreviousHash != chain.GenesisHash {
				t.Errorf("sequence 1 links to %q, want genesis", rec.PreviousHash)
			}
			continue
		}
		if rec.PreviousHash != bySeq[seq-1].EventHash {
			t.Errorf("sequence %d links to %q, want %q", seq, rec.PreviousHash, bySeq[seq-1].EventHash)
		}
	}

	if !s.VerifyChain() {
		t.Error("chain should be gapless after concurrent seals")
	}
}

// ============================================================================
// Test: restart rebuilds the chain from durable records
// ============================================================================

func TestRebuild_RestoresChainTip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()

	first := newTestSealer(t, kv)
	var last *ledger.SealedRecord
	for i := 0; i < 4; i++ {
		rec, err := first.Seal(ctx, fmt.Sprintf("evt-%d", i), []byte("p"), "", 0)
		if err != nil {
			t.Fatalf("Seal: %v", err)
		}
		last = rec
	}

	// Simulate restart: new sealer over the same durable store.
	second := seal.New(seal.Config{
		Store:  store.New(kv, zerolog.Nop(), nil),
		Chain:  chain.New(),
		Logger: zerolog.Nop(),
	})
	loaded, err := second.Rebuild(ctx)
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if loaded != 4 {
		t.Errorf("rebuilt %d records, want 4", loaded)
	}

	// The next seal must link to the pre-restart tip, not genesis.
	rec, err := second.Seal(ctx, "after-restart", []byte("p"), "", 0)
	if err != nil {
		t.Fatalf("Seal after rebuild: %v", err)
	}
	if rec.SequenceNumber != 5 {
		t.Errorf("sequence after rebuild: got %d, want 5", rec.SequenceNumber)
	}
	if rec.PreviousHash != last.EventHash {
		t.Errorf("links to %q, want pre-restart tip %q", rec.PreviousHash, last.EventHash)
	}
}

func TestRebuild_CounterBehindRecordsIsCorruption(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()

	first := newTestSealer(t, kv)
	for i := 0; i < 3; i++ {
		if _, err := first.Seal(ctx, "evt", []byte("p"), "", 0); err != nil {
			t.Fatalf("Seal: %v", err)
		}
	}

	// Roll the counter behind the sealed records.
	if err := kv.Put(ctx, "ledger/sequence_counter", []byte("1")); err != nil {
		t.Fatal(err)
	}

	second := seal.New(seal.Config{
		Store:  store.New(kv, zerolog.Nop(), nil),
		Chain:  chain.New(),
		Logger: zerolog.Nop(),
	})
	_, err := second.Rebuild(ctx)
	if !ledger.IsCorruption(err) {
		t.Errorf("want corruption error, got %v", err)
	}
}
