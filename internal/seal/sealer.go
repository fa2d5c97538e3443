package seal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"ImmutableLedger/internal/chain"
	"ImmutableLedger/internal/ledger"
	"ImmutableLedger/internal/observability"
	"ImmutableLedger/internal/store"
)

// DefaultBudget is the target wall-clock duration for one seal operation.
// Exceeding it is reported, never returned as an error.
const DefaultBudget = 50 * time.Millisecond

// Config carries the injected collaborators of a Sealer. Store and Chain
// are required; everything else is optional.
type Config struct {
	Store   *store.LedgerStore
	Chain   *chain.Chain
	Logger  zerolog.Logger
	Metrics *observability.Metrics

	// Budget defaults to DefaultBudget when zero.
	Budget time.Duration

	// Announce and Archive receive a copy of every sealed record for
	// downstream consumers. Sends never block: a full channel drops the
	// record and bumps a counter. Either may be nil.
	Announce chan<- ledger.SealedRecord
	Archive  chan<- ledger.SealedRecord
}

// Sealer runs the seal operation: sequence assignment, hash-chain
// extension, durable persistence, chain update. One Sealer owns the chain
// and the store accessor; there is no ambient global state.
type Sealer struct {
	store   *store.LedgerStore
	chain   *chain.Chain
	turns   *turnstile
	log     zerolog.Logger
	metrics *observability.Metrics
	budget  time.Duration

	announce chan<- ledger.SealedRecord
	archive  chan<- ledger.SealedRecord
}

func New(cfg Config) *Sealer {
	budget := cfg.Budget
	if budget == 0 {
		budget = DefaultBudget
	}
	return &Sealer{
		store:    cfg.Store,
		chain:    cfg.Chain,
		turns:    newTurnstile(0),
		log:      cfg.Logger,
		metrics:  cfg.Metrics,
		budget:   budget,
		announce: cfg.Announce,
		archive:  cfg.Archive,
	}
}

// Rebuild restores the in-memory chain from durable records before the
// sealer accepts traffic. A restarted process must not start from an
// empty chain that disagrees with records already sealed. Returns the
// number of records loaded.
func (s *Sealer) Rebuild(ctx context.Context) (int, error) {
	recs, err := s.store.ScanRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("rebuild chain: %w", err)
	}

	var maxSeq uint64
	for _, rec := range recs {
		s.chain.Record(rec.SequenceNumber, rec.EventHash)
		if rec.SequenceNumber > maxSeq {
			maxSeq = rec.SequenceNumber
		}
	}

	counter, err := s.store.CurrentSequence(ctx)
	if err != nil {
		return 0, fmt.Errorf("rebuild chain: %w", err)
	}
	if counter < maxSeq {
		// The counter must never trail the records it numbered.
		return 0, &ledger.CorruptionError{
			Key:    "ledger/sequence_counter",
			Reason: fmt.Sprintf("counter %d behind highest sealed record %d", counter, maxSeq),
		}
	}

	if !s.chain.VerifyGapless() {
		// Gaps come from seals that allocated a sequence and then failed
		// before persisting. Durable records are intact; report and serve.
		s.log.Warn().
			Uint64("max_sequence", maxSeq).
			Int("records", len(recs)).
			Msg("rebuilt chain has sequence gaps")
	}

	// Sequences up to the counter were assigned (some possibly lost to
	// failed seals); admit counter+1 next.
	s.turns.reset(counter)

	if s.metrics != nil {
		s.metrics.CurrentSequence.Set(float64(counter))
		s.metrics.ChainLength.Set(float64(s.chain.Size()))
	}

	s.log.Info().
		Int("records", len(recs)).
		Uint64("counter", counter).
		Str("latest_hash", s.chain.LatestHash()).
		Msg("chain rebuilt from durable records")

	return len(recs), nil
}

// Seal runs the full state machine for one certified event:
// Received → SequenceAssigned → Hashed → Persisted → ChainUpdated → Complete.
// The signature and timestamp are passed through, not validated here —
// upstream certification already did. Any failure aborts the operation;
// nothing is retried internally.
func (s *Sealer) Seal(ctx context.Context, eventID string, payload []byte, signature string, timestamp int64) (*ledger.SealedRecord, error) {
	start := time.Now()
	_ = signature
	_ = timestamp

	sequence, err := s.store.AllocateNext(ctx)
	if err != nil {
		s.countSeal("allocate_failed")
		return nil, fmt.Errorf("seal event %q: %w", eventID, err)
	}

	// From here the operation holds a turn in the chain queue: hashing,
	// persistence, and the chain update happen in sequence order relative
	// to concurrent seals. done() runs even on failure so a lost sequence
	// becomes a gap, not a deadlock.
	s.turns.wait(sequence)
	defer s.turns.done()

	previousHash := s.chain.LatestHash()
	eventHash := ComputeHash(sequence, eventID, payload, previousHash)

	rec := &ledger.SealedRecord{
		SequenceNumber:  sequence,
		EventID:         eventID,
		Payload:         payload,
		EventHash:       eventHash,
		PreviousHash:    previousHash,
		SealedTimestamp: ledger.NowMillis(),
	}

	if err := s.store.PutRecord(ctx, rec); err != nil {
		s.countSeal("persist_failed")
		s.log.Error().
			Err(err).
			Uint64("sequence", sequence).
			Str("event_id", eventID).
			Msg("seal aborted, sequence lost")
		return nil, fmt.Errorf("seal event %q: sequence %d: %w", eventID, sequence, err)
	}

	s.chain.Record(sequence, eventHash)

	elapsed := time.Since(start)
	rec.CommitLatencyMS = elapsed.Milliseconds()

	s.countSeal("ok")
	if s.metrics != nil {
		s.metrics.SealDuration.Observe(elapsed.Seconds())
		s.metrics.CurrentSequence.Set(float64(sequence))
		s.metrics.ChainLength.Set(float64(s.chain.Size()))
	}

	if elapsed > s.budget {
		if s.metrics != nil {
			s.metrics.BudgetOverruns.Inc()
		}
		s.log.Warn().
			Uint64("sequence", sequence).
			Str("event_id", eventID).
			Dur("elapsed", elapsed).
			Dur("budget", s.budget).
			Msg("seal exceeded latency budget")
	} else {
		s.log.Info().
			Uint64("sequence", sequence).
			Str("event_id", eventID).
			Dur("elapsed", elapsed).
			Msg("event sealed")
	}

	s.fanOut(*rec)
	return rec, nil
}

// GetRecord returns the sealed record at sequence, or ledger.ErrNotFound.
func (s *Sealer) GetRecord(ctx context.Context, sequence uint64) (*ledger.SealedRecord, error) {
	rec, err := s.store.GetRecord(ctx, sequence)
	if s.metrics != nil {
		switch {
		case err == nil:
			s.metrics.RecordReads.WithLabelValues("ok").Inc()
		case errors.Is(err, ledger.ErrNotFound):
			s.metrics.RecordReads.WithLabelValues("not_found").Inc()
		default:
			s.metrics.RecordReads.WithLabelValues("error").Inc()
		}
	}
	return rec, err
}

// CurrentSequence returns the last assigned sequence number.
func (s *Sealer) CurrentSequence(ctx context.Context) (uint64, error) {
	return s.store.CurrentSequence(ctx)
}

// VerifyChain reports whether the in-memory chain is gapless.
func (s *Sealer) VerifyChain() bool {
	return s.chain.VerifyGapless()
}

func (s *Sealer) countSeal(status string) {
	if s.metrics != nil {
		s.metrics.SealsTotal.WithLabelValues(status).Inc()
	}
}

// fanOut hands the sealed record to downstream consumers. The record is
// already durable; announcement and archival are best-effort and must
// never block or fail the seal.
func (s *Sealer) fanOut(rec ledger.SealedRecord) {
	if s.announce != nil {
		select {
		case s.announce <- rec:
		default:
			if s.metrics != nil {
				s.metrics.AnnounceDrops.Inc()
			}
			s.log.Warn().Uint64("sequence", rec.SequenceNumber).Msg("announce channel full, dropping")
		}
	}
	if s.archive != nil {
		select {
		case s.archive <- rec:
		default:
			if s.metrics != nil {
				s.metrics.ArchiveDrops.Inc()
			}
			s.log.Warn().Uint64("sequence", rec.SequenceNumber).Msg("archive channel full, dropping")
		}
	}
}
