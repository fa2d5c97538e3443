package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"ImmutableLedger/internal/ledger"
	"ImmutableLedger/internal/observability"
)

// Key layout in the consensus store. The counter holds the decimal string
// of the last assigned sequence number; each record lives under its own
// per-sequence key as JSON.
const (
	counterKey     = "ledger/sequence_counter"
	eventKeyPrefix = "ledger/events/"
)

// LedgerStore is the read/write accessor over the external replicated
// key-value store, shared by sequence allocation and record persistence.
type LedgerStore struct {
	kv      KV
	log     zerolog.Logger
	metrics *observability.Metrics
}

// New creates a LedgerStore. metrics may be nil (tests).
func New(kv KV, log zerolog.Logger, metrics *observability.Metrics) *LedgerStore {
	return &LedgerStore{kv: kv, log: log, metrics: metrics}
}

func eventKey(sequence uint64) string {
	return eventKeyPrefix + strconv.FormatUint(sequence, 10)
}

// AllocateNext assigns the next globally unique sequence number by
// compare-and-swapping the shared counter. The loop retries on lost races
// until the swap lands against an unchanged precondition, so two
// concurrent allocations can never observe the same counter value and
// both win. There is no fallback to get-then-put.
func (s *LedgerStore) AllocateNext(ctx context.Context) (uint64, error) {
	start := time.Now()
	defer s.observeOp("allocate", start)

	for {
		cur, ok, err := s.kv.Get(ctx, counterKey)
		if err != nil {
			return 0, fmt.Errorf("allocate sequence: read counter: %w", err)
		}

		var next uint64 = 1
		var expected []byte
		if ok {
			n, perr := strconv.ParseUint(string(cur), 10, 64)
			if perr != nil {
				if s.metrics != nil {
					s.metrics.CorruptionErrors.Inc()
				}
				return 0, &ledger.CorruptionError{
					Key:    counterKey,
					Reason: fmt.Sprintf("counter value %q is not an unsigned integer", cur),
					Err:    perr,
				}
			}
			next = n + 1
			expected = cur
		}

		swapped, err := s.kv.CompareAndSwap(ctx, counterKey, expected, []byte(strconv.FormatUint(next, 10)))
		if err != nil {
			return 0, fmt.Errorf("allocate sequence: swap counter: %w", err)
		}
		if swapped {
			return next, nil
		}

		// Lost the race to a concurrent allocation; re-read and retry.
		if s.metrics != nil {
			s.metrics.AllocatorRetries.Inc()
		}
		s.log.Debug().Msg("sequence counter CAS conflict, retrying")
	}
}

// CurrentSequence returns the last assigned sequence number, or 0 when no
// event has ever been sealed. An unparsable counter is a corruption error.
func (s *LedgerStore) CurrentSequence(ctx context.Context) (uint64, error) {
	start := time.Now()
	defer s.observeOp("current_sequence", start)

	cur, ok, err := s.kv.Get(ctx, counterKey)
	if err != nil {
		return 0, fmt.Errorf("read counter: %w", err)
	}
	if !ok {
		return 0, nil
	}

	n, perr := strconv.ParseUint(string(cur), 10, 64)
	if perr != nil {
		if s.metrics != nil {
			s.metrics.CorruptionErrors.Inc()
		}
		return 0, &ledger.CorruptionError{
			Key:    counterKey,
			Reason: fmt.Sprintf("counter value %q is not an unsigned integer", cur),
			Err:    perr,
		}
	}
	return n, nil
}

// GetRecord reads the sealed record at sequence. Returns
// ledger.ErrNotFound when no record exists there.
func (s *LedgerStore) GetRecord(ctx context.Context, sequence uint64) (*ledger.SealedRecord, error) {
	start := time.Now()
	defer s.observeOp("get_record", start)

	key := eventKey(sequence)
	val, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get record %d: %w", sequence, err)
	}
	if !ok {
		return nil, fmt.Errorf("get record %d: %w", sequence, ledger.ErrNotFound)
	}

	var rec ledger.SealedRecord
	if uerr := json.Unmarshal(val, &rec); uerr != nil {
		if s.metrics != nil {
			s.metrics.CorruptionErrors.Inc()
		}
		return nil, &ledger.CorruptionError{
			Key:    key,
			Reason: "record is not valid JSON",
			Err:    uerr,
		}
	}
	return &rec, nil
}

// PutRecord serializes and writes the record under its per-sequence key.
// A successful return means the store has durably committed the value;
// this is the durability point of a seal.
func (s *LedgerStore) PutRecord(ctx context.Context, rec *ledger.SealedRecord) error {
	start := time.Now()
	defer s.observeOp("put_record", start)

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("put record %d: marshal: %w", rec.SequenceNumber, err)
	}
	if err := s.kv.Put(ctx, eventKey(rec.SequenceNumber), data); err != nil {
		return fmt.Errorf("put record %d: %w", rec.SequenceNumber, err)
	}
	return nil
}

// ScanRecords loads every sealed record from the store, sorted by
// sequence number. Used to rebuild the in-memory chain on startup.
func (s *LedgerStore) ScanRecords(ctx context.Context) ([]ledger.SealedRecord, error) {
	start := time.Now()
	defer s.observeOp("scan_records", start)

	kvs, err := s.kv.ListPrefix(ctx, eventKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}

	recs := make([]ledger.SealedRecord, 0, len(kvs))
	for key, val := range kvs {
		var rec ledger.SealedRecord
		if uerr := json.Unmarshal(val, &rec); uerr != nil {
			if s.metrics != nil {
				s.metrics.CorruptionErrors.Inc()
			}
			return nil, &ledger.CorruptionError{
				Key:    key,
				Reason: "record is not valid JSON",
				Err:    uerr,
			}
		}
		recs = append(recs, rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].SequenceNumber < recs[j].SequenceNumber
	})
	return recs, nil
}

func (s *LedgerStore) observeOp(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.StoreOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
