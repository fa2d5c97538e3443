package archive

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"ImmutableLedger/internal/ledger"
	"ImmutableLedger/internal/observability"
)

// batchWriter is the write side of the archive. *Writer implements it
// against Postgres; tests substitute an in-memory recorder.
type batchWriter interface {
	WriteBatch(ctx context.Context, recs []ledger.SealedRecord) error
}

// Worker drains the archive channel and batch-writes to Postgres. It
// flushes when the batch is full or the flush timeout expires, and
// retries failed flushes with exponential backoff. The sealer drops
// records when this worker falls far behind; the consensus store copy
// is authoritative either way.
type Worker struct {
	writer       batchWriter
	inputChan    <-chan ledger.SealedRecord
	batchSize    int
	flushTimeout time.Duration
	metrics      *observability.Metrics
	log          zerolog.Logger
}

func NewWorker(
	db *sql.DB,
	inputChan <-chan ledger.SealedRecord,
	batchSize int,
	flushTimeout time.Duration,
	metrics *observability.Metrics,
	log zerolog.Logger,
) *Worker {
	return &Worker{
		writer:       NewWriter(db),
		inputChan:    inputChan,
		batchSize:    batchSize,
		flushTimeout: flushTimeout,
		metrics:      metrics,
		log:          log,
	}
}

// Run starts the worker loop. Blocks until ctx is cancelled or the input
// channel closes; remaining records are flushed on the way out.
func (w *Worker) Run(ctx context.Context) error {
	batch := make([]ledger.SealedRecord, 0, w.batchSize)

	timer := time.NewTimer(w.flushTimeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			if len(batch) > 0 {
				if err := w.flush(context.Background(), batch); err != nil {
					w.log.Error().Err(err).Msg("final archive flush failed")
				}
			}
			return ctx.Err()

		case rec, ok := <-w.inputChan:
			if !ok {
				if len(batch) > 0 {
					if err := w.flush(context.Background(), batch); err != nil {
						w.log.Error().Err(err).Msg("final archive flush failed")
					}
				}
				return nil
			}

			batch = append(batch, rec)
			if len(batch) >= w.batchSize {
				w.flushWithRetry(ctx, batch)
				batch = batch[:0]
				if !timer.Stop() {
					// Drain a fire that raced the flush so Reset
					// starts a clean interval.
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.flushTimeout)
			}

		case <-timer.C:
			if len(batch) > 0 {
				w.flushWithRetry(ctx, batch)
				batch = batch[:0]
			}
			timer.Reset(w.flushTimeout)
		}
	}
}

// flushWithRetry retries with exponential backoff until the write lands
// or the context is cancelled.
func (w *Worker) flushWithRetry(ctx context.Context, batch []ledger.SealedRecord) {
	backoff := 100 * time.Millisecond
	const maxBackoff = 30 * time.Second

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			w.log.Warn().
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Int("records", len(batch)).
				Msg("archive flush retry")
			select {
			case <-ctx.Done():
				if err := w.flush(context.Background(), batch); err != nil {
					w.log.Error().Err(err).Msg("archive flush on shutdown failed")
				}
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		if err := w.flush(ctx, batch); err == nil {
			return
		} else if w.metrics != nil {
			w.metrics.ArchiveErrors.WithLabelValues("write").Inc()
		}
	}
}

func (w *Worker) flush(ctx context.Context, batch []ledger.SealedRecord) error {
	start := time.Now()

	if err := w.writer.WriteBatch(ctx, batch); err != nil {
		return err
	}

	if w.metrics != nil {
		w.metrics.ArchiveBatchDur.Observe(time.Since(start).Seconds())
		w.metrics.ArchiveWritten.Add(float64(len(batch)))
	}
	return nil
}
