package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ImmutableLedger/internal/ledger"
)

// Writer mirrors sealed records into Postgres for range queries and
// offline audit. The consensus store remains the durability point; this
// table is a best-effort downstream copy.
type Writer struct {
	db *sql.DB
}

func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db}
}

// EnsureSchema creates the archive table if it does not exist.
func (w *Writer) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS sealed_records (
		sequence_number   BIGINT PRIMARY KEY,
		event_id          TEXT NOT NULL,
		payload           BYTEA NOT NULL,
		event_hash        TEXT NOT NULL,
		previous_hash     TEXT NOT NULL,
		sealed_timestamp  BIGINT NOT NULL,
		commit_latency_ms BIGINT NOT NULL
	)`
	if _, err := w.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create archive schema: %w", err)
	}
	return nil
}

// WriteBatch writes a batch of records using a multi-row INSERT.
// Re-inserting an already-archived sequence is a no-op, so replays after
// a retry are idempotent.
func (w *Writer) WriteBatch(ctx context.Context, recs []ledger.SealedRecord) error {
	if len(recs) == 0 {
		return nil
	}

	query := `INSERT INTO sealed_records
		(sequence_number, event_id, payload, event_hash, previous_hash, sealed_timestamp, commit_latency_ms)
		VALUES `

	values := make([]string, 0, len(recs))
	args := make([]interface{}, 0, len(recs)*7)

	for i, r := range recs {
		base := i * 7
		values = append(values, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		args = append(args,
			int64(r.SequenceNumber), r.EventID, r.Payload,
			r.EventHash, r.PreviousHash, r.SealedTimestamp, r.CommitLatencyMS,
		)
	}

	query += strings.Join(values, ", ")
	query += " ON CONFLICT (sequence_number) DO NOTHING"

	_, err := w.db.ExecContext(ctx, query, args...)
	return err
}
