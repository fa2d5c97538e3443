package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog"

	"ImmutableLedger/internal/ledger"
)

const (
	streamName    = "LEDGER_SEALED"
	subjectPrefix = "ledger.sealed."
)

// Announcement is the outbound form of a sealed record. The payload bytes
// are omitted — consumers fetch them by sequence number if needed.
type Announcement struct {
	SequenceNumber  uint64 `json:"sequence_number"`
	EventID         string `json:"event_id"`
	EventHash       string `json:"event_hash"`
	PreviousHash    string `json:"previous_hash"`
	SealedTimestamp int64  `json:"sealed_timestamp"`
}

// Publisher announces sealed records on NATS JetStream for downstream
// consumers. Records are already durable when they arrive here; a failed
// publish is logged, never propagated back to the seal.
type Publisher struct {
	js        jetstream.JetStream
	inputChan <-chan ledger.SealedRecord
	log       zerolog.Logger
}

func NewPublisher(js jetstream.JetStream, inputChan <-chan ledger.SealedRecord, log zerolog.Logger) *Publisher {
	return &Publisher{
		js:        js,
		inputChan: inputChan,
		log:       log,
	}
}

// Run starts the publisher loop. Blocks until ctx is cancelled or the
// input channel closes.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case rec, ok := <-p.inputChan:
			if !ok {
				return nil
			}
			if err := p.publish(ctx, rec); err != nil {
				p.log.Warn().
					Err(err).
					Uint64("sequence", rec.SequenceNumber).
					Msg("announcement publish failed")
			}
		}
	}
}

func (p *Publisher) publish(ctx context.Context, rec ledger.SealedRecord) error {
	data, err := json.Marshal(Announcement{
		SequenceNumber:  rec.SequenceNumber,
		EventID:         rec.EventID,
		EventHash:       rec.EventHash,
		PreviousHash:    rec.PreviousHash,
		SealedTimestamp: rec.SealedTimestamp,
	})
	if err != nil {
		return fmt.Errorf("marshal announcement: %w", err)
	}

	_, err = p.js.Publish(ctx, SubjectFor(rec.SequenceNumber), data)
	return err
}

// SubjectFor returns the announcement subject for a sequence number.
func SubjectFor(sequence uint64) string {
	return subjectPrefix + strconv.FormatUint(sequence, 10)
}

// Connect dials NATS and returns a JetStream handle.
func Connect(url string) (*nats.Conn, jetstream.JetStream, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("jetstream: %w", err)
	}
	return nc, js, nil
}

// EnsureStream creates or updates the announcement stream.
func EnsureStream(ctx context.Context, js jetstream.JetStream) error {
	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      streamName,
		Subjects:  []string{subjectPrefix + ">"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    72 * time.Hour,
		Replicas:  1,
	})
	if err != nil {
		return fmt.Errorf("create stream %s: %w", streamName, err)
	}
	return nil
}
