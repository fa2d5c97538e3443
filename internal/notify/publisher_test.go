package notify_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog"

	"ImmutableLedger/internal/ledger"
	"ImmutableLedger/internal/notify"
)

// fakeJetStream records published subjects; every other JetStream method
// is inherited unimplemented and must not be reached by the publisher.
type fakeJetStream struct {
	jetstream.JetStream
	published chan string
}

func (f *fakeJetStream) Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	f.published <- subject
	return &jetstream.PubAck{Stream: "LEDGER_SEALED"}, nil
}

func TestSubjectFor(t *testing.T) {
	if got := notify.SubjectFor(1); got != "ledger.sealed.1" {
		t.Errorf("got %q, want %q", got, "ledger.sealed.1")
	}
	if got := notify.SubjectFor(18446744073709551615); got != "ledger.sealed.18446744073709551615" {
		t.Errorf("got %q", got)
	}
}

func TestAnnouncement_OmitsPayload(t *testing.T) {
	data, err := json.Marshal(notify.Announcement{
		SequenceNumber:  3,
		EventID:         "evt-3",
		EventHash:       "abc",
		PreviousHash:    "def",
		SealedTimestamp: 1700000000000,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := fields["payload"]; ok {
		t.Error("announcement must not carry payload bytes")
	}
	if fields["sequence_number"].(float64) != 3 {
		t.Errorf("sequence_number: got %v", fields["sequence_number"])
	}
}

// ============================================================================
// Test: publisher lifecycle
// ============================================================================

func TestPublisher_PublishesAndStopsOnCancel(t *testing.T) {
	js := &fakeJetStream{published: make(chan string, 4)}
	ch := make(chan ledger.SealedRecord, 4)
	p := notify.NewPublisher(js, ch, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	ch <- ledger.SealedRecord{SequenceNumber: 7, EventID: "evt-7", EventHash: "h", PreviousHash: "g"}
	select {
	case subj := <-js.published:
		if subj != "ledger.sealed.7" {
			t.Errorf("published on %q, want %q", subj, "ledger.sealed.7")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for publish")
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}

func TestPublisher_ReturnsOnChannelClose(t *testing.T) {
	js := &fakeJetStream{published: make(chan string, 1)}
	ch := make(chan ledger.SealedRecord)
	p := notify.NewPublisher(js, ch, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	close(ch)
	if err := <-done; err != nil {
		t.Errorf("Run returned %v, want nil", err)
	}
}
