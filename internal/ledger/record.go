package ledger

import "time"

// SealedRecord is the durable form of one accepted event. It is written to
// the consensus store exactly once and never mutated afterwards.
//
// The JSON field names are part of the on-disk format — records written by
// earlier deployments must stay readable.
type SealedRecord struct {
	SequenceNumber  uint64 `json:"sequence_number"`
	EventID         string `json:"event_id"`
	Payload         []byte `json:"payload"`
	EventHash       string `json:"event_hash"`
	PreviousHash    string `json:"previous_hash"`
	SealedTimestamp int64  `json:"sealed_timestamp"`
	CommitLatencyMS int64  `json:"commit_latency_ms"`
}

// NowMillis returns the current wall clock in milliseconds since epoch,
// the unit used for SealedTimestamp.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
