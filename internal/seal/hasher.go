package seal

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// ComputeHash computes the chain-extension hash for one event:
// SHA-256 over sequence (8 bytes LE) || event_id || payload || previous_hash,
// returned as lowercase hex. The previous-hash input is the hex string
// itself, not its decoded bytes — that is the established record format.
func ComputeHash(sequence uint64, eventID string, payload []byte, previousHash string) string {
	h := sha256.New()

	var seqBuf [8]byte
	binary.LittleEndian.PutUint64(seqBuf[:], sequence)
	h.Write(seqBuf[:])

	h.Write([]byte(eventID))
	h.Write(payload)
	h.Write([]byte(previousHash))

	return hex.EncodeToString(h.Sum(nil))
}
