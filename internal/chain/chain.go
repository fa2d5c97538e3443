package chain

import "sync"

// GenesisHash is the placeholder predecessor for the first sealed record:
// a 64-character hex string of all zeros.
const GenesisHash = "0000000000000000000000000000000000000000000000000000000000000000"

// Chain is the in-memory index from sequence number to the hash sealed at
// that position. Entries are appended once per successful seal and never
// removed. Safe for concurrent use.
type Chain struct {
	mu      sync.RWMutex
	entries map[uint64]string
	maxSeq  uint64
}

func New() *Chain {
	return &Chain{
		entries: make(map[uint64]string),
	}
}

// LatestHash returns the hash at the highest recorded sequence number, or
// GenesisHash when the chain is empty. This is what the next event links to.
func (c *Chain) LatestHash() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.entries) == 0 {
		return GenesisHash
	}
	return c.entries[c.maxSeq]
}

// Record appends the hash sealed at sequence. Callers must not record two
// different hashes for the same sequence number.
func (c *Chain) Record(sequence uint64, hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[sequence] = hash
	if sequence > c.maxSeq {
		c.maxSeq = sequence
	}
}

// HashAt returns the hash recorded at sequence, if any.
func (c *Chain) HashAt(sequence uint64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.entries[sequence]
	return h, ok
}

// VerifyGapless reports whether the recorded sequence numbers form a
// contiguous run. An empty chain is gapless. This is an on-demand audit
// check, not enforced on every Record.
func (c *Chain) VerifyGapless() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.entries) == 0 {
		return true
	}
	min := c.maxSeq
	for seq := range c.entries {
		if seq < min {
			min = seq
		}
	}
	// Keys are unique, so contiguity is equivalent to span == count.
	return c.maxSeq-min+1 == uint64(len(c.entries))
}

// Size returns the number of recorded entries.
func (c *Chain) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
