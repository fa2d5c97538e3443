package chain_test

import (
	"strings"
	"testing"

	"ImmutableLedger/internal/chain"
)

// ============================================================================
// Test: genesis
// ============================================================================

func TestLatestHash_EmptyChainIsGenesis(t *testing.T) {
	c := chain.New()

	got := c.LatestHash()
	if len(got) != 64 {
		t.Fatalf("genesis hash length: got %d, want 64", len(got))
	}
	if got != strings.Repeat("0", 64) {
		t.Errorf("genesis hash: got %q, want all zeros", got)
	}
}

// ============================================================================
// Test: record and lookup
// ============================================================================

func TestRecordAndLatest(t *testing.T) {
	c := chain.New()

	c.Record(1, "hash1")
	c.Record(2, "hash2")

	if got := c.LatestHash(); got != "hash2" {
		t.Errorf("latest: got %q, want %q", got, "hash2")
	}

	h, ok := c.HashAt(1)
	if !ok || h != "hash1" {
		t.Errorf("HashAt(1): got %q ok=%v, want %q", h, ok, "hash1")
	}

	if _, ok := c.HashAt(99); ok {
		t.Error("HashAt(99) should report absence")
	}

	if c.Size() != 2 {
		t.Errorf("size: got %d, want 2", c.Size())
	}
}

func TestRecord_OutOfOrderDoesNotMoveTipBackwards(t *testing.T) {
	c := chain.New()

	c.Record(3, "hash3")
	c.Record(1, "hash1")

	if got := c.LatestHash(); got != "hash3" {
		t.Errorf("latest: got %q, want %q", got, "hash3")
	}
}

// ============================================================================
// Test: gapless audit
// ============================================================================

func TestVerifyGapless(t *testing.T) {
	c := chain.New()
	if !c.VerifyGapless() {
		t.Error("empty chain should be gapless")
	}

	c.Record(1, "h1")
	c.Record(2, "h2")
	c.Record(3, "h3")
	if !c.VerifyGapless() {
		t.Error("{1,2,3} should be gapless")
	}

	c.Record(5, "h5")
	if c.VerifyGapless() {
		t.Error("{1,2,3,5} should not be gapless")
	}
}

func TestVerifyGapless_NonOneBased(t *testing.T) {
	c := chain.New()
	c.Record(7, "h7")
	c.Record(8, "h8")

	if !c.VerifyGapless() {
		t.Error("contiguous run not starting at 1 is still gapless")
	}
}
