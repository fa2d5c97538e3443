package seal_test

import (
	"strings"
	"testing"

	"ImmutableLedger/internal/chain"
	"ImmutableLedger/internal/seal"
)

// ============================================================================
// Test: hash determinism and shape
// ============================================================================

func TestComputeHash_Deterministic(t *testing.T) {
	h1 := seal.ComputeHash(5, "e1", []byte{9, 9}, chain.GenesisHash)
	h2 := seal.ComputeHash(5, "e1", []byte{9, 9}, chain.GenesisHash)

	if h1 != h2 {
		t.Errorf("same inputs produced different hashes: %q vs %q", h1, h2)
	}
}

func TestComputeHash_Shape(t *testing.T) {
	h := seal.ComputeHash(1, "event", []byte("payload"), chain.GenesisHash)

	if len(h) != 64 {
		t.Fatalf("hash length: got %d, want 64", len(h))
	}
	if h != strings.ToLower(h) {
		t.Error("hash should be lowercase hex")
	}
	for _, r := range h {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Fatalf("non-hex rune %q in hash", r)
		}
	}
}

// ============================================================================
// Test: sensitivity — every input field changes the output
// ============================================================================

func TestComputeHash_Sensitivity(t *testing.T) {
	base := seal.ComputeHash(5, "e1", []byte{9, 9}, chain.GenesisHash)

	variants := map[string]string{
		"sequence":      seal.ComputeHash(6, "e1", []byte{9, 9}, chain.GenesisHash),
		"event id":      seal.ComputeHash(5, "e2", []byte{9, 9}, chain.GenesisHash),
		"payload":       seal.ComputeHash(5, "e1", []byte{9, 8}, chain.GenesisHash),
		"previous hash": seal.ComputeHash(5, "e1", []byte{9, 9}, strings.Repeat("a", 64)),
	}

	for field, got := range variants {
		if got == base {
			t.Errorf("changing %s did not change the hash", field)
		}
	}
}

func TestComputeHash_EmptyPayload(t *testing.T) {
	h1 := seal.ComputeHash(1, "e", nil, chain.GenesisHash)
	h2 := seal.ComputeHash(1, "e", []byte{}, chain.GenesisHash)

	// nil and empty payload hash identically; only the bytes matter.
	if h1 != h2 {
		t.Errorf("nil vs empty payload: %q vs %q", h1, h2)
	}
}
