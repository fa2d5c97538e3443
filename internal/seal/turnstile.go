package seal

import "sync"

// turnstile admits seal operations to the hash/persist/chain-update span
// strictly in sequence order. Sequence allocation is atomic in the store,
// so every allocated number passes through exactly one wait/done pair;
// ordering here keeps "latest hash" meaningful under concurrent seals —
// the single-writer queue over the chain.
type turnstile struct {
	mu   sync.Mutex
	cond *sync.Cond
	next uint64
}

// newTurnstile creates a turnstile that admits lastAssigned+1 first.
func newTurnstile(lastAssigned uint64) *turnstile {
	t := &turnstile{next: lastAssigned + 1}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// wait blocks until sequence is the next admitted number.
func (t *turnstile) wait(sequence uint64) {
	t.mu.Lock()
	for sequence != t.next {
		t.cond.Wait()
	}
	t.mu.Unlock()
}

// done releases the turn, admitting the next sequence. Must be called
// exactly once per wait, including on failed seals — otherwise every
// later sequence blocks forever.
func (t *turnstile) done() {
	t.mu.Lock()
	t.next++
	t.mu.Unlock()
	t.cond.Broadcast()
}

// reset repositions the turnstile; used after rebuilding from durable
// state, before any seal is admitted.
func (t *turnstile) reset(lastAssigned uint64) {
	t.mu.Lock()
	t.next = lastAssigned + 1
	t.mu.Unlock()
	t.cond.Broadcast()
}
