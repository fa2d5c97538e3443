package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	clientv3 "go.etcd.io/etcd/client/v3"

	"ImmutableLedger/internal/store"
	"ImmutableLedger/internal/testutil"
)

// ============================================================================
// Integration: etcd binding
// ============================================================================

func setupEtcd(t *testing.T) *clientv3.Client {
	t.Helper()
	testutil.RequireIntegration(t)

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   testutil.TestEtcdEndpoints(),
		DialTimeout: 3 * time.Second,
	})
	if err != nil {
		t.Skipf("etcd not available: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cli.Delete(ctx, "ledger/", clientv3.WithPrefix())
		cli.Close()
	})
	return cli
}

func TestEtcdKV_AllocateAndPersist(t *testing.T) {
	cli := setupEtcd(t)
	ctx := context.Background()

	s := store.New(store.NewEtcdKV(cli), zerolog.Nop(), nil)

	first, err := s.AllocateNext(ctx)
	if err != nil {
		t.Fatalf("AllocateNext: %v", err)
	}
	second, err := s.AllocateNext(ctx)
	if err != nil {
		t.Fatalf("AllocateNext: %v", err)
	}
	if second != first+1 {
		t.Errorf("allocations not consecutive: %d then %d", first, second)
	}

	cur, err := s.CurrentSequence(ctx)
	if err != nil || cur != second {
		t.Errorf("CurrentSequence: got %d err=%v, want %d", cur, err, second)
	}
}

func TestEtcdKV_CompareAndSwapConflict(t *testing.T) {
	cli := setupEtcd(t)
	ctx := context.Background()

	kv := store.NewEtcdKV(cli)
	const key = "ledger/cas_test"

	ok, err := kv.CompareAndSwap(ctx, key, nil, []byte("a"))
	if err != nil || !ok {
		t.Fatalf("create: ok=%v err=%v", ok, err)
	}
	ok, err = kv.CompareAndSwap(ctx, key, []byte("stale"), []byte("b"))
	if err != nil {
		t.Fatalf("cas: %v", err)
	}
	if ok {
		t.Error("stale precondition should fail")
	}
	ok, err = kv.CompareAndSwap(ctx, key, []byte("a"), []byte("b"))
	if err != nil || !ok {
		t.Fatalf("cas with match: ok=%v err=%v", ok, err)
	}
}
