package store

import (
	"context"
	"fmt"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdKV binds the KV contract to an etcd cluster. etcd gives linearizable
// reads and writes per key, and transactions provide the compare-and-swap
// the sequence allocator depends on. The clientv3 client is safe for
// concurrent use, so no application-level mutex guards it — concurrent
// seal operations issue store calls independently.
type EtcdKV struct {
	cli *clientv3.Client
}

func NewEtcdKV(cli *clientv3.Client) *EtcdKV {
	return &EtcdKV{cli: cli}
}

func (e *EtcdKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	resp, err := e.cli.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("etcd get %s: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, false, nil
	}
	return resp.Kvs[0].Value, true, nil
}

func (e *EtcdKV) Put(ctx context.Context, key string, value []byte) error {
	if _, err := e.cli.Put(ctx, key, string(value)); err != nil {
		return fmt.Errorf("etcd put %s: %w", key, err)
	}
	return nil
}

func (e *EtcdKV) CompareAndSwap(ctx context.Context, key string, expected, value []byte) (bool, error) {
	var cmp clientv3.Cmp
	if expected == nil {
		// Key must not exist yet.
		cmp = clientv3.Compare(clientv3.CreateRevision(key), "=", 0)
	} else {
		cmp = clientv3.Compare(clientv3.Value(key), "=", string(expected))
	}

	resp, err := e.cli.Txn(ctx).
		If(cmp).
		Then(clientv3.OpPut(key, string(value))).
		Commit()
	if err != nil {
		return false, fmt.Errorf("etcd cas %s: %w", key, err)
	}
	return resp.Succeeded, nil
}

func (e *EtcdKV) ListPrefix(ctx context.Context, prefix string) (map[string][]byte, error) {
	resp, err := e.cli.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("etcd list %s: %w", prefix, err)
	}
	out := make(map[string][]byte, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		out[string(kv.Key)] = kv.Value
	}
	return out, nil
}
