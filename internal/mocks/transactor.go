package mocks

import (
	"context"
	"sync/atomic"

	"github.com/phrazzld/ads-api/internal/store"
)

// NoopTransactor runs the function directly with a nil transaction. It
// pairs with the in-memory stores, whose WithTx ignores its argument.
type NoopTransactor struct {
	// BeginErr, when set, is returned without running the function.
	BeginErr error

	calls atomic.Int64
}

var _ store.Transactor = (*NoopTransactor)(nil)

// RunInTransaction implements store.Transactor.
func (t *NoopTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	t.calls.Add(1)
	if t.BeginErr != nil {
		return t.BeginErr
	}
	return fn(ctx, nil)
}

// Calls reports how many transactions were requested.
func (t *NoopTransactor) Calls() int {
	return int(t.calls.Load())
}
