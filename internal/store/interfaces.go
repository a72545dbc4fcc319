// Package store persists the four collections as independently-keyed JSON
// blobs. The backing store only has whole-blob get/set semantics: callers
// load a full collection, mutate it in memory, and write the full collection
// back. Last full write wins; there is no field-level update or merge.
package store

import "context"

// Dataset keys for the four persisted collections.
const (
	KeyTransactions = "finance-transactions"
	KeyBudgets      = "finance-budgets"
	KeyGoals        = "finance-savings-goals"
	KeyBills        = "finance-bill-reminders"
)

// BlobStore is the minimal key-value contract the tracker needs from a
// backend. Get returns ok=false when the key has never been written, which
// callers treat as "no data yet" rather than an error.
type BlobStore interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte) error
}
