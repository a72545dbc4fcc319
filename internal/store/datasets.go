package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dvloznov/pockit/internal/domain"
)

// Load semantics are fail-open: a missing key, a read error or a corrupt blob
// all yield an empty collection, never a hard failure. Save failures are
// surfaced so the caller can report them; in-memory state is unaffected
// either way.

// LoadTransactions reads the transactions dataset.
func LoadTransactions(ctx context.Context, bs BlobStore) []domain.Transaction {
	var out []domain.Transaction
	loadDataset(ctx, bs, KeyTransactions, &out)
	return out
}

// SaveTransactions overwrites the transactions dataset.
func SaveTransactions(ctx context.Context, bs BlobStore, txs []domain.Transaction) error {
	return saveDataset(ctx, bs, KeyTransactions, txs)
}

// LoadBudgets reads the budgets dataset.
func LoadBudgets(ctx context.Context, bs BlobStore) []domain.Budget {
	var out []domain.Budget
	loadDataset(ctx, bs, KeyBudgets, &out)
	return out
}

// SaveBudgets overwrites the budgets dataset.
func SaveBudgets(ctx context.Context, bs BlobStore, budgets []domain.Budget) error {
	return saveDataset(ctx, bs, KeyBudgets, budgets)
}

// LoadGoals reads the savings-goals dataset.
func LoadGoals(ctx context.Context, bs BlobStore) []domain.SavingsGoal {
	var out []domain.SavingsGoal
	loadDataset(ctx, bs, KeyGoals, &out)
	return out
}

// SaveGoals overwrites the savings-goals dataset.
func SaveGoals(ctx context.Context, bs BlobStore, goals []domain.SavingsGoal) error {
	return saveDataset(ctx, bs, KeyGoals, goals)
}

// LoadBills reads the bill-reminders dataset.
func LoadBills(ctx context.Context, bs BlobStore) []domain.Bill {
	var out []domain.Bill
	loadDataset(ctx, bs, KeyBills, &out)
	return out
}

// SaveBills overwrites the bill-reminders dataset.
func SaveBills(ctx context.Context, bs BlobStore, bills []domain.Bill) error {
	return saveDataset(ctx, bs, KeyBills, bills)
}

func loadDataset(ctx context.Context, bs BlobStore, key string, v interface{}) {
	data, ok, err := bs.Get(ctx, key)
	if err != nil || !ok {
		return
	}
	// A blob that no longer parses is treated the same as no data.
	_ = json.Unmarshal(data, v)
}

func saveDataset(ctx context.Context, bs BlobStore, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := bs.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
