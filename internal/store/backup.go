package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dvloznov/pockit/internal/domain"
)

// BackupVersion is stamped into exports. It is stored but not interpreted on
// import; there is no migration logic behind it yet.
const BackupVersion = "1.0"

// Backup packages all four collections into one export document.
type Backup struct {
	Version      string               `json:"version"`
	ExportDate   time.Time            `json:"exportDate"`
	Transactions []domain.Transaction `json:"transactions"`
	Budgets      []domain.Budget      `json:"budgets"`
	Goals        []domain.SavingsGoal `json:"goals"`
	Bills        []domain.Bill        `json:"bills"`
}

// Export reads all four datasets and packages them as one JSON document.
func Export(ctx context.Context, bs BlobStore, now time.Time) ([]byte, error) {
	b := Backup{
		Version:      BackupVersion,
		ExportDate:   now,
		Transactions: LoadTransactions(ctx, bs),
		Budgets:      LoadBudgets(ctx, bs),
		Goals:        LoadGoals(ctx, bs),
		Bills:        LoadBills(ctx, bs),
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	return data, nil
}

// Import overwrites every dataset with the collections in the backup
// document. No merge: whatever was stored before is gone.
func Import(ctx context.Context, bs BlobStore, data []byte) error {
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("parse backup: %w", err)
	}

	if err := SaveTransactions(ctx, bs, b.Transactions); err != nil {
		return err
	}
	if err := SaveBudgets(ctx, bs, b.Budgets); err != nil {
		return err
	}
	if err := SaveGoals(ctx, bs, b.Goals); err != nil {
		return err
	}
	return SaveBills(ctx, bs, b.Bills)
}
