package store_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/dvloznov/pockit/internal/domain"
	"github.com/dvloznov/pockit/internal/store"
	"github.com/dvloznov/pockit/internal/store/inmemory"
)

// failingStore always errors on Get, for exercising the fail-open path.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}

func (failingStore) Set(ctx context.Context, key string, data []byte) error {
	return errors.New("backend down")
}

func TestLoadFailsOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("missing dataset", func(t *testing.T) {
		if got := store.LoadTransactions(ctx, inmemory.NewStore()); len(got) != 0 {
			t.Errorf("LoadTransactions(empty) = %v, want none", got)
		}
	})

	t.Run("backend error", func(t *testing.T) {
		if got := store.LoadTransactions(ctx, failingStore{}); len(got) != 0 {
			t.Errorf("LoadTransactions(failing) = %v, want none", got)
		}
	})

	t.Run("corrupt payload", func(t *testing.T) {
		bs := inmemory.NewStore()
		bs.Set(ctx, store.KeyTransactions, []byte("{not json"))
		if got := store.LoadTransactions(ctx, bs); len(got) != 0 {
			t.Errorf("LoadTransactions(corrupt) = %v, want none", got)
		}
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	bs := inmemory.NewStore()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	txs := []domain.Transaction{
		domain.NewTransaction(50000, domain.TypeExpense, domain.CategoryMakanan, "makan siang", date),
		domain.NewTransaction(1000000, domain.TypeIncome, domain.CategoryUangSaku, "uang saku", date),
	}

	if err := store.SaveTransactions(ctx, bs, txs); err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}

	got := store.LoadTransactions(ctx, bs)
	if !reflect.DeepEqual(got, txs) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, txs)
	}
}

func TestSaveWrapsBackendErrors(t *testing.T) {
	err := store.SaveBudgets(context.Background(), failingStore{}, nil)
	if err == nil {
		t.Fatal("SaveBudgets() returned nil on a failing backend")
	}
}

func TestBackupRoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	deadline := now.AddDate(0, 6, 0)

	src := inmemory.NewStore()
	store.SaveTransactions(ctx, src, []domain.Transaction{
		domain.NewTransaction(50000, domain.TypeExpense, domain.CategoryMakanan, "makan siang", now),
	})
	store.SaveBudgets(ctx, src, []domain.Budget{
		domain.NewBudget(domain.CategoryMakanan, 1500000, now),
	})
	store.SaveGoals(ctx, src, []domain.SavingsGoal{
		domain.NewSavingsGoal("Laptop", "laptop", 8000000, &deadline, now),
	})
	store.SaveBills(ctx, src, []domain.Bill{
		domain.NewBill("Kos", 900000, now.AddDate(0, 0, 10), domain.CategoryKebutuhan, now),
	})

	data, err := store.Export(ctx, src, now)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	dst := inmemory.NewStore()
	if err := store.Import(ctx, dst, data); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if got, want := store.LoadTransactions(ctx, dst), store.LoadTransactions(ctx, src); !reflect.DeepEqual(got, want) {
		t.Errorf("transactions differ after round trip:\ngot  %+v\nwant %+v", got, want)
	}
	if got, want := store.LoadBudgets(ctx, dst), store.LoadBudgets(ctx, src); !reflect.DeepEqual(got, want) {
		t.Errorf("budgets differ after round trip")
	}
	if got, want := store.LoadGoals(ctx, dst), store.LoadGoals(ctx, src); !reflect.DeepEqual(got, want) {
		t.Errorf("goals differ after round trip")
	}
	if got, want := store.LoadBills(ctx, dst), store.LoadBills(ctx, src); !reflect.DeepEqual(got, want) {
		t.Errorf("bills differ after round trip")
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	if err := store.Import(context.Background(), inmemory.NewStore(), []byte("not a backup")); err == nil {
		t.Fatal("Import() accepted a non-JSON payload")
	}
}

func TestImportOverwritesExistingData(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	bs := inmemory.NewStore()
	store.SaveTransactions(ctx, bs, []domain.Transaction{
		domain.NewTransaction(99999, domain.TypeExpense, domain.CategoryHiburan, "old data", now),
	})

	empty, err := store.Export(ctx, inmemory.NewStore(), now)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Import(ctx, bs, empty); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if got := store.LoadTransactions(ctx, bs); len(got) != 0 {
		t.Errorf("old transactions survived the import: %+v", got)
	}
}
