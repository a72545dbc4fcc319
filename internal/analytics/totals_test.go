package analytics

import (
	"reflect"
	"testing"

	"github.com/dvloznov/pockit/internal/domain"
)

func TestMonthTotals(t *testing.T) {
	txs := []domain.Transaction{
		expenseIn(2, domain.CategoryMakanan, 300000),
		expenseIn(2, domain.CategoryTransport, 100000),
		expenseIn(3, domain.CategoryMakanan, 999999),
		{Type: domain.TypeIncome, Category: domain.CategoryUangSaku, Amount: 1000000, Month: 2},
	}

	got := MonthTotals(txs, 2)
	want := Totals{Income: 1000000, Expense: 400000, Balance: 600000}
	if got != want {
		t.Errorf("MonthTotals() = %+v, want %+v", got, want)
	}

	if got := MonthTotals(txs, 7); (got != Totals{}) {
		t.Errorf("MonthTotals(empty month) = %+v, want zero", got)
	}
}

func TestFilterMonthUsesStoredBucket(t *testing.T) {
	// The stored Month field wins even if it disagrees with Date.
	tx := expenseIn(2, domain.CategoryMakanan, 100)
	tx.Month = 7

	got := FilterMonth([]domain.Transaction{tx}, 7)
	if len(got) != 1 {
		t.Fatalf("FilterMonth(7) matched %d, want 1", len(got))
	}
	if got := FilterMonth([]domain.Transaction{tx}, 2); len(got) != 0 {
		t.Errorf("FilterMonth(2) matched %d, want 0", len(got))
	}
}

func TestExpenseByCategory(t *testing.T) {
	txs := []domain.Transaction{
		expenseIn(2, domain.CategoryMakanan, 300000),
		expenseIn(2, domain.CategoryMakanan, 200000),
		expenseIn(2, domain.CategoryTransport, 100000),
		{Type: domain.TypeIncome, Category: domain.CategoryUangSaku, Amount: 1000000, Month: 2},
	}

	got := ExpenseByCategory(txs)
	want := map[domain.Category]float64{
		domain.CategoryMakanan:   500000,
		domain.CategoryTransport: 100000,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpenseByCategory() = %v, want %v", got, want)
	}
}

func TestDominantCategoryTies(t *testing.T) {
	// Equal sums resolve to the earlier category in canonical order.
	byCategory := map[domain.Category]float64{
		domain.CategoryTransport: 100,
		domain.CategoryMakanan:   100,
	}
	cat, amount, ok := dominantCategory(byCategory)
	if !ok || cat != domain.CategoryMakanan || amount != 100 {
		t.Errorf("dominantCategory() = (%v, %v, %v), want (Makanan, 100, true)", cat, amount, ok)
	}

	if _, _, ok := dominantCategory(nil); ok {
		t.Error("dominantCategory(nil) reported a result")
	}
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Rp 0"},
		{999, "Rp 999"},
		{1500, "Rp 1.500"},
		{1250000, "Rp 1.250.000"},
		{-5000, "-Rp 5.000"},
		{1249999.6, "Rp 1.250.000"},
	}

	for _, tt := range tests {
		if got := FormatRupiah(tt.in); got != tt.want {
			t.Errorf("FormatRupiah(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
