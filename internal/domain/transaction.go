package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionType tells income and expense transactions apart. The two types
// carry disjoint category vocabularies.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Category is a closed vocabulary per transaction type. Keeping it a distinct
// type (instead of a free string) prevents budget/category mismatches at the
// call site.
type Category string

// Expense categories. Declaration order is the canonical enumeration order
// used by the categorizer and by dominant-category selection.
const (
	CategoryMakanan   Category = "Makanan"
	CategoryTransport Category = "Transport"
	CategoryKuliah    Category = "Kuliah"
	CategoryHiburan   Category = "Hiburan"
	CategoryKebutuhan Category = "Kebutuhan"
	CategoryLainnya   Category = "Lainnya"
)

// Income categories. "Lainnya" is shared with the expense vocabulary for
// display purposes.
const (
	CategoryUangSaku       Category = "Uang Saku"
	CategoryKerjaSampingan Category = "Kerja Sampingan"
	CategoryBeasiswa       Category = "Beasiswa"
)

// ExpenseCategories returns the expense vocabulary in canonical order.
func ExpenseCategories() []Category {
	return []Category{
		CategoryMakanan,
		CategoryTransport,
		CategoryKuliah,
		CategoryHiburan,
		CategoryKebutuhan,
		CategoryLainnya,
	}
}

// IncomeCategories returns the income vocabulary in canonical order.
func IncomeCategories() []Category {
	return []Category{
		CategoryUangSaku,
		CategoryKerjaSampingan,
		CategoryBeasiswa,
		CategoryLainnya,
	}
}

// CategoriesFor returns the vocabulary for the given transaction type.
func CategoriesFor(t TransactionType) []Category {
	if t == TypeIncome {
		return IncomeCategories()
	}
	return ExpenseCategories()
}

// ValidCategory reports whether c belongs to the vocabulary of type t.
func ValidCategory(t TransactionType, c Category) bool {
	for _, known := range CategoriesFor(t) {
		if known == c {
			return true
		}
	}
	return false
}

// Transaction is one logged income or expense entry. Transactions are
// immutable once created: they can be deleted but never edited in place.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`

	// Month is the 0-11 calendar month bucket, stamped once at creation
	// from Date. All month bucketing reads this field and never re-derives
	// it from Date.
	Month int `json:"month"`
}

// NewTransaction stamps identity and the month bucket at creation time.
func NewTransaction(amount float64, typ TransactionType, category Category, description string, date time.Time) Transaction {
	return Transaction{
		ID:          NewID(date),
		Amount:      amount,
		Type:        typ,
		Category:    category,
		Description: description,
		Date:        date,
		Month:       MonthIndex(date),
	}
}

// MonthIndex converts a calendar date to the 0-11 bucket index.
func MonthIndex(t time.Time) int {
	return int(t.Month()) - 1
}

// NewID returns a creation-time-prefixed identifier. The zero-padded
// nanosecond prefix makes IDs sort in creation order, which gives stable
// tie-breaks when sorting same-day transactions; the uuid suffix keeps them
// unique within a nanosecond.
func NewID(ts time.Time) string {
	return fmt.Sprintf("%020d-%s", ts.UnixNano(), uuid.NewString())
}
