// Package analytics is the deterministic insight engine: pure functions over
// in-memory snapshots of the four collections. Nothing in this package reads
// the wall clock or mutates its inputs; every function that needs "now" or
// "current month" takes it as a parameter. Failure modes degrade to zero
// values or empty slices; no function here returns an error.
package analytics

import "github.com/dvloznov/pockit/internal/domain"

// Totals is the income/expense/balance summary for one slice of history.
type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// TotalByType sums the amounts of all transactions of the given type.
func TotalByType(txs []domain.Transaction, typ domain.TransactionType) float64 {
	var sum float64
	for _, t := range txs {
		if t.Type == typ {
			sum += t.Amount
		}
	}
	return sum
}

// FilterMonth returns the transactions bucketed into the given 0-11 month
// index. The stored Month field is authoritative; the Date field is not
// consulted.
func FilterMonth(txs []domain.Transaction, month int) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range txs {
		if t.Month == month {
			out = append(out, t)
		}
	}
	return out
}

// MonthTotals computes income, expense and balance for one month bucket.
func MonthTotals(txs []domain.Transaction, month int) Totals {
	filtered := FilterMonth(txs, month)
	income := TotalByType(filtered, domain.TypeIncome)
	expense := TotalByType(filtered, domain.TypeExpense)
	return Totals{
		Income:  income,
		Expense: expense,
		Balance: income - expense,
	}
}

// ExpenseByCategory maps each expense category to its summed amount over the
// given transactions. Non-expense transactions are ignored.
func ExpenseByCategory(txs []domain.Transaction) map[domain.Category]float64 {
	out := make(map[domain.Category]float64)
	for _, t := range txs {
		if t.Type == domain.TypeExpense {
			out[t.Category] += t.Amount
		}
	}
	return out
}

// dominantCategory returns the expense category with the largest sum, walking
// the canonical category order so equal sums resolve deterministically.
func dominantCategory(byCategory map[domain.Category]float64) (domain.Category, float64, bool) {
	var (
		best  domain.Category
		bestV float64
		found bool
	)
	for _, c := range domain.ExpenseCategories() {
		v, ok := byCategory[c]
		if !ok {
			continue
		}
		if !found || v > bestV {
			best, bestV, found = c, v, true
		}
	}
	return best, bestV, found
}
