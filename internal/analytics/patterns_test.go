package analytics

import (
	"testing"
	"time"

	"github.com/dvloznov/pockit/internal/domain"
)

func txOn(date time.Time, typ domain.TransactionType, category domain.Category, amount float64) domain.Transaction {
	return domain.Transaction{
		ID:       domain.NewID(date),
		Amount:   amount,
		Type:     typ,
		Category: category,
		Date:     date,
		Month:    domain.MonthIndex(date),
	}
}

func patternTypes(patterns []Pattern) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, p.Type)
	}
	return out
}

func hasPattern(patterns []Pattern, typ string) bool {
	for _, p := range patterns {
		if p.Type == typ {
			return true
		}
	}
	return false
}

func TestDetectSpendingPatterns_Empty(t *testing.T) {
	if got := DetectSpendingPatterns(nil); len(got) != 0 {
		t.Errorf("DetectSpendingPatterns(nil) = %v, want none", patternTypes(got))
	}
}

func TestDetectSpendingPatterns_SingleTransaction(t *testing.T) {
	// A lone weekday expense covered by income in the same month. The only
	// possible finding is category concentration at 100%; in particular the
	// single-day mean must not trip the high-spending-day detector and the
	// impulse detector must not divide by zero.
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC) // a Wednesday
	txs := []domain.Transaction{
		txOn(day, domain.TypeExpense, domain.CategoryMakanan, 50000),
		txOn(day, domain.TypeIncome, domain.CategoryUangSaku, 1000000),
	}

	got := DetectSpendingPatterns(txs)
	if len(got) != 1 || got[0].Type != "category_concentration" {
		t.Fatalf("patterns = %v, want [category_concentration]", patternTypes(got))
	}
	if got[0].Description != "100% of your spending goes to Makanan." {
		t.Errorf("Description = %q", got[0].Description)
	}
}

func TestDetectSpendingPatterns_HighSpendingDays(t *testing.T) {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday
	txs := []domain.Transaction{
		txOn(base, domain.TypeExpense, domain.CategoryMakanan, 10000),
		txOn(base.AddDate(0, 0, 1), domain.TypeExpense, domain.CategoryTransport, 10000),
		txOn(base.AddDate(0, 0, 2), domain.TypeExpense, domain.CategoryKuliah, 100000),
		txOn(base, domain.TypeIncome, domain.CategoryUangSaku, 500000),
	}

	got := DetectSpendingPatterns(txs)
	if !hasPattern(got, "high_spending_days") {
		t.Fatalf("patterns = %v, want high_spending_days", patternTypes(got))
	}
	for _, p := range got {
		if p.Type == "high_spending_days" {
			if p.Severity != SeverityInfo {
				t.Errorf("Severity = %q, want info for a single high day", p.Severity)
			}
			if p.Description != "You had 1 days with unusually high spending (2x your daily average)." {
				t.Errorf("Description = %q", p.Description)
			}
		}
	}
}

func TestDetectSpendingPatterns_WeekendShare(t *testing.T) {
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		txOn(saturday, domain.TypeExpense, domain.CategoryHiburan, 50000),
		txOn(monday, domain.TypeExpense, domain.CategoryMakanan, 100000),
		txOn(monday, domain.TypeIncome, domain.CategoryUangSaku, 500000),
	}

	got := DetectSpendingPatterns(txs)
	if !hasPattern(got, "weekend_spending") {
		t.Fatalf("patterns = %v, want weekend_spending", patternTypes(got))
	}
	for _, p := range got {
		if p.Type == "weekend_spending" && p.Description != "Your weekend spending is 33% of your total expenses." {
			t.Errorf("Description = %q", p.Description)
		}
	}
}

func TestDetectSpendingPatterns_ImpulseBuying(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	bigDay := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	var txs []domain.Transaction
	// Twelve tiny same-day purchases give eleven adjacent pairs.
	for i := 0; i < 12; i++ {
		txs = append(txs, txOn(day.Add(time.Duration(i)*time.Minute), domain.TypeExpense, domain.CategoryMakanan, 1000))
	}
	// A big day pulls the daily mean far above the small purchases.
	txs = append(txs, txOn(bigDay, domain.TypeExpense, domain.CategoryKebutuhan, 100000))
	txs = append(txs, txOn(day, domain.TypeIncome, domain.CategoryUangSaku, 500000))

	got := DetectSpendingPatterns(txs)
	if !hasPattern(got, "impulse_spending") {
		t.Fatalf("patterns = %v, want impulse_spending", patternTypes(got))
	}
	for _, p := range got {
		if p.Type == "impulse_spending" && p.Description != "You made 11 small purchases. These add up quickly!" {
			t.Errorf("Description = %q", p.Description)
		}
	}
}

func TestDetectSpendingPatterns_Overspending(t *testing.T) {
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		txOn(day, domain.TypeExpense, domain.CategoryMakanan, 800000),
		txOn(day, domain.TypeIncome, domain.CategoryUangSaku, 500000),
	}

	got := DetectSpendingPatterns(txs)
	if !hasPattern(got, "overspending") {
		t.Fatalf("patterns = %v, want overspending", patternTypes(got))
	}
	for _, p := range got {
		if p.Type == "overspending" && p.Severity != SeverityError {
			t.Errorf("Severity = %q, want error", p.Severity)
		}
	}
}

func TestDetectPositiveHabits(t *testing.T) {
	// currentMonth 5: the saving window is months 5, 4 and 3.
	mk := func(month int, typ domain.TransactionType, amount float64) domain.Transaction {
		date := time.Date(2026, time.Month(month+1), 10, 0, 0, 0, 0, time.UTC)
		return txOn(date, typ, domain.CategoryLainnya, amount)
	}

	saver := []domain.Transaction{
		mk(5, domain.TypeIncome, 1000000), mk(5, domain.TypeExpense, 400000),
		mk(4, domain.TypeIncome, 1000000), mk(4, domain.TypeExpense, 600000),
		mk(3, domain.TypeIncome, 1000000), mk(3, domain.TypeExpense, 900000),
	}

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	budgets := []domain.Budget{domain.NewBudget(domain.CategoryLainnya, 3000000, now)}
	goals := []domain.SavingsGoal{domain.NewSavingsGoal("Laptop", "laptop", 5000000, nil, now)}

	habits := DetectPositiveHabits(saver, budgets, goals, 5)
	if len(habits) != 3 {
		t.Fatalf("got %d habits, want 3: %+v", len(habits), habits)
	}
	if habits[0].Type != "consistent_saving" || habits[1].Type != "budget_discipline" || habits[2].Type != "goal_oriented" {
		t.Errorf("habit order = [%s %s %s]", habits[0].Type, habits[1].Type, habits[2].Type)
	}
	if habits[2].Description != "You have 1 active savings goal. Keep pushing!" {
		t.Errorf("goal description = %q", habits[2].Description)
	}

	t.Run("one losing month breaks the saving streak", func(t *testing.T) {
		txs := append([]domain.Transaction{}, saver...)
		txs = append(txs, mk(4, domain.TypeExpense, 500000)) // month 4 now negative
		habits := DetectPositiveHabits(txs, nil, nil, 5)
		for _, h := range habits {
			if h.Type == "consistent_saving" {
				t.Error("consistent_saving detected despite a losing month")
			}
		}
	})

	t.Run("completed goals do not count as active", func(t *testing.T) {
		g := domain.NewSavingsGoal("Done", "check", 100, nil, now)
		g.Contribute(100, now)
		habits := DetectPositiveHabits(nil, nil, []domain.SavingsGoal{g}, 5)
		for _, h := range habits {
			if h.Type == "goal_oriented" {
				t.Error("goal_oriented detected with only completed goals")
			}
		}
	})
}
