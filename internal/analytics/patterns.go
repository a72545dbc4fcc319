package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/dvloznov/pockit/internal/domain"
)

// Severity grades a finding. Error findings describe unsustainable behavior,
// warnings need attention, info is advisory.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Pattern is one behavioral finding over the full transaction history.
type Pattern struct {
	Type           string   `json:"type"`
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
}

// Habit is a positive behavior worth reinforcing.
type Habit struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

// DetectSpendingPatterns scans the full history (not month-filtered) for
// recurring behavioral signals. Findings come back in fixed priority order;
// each detector gates independently.
func DetectSpendingPatterns(txs []domain.Transaction) []Pattern {
	var patterns []Pattern

	daily := dailySpending(txs)
	mean := meanDailySpend(daily)

	// 1. Days spending more than twice the daily average.
	highDays := 0
	for _, total := range daily {
		if total > mean*2 {
			highDays++
		}
	}
	if highDays > 0 {
		sev := SeverityInfo
		if highDays > 5 {
			sev = SeverityWarning
		}
		patterns = append(patterns, Pattern{
			Type:           "high_spending_days",
			Severity:       sev,
			Title:          "High Spending Days Detected",
			Description:    fmt.Sprintf("You had %d days with unusually high spending (2x your daily average).", highDays),
			Recommendation: "Try to spread out large purchases to better manage your budget.",
		})
	}

	// 2. Weekend spending out of proportion to weekdays.
	var weekend, weekday float64
	for _, t := range txs {
		if t.Type != domain.TypeExpense {
			continue
		}
		switch t.Date.Weekday() {
		case time.Saturday, time.Sunday:
			weekend += t.Amount
		default:
			weekday += t.Amount
		}
	}
	if weekend > weekday*0.4 {
		share := 0.0
		if weekend+weekday > 0 {
			share = weekend / (weekend + weekday) * 100
		}
		patterns = append(patterns, Pattern{
			Type:           "weekend_spending",
			Severity:       SeverityInfo,
			Title:          "High Weekend Spending",
			Description:    fmt.Sprintf("Your weekend spending is %d%% of your total expenses.", roundInt(share)),
			Recommendation: "Consider free weekend activities to reduce costs.",
		})
	}

	// 3. One category dominating total spend.
	byCategory := ExpenseByCategory(txs)
	var total float64
	for _, v := range byCategory {
		total += v
	}
	if cat, amount, ok := dominantCategory(byCategory); ok && total > 0 && amount/total > 0.5 {
		patterns = append(patterns, Pattern{
			Type:           "category_concentration",
			Severity:       SeverityWarning,
			Title:          fmt.Sprintf("Heavy Focus on %s", cat),
			Description:    fmt.Sprintf("%d%% of your spending goes to %s.", roundInt(amount/total*100), cat),
			Recommendation: fmt.Sprintf("Consider diversifying your spending or finding cheaper alternatives for %s.", cat),
		})
	}

	// 4. Bursts of small same-day purchases.
	impulse := impulseCount(txs, mean)
	if impulse > 10 {
		patterns = append(patterns, Pattern{
			Type:           "impulse_spending",
			Severity:       SeverityWarning,
			Title:          "Frequent Small Purchases Detected",
			Description:    fmt.Sprintf("You made %d small purchases. These add up quickly!", impulse),
			Recommendation: "Try the 24-hour rule: wait a day before making non-essential purchases.",
		})
	}

	// 5. Any month where expenses exceeded income. One finding total, not
	// one per month.
	if hasOverspendingMonth(txs) {
		patterns = append(patterns, Pattern{
			Type:           "overspending",
			Severity:       SeverityError,
			Title:          "Spending Exceeds Income",
			Description:    "You're spending more than you earn. This is unsustainable.",
			Recommendation: "Review your expenses and cut non-essential spending immediately.",
		})
	}

	return patterns
}

// DetectPositiveHabits looks for behavior worth reinforcing: saving through
// the trailing three months (the current month and the two before it),
// all-time budget discipline above 80%, and having active goals.
func DetectPositiveHabits(txs []domain.Transaction, budgets []domain.Budget, goals []domain.SavingsGoal, currentMonth int) []Habit {
	var habits []Habit

	saving := true
	for i := 0; i < 3; i++ {
		month := (currentMonth - i + 12) % 12
		t := MonthTotals(txs, month)
		if t.Balance <= 0 {
			saving = false
			break
		}
	}
	if saving {
		habits = append(habits, Habit{
			Type:        "consistent_saving",
			Title:       "Great Saving Habit!",
			Description: "You've been saving money consistently for 3 months.",
			Emoji:       "💰",
		})
	}

	if len(budgets) > 0 {
		// Adherence here is all-time spend per category, not a single month.
		byCategory := ExpenseByCategory(txs)
		adherent := 0
		for _, b := range budgets {
			if byCategory[b.Category] <= b.Amount {
				adherent++
			}
		}
		rate := float64(adherent) / float64(len(budgets))
		if rate > 0.8 {
			habits = append(habits, Habit{
				Type:        "budget_discipline",
				Title:       "Budget Master!",
				Description: fmt.Sprintf("You're staying within budget %d%% of the time.", roundInt(rate*100)),
				Emoji:       "🏆",
			})
		}
	}

	active := 0
	for _, g := range goals {
		if g.Status == domain.GoalActive {
			active++
		}
	}
	if active > 0 {
		habits = append(habits, Habit{
			Type:        "goal_oriented",
			Title:       "Goal-Oriented",
			Description: fmt.Sprintf("You have %d active savings %s. Keep pushing!", active, plural(active, "goal")),
			Emoji:       "⭐",
		})
	}

	return habits
}

// dailySpending buckets expense amounts by calendar day.
func dailySpending(txs []domain.Transaction) map[string]float64 {
	out := make(map[string]float64)
	for _, t := range txs {
		if t.Type == domain.TypeExpense {
			out[t.Date.Format("2006-01-02")] += t.Amount
		}
	}
	return out
}

// meanDailySpend averages over days that had any spend. Zero when there are
// no spending days at all; a single spending day yields a mean equal to that
// day's total, which can never trip the 2x threshold.
func meanDailySpend(daily map[string]float64) float64 {
	if len(daily) == 0 {
		return 0
	}
	var sum float64
	for _, v := range daily {
		sum += v
	}
	return sum / float64(len(daily))
}

// impulseCount counts adjacent same-calendar-day expense pairs where the
// earlier purchase was below 0.3x the mean daily spend.
func impulseCount(txs []domain.Transaction, meanDaily float64) int {
	var expenses []domain.Transaction
	for _, t := range txs {
		if t.Type == domain.TypeExpense {
			expenses = append(expenses, t)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		if expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].ID < expenses[j].ID
		}
		return expenses[i].Date.Before(expenses[j].Date)
	})

	count := 0
	for i := 0; i+1 < len(expenses); i++ {
		if sameDay(expenses[i].Date, expenses[i+1].Date) && expenses[i].Amount < meanDaily*0.3 {
			count++
		}
	}
	return count
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func hasOverspendingMonth(txs []domain.Transaction) bool {
	seen := make(map[int]bool)
	for _, t := range txs {
		if seen[t.Month] {
			continue
		}
		seen[t.Month] = true
		if totals := MonthTotals(txs, t.Month); totals.Expense > totals.Income {
			return true
		}
	}
	return false
}

func roundInt(v float64) int {
	if v < 0 {
		return -roundInt(-v)
	}
	return int(v + 0.5)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
