package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/dvloznov/pockit/internal/domain"
)

// Priority orders recommendations: high first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityRank = map[Priority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Recommendation is one actionable suggestion, ordered by priority.
type Recommendation struct {
	Type            string   `json:"type"`
	Priority        Priority `json:"priority"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Action          string   `json:"action"`
	PotentialSaving float64  `json:"potentialSaving,omitempty"`
}

// Alert flags an urgent issue in the current month.
type Alert struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// Predictions bundles the forecast outputs inside Insights.
type Predictions struct {
	NextMonth  *Forecast                   `json:"nextMonth"`
	ByCategory map[domain.Category]float64 `json:"byCategory"`
}

// Insights is the single aggregate object the presentation layer consumes.
type Insights struct {
	Patterns        []Pattern        `json:"patterns"`
	PositiveHabits  []Habit          `json:"positiveHabits"`
	Predictions     Predictions      `json:"predictions"`
	Recommendations []Recommendation `json:"recommendations"`
	Alerts          []Alert          `json:"alerts"`
}

// categoryActions maps dominant categories to a concrete cost-cutting
// suggestion; categories outside the table get a generic one.
var categoryActions = map[domain.Category]string{
	domain.CategoryMakanan:   "Try meal prepping and cooking at home more often.",
	domain.CategoryTransport: "Consider carpooling or using public transportation.",
	domain.CategoryHiburan:   "Look for free entertainment options or limit streaming subscriptions.",
	domain.CategoryKebutuhan: "Buy in bulk and wait for sales before shopping.",
}

// GenerateRecommendations produces personalized suggestions from the current
// month's behavior, ordered high priority first.
func GenerateRecommendations(txs []domain.Transaction, budgets []domain.Budget, goals []domain.SavingsGoal, currentMonth int) []Recommendation {
	var recs []Recommendation

	totals := MonthTotals(txs, currentMonth)
	savingsRate := SavingsRate(totals.Income, totals.Expense)

	if savingsRate < 10 {
		recs = append(recs, Recommendation{
			Type:            "savings",
			Priority:        PriorityHigh,
			Title:           "Increase Your Savings Rate",
			Description:     fmt.Sprintf("You're currently saving %d%% of your income. Aim for at least 20%%.", roundInt(savingsRate)),
			Action:          "Set up automatic savings transfer right after receiving income.",
			PotentialSaving: float64(roundInt(totals.Income * 0.1)),
		})
	}

	if len(budgets) == 0 {
		recs = append(recs, Recommendation{
			Type:        "budget",
			Priority:    PriorityHigh,
			Title:       "Create a Budget Plan",
			Description: "You don't have any budgets set. Budgeting helps control spending.",
			Action:      "Start by setting budgets for your top 3 spending categories.",
		})
	}

	byCategory := ExpenseByCategory(FilterMonth(txs, currentMonth))
	if cat, amount, ok := dominantCategory(byCategory); ok && amount > totals.Expense*0.4 {
		action, known := categoryActions[cat]
		if !known {
			action = "Review this category for cost-cutting opportunities."
		}
		recs = append(recs, Recommendation{
			Type:            "optimization",
			Priority:        PriorityMedium,
			Title:           fmt.Sprintf("Optimize %s Spending", cat),
			Description:     fmt.Sprintf("%s is your biggest expense at %s.", cat, FormatRupiah(amount)),
			Action:          action,
			PotentialSaving: float64(roundInt(amount * 0.2)),
		})
	}

	activeGoals := 0
	for _, g := range goals {
		if g.Status == domain.GoalActive {
			activeGoals++
		}
	}
	if activeGoals == 0 && savingsRate > 10 {
		recs = append(recs, Recommendation{
			Type:        "goals",
			Priority:    PriorityLow,
			Title:       "Set Savings Goals",
			Description: "You're saving money! Give it a purpose by setting specific goals.",
			Action:      "Create a goal for something you want to save for (laptop, vacation, etc.).",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank[recs[i].Priority] > priorityRank[recs[j].Priority]
	})
	return recs
}

// GenerateAlerts flags urgent issues: budgets exceeded or nearly so, overdue
// bills, and spending above income in the current month.
func GenerateAlerts(txs []domain.Transaction, budgets []domain.Budget, bills []domain.Bill, currentMonth int, now time.Time) []Alert {
	var alerts []Alert

	monthTxs := FilterMonth(txs, currentMonth)
	byCategory := ExpenseByCategory(monthTxs)

	for _, budget := range budgets {
		spent := byCategory[budget.Category]
		switch {
		case spent > budget.Amount:
			alerts = append(alerts, Alert{
				Type:     "budget_exceeded",
				Severity: SeverityError,
				Title:    fmt.Sprintf("%s Budget Exceeded", budget.Category),
				Message:  fmt.Sprintf("You've spent %s out of %s", FormatRupiah(spent), FormatRupiah(budget.Amount)),
			})
		case spent > budget.Amount*0.9:
			alerts = append(alerts, Alert{
				Type:     "budget_warning",
				Severity: SeverityWarning,
				Title:    fmt.Sprintf("%s Budget Almost Reached", budget.Category),
				Message:  fmt.Sprintf("You've used %d%% of your budget", roundInt(spent/budget.Amount*100)),
			})
		}
	}

	overdue := 0
	for _, b := range bills {
		if b.Overdue(now) {
			overdue++
		}
	}
	if overdue > 0 {
		alerts = append(alerts, Alert{
			Type:     "overdue_bills",
			Severity: SeverityError,
			Title:    "Overdue Bills",
			Message:  fmt.Sprintf("You have %d overdue %s", overdue, plural(overdue, "bill")),
		})
	}

	totals := MonthTotals(txs, currentMonth)
	if totals.Expense > totals.Income {
		alerts = append(alerts, Alert{
			Type:     "negative_balance",
			Severity: SeverityError,
			Title:    "Spending Exceeds Income",
			Message:  fmt.Sprintf("You're spending %s more than you earn this month", FormatRupiah(totals.Expense-totals.Income)),
		})
	}

	return alerts
}

// GenerateInsights composes the full analytics pass over one snapshot. The
// reference time fixes "now" and the current month for every sub-computation,
// so identical snapshots always produce identical insights.
func GenerateInsights(txs []domain.Transaction, budgets []domain.Budget, goals []domain.SavingsGoal, bills []domain.Bill, now time.Time) Insights {
	currentMonth := domain.MonthIndex(now)
	return Insights{
		Patterns:       DetectSpendingPatterns(txs),
		PositiveHabits: DetectPositiveHabits(txs, budgets, goals, currentMonth),
		Predictions: Predictions{
			NextMonth:  PredictNextMonthSpending(txs, currentMonth),
			ByCategory: PredictCategorySpending(txs, currentMonth),
		},
		Recommendations: GenerateRecommendations(txs, budgets, goals, currentMonth),
		Alerts:          GenerateAlerts(txs, budgets, bills, currentMonth, now),
	}
}
