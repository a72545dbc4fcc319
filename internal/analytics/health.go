package analytics

import "github.com/dvloznov/pockit/internal/domain"

// HealthInput carries the pre-aggregated ratios the scorer works from. The
// emergency-fund condition (balance >= 3x expenses) is computed by the caller
// and passed in; the scorer never recomputes it.
type HealthInput struct {
	TotalIncome      float64
	TotalExpense     float64
	BudgetAdherence  float64
	SavingsRate      float64
	HasEmergencyFund bool
}

// HealthBreakdown is the per-metric decomposition of the health score.
type HealthBreakdown struct {
	SavingsScore       int `json:"savingsScore"`       // max 30
	ExpenseRatioScore  int `json:"expenseRatioScore"`  // max 30
	BudgetScore        int `json:"budgetScore"`        // max 25
	EmergencyFundScore int `json:"emergencyFundScore"` // max 15
}

// Grade is the letter grade derived from the total score. Color is a display
// hint only; no logic elsewhere consumes it.
type Grade struct {
	Letter string `json:"letter"`
	Label  string `json:"label"`
	Color  string `json:"color"`
}

// HealthScore is the weighted 0-100 composite of the four dimensions.
type HealthScore struct {
	Score     int             `json:"score"`
	Breakdown HealthBreakdown `json:"breakdown"`
	Grade     Grade           `json:"grade"`
}

// Score computes the financial health score from the four independently
// scored dimensions, capped at 100.
func Score(in HealthInput) HealthScore {
	b := HealthBreakdown{
		SavingsScore:      savingsScore(in.SavingsRate),
		ExpenseRatioScore: expenseRatioScore(in.TotalIncome, in.TotalExpense),
		BudgetScore:       budgetScore(in.BudgetAdherence),
	}
	if in.HasEmergencyFund {
		b.EmergencyFundScore = 15
	}

	total := b.SavingsScore + b.ExpenseRatioScore + b.BudgetScore + b.EmergencyFundScore
	if total > 100 {
		total = 100
	}

	return HealthScore{
		Score:     total,
		Breakdown: b,
		Grade:     gradeFor(total),
	}
}

func savingsScore(rate float64) int {
	switch {
	case rate >= 30:
		return 30
	case rate >= 20:
		return 25
	case rate >= 10:
		return 15
	case rate >= 5:
		return 5
	default:
		return 0
	}
}

func expenseRatioScore(income, expense float64) int {
	// No income with any spending is the worst case, not a division blowup.
	ratio := 100.0
	if income > 0 {
		ratio = expense / income * 100
	}
	switch {
	case ratio <= 60:
		return 30
	case ratio <= 70:
		return 25
	case ratio <= 85:
		return 15
	case ratio <= 100:
		return 5
	default:
		return 0
	}
}

func budgetScore(adherence float64) int {
	switch {
	case adherence >= 95:
		return 25
	case adherence >= 90:
		return 20
	case adherence >= 75:
		return 12
	case adherence >= 50:
		return 5
	default:
		return 0
	}
}

func gradeFor(score int) Grade {
	switch {
	case score >= 90:
		return Grade{"A+", "Excellent", "green"}
	case score >= 80:
		return Grade{"A", "Very Good", "green"}
	case score >= 70:
		return Grade{"B+", "Good", "blue"}
	case score >= 60:
		return Grade{"B", "Above Average", "blue"}
	case score >= 50:
		return Grade{"C", "Average", "yellow"}
	case score >= 40:
		return Grade{"D", "Below Average", "orange"}
	default:
		return Grade{"F", "Poor", "red"}
	}
}

// SavingsRate returns the saved share of income as a percentage, 0 when there
// is no income.
func SavingsRate(income, expense float64) float64 {
	if income == 0 {
		return 0
	}
	return (income - expense) / income * 100
}

// BudgetAdherence returns the percentage of budgeted categories whose spend
// stayed within the ceiling. No budgets means nothing was violated: 100.
func BudgetAdherence(budgets []domain.Budget, expenseByCategory map[domain.Category]float64) float64 {
	if len(budgets) == 0 {
		return 100
	}
	adherent := 0
	for _, b := range budgets {
		if expenseByCategory[b.Category] <= b.Amount {
			adherent++
		}
	}
	return float64(adherent) / float64(len(budgets)) * 100
}
