package analytics

import (
	"math"
	"time"

	"github.com/dvloznov/pockit/internal/domain"
)

// Trend directions for the next-month forecast.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

// Forecast is the next-month spending projection. Historical holds the
// non-zero totals of the trailing window, most recent first.
type Forecast struct {
	Amount          float64   `json:"amount"`
	Confidence      string    `json:"confidence"` // "high" or "low"
	Trend           string    `json:"trend"`
	TrendPercentage int       `json:"trendPercentage"`
	Historical      []float64 `json:"historical"`
}

// BudgetProjection estimates when a budget will be exceeded based on the
// category's observed spend rate.
type BudgetProjection struct {
	Exceeded            bool    `json:"exceeded"`
	DaysAgo             int     `json:"daysAgo,omitempty"`
	DaysUntilExceed     int     `json:"daysUntilExceed,omitempty"`
	WillExceedThisMonth bool    `json:"willExceedThisMonth,omitempty"`
	ProjectedTotal      float64 `json:"projectedTotal,omitempty"`
}

// PredictNextMonthSpending projects next month's total expense from the three
// months preceding currentMonth. Returns nil when there is no history to
// project from. The projection is a moving average, pulled up or down by half
// the recent trend when that trend moved more than 10%.
func PredictNextMonthSpending(txs []domain.Transaction, currentMonth int) *Forecast {
	if len(txs) == 0 {
		return nil
	}

	months := trailingExpenseTotals(txs, currentMonth, nil)
	nonZero := 0
	var sum float64
	for _, m := range months {
		sum += m
		if m > 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		return nil
	}

	average := sum / float64(nonZero)

	// months[0] is last month, months[1] two months ago.
	trend := TrendDecreasing
	if months[0] > months[1] {
		trend = TrendIncreasing
	}
	trendPct := 0.0
	if months[1] > 0 {
		trendPct = (months[0] - months[1]) / months[1] * 100
	}

	prediction := average
	if math.Abs(trendPct) > 10 {
		prediction = average * (1 + trendPct/100*0.5)
	}

	confidence := "low"
	if nonZero >= 2 {
		confidence = "high"
	}

	historical := make([]float64, 0, 3)
	for _, m := range months {
		if m > 0 {
			historical = append(historical, m)
		}
	}

	return &Forecast{
		Amount:          math.Round(prediction),
		Confidence:      confidence,
		Trend:           trend,
		TrendPercentage: roundInt(math.Abs(trendPct)),
		Historical:      historical,
	}
}

// PredictCategorySpending projects next month's spend per category as the
// average of the category's non-zero totals over the trailing window.
// Categories with no spend in the window are omitted.
func PredictCategorySpending(txs []domain.Transaction, currentMonth int) map[domain.Category]float64 {
	seen := make(map[domain.Category]bool)
	for _, t := range txs {
		if t.Type == domain.TypeExpense {
			seen[t.Category] = true
		}
	}

	out := make(map[domain.Category]float64)
	for cat := range seen {
		c := cat
		months := trailingExpenseTotals(txs, currentMonth, &c)
		var sum float64
		nonZero := 0
		for _, m := range months {
			if m > 0 {
				sum += m
				nonZero++
			}
		}
		if nonZero > 0 {
			out[cat] = math.Round(sum / float64(nonZero))
		}
	}
	return out
}

// PredictBudgetExceed projects whether the remaining budget will run out
// before month-end. The daily rate is total category spend divided by an
// approximate active window: the largest day-of-month distance between now
// and the category's transactions, floored at one day. Returns nil when the
// category has no history or no measurable spend rate.
func PredictBudgetExceed(budget domain.Budget, currentSpent float64, txs []domain.Transaction, now time.Time) *BudgetProjection {
	if currentSpent >= budget.Amount {
		return &BudgetProjection{Exceeded: true, DaysAgo: 0}
	}

	var totalSpent float64
	daysActive := 0
	found := false
	for _, t := range txs {
		if t.Type != domain.TypeExpense || t.Category != budget.Category {
			continue
		}
		found = true
		totalSpent += t.Amount
		if d := now.Day() - t.Date.Day(); d > daysActive {
			daysActive = d
		}
	}
	if !found {
		return nil
	}
	if daysActive < 1 {
		daysActive = 1
	}

	dailyAverage := totalSpent / float64(daysActive)
	if dailyAverage <= 0 {
		return nil
	}

	remaining := budget.Amount - currentSpent
	daysUntilExceed := int(math.Ceil(remaining / dailyAverage))
	if daysUntilExceed < 0 {
		daysUntilExceed = 0
	}

	daysInMonth := daysIn(now)
	daysLeft := daysInMonth - now.Day()

	return &BudgetProjection{
		Exceeded:            false,
		DaysUntilExceed:     daysUntilExceed,
		WillExceedThisMonth: daysUntilExceed < daysLeft,
		ProjectedTotal:      math.Round(currentSpent + dailyAverage*float64(daysLeft)),
	}
}

// trailingExpenseTotals returns expense totals for the three months before
// currentMonth, most recent first, optionally restricted to one category.
// Month arithmetic wraps the year boundary modulo 12.
func trailingExpenseTotals(txs []domain.Transaction, currentMonth int, category *domain.Category) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		month := (currentMonth - 1 - i + 12) % 12
		var sum float64
		for _, t := range txs {
			if t.Month != month || t.Type != domain.TypeExpense {
				continue
			}
			if category != nil && t.Category != *category {
				continue
			}
			sum += t.Amount
		}
		out[i] = sum
	}
	return out
}

// daysIn returns the number of days in the month of t.
func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
