package domain

import "time"

// Budget is a monthly spending ceiling for one expense category. Budgets are
// created and deleted by user action and never auto-expire. The tracker
// rejects a second budget for a category that already has one, so downstream
// adherence and alert logic can assume at most one budget per category.
type Budget struct {
	ID        string    `json:"id"`
	Category  Category  `json:"category"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewBudget creates a budget for the given expense category.
func NewBudget(category Category, amount float64, now time.Time) Budget {
	return Budget{
		ID:        NewID(now),
		Category:  category,
		Amount:    amount,
		CreatedAt: now,
	}
}
