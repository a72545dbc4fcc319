package domain

import "time"

// GoalStatus is the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
)

// SavingsGoal tracks progress toward a named target amount. CurrentAmount
// only ever grows through Contribute, and the active→completed transition
// happens exactly once, when the target is reached.
type SavingsGoal struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Icon          string     `json:"icon"`
	TargetAmount  float64    `json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Status        GoalStatus `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// NewSavingsGoal creates an active goal with zero progress.
func NewSavingsGoal(name, icon string, target float64, deadline *time.Time, now time.Time) SavingsGoal {
	return SavingsGoal{
		ID:           NewID(now),
		Name:         name,
		Icon:         icon,
		TargetAmount: target,
		Status:       GoalActive,
		CreatedAt:    now,
		Deadline:     deadline,
	}
}

// Contribute adds amount to the goal's progress and reports whether this
// contribution completed the goal. A completed goal never transitions back.
func (g *SavingsGoal) Contribute(amount float64, now time.Time) (completed bool) {
	g.CurrentAmount += amount
	if g.Status == GoalActive && g.CurrentAmount >= g.TargetAmount {
		g.Status = GoalCompleted
		ts := now
		g.CompletedAt = &ts
		return true
	}
	return false
}

// Remaining returns the amount still needed to reach the target, never
// negative.
func (g *SavingsGoal) Remaining() float64 {
	if g.CurrentAmount >= g.TargetAmount {
		return 0
	}
	return g.TargetAmount - g.CurrentAmount
}
