package domain

import "time"

// BillStatus is the lifecycle state of a bill reminder.
type BillStatus string

const (
	BillPending BillStatus = "pending"
	BillPaid    BillStatus = "paid"
)

// Bill is a recurring payment reminder with a due date. The pending→paid
// transition happens exactly once and stamps PaidAt.
type Bill struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Amount    float64    `json:"amount"`
	DueDate   time.Time  `json:"dueDate"`
	Category  Category   `json:"category"`
	Status    BillStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

// NewBill creates a pending bill.
func NewBill(name string, amount float64, dueDate time.Time, category Category, now time.Time) Bill {
	return Bill{
		ID:        NewID(now),
		Name:      name,
		Amount:    amount,
		DueDate:   dueDate,
		Category:  category,
		Status:    BillPending,
		CreatedAt: now,
	}
}

// MarkPaid transitions the bill to paid and reports whether the transition
// happened. Paying an already-paid bill is a no-op.
func (b *Bill) MarkPaid(now time.Time) bool {
	if b.Status == BillPaid {
		return false
	}
	b.Status = BillPaid
	ts := now
	b.PaidAt = &ts
	return true
}

// Overdue reports whether the bill is pending and past its due date.
func (b *Bill) Overdue(now time.Time) bool {
	return b.Status == BillPending && b.DueDate.Before(now)
}
