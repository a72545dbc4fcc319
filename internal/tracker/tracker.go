// Package tracker is the application service over the four collections. It
// owns the load → mutate → persist cycle against the blob store, enforces
// entity lifecycles, and hands read-only snapshots to the analytics engine.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog"

	"github.com/dvloznov/pockit/internal/analytics"
	"github.com/dvloznov/pockit/internal/categorizer"
	"github.com/dvloznov/pockit/internal/domain"
	"github.com/dvloznov/pockit/internal/store"
)

var (
	// ErrNotFound is returned when an entity ID does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateBudget is returned when a category is already budgeted.
	// At most one budget per category keeps adherence and alerts
	// unambiguous.
	ErrDuplicateBudget = errors.New("budget already exists for this category")
)

// Tracker serializes read-modify-write cycles against the blob store. The
// store only has whole-blob semantics, so the mutex is what makes concurrent
// API calls safe.
type Tracker struct {
	bs    store.BlobStore
	match *categorizer.Matcher
	log   zerolog.Logger
	now   func() time.Time

	mu    sync.Mutex
	rev   uint64
	cache *ristretto.Cache
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New creates a tracker over the given blob store.
func New(bs store.BlobStore, log zerolog.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		bs:    bs,
		match: categorizer.NewMatcher(),
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	// Insight memoization. The cache is best-effort: if it cannot be built
	// we just recompute every pass.
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1 << 12,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})
	if err != nil {
		log.Warn().Err(err).Msg("insight cache disabled")
	} else {
		t.cache = cache
	}
	return t
}

// --- transactions ---

// AddTransaction validates and stores a new transaction. An empty category
// triggers auto-categorization from the description, falling back to
// "Lainnya" when nothing matches. The month bucket is stamped from date once,
// here, and never re-derived.
func (t *Tracker) AddTransaction(ctx context.Context, amount float64, typ domain.TransactionType, category domain.Category, description string, date time.Time) (domain.Transaction, error) {
	if amount < 0 {
		return domain.Transaction{}, fmt.Errorf("amount must not be negative")
	}
	if !typ.Valid() {
		return domain.Transaction{}, fmt.Errorf("unknown transaction type %q", typ)
	}
	if date.IsZero() {
		date = t.now()
	}

	if category == "" {
		if m := t.match.Categorize(description, typ); m.Category != "" {
			category = m.Category
			t.log.Debug().
				Str("category", string(m.Category)).
				Int("confidence", m.Confidence).
				Msg("auto-categorized transaction")
		} else {
			category = domain.CategoryLainnya
		}
	}
	if !domain.ValidCategory(typ, category) {
		return domain.Transaction{}, fmt.Errorf("category %q is not valid for type %q", category, typ)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	txs := store.LoadTransactions(ctx, t.bs)
	tx := domain.NewTransaction(amount, typ, category, description, date)
	txs = append(txs, tx)
	if err := store.SaveTransactions(ctx, t.bs, txs); err != nil {
		return domain.Transaction{}, err
	}
	t.rev++
	return tx, nil
}

// DeleteTransaction removes a transaction by ID.
func (t *Tracker) DeleteTransaction(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	txs := store.LoadTransactions(ctx, t.bs)
	kept := txs[:0]
	for _, tx := range txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	if len(kept) == len(txs) {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	if err := store.SaveTransactions(ctx, t.bs, kept); err != nil {
		return err
	}
	t.rev++
	return nil
}

// Transactions returns the full transaction snapshot.
func (t *Tracker) Transactions(ctx context.Context) []domain.Transaction {
	return store.LoadTransactions(ctx, t.bs)
}

// MonthTransactions returns the transactions bucketed into the given month.
func (t *Tracker) MonthTransactions(ctx context.Context, month int) []domain.Transaction {
	return analytics.FilterMonth(store.LoadTransactions(ctx, t.bs), month)
}

// Suggest proposes up to three categories for a description.
func (t *Tracker) Suggest(description string, typ domain.TransactionType) []categorizer.Match {
	return t.match.Suggest(description, typ)
}

// Categorize returns the single best category match, if any clears the
// confidence floor.
func (t *Tracker) Categorize(description string, typ domain.TransactionType) categorizer.Match {
	return t.match.Categorize(description, typ)
}

// --- budgets ---

// CreateBudget stores a spending ceiling for an expense category. A category
// can carry at most one budget.
func (t *Tracker) CreateBudget(ctx context.Context, category domain.Category, amount float64) (domain.Budget, error) {
	if amount <= 0 {
		return domain.Budget{}, fmt.Errorf("budget amount must be positive")
	}
	if !domain.ValidCategory(domain.TypeExpense, category) {
		return domain.Budget{}, fmt.Errorf("category %q is not an expense category", category)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	budgets := store.LoadBudgets(ctx, t.bs)
	for _, b := range budgets {
		if b.Category == category {
			return domain.Budget{}, fmt.Errorf("category %q: %w", category, ErrDuplicateBudget)
		}
	}

	budget := domain.NewBudget(category, amount, t.now())
	budgets = append(budgets, budget)
	if err := store.SaveBudgets(ctx, t.bs, budgets); err != nil {
		return domain.Budget{}, err
	}
	t.rev++
	return budget, nil
}

// DeleteBudget removes a budget by ID.
func (t *Tracker) DeleteBudget(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	budgets := store.LoadBudgets(ctx, t.bs)
	kept := budgets[:0]
	for _, b := range budgets {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(budgets) {
		return fmt.Errorf("budget %s: %w", id, ErrNotFound)
	}
	if err := store.SaveBudgets(ctx, t.bs, kept); err != nil {
		return err
	}
	t.rev++
	return nil
}

// Budgets returns the budget snapshot.
func (t *Tracker) Budgets(ctx context.Context) []domain.Budget {
	return store.LoadBudgets(ctx, t.bs)
}

// BudgetForecasts projects, per budget ID, when the remaining budget will run
// out given the current month's spend and the category's historical rate.
func (t *Tracker) BudgetForecasts(ctx context.Context) map[string]*analytics.BudgetProjection {
	now := t.now()
	txs := store.LoadTransactions(ctx, t.bs)
	byCategory := analytics.ExpenseByCategory(analytics.FilterMonth(txs, domain.MonthIndex(now)))

	out := make(map[string]*analytics.BudgetProjection)
	for _, b := range store.LoadBudgets(ctx, t.bs) {
		out[b.ID] = analytics.PredictBudgetExceed(b, byCategory[b.Category], txs, now)
	}
	return out
}

// --- savings goals ---

// CreateGoal stores a new active savings goal with zero progress.
func (t *Tracker) CreateGoal(ctx context.Context, name, icon string, target float64, deadline *time.Time) (domain.SavingsGoal, error) {
	if target <= 0 {
		return domain.SavingsGoal{}, fmt.Errorf("target amount must be positive")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	goals := store.LoadGoals(ctx, t.bs)
	goal := domain.NewSavingsGoal(name, icon, target, deadline, t.now())
	goals = append(goals, goal)
	if err := store.SaveGoals(ctx, t.bs, goals); err != nil {
		return domain.SavingsGoal{}, err
	}
	t.rev++
	return goal, nil
}

// ContributeToGoal adds amount to a goal's progress. Reaching the target
// flips the goal to completed, once.
func (t *Tracker) ContributeToGoal(ctx context.Context, id string, amount float64) (domain.SavingsGoal, error) {
	if amount <= 0 {
		return domain.SavingsGoal{}, fmt.Errorf("contribution must be positive")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	goals := store.LoadGoals(ctx, t.bs)
	for i := range goals {
		if goals[i].ID != id {
			continue
		}
		if completed := goals[i].Contribute(amount, t.now()); completed {
			t.log.Info().Str("goal", goals[i].Name).Msg("savings goal completed")
		}
		if err := store.SaveGoals(ctx, t.bs, goals); err != nil {
			return domain.SavingsGoal{}, err
		}
		t.rev++
		return goals[i], nil
	}
	return domain.SavingsGoal{}, fmt.Errorf("goal %s: %w", id, ErrNotFound)
}

// DeleteGoal removes a goal by ID.
func (t *Tracker) DeleteGoal(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	goals := store.LoadGoals(ctx, t.bs)
	kept := goals[:0]
	for _, g := range goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(goals) {
		return fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	if err := store.SaveGoals(ctx, t.bs, kept); err != nil {
		return err
	}
	t.rev++
	return nil
}

// Goals returns the goal snapshot.
func (t *Tracker) Goals(ctx context.Context) []domain.SavingsGoal {
	return store.LoadGoals(ctx, t.bs)
}

// ActiveGoals returns the goals still in progress.
func (t *Tracker) ActiveGoals(ctx context.Context) []domain.SavingsGoal {
	var out []domain.SavingsGoal
	for _, g := range store.LoadGoals(ctx, t.bs) {
		if g.Status == domain.GoalActive {
			out = append(out, g)
		}
	}
	return out
}

// --- bills ---

// AddBill stores a new pending bill reminder.
func (t *Tracker) AddBill(ctx context.Context, name string, amount float64, dueDate time.Time, category domain.Category) (domain.Bill, error) {
	if amount <= 0 {
		return domain.Bill{}, fmt.Errorf("bill amount must be positive")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	bills := store.LoadBills(ctx, t.bs)
	bill := domain.NewBill(name, amount, dueDate, category, t.now())
	bills = append(bills, bill)
	if err := store.SaveBills(ctx, t.bs, bills); err != nil {
		return domain.Bill{}, err
	}
	t.rev++
	return bill, nil
}

// PayBill marks a bill paid. Paying twice is a no-op that still returns the
// bill.
func (t *Tracker) PayBill(ctx context.Context, id string) (domain.Bill, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	bills := store.LoadBills(ctx, t.bs)
	for i := range bills {
		if bills[i].ID != id {
			continue
		}
		if bills[i].MarkPaid(t.now()) {
			if err := store.SaveBills(ctx, t.bs, bills); err != nil {
				return domain.Bill{}, err
			}
			t.rev++
		}
		return bills[i], nil
	}
	return domain.Bill{}, fmt.Errorf("bill %s: %w", id, ErrNotFound)
}

// DeleteBill removes a bill by ID.
func (t *Tracker) DeleteBill(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	bills := store.LoadBills(ctx, t.bs)
	kept := bills[:0]
	for _, b := range bills {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(bills) {
		return fmt.Errorf("bill %s: %w", id, ErrNotFound)
	}
	if err := store.SaveBills(ctx, t.bs, kept); err != nil {
		return err
	}
	t.rev++
	return nil
}

// Bills returns the bill snapshot.
func (t *Tracker) Bills(ctx context.Context) []domain.Bill {
	return store.LoadBills(ctx, t.bs)
}

// OverdueBills returns pending bills whose due date has passed.
func (t *Tracker) OverdueBills(ctx context.Context) []domain.Bill {
	now := t.now()

	var out []domain.Bill
	for _, b := range store.LoadBills(ctx, t.bs) {
		if b.Overdue(now) {
			out = append(out, b)
		}
	}
	return out
}

// UpcomingBills returns pending bills due within daysAhead days from now.
func (t *Tracker) UpcomingBills(ctx context.Context, daysAhead int) []domain.Bill {
	now := t.now()
	cutoff := now.AddDate(0, 0, daysAhead)

	var out []domain.Bill
	for _, b := range store.LoadBills(ctx, t.bs) {
		if b.Status == domain.BillPending && !b.DueDate.Before(now) && !b.DueDate.After(cutoff) {
			out = append(out, b)
		}
	}
	return out
}

// --- derived views ---

// Message is one quick insight line on the dashboard.
type Message struct {
	Type    string `json:"type"` // "success" or "warning"
	Message string `json:"message"`
}

// Dashboard is the per-month summary the UI renders.
type Dashboard struct {
	Month             int                         `json:"month"`
	Totals            analytics.Totals            `json:"totals"`
	ExpenseByCategory map[domain.Category]float64 `json:"expenseByCategory"`
	SavingsRate       float64                     `json:"savingsRate"`
	BudgetAdherence   float64                     `json:"budgetAdherence"`
	HasEmergencyFund  bool                        `json:"hasEmergencyFund"`
	Health            analytics.HealthScore       `json:"health"`
	Messages          []Message                   `json:"messages"`
}

// Dashboard assembles the summary for one month bucket.
func (t *Tracker) Dashboard(ctx context.Context, month int) Dashboard {
	txs := store.LoadTransactions(ctx, t.bs)
	budgets := store.LoadBudgets(ctx, t.bs)

	totals := analytics.MonthTotals(txs, month)
	byCategory := analytics.ExpenseByCategory(analytics.FilterMonth(txs, month))
	savingsRate := analytics.SavingsRate(totals.Income, totals.Expense)
	adherence := analytics.BudgetAdherence(budgets, byCategory)
	emergencyFund := totals.Balance >= totals.Expense*3

	health := analytics.Score(analytics.HealthInput{
		TotalIncome:      totals.Income,
		TotalExpense:     totals.Expense,
		BudgetAdherence:  adherence,
		SavingsRate:      savingsRate,
		HasEmergencyFund: emergencyFund,
	})

	return Dashboard{
		Month:             month,
		Totals:            totals,
		ExpenseByCategory: byCategory,
		SavingsRate:       savingsRate,
		BudgetAdherence:   adherence,
		HasEmergencyFund:  emergencyFund,
		Health:            health,
		Messages:          dashboardMessages(savingsRate, adherence, emergencyFund),
	}
}

func dashboardMessages(savingsRate, adherence float64, emergencyFund bool) []Message {
	var out []Message
	if savingsRate >= 20 {
		out = append(out, Message{"success", "Great savings rate! You're saving 20%+ of your income."})
	} else if savingsRate < 5 {
		out = append(out, Message{"warning", "Try to save at least 10% of your income."})
	}

	if adherence >= 90 {
		out = append(out, Message{"success", "Excellent budget discipline!"})
	} else if adherence < 50 {
		out = append(out, Message{"warning", "You're exceeding many budgets."})
	}

	if emergencyFund {
		out = append(out, Message{"success", "You have a solid emergency fund!"})
	} else {
		out = append(out, Message{"warning", "Build an emergency fund (3 months of expenses)."})
	}
	return out
}

// Insights runs the full analytics pass over the current snapshot. Results
// are memoized per snapshot revision and calendar day, since the engine is
// deterministic given the same collections and reference date.
func (t *Tracker) Insights(ctx context.Context) analytics.Insights {
	now := t.now()

	t.mu.Lock()
	key := fmt.Sprintf("insights:%d:%s", t.rev, now.Format("2006-01-02"))
	if t.cache != nil {
		if cached, ok := t.cache.Get(key); ok {
			t.mu.Unlock()
			return cached.(analytics.Insights)
		}
	}

	txs := store.LoadTransactions(ctx, t.bs)
	budgets := store.LoadBudgets(ctx, t.bs)
	goals := store.LoadGoals(ctx, t.bs)
	bills := store.LoadBills(ctx, t.bs)
	t.mu.Unlock()

	insights := analytics.GenerateInsights(txs, budgets, goals, bills, now)
	if t.cache != nil {
		t.cache.Set(key, insights, int64(len(txs)+1))
	}
	return insights
}

// --- export / import ---

// Export packages all four collections as one JSON document.
func (t *Tracker) Export(ctx context.Context) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return store.Export(ctx, t.bs, t.now())
}

// Import overwrites all four collections from an export document.
func (t *Tracker) Import(ctx context.Context, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := store.Import(ctx, t.bs, data); err != nil {
		return err
	}
	t.rev++
	return nil
}
