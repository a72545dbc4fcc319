package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/pockit/internal/api/middleware"
	"github.com/dvloznov/pockit/internal/domain"
	"github.com/dvloznov/pockit/internal/tracker"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tracker.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tracker.ErrDuplicateBudget):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// TransactionsHandler handles transaction endpoints.
type TransactionsHandler struct {
	svc *tracker.Tracker
	log zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(svc *tracker.Tracker, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{svc: svc, log: log}
}

// List handles GET /api/transactions. An optional month query parameter
// (0-11) narrows the result to one month bucket.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 0 || month > 11 {
			middleware.WriteError(w, http.StatusBadRequest, "month must be 0-11")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, nonNil(h.svc.MonthTransactions(ctx, month)))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, nonNil(h.svc.Transactions(ctx)))
}

// Create handles POST /api/transactions. Category may be omitted to trigger
// auto-categorization.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      float64 `json:"amount"`
		Type        string  `json:"type"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
		Date        string  `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var date time.Time
	if req.Date != "" {
		var err error
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	tx, err := h.svc.AddTransaction(r.Context(), req.Amount, domain.TransactionType(req.Type), domain.Category(req.Category), req.Description, date)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to add transaction")
		middleware.WriteError(w, statusFor(err), err.Error())
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, tx)
}

// Delete handles DELETE /api/transactions/{id}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.DeleteTransaction(r.Context(), id); err != nil {
		middleware.WriteError(w, statusFor(err), err.Error())
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Categorize handles POST /api/categorize. It returns the best match plus up
// to three suggestions for the given description.
func (h *TransactionsHandler) Categorize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	typ := domain.TransactionType(req.Type)
	if req.Type == "" {
		typ = domain.TypeExpense
	}
	if !typ.Valid() {
		middleware.WriteError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"match":       h.svc.Categorize(req.Description, typ),
		"suggestions": h.svc.Suggest(req.Description, typ),
	})
}

// BudgetsHandler handles budget endpoints.
type BudgetsHandler struct {
	svc *tracker.Tracker
	log zerolog.Logger
}

// NewBudgetsHandler creates a new budgets handler.
func NewBudgetsHandler(svc *tracker.Tracker, log zerolog.Logger) *BudgetsHandler {
	return &BudgetsHandler{svc: svc, log: log}
}

// List handles GET /api/budgets.
func (h *BudgetsHandler) List(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, nonNil(h.svc.Budgets(r.Context())))
}

// Create handles POST /api/budgets.
func (h *BudgetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	budget, err := h.svc.CreateBudget(r.Context(), domain.Category(req.Category), req.Amount)
	if err != nil {
		middleware.WriteError(w, statusFor(err), err.Error())
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, budget)
}

// Delete handles DELETE /api/budgets/{id}.
func (h *BudgetsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.DeleteBudget(r.Context(), id); err != nil {
		middleware.WriteError(w, statusFor(err), err.Error())
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Forecasts handles GET /api/budgets/forecasts. Each entry projects when the
// budget will run out at the current spending rate.
func (h *BudgetsHandler) Forecasts(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.svc.BudgetForecasts(r.Context()))
}

// GoalsHandler handles savings goal endpoints.
type GoalsHandler struct {
	svc *tracker.Tracker
	log zerolog.Logger
}

// NewGoalsHandler creates a new goals handler.
func NewGoalsHandler(svc *tracker.Tracker, log zerolog.Logger) *GoalsHandler {
	return &GoalsHandler{svc: svc, log: log}
}

// List handles GET /api/goals.
func (h *GoalsHandler) List(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, nonNil(h.svc.Goals(r.Context())))
}

// Create handles POST /api/goals.
func (h *GoalsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string  `json:"name"`
		Icon         string  `json:"icon"`
		TargetAmount float64 `json:"targetAmount"`
		Deadline     string  `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	var deadline *time.Time
	if req.Deadline != "" {
		d, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "deadline must be YYYY-MM-DD")
			return
		}
		deadline = &d
	}

	goal, err := h.svc.CreateGoal(r.Context(), req.Name, req.Icon, req.TargetAmount, deadline)
	if err != nil {
		middleware.WriteError(w, statusFor(err), err.Error())
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, goal)
}

// Contribute handles POST /api/goals/{id}/contribute.
func (h *GoalsHandler) Contribute(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.svc.ContributeToGoal(r.Context(), id, req.Amount)
	if err != nil {
		middleware.WriteError(w, statusFor(err), err.Error())
		return
	}
	middleware.WriteJSON(w, http.StatusOK, goal)
}

// Delete handles DELETE /api/goals/{id}.
func (h *GoalsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.DeleteGoal(r.Context(), id); err != nil {
		middleware.WriteError(w, statusFor(err), err.Error())
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// BillsHandler handles bill reminder endpoints.
type BillsHandler struct {
	svc *tracker.Tracker
	log zerolog.Logger
}

// NewBillsHandler creates a new bills handler.
func NewBillsHandler(svc *tracker.Tracker, log zerolog.Logger) *BillsHandler {
	return &BillsHandler{svc: svc, log: log}
}

// List handles GET /api/bills. An optional upcoming=N query parameter limits
// the result to pending bills due within N days.
func (h *BillsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if daysStr := r.URL.Query().Get("upcoming"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 0 {
			middleware.WriteError(w, http.StatusBadRequest, "upcoming must be a non-negative integer")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, nonNil(h.svc.UpcomingBills(ctx, days)))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, nonNil(h.svc.Bills(ctx)))
}

// Create handles POST /api/bills.
func (h *BillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string  `json:"name"`
		Amount   float64 `json:"amount"`
		DueDate  string  `json:"dueDate"`
		Category string  `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "dueDate must be YYYY-MM-DD")
		return
	}

	bill, err := h.svc.AddBill(r.Context(), req.Name, req.Amount, dueDate, domain.Category(req.Category))
	if err != nil {
		middleware.WriteError(w, statusFor(err), err.Error())
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, bill)
}

// Pay handles POST /api/bills/{id}/pay.
func (h *BillsHandler) Pay(w http.ResponseWriter, r *http.Request, id string) {
	bill, err := h.svc.PayBill(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, statusFor(err), err.Error())
		return
	}
	middleware.WriteJSON(w, http.StatusOK, bill)
}

// Delete handles DELETE /api/bills/{id}.
func (h *BillsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.DeleteBill(r.Context(), id); err != nil {
		middleware.WriteError(w, statusFor(err), err.Error())
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// InsightsHandler handles dashboard, insight and backup endpoints.
type InsightsHandler struct {
	svc *tracker.Tracker
	log zerolog.Logger
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(svc *tracker.Tracker, log zerolog.Logger) *InsightsHandler {
	return &InsightsHandler{svc: svc, log: log}
}

// Dashboard handles GET /api/dashboard. The month query parameter (0-11)
// defaults to the current month.
func (h *InsightsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	month := domain.MonthIndex(time.Now())
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 0 || m > 11 {
			middleware.WriteError(w, http.StatusBadRequest, "month must be 0-11")
			return
		}
		month = m
	}

	middleware.WriteJSON(w, http.StatusOK, h.svc.Dashboard(r.Context(), month))
}

// Insights handles GET /api/insights.
func (h *InsightsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.svc.Insights(r.Context()))
}

// Export handles GET /api/export.
func (h *InsightsHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Export(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to export data")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to export data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="pockit-backup.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import handles POST /api/import. The body is a backup document produced by
// Export; it replaces all current data.
func (h *InsightsHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := h.svc.Import(r.Context(), data); err != nil {
		h.log.Error().Err(err).Msg("Failed to import backup")
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

// nonNil keeps empty list responses as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
