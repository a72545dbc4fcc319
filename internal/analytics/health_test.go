package analytics

import (
	"testing"
	"time"

	"github.com/dvloznov/pockit/internal/domain"
)

func TestSavingsRate(t *testing.T) {
	tests := []struct {
		name    string
		income  float64
		expense float64
		want    float64
	}{
		{"no income", 0, 500000, 0},
		{"quarter saved", 1000000, 750000, 25},
		{"everything spent", 1000000, 1000000, 0},
		{"overspending goes negative", 1000000, 1200000, -20},
		{"nothing spent", 1000000, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SavingsRate(tt.income, tt.expense); got != tt.want {
				t.Errorf("SavingsRate(%v, %v) = %v, want %v", tt.income, tt.expense, got, tt.want)
			}
		})
	}
}

func TestBudgetAdherence(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	budgets := []domain.Budget{
		domain.NewBudget(domain.CategoryMakanan, 500000, now),
		domain.NewBudget(domain.CategoryTransport, 200000, now),
	}

	tests := []struct {
		name    string
		budgets []domain.Budget
		spend   map[domain.Category]float64
		want    float64
	}{
		{"no budgets means full adherence", nil, nil, 100},
		{
			name:    "all within ceiling",
			budgets: budgets,
			spend:   map[domain.Category]float64{domain.CategoryMakanan: 400000, domain.CategoryTransport: 200000},
			want:    100,
		},
		{
			name:    "one of two exceeded",
			budgets: budgets,
			spend:   map[domain.Category]float64{domain.CategoryMakanan: 600000, domain.CategoryTransport: 100000},
			want:    50,
		},
		{
			name:    "unspent category counts as adherent",
			budgets: budgets,
			spend:   map[domain.Category]float64{domain.CategoryMakanan: 600000},
			want:    50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BudgetAdherence(tt.budgets, tt.spend); got != tt.want {
				t.Errorf("BudgetAdherence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name          string
		in            HealthInput
		wantScore     int
		wantLetter    string
		wantBreakdown HealthBreakdown
	}{
		{
			name: "perfect score",
			in: HealthInput{
				TotalIncome:      1000000,
				TotalExpense:     500000,
				BudgetAdherence:  100,
				SavingsRate:      50,
				HasEmergencyFund: true,
			},
			wantScore:  100,
			wantLetter: "A+",
			wantBreakdown: HealthBreakdown{
				SavingsScore:       30,
				ExpenseRatioScore:  30,
				BudgetScore:        25,
				EmergencyFundScore: 15,
			},
		},
		{
			name: "spending double the income",
			in: HealthInput{
				TotalIncome:     1000000,
				TotalExpense:    2000000,
				BudgetAdherence: 0,
				SavingsRate:     -100,
			},
			wantScore:     0,
			wantLetter:    "F",
			wantBreakdown: HealthBreakdown{},
		},
		{
			name: "no income with spending is worst expense ratio",
			in: HealthInput{
				TotalIncome:     0,
				TotalExpense:    300000,
				BudgetAdherence: 100,
				SavingsRate:     0,
			},
			wantScore:  30,
			wantLetter: "F",
			wantBreakdown: HealthBreakdown{
				ExpenseRatioScore: 5,
				BudgetScore:       25,
			},
		},
		{
			name: "mid range",
			in: HealthInput{
				TotalIncome:     1000000,
				TotalExpense:    800000,
				BudgetAdherence: 80,
				SavingsRate:     20,
			},
			wantScore:  52,
			wantLetter: "C",
			wantBreakdown: HealthBreakdown{
				SavingsScore:      25,
				ExpenseRatioScore: 15,
				BudgetScore:       12,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.in)
			if got.Score != tt.wantScore {
				t.Errorf("Score() = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Breakdown != tt.wantBreakdown {
				t.Errorf("Breakdown = %+v, want %+v", got.Breakdown, tt.wantBreakdown)
			}
			if got.Grade.Letter != tt.wantLetter {
				t.Errorf("Grade = %q, want %q", got.Grade.Letter, tt.wantLetter)
			}
		})
	}
}

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "A+"}, {90, "A+"}, {89, "A"}, {80, "A"},
		{79, "B+"}, {70, "B+"}, {69, "B"}, {60, "B"},
		{59, "C"}, {50, "C"}, {49, "D"}, {40, "D"},
		{39, "F"}, {0, "F"},
	}

	for _, tt := range tests {
		if got := gradeFor(tt.score); got.Letter != tt.want {
			t.Errorf("gradeFor(%d) = %q, want %q", tt.score, got.Letter, tt.want)
		}
	}
}
