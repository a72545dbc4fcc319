package categorizer

import (
	"reflect"
	"testing"

	"github.com/dvloznov/pockit/internal/domain"
)

func TestCategorize(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name           string
		description    string
		typ            domain.TransactionType
		wantCategory   domain.Category
		wantConfidence int
	}{
		{
			name:           "multiple whole-word hits saturate confidence",
			description:    "makan siang di warteg",
			typ:            domain.TypeExpense,
			wantCategory:   domain.CategoryMakanan,
			wantConfidence: 100,
		},
		{
			name:           "single whole-word hit",
			description:    "kopi",
			typ:            domain.TypeExpense,
			wantCategory:   domain.CategoryMakanan,
			wantConfidence: 50,
		},
		{
			name:           "substring plus whole word",
			description:    "gojek ke kampus",
			typ:            domain.TypeExpense,
			wantCategory:   domain.CategoryTransport,
			wantConfidence: 75,
		},
		{
			name:         "no keyword matches",
			description:  "qwerty",
			typ:          domain.TypeExpense,
			wantCategory: "",
		},
		{
			name:         "single substring hit stays below the floor",
			description:  "parkiran",
			typ:          domain.TypeExpense,
			wantCategory: "",
		},
		{
			name:         "empty description",
			description:  "   ",
			typ:          domain.TypeExpense,
			wantCategory: "",
		},
		{
			name:           "income table is separate",
			description:    "gaji part time",
			typ:            domain.TypeIncome,
			wantCategory:   domain.CategoryKerjaSampingan,
			wantConfidence: 100,
		},
		{
			name:           "case insensitive",
			description:    "NONTON BIOSKOP",
			typ:            domain.TypeExpense,
			wantCategory:   domain.CategoryHiburan,
			wantConfidence: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Categorize(tt.description, tt.typ)
			if got.Category != tt.wantCategory {
				t.Fatalf("Categorize(%q) category = %q, want %q", tt.description, got.Category, tt.wantCategory)
			}
			if tt.wantCategory != "" && got.Confidence != tt.wantConfidence {
				t.Errorf("Categorize(%q) confidence = %d, want %d", tt.description, got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestCategorizeIsDeterministic(t *testing.T) {
	m := NewMatcher()

	first := m.Categorize("makan siang di warteg", domain.TypeExpense)
	for i := 0; i < 5; i++ {
		if got := m.Categorize("makan siang di warteg", domain.TypeExpense); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed: got %+v, want %+v", i, got, first)
		}
	}
}

func TestSuggest(t *testing.T) {
	m := NewMatcher()

	t.Run("ordered by confidence, no floor", func(t *testing.T) {
		got := m.Suggest("gojek ke kampus", domain.TypeExpense)
		want := []Match{
			{Category: domain.CategoryTransport, Confidence: 75},
			{Category: domain.CategoryKuliah, Confidence: 50},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Suggest() = %+v, want %+v", got, want)
		}
	})

	t.Run("below-floor candidates still appear", func(t *testing.T) {
		got := m.Suggest("parkiran", domain.TypeExpense)
		want := []Match{
			{Category: domain.CategoryTransport, Confidence: 25},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Suggest() = %+v, want %+v", got, want)
		}
	})

	t.Run("at most three suggestions", func(t *testing.T) {
		// "top up" hits Kebutuhan, "game" Hiburan, "transfer" Lainnya,
		// "print" Kuliah.
		got := m.Suggest("top up game transfer print", domain.TypeExpense)
		if len(got) != 3 {
			t.Fatalf("Suggest() returned %d matches, want 3", len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i].Confidence > got[i-1].Confidence {
				t.Errorf("suggestions not sorted: %+v", got)
			}
		}
	})

	t.Run("no matches", func(t *testing.T) {
		if got := m.Suggest("qwerty", domain.TypeExpense); got != nil {
			t.Errorf("Suggest() = %+v, want nil", got)
		}
	})
}

func TestContainsWholeWord(t *testing.T) {
	tests := []struct {
		desc string
		kw   string
		want bool
	}{
		{"makan siang", "makan", true},
		{"gojek", "ojek", false},   // preceded by a letter
		{"parkiran", "parkir", false}, // followed by a letter
		{"e-toll jagorawi", "e-toll", true},
		{"beli kopi susu", "kopi", true},
		{"kopi", "kopi", true},
		{"kopiku", "kopi", false},
	}

	for _, tt := range tests {
		t.Run(tt.desc+"/"+tt.kw, func(t *testing.T) {
			if got := containsWholeWord(tt.desc, tt.kw); got != tt.want {
				t.Errorf("containsWholeWord(%q, %q) = %v, want %v", tt.desc, tt.kw, got, tt.want)
			}
		})
	}
}
