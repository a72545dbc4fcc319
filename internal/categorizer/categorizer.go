// Package categorizer assigns categories to free-text transaction
// descriptions by keyword matching. A keyword found as a whole word scores 10
// points, a bare substring hit scores 5; confidence is the score scaled so
// that two whole-word hits saturate it at 100.
package categorizer

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dvloznov/pockit/internal/domain"
)

const (
	wholeWordPoints = 10
	substringPoints = 5

	// rejectBelow is the confidence floor for Categorize. Suggest has no
	// floor: it returns every category that scored at all.
	rejectBelow = 30
)

// Match is one scored category candidate. Confidence is a 0-100 match
// strength, not a probability. A zero Match (empty Category) means no
// category cleared the floor.
type Match struct {
	Category        domain.Category `json:"category"`
	Confidence      int             `json:"confidence"`
	MatchedKeywords []string        `json:"matchedKeywords,omitempty"`
}

// Matcher scores descriptions against the static keyword tables. The tables
// are normalized once at construction; per-call work is plain substring
// scanning, no regex compilation.
type Matcher struct {
	tables map[domain.TransactionType][]categoryKeywords
}

// NewMatcher builds a matcher from the static keyword tables.
func NewMatcher() *Matcher {
	return &Matcher{
		tables: map[domain.TransactionType][]categoryKeywords{
			domain.TypeExpense: normalizeTable(expenseKeywords),
			domain.TypeIncome:  normalizeTable(incomeKeywords),
		},
	}
}

func normalizeTable(table []categoryKeywords) []categoryKeywords {
	out := make([]categoryKeywords, len(table))
	for i, entry := range table {
		kws := make([]string, len(entry.keywords))
		for j, kw := range entry.keywords {
			kws[j] = strings.ToLower(kw)
		}
		out[i] = categoryKeywords{category: entry.category, keywords: kws}
	}
	return out
}

// Categorize returns the best-scoring category for the description, or a zero
// Match when nothing clears the confidence floor. Ties go to the category
// declared first. The call is pure: identical input always yields an
// identical result.
func (m *Matcher) Categorize(description string, typ domain.TransactionType) Match {
	desc := normalizeDescription(description)
	if desc == "" {
		return Match{}
	}

	best := Match{}
	bestScore := 0
	for _, entry := range m.tableFor(typ) {
		score, matched := scoreCategory(desc, entry.keywords)
		if score > bestScore {
			bestScore = score
			best = Match{
				Category:        entry.category,
				Confidence:      roundConfidence(confidence(score)),
				MatchedKeywords: matched,
			}
		}
	}

	if confidence(bestScore) < rejectBelow {
		return Match{}
	}
	return best
}

// Suggest returns up to three category candidates ordered by descending
// confidence. Unlike Categorize there is no confidence floor; every category
// with a nonzero score is eligible.
func (m *Matcher) Suggest(description string, typ domain.TransactionType) []Match {
	desc := normalizeDescription(description)
	if desc == "" {
		return nil
	}

	var out []Match
	for _, entry := range m.tableFor(typ) {
		score, _ := scoreCategory(desc, entry.keywords)
		if score > 0 {
			out = append(out, Match{
				Category:   entry.category,
				Confidence: roundConfidence(confidence(score)),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func (m *Matcher) tableFor(typ domain.TransactionType) []categoryKeywords {
	if typ == domain.TypeIncome {
		return m.tables[domain.TypeIncome]
	}
	return m.tables[domain.TypeExpense]
}

func normalizeDescription(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func scoreCategory(desc string, keywords []string) (int, []string) {
	score := 0
	var matched []string
	for _, kw := range keywords {
		if !strings.Contains(desc, kw) {
			continue
		}
		if containsWholeWord(desc, kw) {
			score += wholeWordPoints
		} else {
			score += substringPoints
		}
		matched = append(matched, kw)
	}
	return score, matched
}

// containsWholeWord reports whether kw occurs in desc delimited by word
// boundaries on both sides. Letters, digits and underscore count as word
// characters; multi-word keywords only need boundaries at their edges.
func containsWholeWord(desc, kw string) bool {
	for from := 0; ; {
		idx := strings.Index(desc[from:], kw)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(kw)
		if boundaryBefore(desc, start) && boundaryAfter(desc, end) {
			return true
		}
		from = start + 1
	}
}

func boundaryBefore(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	r := lastRune(s[:idx])
	return !isWordRune(r)
}

func boundaryAfter(s string, idx int) bool {
	if idx >= len(s) {
		return true
	}
	for _, r := range s[idx:] {
		return !isWordRune(r)
	}
	return true
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func confidence(score int) float64 {
	c := float64(score) / 20 * 100
	if c > 100 {
		return 100
	}
	return c
}

func roundConfidence(c float64) int {
	return int(c + 0.5)
}
