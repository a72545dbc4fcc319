package notionsync

import (
	"github.com/jomei/notionapi"
)

// MonthlySummary is one month's financial summary as it appears in the
// Notion database.
type MonthlySummary struct {
	Label       string // e.g. "August 2026", the page title
	Income      float64
	Expense     float64
	Balance     float64
	SavingsRate float64
	HealthScore int
	Grade       string
	TopCategory string
}

// SummaryToProperties converts a MonthlySummary to Notion properties. The
// Month title identifies the page for idempotent re-syncs.
func SummaryToProperties(s MonthlySummary) notionapi.Properties {
	props := notionapi.Properties{
		"Month": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: s.Label,
					},
				},
			},
		},
		"Income": notionapi.NumberProperty{
			Number: s.Income,
		},
		"Expense": notionapi.NumberProperty{
			Number: s.Expense,
		},
		"Balance": notionapi.NumberProperty{
			Number: s.Balance,
		},
		"Savings Rate": notionapi.NumberProperty{
			Number: s.SavingsRate,
		},
		"Health Score": notionapi.NumberProperty{
			Number: float64(s.HealthScore),
		},
	}

	if s.Grade != "" {
		props["Grade"] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: s.Grade,
			},
		}
	}

	if s.TopCategory != "" {
		props["Top Category"] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: s.TopCategory,
			},
		}
	}

	return props
}
