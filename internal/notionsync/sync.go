package notionsync

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/pockit/internal/logger"
)

// SyncMonthlySummary writes one month's summary to the Notion database. The
// Month title is the idempotency key: an existing page for the same label is
// updated in place, otherwise a new page is created.
func SyncMonthlySummary(ctx context.Context, notionClient NotionService, notionDBID string, summary MonthlySummary) error {
	log := logger.FromContext(ctx)

	log.Info().
		Str("month", summary.Label).
		Msg("Syncing monthly summary to Notion")

	pages, err := queryAllNotionPages(ctx, notionClient, notionDBID)
	if err != nil {
		return fmt.Errorf("failed to query Notion pages: %w", err)
	}

	props := SummaryToProperties(summary)

	for _, page := range pages {
		if extractMonthLabel(page) != summary.Label {
			continue
		}

		if _, err := notionClient.UpdatePage(ctx, string(page.ID), props); err != nil {
			return fmt.Errorf("failed to update summary page: %w", err)
		}
		log.Info().
			Str("month", summary.Label).
			Str("page_id", string(page.ID)).
			Msg("Updated existing summary page")
		return nil
	}

	page, err := notionClient.CreatePage(ctx, notionDBID, props)
	if err != nil {
		return fmt.Errorf("failed to create summary page: %w", err)
	}

	log.Info().
		Str("month", summary.Label).
		Str("page_id", string(page.ID)).
		Msg("Created summary page")
	return nil
}

// queryAllNotionPages retrieves every page in the database, following
// pagination cursors.
func queryAllNotionPages(ctx context.Context, notionClient NotionService, databaseID string) ([]notionapi.Page, error) {
	var allPages []notionapi.Page
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			PageSize: 100,
		}

		// Only set StartCursor if we have a cursor value
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := notionClient.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("queryAllNotionPages: %w", err)
		}

		allPages = append(allPages, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return allPages, nil
}

// extractMonthLabel extracts the Month title from a Notion page's properties.
// Returns empty string if not found.
func extractMonthLabel(page notionapi.Page) string {
	if prop, ok := page.Properties["Month"]; ok {
		if title, ok := prop.(*notionapi.TitleProperty); ok {
			if len(title.Title) > 0 {
				return title.Title[0].PlainText
			}
		}
	}
	return ""
}
