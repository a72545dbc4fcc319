// Package bigquery exports transaction history to a BigQuery dataset for
// long-term analysis outside the app.
package bigquery

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/option"

	"github.com/dvloznov/pockit/internal/domain"
)

const transactionsTable = "transactions"

// TransactionRow is the BigQuery schema for one exported transaction.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED

	TransactionDate civil.Date `bigquery:"transaction_date"` // REQUIRED
	Month           int64      `bigquery:"month"`            // REQUIRED, 0-11 bucket stamped at creation

	Type        string   `bigquery:"type"`        // REQUIRED, income or expense
	Category    string   `bigquery:"category"`    // REQUIRED
	Description string   `bigquery:"description"` // NULLABLE
	Amount      *big.Rat `bigquery:"amount"`      // REQUIRED NUMERIC

	ExportedTS time.Time `bigquery:"exported_ts"` // REQUIRED
}

// Exporter writes transaction batches to <dataset>.transactions.
type Exporter struct {
	client  *bigquery.Client
	dataset string
}

// NewExporter creates an exporter for the given project and dataset. It
// assumes Application Default Credentials unless credentialsFile is set.
func NewExporter(ctx context.Context, projectID, dataset, credentialsFile string) (*Exporter, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewExporter: bigquery client: %w", err)
	}
	return &Exporter{client: client, dataset: dataset}, nil
}

// Close releases the underlying client.
func (e *Exporter) Close() error {
	return e.client.Close()
}

// Export inserts a batch of transactions via the streaming inserter.
func (e *Exporter) Export(ctx context.Context, txs []domain.Transaction, now time.Time) error {
	if len(txs) == 0 {
		return nil
	}

	rows := make([]*TransactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, rowFromTransaction(tx, now))
	}

	inserter := e.client.Dataset(e.dataset).Table(transactionsTable).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("Export: inserting rows: %w", err)
	}
	return nil
}

func rowFromTransaction(tx domain.Transaction, now time.Time) *TransactionRow {
	amount := new(big.Rat)
	amount.SetFloat64(tx.Amount)

	return &TransactionRow{
		TransactionID:   tx.ID,
		TransactionDate: civil.DateOf(tx.Date),
		Month:           int64(tx.Month),
		Type:            string(tx.Type),
		Category:        string(tx.Category),
		Description:     tx.Description,
		Amount:          amount,
		ExportedTS:      now,
	}
}
