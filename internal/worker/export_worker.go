// Package worker mirrors recorded transactions into an external
// spreadsheet as transaction-created events arrive.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"salesboard/internal/amqp"
	"salesboard/internal/core"
	"salesboard/internal/store"
)

// RowAppender is the slice of the sheets client the worker needs.
type RowAppender interface {
	AppendRow(ctx context.Context, tx core.Transaction) (string, error)
}

type ExportWorker struct {
	transactions store.Getter
	sheet        RowAppender
}

func NewExportWorker(transactions store.Getter, sheet RowAppender) *ExportWorker {
	return &ExportWorker{
		transactions: transactions,
		sheet:        sheet,
	}
}

// HandleCreatedMessage loads the transaction named by the event and
// appends it to the spreadsheet. Unknown ids are dropped rather than
// requeued: the record will never appear.
func (w *ExportWorker) HandleCreatedMessage(ctx context.Context, msg *amqp.TransactionCreatedMessage) error {
	slog.InfoContext(ctx, "Exporting transaction", "id", msg.ID)

	tx, err := w.transactions.Get(ctx, msg.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "Transaction missing from store, skipping export", "id", msg.ID)
			return nil
		}
		return fmt.Errorf("load transaction %s: %w", msg.ID, err)
	}

	updatedRange, err := w.sheet.AppendRow(ctx, tx)
	if err != nil {
		return fmt.Errorf("export transaction %s: %w", msg.ID, err)
	}

	slog.InfoContext(ctx, "Transaction exported",
		"id", tx.ID,
		"type", tx.Type,
		"range", updatedRange)
	return nil
}
