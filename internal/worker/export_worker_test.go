package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"salesboard/internal/amqp"
	"salesboard/internal/core"
	"salesboard/internal/store/memory"
)

type fakeSheet struct {
	rows []core.Transaction
	err  error
}

func (f *fakeSheet) AppendRow(_ context.Context, tx core.Transaction) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.rows = append(f.rows, tx)
	return "Sales!A2:F2", nil
}

func TestHandleCreatedMessage(t *testing.T) {
	ctx := context.Background()
	transactions := memory.New()
	tx, err := transactions.Append(ctx, core.TransactionInput{
		Date:        "2024-03-10",
		Type:        core.CashRevenue,
		Amount:      core.Money{Cents: 4550},
		Description: "walk-ins",
		AddedBy:     "Manager",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	sheet := &fakeSheet{}
	w := NewExportWorker(transactions, sheet)

	msg := &amqp.TransactionCreatedMessage{ID: tx.ID, Timestamp: time.Now()}
	if err := w.HandleCreatedMessage(ctx, msg); err != nil {
		t.Fatalf("HandleCreatedMessage: %v", err)
	}
	if len(sheet.rows) != 1 || sheet.rows[0].ID != tx.ID {
		t.Fatalf("expected one exported row for %s, got %+v", tx.ID, sheet.rows)
	}
}

func TestHandleCreatedMessageUnknownIDIsDropped(t *testing.T) {
	sheet := &fakeSheet{}
	w := NewExportWorker(memory.New(), sheet)

	msg := &amqp.TransactionCreatedMessage{ID: "no-such-id", Timestamp: time.Now()}
	if err := w.HandleCreatedMessage(context.Background(), msg); err != nil {
		t.Fatalf("unknown id should be dropped, got %v", err)
	}
	if len(sheet.rows) != 0 {
		t.Fatalf("nothing should have been exported, got %d rows", len(sheet.rows))
	}
}

func TestHandleCreatedMessageSheetFailureIsRetryable(t *testing.T) {
	ctx := context.Background()
	transactions := memory.New()
	tx, err := transactions.Append(ctx, core.TransactionInput{
		Date:    "2024-03-10",
		Type:    core.Expense,
		Amount:  core.Money{Cents: 1200},
		AddedBy: "Staff Member",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	sheet := &fakeSheet{err: errors.New("quota exceeded")}
	w := NewExportWorker(transactions, sheet)

	msg := &amqp.TransactionCreatedMessage{ID: tx.ID, Timestamp: time.Now()}
	if err := w.HandleCreatedMessage(ctx, msg); err == nil {
		t.Fatal("expected sheet failure to propagate so the message is requeued")
	}
}
