package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"salesboard/internal/core"
	"salesboard/internal/store"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "salesboard.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAppendListGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if sales, err := repo.ListAll(ctx); err != nil || len(sales) != 0 {
		t.Fatalf("fresh repo: %v, %d items", err, len(sales))
	}

	first, err := repo.Append(ctx, core.TransactionInput{
		Date:        "2024-01-05",
		Type:        core.OnlineRevenue,
		Amount:      core.Money{Cents: 10000},
		Description: "web orders",
		AddedBy:     "Manager",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	second, err := repo.Append(ctx, core.TransactionInput{
		Date:    "2024-01-06",
		Type:    core.Expense,
		Amount:  core.Money{Cents: 2500},
		AddedBy: "Staff Member",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	sales, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("expected 2 records, got %d", len(sales))
	}
	if sales[0].ID != second.ID || sales[1].ID != first.ID {
		t.Fatalf("not ordered by created_at descending: %s, %s", sales[0].ID, sales[1].ID)
	}

	got, err := repo.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Type != core.OnlineRevenue || got.Amount.Cents != 10000 || got.Description != "web orders" {
		t.Fatalf("Get returned %+v", got)
	}
	if !got.Timestamp.Equal(first.Timestamp) {
		t.Fatalf("timestamp round trip: %v != %v", got.Timestamp, first.Timestamp)
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAppendValidates(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Append(context.Background(), core.TransactionInput{
		Date:    "2024-01-05",
		Type:    "store-credit",
		Amount:  core.Money{Cents: 100},
		AddedBy: "Manager",
	})
	if err == nil {
		t.Fatal("expected validation error for unknown type")
	}
}

func TestListAllOrdersSubsecondTimestamps(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Chronological order must hold within the same second even when
	// one instant has fewer fractional digits than the other.
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []struct {
		id string
		at time.Time
	}{
		{"earlier", base.Add(500 * time.Millisecond)},
		{"later", base.Add(510 * time.Millisecond)},
	}
	for _, row := range rows {
		_, err := repo.db.ExecContext(ctx,
			`INSERT INTO sales (id, business_date, type, amount_cents, description, added_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			row.id, "2024-01-01", string(core.CashRevenue), int64(100), "", "Manager", row.at.UnixNano())
		if err != nil {
			t.Fatalf("insert %s: %v", row.id, err)
		}
	}

	sales, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("expected 2 records, got %d", len(sales))
	}
	if sales[0].ID != "later" || sales[1].ID != "earlier" {
		t.Fatalf("timestamp-descending violated: got %q first (created %v)", sales[0].ID, sales[0].Timestamp)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "salesboard.db")

	repo, err := NewRepository(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	repo.Close()

	repo, err = NewRepository(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	repo.Close()
}
