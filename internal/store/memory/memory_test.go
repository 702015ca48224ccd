package memory

import (
	"context"
	"testing"

	"salesboard/internal/core"
)

func TestAppendAndList(t *testing.T) {
	s := New()
	ctx := context.Background()

	if sales, err := s.ListAll(ctx); err != nil || len(sales) != 0 {
		t.Fatalf("fresh store: %v, %d items", err, len(sales))
	}

	in := core.TransactionInput{
		Date:    "2024-01-05",
		Type:    core.OnlineRevenue,
		Amount:  core.Money{Cents: 100},
		AddedBy: "Manager",
	}
	tx, err := s.Append(ctx, in)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	sales, err := s.ListAll(ctx)
	if err != nil || len(sales) != 1 || sales[0].ID != tx.ID {
		t.Fatalf("ListAll after append: %v, %+v", err, sales)
	}

	got, err := s.Get(ctx, tx.ID)
	if err != nil || got.ID != tx.ID {
		t.Fatalf("Get: %v, %+v", err, got)
	}
}
