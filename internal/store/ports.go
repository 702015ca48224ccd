// Package store defines the ports the transaction backends implement.
package store

import (
	"context"
	"errors"

	"salesboard/internal/core"
)

// ErrCorrupt marks a backing document that exists but cannot be parsed.
// Readers may choose to present an empty dashboard, but the failure is
// no longer swallowed silently.
var ErrCorrupt = errors.New("sales data corrupt")

// ErrNotFound is returned when a transaction id is unknown.
var ErrNotFound = errors.New("transaction not found")

type (
	// Appender durably appends one validated transaction, assigning its
	// id and creation timestamp, and returns the stored record.
	Appender interface {
		Append(ctx context.Context, in core.TransactionInput) (core.Transaction, error)
	}

	// Lister returns every stored transaction, most recently created
	// first (ordered by timestamp descending).
	Lister interface {
		ListAll(ctx context.Context) ([]core.Transaction, error)
	}

	// Getter fetches a single transaction by id. Used by the export
	// worker, which receives ids over the event queue.
	Getter interface {
		Get(ctx context.Context, id string) (core.Transaction, error)
	}
)
