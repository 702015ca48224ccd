// Package jsonfile persists transactions as a single JSON document of
// the form {"sales": [...]}, the default backend. The document is
// created lazily and every append rewrites it in full under a lock, via
// a temp file and rename, so concurrent appends cannot lose updates and
// readers never see a torn write.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"salesboard/internal/core"
	"salesboard/internal/store"
)

type document struct {
	Sales []core.Transaction `json:"sales"`
}

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// ListAll returns all transactions ordered by timestamp descending.
// A missing document is initialized empty; an unreadable one surfaces
// store.ErrCorrupt so callers can decide how loudly to degrade.
func (s *Store) ListAll(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	sales := append([]core.Transaction(nil), doc.Sales...)
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Timestamp.After(sales[j].Timestamp)
	})
	return sales, nil
}

// Append validates the candidate, assigns id and timestamp, and
// rewrites the document with the new record included.
func (s *Store) Append(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		// Refusing to clobber an unreadable document preserves whatever
		// can still be recovered from it.
		return core.Transaction{}, err
	}

	tx := core.NewTransaction(in, time.Now())
	doc.Sales = append(doc.Sales, tx)

	if err := s.write(doc); err != nil {
		return core.Transaction{}, err
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents,
		"added_by", tx.AddedBy)
	return tx, nil
}

// Get returns the transaction with the given id.
func (s *Store) Get(ctx context.Context, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	for _, tx := range doc.Sales {
		if tx.ID == id {
			return tx, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("%w: %s", store.ErrNotFound, id)
}

// load reads the document, creating it empty if it does not exist yet.
// Callers must hold the mutex.
func (s *Store) load(ctx context.Context) (*document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		doc := &document{Sales: []core.Transaction{}}
		if err := s.write(doc); err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "Initialized empty sales document", "path", s.path)
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sales document: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrCorrupt, s.path, err)
	}
	if doc.Sales == nil {
		doc.Sales = []core.Transaction{}
	}
	return &doc, nil
}

// write persists the full document atomically. Callers must hold the
// mutex.
func (s *Store) write(doc *document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sales document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write sales document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace sales document: %w", err)
	}
	return nil
}
