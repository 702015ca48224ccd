package main

import (
	"path/filepath"
	"testing"

	"salesboard/internal/config"
)

func TestNewTransactionStore(t *testing.T) {
	dir := t.TempDir()

	st, closeStore, err := newTransactionStore(&config.Config{
		DataBackend:   "json",
		SalesFilePath: filepath.Join(dir, "sales.json"),
	})
	if err != nil || st == nil {
		t.Fatalf("json backend: %v", err)
	}
	closeStore()

	st, closeStore, err = newTransactionStore(&config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: filepath.Join(dir, "salesboard.db"),
	})
	if err != nil || st == nil {
		t.Fatalf("sqlite backend: %v", err)
	}
	closeStore()
}

func TestNewTransactionStoreRejectsMemory(t *testing.T) {
	// A memory store lives inside the server process; accepting it here
	// would silently read a jsonfile document the server never writes.
	if _, _, err := newTransactionStore(&config.Config{DataBackend: "memory"}); err == nil {
		t.Fatal("expected error for memory backend")
	}
}
