package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	OnlineRevenue TransactionType = "online-revenue"
	CashRevenue   TransactionType = "cash-revenue"
	Expense       TransactionType = "expense"
)

// DateLayout is the business date format used on the wire and in storage.
const DateLayout = "2006-01-02"

type (
	TransactionType string

	// Transaction is a single recorded revenue or expense entry.
	// Records are append-only: once stored they are never mutated or deleted.
	Transaction struct {
		ID          string          `json:"id"`
		Date        string          `json:"date"` // user-supplied business date, YYYY-MM-DD
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		AddedBy     string          `json:"addedBy"`
		Timestamp   time.Time       `json:"timestamp"` // server-assigned creation instant
	}

	// TransactionInput is a candidate transaction before the store assigns
	// an id and a creation timestamp.
	TransactionInput struct {
		Date        string
		Type        TransactionType
		Amount      Money
		Description string
		AddedBy     string
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyAddedBy     = errors.New("empty addedBy")
	ErrLongDescription  = errors.New("description too long (max 200 characters)")
)

func (t TransactionType) Valid() bool {
	switch t {
	case OnlineRevenue, CashRevenue, Expense:
		return true
	}
	return false
}

// Validate checks the candidate on the server side. The submitting client
// validates too, but the API no longer trusts it to.
func (in TransactionInput) Validate() error {
	if _, err := time.Parse(DateLayout, strings.TrimSpace(in.Date)); err != nil {
		return ErrInvalidDate
	}
	if !in.Type.Valid() {
		return ErrInvalidType
	}
	if err := in.Amount.Validate(); err != nil {
		return err
	}
	if len(in.Description) > 200 {
		return ErrLongDescription
	}
	if strings.TrimSpace(in.AddedBy) == "" {
		return ErrEmptyAddedBy
	}
	return nil
}

// NewTransaction materializes a validated input into a stored record,
// assigning a fresh id and the server receipt time.
func NewTransaction(in TransactionInput, now time.Time) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Date:        strings.TrimSpace(in.Date),
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
		AddedBy:     in.AddedBy,
		Timestamp:   now.UTC(),
	}
}
