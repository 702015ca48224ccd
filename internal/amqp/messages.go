package amqp

import (
	"encoding/json"
	"time"
)

// TransactionCreatedMessage announces a newly appended transaction.
// It carries only the id; the worker fetches the full record from the
// store so the queue never holds stale copies.
type TransactionCreatedMessage struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionCreatedMessage(id string) *TransactionCreatedMessage {
	return &TransactionCreatedMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *TransactionCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionCreatedMessageFromJSON(data []byte) (*TransactionCreatedMessage, error) {
	var msg TransactionCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
