package events

import (
	"encoding/json" // Event encoding
	"time"          // Event timestamps

	"github.com/nats-io/nats.go" // NATS client
)

// SubjectTransactionCreated is published once per committed transaction
const SubjectTransactionCreated = "wallet.transactions.created"

// TransactionCreated is the payload of SubjectTransactionCreated. Amounts are cents.
type TransactionCreated struct {
	Reference     string    `json:"reference"`
	UserID        uint      `json:"user_id"`
	Type          string    `json:"type"`
	Amount        int64     `json:"amount"`
	RelatedUserID *uint     `json:"related_user_id,omitempty"`
	Status        string    `json:"status"`
	BalanceAfter  int64     `json:"balance_after"`
	CreatedAt     time.Time `json:"created_at"`
}

// Publisher delivers encoded events to a subject
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Encode marshals an event for publishing
func Encode(event any) ([]byte, error) {
	return json.Marshal(event)
}

// NatsPublisher publishes over a NATS connection
type NatsPublisher struct {
	nc *nats.Conn
}

// NewNatsPublisher wraps an established connection
func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

func (p *NatsPublisher) Publish(subject string, data []byte) error {
	return p.nc.Publish(subject, data)
}

// Close drains pending messages and closes the connection
func (p *NatsPublisher) Close() error {
	return p.nc.Drain()
}

// NopPublisher discards every event. Used when NATS is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(string, []byte) error { return nil }

// Connect dials NATS. An empty URL yields a NopPublisher.
func Connect(url string) (Publisher, error) {
	if url == "" {
		return NopPublisher{}, nil
	}
	nc, err := nats.Connect(url, nats.Name("creator-wallet"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, err
	}
	return NewNatsPublisher(nc), nil
}
