package domain

import (
	"fmt"  // Error formatting
	"time" // Timestamps
)

// TransactionKind names a monetary movement
type TransactionKind string

const (
	KindSubscriptionPayment TransactionKind = "SUBSCRIPTION_PAYMENT"
	KindWithdrawal          TransactionKind = "WITHDRAWAL"
	KindDeposit             TransactionKind = "DEPOSIT"
	KindRefund              TransactionKind = "REFUND"
	KindTransfer            TransactionKind = "TRANSFER"
)

// AllKinds lists every kind the ledger accepts
var AllKinds = []TransactionKind{
	KindSubscriptionPayment,
	KindWithdrawal,
	KindDeposit,
	KindRefund,
	KindTransfer,
}

// Effect is what a transaction kind does to its wallet
type Effect int

const (
	EffectNone   Effect = iota // Recorded in the log, wallet untouched
	EffectCredit               // balance += amount, totalEarned += amount
	EffectDebit                // balance -= amount, totalSpent += amount, never below zero
)

func (e Effect) String() string {
	switch e {
	case EffectCredit:
		return "credit"
	case EffectDebit:
		return "debit"
	default:
		return "none"
	}
}

// Effect returns the wallet effect of k. ok is false for unknown kinds.
// REFUND and TRANSFER are ledger entries only; they settle outside the wallet.
func (k TransactionKind) Effect() (effect Effect, ok bool) {
	switch k {
	case KindDeposit:
		return EffectCredit, true
	case KindSubscriptionPayment, KindWithdrawal:
		return EffectDebit, true
	case KindRefund, KindTransfer:
		return EffectNone, true
	default:
		return EffectNone, false
	}
}

// Valid reports whether k is a known kind
func (k TransactionKind) Valid() bool {
	_, ok := k.Effect()
	return ok
}

// TransactionStatus is the settlement state of a transaction
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// CanTransitionTo reports whether s may move to next.
// Only PENDING has outgoing transitions.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s != StatusPending {
		return false
	}
	switch next {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Transaction Model, immutable once persisted
type Transaction struct {
	ID            uint              `gorm:"primaryKey"`                                     // Primary key
	Reference     string            `gorm:"size:36;uniqueIndex;not null"`                   // Public identifier
	UserID        uint              `gorm:"not null;index:idx_tx_user_created"`             // Owner of the wallet
	Type          TransactionKind   `gorm:"size:32;not null;index"`                         // Transaction kind
	Amount        int64             `gorm:"not null"`                                       // Amount in cents, always positive
	Description   *string           `gorm:"size:255"`                                       // Optional free text
	RelatedUserID *uint             `gorm:"index"`                                          // Optional counterparty
	Status        TransactionStatus `gorm:"size:16;not null"`                               // Settlement state
	CreatedAt     int64             `gorm:"autoCreateTime:milli;index:idx_tx_user_created"` // Timestamp of creation in milliseconds
}

// Transition moves t to next, rejecting transitions the state machine forbids
func (t *Transaction) Transition(next TransactionStatus) error {
	if !t.Status.CanTransitionTo(next) {
		return fmt.Errorf("transaction %s: illegal status transition %s -> %s", t.Reference, t.Status, next)
	}
	t.Status = next
	return nil
}

// CreatedTime returns the creation timestamp as a time.Time
func (t Transaction) CreatedTime() time.Time {
	return time.UnixMilli(t.CreatedAt).UTC()
}
