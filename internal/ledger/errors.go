package ledger

import "errors"

var (
	ErrMissingField        = errors.New("type and amount are required")
	ErrInvalidAmount       = errors.New("amount must be a positive value with at most two decimal places")
	ErrUnknownKind         = errors.New("unknown transaction type")
	ErrUserNotFound        = errors.New("user not found")
	ErrRelatedUserNotFound = errors.New("related user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
