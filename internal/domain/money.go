package domain

import (
	"errors" // Sentinel errors
	"math"   // Integer bounds

	"github.com/shopspring/decimal" // Exact decimal arithmetic
)

var (
	// ErrAmountPrecision is returned for amounts finer than one cent
	ErrAmountPrecision = errors.New("amount has more than two decimal places")
	// ErrAmountRange is returned for amounts that are not positive or do not fit in int64 cents
	ErrAmountRange = errors.New("amount is out of range")
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// ToCents converts a positive decimal amount into integer cents
func ToCents(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() {
		return 0, ErrAmountRange
	}
	if !amount.Equal(amount.Round(2)) {
		return 0, ErrAmountPrecision
	}
	cents := amount.Shift(2)
	if cents.GreaterThan(maxCents) {
		return 0, ErrAmountRange
	}
	return cents.IntPart(), nil
}

// FromCents converts integer cents into a decimal amount
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
