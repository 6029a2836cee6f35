package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned when a credit or debit amount is negative
	ErrInvalidAmount = errors.New("invalid amount: must not be negative")

	// ErrInsufficientBalance is returned when a debit exceeds the balance
	ErrInsufficientBalance = errors.New("insufficient points")

	// ErrVolunteerNotFound is returned when the balance owner doesn't exist
	ErrVolunteerNotFound = errors.New("volunteer not found")
)

// InsufficientBalanceError provides details about a balance shortage.
type InsufficientBalanceError struct {
	Available int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient points: available %d, requested %d, shortfall %d",
		e.Available, e.Requested, e.Shortfall())
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// Shortfall is how many points the balance is missing.
func (e *InsufficientBalanceError) Shortfall() int {
	return e.Requested - e.Available
}
