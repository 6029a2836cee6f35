// Package ledger holds the point balance primitives and the point history.
//
// Credit and Debit are pure: they compute the next balance and enforce the
// invariant that a balance never goes negative. Repository applies them to the
// volunteers table and writes the history row inside the caller's transaction.
package ledger

// Credit returns balance increased by amount.
func Credit(balance, amount int) (int, error) {
	if amount < 0 {
		return balance, ErrInvalidAmount
	}
	return balance + amount, nil
}

// Debit returns balance decreased by amount, or an *InsufficientBalanceError
// when amount exceeds balance.
func Debit(balance, amount int) (int, error) {
	if amount < 0 {
		return balance, ErrInvalidAmount
	}
	if amount > balance {
		return balance, &InsufficientBalanceError{Available: balance, Requested: amount}
	}
	return balance - amount, nil
}

// Affordable reports whether a benefit costing pointsRequired can be redeemed
// from balance. Inactive benefits are never affordable.
func Affordable(balance, pointsRequired int, active bool) bool {
	return active && pointsRequired <= balance
}
