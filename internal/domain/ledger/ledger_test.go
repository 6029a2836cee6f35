package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredit(t *testing.T) {
	got, err := Credit(0, 150)
	require.NoError(t, err)
	assert.Equal(t, 150, got)

	got, err = Credit(10, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, got)

	_, err = Credit(10, -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDebit(t *testing.T) {
	got, err := Debit(500, 150)
	require.NoError(t, err)
	assert.Equal(t, 350, got)

	got, err = Debit(150, 150)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = Debit(10, -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDebitInsufficientBalance(t *testing.T) {
	got, err := Debit(100, 150)
	require.Error(t, err)
	assert.Equal(t, 100, got, "balance must be returned unchanged")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	var balanceErr *InsufficientBalanceError
	require.True(t, errors.As(err, &balanceErr))
	assert.Equal(t, 100, balanceErr.Available)
	assert.Equal(t, 150, balanceErr.Requested)
	assert.Equal(t, 50, balanceErr.Shortfall())
}

func TestAffordable(t *testing.T) {
	cases := []struct {
		name     string
		balance  int
		required int
		active   bool
		want     bool
	}{
		{"exact balance", 150, 150, true, true},
		{"more than enough", 500, 150, true, true},
		{"short", 149, 150, true, false},
		{"inactive regardless of balance", 1000, 10, false, false},
		{"free benefit", 0, 0, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Affordable(tc.balance, tc.required, tc.active))
		})
	}
}

// Any interleaving of credits and debits reachable through the workflows
// leaves the balance non-negative, because a failing debit leaves it unchanged.
func TestBalanceNeverNegative(t *testing.T) {
	balance := 0
	ops := []int{150, -200, -150, 40, -41, -40, 0, 500, -150, -150, -150, -150}
	for _, op := range ops {
		var err error
		var next int
		if op >= 0 {
			next, err = Credit(balance, op)
		} else {
			next, err = Debit(balance, -op)
		}
		if err != nil {
			require.ErrorIs(t, err, ErrInsufficientBalance)
			require.Equal(t, balance, next)
			continue
		}
		balance = next
		require.GreaterOrEqual(t, balance, 0)
	}
	assert.Equal(t, 50, balance)
}
