package account_test

import (
	"math"
	"testing"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid account", func(t *testing.T) {
		acc, err := account.New("A123", "  Alice  ", 10)
		require.NoError(t, err)
		assert.Equal(t, "A123", acc.Number())
		assert.Equal(t, "Alice", acc.HolderName())
		assert.InDelta(t, 10.0, acc.Balance(), 1e-9)
	})

	t.Run("zero balance allowed", func(t *testing.T) {
		acc, err := account.New("abcd1234WXYZ", "Bob", 0)
		require.NoError(t, err)
		assert.Zero(t, acc.Balance())
	})

	tests := []struct {
		name    string
		number  string
		holder  string
		balance float64
		wantErr error
	}{
		{"empty number", "", "Alice", 0, account.ErrInvalidAccountNumber},
		{"too short", "A12", "Alice", 0, account.ErrInvalidAccountNumber},
		{"too long", "A123456789012", "Alice", 0, account.ErrInvalidAccountNumber},
		{"special characters", "A!23", "Alice", 0, account.ErrInvalidAccountNumber},
		{"surrounding whitespace", " A123", "Alice", 0, account.ErrInvalidAccountNumber},
		{"empty holder", "A123", "", 0, account.ErrEmptyHolderName},
		{"blank holder", "A123", "   ", 0, account.ErrEmptyHolderName},
		{"negative balance", "A123", "Alice", -1, account.ErrNegativeInitialBalance},
		{"NaN balance", "A123", "Alice", math.NaN(), account.ErrNegativeInitialBalance},
		{"infinite balance", "A123", "Alice", math.Inf(1), account.ErrNegativeInitialBalance},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			acc, err := account.New(tc.number, tc.holder, tc.balance)
			assert.Nil(t, acc)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestDeposit(t *testing.T) {
	t.Parallel()
	acc, err := account.New("B123", "Bob", 100)
	require.NoError(t, err)

	require.NoError(t, acc.Deposit(50))
	assert.InDelta(t, 150.0, acc.Balance(), 1e-9)

	for _, amount := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		err := acc.Deposit(amount)
		assert.ErrorIs(t, err, account.ErrDepositAmountMustBePositive)
	}
	assert.InDelta(t, 150.0, acc.Balance(), 1e-9, "rejected deposits must not change the balance")
}

func TestWithdraw(t *testing.T) {
	t.Parallel()
	acc, err := account.New("D123", "Dan", 100)
	require.NoError(t, err)

	require.NoError(t, acc.Withdraw(30))
	assert.InDelta(t, 70.0, acc.Balance(), 1e-9)

	t.Run("non-positive amounts", func(t *testing.T) {
		assert.ErrorIs(t, acc.Withdraw(0), account.ErrWithdrawalAmountMustBePositive)
		assert.ErrorIs(t, acc.Withdraw(-10), account.ErrWithdrawalAmountMustBePositive)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		err := acc.Withdraw(100)
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.InDelta(t, 70.0, acc.Balance(), 1e-9)
	})

	t.Run("entire balance", func(t *testing.T) {
		require.NoError(t, acc.Withdraw(70))
		assert.Zero(t, acc.Balance())
	})
}

func TestSetHolderName(t *testing.T) {
	t.Parallel()
	acc, err := account.New("N123", "Nina", 10)
	require.NoError(t, err)

	require.NoError(t, acc.SetHolderName("  NewName "))
	assert.Equal(t, "NewName", acc.HolderName())

	assert.ErrorIs(t, acc.SetHolderName(""), account.ErrEmptyHolderName)
	assert.ErrorIs(t, acc.SetHolderName("  "), account.ErrEmptyHolderName)
	assert.Equal(t, "NewName", acc.HolderName())
}

func TestEqualIgnoresCase(t *testing.T) {
	t.Parallel()
	a1, err := account.New("X123", "X", 1)
	require.NoError(t, err)
	a2, err := account.New("x123", "Y", 2)
	require.NoError(t, err)
	a3, err := account.New("X124", "X", 1)
	require.NoError(t, err)

	assert.True(t, a1.Equal(a2))
	assert.Equal(t, a1.Key(), a2.Key())
	assert.False(t, a1.Equal(a3))
	assert.Equal(t, "x123", account.Key("X123"))
}

func TestString(t *testing.T) {
	t.Parallel()
	acc, err := account.New("Z999", "Zara", 123.45)
	require.NoError(t, err)
	assert.Equal(t, "Z999,Zara,123.45", acc.String())

	acc, err = account.New("Z998", "Zed", 7.5)
	require.NoError(t, err)
	assert.Equal(t, "Z998,Zed,7.50", acc.String())
}

func TestFormatBalance(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0.00", account.FormatBalance(0))
	assert.Equal(t, "12.25", account.FormatBalance(12.25))
	assert.Equal(t, "2.68", account.FormatBalance(2.675))
	assert.Equal(t, "1000000.10", account.FormatBalance(1000000.1))
}

func TestCopyIsIndependent(t *testing.T) {
	t.Parallel()
	acc, err := account.New("C123", "Cat", 10)
	require.NoError(t, err)

	snapshot := *acc
	require.NoError(t, snapshot.Deposit(5))
	assert.InDelta(t, 10.0, acc.Balance(), 1e-9)
	assert.InDelta(t, 15.0, snapshot.Balance(), 1e-9)
}
