package ledger_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	exitVal := m.Run()
	os.Exit(exitVal)
}

func newLedger(t *testing.T, rows ...dto.AccountRecord) *ledger.Ledger {
	t.Helper()
	l := ledger.New(nil)
	for _, r := range rows {
		_, err := l.CreateAccount(r.Number, r.HolderName, r.Balance)
		require.NoError(t, err)
	}
	return l
}

func numbers(accs []account.Account) []string {
	out := make([]string, 0, len(accs))
	for _, a := range accs {
		out = append(out, a.Number())
	}
	return out
}

func TestCreateAccount(t *testing.T) {
	t.Parallel()

	t.Run("get by number in any case", func(t *testing.T) {
		l := ledger.New(nil)
		created, err := l.CreateAccount("A123", " Alice ", 100)
		require.NoError(t, err)
		assert.Equal(t, "A123", created.Number())

		for _, n := range []string{"A123", "a123"} {
			got, ok := l.GetByNumber(n)
			require.True(t, ok, n)
			assert.Equal(t, "A123", got.Number())
			assert.Equal(t, "Alice", got.HolderName())
			assert.InDelta(t, 100.0, got.Balance(), 1e-9)
		}
	})

	t.Run("duplicate differing only by case", func(t *testing.T) {
		l := newLedger(t, dto.AccountRecord{Number: "A123", HolderName: "Alice", Balance: 100})
		_, err := l.CreateAccount("a123", "Another", 0)
		assert.ErrorIs(t, err, ledger.ErrAccountExists)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
		assert.Equal(t, 1, l.Len())
	})

	t.Run("validation error propagates", func(t *testing.T) {
		l := ledger.New(nil)
		_, err := l.CreateAccount("A1", "Alice", 0)
		assert.ErrorIs(t, err, account.ErrInvalidAccountNumber)
		_, err = l.CreateAccount("A123", "", 0)
		assert.ErrorIs(t, err, account.ErrEmptyHolderName)
		_, err = l.CreateAccount("A123", "Alice", -5)
		assert.ErrorIs(t, err, account.ErrNegativeInitialBalance)
		assert.Zero(t, l.Len())
	})

	t.Run("returned account is a copy", func(t *testing.T) {
		l := ledger.New(nil)
		created, err := l.CreateAccount("A123", "Alice", 100)
		require.NoError(t, err)
		require.NoError(t, created.Deposit(50))

		got, ok := l.GetByNumber("A123")
		require.True(t, ok)
		assert.InDelta(t, 100.0, got.Balance(), 1e-9)
	})
}

func TestDeposit(t *testing.T) {
	t.Parallel()
	l := newLedger(t, dto.AccountRecord{Number: "B222", HolderName: "Bob", Balance: 50})

	require.NoError(t, l.Deposit("b222", 25))
	got, _ := l.GetByNumber("B222")
	assert.InDelta(t, 75.0, got.Balance(), 1e-9)

	for _, amount := range []float64{0, -5} {
		err := l.Deposit("B222", amount)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	got, _ = l.GetByNumber("B222")
	assert.InDelta(t, 75.0, got.Balance(), 1e-9)

	err := l.Deposit("Z999", 10)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWithdraw(t *testing.T) {
	t.Parallel()
	l := newLedger(t,
		dto.AccountRecord{Number: "D444", HolderName: "Dan", Balance: 100},
		dto.AccountRecord{Number: "E555", HolderName: "Eve", Balance: 20},
	)

	require.NoError(t, l.Withdraw("D444", 40))
	got, _ := l.GetByNumber("D444")
	assert.InDelta(t, 60.0, got.Balance(), 1e-9)

	err := l.Withdraw("E555", 25)
	assert.ErrorIs(t, err, account.ErrInsufficientFunds)
	got, _ = l.GetByNumber("E555")
	assert.InDelta(t, 20.0, got.Balance(), 1e-9)

	assert.ErrorIs(t, l.Withdraw("E555", 0), account.ErrWithdrawalAmountMustBePositive)
	assert.ErrorIs(t, l.Withdraw("nope", 1), ledger.ErrAccountNotFound)
}

func TestSetHolderName(t *testing.T) {
	t.Parallel()
	l := newLedger(t, dto.AccountRecord{Number: "N123", HolderName: "Nina", Balance: 10})

	require.NoError(t, l.SetHolderName("n123", "  Nora "))
	got, _ := l.GetByNumber("N123")
	assert.Equal(t, "Nora", got.HolderName())

	assert.ErrorIs(t, l.SetHolderName("N123", " "), account.ErrEmptyHolderName)
	assert.ErrorIs(t, l.SetHolderName("X000", "Xi"), ledger.ErrAccountNotFound)
}

func TestGetByNumberMissing(t *testing.T) {
	t.Parallel()
	l := newLedger(t, dto.AccountRecord{Number: "A123", HolderName: "Alice", Balance: 1})

	_, ok := l.GetByNumber("")
	assert.False(t, ok)
	_, ok = l.GetByNumber("B123")
	assert.False(t, ok)
}

func TestFromRecords(t *testing.T) {
	t.Parallel()
	l := ledger.FromRecords([]dto.AccountRecord{
		{Number: "K001", HolderName: "Kay", Balance: 7.5},
		{Number: "k001", HolderName: "Dup", Balance: 1},
		{Number: "bad!", HolderName: "Bad", Balance: 1},
		{Number: "K002", HolderName: "", Balance: 1},
		{Number: "K003", HolderName: "Ken", Balance: -1},
		{Number: "K004", HolderName: "Kim", Balance: 12.25},
	}, nil)

	assert.Equal(t, []dto.AccountRecord{
		{Number: "K001", HolderName: "Kay", Balance: 7.5},
		{Number: "K004", HolderName: "Kim", Balance: 12.25},
	}, l.Records())
}
