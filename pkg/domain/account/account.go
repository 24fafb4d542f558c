package account

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAccountNumber is returned when an account number is empty or not 4-12 alphanumeric characters.
	ErrInvalidAccountNumber = fmt.Errorf("%w: account number must be 4-12 alphanumeric characters", domain.ErrValidation)

	// ErrEmptyHolderName is returned when a holder name is empty after trimming.
	ErrEmptyHolderName = fmt.Errorf("%w: holder name cannot be empty", domain.ErrValidation)

	// ErrNegativeInitialBalance is returned when an account is opened with a negative or non-finite balance.
	ErrNegativeInitialBalance = fmt.Errorf("%w: initial balance cannot be negative", domain.ErrValidation)

	// ErrDepositAmountMustBePositive is returned when a deposit amount is not a positive number.
	ErrDepositAmountMustBePositive = fmt.Errorf("%w: deposit amount must be > 0", domain.ErrValidation)

	// ErrWithdrawalAmountMustBePositive is returned when a withdrawal amount is not a positive number.
	ErrWithdrawalAmountMustBePositive = fmt.Errorf("%w: withdrawal amount must be > 0", domain.ErrValidation)

	// ErrInsufficientFunds is returned when a withdrawal exceeds the current balance.
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient balance", domain.ErrValidation)
)

var numberPattern = regexp.MustCompile(`^[A-Za-z0-9]{4,12}$`)

// Account is a single bank account held by the ledger.
//
// Invariants:
//   - The account number never changes after construction.
//   - The holder name is trimmed and never empty.
//   - The balance is never negative.
//
// Account is a plain value: copying it yields an independent account, which is how
// the ledger hands out snapshots.
type Account struct {
	number     string
	holderName string
	balance    float64
}

// New validates its arguments and returns a new Account.
func New(number, holderName string, initialBalance float64) (*Account, error) {
	if err := ValidateNumber(number); err != nil {
		return nil, err
	}
	name, err := normalizeHolderName(holderName)
	if err != nil {
		return nil, err
	}
	if !isFinite(initialBalance) || initialBalance < 0 {
		return nil, ErrNegativeInitialBalance
	}
	return &Account{
		number:     number,
		holderName: name,
		balance:    initialBalance,
	}, nil
}

// ValidateNumber reports whether number is a well-formed account number.
func ValidateNumber(number string) error {
	if !numberPattern.MatchString(number) {
		return ErrInvalidAccountNumber
	}
	return nil
}

// Key folds an account number into the form used for every identity comparison.
func Key(number string) string {
	return strings.ToLower(number)
}

func (a *Account) Number() string {
	return a.number
}

func (a *Account) HolderName() string {
	return a.holderName
}

func (a *Account) Balance() float64 {
	return a.balance
}

// Key returns the case-folded account number.
func (a *Account) Key() string {
	return Key(a.number)
}

// Equal reports whether both accounts share the same number, ignoring case.
func (a *Account) Equal(other *Account) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.Key() == other.Key()
}

// SetHolderName replaces the holder name with its trimmed form.
func (a *Account) SetHolderName(name string) error {
	n, err := normalizeHolderName(name)
	if err != nil {
		return err
	}
	a.holderName = n
	return nil
}

// Deposit adds a positive amount to the balance.
func (a *Account) Deposit(amount float64) error {
	if !isFinite(amount) || amount <= 0 {
		return ErrDepositAmountMustBePositive
	}
	a.balance += amount
	return nil
}

// Withdraw removes a positive amount from the balance if sufficient funds exist.
func (a *Account) Withdraw(amount float64) error {
	if !isFinite(amount) || amount <= 0 {
		return ErrWithdrawalAmountMustBePositive
	}
	if amount > a.balance {
		return ErrInsufficientFunds
	}
	a.balance -= amount
	return nil
}

// String renders the account in its persisted form: number,holderName,balance.
func (a *Account) String() string {
	return fmt.Sprintf("%s,%s,%s", a.number, a.holderName, FormatBalance(a.balance))
}

// FormatBalance renders a balance with exactly two decimal places.
func FormatBalance(balance float64) string {
	if !isFinite(balance) {
		return fmt.Sprintf("%.2f", balance)
	}
	return decimal.NewFromFloat(balance).StringFixed(2)
}

func normalizeHolderName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", ErrEmptyHolderName
	}
	return n, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
