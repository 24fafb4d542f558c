// Package ledger holds the ordered, uniquely keyed collection of accounts and
// every operation over it: mutation, queries, aggregates and persistence.
//
// A Ledger is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves (see pkg/app).
package ledger

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/dto"
)

var (
	// ErrAccountExists is returned when creating an account whose number is already taken.
	ErrAccountExists = fmt.Errorf("%w: account number already exists", domain.ErrAlreadyExists)

	// ErrAccountNotFound is returned when an operation references an unknown account number.
	ErrAccountNotFound = fmt.Errorf("%w: account not found", domain.ErrNotFound)

	// ErrPersistence is returned when the ledger cannot be written to its destination.
	ErrPersistence = fmt.Errorf("%w: failed to save ledger", domain.ErrIO)
)

// Ledger owns an insertion-ordered list of accounts, unique by case-folded number.
type Ledger struct {
	accounts []*account.Account
	index    map[string]int
	logger   *slog.Logger
}

// New returns an empty ledger. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		index:  make(map[string]int),
		logger: logger,
	}
}

// FromRecords builds a ledger from stored rows using the same policy as Load:
// rows that fail validation or repeat an earlier number are skipped.
func FromRecords(records []dto.AccountRecord, logger *slog.Logger) *Ledger {
	l := New(logger)
	for i, r := range records {
		if err := l.restore(r.Number, r.HolderName, r.Balance); err != nil {
			l.logger.Debug("skipping stored account", "row", i, "number", r.Number, "error", err)
		}
	}
	return l
}

// Len returns the number of accounts.
func (l *Ledger) Len() int {
	return len(l.accounts)
}

// CreateAccount opens a new account and appends it to the ledger.
func (l *Ledger) CreateAccount(number, holderName string, initialBalance float64) (account.Account, error) {
	if _, ok := l.index[account.Key(number)]; ok {
		return account.Account{}, ErrAccountExists
	}
	acc, err := account.New(number, holderName, initialBalance)
	if err != nil {
		return account.Account{}, err
	}
	l.append(acc)
	l.logger.Debug("account created", "number", acc.Number(), "balance", acc.Balance())
	return *acc, nil
}

// Deposit credits amount to the account with the given number.
func (l *Ledger) Deposit(number string, amount float64) error {
	acc, err := l.require(number)
	if err != nil {
		return err
	}
	return acc.Deposit(amount)
}

// Withdraw debits amount from the account with the given number.
func (l *Ledger) Withdraw(number string, amount float64) error {
	acc, err := l.require(number)
	if err != nil {
		return err
	}
	return acc.Withdraw(amount)
}

// SetHolderName renames the holder of the account with the given number.
func (l *Ledger) SetHolderName(number, holderName string) error {
	acc, err := l.require(number)
	if err != nil {
		return err
	}
	return acc.SetHolderName(holderName)
}

// GetByNumber looks an account up ignoring case. An empty number is simply not found.
func (l *Ledger) GetByNumber(number string) (account.Account, bool) {
	acc, ok := l.lookup(number)
	if !ok {
		return account.Account{}, false
	}
	return *acc, true
}

// Records returns the ledger rows in order, ready to hand to a storage backend.
func (l *Ledger) Records() []dto.AccountRecord {
	out := make([]dto.AccountRecord, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, dto.AccountRecord{
			Number:     a.Number(),
			HolderName: a.HolderName(),
			Balance:    a.Balance(),
		})
	}
	return out
}

func (l *Ledger) restore(number, holderName string, balance float64) error {
	if _, ok := l.index[account.Key(number)]; ok {
		return ErrAccountExists
	}
	acc, err := account.New(number, holderName, balance)
	if err != nil {
		return err
	}
	l.append(acc)
	return nil
}

func (l *Ledger) append(acc *account.Account) {
	l.index[acc.Key()] = len(l.accounts)
	l.accounts = append(l.accounts, acc)
}

func (l *Ledger) lookup(number string) (*account.Account, bool) {
	if number == "" {
		return nil, false
	}
	i, ok := l.index[account.Key(number)]
	if !ok {
		return nil, false
	}
	return l.accounts[i], true
}

func (l *Ledger) require(number string) (*account.Account, error) {
	acc, ok := l.lookup(number)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, number)
	}
	return acc, nil
}
