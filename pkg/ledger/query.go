package ledger

import (
	"cmp"
	"slices"
	"strings"

	"github.com/amirasaad/ledger/pkg/domain/account"
)

// All returns a snapshot of every account in insertion order.
func (l *Ledger) All() []account.Account {
	return l.filter(func(*account.Account) bool { return true })
}

// FindByName returns accounts whose holder name contains query, ignoring case.
// An empty query matches everything.
func (l *Ledger) FindByName(query string) []account.Account {
	q := strings.ToLower(strings.TrimSpace(query))
	return l.filter(func(a *account.Account) bool {
		return strings.Contains(strings.ToLower(a.HolderName()), q)
	})
}

// FindByBalanceRange returns accounts with lo <= balance <= hi.
// Reversed bounds are swapped.
func (l *Ledger) FindByBalanceRange(lo, hi float64) []account.Account {
	if lo > hi {
		lo, hi = hi, lo
	}
	return l.filter(func(a *account.Account) bool {
		return a.Balance() >= lo && a.Balance() <= hi
	})
}

// FilterByMinBalance returns accounts with balance >= floor.
func (l *Ledger) FilterByMinBalance(floor float64) []account.Account {
	return l.filter(func(a *account.Account) bool {
		return a.Balance() >= floor
	})
}

// TotalBalance sums every balance; an empty ledger totals 0.
func (l *Ledger) TotalBalance() float64 {
	var total float64
	for _, a := range l.accounts {
		total += a.Balance()
	}
	return total
}

// AverageBalance is the mean balance, defined as 0 for an empty ledger.
func (l *Ledger) AverageBalance() float64 {
	if len(l.accounts) == 0 {
		return 0
	}
	return l.TotalBalance() / float64(len(l.accounts))
}

// TopNByBalance returns up to n accounts by descending balance.
// Equal balances keep their insertion order.
func (l *Ledger) TopNByBalance(n int) []account.Account {
	if n <= 0 {
		return []account.Account{}
	}
	sorted := l.All()
	slices.SortStableFunc(sorted, func(a, b account.Account) int {
		return cmp.Compare(b.Balance(), a.Balance())
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func (l *Ledger) filter(keep func(*account.Account) bool) []account.Account {
	out := make([]account.Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		if keep(a) {
			out = append(out, *a)
		}
	}
	return out
}
