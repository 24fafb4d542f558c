package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	ledgerapp "github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/ledger"
	"github.com/fatih/color"
)

var (
	// errInputClosed ends the session when stdin runs dry mid-prompt.
	errInputClosed = errors.New("input closed")
	// errInputFailed ends the session when stdin cannot be read, e.g. a line
	// longer than maxInputLine.
	errInputFailed = errors.New("cannot read input")
)

const maxInputLine = 1 << 20

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

type menuItem struct {
	key    string
	label  string
	action func(ctx context.Context) error
}

type shell struct {
	app   *ledgerapp.App
	in    io.Reader
	out   io.Writer
	items []menuItem

	lines chan string
	inErr error // set before lines is closed
}

func newShell(a *ledgerapp.App, in io.Reader, out io.Writer) *shell {
	s := &shell{app: a, in: in, out: out}
	s.items = []menuItem{
		{"1", "Create account", s.create},
		{"2", "Deposit", s.deposit},
		{"3", "Withdraw", s.withdraw},
		{"4", "View all accounts", s.listAll},
		{"5", "Search by name", s.searchByName},
		{"6", "Search by balance range", s.balanceRange},
		{"7", "Calculate total & average balance", s.stats},
		{"8", "Top 3 accounts by balance", s.top3},
		{"9", "Filter by minimum balance", s.filterByMin},
		{"10", "Save", s.save},
		{"11", "Rename holder", s.rename},
	}
	return s
}

// Run loops over the menu until the user picks 0, input ends or ctx is
// cancelled. The ledger is saved once on the way out, even after cancellation;
// a failed save is ignored.
func (s *shell) Run(ctx context.Context) {
	s.lines = make(chan string)
	scanCtx, stopScan := context.WithCancel(ctx)
	defer stopScan()
	go s.scan(scanCtx)

	titleColor.Fprintln(s.out, "Welcome to the ledger") //nolint:errcheck
	for {
		s.printMenu()
		choice, err := s.readLine(ctx)
		if err != nil {
			s.reportExit(err)
			break
		}
		if choice == "0" {
			break
		}
		item, ok := s.lookup(choice)
		if !ok {
			fmt.Fprintln(s.out, "Invalid choice. Try again.") //nolint:errcheck
			continue
		}
		if err := item.action(ctx); err != nil {
			if s.terminal(ctx, err) {
				s.reportExit(err)
				break
			}
			errorColor.Fprintf(s.out, "[ERROR] %s\n", err) //nolint:errcheck
		}
	}
	_ = s.app.Persist(context.Background())
	fmt.Fprintln(s.out, "Goodbye!") //nolint:errcheck
}

// scan feeds input lines to s.lines until input ends or ctx is done.
func (s *shell) scan(ctx context.Context) {
	defer close(s.lines)
	sc := bufio.NewScanner(s.in)
	sc.Buffer(make([]byte, 0, 64*1024), maxInputLine)
	for sc.Scan() {
		select {
		case s.lines <- sc.Text():
		case <-ctx.Done():
			return
		}
	}
	s.inErr = sc.Err()
}

func (s *shell) terminal(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, errInputClosed) ||
		errors.Is(err, errInputFailed)
}

func (s *shell) reportExit(err error) {
	if errors.Is(err, errInputFailed) {
		errorColor.Fprintf(s.out, "[ERROR] %s\n", err) //nolint:errcheck
	}
}

func (s *shell) printMenu() {
	titleColor.Fprintln(s.out, "\nMenu:") //nolint:errcheck
	for _, it := range s.items {
		fmt.Fprintf(s.out, "%s. %s\n", it.key, it.label) //nolint:errcheck
	}
	fmt.Fprintln(s.out, "0. Exit") //nolint:errcheck
	fmt.Fprint(s.out, "Choose: ")  //nolint:errcheck
}

func (s *shell) lookup(key string) (menuItem, bool) {
	for _, it := range s.items {
		if it.key == key {
			return it, true
		}
	}
	return menuItem{}, false
}

func (s *shell) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			if s.inErr != nil {
				return "", fmt.Errorf("%w: %w", errInputFailed, s.inErr)
			}
			return "", errInputClosed
		}
		return strings.TrimSpace(line), nil
	}
}

func (s *shell) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(s.out, prompt) //nolint:errcheck
	return s.readLine(ctx)
}

func (s *shell) askFloat(ctx context.Context, prompt string) (float64, error) {
	raw, err := s.ask(ctx, prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return v, nil
}

func (s *shell) done(msg string) {
	successColor.Fprintln(s.out, msg) //nolint:errcheck
}

func (s *shell) printRows(accs []account.Account) {
	for _, a := range accs {
		fmt.Fprintf(s.out, "%s | %s | %s\n", a.Number(), a.HolderName(), account.FormatBalance(a.Balance())) //nolint:errcheck
	}
}

func (s *shell) create(ctx context.Context) error {
	number, err := s.ask(ctx, "Account number (4-12 alphanum): ")
	if err != nil {
		return err
	}
	name, err := s.ask(ctx, "Holder name: ")
	if err != nil {
		return err
	}
	balance, err := s.askFloat(ctx, "Initial balance (>=0): ")
	if err != nil {
		return err
	}
	err = s.app.Update(ctx, func(l *ledger.Ledger) error {
		_, err := l.CreateAccount(number, name, balance)
		return err
	})
	if err != nil {
		return err
	}
	s.done("Account created.")
	return nil
}

func (s *shell) deposit(ctx context.Context) error {
	return s.move(ctx, "Deposit amount: ", "Deposited.", (*ledger.Ledger).Deposit)
}

func (s *shell) withdraw(ctx context.Context) error {
	return s.move(ctx, "Withdrawal amount: ", "Withdrawn.", (*ledger.Ledger).Withdraw)
}

func (s *shell) move(
	ctx context.Context,
	prompt, msg string,
	op func(l *ledger.Ledger, number string, amount float64) error,
) error {
	number, err := s.ask(ctx, "Account number: ")
	if err != nil {
		return err
	}
	amount, err := s.askFloat(ctx, prompt)
	if err != nil {
		return err
	}
	if err := s.app.Update(ctx, func(l *ledger.Ledger) error { return op(l, number, amount) }); err != nil {
		return err
	}
	s.done(msg)
	return nil
}

func (s *shell) rename(ctx context.Context) error {
	number, err := s.ask(ctx, "Account number: ")
	if err != nil {
		return err
	}
	name, err := s.ask(ctx, "New holder name: ")
	if err != nil {
		return err
	}
	if err := s.app.Update(ctx, func(l *ledger.Ledger) error { return l.SetHolderName(number, name) }); err != nil {
		return err
	}
	s.done("Holder renamed.")
	return nil
}

func (s *shell) listAll(context.Context) error {
	accs := s.snapshot(func(l *ledger.Ledger) []account.Account { return l.All() })
	if len(accs) == 0 {
		fmt.Fprintln(s.out, "No accounts found.") //nolint:errcheck
		return nil
	}
	s.printRows(accs)
	return nil
}

func (s *shell) searchByName(ctx context.Context) error {
	q, err := s.ask(ctx, "Search name contains: ")
	if err != nil {
		return err
	}
	s.printRows(s.snapshot(func(l *ledger.Ledger) []account.Account { return l.FindByName(q) }))
	return nil
}

func (s *shell) balanceRange(ctx context.Context) error {
	lo, err := s.askFloat(ctx, "Min balance: ")
	if err != nil {
		return err
	}
	hi, err := s.askFloat(ctx, "Max balance: ")
	if err != nil {
		return err
	}
	s.printRows(s.snapshot(func(l *ledger.Ledger) []account.Account { return l.FindByBalanceRange(lo, hi) }))
	return nil
}

func (s *shell) stats(context.Context) error {
	var total, avg float64
	_ = s.app.View(func(l *ledger.Ledger) error {
		total, avg = l.TotalBalance(), l.AverageBalance()
		return nil
	})
	fmt.Fprintf(s.out, "Total: %s, Average: %s\n", account.FormatBalance(total), account.FormatBalance(avg)) //nolint:errcheck
	return nil
}

func (s *shell) top3(context.Context) error {
	s.printRows(s.snapshot(func(l *ledger.Ledger) []account.Account { return l.TopNByBalance(3) }))
	return nil
}

func (s *shell) filterByMin(ctx context.Context) error {
	floor, err := s.askFloat(ctx, "Minimum balance: ")
	if err != nil {
		return err
	}
	s.printRows(s.snapshot(func(l *ledger.Ledger) []account.Account { return l.FilterByMinBalance(floor) }))
	return nil
}

func (s *shell) save(ctx context.Context) error {
	if err := s.app.Persist(ctx); err != nil {
		return err
	}
	location := s.app.Location()
	if s.app.Config.Ledger.Backend == config.BackendCSV {
		if abs, err := filepath.Abs(location); err == nil {
			location = abs
		}
	}
	s.done("Saved to " + location)
	return nil
}

func (s *shell) snapshot(q func(l *ledger.Ledger) []account.Account) []account.Account {
	var accs []account.Account
	_ = s.app.View(func(l *ledger.Ledger) error {
		accs = q(l)
		return nil
	})
	return accs
}
