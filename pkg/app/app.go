package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/ledger"
	accountrepo "github.com/amirasaad/ledger/pkg/repository/account"
)

// Deps contains everything New needs to build the App.
type Deps struct {
	// Repository is nil for the csv backend.
	Repository accountrepo.Repository
	Logger     *slog.Logger
}

// App owns the ledger and its persistence backend. Every access to the ledger goes
// through View or Update, which serialize callers so the ledger only ever sees one
// at a time.
type App struct {
	Deps   *Deps
	Config *config.App

	mu     sync.Mutex
	ledger *ledger.Ledger
}

// New loads the ledger from the configured backend.
//
// The csv backend follows ledger.Load and never fails. A database backend that
// cannot be listed is an error: starting empty would let the next save wipe it.
func New(ctx context.Context, deps *Deps, cfg *config.App) (*App, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	a := &App{Deps: deps, Config: cfg}

	if deps.Repository == nil {
		a.ledger = ledger.Load(cfg.Ledger.File, deps.Logger)
		return a, nil
	}
	records, err := deps.Repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger from %s: %w", cfg.Ledger.Backend, err)
	}
	a.ledger = ledger.FromRecords(records, deps.Logger)
	deps.Logger.Info("Ledger loaded", "backend", cfg.Ledger.Backend, "accounts", a.ledger.Len())
	return a, nil
}

// View runs fn with exclusive access to the ledger. fn must not mutate it.
func (a *App) View(fn func(l *ledger.Ledger) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn(a.ledger)
}

// Update runs fn with exclusive access to the ledger. When auto-save is enabled and
// fn succeeds, the ledger is persisted before the lock is released; a failed
// auto-save is logged and does not undo or fail the mutation.
func (a *App) Update(ctx context.Context, fn func(l *ledger.Ledger) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := fn(a.ledger); err != nil {
		return err
	}
	if a.Config.Ledger.AutoSave {
		if err := a.persist(ctx); err != nil {
			a.Deps.Logger.Error("Auto-save failed", "error", err)
		}
	}
	return nil
}

// Persist writes the ledger to the configured backend.
func (a *App) Persist(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.persist(ctx)
}

// Location describes where Persist writes, for user-facing messages.
func (a *App) Location() string {
	if a.Deps.Repository == nil {
		return a.Config.Ledger.File
	}
	return a.Config.Ledger.Backend + " database"
}

func (a *App) persist(ctx context.Context) error {
	if a.Deps.Repository == nil {
		return a.ledger.Save(a.Config.Ledger.File)
	}
	if err := a.Deps.Repository.ReplaceAll(ctx, a.ledger.Records()); err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrPersistence, err)
	}
	a.Deps.Logger.Info("Ledger saved", "backend", a.Config.Ledger.Backend, "accounts", a.ledger.Len())
	return nil
}
