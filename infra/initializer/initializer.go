package initializer

import (
	"context"
	"fmt"
	"io"

	"github.com/amirasaad/ledger/infra"
	infrarepo "github.com/amirasaad/ledger/infra/repository/account"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
)

// InitializeDependencies sets up logging, opens the configured ledger backend and
// returns the loaded App. Logs go to logOut, or stderr when it is nil.
func InitializeDependencies(ctx context.Context, cfg *config.App, logOut io.Writer) (*app.App, error) {
	logger := setupLogger(cfg.Log, logOut)
	deps := &app.Deps{Logger: logger}

	if cfg.Ledger.Backend != config.BackendCSV {
		db, err := infra.NewDBConnection(cfg.DB, cfg.Ledger.Backend, cfg.Env)
		if err != nil {
			logger.Error("Failed to initialize database", "error", err)
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := infrarepo.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate ledger schema: %w", err)
		}
		deps.Repository = infrarepo.New(db)
	}

	a, err := app.New(ctx, deps, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Dependencies initialized", "backend", cfg.Ledger.Backend, "location", a.Location())
	return a, nil
}
