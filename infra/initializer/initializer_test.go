package initializer

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDependenciesCSV(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	var logs bytes.Buffer
	cfg := &config.App{
		Env: "test",
		Log: &config.Log{Format: "json", Prefix: "[ledger]"},
		DB:  &config.DB{},
		Ledger: &config.Ledger{
			File:    filepath.Join(t.TempDir(), "accounts.csv"),
			Backend: config.BackendCSV,
		},
	}

	a, err := InitializeDependencies(context.Background(), cfg, &logs)
	require.NoError(t, err)
	assert.Nil(t, a.Deps.Repository)
	require.NoError(t, a.View(func(l *ledger.Ledger) error {
		assert.Zero(t, l.Len())
		return nil
	}))
	assert.Contains(t, logs.String(), "Dependencies initialized")
}

func TestInitializeDependenciesMissingDatabaseURL(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	var logs bytes.Buffer
	cfg := &config.App{
		Env:    "test",
		Log:    &config.Log{Format: "text"},
		DB:     &config.DB{},
		Ledger: &config.Ledger{Backend: config.BackendPostgres},
	}

	_, err := InitializeDependencies(context.Background(), cfg, &logs)
	assert.ErrorContains(t, err, "DATABASE_URL is not set")
}

func TestSetupLoggerFiltersByLevel(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	var out bytes.Buffer
	logger := setupLogger(&config.Log{Level: 1, Format: "json"}, &out)

	logger.Info("hidden")
	logger.Warn("shown", "number", "A001")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
	assert.Contains(t, out.String(), "A001")
}
