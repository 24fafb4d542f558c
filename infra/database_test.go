package infra_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amirasaad/ledger/infra"
	infrarepo "github.com/amirasaad/ledger/infra/repository/account"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDBConnectionErrors(t *testing.T) {
	t.Parallel()

	_, err := infra.NewDBConnection(&config.DB{}, config.BackendSQLite, "test")
	assert.EqualError(t, err, "DATABASE_URL is not set")

	_, err = infra.NewDBConnection(&config.DB{Url: "x"}, config.BackendCSV, "test")
	assert.EqualError(t, err, `backend "csv" has no database`)
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()
	db, err := infra.NewDBConnection(
		&config.DB{Url: filepath.Join(t.TempDir(), "ledger.db")},
		config.BackendSQLite,
		"test",
	)
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0") {
		t.Skip("sqlite driver needs cgo")
	}
	require.NoError(t, err)
	require.NoError(t, infrarepo.Migrate(db))

	ctx := context.Background()
	repo := infrarepo.New(db)
	records := []dto.AccountRecord{
		{Number: "B002", HolderName: "Bob", Balance: 3},
		{Number: "A001", HolderName: "Alice", Balance: 10.5},
	}
	require.NoError(t, repo.ReplaceAll(ctx, records))
	require.NoError(t, repo.ReplaceAll(ctx, records[1:]))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, records[1:], got)
}
