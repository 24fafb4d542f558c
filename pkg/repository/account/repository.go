package account

import (
	"context"

	"github.com/amirasaad/ledger/pkg/dto"
)

// Repository persists the whole ledger as an ordered set of rows.
type Repository interface {
	// List returns every stored row in ledger order.
	List(ctx context.Context) ([]dto.AccountRecord, error)

	// ReplaceAll atomically replaces every stored row with records, keeping their order.
	ReplaceAll(ctx context.Context, records []dto.AccountRecord) error
}
