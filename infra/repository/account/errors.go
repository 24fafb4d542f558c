package account

import (
	"errors"
	"fmt"

	"github.com/amirasaad/ledger/pkg/domain"
	"gorm.io/gorm"
)

// mapGormError tags gorm errors with the matching domain kind so callers can
// use errors.Is against pkg/domain. The original error stays in the chain.
// Duplicate keys are only reported when the connection has TranslateError set.
func mapGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", domain.ErrAlreadyExists, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	default:
		return err
	}
}

// wrapError runs a gorm operation and maps its error.
func wrapError(op func() error) error {
	return mapGormError(op())
}
