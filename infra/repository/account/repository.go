package account

import (
	"context"

	"github.com/amirasaad/ledger/pkg/dto"
	repo "github.com/amirasaad/ledger/pkg/repository/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a gorm-backed account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Migrate creates or updates the ledger_accounts table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{})
}

// List implements account.Repository.
func (r *repository) List(ctx context.Context) ([]dto.AccountRecord, error) {
	var accts []Account
	err := wrapError(func() error {
		return r.db.WithContext(ctx).Order("position").Find(&accts).Error
	})
	if err != nil {
		return nil, err
	}
	result := make([]dto.AccountRecord, 0, len(accts))
	for i := range accts {
		result = append(result, mapModelToDTO(&accts[i]))
	}
	return result, nil
}

// ReplaceAll implements account.Repository.
func (r *repository) ReplaceAll(ctx context.Context, records []dto.AccountRecord) error {
	return wrapError(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("1 = 1").Delete(&Account{}).Error; err != nil {
				return err
			}
			if len(records) == 0 {
				return nil
			}
			models := make([]Account, 0, len(records))
			for i, rec := range records {
				models = append(models, mapDTOToModel(rec, i))
			}
			return tx.Create(&models).Error
		})
	})
}

func mapDTOToModel(rec dto.AccountRecord, position int) Account {
	return Account{
		ID:         uuid.New(),
		Number:     rec.Number,
		HolderName: rec.HolderName,
		Balance:    rec.Balance,
		Position:   position,
	}
}

func mapModelToDTO(acct *Account) dto.AccountRecord {
	return dto.AccountRecord{
		Number:     acct.Number,
		HolderName: acct.HolderName,
		Balance:    acct.Balance,
	}
}
