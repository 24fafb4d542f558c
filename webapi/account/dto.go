package account

import (
	domainaccount "github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/dto"
)

// CreateAccountRequest represents the request body for opening a new account.
// Format rules for the number, name and balance are enforced by the domain.
type CreateAccountRequest struct {
	Number         string   `json:"number" form:"number" validate:"required"`
	HolderName     string   `json:"holder_name" form:"holder_name" validate:"required"`
	InitialBalance *float64 `json:"initial_balance" form:"initial_balance" validate:"required"`
}

// AmountRequest represents the request body for deposits and withdrawals.
type AmountRequest struct {
	Amount *float64 `json:"amount" form:"amount" validate:"required"`
}

// RenameRequest represents the request body for changing the holder name.
type RenameRequest struct {
	HolderName string `json:"holder_name" form:"holder_name" validate:"required"`
}

func toRead(a domainaccount.Account) dto.AccountRead {
	return dto.AccountRead{
		Number:     a.Number(),
		HolderName: a.HolderName(),
		Balance:    a.Balance(),
	}
}

func toReadList(accs []domainaccount.Account) []dto.AccountRead {
	out := make([]dto.AccountRead, 0, len(accs))
	for _, a := range accs {
		out = append(out, toRead(a))
	}
	return out
}
