package account

import (
	"strconv"

	ledgerapp "github.com/amirasaad/ledger/pkg/app"
	domainaccount "github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/ledger"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the account endpoints.
//
// Routes:
//   - POST   /accounts                  : Open a new account.
//   - GET    /accounts                  : List every account in ledger order.
//   - GET    /accounts/search?name=     : Holder name contains (case-insensitive).
//   - GET    /accounts/range?min=&max=  : Balance within an inclusive range.
//   - GET    /accounts/top?n=           : Top n accounts by balance (default 3).
//   - GET    /accounts/filter?min=      : Balance at least min.
//   - GET    /accounts/stats            : Count, total and average balance.
//   - GET    /accounts/:number          : Look up one account.
//   - PATCH  /accounts/:number          : Rename the holder.
//   - POST   /accounts/:number/deposit  : Deposit funds.
//   - POST   /accounts/:number/withdraw : Withdraw funds.
//   - POST   /ledger/save               : Persist the ledger to its backend.
func Routes(app *fiber.App, a *ledgerapp.App) {
	g := app.Group("/accounts")
	g.Post("/", CreateAccount(a))
	g.Get("/", ListAccounts(a))
	g.Get("/search", SearchByName(a))
	g.Get("/range", BalanceRange(a))
	g.Get("/top", TopByBalance(a))
	g.Get("/filter", FilterByMinBalance(a))
	g.Get("/stats", Stats(a))
	g.Get("/:number", GetAccount(a))
	g.Patch("/:number", RenameHolder(a))
	g.Post("/:number/deposit", Deposit(a))
	g.Post("/:number/withdraw", Withdraw(a))
	app.Post("/ledger/save", Save(a))
}

// CreateAccount returns a handler that opens a new account.
// @Summary Open a new account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account details"
// @Success 201 {object} common.Response{data=dto.AccountRead} "Account created"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 409 {object} common.ProblemDetails "Account number already exists"
// @Router /accounts [post]
func CreateAccount(a *ledgerapp.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err // error response already written
		}
		var created domainaccount.Account
		err = a.Update(c.UserContext(), func(l *ledger.Ledger) error {
			var err error
			created, err = l.CreateAccount(input.Number, input.HolderName, *input.InitialBalance)
			return err
		})
		if err != nil {
			a.Deps.Logger.Warn("Failed to create account", "number", input.Number, "error", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		a.Deps.Logger.Info("Account created", "number", created.Number())
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", toRead(created))
	}
}

// ListAccounts returns a handler listing every account in ledger order.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response{data=[]dto.AccountRead}
// @Router /accounts [get]
func ListAccounts(a *ledgerapp.App) fiber.Handler {
	return query(a, "Accounts fetched", func(_ *fiber.Ctx, l *ledger.Ledger) ([]domainaccount.Account, error) {
		return l.All(), nil
	})
}

// SearchByName returns a handler matching holder names by substring.
// @Summary Search accounts by holder name
// @Tags queries
// @Produce json
// @Param name query string false "Case-insensitive substring"
// @Success 200 {object} common.Response{data=[]dto.AccountRead}
// @Router /accounts/search [get]
func SearchByName(a *ledgerapp.App) fiber.Handler {
	return query(a, "Accounts fetched", func(c *fiber.Ctx, l *ledger.Ledger) ([]domainaccount.Account, error) {
		return l.FindByName(c.Query("name")), nil
	})
}

// BalanceRange returns a handler filtering balances within [min, max].
// @Summary Accounts with a balance in an inclusive range
// @Tags queries
// @Produce json
// @Param min query number true "Lower bound"
// @Param max query number true "Upper bound"
// @Success 200 {object} common.Response{data=[]dto.AccountRead}
// @Failure 400 {object} common.ProblemDetails "Invalid query"
// @Router /accounts/range [get]
func BalanceRange(a *ledgerapp.App) fiber.Handler {
	return query(a, "Accounts fetched", func(c *fiber.Ctx, l *ledger.Ledger) ([]domainaccount.Account, error) {
		lo, err := floatQuery(c, "min")
		if err != nil {
			return nil, err
		}
		hi, err := floatQuery(c, "max")
		if err != nil {
			return nil, err
		}
		return l.FindByBalanceRange(lo, hi), nil
	})
}

// TopByBalance returns a handler listing the richest n accounts.
// @Summary Top accounts by balance
// @Tags queries
// @Produce json
// @Param n query int false "How many accounts" default(3)
// @Success 200 {object} common.Response{data=[]dto.AccountRead}
// @Failure 400 {object} common.ProblemDetails "Invalid query"
// @Router /accounts/top [get]
func TopByBalance(a *ledgerapp.App) fiber.Handler {
	return query(a, "Accounts fetched", func(c *fiber.Ctx, l *ledger.Ledger) ([]domainaccount.Account, error) {
		n := 3
		if raw := c.Query("n"); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return nil, badQuery("n", raw)
			}
			n = v
		}
		return l.TopNByBalance(n), nil
	})
}

// FilterByMinBalance returns a handler listing accounts with balance >= min.
// @Summary Accounts with at least a minimum balance
// @Tags queries
// @Produce json
// @Param min query number true "Minimum balance"
// @Success 200 {object} common.Response{data=[]dto.AccountRead}
// @Failure 400 {object} common.ProblemDetails "Invalid query"
// @Router /accounts/filter [get]
func FilterByMinBalance(a *ledgerapp.App) fiber.Handler {
	return query(a, "Accounts fetched", func(c *fiber.Ctx, l *ledger.Ledger) ([]domainaccount.Account, error) {
		floor, err := floatQuery(c, "min")
		if err != nil {
			return nil, err
		}
		return l.FilterByMinBalance(floor), nil
	})
}

// Stats returns a handler reporting the ledger aggregates.
// @Summary Count, total and average balance
// @Tags queries
// @Produce json
// @Success 200 {object} common.Response{data=dto.BalanceSummary}
// @Router /accounts/stats [get]
func Stats(a *ledgerapp.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var summary dto.BalanceSummary
		_ = a.View(func(l *ledger.Ledger) error {
			summary = dto.BalanceSummary{
				Count:   l.Len(),
				Total:   l.TotalBalance(),
				Average: l.AverageBalance(),
			}
			return nil
		})
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance summary", summary)
	}
}

// GetAccount returns a handler looking up one account, ignoring case.
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param number path string true "Account number"
// @Success 200 {object} common.Response{data=dto.AccountRead}
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /accounts/{number} [get]
func GetAccount(a *ledgerapp.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("number")
		var (
			found domainaccount.Account
			ok    bool
		)
		_ = a.View(func(l *ledger.Ledger) error {
			found, ok = l.GetByNumber(number)
			return nil
		})
		if !ok {
			return common.ProblemDetailsJSON(c, "Account not found", ledger.ErrAccountNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", toRead(found))
	}
}

// RenameHolder returns a handler replacing the holder name.
// @Summary Rename the account holder
// @Tags accounts
// @Accept json
// @Produce json
// @Param number path string true "Account number"
// @Param request body RenameRequest true "New holder name"
// @Success 200 {object} common.Response{data=dto.AccountRead}
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /accounts/{number} [patch]
func RenameHolder(a *ledgerapp.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RenameRequest](c)
		if input == nil {
			return err
		}
		return mutate(c, a, "Holder renamed", func(l *ledger.Ledger, number string) error {
			return l.SetHolderName(number, input.HolderName)
		})
	}
}

// Deposit returns a handler crediting an account.
// @Summary Deposit funds into an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param number path string true "Account number"
// @Param request body AmountRequest true "Deposit amount"
// @Success 200 {object} common.Response{data=dto.AccountRead} "Deposit successful"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /accounts/{number}/deposit [post]
func Deposit(a *ledgerapp.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		return mutate(c, a, "Deposit successful", func(l *ledger.Ledger, number string) error {
			return l.Deposit(number, *input.Amount)
		})
	}
}

// Withdraw returns a handler debiting an account.
// @Summary Withdraw funds from an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param number path string true "Account number"
// @Param request body AmountRequest true "Withdrawal amount"
// @Success 200 {object} common.Response{data=dto.AccountRead} "Withdrawal successful"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 422 {object} common.ProblemDetails "Insufficient funds"
// @Router /accounts/{number}/withdraw [post]
func Withdraw(a *ledgerapp.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		return mutate(c, a, "Withdrawal successful", func(l *ledger.Ledger, number string) error {
			return l.Withdraw(number, *input.Amount)
		})
	}
}

// Save returns a handler persisting the ledger.
// @Summary Persist the ledger to its backend
// @Tags ledger
// @Produce json
// @Success 200 {object} common.Response "Ledger saved"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /ledger/save [post]
func Save(a *ledgerapp.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Persist(c.UserContext()); err != nil {
			a.Deps.Logger.Error("Failed to save ledger", "error", err)
			return common.ProblemDetailsJSON(c, "Failed to save ledger", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Ledger saved", fiber.Map{"location": a.Location()})
	}
}

// mutate applies op to the account named in the path and replies with its new state.
func mutate(
	c *fiber.Ctx,
	a *ledgerapp.App,
	message string,
	op func(l *ledger.Ledger, number string) error,
) error {
	number := c.Params("number")
	var updated domainaccount.Account
	err := a.Update(c.UserContext(), func(l *ledger.Ledger) error {
		if err := op(l, number); err != nil {
			return err
		}
		updated, _ = l.GetByNumber(number)
		return nil
	})
	if err != nil {
		a.Deps.Logger.Warn(message+" failed", "number", number, "error", err)
		return common.ProblemDetailsJSON(c, "Operation failed", err)
	}
	return common.SuccessResponseJSON(c, fiber.StatusOK, message, toRead(updated))
}

func query(
	a *ledgerapp.App,
	message string,
	run func(c *fiber.Ctx, l *ledger.Ledger) ([]domainaccount.Account, error),
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accs []domainaccount.Account
		err := a.View(func(l *ledger.Ledger) error {
			var err error
			accs, err = run(c, l)
			return err
		})
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid query", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, message, toReadList(accs))
	}
}

func floatQuery(c *fiber.Ctx, key string) (float64, error) {
	raw := c.Query(key)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, badQuery(key, raw)
	}
	return v, nil
}

func badQuery(key, raw string) error {
	return fiber.NewError(fiber.StatusBadRequest, "query parameter "+key+" must be a number, got "+strconv.Quote(raw))
}
