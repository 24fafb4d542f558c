// Package webapi exposes the ledger over HTTP.
// - account: account, query and persistence endpoints
// - common: response envelopes, error mapping and request validation
package webapi

import (
	"os"

	_ "github.com/amirasaad/ledger/docs" // registers the OpenAPI document
	ledgerapp "github.com/amirasaad/ledger/pkg/app"
	accountweb "github.com/amirasaad/ledger/webapi/account"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *ledgerapp.App) *fiber.App {
	// Immutable: handler strings end up stored in the ledger, so they must not
	// alias fasthttp's reused request buffers.
	fiberApp := fiber.New(fiber.Config{
		AppName:   "ledger",
		Immutable: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ErrorResponseJSON(c, status, "Request failed", err.Error())
		},
	})

	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled: true,
	}))

	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New(logger.Config{
		Output: os.Stderr,
		Next: func(*fiber.Ctx) bool {
			return app.Config.Env == "test"
		},
	}))

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Ledger API is running! 🚀")
	})

	// Debug endpoint to list all routes
	fiberApp.Get("/debug/routes", func(c *fiber.Ctx) error {
		var routeList []fiber.Map
		for _, route := range fiberApp.GetRoutes(true) {
			routeList = append(routeList, fiber.Map{
				"method": route.Method,
				"path":   route.Path,
			})
		}
		return c.JSON(routeList)
	})

	accountweb.Routes(fiberApp, app)
	return fiberApp
}
