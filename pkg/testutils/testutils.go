// Package testutils holds helpers shared by the HTTP tests.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	ledgerapp "github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// SetupTestApp builds a fiber app over an empty csv-backed ledger stored in a
// temporary directory. The csv file path is returned alongside.
func SetupTestApp(t *testing.T) (*fiber.App, *ledgerapp.App, string) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "accounts.csv")
	cfg := &config.App{
		Env: "test",
		Ledger: &config.Ledger{
			File:    file,
			Backend: config.BackendCSV,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := ledgerapp.New(context.Background(), &ledgerapp.Deps{Logger: logger}, cfg)
	require.NoError(t, err)
	return webapi.SetupApp(a), a, file
}

// MakeRequest is a helper for making HTTP requests in tests
func MakeRequest(app *fiber.App, method, path, body string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err) // For standalone tests, panic on error
	}
	return resp
}

// MakeFormRequest sends body as application/x-www-form-urlencoded.
func MakeFormRequest(app *fiber.App, method, path string, form url.Values) *http.Response {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err) // For standalone tests, panic on error
	}
	return resp
}

// DecodeBody decodes the response body as JSON into a fresh T.
func DecodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
