package main_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/amirasaad/ledger/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRoute(t *testing.T) {
	app, _, _ := testutils.SetupTestApp(t)

	resp := testutils.MakeRequest(app, http.MethodGet, "/", "")
	defer resp.Body.Close() //nolint:errcheck

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Ledger API is running")
}

func TestDebugRoutesListsAccountEndpoints(t *testing.T) {
	app, _, _ := testutils.SetupTestApp(t)

	resp := testutils.MakeRequest(app, http.MethodGet, "/debug/routes", "")
	defer resp.Body.Close() //nolint:errcheck

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"path":"/accounts/:number/withdraw"`)
	assert.Contains(t, string(body), `"path":"/ledger/save"`)
}

func TestSwaggerDocument(t *testing.T) {
	app, _, _ := testutils.SetupTestApp(t)

	resp := testutils.MakeRequest(app, http.MethodGet, "/swagger/doc.json", "")
	defer resp.Body.Close() //nolint:errcheck

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"title": "Ledger API"`)
	for _, path := range []string{"/accounts", "/accounts/{number}/deposit", "/accounts/{number}/withdraw", "/ledger/save"} {
		assert.Contains(t, string(body), `"`+path+`"`)
	}
}
