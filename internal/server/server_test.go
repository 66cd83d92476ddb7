package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Clarifier/internal/auth"
	"Clarifier/internal/config"
	"Clarifier/internal/repo"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyRepo struct{}

func (emptyRepo) CreateScenario(context.Context, string, float64, float64) (int, error) {
	return 1, nil
}
func (emptyRepo) ListScenarios(context.Context) ([]repo.Scenario, error) { return nil, nil }
func (emptyRepo) DeleteScenario(context.Context, int) error { return repo.ErrNotFound }

func newServer(t *testing.T, cfg config.Config, r repo.Repository) *httptest.Server {
	t.Helper()
	router := mux.NewRouter()
	require.NoError(t, HandleList(router, cfg, r))
	srv := httptest.NewServer(CORS(router))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	return res
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.RateLimit = 1000
	cfg.RateBurst = 1000
	cfg.StaticDir = ""
	return cfg
}

func TestPublicRoutes(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	res := do(t, "POST", srv.URL+"/api/tools/settling/check", "", `{"mlss":3500,"equivalent_flow":100}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = do(t, "POST", srv.URL+"/api/tools/settling/solve", "", `{"mode":"slr","mlss":3500,"equivalent_flow":100}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = do(t, "GET", srv.URL+"/api/tools/settling/ranges", "", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = do(t, "GET", srv.URL+"/api/i18n/languages", "", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = do(t, "GET", srv.URL+"/api/tools/settling/check", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	res = do(t, "OPTIONS", srv.URL+"/api/tools/settling/check", "", "")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestSecureRoutesWithKey(t *testing.T) {
	cfg := testConfig()
	cfg.TokenKey = "k"
	srv := newServer(t, cfg, emptyRepo{})

	res := do(t, "GET", srv.URL+"/api/export/table", "", "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	tok, err := auth.IssueToken([]byte("k"), "operator", time.Hour)
	require.NoError(t, err)

	res = do(t, "GET", srv.URL+"/api/export/table", tok, "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = do(t, "GET", srv.URL+"/api/scenarios", tok, "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = do(t, "DELETE", srv.URL+"/api/scenarios/3", tok, "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSecureRoutesWithoutKey(t *testing.T) {
	srv := newServer(t, testConfig(), emptyRepo{})

	res := do(t, "GET", srv.URL+"/api/export/table", "", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = do(t, "GET", srv.URL+"/api/scenarios", "", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHandleListRejectsBadArea(t *testing.T) {
	cfg := testConfig()
	cfg.Area = 0
	assert.Error(t, HandleList(mux.NewRouter(), cfg, nil))
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	srv := newServer(t, cfg, nil)

	res := do(t, "GET", srv.URL+"/api/tools/settling/ranges", "", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res = do(t, "GET", srv.URL+"/api/tools/settling/ranges", "", "")
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
}
