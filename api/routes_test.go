package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/session"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
)

func newTestRouter(t *testing.T, prefix string) (http.Handler, *sqlconfig.MockITransactionTable) {
	t.Helper()
	logger := logging.SetupLogging()
	logger.Out = io.Discard

	mockTable := sqlconfig.NewMockITransactionTable(t)
	store := &storage.Storage{Transactions: mockTable}
	rest := &Rest{
		Logger:      logger,
		RoutePrefix: prefix,
		Service:     service.NewService(store),
		Storage:     store,
		Resolver:    session.NewResolver(session.DefaultMaxAge),
	}
	return rest.Router(), mockTable
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_BuildsEveryOperation(t *testing.T) {
	logger := logging.SetupLogging()
	logger.Out = io.Discard
	store := &storage.Storage{Transactions: sqlconfig.NewMockITransactionTable(t)}
	rest := &Rest{
		Logger:   logger,
		Service:  service.NewService(store),
		Storage:  store,
		Resolver: session.NewResolver(session.DefaultMaxAge),
	}

	assert.NotPanics(t, func() { rest.Router() })
}

func TestRouter_StatusWithoutDatabase(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := serve(router, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_OpenAPI(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := serve(router, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "list-transactions")
	assert.Contains(t, w.Body.String(), "create-transaction")
}

func TestRouter_ReadRoutesRequireSession(t *testing.T) {
	router, _ := newTestRouter(t, "")

	for _, path := range []string{"/", "/summary", "/0b6c1b5e-8a52-4bde-9f43-2f6f0e1d7a11"} {
		w := serve(router, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRouter_RoutePrefix(t *testing.T) {
	router, mockTable := newTestRouter(t, "/transactions")
	mockTable.EXPECT().Sum(mock.Anything, "abc").Return(decimal.NullDecimal{
		Decimal: decimal.RequireFromString("12.5"),
		Valid:   true,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/transactions/summary", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "abc"})
	w := serve(router, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Summary struct {
			Amount *float64 `json:"amount"`
		} `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.NotNil(t, body.Summary.Amount)
	assert.Equal(t, 12.5, *body.Summary.Amount)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/summary", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
