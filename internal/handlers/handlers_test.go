package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rates-service/internal/api"
	"rates-service/internal/cache"
	"rates-service/internal/models"
	"rates-service/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRatesAPI struct {
	err error
}

func (s stubRatesAPI) BTCPrices(_ context.Context, currencies []string) (map[string]float64, error) {
	out := make(map[string]float64, len(currencies))
	for _, c := range currencies {
		out[c] = 6500.5
	}
	return out, s.err
}

func (s stubRatesAPI) NimiqAverage(context.Context) (float64, error) { return 0.02528, s.err }

func (s stubRatesAPI) PoloniexTrades(context.Context) ([]models.Trade, error) {
	return []models.Trade{{Total: 1, Amount: 4}}, s.err
}

func (s stubRatesAPI) NimiqBTC(context.Context) (float64, error) { return 1.2e-7, s.err }

func (s stubRatesAPI) LocalBitcoinsRates(context.Context) (map[string]float64, error) {
	return map[string]float64{"VES": 51234567.89, "USD": 6601.1}, s.err
}

type stubInvoiceAPI struct {
	err error
}

func (s stubInvoiceAPI) CoinTextInvoice(context.Context, string, float64) (string, error) {
	return "ct_8f2a", s.err
}

func (s stubInvoiceAPI) NimiqTextInvoice(context.Context, string, float64) (string, error) {
	return "48213", s.err
}

type downStore struct{ cache.Store }

func (downStore) Get(context.Context, string) (mo.Option[string], error) {
	return mo.None[string](), errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")
}

func newRouter(store cache.Store, rates stubRatesAPI, invoices stubInvoiceAPI) chi.Router {
	logger := zap.NewNop()
	rh := NewRatesHandler(services.NewRateService(cache.New(store), rates, nil), logger)
	ih := NewInvoiceHandler(services.NewInvoiceService(invoices, logger), logger)

	r := chi.NewRouter()
	r.Get("/rates/btc", rh.GetBTC)
	r.Get("/rates/nim/cryptocompare", rh.GetNimiqCryptoCompare)
	r.Get("/rates/nim/poloniex", rh.GetNimiqPoloniex)
	r.Get("/rates/nim/btc", rh.GetNimiqBTC)
	r.Get("/rates/localbitcoins", rh.GetLocalBitcoinsCurrencies)
	r.Get("/rates/localbitcoins/{coin}", rh.GetLocalBitcoins)
	r.Post("/invoices/cointext", ih.CreateCoinText)
	r.Post("/invoices/nimiqtext", ih.CreateNimiqText)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestRates_OK(t *testing.T) {
	r := newRouter(cache.NewMemoryStore(), stubRatesAPI{}, stubInvoiceAPI{})

	cases := map[string]any{
		"/rates/btc?currencies=usd,eur": map[string]any{"EUR": 6500.5, "USD": 6500.5},
		"/rates/nim/cryptocompare":      0.02528,
		"/rates/nim/poloniex":           0.25,
		"/rates/nim/btc":                1.2e-7,
		"/rates/localbitcoins":          []any{"USD", "VES"},
		"/rates/localbitcoins/ves":      51234567.89,
	}
	for path, want := range cases {
		code, body := do(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, code, path)
		assert.Equal(t, want, body["value"], path)
	}
}

func TestRates_ErrorMapping(t *testing.T) {
	ok := newRouter(cache.NewMemoryStore(), stubRatesAPI{}, stubInvoiceAPI{})
	failing := newRouter(cache.NewMemoryStore(), stubRatesAPI{err: api.ErrMalformedResponse}, stubInvoiceAPI{})
	down := newRouter(downStore{}, stubRatesAPI{}, stubInvoiceAPI{})

	cases := []struct {
		name   string
		router http.Handler
		path   string
		want   int
	}{
		{"no currencies", ok, "/rates/btc", http.StatusBadRequest},
		{"wildcard currency", ok, "/rates/btc?currencies=U%3FD", http.StatusBadRequest},
		{"unknown coin", ok, "/rates/localbitcoins/XYZ", http.StatusNotFound},
		{"upstream failure", failing, "/rates/nim/btc", http.StatusBadGateway},
		{"store down", down, "/rates/nim/cryptocompare", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := do(t, tc.router, http.MethodGet, tc.path, "")
			assert.Equal(t, tc.want, code)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRates_StoreErrorHidesDetails(t *testing.T) {
	r := newRouter(downStore{}, stubRatesAPI{}, stubInvoiceAPI{})

	_, body := do(t, r, http.MethodGet, "/rates/nim/btc", "")

	assert.Equal(t, "cache unavailable", body["error"])
}

func TestInvoices(t *testing.T) {
	r := newRouter(cache.NewMemoryStore(), stubRatesAPI{}, stubInvoiceAPI{})

	code, body := do(t, r, http.MethodPost, "/invoices/cointext", `{"address":"NQ07 0000","amount":12.5}`)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, map[string]any{"gateway": "cointext", "id": "ct_8f2a"}, body)

	code, body = do(t, r, http.MethodPost, "/invoices/nimiqtext", `{"address":"NQ07 0000","amount":3.25}`)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "48213", body["id"])
}

func TestInvoices_Errors(t *testing.T) {
	ok := newRouter(cache.NewMemoryStore(), stubRatesAPI{}, stubInvoiceAPI{})
	failing := newRouter(cache.NewMemoryStore(), stubRatesAPI{}, stubInvoiceAPI{err: &api.StatusError{StatusCode: 500}})

	code, _ := do(t, ok, http.MethodPost, "/invoices/cointext", `{"address":`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, ok, http.MethodPost, "/invoices/cointext", `{"address":"NQ07 0000","amount":0}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, failing, http.MethodPost, "/invoices/nimiqtext", `{"address":"NQ07 0000","amount":1}`)
	assert.Equal(t, http.StatusBadGateway, code)
}
