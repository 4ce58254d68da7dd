package handlers

import (
	"net/http"
	"strings"

	"rates-service/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RatesHandler struct {
	service *services.RateService
	logger  *zap.Logger
}

func NewRatesHandler(service *services.RateService, logger *zap.Logger) *RatesHandler {
	return &RatesHandler{service: service, logger: logger}
}

// GetBTC handles GET /rates/btc?currencies=USD,EUR.
func (h *RatesHandler) GetBTC(w http.ResponseWriter, r *http.Request) {
	currencies := strings.Split(r.URL.Query().Get("currencies"), ",")
	res, err := h.service.BTCCoingecko(r.Context(), currencies)
	writeResult(w, h.logger, res, err)
}

func (h *RatesHandler) GetNimiqCryptoCompare(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.NimiqCryptoCompareAvg(r.Context())
	writeResult(w, h.logger, res, err)
}

func (h *RatesHandler) GetNimiqPoloniex(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.NimiqPoloniex(r.Context())
	writeResult(w, h.logger, res, err)
}

func (h *RatesHandler) GetNimiqBTC(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.CoingeckoNimiqBTC(r.Context())
	writeResult(w, h.logger, res, err)
}

func (h *RatesHandler) GetLocalBitcoinsCurrencies(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.LocalBitcoinsCurrencies(r.Context())
	writeResult(w, h.logger, res, err)
}

// GetLocalBitcoins handles GET /rates/localbitcoins/{coin}.
func (h *RatesHandler) GetLocalBitcoins(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.BTCLocalBitcoins(r.Context(), chi.URLParam(r, "coin"))
	writeResult(w, h.logger, res, err)
}
