package bootstrap

import (
	"net/http"

	"rates-service/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func InitRoutes(h *HandlersBundle, registry *prometheus.Registry, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/rates", func(r chi.Router) {
		r.Get("/btc", h.RatesHandler.GetBTC)
		r.Get("/nim/cryptocompare", h.RatesHandler.GetNimiqCryptoCompare)
		r.Get("/nim/poloniex", h.RatesHandler.GetNimiqPoloniex)
		r.Get("/nim/btc", h.RatesHandler.GetNimiqBTC)
		r.Get("/localbitcoins", h.RatesHandler.GetLocalBitcoinsCurrencies)
		r.Get("/localbitcoins/{coin}", h.RatesHandler.GetLocalBitcoins)
	})

	r.Route("/invoices", func(r chi.Router) {
		r.Post("/cointext", h.InvoiceHandler.CreateCoinText)
		r.Post("/nimiqtext", h.InvoiceHandler.CreateNimiqText)
	})

	return r
}
