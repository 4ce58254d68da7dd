package bootstrap

import (
	"rates-service/internal/api"
	"rates-service/internal/cache"
	"rates-service/internal/handlers"
	"rates-service/internal/services"

	"go.uber.org/zap"
)

type HandlersBundle struct {
	RatesHandler   *handlers.RatesHandler
	InvoiceHandler *handlers.InvoiceHandler
}

type BootstrapBundle struct {
	Handlers *HandlersBundle
	Services struct {
		Rates    *services.RateService
		Invoices *services.InvoiceService
	}
}

// InitBootstrap wires services and handlers. publisher may be nil when
// Kafka is disabled.
func InitBootstrap(
	c *cache.Cache,
	client *api.Client,
	publisher services.Publisher,
	logger *zap.Logger,
) *BootstrapBundle {
	rateService := services.NewRateService(c, client, publisher)
	invoiceService := services.NewInvoiceService(client, logger)

	b := &BootstrapBundle{
		Handlers: &HandlersBundle{
			RatesHandler:   handlers.NewRatesHandler(rateService, logger),
			InvoiceHandler: handlers.NewInvoiceHandler(invoiceService, logger),
		},
	}
	b.Services.Rates = rateService
	b.Services.Invoices = invoiceService
	return b
}
