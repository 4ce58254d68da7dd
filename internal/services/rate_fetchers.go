package services

import (
	"context"
	"strings"

	"rates-service/internal/api"
	"rates-service/internal/models"
)

// RatesAPI is the upstream surface the rate fetchers need.
type RatesAPI interface {
	BTCPrices(ctx context.Context, currencies []string) (map[string]float64, error)
	NimiqAverage(ctx context.Context) (float64, error)
	PoloniexTrades(ctx context.Context) ([]models.Trade, error)
	NimiqBTC(ctx context.Context) (float64, error)
	LocalBitcoinsRates(ctx context.Context) (map[string]float64, error)
}

type CoingeckoBTCFetcher struct{ API RatesAPI }

func (CoingeckoBTCFetcher) Source() string { return "coingecko" }

// CacheKey expects already normalized currencies so that equal sets share a key.
func (CoingeckoBTCFetcher) CacheKey(params ...string) string {
	return "rates:coingecko:btc:" + strings.Join(params, ",")
}

func (f CoingeckoBTCFetcher) Fetch(ctx context.Context, params ...string) (map[string]float64, error) {
	return f.API.BTCPrices(ctx, params)
}

type CryptoCompareNimiqFetcher struct{ API RatesAPI }

func (CryptoCompareNimiqFetcher) Source() string { return "cryptocompare" }

func (CryptoCompareNimiqFetcher) CacheKey(...string) string { return "rates:cryptocompare:nim" }

func (f CryptoCompareNimiqFetcher) Fetch(ctx context.Context, _ ...string) (float64, error) {
	return f.API.NimiqAverage(ctx)
}

type PoloniexNimiqFetcher struct{ API RatesAPI }

func (PoloniexNimiqFetcher) Source() string { return "poloniex" }

func (PoloniexNimiqFetcher) CacheKey(...string) string { return "rates:poloniex:nim" }

func (f PoloniexNimiqFetcher) Fetch(ctx context.Context, _ ...string) (float64, error) {
	trades, err := f.API.PoloniexTrades(ctx)
	if err != nil {
		return 0, err
	}
	return api.WeightedAverage(trades)
}

type CoingeckoNimiqFetcher struct{ API RatesAPI }

func (CoingeckoNimiqFetcher) Source() string { return "coingecko" }

func (CoingeckoNimiqFetcher) CacheKey(...string) string { return "rates:coingecko:nim_btc" }

func (f CoingeckoNimiqFetcher) Fetch(ctx context.Context, _ ...string) (float64, error) {
	return f.API.NimiqBTC(ctx)
}

// LocalBitcoinsFetcher caches the whole ticker; single coins are picked out of it.
type LocalBitcoinsFetcher struct{ API RatesAPI }

func (LocalBitcoinsFetcher) Source() string { return "localbitcoins" }

func (LocalBitcoinsFetcher) CacheKey(...string) string { return "rates:localbitcoins:btc" }

func (f LocalBitcoinsFetcher) Fetch(ctx context.Context, _ ...string) (map[string]float64, error) {
	return f.API.LocalBitcoinsRates(ctx)
}
