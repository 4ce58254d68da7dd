package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"rates-service/internal/cache"

	"github.com/samber/mo"
)

var currencyCode = regexp.MustCompile(`^[A-Z0-9]{2,10}$`)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

type RateService struct {
	btc           *CacheService[map[string]float64]
	nimAverage    *CacheService[float64]
	nimPoloniex   *CacheService[float64]
	nimBTC        *CacheService[float64]
	localBitcoins *CacheService[map[string]float64]
}

func NewRateService(c *cache.Cache, upstream RatesAPI, publisher Publisher) *RateService {
	return &RateService{
		btc:           NewCacheService[map[string]float64](c, publisher, CoingeckoBTCFetcher{API: upstream}),
		nimAverage:    NewCacheService[float64](c, publisher, CryptoCompareNimiqFetcher{API: upstream}),
		nimPoloniex:   NewCacheService[float64](c, publisher, PoloniexNimiqFetcher{API: upstream}),
		nimBTC:        NewCacheService[float64](c, publisher, CoingeckoNimiqFetcher{API: upstream}),
		localBitcoins: NewCacheService[map[string]float64](c, publisher, LocalBitcoinsFetcher{API: upstream}),
	}
}

// BTCCoingecko returns the bitcoin price in each requested fiat currency.
func (s *RateService) BTCCoingecko(ctx context.Context, currencies []string) (mo.Result[map[string]float64], error) {
	normalized := NormalizeCurrencies(currencies)
	if len(normalized) == 0 {
		return mo.Err[map[string]float64](fmt.Errorf("%w: at least one currency is required", ErrInvalidArgument)), nil
	}
	for _, c := range normalized {
		if !currencyCode.MatchString(c) {
			return mo.Err[map[string]float64](fmt.Errorf("%w: invalid currency code %q", ErrInvalidArgument, c)), nil
		}
	}
	return s.btc.Get(ctx, normalized...)
}

// NimiqCryptoCompareAvg returns the NIM price averaged across exchanges.
func (s *RateService) NimiqCryptoCompareAvg(ctx context.Context) (mo.Result[float64], error) {
	return s.nimAverage.Get(ctx)
}

// NimiqPoloniex returns the volume-weighted NIM price of recent Poloniex trades.
func (s *RateService) NimiqPoloniex(ctx context.Context) (mo.Result[float64], error) {
	return s.nimPoloniex.Get(ctx)
}

func (s *RateService) CoingeckoNimiqBTC(ctx context.Context) (mo.Result[float64], error) {
	return s.nimBTC.Get(ctx)
}

// BTCLocalBitcoins returns the last LocalBitcoins BTC price in coin.
func (s *RateService) BTCLocalBitcoins(ctx context.Context, coin string) (mo.Result[float64], error) {
	coin = strings.ToUpper(strings.TrimSpace(coin))
	if coin == "" {
		return mo.Err[float64](fmt.Errorf("%w: coin is required", ErrInvalidArgument)), nil
	}

	res, err := s.localBitcoins.Get(ctx)
	if err != nil {
		return mo.Err[float64](err), err
	}
	rates, err := res.Get()
	if err != nil {
		return mo.Err[float64](err), nil
	}

	rate, ok := rates[coin]
	if !ok {
		return mo.Err[float64](fmt.Errorf("%w: no LocalBitcoins rate for %s", ErrNotFound, coin)), nil
	}
	return mo.Ok(rate), nil
}

// LocalBitcoinsCurrencies lists the currency codes LocalBitcoins quotes BTC in.
func (s *RateService) LocalBitcoinsCurrencies(ctx context.Context) (mo.Result[[]string], error) {
	res, err := s.localBitcoins.Get(ctx)
	if err != nil {
		return mo.Err[[]string](err), err
	}
	rates, err := res.Get()
	if err != nil {
		return mo.Err[[]string](err), nil
	}
	return mo.Ok(sortedKeys(rates)), nil
}

// NormalizeCurrencies upper-cases, trims, dedupes and sorts currency codes.
func NormalizeCurrencies(currencies []string) []string {
	seen := make(map[string]struct{}, len(currencies))
	for _, c := range currencies {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			seen[c] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// sortedKeys returns the map's keys in ascending order (nil for an empty map).
func sortedKeys[V any](m map[string]V) []string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
