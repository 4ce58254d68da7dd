package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"rates-service/internal/api"
	"rates-service/internal/cache"
	"rates-service/internal/models"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

type fakeRatesAPI struct {
	calls atomic.Int32
	err   error

	btc           map[string]float64
	gotCurrencies []string
	average       float64
	trades        []models.Trade
	nimBTC        float64
	localBitcoins map[string]float64
}

func (f *fakeRatesAPI) BTCPrices(_ context.Context, currencies []string) (map[string]float64, error) {
	f.calls.Inc()
	f.gotCurrencies = currencies
	return f.btc, f.err
}

func (f *fakeRatesAPI) NimiqAverage(context.Context) (float64, error) {
	f.calls.Inc()
	return f.average, f.err
}

func (f *fakeRatesAPI) PoloniexTrades(context.Context) ([]models.Trade, error) {
	f.calls.Inc()
	return f.trades, f.err
}

func (f *fakeRatesAPI) NimiqBTC(context.Context) (float64, error) {
	f.calls.Inc()
	return f.nimBTC, f.err
}

func (f *fakeRatesAPI) LocalBitcoinsRates(context.Context) (map[string]float64, error) {
	f.calls.Inc()
	return f.localBitcoins, f.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []models.RateEvent
}

func (p *recordingPublisher) PublishObjectAsync(key []byte, obj any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, string(key))
	p.events = append(p.events, obj.(models.RateEvent))
}

func newRateService(upstream *fakeRatesAPI, pub Publisher) (*RateService, *cache.MemoryStore) {
	store := cache.NewMemoryStore()
	return NewRateService(cache.New(store), upstream, pub), store
}

func TestBTCCoingecko_CachesPerCurrencySet(t *testing.T) {
	upstream := &fakeRatesAPI{btc: map[string]float64{"EUR": 5900.25, "USD": 6500.5}}
	pub := &recordingPublisher{}
	svc, store := newRateService(upstream, pub)
	ctx := context.Background()

	res, err := svc.BTCCoingecko(ctx, []string{"usd", " EUR", "USD"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"EUR": 5900.25, "USD": 6500.5}, res.MustGet())
	assert.Equal(t, []string{"EUR", "USD"}, upstream.gotCurrencies)

	res, err = svc.BTCCoingecko(ctx, []string{"EUR", "USD"})
	require.NoError(t, err)
	assert.Equal(t, 6500.5, res.MustGet()["USD"])
	assert.Equal(t, int32(1), upstream.calls.Load())

	raw, err := store.Get(ctx, "rates:coingecko:btc:EUR,USD")
	require.NoError(t, err)
	assert.True(t, raw.IsPresent())

	require.Len(t, pub.events, 1)
	assert.Equal(t, "rates:coingecko:btc:EUR,USD", pub.keys[0])
	assert.Equal(t, "coingecko", pub.events[0].Source)
}

func TestBTCCoingecko_DistinctSetsDoNotCollide(t *testing.T) {
	upstream := &fakeRatesAPI{btc: map[string]float64{"USD": 1}}
	svc, _ := newRateService(upstream, nil)
	ctx := context.Background()

	_, _ = svc.BTCCoingecko(ctx, []string{"USD"})
	_, _ = svc.BTCCoingecko(ctx, []string{"USD", "EUR"})

	assert.Equal(t, int32(2), upstream.calls.Load())
}

func TestBTCCoingecko_NoCurrencies(t *testing.T) {
	upstream := &fakeRatesAPI{}
	svc, _ := newRateService(upstream, nil)

	res, err := svc.BTCCoingecko(context.Background(), []string{" ", ""})

	require.NoError(t, err)
	assert.ErrorIs(t, res.Error(), ErrInvalidArgument)
	assert.Zero(t, upstream.calls.Load())
}

func TestBTCCoingecko_RejectsInvalidCodes(t *testing.T) {
	upstream := &fakeRatesAPI{btc: map[string]float64{"USD": 6500.5}}
	svc, store := newRateService(upstream, nil)
	ctx := context.Background()

	for _, codes := range [][]string{{"*"}, {"E*"}, {"U?D"}, {"USD", "a.b"}, {"X"}, {"TOOLONGCODE1"}} {
		res, err := svc.BTCCoingecko(ctx, codes)
		require.NoError(t, err)
		assert.ErrorIs(t, res.Error(), ErrInvalidArgument, "%v", codes)
	}

	assert.Zero(t, upstream.calls.Load())
	assert.Zero(t, store.Len())
}

func TestScalarRates(t *testing.T) {
	upstream := &fakeRatesAPI{
		average: 0.02528,
		nimBTC:  1.2e-7,
		trades:  []models.Trade{{Total: 0.001, Amount: 1000}, {Total: 0.009, Amount: 3000}},
	}
	svc, _ := newRateService(upstream, nil)
	ctx := context.Background()

	avg, err := svc.NimiqCryptoCompareAvg(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.02528, avg.MustGet())

	polo, err := svc.NimiqPoloniex(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.0000025, polo.MustGet(), 1e-12)

	nim, err := svc.CoingeckoNimiqBTC(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.2e-7, nim.MustGet())

	for i := 0; i < 3; i++ {
		_, _ = svc.NimiqCryptoCompareAvg(ctx)
		_, _ = svc.NimiqPoloniex(ctx)
		_, _ = svc.CoingeckoNimiqBTC(ctx)
	}
	assert.Equal(t, int32(3), upstream.calls.Load())
}

func TestNimiqPoloniex_EmptyHistoryIsNotCached(t *testing.T) {
	upstream := &fakeRatesAPI{}
	svc, store := newRateService(upstream, nil)
	ctx := context.Background()

	res, err := svc.NimiqPoloniex(ctx)

	require.NoError(t, err)
	assert.ErrorIs(t, res.Error(), api.ErrMalformedResponse)
	raw, _ := store.Get(ctx, "rates:poloniex:nim")
	assert.True(t, raw.IsAbsent())
}

func TestUpstreamFailureResolvesAsError(t *testing.T) {
	netErr := errors.New("dial tcp 1.2.3.4:443: i/o timeout")
	upstream := &fakeRatesAPI{err: netErr}
	pub := &recordingPublisher{}
	svc, store := newRateService(upstream, pub)
	ctx := context.Background()

	res, err := svc.CoingeckoNimiqBTC(ctx)

	require.NoError(t, err)
	assert.ErrorIs(t, res.Error(), netErr)
	assert.Empty(t, pub.events)
	assert.Zero(t, store.Len())
}

func TestBTCLocalBitcoins(t *testing.T) {
	upstream := &fakeRatesAPI{localBitcoins: map[string]float64{"VES": 51234567.89, "USD": 6601.1}}
	svc, _ := newRateService(upstream, nil)
	ctx := context.Background()

	ves, err := svc.BTCLocalBitcoins(ctx, "ves")
	require.NoError(t, err)
	assert.Equal(t, 51234567.89, ves.MustGet())

	usd, err := svc.BTCLocalBitcoins(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, 6601.1, usd.MustGet())

	missing, err := svc.BTCLocalBitcoins(ctx, "XYZ")
	require.NoError(t, err)
	assert.ErrorIs(t, missing.Error(), ErrNotFound)

	list, err := svc.LocalBitcoinsCurrencies(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"USD", "VES"}, list.MustGet())

	assert.Equal(t, int32(1), upstream.calls.Load())
}

func TestBTCLocalBitcoins_EmptyCoin(t *testing.T) {
	upstream := &fakeRatesAPI{}
	svc, _ := newRateService(upstream, nil)

	res, err := svc.BTCLocalBitcoins(context.Background(), "  ")

	require.NoError(t, err)
	assert.ErrorIs(t, res.Error(), ErrInvalidArgument)
	assert.Zero(t, upstream.calls.Load())
}

type brokenStore struct{ cache.Store }

func (brokenStore) Get(context.Context, string) (mo.Option[string], error) {
	return mo.None[string](), errors.New("connection reset by peer")
}

func TestCacheLookupErrorPropagates(t *testing.T) {
	upstream := &fakeRatesAPI{localBitcoins: map[string]float64{"USD": 1}}
	svc := NewRateService(cache.New(brokenStore{}), upstream, nil)

	_, err := svc.BTCLocalBitcoins(context.Background(), "USD")
	require.Error(t, err)

	_, err = svc.LocalBitcoinsCurrencies(context.Background())
	require.Error(t, err)

	assert.Zero(t, upstream.calls.Load())
}

func TestNormalizeCurrencies(t *testing.T) {
	assert.Equal(t, []string{"EUR", "USD", "VES"}, NormalizeCurrencies([]string{"usd", "VES", " eur ", "Usd", ""}))
	assert.Empty(t, NormalizeCurrencies(nil))
}
