package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"rates-service/internal/models"

	"github.com/tidwall/gjson"
)

// BTCPrices returns the Coingecko bitcoin price for every requested fiat
// currency, keyed by the currency code as given.
func (c *Client) BTCPrices(ctx context.Context, currencies []string) (map[string]float64, error) {
	codes := make([]string, len(currencies))
	for i, currency := range currencies {
		codes[i] = url.QueryEscape(strings.ToLower(currency))
	}
	res, err := c.getJSON(ctx, c.urls.CoingeckoBTC+"&vs_currencies="+strings.Join(codes, ","))
	if err != nil {
		return nil, fmt.Errorf("coingecko: %w", err)
	}

	out := make(map[string]float64, len(currencies))
	for _, currency := range currencies {
		price, ok := number(res.Get("bitcoin." + gjson.Escape(strings.ToLower(currency))))
		if !ok {
			return nil, fmt.Errorf("coingecko: %w: no bitcoin price in %s", ErrMalformedResponse, currency)
		}
		out[currency] = price
	}
	return out, nil
}

// NimiqAverage returns the CryptoCompare aggregated NIM price.
func (c *Client) NimiqAverage(ctx context.Context) (float64, error) {
	res, err := c.getJSON(ctx, c.urls.CryptoCompare)
	if err != nil {
		return 0, fmt.Errorf("cryptocompare: %w", err)
	}
	price, ok := number(res.Get("RAW.PRICE"))
	if !ok {
		return 0, fmt.Errorf("cryptocompare: %w: RAW.PRICE missing", ErrMalformedResponse)
	}
	return price, nil
}

func (c *Client) PoloniexTrades(ctx context.Context) ([]models.Trade, error) {
	res, err := c.getJSON(ctx, c.urls.Poloniex)
	if err != nil {
		return nil, fmt.Errorf("poloniex: %w", err)
	}
	if !res.IsArray() {
		return nil, fmt.Errorf("poloniex: %w: expected trade list", ErrMalformedResponse)
	}

	var trades []models.Trade
	var bad error
	res.ForEach(func(_, trade gjson.Result) bool {
		total, okTotal := number(trade.Get("total"))
		amount, okAmount := number(trade.Get("amount"))
		if !okTotal || !okAmount {
			bad = fmt.Errorf("poloniex: %w: trade without total/amount", ErrMalformedResponse)
			return false
		}
		trades = append(trades, models.Trade{Total: total, Amount: amount})
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return trades, nil
}

// WeightedAverage is the volume-weighted price of trades: BTC paid over NIM bought.
func WeightedAverage(trades []models.Trade) (float64, error) {
	var total, amount float64
	for _, t := range trades {
		total += t.Total
		amount += t.Amount
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: no traded amount", ErrMalformedResponse)
	}
	return total / amount, nil
}

// NimiqBTC returns the Coingecko NIM/BTC price.
func (c *Client) NimiqBTC(ctx context.Context) (float64, error) {
	res, err := c.getJSON(ctx, c.urls.CoingeckoNimiq)
	if err != nil {
		return 0, fmt.Errorf("coingecko: %w", err)
	}
	price, ok := number(res.Get("nimiq-2.btc"))
	if !ok {
		return 0, fmt.Errorf("coingecko: %w: nimiq-2.btc missing", ErrMalformedResponse)
	}
	return price, nil
}

// LocalBitcoinsRates returns the last BTC price per currency. Currencies
// without a usable last price are skipped.
func (c *Client) LocalBitcoinsRates(ctx context.Context) (map[string]float64, error) {
	res, err := c.getJSON(ctx, c.urls.LocalBitcoins)
	if err != nil {
		return nil, fmt.Errorf("localbitcoins: %w", err)
	}
	if !res.IsObject() {
		return nil, fmt.Errorf("localbitcoins: %w: expected object", ErrMalformedResponse)
	}

	rates := make(map[string]float64)
	res.ForEach(func(currency, ticker gjson.Result) bool {
		if last, ok := number(ticker.Get("rates.last")); ok {
			rates[currency.String()] = last
		}
		return true
	})
	if len(rates) == 0 {
		return nil, fmt.Errorf("localbitcoins: %w: no rates", ErrMalformedResponse)
	}
	return rates, nil
}
