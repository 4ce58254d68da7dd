package workers

import (
	"context"
	"fmt"
	"strings"

	"rates-service/internal/models"

	"github.com/samber/mo"
)

// RateRefresher is the subset of the rate service the refresh workers drive.
type RateRefresher interface {
	BTCCoingecko(ctx context.Context, currencies []string) (mo.Result[map[string]float64], error)
	NimiqCryptoCompareAvg(ctx context.Context) (mo.Result[float64], error)
	NimiqPoloniex(ctx context.Context) (mo.Result[float64], error)
	CoingeckoNimiqBTC(ctx context.Context) (mo.Result[float64], error)
	BTCLocalBitcoins(ctx context.Context, coin string) (mo.Result[float64], error)
}

type rateHandler struct {
	typ string
	run func(ctx context.Context, args models.RefreshArgs) error
}

func (h rateHandler) Type() string {
	return h.typ
}

func (h rateHandler) Handle(ctx context.Context, args models.RefreshArgs) error {
	return h.run(ctx, args)
}

// RateHandlers returns a handler for every refresh command type. Running the
// rate operation is enough to refill its cache entry.
func RateHandlers(svc RateRefresher) []Handler {
	return []Handler{
		rateHandler{models.RefreshBTCCoingecko, func(ctx context.Context, args models.RefreshArgs) error {
			return outcome(svc.BTCCoingecko(ctx, strings.Split(args["currencies"], ",")))
		}},
		rateHandler{models.RefreshNimiqCryptoComp, func(ctx context.Context, _ models.RefreshArgs) error {
			return outcome(svc.NimiqCryptoCompareAvg(ctx))
		}},
		rateHandler{models.RefreshNimiqPoloniex, func(ctx context.Context, _ models.RefreshArgs) error {
			return outcome(svc.NimiqPoloniex(ctx))
		}},
		rateHandler{models.RefreshNimiqBTC, func(ctx context.Context, _ models.RefreshArgs) error {
			return outcome(svc.CoingeckoNimiqBTC(ctx))
		}},
		rateHandler{models.RefreshBTCLocalBitcoins, func(ctx context.Context, args models.RefreshArgs) error {
			coin := args["coin"]
			if coin == "" {
				coin = "USD"
			}
			return outcome(svc.BTCLocalBitcoins(ctx, coin))
		}},
	}
}

func outcome[T any](res mo.Result[T], err error) error {
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return res.Error()
}
