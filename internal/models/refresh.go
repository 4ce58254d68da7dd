package models

// Refresh command types, one per cached rate operation.
const (
	RefreshBTCCoingecko     = "btc_coingecko"
	RefreshNimiqCryptoComp  = "nim_cryptocompare"
	RefreshNimiqPoloniex    = "nim_poloniex"
	RefreshNimiqBTC         = "nim_btc_coingecko"
	RefreshBTCLocalBitcoins = "btc_localbitcoins"
)

type RefreshArgs map[string]string

// RefreshCommand asks a worker to run a rate operation so its cache entry is warm.
type RefreshCommand struct {
	Type string      `json:"type"`
	Args RefreshArgs `json:"args,omitempty"`
}
