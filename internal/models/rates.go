package models

import "time"

// RateEvent is published whenever a rate was fetched from upstream rather
// than served from cache.
type RateEvent struct {
	Key       string    `json:"key"`
	Source    string    `json:"source"`
	Value     any       `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Trade is one entry of the Poloniex trade history. Upstream sends decimals
// as strings.
type Trade struct {
	Total  float64 `json:"total"`
	Amount float64 `json:"amount"`
}
