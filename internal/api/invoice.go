package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// CoinTextInvoice creates a Nimiq invoice on CoinText and returns its payment id.
func (c *Client) CoinTextInvoice(ctx context.Context, address string, amount float64) (string, error) {
	body, err := json.Marshal(map[string]any{
		"address": address,
		"amount":  amount,
		"network": "nimiq",
		"api_key": c.coinTextKey,
	})
	if err != nil {
		return "", err
	}

	res, err := c.postJSON(ctx, c.urls.CoinText, "application/json", body)
	if err != nil {
		return "", fmt.Errorf("cointext: %w", err)
	}
	id := res.Get("paymentId")
	if !id.Exists() || id.String() == "" {
		return "", fmt.Errorf("cointext: %w: paymentId missing", ErrMalformedResponse)
	}
	return id.String(), nil
}

// NimiqTextInvoice buys through NimiqText and returns the SMS code.
func (c *Client) NimiqTextInvoice(ctx context.Context, address string, amount float64) (string, error) {
	form := url.Values{}
	form.Set("address", address)
	form.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	form.Set("token", c.nimiqTextToken)

	res, err := c.postJSON(ctx, c.urls.NimiqText, "application/x-www-form-urlencoded", []byte(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("nimiqtext: %w", err)
	}
	code := res.Get("code")
	if !code.Exists() || code.String() == "" {
		return "", fmt.Errorf("nimiqtext: %w: code missing", ErrMalformedResponse)
	}
	return code.String(), nil
}
