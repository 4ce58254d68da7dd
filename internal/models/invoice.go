package models

type InvoiceRequest struct {
	Address string  `json:"address"`
	Amount  float64 `json:"amount"`
}

type InvoiceResponse struct {
	Gateway string `json:"gateway"`
	ID      string `json:"id"`
}
