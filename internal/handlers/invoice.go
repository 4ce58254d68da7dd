package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"rates-service/internal/models"
	"rates-service/internal/services"

	"github.com/samber/mo"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	service *services.InvoiceService
	logger  *zap.Logger
}

func NewInvoiceHandler(service *services.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: service, logger: logger}
}

func (h *InvoiceHandler) CreateCoinText(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, "cointext", h.service.CoinText)
}

func (h *InvoiceHandler) CreateNimiqText(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, "nimiqtext", h.service.NimiqText)
}

func (h *InvoiceHandler) create(
	w http.ResponseWriter,
	r *http.Request,
	gateway string,
	call func(ctx context.Context, address string, amount float64) mo.Result[string],
) {
	var req models.InvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	id, err := call(r.Context(), req.Address, req.Amount).Get()
	if err != nil {
		writeResult(w, h.logger, mo.Err[string](err), nil)
		return
	}
	writeJSON(w, http.StatusCreated, models.InvoiceResponse{Gateway: gateway, ID: id})
}
