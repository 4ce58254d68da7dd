package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/mo"
	"go.uber.org/zap"
)

type InvoiceAPI interface {
	CoinTextInvoice(ctx context.Context, address string, amount float64) (string, error)
	NimiqTextInvoice(ctx context.Context, address string, amount float64) (string, error)
}

// InvoiceService forwards invoice creation to the SMS payment gateways.
// Nothing here is cached.
type InvoiceService struct {
	api    InvoiceAPI
	logger *zap.Logger
}

func NewInvoiceService(api InvoiceAPI, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{api: api, logger: logger}
}

// CoinText returns the CoinText payment id.
func (s *InvoiceService) CoinText(ctx context.Context, address string, amount float64) mo.Result[string] {
	return s.create(ctx, "cointext", address, amount, s.api.CoinTextInvoice)
}

// NimiqText returns the NimiqText purchase code.
func (s *InvoiceService) NimiqText(ctx context.Context, address string, amount float64) mo.Result[string] {
	return s.create(ctx, "nimiqtext", address, amount, s.api.NimiqTextInvoice)
}

func (s *InvoiceService) create(
	ctx context.Context,
	gateway, address string,
	amount float64,
	call func(context.Context, string, float64) (string, error),
) mo.Result[string] {
	address = strings.TrimSpace(address)
	if address == "" {
		return mo.Err[string](fmt.Errorf("%w: address is required", ErrInvalidArgument))
	}
	if amount <= 0 {
		return mo.Err[string](fmt.Errorf("%w: amount must be positive", ErrInvalidArgument))
	}

	id, err := call(ctx, address, amount)
	if err != nil {
		s.logger.Warn("invoice creation failed", zap.String("gateway", gateway), zap.Error(err))
		return mo.Err[string](err)
	}
	s.logger.Info("invoice created", zap.String("gateway", gateway), zap.String("id", id))
	return mo.Ok(id)
}
