// File: internal/usecase/checkout_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tripay-gateway/internal/domain"
	"tripay-gateway/internal/domain/model"
	"tripay-gateway/internal/domain/ports/adapter"
	"tripay-gateway/internal/domain/ports/repository"
	"tripay-gateway/internal/infra/metrics"
	"tripay-gateway/internal/infra/tripay"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

// CheckoutResult tells the caller where to send the payer next.
type CheckoutResult struct {
	RedirectURL string
	Reference   string // gateway reference; empty for free orders
	Free        bool   // zero-cost order, granted without touching the gateway
}

type CheckoutUseCase interface {
	// Initiate creates a gateway transaction for the invoice on the given
	// payment channel and returns the checkout redirect.
	Initiate(ctx context.Context, invoiceID int64, method string) (*CheckoutResult, error)
}

type checkoutUC struct {
	cfg         model.MerchantConfig // channel-agnostic credentials; Method set per call
	invoices    repository.InvoiceLookup
	store       repository.InvoiceStore
	gateway     adapter.PaymentGateway
	callbackURL string
	returnURL   string
	log         *zerolog.Logger
}

func NewCheckoutUseCase(cfg model.MerchantConfig, invoices repository.InvoiceLookup, store repository.InvoiceStore, gateway adapter.PaymentGateway, callbackURL, returnURL string, logger *zerolog.Logger) *checkoutUC {
	return &checkoutUC{
		cfg:         cfg,
		invoices:    invoices,
		store:       store,
		gateway:     gateway,
		callbackURL: callbackURL,
		returnURL:   returnURL,
		log:         logger,
	}
}

func (u *checkoutUC) Initiate(ctx context.Context, invoiceID int64, method string) (*CheckoutResult, error) {
	ch, ok := model.ChannelByMethod(method)
	if !ok {
		return nil, fmt.Errorf("%w: unknown payment channel %q", domain.ErrInvalidArgument, method)
	}

	inv, err := u.invoices.FindUnpaidByReference(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	cfg := u.cfg
	cfg.Method = ch.Method
	cfg.DisplayName = ch.DisplayName

	req, free, err := tripay.BuildTransactionRequest(inv, cfg, u.callbackURL, u.returnURL, time.Now())
	if err != nil {
		return nil, err
	}
	if free {
		// Nothing to collect: grant access directly and send the payer
		// straight to the return page.
		ref := "FREE-" + uuid.NewString()
		if err := u.store.MarkPaid(ctx, inv.ID, ref); err != nil {
			return nil, err
		}
		metrics.IncCheckout(ch.Method, "free")
		u.log.Info().Int64("invoice_id", inv.ID).Msg("zero-cost order granted without gateway")
		return &CheckoutResult{RedirectURL: u.returnURL, Free: true}, nil
	}

	dest, err := u.gateway.CreateTransaction(ctx, req)
	if err != nil {
		metrics.IncCheckout(ch.Method, "failed")
		u.log.Error().Err(err).Int64("invoice_id", inv.ID).Str("method", ch.Method).Msg("transaction create failed")
		return nil, err
	}

	metrics.IncCheckout(ch.Method, "created")
	u.log.Info().
		Int64("invoice_id", inv.ID).
		Str("method", ch.Method).
		Str("reference", dest.Reference).
		Msg("checkout created")
	return &CheckoutResult{RedirectURL: dest.CheckoutURL, Reference: dest.Reference}, nil
}
