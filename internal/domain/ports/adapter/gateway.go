package adapter

import (
	"context"

	"tripay-gateway/internal/domain/model"
)

// PaymentGateway creates transactions on the payment provider and returns
// the checkout destination the payer is redirected to.
type PaymentGateway interface {
	Name() string
	CreateTransaction(ctx context.Context, req model.OutboundTransactionRequest) (model.CheckoutDestination, error)
}
