// File: internal/infra/tripay/request.go
package tripay

import (
	"fmt"
	"strconv"
	"time"

	"tripay-gateway/internal/domain"
	"tripay-gateway/internal/domain/model"
)

// BuildTransactionRequest assembles and signs a Tripay transaction-create
// request for one invoice.
//
// A zero-cost invoice never reaches the gateway: free reports true and the
// caller must grant access directly and redirect the payer to returnURL.
//
// The signature covers merchantCode+merchantRef+amount concatenated with no
// delimiter, keyed by the merchant private key. Nothing time-dependent is
// signed; rebuilding with the same inputs is deterministic.
func BuildTransactionRequest(inv *model.Invoice, cfg model.MerchantConfig, callbackURL, returnURL string, now time.Time) (req model.OutboundTransactionRequest, free bool, err error) {
	if cfg.MerchantCode == "" || cfg.APIKey == "" || cfg.PrivateKey == "" || cfg.Method == "" {
		return req, false, fmt.Errorf("%w: incomplete merchant configuration", domain.ErrInvalidArgument)
	}
	if inv.AmountDue <= 0 {
		return req, true, nil
	}

	merchantRef := strconv.FormatInt(inv.ID, 10)
	amount := strconv.FormatInt(inv.AmountDue, 10)

	req = model.OutboundTransactionRequest{
		Method:        cfg.Method,
		MerchantRef:   merchantRef,
		Amount:        inv.AmountDue,
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		CustomerPhone: inv.CustomerPhone,
		OrderItems: []model.OrderItem{
			// Single aggregate line per invoice; quantity stays 1.
			{Name: inv.Description, Price: inv.AmountDue, Quantity: 1},
		},
		CallbackURL: callbackURL,
		ReturnURL:   returnURL,
		ExpiredTime: now.Add(cfg.ExpiryDuration()).Unix(),
		Signature:   Sign([]byte(cfg.PrivateKey), []byte(cfg.MerchantCode+merchantRef+amount)),
	}
	return req, false, nil
}
