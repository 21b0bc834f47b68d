// File: internal/infra/tripay/envelope.go
package tripay

import (
	"bytes"
	"encoding/json"
	"fmt"

	"tripay-gateway/internal/domain"
	"tripay-gateway/internal/domain/model"
)

// ParseEnvelope validates the structural shape of a callback body and
// extracts the fields this core consumes. It is pure: it never consults the
// signature, so the caller must have verified the raw body first.
//
// eventType comes from the X-Callback-Event header; Tripay does not repeat
// it inside the body.
func ParseEnvelope(rawBody []byte, eventType string) (model.WebhookEvent, error) {
	var ev model.WebhookEvent
	if eventType == "" {
		return ev, fmt.Errorf("%w: missing event type", domain.ErrMalformedPayload)
	}

	var body struct {
		MerchantRef interface{} `json:"merchant_ref"` // string-encoded by Tripay, numeric in older payloads
		Reference   string      `json:"reference"`
		Status      string      `json:"status"`
		TotalAmount *int64      `json:"total_amount"`
		FeeCustomer int64       `json:"fee_customer"`
	}
	dec := json.NewDecoder(bytes.NewReader(rawBody))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return ev, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	var merchantRef string
	switch v := body.MerchantRef.(type) {
	case string:
		merchantRef = v
	case json.Number:
		merchantRef = v.String()
	}
	if merchantRef == "" {
		return ev, fmt.Errorf("%w: missing merchant_ref", domain.ErrMalformedPayload)
	}
	if body.Status == "" {
		return ev, fmt.Errorf("%w: missing status", domain.ErrMalformedPayload)
	}
	if body.TotalAmount == nil {
		return ev, fmt.Errorf("%w: missing total_amount", domain.ErrMalformedPayload)
	}

	ev = model.WebhookEvent{
		EventType:   eventType,
		Status:      body.Status,
		MerchantRef: merchantRef,
		Reference:   body.Reference,
		TotalAmount: *body.TotalAmount,
		FeeCustomer: body.FeeCustomer,
	}
	return ev, nil
}
