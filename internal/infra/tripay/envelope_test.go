package tripay

import (
	"errors"
	"testing"

	"tripay-gateway/internal/domain"
)

func TestParseEnvelope(t *testing.T) {
	t.Run("extracts the consumed fields", func(t *testing.T) {
		body := []byte(`{"merchant_ref":"42","reference":"T0001","status":"PAID","total_amount":10500,"fee_customer":500,"unrelated":"x"}`)

		ev, err := ParseEnvelope(body, "payment_status")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ev.EventType != "payment_status" {
			t.Errorf("event type = %q", ev.EventType)
		}
		if ev.MerchantRef != "42" || ev.Reference != "T0001" || ev.Status != "PAID" {
			t.Errorf("unexpected fields: %+v", ev)
		}
		if ev.TotalAmount != 10500 || ev.FeeCustomer != 500 {
			t.Errorf("amounts = %d/%d", ev.TotalAmount, ev.FeeCustomer)
		}
		if ev.NetAmount() != 10000 {
			t.Errorf("net amount = %d, want 10000", ev.NetAmount())
		}
	})

	t.Run("tolerates a numeric merchant_ref", func(t *testing.T) {
		body := []byte(`{"merchant_ref":42,"status":"PAID","total_amount":100}`)
		ev, err := ParseEnvelope(body, "payment_status")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ev.MerchantRef != "42" {
			t.Errorf("merchant_ref = %q, want \"42\"", ev.MerchantRef)
		}
	})

	t.Run("defaults fee_customer to zero", func(t *testing.T) {
		body := []byte(`{"merchant_ref":"42","status":"PAID","total_amount":100}`)
		ev, err := ParseEnvelope(body, "payment_status")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ev.FeeCustomer != 0 || ev.NetAmount() != 100 {
			t.Errorf("fee = %d net = %d", ev.FeeCustomer, ev.NetAmount())
		}
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		_, err := ParseEnvelope([]byte(`{"merchant_ref":`), "payment_status")
		if !errors.Is(err, domain.ErrMalformedPayload) {
			t.Errorf("expected ErrMalformedPayload, got %v", err)
		}
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		cases := map[string]string{
			"no merchant_ref": `{"status":"PAID","total_amount":100}`,
			"no status":       `{"merchant_ref":"42","total_amount":100}`,
			"no total_amount": `{"merchant_ref":"42","status":"PAID"}`,
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				if _, err := ParseEnvelope([]byte(body), "payment_status"); !errors.Is(err, domain.ErrMalformedPayload) {
					t.Errorf("expected ErrMalformedPayload, got %v", err)
				}
			})
		}
	})

	t.Run("rejects a missing event type header", func(t *testing.T) {
		body := []byte(`{"merchant_ref":"42","status":"PAID","total_amount":100}`)
		if _, err := ParseEnvelope(body, ""); !errors.Is(err, domain.ErrMalformedPayload) {
			t.Errorf("expected ErrMalformedPayload, got %v", err)
		}
	})
}
