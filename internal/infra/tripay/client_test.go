package tripay

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tripay-gateway/internal/domain"
	"tripay-gateway/internal/domain/model"
)

func testRequest() model.OutboundTransactionRequest {
	return model.OutboundTransactionRequest{
		Method:        "BCAVA",
		MerchantRef:   "42",
		Amount:        5000,
		CustomerName:  "Budi Santoso",
		CustomerEmail: "budi@example.com",
		OrderItems:    []model.OrderItem{{Name: "Hosting", Price: 5000, Quantity: 1}},
		CallbackURL:   "https://cb",
		ReturnURL:     "https://ret",
		ExpiredTime:   1717243200,
		Signature:     "deadbeef",
	}
}

func TestClientCreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the form and extracts the checkout destination", func(t *testing.T) {
		var gotAuth, gotContentType string
		var gotForm map[string]string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse form: %v", err)
			}
			gotForm = map[string]string{}
			for k := range r.PostForm {
				gotForm[k] = r.PostForm.Get(k)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"data":{"reference":"T0001","checkout_url":"https://tripay.co.id/checkout/T0001"}}`))
		}))
		defer ts.Close()

		c := NewClient("secret-api-key", false)
		c.SetEndpoint(ts.URL)

		dest, err := c.CreateTransaction(ctx, testRequest())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if dest.CheckoutURL != "https://tripay.co.id/checkout/T0001" || dest.Reference != "T0001" {
			t.Errorf("unexpected destination: %+v", dest)
		}
		if gotAuth != "Bearer secret-api-key" {
			t.Errorf("authorization = %q", gotAuth)
		}
		if gotContentType != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", gotContentType)
		}
		for key, want := range map[string]string{
			"method":                   "BCAVA",
			"merchant_ref":             "42",
			"amount":                   "5000",
			"order_items[0][name]":     "Hosting",
			"order_items[0][price]":    "5000",
			"order_items[0][quantity]": "1",
			"expired_time":             "1717243200",
			"signature":                "deadbeef",
		} {
			if gotForm[key] != want {
				t.Errorf("form[%s] = %q, want %q", key, gotForm[key], want)
			}
		}
	})

	t.Run("missing checkout_url is an unexpected response shape", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"message":"invalid signature"}`))
		}))
		defer ts.Close()

		c := NewClient("k", false)
		c.SetEndpoint(ts.URL)

		_, err := c.CreateTransaction(ctx, testRequest())
		if !errors.Is(err, domain.ErrGatewayResponse) {
			t.Errorf("expected ErrGatewayResponse, got %v", err)
		}
	})

	t.Run("non-decodable body is a transport error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>gateway exploded</html>`))
		}))
		defer ts.Close()

		c := NewClient("k", false)
		c.SetEndpoint(ts.URL)

		_, err := c.CreateTransaction(ctx, testRequest())
		if !errors.Is(err, domain.ErrGatewayTransport) {
			t.Errorf("expected ErrGatewayTransport, got %v", err)
		}
	})

	t.Run("connection failure is a transport error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		ts.Close() // nothing listening anymore

		c := NewClient("k", false)
		c.SetEndpoint(ts.URL)

		_, err := c.CreateTransaction(ctx, testRequest())
		if !errors.Is(err, domain.ErrGatewayTransport) {
			t.Errorf("expected ErrGatewayTransport, got %v", err)
		}
	})
}
