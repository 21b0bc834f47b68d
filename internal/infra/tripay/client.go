// File: internal/infra/tripay/client.go
package tripay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"tripay-gateway/internal/domain"
	"tripay-gateway/internal/domain/model"
	"tripay-gateway/internal/domain/ports/adapter"
)

const (
	apiURLSandbox    = "https://tripay.co.id/api-sandbox/transaction/create"
	apiURLProduction = "https://tripay.co.id/api/transaction/create"
)

var _ adapter.PaymentGateway = (*Client)(nil)

// Client executes signed transaction-create requests against Tripay.
// It performs no retries of its own; a circuit breaker stops hammering the
// gateway when it is down, and a tripped breaker surfaces as a transport
// error to the caller.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
}

// NewClient builds a gateway client for the sandbox or production endpoint.
func NewClient(apiKey string, sandbox bool) *Client {
	endpoint := apiURLProduction
	if sandbox {
		endpoint = apiURLSandbox
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "tripay-create-transaction",
		}),
	}
}

// SetEndpoint overrides the API endpoint. Used by tests.
func (c *Client) SetEndpoint(endpoint string) { c.endpoint = endpoint }

func (c *Client) Name() string { return "tripay" }

type createResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Reference   string `json:"reference"`
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

// CreateTransaction POSTs the form-encoded request with bearer auth and
// extracts the checkout destination from the response.
func (c *Client) CreateTransaction(ctx context.Context, req model.OutboundTransactionRequest) (model.CheckoutDestination, error) {
	form := encodeForm(req)

	out, err := c.breaker.Execute(func() (interface{}, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		var body createResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, err
		}
		return body, nil
	})
	if err != nil {
		return model.CheckoutDestination{}, fmt.Errorf("%w: %v", domain.ErrGatewayTransport, err)
	}

	body := out.(createResponse)
	if body.Data.CheckoutURL == "" {
		if body.Message != "" {
			return model.CheckoutDestination{}, fmt.Errorf("%w: %s", domain.ErrGatewayResponse, body.Message)
		}
		return model.CheckoutDestination{}, fmt.Errorf("%w: missing checkout_url", domain.ErrGatewayResponse)
	}
	return model.CheckoutDestination{
		CheckoutURL: body.Data.CheckoutURL,
		Reference:   body.Data.Reference,
	}, nil
}

// encodeForm lays the request out the way Tripay expects form arrays:
// order_items[0][name], order_items[0][price], order_items[0][quantity].
func encodeForm(req model.OutboundTransactionRequest) url.Values {
	form := url.Values{}
	form.Set("method", req.Method)
	form.Set("merchant_ref", req.MerchantRef)
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("customer_name", req.CustomerName)
	form.Set("customer_email", req.CustomerEmail)
	form.Set("customer_phone", req.CustomerPhone)
	for i, item := range req.OrderItems {
		prefix := fmt.Sprintf("order_items[%d]", i)
		form.Set(prefix+"[name]", item.Name)
		form.Set(prefix+"[price]", strconv.FormatInt(item.Price, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
	}
	form.Set("callback_url", req.CallbackURL)
	form.Set("return_url", req.ReturnURL)
	form.Set("expired_time", strconv.FormatInt(req.ExpiredTime, 10))
	form.Set("signature", req.Signature)
	return form
}
