package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"tripay-gateway/internal/config"
	"tripay-gateway/internal/domain"
	"tripay-gateway/internal/domain/model"
	"tripay-gateway/internal/usecase"

	"github.com/rs/zerolog"
)

const (
	headerSignature = "X-Callback-Signature"
	headerEvent     = "X-Callback-Event"
)

// webhookResponse is the JSON body answered to every callback delivery.
type webhookResponse struct {
	Success   bool   `json:"success"`
	InvoiceID int64  `json:"invoice_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Amount    int64  `json:"amount,omitempty"`
	Reference string `json:"reference,omitempty"`
	Message   string `json:"message,omitempty"`
}

// webhookHandler is the dispatcher: raw body and headers in, JSON out.
// It always answers with a well-formed body; the ack policy only decides
// the status code.
func webhookHandler(reconcileUC usecase.ReconcileUseCase, cfg config.WebhookConfig, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, cfg.MaxBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, webhookResponse{Success: false, Message: "unreadable body"})
			return
		}

		res := reconcileUC.Reconcile(r.Context(), body, r.Header.Get(headerSignature), r.Header.Get(headerEvent))
		writeJSON(w, ackStatus(cfg.Ack, res), toResponse(res))
	}
}

// ackStatus maps a reconciliation outcome to the HTTP status the gateway
// sees. Tripay redelivers on non-2xx, so deliberate rejections (bad
// signature, replayed invoice, tampered amount) are acknowledged with 200
// to stop retries; only transient store failures may invite one.
func ackStatus(policy config.AckPolicy, res model.ReconciliationResult) int {
	if policy == config.AckRetryTransient && res.Reason == model.ReasonApplyFailed {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

func toResponse(res model.ReconciliationResult) webhookResponse {
	if !res.Success {
		return webhookResponse{Success: false, Message: res.Message}
	}
	if res.NoOp() {
		return webhookResponse{Success: true, Status: "ignored", Reference: res.Reference}
	}
	return webhookResponse{
		Success:   true,
		InvoiceID: res.InvoiceID,
		Status:    "completed",
		Amount:    res.Amount,
		Reference: res.Reference,
	}
}

type checkoutRequest struct {
	InvoiceID int64  `json:"invoice_id"`
	Method    string `json:"method"`
}

type checkoutResponse struct {
	RedirectURL string `json:"redirect_url"`
	Reference   string `json:"reference,omitempty"`
	Free        bool   `json:"free,omitempty"`
}

// checkoutHandler initiates a gateway transaction and returns where to
// send the payer.
func checkoutHandler(checkoutUC usecase.CheckoutUseCase, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		res, err := checkoutUC.Initiate(r.Context(), req.InvoiceID, req.Method)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domain.ErrInvoiceNotFound), errors.Is(err, domain.ErrNotFound):
				http.Error(w, "Invoice not found", http.StatusNotFound)
			case errors.Is(err, domain.ErrGatewayTransport), errors.Is(err, domain.ErrGatewayResponse):
				logger.Error().Err(err).Msg("gateway unavailable")
				http.Error(w, "Payment gateway unavailable", http.StatusBadGateway)
			default:
				http.Error(w, "Failed to initiate checkout", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, checkoutResponse{
			RedirectURL: res.RedirectURL,
			Reference:   res.Reference,
			Free:        res.Free,
		})
	}
}

// channelsHandler lists the configured payment channels.
func channelsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.Channels)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
