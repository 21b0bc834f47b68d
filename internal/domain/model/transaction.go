package model

// EventPaymentStatus is the only callback event type that can drive an
// invoice transition. Tripay sends other event types too; those are
// acknowledged and ignored.
const EventPaymentStatus = "payment_status"

// StatusPaid is the terminal gateway status for a settled transaction.
const StatusPaid = "PAID"

// WebhookEvent is the parsed inbound callback payload. Fields are only
// trusted after the raw body passed signature verification.
type WebhookEvent struct {
	EventType   string // from the X-Callback-Event header
	Status      string // "PAID" | "UNPAID" | "EXPIRED" | "FAILED" | ...
	MerchantRef string // string-encoded numeric invoice id
	Reference   string // Tripay transaction reference, e.g. "T0001000000000000001"
	TotalAmount int64  // gross amount charged to the payer, IDR
	FeeCustomer int64  // payer-borne fee portion, IDR
}

// NetAmount is the amount actually credited to the merchant, compared
// against the invoice total during reconciliation.
func (e WebhookEvent) NetAmount() int64 {
	return e.TotalAmount - e.FeeCustomer
}

// OrderItem is a single order line. Quantity is fixed at 1: each invoice is
// sent as one aggregate line, not itemized.
type OrderItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// OutboundTransactionRequest is a signed Tripay transaction-create request.
// Built fresh per checkout attempt and never persisted.
type OutboundTransactionRequest struct {
	Method        string
	MerchantRef   string
	Amount        int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	OrderItems    []OrderItem
	CallbackURL   string
	ReturnURL     string
	ExpiredTime   int64  // unix seconds
	Signature     string // hex HMAC-SHA256 over merchantCode+merchantRef+amount
}

// CheckoutDestination is where the payer gets redirected after a
// transaction is created on the gateway.
type CheckoutDestination struct {
	CheckoutURL string
	Reference   string
}

// ReconcileReason is the closed set of reconciliation outcomes.
type ReconcileReason string

const (
	ReasonCompleted         ReconcileReason = "completed"
	ReasonIgnoredEvent      ReconcileReason = "ignored_event"  // not a payment_status event
	ReasonIgnoredStatus     ReconcileReason = "ignored_status" // payment_status but not PAID
	ReasonSignatureMismatch ReconcileReason = "signature_mismatch"
	ReasonMalformedPayload  ReconcileReason = "malformed_payload"
	ReasonInvoiceNotFound   ReconcileReason = "invoice_not_found"
	ReasonTermsMismatch     ReconcileReason = "terms_mismatch"
	ReasonApplyFailed       ReconcileReason = "apply_failed"
)

// ReconciliationResult is the outcome of processing one webhook delivery.
// Transient; returned to the dispatcher, never stored by this core.
type ReconciliationResult struct {
	Success   bool
	Reason    ReconcileReason
	InvoiceID int64  // set when a matching invoice was found
	Reference string // gateway transaction reference
	Amount    int64  // net credited amount
	Message   string // human-readable detail for failures
}

// NoOp reports whether the webhook was acknowledged without a state change.
func (r ReconciliationResult) NoOp() bool {
	return r.Success && r.Reason != ReasonCompleted
}
