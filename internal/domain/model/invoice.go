package model

import "time"

type InvoiceStatus string

const (
	InvoiceStatusUnpaid    InvoiceStatus = "unpaid"    // awaiting payment, eligible for reconciliation
	InvoiceStatusPaid      InvoiceStatus = "paid"      // terminal; no further reconciliation may touch it
	InvoiceStatusCancelled InvoiceStatus = "cancelled" // terminal; admin/user cancel
)

// Invoice is the read-model of a billing obligation owned by the external
// billing system. This core only reads identifying/amount fields and requests
// the unpaid->paid transition through InvoiceStore.
type Invoice struct {
	ID            int64  // numeric invoice id; doubles as the merchant reference sent to Tripay
	PublicID      string // public-facing identifier
	AmountDue     int64  // in IDR, integer (rupiah has no subunit)
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Description   string // single aggregate line description
	Status        InvoiceStatus
	CreatedAt     time.Time
}
