package repository

import (
	"context"

	"tripay-gateway/internal/domain/model"
)

// InvoiceLookup locates the single unpaid invoice a merchant reference
// points at. Zero matches and ambiguous matches are both domain.ErrInvoiceNotFound:
// once an invoice leaves the unpaid status, a duplicate callback can no
// longer find it, which is what makes double-crediting impossible.
type InvoiceLookup interface {
	FindUnpaidByReference(ctx context.Context, ref int64) (*model.Invoice, error)
}

// InvoiceStore applies the terminal paid transition. MarkPaid must be an
// atomic compare-and-set (read unpaid, write paid) and return
// domain.ErrStatusConflict when the status already changed; this core does
// no locking of its own and relies on that atomicity.
type InvoiceStore interface {
	MarkPaid(ctx context.Context, invoiceID int64, gatewayRef string) error
}

// AuditLog records reconciliation outcomes. Best-effort: implementations
// should swallow their own failures rather than fail the webhook.
type AuditLog interface {
	Record(ctx context.Context, ev model.AuditEvent)
}
