package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"tripay-gateway/internal/domain"
	"tripay-gateway/internal/domain/model"
	"tripay-gateway/internal/domain/ports/repository"
)

var (
	_ repository.InvoiceLookup = (*invoiceRepo)(nil)
	_ repository.InvoiceStore  = (*invoiceRepo)(nil)
)

type invoiceRepo struct{ pool *pgxpool.Pool }

func NewInvoiceRepo(pool *pgxpool.Pool) *invoiceRepo {
	return &invoiceRepo{pool: pool}
}

// FindUnpaidByReference loads the single invoice with this id still in
// unpaid status. More than one row would mean the reference is ambiguous;
// that fails closed exactly like no match.
func (r *invoiceRepo) FindUnpaidByReference(ctx context.Context, ref int64) (*model.Invoice, error) {
	const q = `
SELECT id, public_id, amount_due, customer_name, customer_email, customer_phone, description, status, created_at
FROM invoices WHERE id=$1 AND status='unpaid';`

	rows, err := r.pool.Query(ctx, q, ref)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var found []*model.Invoice
	for rows.Next() {
		inv := &model.Invoice{}
		if err := rows.Scan(&inv.ID, &inv.PublicID, &inv.AmountDue, &inv.CustomerName, &inv.CustomerEmail, &inv.CustomerPhone, &inv.Description, &inv.Status, &inv.CreatedAt); err != nil {
			return nil, domain.ErrOperationFailed
		}
		found = append(found, inv)
	}
	if rows.Err() != nil {
		return nil, domain.ErrOperationFailed
	}
	if len(found) != 1 {
		return nil, domain.ErrInvoiceNotFound
	}
	return found[0], nil
}

// MarkPaid is the atomic compare-and-set the reconciler relies on: the
// UPDATE only lands while the row is still unpaid, so of two racing
// callbacks exactly one sees RowsAffected()==1.
func (r *invoiceRepo) MarkPaid(ctx context.Context, invoiceID int64, gatewayRef string) error {
	const q = `
UPDATE invoices SET status='paid', gateway_ref=$2, paid_at=now()
WHERE id=$1 AND status='unpaid';`

	tag, err := r.pool.Exec(ctx, q, invoiceID, gatewayRef)
	if err != nil {
		return domain.ErrOperationFailed
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStatusConflict
	}
	return nil
}
