package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"

	"tripay-gateway/internal/domain/model"
	"tripay-gateway/internal/domain/ports/repository"
)

var _ repository.AuditLog = (*auditLogRepo)(nil)

type auditLogRepo struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

func NewAuditLogRepo(pool *pgxpool.Pool, logger *zerolog.Logger) *auditLogRepo {
	return &auditLogRepo{pool: pool, log: logger}
}

// Record persists one audit event. Best-effort per the port contract: any
// failure is logged and swallowed, never surfaced to the reconciler.
func (r *auditLogRepo) Record(ctx context.Context, ev model.AuditEvent) {
	const q = `
INSERT INTO payment_audit_log (id, invoice_id, reference, outcome, message, occurred_at)
VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT (id) DO NOTHING;`

	_, err := r.pool.Exec(ctx, q, ev.ID, ev.InvoiceID, ev.Reference, string(ev.Outcome), ev.Message, ev.OccurredAt)
	if err != nil {
		evt := r.log.Warn().Err(err).Str("audit_id", ev.ID)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			evt = evt.Str("pg_code", pgErr.Code)
		}
		evt.Msg("audit record dropped")
	}
}
