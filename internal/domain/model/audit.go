package model

import "time"

// AuditEvent is a best-effort trail entry for one webhook delivery or
// checkout attempt. Failures to record one never abort reconciliation.
type AuditEvent struct {
	ID         string // ULID
	InvoiceID  int64
	Reference  string
	Outcome    ReconcileReason
	Message    string
	OccurredAt time.Time
}
