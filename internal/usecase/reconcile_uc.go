// File: internal/usecase/reconcile_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"tripay-gateway/internal/domain"
	"tripay-gateway/internal/domain/model"
	"tripay-gateway/internal/domain/ports/repository"
	"tripay-gateway/internal/infra/audit"
	"tripay-gateway/internal/infra/metrics"
	"tripay-gateway/internal/infra/tripay"
)

// Compile-time check
var _ ReconcileUseCase = (*reconcileUC)(nil)

type ReconcileUseCase interface {
	// Reconcile drives one callback delivery to a ReconciliationResult.
	// It never returns an error: every outcome, including collaborator
	// failures, is folded into the result so the dispatcher can always
	// answer the gateway deterministically.
	Reconcile(ctx context.Context, rawBody []byte, signature, eventType string) model.ReconciliationResult
}

type reconcileUC struct {
	cfg      model.MerchantConfig
	invoices repository.InvoiceLookup
	store    repository.InvoiceStore
	auditLog repository.AuditLog
	log      *zerolog.Logger
}

func NewReconcileUseCase(cfg model.MerchantConfig, invoices repository.InvoiceLookup, store repository.InvoiceStore, auditLog repository.AuditLog, logger *zerolog.Logger) *reconcileUC {
	return &reconcileUC{cfg: cfg, invoices: invoices, store: store, auditLog: auditLog, log: logger}
}

func (u *reconcileUC) Reconcile(ctx context.Context, rawBody []byte, signature, eventType string) model.ReconciliationResult {
	res := u.reconcile(ctx, rawBody, signature, eventType)
	metrics.IncWebhook(string(res.Reason))
	if res.Reason == model.ReasonCompleted {
		metrics.AddWebhookRevenue("IDR", res.Amount)
	}
	return res
}

func (u *reconcileUC) reconcile(ctx context.Context, rawBody []byte, signature, eventType string) model.ReconciliationResult {
	// Nothing in the payload is trusted before the signature checks out.
	if !tripay.VerifySignature(rawBody, signature, []byte(u.cfg.PrivateKey)) {
		u.log.Warn().Str("event", eventType).Msg("callback signature mismatch")
		return failure(model.ReasonSignatureMismatch, domain.ErrSignatureMismatch.Error())
	}

	ev, err := tripay.ParseEnvelope(rawBody, eventType)
	if err != nil {
		u.log.Warn().Err(err).Msg("callback payload rejected")
		return failure(model.ReasonMalformedPayload, err.Error())
	}

	// Tripay sends event types other than payment_status; those are
	// acknowledged but must not change state or count as errors.
	if ev.EventType != model.EventPaymentStatus {
		return noOp(model.ReasonIgnoredEvent, ev)
	}
	// Same for non-terminal payment states (UNPAID, EXPIRED, FAILED, ...).
	if ev.Status != model.StatusPaid {
		return noOp(model.ReasonIgnoredStatus, ev)
	}

	inv, reason, msg := u.match(ctx, ev)
	if inv == nil {
		u.record(ctx, ev, 0, reason, msg)
		return failure(reason, msg)
	}

	if ev.NetAmount() != inv.AmountDue {
		msg := fmt.Sprintf("net amount %d does not match invoice total %d", ev.NetAmount(), inv.AmountDue)
		u.log.Warn().Int64("invoice_id", inv.ID).Str("reference", ev.Reference).Msg(msg)
		u.record(ctx, ev, inv.ID, model.ReasonTermsMismatch, msg)
		return failure(model.ReasonTermsMismatch, msg)
	}

	if err := u.markPaid(ctx, inv.ID, ev.Reference); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			// Lost the race: the invoice is no longer unpaid. Same
			// answer as a replayed callback.
			u.record(ctx, ev, inv.ID, model.ReasonInvoiceNotFound, err.Error())
			return failure(model.ReasonInvoiceNotFound, domain.ErrInvoiceNotFound.Error())
		}
		u.log.Error().Err(err).Int64("invoice_id", inv.ID).Msg("paid transition failed")
		u.record(ctx, ev, inv.ID, model.ReasonApplyFailed, err.Error())
		return failure(model.ReasonApplyFailed, err.Error())
	}

	u.log.Info().
		Int64("invoice_id", inv.ID).
		Str("reference", ev.Reference).
		Int64("amount", ev.NetAmount()).
		Msg("invoice reconciled as paid")
	u.record(ctx, ev, inv.ID, model.ReasonCompleted, "")

	return model.ReconciliationResult{
		Success:   true,
		Reason:    model.ReasonCompleted,
		InvoiceID: inv.ID,
		Reference: ev.Reference,
		Amount:    ev.NetAmount(),
	}
}

// match locates the single unpaid invoice the merchant reference points at.
// A non-numeric reference, zero matches and an ambiguous match all fail
// closed as invoice-not-found, indistinguishable on purpose so callers
// cannot probe invoice status.
func (u *reconcileUC) match(ctx context.Context, ev model.WebhookEvent) (*model.Invoice, model.ReconcileReason, string) {
	ref, err := strconv.ParseInt(ev.MerchantRef, 10, 64)
	if err != nil || ref <= 0 {
		return nil, model.ReasonInvoiceNotFound, domain.ErrInvoiceNotFound.Error()
	}
	inv, err := u.invoices.FindUnpaidByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) || errors.Is(err, domain.ErrNotFound) {
			return nil, model.ReasonInvoiceNotFound, domain.ErrInvoiceNotFound.Error()
		}
		// Store unreachable: transient, report as apply failure so a
		// retry-transient ack policy can invite redelivery.
		return nil, model.ReasonApplyFailed, err.Error()
	}
	return inv, model.ReasonCompleted, ""
}

// markPaid shields the pipeline from a panicking collaborator; the gateway
// must still get a well-formed response.
func (u *reconcileUC) markPaid(ctx context.Context, invoiceID int64, gatewayRef string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrOperationFailed, r)
		}
	}()
	return u.store.MarkPaid(ctx, invoiceID, gatewayRef)
}

func (u *reconcileUC) record(ctx context.Context, ev model.WebhookEvent, invoiceID int64, outcome model.ReconcileReason, msg string) {
	if u.auditLog == nil {
		return
	}
	u.auditLog.Record(ctx, model.AuditEvent{
		ID:         audit.NewEventID(),
		InvoiceID:  invoiceID,
		Reference:  ev.Reference,
		Outcome:    outcome,
		Message:    msg,
		OccurredAt: time.Now(),
	})
}

func failure(reason model.ReconcileReason, msg string) model.ReconciliationResult {
	return model.ReconciliationResult{Reason: reason, Message: msg}
}

func noOp(reason model.ReconcileReason, ev model.WebhookEvent) model.ReconciliationResult {
	return model.ReconciliationResult{Success: true, Reason: reason, Reference: ev.Reference}
}
