// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"tripay-gateway/internal/domain"
	"tripay-gateway/internal/domain/model"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memInvoiceStore is a small in-memory invoice store used by unit tests.
// MarkPaid is an atomic compare-and-set under the mutex, mirroring the
// contract the Postgres adapter provides.
type memInvoiceStore struct {
	mu        sync.Mutex
	invoices  map[int64]*model.Invoice
	refs      map[int64]string // invoice id -> gateway reference applied
	lookupErr error            // simulate an unreachable store
	markErr   error            // simulate a rejected transition
	markPanic bool             // simulate a collaborator blowing up
}

func newMemInvoiceStore(invoices ...*model.Invoice) *memInvoiceStore {
	m := &memInvoiceStore{
		invoices: make(map[int64]*model.Invoice),
		refs:     make(map[int64]string),
	}
	for _, inv := range invoices {
		cp := *inv
		m.invoices[inv.ID] = &cp
	}
	return m
}

func (m *memInvoiceStore) FindUnpaidByReference(ctx context.Context, ref int64) (*model.Invoice, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invoices[ref]
	if !ok || inv.Status != model.InvoiceStatusUnpaid {
		return nil, domain.ErrInvoiceNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *memInvoiceStore) MarkPaid(ctx context.Context, invoiceID int64, gatewayRef string) error {
	if m.markPanic {
		panic("invoice store exploded")
	}
	if m.markErr != nil {
		return m.markErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invoices[invoiceID]
	if !ok || inv.Status != model.InvoiceStatusUnpaid {
		return domain.ErrStatusConflict
	}
	inv.Status = model.InvoiceStatusPaid
	m.refs[invoiceID] = gatewayRef
	return nil
}

func (m *memInvoiceStore) paidRef(invoiceID int64) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refs[invoiceID]
}

// memAuditLog collects audit events for assertions.
type memAuditLog struct {
	mu     sync.Mutex
	events []model.AuditEvent
}

func (m *memAuditLog) Record(ctx context.Context, ev model.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

func (m *memAuditLog) outcomes() []model.ReconcileReason {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ReconcileReason, 0, len(m.events))
	for _, ev := range m.events {
		out = append(out, ev.Outcome)
	}
	return out
}

// mockGateway implements adapter.PaymentGateway for checkout tests.
type mockGateway struct {
	mu         sync.Mutex
	calls      []model.OutboundTransactionRequest
	createFunc func(ctx context.Context, req model.OutboundTransactionRequest) (model.CheckoutDestination, error)
}

func (g *mockGateway) Name() string { return "mock" }

func (g *mockGateway) CreateTransaction(ctx context.Context, req model.OutboundTransactionRequest) (model.CheckoutDestination, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req)
	g.mu.Unlock()
	if g.createFunc != nil {
		return g.createFunc(ctx, req)
	}
	return model.CheckoutDestination{
		CheckoutURL: "https://tripay.co.id/checkout/T0001",
		Reference:   "T0001",
	}, nil
}

func (g *mockGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}
