package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrSignatureMismatch = errors.New("callback signature mismatch")
	ErrMalformedPayload  = errors.New("malformed callback payload")
	ErrInvoiceNotFound   = errors.New("no matching unpaid invoice")
	ErrTermsMismatch     = errors.New("callback amount does not match invoice terms")
	ErrStatusConflict    = errors.New("invoice status changed concurrently")
	ErrGatewayTransport  = errors.New("gateway request failed")
	ErrGatewayResponse   = errors.New("unexpected gateway response shape")
	ErrOperationFailed   = errors.New("operation failed")
)
