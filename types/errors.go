package types

import (
	"errors"
	"fmt"
)

// ErrNoPaymentRequest is returned when a buy-credits call unexpectedly
// succeeds instead of answering 402. The endpoint's only defined success
// mode is a payment request, so the condition is surfaced loudly rather
// than returned as an empty value.
var ErrNoPaymentRequest = errors.New("server did not issue a payment request")

// Error codes used in logs and metrics labels.
const (
	ErrCodeNotAuthorized    = "NOT_AUTHORIZED"
	ErrCodePaymentRequired  = "PAYMENT_REQUIRED"
	ErrCodeMalformedRequest = "MALFORMED_PAYMENT_REQUEST"
	ErrCodePaymentBuild     = "PAYMENT_BUILD_FAILED"
	ErrCodeUnexpectedStatus = "UNEXPECTED_STATUS"
)

// NotAuthorizedError is returned when the server rejects the signed identity
// proof with HTTP 401. It is never retried automatically.
type NotAuthorizedError struct{}

func (e *NotAuthorizedError) Error() string {
	return "request not authorized"
}

// PaymentRequiredError carries the payment request from an HTTP 402 response.
// It is an expected, recoverable control-flow signal: callers are meant to
// fund the request and re-issue the original call, not treat this as fatal.
type PaymentRequiredError struct {
	Request *PaymentRequest
}

func (e *PaymentRequiredError) Error() string {
	if e.Request != nil && e.Request.Memo != "" {
		return fmt.Sprintf("payment required: %s", e.Request.Memo)
	}
	return "payment required"
}

// MalformedPaymentRequestError is returned when a 402 body cannot be parsed
// into a valid PaymentRequest. Fatal for that call.
type MalformedPaymentRequestError struct {
	Reason string
}

func (e *MalformedPaymentRequestError) Error() string {
	return fmt.Sprintf("malformed payment request: %s", e.Reason)
}

// PaymentBuildError is returned when transaction construction or signing
// fails. The payment is never submitted.
type PaymentBuildError struct {
	Reason string
	Err    error
}

func (e *PaymentBuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment build failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("payment build failed: %s", e.Reason)
}

func (e *PaymentBuildError) Unwrap() error {
	return e.Err
}

// UnexpectedStatusError is the generic transport-level failure for any
// response outside the protocol taxonomy. It is logged and surfaced
// unchanged; no retry policy exists anywhere in the client.
type UnexpectedStatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Operation, e.StatusCode)
}
