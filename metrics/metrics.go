// Package metrics defines the recorder interface for protocol-level
// instrumentation.
package metrics

import "time"

// Recorder receives counters and latencies for protocol events.
type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}

// Event and operation names recorded by the client.
const (
	EventPaymentRequired = "payment_required"
	EventPaymentSent     = "payment_sent"
	EventNotAuthorized   = "not_authorized"

	OpGetBalance        = "get_balance"
	OpChargeCredit      = "charge_credit"
	OpRequestBuyCredits = "request_buy_credits"
	OpSendPayment       = "send_payment"
)
