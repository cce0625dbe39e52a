// Package types defines the wire types and error taxonomy of the get402
// pay-per-call protocol.
package types

import "fmt"

// Output represents one funding destination demanded by a payment request.
// The server sends the value under the "amount" key, in satoshis.
type Output struct {
	Script   string `json:"script" validate:"required"`
	Satoshis uint64 `json:"amount"`
}

// PaymentRequest is the body of a 402 response: the outputs a client must
// fund to settle the charge, a human-readable memo and the payment endpoint.
// It is immutable once parsed and consumed at most once by a payment build.
//
// Network mirrors PaymentURL byte for byte; the server does not send a
// separate network field.
type PaymentRequest struct {
	Outputs    []Output `json:"outputs" validate:"required,min=1,dive"`
	Memo       string   `json:"memo" validate:"required"`
	PaymentURL string   `json:"paymentURL" validate:"required"`
	Network    string   `json:"network,omitempty"`
}

// TotalSatoshis sums the requested output values.
func (pr *PaymentRequest) TotalSatoshis() uint64 {
	var total uint64
	for _, o := range pr.Outputs {
		total += o.Satoshis
	}
	return total
}

// ChargeParams is a debit request against a client's credit balance.
type ChargeParams struct {
	Credits int `json:"credits" validate:"required,gt=0"`
}

// Validate checks that the charge asks for a positive credit count.
func (p *ChargeParams) Validate() error {
	if p.Credits <= 0 {
		return fmt.Errorf("credits must be greater than 0, got %d", p.Credits)
	}
	return nil
}

// Balance is the wire shape of a balance lookup.
type Balance struct {
	Balance int64 `json:"balance"`
}

// PaymentAck is the server's settlement acknowledgement for a submitted
// payment. Its fields are server-defined and passed through untyped.
type PaymentAck map[string]interface{}
