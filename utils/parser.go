// Package utils holds parsing and validation helpers for server responses.
package utils

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/get402/get402-go/types"
)

var validate = validator.New()

// wire shapes use pointers where the protocol requires field presence, so a
// missing "amount" is distinguishable from an explicit zero.
type wireOutput struct {
	Script string  `json:"script" validate:"required"`
	Amount *uint64 `json:"amount" validate:"required"`
}

type wirePaymentRequest struct {
	Outputs    []wireOutput `json:"outputs" validate:"required,min=1,dive"`
	Memo       string       `json:"memo" validate:"required"`
	PaymentURL string       `json:"paymentURL" validate:"required"`
}

// ParsePaymentRequest decodes and validates a 402 response body. Missing or
// empty outputs, an entry without script or amount, or an absent memo or
// paymentURL yield a *types.MalformedPaymentRequestError.
//
// Network is filled from paymentURL: the live server sends no separate
// network field, so the two are the same value by construction.
func ParsePaymentRequest(data []byte) (*types.PaymentRequest, error) {
	var wire wirePaymentRequest
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &types.MalformedPaymentRequestError{
			Reason: fmt.Sprintf("decode: %v", err),
		}
	}

	if err := validate.Struct(&wire); err != nil {
		return nil, &types.MalformedPaymentRequestError{
			Reason: fmt.Sprintf("validation: %v", err),
		}
	}

	outputs := make([]types.Output, 0, len(wire.Outputs))
	for _, o := range wire.Outputs {
		outputs = append(outputs, types.Output{
			Script:   o.Script,
			Satoshis: *o.Amount,
		})
	}

	return &types.PaymentRequest{
		Outputs:    outputs,
		Memo:       wire.Memo,
		PaymentURL: wire.PaymentURL,
		Network:    wire.PaymentURL,
	}, nil
}
