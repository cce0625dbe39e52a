package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/get402/get402-go/types"
)

const validBody = `{
	"outputs": [
		{"script": "76a914eb0bd5edba389198e73f8efabddfc61666969ff788ac", "amount": 10000},
		{"script": "76a9140d6cf2ef7bc915d109f77357a71b64fc25e2e11488ac", "amount": 0}
	],
	"memo": "Buy 10 API calls for 0.01 USD",
	"paymentURL": "https://get402.com/api/payments"
}`

func TestParsePaymentRequest(t *testing.T) {
	request, err := ParsePaymentRequest([]byte(validBody))
	require.NoError(t, err)

	require.Len(t, request.Outputs, 2)
	require.Equal(t, "76a914eb0bd5edba389198e73f8efabddfc61666969ff788ac", request.Outputs[0].Script)
	require.Equal(t, uint64(10000), request.Outputs[0].Satoshis)
	require.Equal(t, uint64(0), request.Outputs[1].Satoshis)
	require.Equal(t, "Buy 10 API calls for 0.01 USD", request.Memo)
	require.Equal(t, "https://get402.com/api/payments", request.PaymentURL)
	require.Equal(t, request.PaymentURL, request.Network)
	require.Equal(t, uint64(10000), request.TotalSatoshis())
}

func TestParsePaymentRequest_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":       `{`,
		"no outputs":     `{"memo":"m","paymentURL":"u"}`,
		"empty outputs":  `{"outputs":[],"memo":"m","paymentURL":"u"}`,
		"missing script": `{"outputs":[{"amount":1}],"memo":"m","paymentURL":"u"}`,
		"missing amount": `{"outputs":[{"script":"00"}],"memo":"m","paymentURL":"u"}`,
		"missing memo":   `{"outputs":[{"script":"00","amount":1}],"paymentURL":"u"}`,
		"missing url":    `{"outputs":[{"script":"00","amount":1}],"memo":"m"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePaymentRequest([]byte(body))
			require.Error(t, err)

			var malformed *types.MalformedPaymentRequestError
			require.True(t, errors.As(err, &malformed), "want MalformedPaymentRequestError, got %T", err)
		})
	}
}

func TestParseMemo(t *testing.T) {
	info, err := ParseMemo("Buy 10 API calls for 0.01 USD")
	require.NoError(t, err)
	require.Equal(t, 10, info.Credits)
	require.Equal(t, "0.01", info.Price.String())

	info, err = ParseMemo("Buy 1000 API calls for 1 USD")
	require.NoError(t, err)
	require.Equal(t, 1000, info.Credits)
	require.Equal(t, "1", info.Price.String())
}

func TestParseMemo_Unrecognized(t *testing.T) {
	_, err := ParseMemo("thanks for your business")
	require.Error(t, err)
}
