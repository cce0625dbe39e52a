package payment

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"
	"github.com/stretchr/testify/require"

	"github.com/get402/get402-go/blockchain"
	"github.com/get402/get402-go/types"
)

// fundedKey returns a key and a spendable P2PKH output locked to it.
func fundedKey(t *testing.T, satoshis uint64) (*ec.PrivateKey, *blockchain.UTXO) {
	t.Helper()

	key, err := ec.NewPrivateKey()
	require.NoError(t, err)
	addr, err := script.NewAddressFromPublicKey(key.PubKey(), true)
	require.NoError(t, err)
	lock, err := p2pkh.Lock(addr)
	require.NoError(t, err)

	return key, &blockchain.UTXO{
		TxID:     strings.Repeat("a1", 32),
		Vout:     0,
		Script:   hex.EncodeToString(*lock),
		Satoshis: satoshis,
	}
}

func paymentRequest(outputs ...types.Output) *types.PaymentRequest {
	return &types.PaymentRequest{
		Outputs:    outputs,
		Memo:       "Buy 10 API calls for 0.01 USD",
		PaymentURL: "https://get402.com/api/payments",
	}
}

func TestBuild(t *testing.T) {
	key, utxo := fundedKey(t, 20000)
	request := paymentRequest(
		types.Output{Script: "76a914eb0bd5edba389198e73f8efabddfc61666969ff788ac", Satoshis: 10000},
		types.Output{Script: "76a9140d6cf2ef7bc915d109f77357a71b64fc25e2e11488ac", Satoshis: 5000},
	)

	raw, err := Build([]*blockchain.UTXO{utxo}, request, key)
	require.NoError(t, err)

	tx, err := transaction.NewTransactionFromBytes(raw)
	require.NoError(t, err)

	// every supplied UTXO becomes an input, signed
	require.Len(t, tx.Inputs, 1)
	require.NotNil(t, tx.Inputs[0].UnlockingScript)
	require.NotEmpty(t, *tx.Inputs[0].UnlockingScript)

	// outputs reproduce the request exactly, in order
	require.Len(t, tx.Outputs, 2)
	for i, out := range request.Outputs {
		require.Equal(t, out.Satoshis, tx.Outputs[i].Satoshis)
		require.Equal(t, out.Script, hex.EncodeToString(*tx.Outputs[i].LockingScript))
	}
}

func TestBuild_AllUTXOsSpent(t *testing.T) {
	key, first := fundedKey(t, 8000)
	second := &blockchain.UTXO{
		TxID:     strings.Repeat("b2", 32),
		Vout:     1,
		Script:   first.Script,
		Satoshis: 4000,
	}
	request := paymentRequest(types.Output{Script: first.Script, Satoshis: 10000})

	raw, err := Build([]*blockchain.UTXO{first, second}, request, key)
	require.NoError(t, err)

	tx, err := transaction.NewTransactionFromBytes(raw)
	require.NoError(t, err)
	require.Len(t, tx.Inputs, 2)
}

func TestBuild_EmptyUTXOSet(t *testing.T) {
	key, _ := fundedKey(t, 0)
	request := paymentRequest(types.Output{Script: "00", Satoshis: 1})

	_, err := Build(nil, request, key)
	require.Error(t, err)

	var buildErr *types.PaymentBuildError
	require.True(t, errors.As(err, &buildErr))
}

func TestBuild_NoOutputs(t *testing.T) {
	key, utxo := fundedKey(t, 1000)

	_, err := Build([]*blockchain.UTXO{utxo}, paymentRequest(), key)
	var buildErr *types.PaymentBuildError
	require.True(t, errors.As(err, &buildErr))
}

func TestBuild_NilKey(t *testing.T) {
	_, utxo := fundedKey(t, 1000)
	request := paymentRequest(types.Output{Script: utxo.Script, Satoshis: 500})

	_, err := Build([]*blockchain.UTXO{utxo}, request, nil)
	var buildErr *types.PaymentBuildError
	require.True(t, errors.As(err, &buildErr))
}

func TestBuild_BadOutputScript(t *testing.T) {
	key, utxo := fundedKey(t, 1000)
	request := paymentRequest(types.Output{Script: "zz not hex", Satoshis: 500})

	_, err := Build([]*blockchain.UTXO{utxo}, request, key)
	var buildErr *types.PaymentBuildError
	require.True(t, errors.As(err, &buildErr))
}
