// Package payment constructs the funded transaction that satisfies a
// payment request.
package payment

import (
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"

	"github.com/get402/get402-go/blockchain"
	"github.com/get402/get402-go/types"
)

// Build maps every supplied UTXO to a P2PKH input and reproduces the
// request's outputs exactly, then signs and serializes. There is no coin
// selection and no change output: callers are responsible for not
// over-supplying inputs.
//
// Build is atomic: it returns the fully signed raw transaction bytes or a
// *types.PaymentBuildError, never partial state.
func Build(utxos []*blockchain.UTXO, request *types.PaymentRequest, key *ec.PrivateKey) ([]byte, error) {
	if len(utxos) == 0 {
		return nil, &types.PaymentBuildError{Reason: "no spendable outputs"}
	}
	if request == nil || len(request.Outputs) == 0 {
		return nil, &types.PaymentBuildError{Reason: "payment request has no outputs"}
	}

	unlocker, err := p2pkh.Unlock(key, nil)
	if err != nil {
		return nil, &types.PaymentBuildError{Reason: "unlock template", Err: err}
	}

	tx := transaction.NewTransaction()

	for _, u := range utxos {
		input, err := transaction.NewUTXO(u.TxID, u.Vout, u.Script, u.Satoshis)
		if err != nil {
			return nil, &types.PaymentBuildError{Reason: "bad utxo " + u.TxID, Err: err}
		}
		input.UnlockingScriptTemplate = unlocker
		if err := tx.AddInputsFromUTXOs(input); err != nil {
			return nil, &types.PaymentBuildError{Reason: "add input " + u.TxID, Err: err}
		}
	}

	for _, out := range request.Outputs {
		lock, err := script.NewFromHex(out.Script)
		if err != nil {
			return nil, &types.PaymentBuildError{Reason: "bad output script", Err: err}
		}
		tx.AddOutput(&transaction.TransactionOutput{
			LockingScript: lock,
			Satoshis:      out.Satoshis,
		})
	}

	if err := tx.Sign(); err != nil {
		return nil, &types.PaymentBuildError{Reason: "sign", Err: err}
	}

	return tx.Bytes(), nil
}
