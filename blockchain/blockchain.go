// Package blockchain provides the chain-query capability the payment flow
// depends on: listing spendable outputs for an address. Implementations are
// injected into the session at construction time so tests can substitute a
// double; there is no package-level singleton.
package blockchain

import "context"

// UTXO is an unspent prior output usable as a funding input. Script is the
// hex-encoded locking script, Satoshis the output value.
type UTXO struct {
	TxID     string `json:"txid"`
	Vout     uint32 `json:"vout"`
	Script   string `json:"script"`
	Satoshis uint64 `json:"satoshis"`
}

// UnspentLister looks up the spendable outputs at an address. Callers query
// immediately before every payment build and never cache the result; a stale
// view risks building a double spend.
type UnspentLister interface {
	ListUnspent(ctx context.Context, address string) ([]*UTXO, error)
}
