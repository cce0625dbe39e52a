package blockchain

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"
)

// Network selects the WhatsOnChain chain.
type Network string

const (
	MainNet Network = "main"
	TestNet Network = "test"
)

// WhatsOnChain lists unspent outputs through the WhatsOnChain REST API.
type WhatsOnChain struct {
	network Network
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ UnspentLister = (*WhatsOnChain)(nil)

// NewWhatsOnChain creates a lister for the given network. The API key is
// optional for low request volumes.
func NewWhatsOnChain(network Network, apiKey string) *WhatsOnChain {
	return &WhatsOnChain{
		network: network,
		apiKey:  apiKey,
		baseURL: fmt.Sprintf("https://api.whatsonchain.com/v1/bsv/%s", network),
		client:  http.DefaultClient,
	}
}

type unspentItem struct {
	TxHash string `json:"tx_hash"`
	TxPos  uint32 `json:"tx_pos"`
	Value  uint64 `json:"value"`
	Height int64  `json:"height"`
}

// ListUnspent implements UnspentLister. The unspent endpoint does not return
// locking scripts, so the P2PKH script is reconstructed from the address.
func (w *WhatsOnChain) ListUnspent(ctx context.Context, address string) ([]*UTXO, error) {
	addr, err := script.NewAddressFromString(address)
	if err != nil {
		return nil, fmt.Errorf("list unspent: bad address %q: %w", address, err)
	}
	lock, err := p2pkh.Lock(addr)
	if err != nil {
		return nil, fmt.Errorf("list unspent: lock script for %q: %w", address, err)
	}
	lockHex := hex.EncodeToString(*lock)

	url := fmt.Sprintf("%s/address/%s/unspent", w.baseURL, address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if w.apiKey != "" {
		req.Header.Set("Authorization", w.apiKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list unspent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list unspent for %s: %s", address, resp.Status)
	}

	var items []unspentItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("list unspent: decode response: %w", err)
	}

	utxos := make([]*UTXO, 0, len(items))
	for _, item := range items {
		utxos = append(utxos, &UTXO{
			TxID:     item.TxHash,
			Vout:     item.TxPos,
			Script:   lockHex,
			Satoshis: item.Value,
		})
	}
	return utxos, nil
}
