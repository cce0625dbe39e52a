// Package auth produces the signed proof-of-identity header triple attached
// to authenticated get402 calls.
package auth

import (
	"encoding/base64"
	"fmt"
	"net/http"

	bsm "github.com/bsv-blockchain/go-sdk/compat/bsm"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/google/uuid"
)

// Domain is the fixed domain tag covered by every authentication signature.
const Domain = "get402.com"

// Header names carrying the authentication triple.
const (
	HeaderIdentifier = "auth-identifier"
	HeaderMessage    = "auth-message"
	HeaderSignature  = "auth-signature"
)

// Headers is one single-use authentication triple. The server verifies the
// signature against the message bytes and the identifier independently.
type Headers struct {
	Identifier string
	Message    string
	Signature  string
}

// Sign produces a fresh authentication triple for the given identity. The
// nonce is a new UUIDv4 on every call; triples are never cached or reused.
// The message is assembled by hand so the byte sequence covered by the
// signature has a stable field order.
func Sign(identifier string, key *ec.PrivateKey) (*Headers, error) {
	if key == nil {
		return nil, fmt.Errorf("auth: no signing key")
	}

	message := fmt.Sprintf(`{"nonce":%q,"domain":%q}`, uuid.NewString(), Domain)

	sig, err := bsm.SignMessage(key, []byte(message))
	if err != nil {
		return nil, fmt.Errorf("auth: sign message: %w", err)
	}

	return &Headers{
		Identifier: identifier,
		Message:    message,
		Signature:  base64.StdEncoding.EncodeToString(sig),
	}, nil
}

// Apply sets the triple on an outgoing request.
func (h *Headers) Apply(req *http.Request) {
	req.Header.Set(HeaderIdentifier, h.Identifier)
	req.Header.Set(HeaderMessage, h.Message)
	req.Header.Set(HeaderSignature, h.Signature)
}
