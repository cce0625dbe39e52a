// Package identity models the two keypair-backed identities of the get402
// protocol: the application and its billable clients. An identifier is the
// BSV address derived from the key; the server uses it as the sole lookup
// key. Private keys are held as opaque handles and are never serialized.
package identity

import (
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
)

// App is the application identity. Its key signs authentication headers for
// charges against any of its clients.
type App struct {
	Identifier string

	key *ec.PrivateKey
}

// NewApp generates an App with a fresh random key.
func NewApp() (*App, error) {
	key, err := ec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate app key: %w", err)
	}
	return newApp(key)
}

// LoadApp restores an App from a WIF-encoded private key. This is the only
// persisted configuration surface of the library.
func LoadApp(wif string) (*App, error) {
	key, err := ec.PrivateKeyFromWif(wif)
	if err != nil {
		return nil, fmt.Errorf("load app key: %w", err)
	}
	return newApp(key)
}

func newApp(key *ec.PrivateKey) (*App, error) {
	identifier, err := addressOf(key)
	if err != nil {
		return nil, err
	}
	return &App{Identifier: identifier, key: key}, nil
}

// Key returns the app's signing key.
func (a *App) Key() *ec.PrivateKey {
	return a.key
}

// NewClient creates a billable client with a fresh key, owned by this app.
func (a *App) NewClient() (*Client, error) {
	key, err := ec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate client key: %w", err)
	}
	identifier, err := addressOf(key)
	if err != nil {
		return nil, err
	}
	return &Client{App: a, Identifier: identifier, key: key}, nil
}

// LoadClient restores a client by identifier. The key may be nil for
// watch-only use; such a client can be queried and charged but cannot fund
// payments.
func (a *App) LoadClient(identifier string, key *ec.PrivateKey) *Client {
	return &Client{App: a, Identifier: identifier, key: key}
}

// Client is a billable client identity owned by an App.
type Client struct {
	App        *App
	Identifier string

	key *ec.PrivateKey
}

// Key returns the client's spending key, or nil for watch-only clients.
func (c *Client) Key() *ec.PrivateKey {
	return c.key
}

// addressOf derives the stable public identifier for a key.
func addressOf(key *ec.PrivateKey) (string, error) {
	addr, err := script.NewAddressFromPublicKey(key.PubKey(), true)
	if err != nil {
		return "", fmt.Errorf("derive address: %w", err)
	}
	return addr.AddressString, nil
}
