// Package get402 implements the client side of the get402.com pay-per-call
// HTTP API: signed request authentication, interpretation of HTTP 402
// responses as payment requests, construction and submission of the on-chain
// payment, and resumption of the original intent once the payment clears.
package get402

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/get402/get402-go/auth"
	"github.com/get402/get402-go/blockchain"
	"github.com/get402/get402-go/identity"
	"github.com/get402/get402-go/logger"
	"github.com/get402/get402-go/metrics"
	"github.com/get402/get402-go/payment"
	"github.com/get402/get402-go/types"
	"github.com/get402/get402-go/utils"
)

// Version of the client library.
const Version = "1.0.0"

// DefaultBaseURL is the production get402 API.
const DefaultBaseURL = "https://get402.com/api"

const defaultTimeout = 30 * time.Second

// Session drives the protocol for one app/client identity pair. It holds no
// state beyond the identities and its collaborators: no balance bookkeeping,
// no cached outputs, no cached authentication. Sessions may run concurrently
// against the same server without coordination.
type Session struct {
	app    *identity.App
	client *identity.Client

	baseURL string
	http    *http.Client
	log     logger.Logger
	metrics metrics.Recorder
	chain   blockchain.UnspentLister
}

// NewSession creates a session for the given identities. By default it talks
// to the production API over a 30s-timeout HTTP client, queries UTXOs from
// WhatsOnChain mainnet, and neither logs nor records metrics.
func NewSession(app *identity.App, client *identity.Client, opts ...Option) *Session {
	s := &Session{
		app:     app,
		client:  client,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     logger.NoopLogger{},
		metrics: metrics.NoopRecorder{},
		chain:   blockchain.NewWhatsOnChain(blockchain.MainNet, ""),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetBalance returns the client's current credit balance. Unauthenticated;
// no payment logic is involved. Balance changes from a submitted payment are
// only observable here after the server has processed it.
func (s *Session) GetBalance(ctx context.Context) (int64, error) {
	defer s.observe(metrics.OpGetBalance)()

	url := fmt.Sprintf("%s/apps/%s/clients/%s", s.baseURL, s.app.Identifier, s.client.Identifier)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, s.protocolError(metrics.OpGetBalance, resp)
	}

	var balance types.Balance
	if err := json.NewDecoder(resp.Body).Decode(&balance); err != nil {
		return 0, fmt.Errorf("get balance: decode response: %w", err)
	}
	return balance.Balance, nil
}

// ChargeCredit debits the client's balance by params.Credits. The call is
// authenticated with a fresh signature from the app key.
//
// A *types.PaymentRequiredError return is routine: it means the balance is
// insufficient and carries the request to fund. Callers catch it, pay via
// SendPayment, and re-issue the charge.
func (s *Session) ChargeCredit(ctx context.Context, params types.ChargeParams) (*types.ChargeParams, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	defer s.observe(metrics.OpChargeCredit)()

	headers, err := auth.Sign(s.app.Identifier, s.app.Key())
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/clients/%s/calls", s.baseURL, s.client.Identifier)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	headers.Apply(req)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("charge credit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, s.protocolError(metrics.OpChargeCredit, resp)
	}

	var charged types.ChargeParams
	if err := json.NewDecoder(resp.Body).Decode(&charged); err != nil {
		return nil, fmt.Errorf("charge credit: decode response: %w", err)
	}
	return &charged, nil
}

// RequestBuyCredits asks the server for a payment request covering the given
// credit quantity. The endpoint's sole success mode is HTTP 402; anything
// else is an error, including an unexpected 2xx.
func (s *Session) RequestBuyCredits(ctx context.Context, credits int) (*types.PaymentRequest, error) {
	if credits <= 0 {
		return nil, fmt.Errorf("credits must be greater than 0, got %d", credits)
	}
	defer s.observe(metrics.OpRequestBuyCredits)()

	url := fmt.Sprintf("%s/apps/%s/clients/%s/buy-credits/%d",
		s.baseURL, s.app.Identifier, s.client.Identifier, credits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request buy credits: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusPaymentRequired {
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return nil, fmt.Errorf("request buy credits: %w", types.ErrNoPaymentRequest)
		}
		return nil, s.protocolError(metrics.OpRequestBuyCredits, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("request buy credits: read body: %w", err)
	}

	request, err := utils.ParsePaymentRequest(body)
	if err != nil {
		return nil, err
	}

	s.count(metrics.EventPaymentRequired, metrics.OpRequestBuyCredits)
	s.log.Debug("received payment request", map[string]any{
		"memo":     request.Memo,
		"outputs":  len(request.Outputs),
		"satoshis": request.TotalSatoshis(),
	})
	return request, nil
}

// SendPayment funds and submits a payment satisfying the request: it lists
// the client's unspent outputs, builds a signed transaction reproducing the
// requested outputs, and posts it to the payment endpoint. The payment
// request is consumed; it must not be reused after a successful submission.
func (s *Session) SendPayment(ctx context.Context, request *types.PaymentRequest) (types.PaymentAck, error) {
	if request == nil {
		return nil, &types.PaymentBuildError{Reason: "nil payment request"}
	}
	defer s.observe(metrics.OpSendPayment)()

	utxos, err := s.chain.ListUnspent(ctx, s.client.Identifier)
	if err != nil {
		return nil, fmt.Errorf("send payment: %w", err)
	}

	raw, err := payment.Build(utxos, request, s.client.Key())
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]string{
		"transaction": hex.EncodeToString(raw),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, s.protocolError(metrics.OpSendPayment, resp)
	}

	var ack types.PaymentAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, fmt.Errorf("send payment: decode response: %w", err)
	}

	s.count(metrics.EventPaymentSent, metrics.OpSendPayment)
	s.log.Info("payment submitted", map[string]any{
		"satoshis": request.TotalSatoshis(),
		"memo":     request.Memo,
	})
	return ack, nil
}

// BuyCredits obtains a fresh payment request for the given quantity and
// immediately pays it. Pure composition of RequestBuyCredits and
// SendPayment; the server is always asked, even if credits remain.
func (s *Session) BuyCredits(ctx context.Context, credits int) (types.PaymentAck, error) {
	request, err := s.RequestBuyCredits(ctx, credits)
	if err != nil {
		return nil, err
	}
	return s.SendPayment(ctx, request)
}

// protocolError maps a non-success response into the error taxonomy:
// 401 to NotAuthorizedError, 402 to PaymentRequiredError carrying the parsed
// request, anything else to a generic UnexpectedStatusError that is logged
// and surfaced unchanged.
func (s *Session) protocolError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		s.count(metrics.EventNotAuthorized, op)
		s.log.Warn("request not authorized", map[string]any{"operation": op})
		return &types.NotAuthorizedError{}

	case http.StatusPaymentRequired:
		request, err := utils.ParsePaymentRequest(body)
		if err != nil {
			return err
		}
		s.count(metrics.EventPaymentRequired, op)
		return &types.PaymentRequiredError{Request: request}

	default:
		err := &types.UnexpectedStatusError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
		s.log.Error("unexpected response", map[string]any{
			"operation": op,
			"status":    resp.StatusCode,
		})
		return err
	}
}

func (s *Session) count(event, op string) {
	s.metrics.IncCounter(event, map[string]string{"operation": op})
}

func (s *Session) observe(op string) func() {
	start := time.Now()
	return func() {
		s.metrics.ObserveLatency(op, time.Since(start), map[string]string{"operation": op})
	}
}
