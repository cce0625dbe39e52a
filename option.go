package get402

import (
	"net/http"
	"time"

	"github.com/get402/get402-go/blockchain"
	"github.com/get402/get402-go/logger"
	"github.com/get402/get402-go/metrics"
)

// Option configures a Session at construction time.
type Option func(*Session)

// WithBaseURL points the session at a different API root.
func WithBaseURL(url string) Option {
	return func(s *Session) {
		s.baseURL = url
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) {
		s.http = c
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(t time.Duration) Option {
	return func(s *Session) {
		s.http.Timeout = t
	}
}

// WithLogger attaches a logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(r metrics.Recorder) Option {
	return func(s *Session) {
		s.metrics = r
	}
}

// WithUnspentLister replaces the chain-query capability used to fund
// payments. Tests substitute a double here.
func WithUnspentLister(l blockchain.UnspentLister) Option {
	return func(s *Session) {
		s.chain = l
	}
}
