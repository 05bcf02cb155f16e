// Package client implements the HTTP clients the Accounts service uses to
// aggregate loan and card data from its sibling services. Every client is
// wrapped in a circuit breaker and degrades to "no data" instead of failing
// the caller.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"banking-suite/internal/config"
	"banking-suite/internal/infrastructure/monitoring"
	"banking-suite/internal/pkg/correlation"

	"github.com/sony/gobreaker"
)

// errNoContent marks a well-formed 404 from a downstream service. It never
// escapes the client and never trips the breaker.
var errNoContent = fmt.Errorf("downstream resource not found")

type remoteClient struct {
	name    string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

func newRemoteClient(name string, cfg config.RemoteClientConfig, bcfg config.BreakerConfig, logger *slog.Logger) *remoteClient {
	rc := &remoteClient{
		name:    name,
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger.With(slog.String("component", name+"Client")),
	}

	rc.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: bcfg.MaxRequests,
		Interval:    bcfg.Interval,
		Timeout:     bcfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bcfg.ConsecutiveFailures
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			monitoring.RecordBreakerState(name, breakerStateValue(to))
			rc.logger.Warn("Circuit breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || err == errNoContent
		},
	})
	monitoring.RecordBreakerState(name, breakerStateValue(gobreaker.StateClosed))

	return rc
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// get performs a breaker-guarded GET against path, propagating the
// correlation identifier, and returns the response body. A nil body with a
// nil error means the downstream reported 404.
func (c *remoteClient) get(ctx context.Context, correlationID, path string) ([]byte, error) {
	body, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		if correlationID != "" {
			req.Header.Set(correlation.Header, correlationID)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, errNoContent
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, c.name)
		}

		return io.ReadAll(resp.Body)
	})
	if err == errNoContent {
		monitoring.RecordRemoteCall(c.name, "success")
		return nil, nil
	}
	if err != nil {
		monitoring.RecordRemoteCall(c.name, "failure")
		return nil, err
	}

	monitoring.RecordRemoteCall(c.name, "success")
	return body.([]byte), nil
}
