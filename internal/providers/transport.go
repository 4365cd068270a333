// Package providers holds the plumbing shared by every credit data adapter:
// the Transport capability, the bearer-token HTTP transport, the offline mock
// transport, date parsing and the error taxonomy.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/vire-credit/internal/common"
)

// maxResponseSize caps provider response bodies.
const maxResponseSize = 10 << 20 // 10MB

// Environment selects which provider deployment an adapter talks to.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
	EnvironmentMock       Environment = "mock" // offline, deterministic payloads
)

// Valid reports whether e is a known environment.
func (e Environment) Valid() bool {
	switch e {
	case EnvironmentSandbox, EnvironmentProduction, EnvironmentMock:
		return true
	}
	return false
}

// Transport sends one JSON request to a provider endpoint and decodes the
// JSON response into out. Non-2xx responses and network failures surface
// as *TransportError.
type Transport interface {
	Do(ctx context.Context, method, endpoint string, in, out interface{}) error
}

// HTTPTransport is a bearer-token authenticated JSON transport bound to one base URL.
type HTTPTransport struct {
	provider   string
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *common.Logger
}

// NewHTTPTransport creates a transport for the given provider base URL.
func NewHTTPTransport(provider, baseURL, token string, timeout time.Duration, logger *common.Logger) *HTTPTransport {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPTransport{
		provider:   provider,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     common.OrSilent(logger),
	}
}

// BaseURL returns the configured base URL.
func (t *HTTPTransport) BaseURL() string {
	return t.baseURL
}

// Do performs the request. Errors are logged with provider, method and endpoint
// context and returned unchanged to the caller.
func (t *HTTPTransport) Do(ctx context.Context, method, endpoint string, in, out interface{}) error {
	t.logger.Debug().Str("provider", t.provider).Str("method", method).Str("endpoint", endpoint).Msg("provider request")

	var bodyReader io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		t.logger.Error().
			Str("provider", t.provider).
			Str("method", method).
			Str("endpoint", endpoint).
			Int64("duration_ms", duration.Milliseconds()).
			Str("error", err.Error()).
			Msg("provider request failed")
		return &TransportError{Provider: t.provider, Method: method, Endpoint: endpoint, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &TransportError{Provider: t.provider, Method: method, Endpoint: endpoint, StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	t.logger.Debug().
		Str("provider", t.provider).
		Int("status", resp.StatusCode).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("provider response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		terr := &TransportError{
			Provider:   t.provider,
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
		t.logger.Warn().
			Str("provider", t.provider).
			Str("method", method).
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error", terr.Message).
			Msg("provider returned error status")
		return terr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Provider: t.provider, Method: method, Endpoint: endpoint, StatusCode: resp.StatusCode, Message: "failed to parse response", Err: err}
	}
	return nil
}

// errorMessage extracts a meaningful message from a provider error body.
func errorMessage(body []byte) string {
	var errResp struct {
		Error        string `json:"error"`
		Message      string `json:"message"`
		ErrorMessage string `json:"error_message"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		switch {
		case errResp.Error != "":
			return errResp.Error
		case errResp.ErrorMessage != "":
			return errResp.ErrorMessage
		case errResp.Message != "":
			return errResp.Message
		}
	}
	return strings.TrimSpace(string(body))
}
