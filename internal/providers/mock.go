package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
)

// MockResponder produces a deterministic status code and JSON payload for one
// request. endpoint is the full request path; body is the marshalled request.
type MockResponder func(endpoint string, body []byte) (int, interface{})

// MockTransport serves deterministic payloads keyed by method and endpoint.
// A route key ending in "*" matches any endpoint with that prefix; the longest
// matching prefix wins. Payloads go through a JSON round trip so mock and live
// paths decode into identical shapes.
type MockTransport struct {
	provider string
	routes   map[string]MockResponder

	mu    sync.Mutex
	calls []string
}

// NewMockTransport creates a mock transport for the given routes.
// Keys have the form "POST /v2/credit/reports" or "GET /v2/disputes/*".
func NewMockTransport(provider string, routes map[string]MockResponder) *MockTransport {
	return &MockTransport{
		provider: provider,
		routes:   routes,
	}
}

// Calls returns the "METHOD endpoint" keys received so far.
func (m *MockTransport) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Do serves the request from the route table.
func (m *MockTransport) Do(ctx context.Context, method, endpoint string, in, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return &TransportError{Provider: m.provider, Method: method, Endpoint: endpoint, Message: err.Error(), Err: err}
	}

	m.mu.Lock()
	m.calls = append(m.calls, method+" "+endpoint)
	m.mu.Unlock()

	responder := m.match(method, endpoint)
	if responder == nil {
		return &TransportError{
			Provider:   m.provider,
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: http.StatusNotFound,
			Message:    "no mock route",
		}
	}

	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	status, payload := responder(endpoint, body)
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mock payload: %w", err)
	}

	if status < 200 || status > 299 {
		return &TransportError{
			Provider:   m.provider,
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: status,
			Message:    errorMessage(data),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Provider: m.provider, Method: method, Endpoint: endpoint, StatusCode: status, Message: "failed to parse response", Err: err}
	}
	return nil
}

func (m *MockTransport) match(method, endpoint string) MockResponder {
	key := method + " " + endpoint
	if r, ok := m.routes[key]; ok {
		return r
	}

	prefixes := make([]string, 0, len(m.routes))
	for k := range m.routes {
		if strings.HasSuffix(k, "*") {
			prefixes = append(prefixes, k)
		}
	}
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })

	for _, p := range prefixes {
		if strings.HasPrefix(key, strings.TrimSuffix(p, "*")) {
			return m.routes[p]
		}
	}
	return nil
}
