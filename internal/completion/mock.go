package completion

import (
	"context"
	"sync"
)

// MockClient is a deterministic Client for testing.
type MockClient struct {
	// Response is the text returned by Complete.
	Response string

	// Error, if set, is returned by Complete and Ping.
	Error error

	// Block makes Complete wait for ctx to be done and return its error.
	Block bool

	mu          sync.Mutex
	calls       int
	lastRequest Request
}

// NewMockClient creates a mock returning response.
func NewMockClient(response string) *MockClient {
	return &MockClient{Response: response}
}

// NewMockClientWithError creates a mock that always fails with err.
func NewMockClientWithError(err error) *MockClient {
	return &MockClient{Error: err}
}

// Name implements Client.
func (m *MockClient) Name() string { return "mock" }

// Complete records the request and returns the configured outcome.
func (m *MockClient) Complete(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastRequest = req
	m.mu.Unlock()

	if m.Block {
		<-ctx.Done()
		return "", wrapUpstream("mock", ctx.Err())
	}
	if m.Error != nil {
		return "", m.Error
	}
	return m.Response, nil
}

// Ping returns the configured error.
func (m *MockClient) Ping(ctx context.Context) error {
	if m.Block {
		<-ctx.Done()
		return wrapUpstream("mock", ctx.Err())
	}
	return m.Error
}

// Calls returns the number of Complete invocations.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastRequest returns the most recent request passed to Complete.
func (m *MockClient) LastRequest() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}
