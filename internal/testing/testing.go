// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/barboracab/hangthedj/internal/catalog"
)

// MockCatalog is a test double for [catalog.Service].
//
// It records every query and serves a canned result or error.
type MockCatalog struct {
	Result *catalog.SearchResult
	Raw    []byte
	Err    error

	mu      sync.Mutex
	queries []string
}

func (m *MockCatalog) SearchTracks(ctx context.Context, query string) (*catalog.SearchResult, error) {
	m.record(query)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result == nil {
		return &catalog.SearchResult{}, nil
	}
	return m.Result, nil
}

func (m *MockCatalog) SearchTracksRaw(ctx context.Context, query string) ([]byte, error) {
	m.record(query)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Raw == nil {
		return []byte(`{"tracks":{"items":[],"total":0}}`), nil
	}
	return m.Raw, nil
}

func (m *MockCatalog) Name() string { return "mock" }

func (m *MockCatalog) record(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
}

// Queries returns every query the mock has served, in order.
func (m *MockCatalog) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)
