// Package testutil provides testing utilities for the catalog collector.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/redpulseofficialscripter-dev/SHUT/pkg/catalog"
)

// MockResponse defines the behavior for a mock catalog endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockCatalog is a configurable mock catalog upstream for testing.
type MockCatalog struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	LastRequestHeader http.Header
	Cursors           []string
}

// NewMockCatalog creates a new mock catalog server.
func NewMockCatalog() *MockCatalog {
	mock := &MockCatalog{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.Cursors = append(mock.Cursors, r.URL.Query().Get("Cursor"))
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockCatalog) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockCatalog) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockCatalog) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestHeader = nil
	m.Cursors = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockCatalog) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockCatalog) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetPages configures a cursor-chained sequence of pages for a path. The
// first page is served for an empty Cursor parameter; each page links to the
// next via nextPageCursor, and the last page's cursor is empty.
func (m *MockCatalog) SetPages(path string, pages []catalog.Page) {
	byCursor := make(map[string]catalog.Page, len(pages))
	for i, page := range pages {
		cursor := ""
		if i > 0 {
			cursor = pages[i-1].NextPageCursor
		}
		byCursor[cursor] = page
	}

	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		page, ok := byCursor[r.URL.Query().Get("Cursor")]
		if !ok {
			http.Error(w, `{"errors":[{"message":"invalid cursor"}]}`, http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockCatalog) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetCursors returns the Cursor query parameter of every request in order.
func (m *MockCatalog) GetCursors() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.Cursors...)
}

// defaultHandler serves an empty single page.
func (m *MockCatalog) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"data":[],"nextPageCursor":null}`))
}

// PagesFromItems splits items into cursor-chained pages of pageSize.
func PagesFromItems(items []catalog.Item, pageSize int) []catalog.Page {
	if pageSize <= 0 {
		pageSize = 30
	}

	var pages []catalog.Page
	for start := 0; start < len(items); start += pageSize {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, catalog.Page{Data: items[start:end]})
	}
	if len(pages) == 0 {
		pages = []catalog.Page{{}}
	}

	for i := range pages[:len(pages)-1] {
		pages[i].NextPageCursor = fmt.Sprintf("cursor-%d", i+1)
	}
	return pages
}
