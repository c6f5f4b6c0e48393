package client

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		contains []string
	}{
		{
			name: "http error without cause",
			err: &APIError{
				StatusCode: 503,
				Class:      ErrorClassHTTP,
				Message:    "503 Service Unavailable",
			},
			contains: []string{"http", "503", "Service Unavailable"},
		},
		{
			name: "parse error with cause",
			err: &APIError{
				StatusCode: 200,
				Class:      ErrorClassParse,
				Message:    "decode response body",
				Err:        errors.New("unexpected end of JSON input"),
			},
			contains: []string{"parse", "200", "unexpected end of JSON input"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, want it to contain %q", msg, want)
				}
			}
		})
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &APIError{
		StatusCode: 500,
		Class:      ErrorClassHTTP,
		Message:    "500 Internal Server Error",
		Err:        cause,
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	wrapped := fmt.Errorf("fetch page: %w", err)
	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As should find the APIError through wrapping")
	}
	if apiErr.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{
			name:     "http status error",
			err:      &APIError{StatusCode: 429, Class: ErrorClassHTTP},
			expected: ErrorClassHTTP,
		},
		{
			name:     "parse error",
			err:      &APIError{Class: ErrorClassParse},
			expected: ErrorClassParse,
		},
		{
			name:     "wrapped api error",
			err:      fmt.Errorf("attempt 2: %w", &APIError{Class: ErrorClassHTTP}),
			expected: ErrorClassHTTP,
		},
		{
			name:     "plain transport error",
			err:      errors.New("dial tcp: connection refused"),
			expected: ErrorClassNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.expected {
				t.Errorf("classify() = %q, want %q", got, tt.expected)
			}
		})
	}
}
