package cache

import (
	"strings"
	"testing"
)

func TestPageKey(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		same bool
	}{
		{
			name: "identical URLs produce identical keys",
			a:    "https://example.com/v1/search?Category=3",
			b:    "https://example.com/v1/search?Category=3",
			same: true,
		},
		{
			name: "different cursors produce different keys",
			a:    "https://example.com/v1/search?Category=3&Cursor=abc",
			b:    "https://example.com/v1/search?Category=3&Cursor=def",
			same: false,
		},
		{
			name: "different endpoints produce different keys",
			a:    "https://example.com/v1/search?Category=3",
			b:    "https://example.com/v1/search?Category=11",
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyA := PageKey(tt.a)
			keyB := PageKey(tt.b)

			if (keyA == keyB) != tt.same {
				t.Errorf("PageKey(%q) == PageKey(%q) is %v, want %v",
					tt.a, tt.b, keyA == keyB, tt.same)
			}
		})
	}
}

func TestPageKeyPrefix(t *testing.T) {
	key := PageKey("https://example.com/v1/search")

	if !strings.HasPrefix(key, keyPrefix) {
		t.Errorf("PageKey = %q, want prefix %q", key, keyPrefix)
	}

	// sha256 hex digest is 64 characters
	if len(key) != len(keyPrefix)+64 {
		t.Errorf("key length = %d, want %d", len(key), len(keyPrefix)+64)
	}
}
