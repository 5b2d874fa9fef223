package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomDigitString(t *testing.T) {
	s := GenerateRandomDigitString(6)
	assert.Len(t, s, 6)
	for _, r := range s {
		assert.True(t, r >= '0' && r <= '9', "non-digit %q in %q", r, s)
	}
}

func TestGenerateRandomString(t *testing.T) {
	assert.Len(t, GenerateRandomString(16), 16)
	assert.Empty(t, GenerateRandomString(0))
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantSkip  int64
		wantLimit int64
	}{
		{"defaults", "/api/products", 0, 20},
		{"explicit", "/api/products?page=3&limit=10", 20, 10},
		{"limit capped", "/api/products?limit=500", 0, 100},
		{"bad values fall back", "/api/products?page=-1&limit=abc", 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			skip, limit := ParsePagination(r, 20, 100)
			assert.Equal(t, tt.wantSkip, skip)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}

	t.Run("catalog defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/products?page=2", nil)
		skip, limit := ParsePagination(r, 60, 100)
		assert.Equal(t, int64(60), skip)
		assert.Equal(t, int64(60), limit)
	})
}
