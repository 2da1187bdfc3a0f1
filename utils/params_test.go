package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 12},
		{"explicit", "?page=3&limit=20", 3, 20},
		{"zero page clamps to one", "?page=0", 1, 12},
		{"negative page clamps to one", "?page=-2", 1, 12},
		{"limit capped", "?limit=500", 1, 100},
		{"garbage ignored", "?page=abc&limit=xyz", 1, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/products"+tt.query, nil)
			page, limit := ParsePage(r, 12, 100)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestSkip(t *testing.T) {
	assert.Equal(t, int64(0), Skip(1, 12))
	assert.Equal(t, int64(12), Skip(2, 12))
	assert.Equal(t, int64(60), Skip(6, 12))
}

func TestTotalPages(t *testing.T) {
	// 13 matching items at limit 12 means page 2 holds a single item
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(1, 12))
	assert.Equal(t, 3, TotalPages(25, 12))
}
