package httpx

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", url: "/x", wantLimit: 50, wantOffset: 0},
		{name: "explicit", url: "/x?limit=10&offset=30", wantLimit: 10, wantOffset: 30},
		{name: "clamped to max", url: "/x?limit=9999", wantLimit: 200, wantOffset: 0},
		{name: "negative offset", url: "/x?offset=-5", wantLimit: 50, wantOffset: 0},
		{name: "zero limit", url: "/x?limit=0", wantLimit: 1, wantOffset: 0},
		{name: "garbage ignored", url: "/x?limit=abc&offset=xyz", wantLimit: 50, wantOffset: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			limit, offset := ParseLimitOffset(r, 50, 200)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestSafeRedirectPath(t *testing.T) {
	assert.Equal(t, "/dashboard", safeRedirectPath("/dashboard"))
	assert.Equal(t, "/a/b?c=d", safeRedirectPath("/a/b?c=d"))
	assert.Equal(t, "/", safeRedirectPath(""))
	assert.Equal(t, "/", safeRedirectPath("https://evil.example.com/"))
	assert.Equal(t, "/", safeRedirectPath("//evil.example.com/"))
	assert.Equal(t, "/", safeRedirectPath("relative/path"))
}
