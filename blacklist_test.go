package pagex_test

import (
	"testing"

	"github.com/fwojciec/pagex"
	"github.com/stretchr/testify/assert"
)

func TestHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"url with port and path", "https://Example.com:8443/path", "example.com"},
		{"bare domain with path", "example.com/path", "example.com"},
		{"bare domain with port", " news.example.com:8080 ", "news.example.com"},
		{"bare domain", "example.com", "example.com"},
		{"unparseable url", "http://[::1", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pagex.Host(tt.in))
		})
	}
}
