package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	const search = "https://duckduckgo.com/?q="

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "   ", ""},
		{"https kept", "https://go.dev/doc", "https://go.dev/doc"},
		{"http kept", "http://example.com", "http://example.com"},
		{"scheme case-insensitive", "HTTPS://Example.com", "HTTPS://Example.com"},
		{"about page", "about:blank", "about:blank"},
		{"bare host", "go.dev", "https://go.dev"},
		{"trimmed", "  go.dev  ", "https://go.dev"},
		{"single word searches", "golang", search + "golang"},
		{"query escaped", "split view & tabs", search + "split%20view%20%26%20tabs"},
		{"host without dot searches", "localhost:3000", search + "localhost%3A3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.input, search))
		})
	}
}
