package allanime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  A ninja story.  ", "A ninja story."},
		{"breaks", "Line one.<br><br>Line two.", "Line one.\n\nLine two."},
		{"entities and tags", "Tom &amp; Jerry <i>(TV)</i>", "Tom & Jerry (TV)"},
		{"collapses blank runs", "a<br><br><br><br>b", "a\n\nb"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}
