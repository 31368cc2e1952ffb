package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"nul bytes stripped", "he\x00llo\x00", "hello"},
		{"control characters stripped", "a\x01b\x08c\x0Bd\x1Fe", "abcde"},
		{"del stripped", "a\x7Fb", "ab"},
		{"newline and tab preserved", "line1\nline2\tend", "line1\nline2\tend"},
		{"carriage return preserved", "line1\r\nline2", "line1\r\nline2"},
		{"unicode preserved", "résumé — über", "résumé — über"},
		{"whitespace not collapsed", "a  b   c", "a  b   c"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}
