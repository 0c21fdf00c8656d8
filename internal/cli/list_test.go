package cli

import (
	"testing"
	"unicode/utf8"
)

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short enough", "write docs", 40, "write docs"},
		{"ascii cut", "a very long task title that keeps going on", 20, "a very long task ..."},
		{"multibyte cut", "überprüfe die Änderungen am Prüfprotokoll nochmal", 20, "überprüfe die Änd..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateTitle(tt.input, tt.max)
			if got != tt.want {
				t.Errorf("truncateTitle(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateTitle produced invalid UTF-8: %q", got)
			}
		})
	}
}
