package utm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare domain gets https", "example.com", "https://example.com"},
		{"path preserved", "example.com/landing", "https://example.com/landing"},
		{"https left alone", "https://example.com", "https://example.com"},
		{"http left alone", "http://example.com", "http://example.com"},
		{"surrounding whitespace trimmed", "  example.com  ", "https://example.com"},
		{"empty input", "", ""},
		{"whitespace only", "   ", ""},
		{"uppercase scheme not recognized", "HTTP://example.com", "https://HTTP://example.com"},
		{"other schemes not recognized", "ftp://example.com", "https://ftp://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"example.com", "https://example.com", "  example.com/a?b=c  "}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
