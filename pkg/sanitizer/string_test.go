package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Sofia", "Sofia"},
		{"leading and trailing spaces", "  Sofia  ", "Sofia"},
		{"internal runs collapse", "Sofia   Laurent", "Sofia Laurent"},
		{"tabs and newlines", "Sofia\t\nLaurent", "Sofia Laurent"},
		{"empty", "", ""},
		{"only whitespace", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimAndNormalize_Idempotent(t *testing.T) {
	input := "  Sofia   Laurent "
	once := TrimAndNormalize(input)
	twice := TrimAndNormalize(once)
	if once != twice {
		t.Errorf("not idempotent: %q then %q", once, twice)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  amélie ", "Amélie"},
		{"sofia  laurent", "Sofia Laurent"},
		{"McDonald", "McDonald"},
		{"DUPONT", "DUPONT"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.input); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeCountry(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"france", "France"},
		{"  UNITED   KINGDOM ", "United Kingdom"},
		{"côte d'ivoire", "Côte D'ivoire"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeCountry(tt.input); got != tt.want {
			t.Errorf("NormalizeCountry(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeNameForComparison(t *testing.T) {
	if NormalizeNameForComparison("Sofia  Laurent") != NormalizeNameForComparison("sofia-laurent") {
		t.Error("expected comparison form to ignore case and punctuation")
	}
	if NormalizeNameForComparison("Sofia") == NormalizeNameForComparison("Sonia") {
		t.Error("distinct names must not collide")
	}
}
