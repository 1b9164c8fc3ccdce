package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already e164", "+33612345678", "+33612345678"},
		{"spaces and dashes", "+33 6 12-34-56-78", "+33612345678"},
		{"parentheses", "+1 (415) 555-0132", "+14155550132"},
		{"double zero prefix", "0033612345678", "+33612345678"},
		{"dots", "+33.6.12.34.56.78", "+33612345678"},
		{"national format", "0612345678", "+33612345678"},
		{"national with spaces", "06 12 34 56 78", "+33612345678"},
		{"letters", "+33abc", ""},
		{"too short", "+331", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	once := NormalizePhone("+33 6 12 34 56 78")
	twice := NormalizePhone(once)
	if once != twice {
		t.Errorf("not idempotent: %q then %q", once, twice)
	}
}
