package quota

import (
	"slices"
	"testing"
)

func collect(start, end string) []string {
	var days []string
	for d := range Days(start, end) {
		days = append(days, d)
	}
	return days
}

func TestDays_SingleDay(t *testing.T) {
	days := collect("2025-06-10", "2025-06-10")
	if len(days) != 1 || days[0] != "2025-06-10" {
		t.Errorf("expected exactly [2025-06-10], got %v", days)
	}
}

func TestDays_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{
			name:  "month rollover",
			start: "2025-01-31",
			end:   "2025-02-02",
			want:  []string{"2025-01-31", "2025-02-01", "2025-02-02"},
		},
		{
			name:  "leap year february",
			start: "2024-02-28",
			end:   "2024-03-01",
			want:  []string{"2024-02-28", "2024-02-29", "2024-03-01"},
		},
		{
			name:  "non-leap february",
			start: "2025-02-27",
			end:   "2025-03-01",
			want:  []string{"2025-02-27", "2025-02-28", "2025-03-01"},
		},
		{
			name:  "year rollover",
			start: "2024-12-30",
			end:   "2025-01-02",
			want:  []string{"2024-12-30", "2024-12-31", "2025-01-01", "2025-01-02"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(tt.start, tt.end)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Days(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestDays_LengthAndOrdering(t *testing.T) {
	start, end := "2025-06-09", "2025-08-14"
	days := collect(start, end)

	if want := RangeLength(start, end); len(days) != want {
		t.Fatalf("expected %d days, got %d", want, len(days))
	}
	for i := 1; i < len(days); i++ {
		if days[i] <= days[i-1] {
			t.Errorf("sequence not strictly ascending at index %d: %s then %s", i, days[i-1], days[i])
		}
	}
}

func TestDays_Restartable(t *testing.T) {
	seq := Days("2025-03-01", "2025-03-03")

	first := make([]string, 0, 3)
	for d := range seq {
		first = append(first, d)
	}
	second := make([]string, 0, 3)
	for d := range seq {
		second = append(second, d)
	}

	if !slices.Equal(first, second) {
		t.Errorf("second iteration %v differs from first %v", second, first)
	}
}

func TestDays_EarlyBreak(t *testing.T) {
	count := 0
	for range Days("2025-01-01", "2025-12-31") {
		count++
		if count == 5 {
			break
		}
	}
	if count != 5 {
		t.Errorf("expected iteration to stop at 5, got %d", count)
	}
}

func TestDays_MalformedBounds(t *testing.T) {
	if days := collect("not-a-date", "2025-06-10"); days != nil {
		t.Errorf("expected empty sequence for malformed start, got %v", days)
	}
	if days := collect("2025-06-10", "2025-13-40"); days != nil {
		t.Errorf("expected empty sequence for malformed end, got %v", days)
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantError bool
	}{
		{"valid range", "2025-06-09", "2025-06-11", false},
		{"single day", "2025-06-10", "2025-06-10", false},
		{"inverted", "2025-06-11", "2025-06-09", true},
		{"bad start", "2025/06/09", "2025-06-11", true},
		{"bad end", "2025-06-09", "2025-06-32", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(tt.start, tt.end)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateRange(%q, %q) error = %v, wantError %v", tt.start, tt.end, err, tt.wantError)
			}
		})
	}
}

func TestRangeLength(t *testing.T) {
	tests := []struct {
		start string
		end   string
		want  int
	}{
		{"2025-06-10", "2025-06-10", 1},
		{"2025-06-09", "2025-06-11", 3},
		{"2024-02-01", "2024-03-01", 30},
		{"2025-06-11", "2025-06-09", 0},
		{"garbage", "2025-06-09", 0},
	}

	for _, tt := range tests {
		if got := RangeLength(tt.start, tt.end); got != tt.want {
			t.Errorf("RangeLength(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}
