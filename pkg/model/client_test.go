package model

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

func TestClientRoundTrip_PreservesReservationOrder(t *testing.T) {
	const n = 7
	original := Client{
		ID:        "5c9f3a1e-83d4-4a36-9d27-1f2b7c8e0a11",
		FirstName: "Sofia",
		LastName:  "Laurent",
		Phone:     "+33612345678",
		Country:   "France",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	for i := 0; i < n; i++ {
		day := fmt.Sprintf("2025-06-%02d", i+1)
		original.Reservations = append(original.Reservations, Reservation{
			ID:     fmt.Sprintf("res-%d", i),
			Start:  day,
			End:    day,
			Status: StatusConfirmed,
			Notes:  fmt.Sprintf("stay %d", i),
		})
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var restored Client
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(restored.Reservations) != n {
		t.Fatalf("expected %d reservations, got %d", n, len(restored.Reservations))
	}
	for i, r := range restored.Reservations {
		if r != original.Reservations[i] {
			t.Errorf("reservation %d changed across round trip: %+v != %+v", i, r, original.Reservations[i])
		}
	}
}

func TestReservationCovers(t *testing.T) {
	r := Reservation{ID: "r1", Start: "2025-06-09", End: "2025-06-11", Status: StatusPending}

	tests := []struct {
		day  string
		want bool
	}{
		{"2025-06-08", false},
		{"2025-06-09", true},
		{"2025-06-10", true},
		{"2025-06-11", true},
		{"2025-06-12", false},
	}

	for _, tt := range tests {
		if got := r.Covers(tt.day); got != tt.want {
			t.Errorf("Covers(%s) = %v, want %v", tt.day, got, tt.want)
		}
	}
}
