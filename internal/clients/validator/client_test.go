package validator

import (
	"testing"

	"lumiere/pkg/logger"
	"lumiere/pkg/model"
)

func newTestValidator() *ClientValidator {
	log := logger.New(logger.Config{Level: "error", Format: logger.FormatText})
	return NewClientValidator(log)
}

func validClient() *model.Client {
	return &model.Client{
		ID:        "0d4f6a7e-9a5b-4b6e-8c3d-2f1e0a9b8c7d",
		FirstName: "Sofia",
		LastName:  "Laurent",
		Phone:     "+33612345678",
		Reservations: []model.Reservation{
			{ID: "res-1", Start: "2026-09-01", End: "2026-09-03", Status: model.StatusConfirmed},
		},
	}
}

func TestValidate_ValidClient(t *testing.T) {
	v := newTestValidator()
	if err := v.Validate(validClient()); err != nil {
		t.Errorf("expected valid client, got: %v", err)
	}
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	v := newTestValidator()

	c := validClient()
	c.FirstName = ""
	if err := v.Validate(c); err == nil {
		t.Error("expected error for missing first name")
	}

	c = validClient()
	c.LastName = ""
	if err := v.Validate(c); err == nil {
		t.Error("expected error for missing last name")
	}
}

func TestValidate_InvalidPhone(t *testing.T) {
	v := newTestValidator()
	c := validClient()
	c.Phone = "0612345678"
	if err := v.Validate(c); err == nil {
		t.Error("expected error for non-E.164 phone")
	}
}

func TestValidateReservation_Dates(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		res     model.Reservation
		wantErr bool
	}{
		{
			name: "valid range",
			res:  model.Reservation{ID: "r1", Start: "2026-09-01", End: "2026-09-05", Status: "confirmed"},
		},
		{
			name: "single day",
			res:  model.Reservation{ID: "r1", Start: "2026-09-01", End: "2026-09-01", Status: "pending"},
		},
		{
			name:    "end before start",
			res:     model.Reservation{ID: "r1", Start: "2026-09-05", End: "2026-09-01", Status: "confirmed"},
			wantErr: true,
		},
		{
			name:    "end before start equal length",
			res:     model.Reservation{ID: "r1", Start: "2025-07-05", End: "2025-07-01", Status: "confirmed"},
			wantErr: true,
		},
		{
			name:    "unpadded month",
			res:     model.Reservation{ID: "r1", Start: "2026-9-01", End: "2026-09-05", Status: "confirmed"},
			wantErr: true,
		},
		{
			name:    "impossible calendar day",
			res:     model.Reservation{ID: "r1", Start: "2026-02-30", End: "2026-03-02", Status: "confirmed"},
			wantErr: true,
		},
		{
			name:    "not a date",
			res:     model.Reservation{ID: "r1", Start: "tomorrow", End: "2026-09-05", Status: "confirmed"},
			wantErr: true,
		},
		{
			name:    "unknown status",
			res:     model.Reservation{ID: "r1", Start: "2026-09-01", End: "2026-09-05", Status: "waitlisted"},
			wantErr: true,
		},
		{
			name:    "missing id",
			res:     model.Reservation{Start: "2026-09-01", End: "2026-09-05", Status: "confirmed"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateReservation(&tt.res)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateReservations_InvertedRange(t *testing.T) {
	v := newTestValidator()
	reservations := []model.Reservation{
		{ID: "r1", Start: "2025-07-05", End: "2025-07-01", Status: "confirmed"},
	}
	if err := v.ValidateReservations(reservations); err == nil {
		t.Error("expected error for inverted date range")
	}
}

func TestValidate_InvertedReservationRange(t *testing.T) {
	v := newTestValidator()
	c := validClient()
	c.Reservations = []model.Reservation{
		{ID: "r1", Start: "2026-09-05", End: "2026-09-01", Status: "confirmed"},
	}
	if err := v.Validate(c); err == nil {
		t.Error("expected error for inverted date range on embedded reservation")
	}
}

func TestValidateReservations_DuplicateIDs(t *testing.T) {
	v := newTestValidator()
	reservations := []model.Reservation{
		{ID: "r1", Start: "2026-09-01", End: "2026-09-02", Status: "confirmed"},
		{ID: "r1", Start: "2026-10-01", End: "2026-10-02", Status: "pending"},
	}
	if err := v.ValidateReservations(reservations); err == nil {
		t.Error("expected error for duplicate reservation IDs")
	}
}

func TestValidateUpdate_ReplacementReservations(t *testing.T) {
	v := newTestValidator()
	bad := []model.Reservation{
		{ID: "r1", Start: "2026-09-10", End: "2026-09-01", Status: "confirmed"},
	}
	update := &model.ClientUpdate{Reservations: &bad}
	if err := v.ValidateUpdate(update); err == nil {
		t.Error("expected error for inverted range in replacement set")
	}
}
