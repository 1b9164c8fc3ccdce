package model

const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// Reservation is an inclusive date-range stay. Start and End are ISO
// YYYY-MM-DD strings; ISO dates sort lexicographically in chronological
// order, which is what makes plain string comparison on them safe.
//
// Status transitions are unconstrained: any status may be reassigned to any
// other at any time.
type Reservation struct {
	ID     string `json:"id" bson:"id" validate:"required"`
	Start  string `json:"start" bson:"start" validate:"required,isodate"`
	End    string `json:"end" bson:"end" validate:"required,isodate"`
	Status string `json:"status" bson:"status" validate:"required,oneof=confirmed pending cancelled"`
	Notes  string `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=2000"`
}

// Covers reports whether day falls within the reservation's inclusive range.
func (r Reservation) Covers(day string) bool {
	return day >= r.Start && day <= r.End
}
