package model

import "time"

// DayLock is an advisory lock on a single calendar day, taken for the
// duration of a quota admission check so two admissions for overlapping
// ranges cannot both pass the check and commit. Locks auto-expire via a TTL
// index in case a holder dies before releasing.
type DayLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
