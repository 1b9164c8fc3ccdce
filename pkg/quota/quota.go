// Package quota implements the day-occupancy evaluator and the quota
// admission engine. Everything in here is a pure computation over an
// in-memory client snapshot: no I/O, no side effects. The caller is
// responsible for obtaining a fresh snapshot before admission and for
// committing the reservation afterward.
package quota

import (
	"fmt"

	"lumiere/pkg/model"
)

// DefaultDailyQuota is the number of distinct clients permitted to hold a
// reservation covering the same calendar day, absent configuration.
const DefaultDailyQuota = 3

// ExceededError reports the first calendar day whose occupancy already
// equals the quota. Admission scans days in ascending order and fails fast,
// so Day is always the earliest offending day.
type ExceededError struct {
	Day   string
	Quota int
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("daily quota of %d reached for %s", e.Quota, e.Day)
}

// Occupancy returns every client, other than the excluded one, holding at
// least one reservation whose inclusive range contains day. Reservation
// status is not consulted: a cancelled reservation still occupies its days.
func Occupancy(clients []*model.Client, day string, excludeID string) []*model.Client {
	var occupied []*model.Client
	for _, c := range clients {
		if excludeID != "" && c.ID == excludeID {
			continue
		}
		for _, r := range c.Reservations {
			if r.Covers(day) {
				occupied = append(occupied, c)
				break
			}
		}
	}
	return occupied
}

// Admit validates a candidate [start, end] range against the daily quota.
// Every day in the range must have occupancy below dailyQuota, counting all
// clients except excludeID (so a client extending their own stay is not
// counted against themselves). The scan is fail-fast: the first day at quota
// aborts the check and is reported in the returned *ExceededError.
//
// Admit only validates; it never mutates the snapshot. There is no
// transactional guarantee between this check and the caller's commit — two
// concurrent admissions can both pass and produce a transient over-quota
// day. Serializing writers is the storage layer's concern.
func Admit(clients []*model.Client, start, end, excludeID string, dailyQuota int) error {
	if dailyQuota <= 0 {
		dailyQuota = DefaultDailyQuota
	}
	if err := ValidateRange(start, end); err != nil {
		return err
	}

	for day := range Days(start, end) {
		if len(Occupancy(clients, day, excludeID)) >= dailyQuota {
			return &ExceededError{Day: day, Quota: dailyQuota}
		}
	}
	return nil
}
