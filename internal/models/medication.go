package models

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date persisted as "YYYY-MM-DD". Older documents carry a
// full RFC 3339 timestamp instead, so decoding accepts both.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// MedicationSchedule is the typed form of a medication schedule document.
// Sent state does not live here; dose reminders are deduplicated through the
// marker store.
type MedicationSchedule struct {
	ID              string   `json:"id"`
	PatientID       string   `json:"patientId"`
	Name            string   `json:"name"`
	Dosage          string   `json:"dosage"`
	TimesOfDay      []string `json:"timesOfDay"`
	StartDate       Date     `json:"startDate"`
	EndDate         *Date    `json:"endDate,omitempty"`
	ReminderEnabled bool     `json:"reminderEnabled"`
}

// ActiveAt reports whether the schedule is in its active date range:
// startDate <= now and (no endDate or endDate >= now).
func (s *MedicationSchedule) ActiveAt(now time.Time) bool {
	if s.StartDate.After(now) {
		return false
	}
	if s.EndDate != nil && s.EndDate.Before(now) {
		return false
	}
	return true
}
