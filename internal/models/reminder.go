package models

import (
	"fmt"
	"time"
)

// DoseMarker is the composite identity of one medication reminder: a reminder
// for this schedule, at this dose time, on this calendar date, is sent at
// most once. The rendered key preserves the portal's historical field naming.
type DoseMarker struct {
	ScheduleID string
	DoseTime   string // the schedule entry as stored, e.g. "08:00"
	Date       string // YYYY-MM-DD
}

// NewDoseMarker builds the marker for a dose time on the day of now.
func NewDoseMarker(scheduleID, doseTime string, now time.Time) DoseMarker {
	return DoseMarker{
		ScheduleID: scheduleID,
		DoseTime:   doseTime,
		Date:       now.Format("2006-01-02"),
	}
}

// Key renders the persisted marker name.
func (m DoseMarker) Key() string {
	return fmt.Sprintf("lastReminder_%s_%s_%s", m.ScheduleID, m.DoseTime, m.Date)
}
