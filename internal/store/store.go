// Package store is the persistence boundary of the reminder core: a
// document-style state store holding appointment, medication schedule and
// profile records, plus the keyed dedupe-marker store.
package store

import (
	"context"
	"time"

	"careportal-reminders/internal/models"
)

// ReminderWindow names one of the two appointment threshold windows.
type ReminderWindow string

const (
	Window24h ReminderWindow = "24h"
	Window1h  ReminderWindow = "1h"
)

// StateStore is everything the scanners and the dispatcher need from the
// document database.
type StateStore interface {
	// Ping reports whether the store is reachable at all. The scheduler
	// refuses to start its timer when this fails at construction time.
	Ping(ctx context.Context) error

	// RemindableAppointments returns every appointment with
	// status == upcoming and reminderEnabled == true. Malformed documents
	// are skipped per-item, never failing the whole read.
	RemindableAppointments(ctx context.Context) ([]models.Appointment, error)

	// MarkAppointmentReminded flips the window's sent flag to true and
	// records the audit timestamp. Flags never revert.
	MarkAppointmentReminded(ctx context.Context, id string, window ReminderWindow, at time.Time) error

	// RemindableMedicationSchedules returns every schedule with
	// reminderEnabled == true; the active date range is filtered in-process.
	RemindableMedicationSchedules(ctx context.Context) ([]models.MedicationSchedule, error)

	// Contact resolves phone and display name for a recipient. Returns a
	// CONTACT_NOT_FOUND error when no such profile exists.
	Contact(ctx context.Context, kind models.RecipientKind, id string) (*models.Contact, error)
}

// MarkerStore persists medication dose-reminder markers. A marker is written
// only after a confirmed-successful dispatch and is never cleared by this
// subsystem.
type MarkerStore interface {
	Exists(ctx context.Context, m models.DoseMarker) (bool, error)
	Put(ctx context.Context, m models.DoseMarker, sentAt time.Time) error
}
