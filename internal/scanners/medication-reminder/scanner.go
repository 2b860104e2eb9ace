// Package medicationreminder expands active medication schedules into daily
// dose times and fires a reminder when a dose time is due, at most once per
// (schedule, dose time, calendar date).
package medicationreminder

import (
	"context"
	"time"

	apperrors "careportal-reminders/internal/common/errors"
	"careportal-reminders/internal/common/logger"
	"careportal-reminders/internal/common/metrics"
	"careportal-reminders/internal/models"
	"careportal-reminders/internal/notify"
)

const ScannerName = "medication-reminder"

// doseWindowMinutes is how far, in absolute minutes of the day, now may sit
// from a dose time for that dose to count as due. Matches the polling
// interval so every dose time is hit by exactly one tick's window.
const doseWindowMinutes = 5

// Store is the slice of the state store this scanner uses.
type Store interface {
	RemindableMedicationSchedules(ctx context.Context) ([]models.MedicationSchedule, error)
}

// Markers is the dose-reminder dedupe store.
type Markers interface {
	Exists(ctx context.Context, m models.DoseMarker) (bool, error)
	Put(ctx context.Context, m models.DoseMarker, sentAt time.Time) error
}

// Dispatcher submits one reminder and reports the outcome as a value.
type Dispatcher interface {
	Dispatch(ctx context.Context, recipientID string, kind models.RecipientKind, tpl notify.Kind, args notify.Args) notify.Result
}

type Scanner struct {
	store      Store
	markers    Markers
	dispatcher Dispatcher
	logger     logger.Logger
	now        func() time.Time
}

func New(st Store, markers Markers, disp Dispatcher, log logger.Logger) *Scanner {
	return &Scanner{
		store:      st,
		markers:    markers,
		dispatcher: disp,
		logger:     log.WithFields(map[string]interface{}{"scanner": ScannerName}),
		now:        time.Now,
	}
}

func (s *Scanner) Name() string { return ScannerName }

// Scan runs one pass over all reminder-enabled schedules. A malformed
// timesOfDay entry skips just that entry; a marker-store failure aborts the
// remaining work of this pass.
func (s *Scanner) Scan(ctx context.Context) error {
	schedules, err := s.store.RemindableMedicationSchedules(ctx)
	if err != nil {
		return err
	}

	now := s.now()
	nowMinute := now.Hour()*60 + now.Minute()

	for _, sched := range schedules {
		if !sched.ActiveAt(now) {
			continue
		}

		for _, entry := range sched.TimesOfDay {
			hour, minute, err := parseDoseTime(entry)
			if err != nil {
				metrics.RecordsSkipped.WithLabelValues(ScannerName).Inc()
				s.logger.Warn("skipping malformed dose time", map[string]interface{}{
					"scheduleId": sched.ID,
					"entry":      entry,
					"error":      err.Error(),
				})
				continue
			}

			diff := nowMinute - (hour*60 + minute)
			if diff < 0 {
				diff = -diff
			}
			if diff > doseWindowMinutes {
				continue
			}

			if err := s.remind(ctx, sched, entry, now); err != nil {
				return err
			}
		}
	}
	return nil
}

// remind checks the dedupe marker, dispatches, and writes the marker only
// after a confirmed-successful send. No marker is written on any failure
// path, so the dose stays eligible while today's window is still open.
func (s *Scanner) remind(ctx context.Context, sched models.MedicationSchedule, doseTime string, now time.Time) error {
	marker := models.NewDoseMarker(sched.ID, doseTime, now)

	seen, err := s.markers.Exists(ctx, marker)
	if err != nil {
		s.logger.Error("marker lookup failed, aborting pass", map[string]interface{}{
			"scheduleId": sched.ID,
			"marker":     marker.Key(),
			"error":      err.Error(),
		})
		return err
	}
	if seen {
		return nil
	}

	res := s.dispatcher.Dispatch(ctx, sched.PatientID, models.RecipientPatient, notify.KindMedicationReminder, notify.Args{
		MedicationName: sched.Name,
		Dosage:         sched.Dosage,
		DoseTime:       doseTime,
	})
	if !res.Success {
		metrics.RemindersFailed.WithLabelValues(ScannerName, failureCode(res.Err)).Inc()
		s.logger.Warn("medication reminder not sent", map[string]interface{}{
			"scheduleId": sched.ID,
			"doseTime":   doseTime,
			"error":      errString(res.Err),
		})
		return nil
	}

	if err := s.markers.Put(ctx, marker, now); err != nil {
		s.logger.Error("marker write failed, aborting pass", map[string]interface{}{
			"scheduleId": sched.ID,
			"marker":     marker.Key(),
			"error":      err.Error(),
		})
		return err
	}

	metrics.RemindersSent.WithLabelValues(ScannerName, "dose").Inc()
	s.logger.Info("medication reminder sent", map[string]interface{}{
		"scheduleId":     sched.ID,
		"doseTime":       doseTime,
		"notificationId": res.NotificationID,
	})
	return nil
}

func failureCode(err error) string {
	if code := apperrors.CodeOf(err); code != "" {
		return string(code)
	}
	return "UNKNOWN"
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
