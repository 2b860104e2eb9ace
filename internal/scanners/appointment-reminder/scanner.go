// Package appointmentreminder scans upcoming appointments and fires the 24
// hour and 1 hour reminders when their threshold window is first entered.
package appointmentreminder

import (
	"context"
	"time"

	apperrors "careportal-reminders/internal/common/errors"
	"careportal-reminders/internal/common/logger"
	"careportal-reminders/internal/common/metrics"
	"careportal-reminders/internal/models"
	"careportal-reminders/internal/notify"
	"careportal-reminders/internal/store"
)

const ScannerName = "appointment-reminder"

// Threshold windows in hours before the appointment. Half-open on the lower
// bound so a reminder fires exactly once per window even though the scan
// re-runs every few minutes.
const (
	window24Lower = 20.0
	window24Upper = 25.0
	window1Upper  = 1.5
)

// Store is the slice of the state store this scanner uses.
type Store interface {
	RemindableAppointments(ctx context.Context) ([]models.Appointment, error)
	MarkAppointmentReminded(ctx context.Context, id string, window store.ReminderWindow, at time.Time) error
}

// Dispatcher submits one reminder and reports the outcome as a value.
type Dispatcher interface {
	Dispatch(ctx context.Context, recipientID string, kind models.RecipientKind, tpl notify.Kind, args notify.Args) notify.Result
}

type Scanner struct {
	store      Store
	dispatcher Dispatcher
	logger     logger.Logger
	now        func() time.Time
}

func New(st Store, disp Dispatcher, log logger.Logger) *Scanner {
	return &Scanner{
		store:      st,
		dispatcher: disp,
		logger:     log.WithFields(map[string]interface{}{"scanner": ScannerName}),
		now:        time.Now,
	}
}

func (s *Scanner) Name() string { return ScannerName }

// Scan runs one pass over all reminder-eligible appointments. Per-item
// dispatch failures are logged and skipped; a state store failure aborts the
// remaining work of this pass and is retried from scratch on the next tick.
func (s *Scanner) Scan(ctx context.Context) error {
	appts, err := s.store.RemindableAppointments(ctx)
	if err != nil {
		return err
	}

	now := s.now()
	for _, appt := range appts {
		hoursUntil := appt.ScheduledAt.Sub(now).Hours()
		if hoursUntil <= 0 {
			// Already in the past, nothing to remind about.
			continue
		}

		// The two windows are independent: both can fire for the same
		// appointment in different cycles.
		if hoursUntil > window24Lower && hoursUntil <= window24Upper && !appt.ReminderSent24h {
			if err := s.remind(ctx, appt, store.Window24h, 24, now); err != nil {
				return err
			}
		}
		if hoursUntil <= window1Upper && !appt.ReminderSent1h {
			if err := s.remind(ctx, appt, store.Window1h, 1, now); err != nil {
				return err
			}
		}
	}
	return nil
}

// remind dispatches one window's reminder and, only on confirmed success,
// persists the sent flag. A failed dispatch writes nothing so the item stays
// naturally eligible for the next pass. A failed flag write aborts the pass:
// continuing without the marker would risk a duplicate send.
func (s *Scanner) remind(ctx context.Context, appt models.Appointment, window store.ReminderWindow, hours int, now time.Time) error {
	res := s.dispatcher.Dispatch(ctx, appt.PatientID, models.RecipientPatient, notify.KindAppointmentReminder, notify.Args{
		Date:            appt.ScheduledAt,
		HoursUntil:      hours,
		AppointmentType: appt.Type,
	})
	if !res.Success {
		metrics.RemindersFailed.WithLabelValues(ScannerName, failureCode(res.Err)).Inc()
		s.logger.Warn("appointment reminder not sent", map[string]interface{}{
			"appointmentId": appt.ID,
			"window":        string(window),
			"error":         errString(res.Err),
		})
		return nil
	}

	if err := s.store.MarkAppointmentReminded(ctx, appt.ID, window, now); err != nil {
		s.logger.Error("sent-flag write failed, aborting pass", map[string]interface{}{
			"appointmentId": appt.ID,
			"window":        string(window),
			"error":         err.Error(),
		})
		return err
	}

	metrics.RemindersSent.WithLabelValues(ScannerName, string(window)).Inc()
	s.logger.Info("appointment reminder sent", map[string]interface{}{
		"appointmentId":  appt.ID,
		"window":         string(window),
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
