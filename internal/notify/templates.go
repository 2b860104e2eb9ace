package notify

import (
	"fmt"
	"strings"
	"time"

	"careportal-reminders/internal/models"
)

// Kind names one of the fixed message templates. Each renders a fully-formed,
// human-readable message from a small set of named arguments.
type Kind string

const (
	KindAppointmentBooked       Kind = "appointment-booked"
	KindAppointmentReminder     Kind = "appointment-reminder"
	KindAppointmentBookedDoctor Kind = "appointment-booked-doctor"
	KindMedicationAdded         Kind = "medication-added"
	KindMedicationReminder      Kind = "medication-reminder"
	KindHighRiskAlert           Kind = "high-risk-alert"
	KindHighRiskAlertDoctor     Kind = "high-risk-alert-doctor"
	KindCustom                  Kind = "custom"
)

// Args carries the named template arguments. Each kind reads only its own
// fields.
type Args struct {
	Date            time.Time
	HoursUntil      int
	AppointmentType models.AppointmentType

	MedicationName string
	Dosage         string
	Times          []string
	DoseTime       string
	StartDate      time.Time

	PatientName string // doctor-facing templates
	Text        string // custom
}

const (
	dateLayout = "Monday, 2 January 2006"
	timeLayout = "3:04 PM"
)

// Render produces the message body for kind addressed to recipientName.
func Render(kind Kind, recipientName string, a Args) (string, error) {
	switch kind {
	case KindAppointmentBooked:
		return fmt.Sprintf(
			"Dear %s, your %s has been booked for %s at %s. We look forward to seeing you.",
			recipientName, a.AppointmentType.Label(),
			a.Date.Format(dateLayout), a.Date.Format(timeLayout),
		), nil

	case KindAppointmentReminder:
		return fmt.Sprintf(
			"Dear %s, this is a reminder of your %s on %s at %s (in about %d %s). Please contact us if you need to reschedule.",
			recipientName, a.AppointmentType.Label(),
			a.Date.Format(dateLayout), a.Date.Format(timeLayout),
			a.HoursUntil, plural(a.HoursUntil, "hour"),
		), nil

	case KindAppointmentBookedDoctor:
		return fmt.Sprintf(
			"Dr. %s, a %s with %s has been booked for %s at %s.",
			recipientName, a.AppointmentType.Label(), a.PatientName,
			a.Date.Format(dateLayout), a.Date.Format(timeLayout),
		), nil

	case KindMedicationAdded:
		return fmt.Sprintf(
			"Dear %s, %s (%s) has been added to your medication plan starting %s. Daily reminder times: %s.",
			recipientName, a.MedicationName, a.Dosage,
			a.StartDate.Format(dateLayout), strings.Join(a.Times, ", "),
		), nil

	case KindMedicationReminder:
		return fmt.Sprintf(
			"Dear %s, it is time to take your %s (%s dose).",
			recipientName, a.MedicationName, a.DoseTime,
		), nil

	case KindHighRiskAlert:
		return fmt.Sprintf(
			"Dear %s, your recent assessment indicates an elevated risk level. Please contact your care team as soon as possible.",
			recipientName,
		), nil

	case KindHighRiskAlertDoctor:
		return fmt.Sprintf(
			"Dr. %s, the recent assessment of your patient %s indicates an elevated risk level. Please review their record.",
			recipientName, a.PatientName,
		), nil

	case KindCustom:
		return fmt.Sprintf("Dear %s, %s", recipientName, a.Text), nil
	}

	return "", fmt.Errorf("unknown template kind: %s", kind)
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
