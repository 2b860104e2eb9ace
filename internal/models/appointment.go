package models

import "time"

type AppointmentType string

const (
	TypeConsultation     AppointmentType = "consultation"
	TypeFollowUp         AppointmentType = "follow-up"
	TypeExamination      AppointmentType = "examination"
	TypeMedicationReview AppointmentType = "medication-review"
	TypeRiskAssessment   AppointmentType = "risk-assessment"
	TypeOther            AppointmentType = "other"
)

// Label returns the human-readable form used in outbound messages.
func (t AppointmentType) Label() string {
	switch t {
	case TypeConsultation:
		return "Consultation"
	case TypeFollowUp:
		return "Follow-up"
	case TypeExamination:
		return "Examination"
	case TypeMedicationReview:
		return "Medication Review"
	case TypeRiskAssessment:
		return "Risk Assessment"
	default:
		return "Appointment"
	}
}

type AppointmentStatus string

const (
	StatusUpcoming  AppointmentStatus = "upcoming"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is the typed form of an appointment document. The two sent
// flags only ever flip from false to true; the booking flow owns everything
// else.
type Appointment struct {
	ID              string            `json:"id"`
	PatientID       string            `json:"patientId"`
	DoctorID        string            `json:"doctorId,omitempty"`
	ScheduledAt     time.Time         `json:"scheduledAt"`
	Type            AppointmentType   `json:"type"`
	Status          AppointmentStatus `json:"status"`
	ReminderEnabled bool              `json:"reminderEnabled"`
	ReminderSent24h bool              `json:"reminderSent24h"`
	ReminderSent1h  bool              `json:"reminderSent1h"`

	// Audit timestamps written alongside the flags.
	ReminderSent24hAt *time.Time `json:"reminderSent24hAt,omitempty"`
	ReminderSent1hAt  *time.Time `json:"reminderSent1hAt,omitempty"`
}
