package notify

import (
	"testing"
	"time"

	"careportal-reminders/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_AppointmentReminder(t *testing.T) {
	when := time.Date(2025, time.March, 14, 14, 30, 0, 0, time.UTC)

	body, err := Render(KindAppointmentReminder, "Sara Ahmed", Args{
		Date:            when,
		HoursUntil:      24,
		AppointmentType: models.TypeConsultation,
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Sara Ahmed")
	assert.Contains(t, body, "Friday, 14 March 2025")
	assert.Contains(t, body, "2:30 PM")
	assert.Contains(t, body, "Consultation")
	assert.Contains(t, body, "24 hours")
}

func TestRender_AppointmentReminder_SingularHour(t *testing.T) {
	when := time.Date(2025, time.March, 14, 14, 30, 0, 0, time.UTC)

	body, err := Render(KindAppointmentReminder, "Sara Ahmed", Args{
		Date:            when,
		HoursUntil:      1,
		AppointmentType: models.TypeFollowUp,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "1 hour)")
}

func TestRender_MedicationReminder(t *testing.T) {
	body, err := Render(KindMedicationReminder, "Omar Hassan", Args{
		MedicationName: "Metformin",
		DoseTime:       "08:00 AM",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Omar Hassan")
	assert.Contains(t, body, "Metformin")
	assert.Contains(t, body, "08:00 AM")
}

func TestRender_MedicationAdded(t *testing.T) {
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	body, err := Render(KindMedicationAdded, "Omar Hassan", Args{
		MedicationName: "Lisinopril",
		Dosage:         "10mg",
		Times:          []string{"08:00 AM", "08:00 PM"},
		StartDate:      start,
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Lisinopril")
	assert.Contains(t, body, "10mg")
	assert.Contains(t, body, "Sunday, 1 June 2025")
	assert.Contains(t, body, "08:00 AM, 08:00 PM")
}

func TestRender_DoctorFacing(t *testing.T) {
	when := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)

	body, err := Render(KindAppointmentBookedDoctor, "Mona Farouk", Args{
		Date:            when,
		AppointmentType: models.TypeExamination,
		PatientName:     "Omar Hassan",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Dr. Mona Farouk")
	assert.Contains(t, body, "Omar Hassan")
	assert.Contains(t, body, "9:00 AM")
}

func TestRender_HighRiskAlert(t *testing.T) {
	body, err := Render(KindHighRiskAlert, "Sara Ahmed", Args{})
	require.NoError(t, err)
	assert.Contains(t, body, "Sara Ahmed")
	assert.Contains(t, body, "elevated risk")

	body, err = Render(KindHighRiskAlertDoctor, "Mona Farouk", Args{PatientName: "Sara Ahmed"})
	require.NoError(t, err)
	assert.Contains(t, body, "Dr. Mona Farouk")
	assert.Contains(t, body, "Sara Ahmed")
}

func TestRender_Custom(t *testing.T) {
	body, err := Render(KindCustom, "Sara Ahmed", Args{Text: "your lab results are ready."})
	require.NoError(t, err)
	assert.Equal(t, "Dear Sara Ahmed, your lab results are ready.", body)
}

func TestRender_UnknownKind(t *testing.T) {
	_, err := Render(Kind("no-such-template"), "Sara Ahmed", Args{})
	assert.Error(t, err)
}
