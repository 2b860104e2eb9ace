package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	apperrors "careportal-reminders/internal/common/errors"
	"careportal-reminders/internal/common/logger"
	"careportal-reminders/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// PostgresStore implements StateStore over JSONB document tables:
// appointments, medication_schedules, patients and doctors each hold
// (id TEXT PRIMARY KEY, doc JSONB NOT NULL).
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgres(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "state-store"}),
	}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const remindableAppointmentsQuery = `
	SELECT id, doc FROM appointments
	WHERE doc->>'status' = 'upcoming'
	  AND (doc->>'reminderEnabled')::boolean = true`

func (s *PostgresStore) RemindableAppointments(ctx context.Context) ([]models.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, remindableAppointmentsQuery)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	defer rows.Close()

	var out []models.Appointment
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, apperrors.NewStoreUnavailableError(err)
		}

		var appt models.Appointment
		if err := decodeDoc(appointmentSchema, raw, &appt); err != nil {
			s.logger.Warn("skipping malformed appointment document", map[string]interface{}{
				"id":    id,
				"error": err.Error(),
			})
			continue
		}
		out = append(out, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	return out, nil
}

func (s *PostgresStore) MarkAppointmentReminded(ctx context.Context, id string, window ReminderWindow, at time.Time) error {
	var flagField, atField string
	switch window {
	case Window24h:
		flagField, atField = "reminderSent24h", "reminderSent24hAt"
	case Window1h:
		flagField, atField = "reminderSent1h", "reminderSent1hAt"
	default:
		return fmt.Errorf("unknown reminder window %q", window)
	}

	// Field names come from the switch above, never from input.
	query := fmt.Sprintf(`
		UPDATE appointments
		SET doc = jsonb_set(
			jsonb_set(doc, '{%s}', 'true'::jsonb, true),
			'{%s}', to_jsonb($2::text), true)
		WHERE id = $1`, flagField, atField)

	res, err := s.db.ExecContext(ctx, query, id, at.UTC().Format(time.RFC3339))
	if err != nil {
		return apperrors.NewStoreUnavailableError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		s.logger.Warn("appointment vanished before flag write", map[string]interface{}{
			"id":     id,
			"window": string(window),
		})
	}
	return nil
}

const remindableSchedulesQuery = `
	SELECT id, doc FROM medication_schedules
	WHERE (doc->>'reminderEnabled')::boolean = true`

func (s *PostgresStore) RemindableMedicationSchedules(ctx context.Context) ([]models.MedicationSchedule, error) {
	rows, err := s.db.QueryContext(ctx, remindableSchedulesQuery)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	defer rows.Close()

	var out []models.MedicationSchedule
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, apperrors.NewStoreUnavailableError(err)
		}

		var sched models.MedicationSchedule
		if err := decodeDoc(medicationScheduleSchema, raw, &sched); err != nil {
			s.logger.Warn("skipping malformed medication schedule document", map[string]interface{}{
				"id":    id,
				"error": err.Error(),
			})
			continue
		}
		out = append(out, sched)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	return out, nil
}

func (s *PostgresStore) Contact(ctx context.Context, kind models.RecipientKind, id string) (*models.Contact, error) {
	var table string
	switch kind {
	case models.RecipientPatient:
		table = "patients"
	case models.RecipientDoctor:
		table = "doctors"
	default:
		return nil, fmt.Errorf("invalid recipient kind: %s", kind)
	}

	var raw []byte
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, table)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewContactNotFoundError(string(kind), id)
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}

	var contact models.Contact
	if err := decodeDoc(contactSchema, raw, &contact); err != nil {
		return nil, apperrors.NewMalformedRecordError(string(kind), id, err.Error())
	}
	return &contact, nil
}

// decodeDoc validates raw against schema, then unmarshals into v. Date fields
// can still fail decoding after passing the schema (the schema checks accept
// more than the typed models do), so both steps can reject a document.
func decodeDoc(schema *gojsonschema.Schema, raw []byte, v interface{}) error {
	if err := validateDoc(schema, raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
