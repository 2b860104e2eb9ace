package store

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Source records are schema-less documents. Each read validates the raw
// document against the entity's schema before decoding, so one malformed
// record skips itself instead of failing the scan.

const appointmentSchemaJSON = `{
	"type": "object",
	"required": ["id", "patientId", "scheduledAt", "status", "reminderEnabled"],
	"properties": {
		"id":              {"type": "string", "minLength": 1},
		"patientId":       {"type": "string", "minLength": 1},
		"doctorId":        {"type": "string"},
		"scheduledAt":     {"type": "string", "format": "date-time"},
		"type":            {"type": "string"},
		"status":          {"type": "string", "enum": ["upcoming", "completed", "cancelled"]},
		"reminderEnabled": {"type": "boolean"},
		"reminderSent24h": {"type": "boolean"},
		"reminderSent1h":  {"type": "boolean"}
	}
}`

const medicationScheduleSchemaJSON = `{
	"type": "object",
	"required": ["id", "patientId", "name", "timesOfDay", "startDate", "reminderEnabled"],
	"properties": {
		"id":              {"type": "string", "minLength": 1},
		"patientId":       {"type": "string", "minLength": 1},
		"name":            {"type": "string", "minLength": 1},
		"dosage":          {"type": "string"},
		"timesOfDay":      {"type": "array", "items": {"type": "string"}},
		"startDate":       {"type": "string"},
		"endDate":         {"type": "string"},
		"reminderEnabled": {"type": "boolean"}
	}
}`

const contactSchemaJSON = `{
	"type": "object",
	"required": ["id", "name"],
	"properties": {
		"id":    {"type": "string", "minLength": 1},
		"name":  {"type": "string"},
		"phone": {"type": "string"}
	}
}`

var (
	appointmentSchema        = mustCompileSchema(appointmentSchemaJSON)
	medicationScheduleSchema = mustCompileSchema(medicationScheduleSchemaJSON)
	contactSchema            = mustCompileSchema(contactSchemaJSON)
)

func mustCompileSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("store: invalid embedded schema: %v", err))
	}
	return schema
}

// validateDoc runs raw against schema and flattens the failures into one
// error message.
func validateDoc(schema *gojsonschema.Schema, raw []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	msg := ""
	for i, desc := range result.Errors() {
		if i > 0 {
			msg += "; "
		}
		msg += desc.String()
	}
	return fmt.Errorf("schema validation failed: %s", msg)
}
