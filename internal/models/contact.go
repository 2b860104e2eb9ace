package models

// RecipientKind selects which profile collection a contact is resolved from.
type RecipientKind string

const (
	RecipientPatient RecipientKind = "patient"
	RecipientDoctor  RecipientKind = "doctor"
)

// Contact is the slice of a profile document the dispatcher needs. It is
// resolved fresh from the store on every dispatch, never cached across scan
// cycles, so profile edits take effect on the next reminder.
type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
