package notify

import (
	"context"

	"careportal-reminders/internal/channel"
	apperrors "careportal-reminders/internal/common/errors"
	"careportal-reminders/internal/common/logger"
	"careportal-reminders/internal/models"

	"github.com/google/uuid"
)

// ContactResolver resolves a recipient's phone and display name. Resolution
// happens on every dispatch so profile edits apply to the very next reminder.
type ContactResolver interface {
	Contact(ctx context.Context, kind models.RecipientKind, id string) (*models.Contact, error)
}

// Result is the outcome of one dispatch attempt. Dispatch never panics and
// never returns a Go error; every failure mode lands in Err with Success
// false.
type Result struct {
	Success        bool
	NotificationID string
	Err            error
}

// Dispatcher resolves the recipient, renders the template and submits the
// message to the channel.
type Dispatcher struct {
	contacts    ContactResolver
	channel     channel.Channel
	countryCode string
	logger      logger.Logger
}

func NewDispatcher(contacts ContactResolver, ch channel.Channel, countryCode string, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		contacts:    contacts,
		channel:     ch,
		countryCode: countryCode,
		logger:      log.WithFields(map[string]interface{}{"component": "dispatcher"}),
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, recipientID string, kind models.RecipientKind, tpl Kind, args Args) Result {
	log := d.logger.WithFields(map[string]interface{}{
		"recipientId": recipientID,
		"recipient":   string(kind),
		"template":    string(tpl),
	})

	// Fail closed before any I/O when the channel has no credentials.
	if !d.channel.Configured() {
		log.Warn("message channel not configured, dispatch skipped", nil)
		return Result{Err: apperrors.NewConfigurationAbsentError()}
	}

	contact, err := d.contacts.Contact(ctx, kind, recipientID)
	if err != nil {
		log.Warn("recipient contact resolution failed", map[string]interface{}{"error": err.Error()})
		return Result{Err: err}
	}
	if contact.Phone == "" {
		log.Warn("recipient has no phone on file", nil)
		return Result{Err: apperrors.NewContactNotFoundError(string(kind), recipientID)}
	}

	digits := channel.NormalizeDigits(contact.Phone, d.countryCode)
	if digits == "" {
		log.Warn("recipient phone has no digits", nil)
		return Result{Err: apperrors.NewContactNotFoundError(string(kind), recipientID)}
	}
	address := d.channel.AddressFor(digits)

	body, err := Render(tpl, contact.Name, args)
	if err != nil {
		log.Error("template rendering failed", map[string]interface{}{"error": err.Error()})
		return Result{Err: err}
	}

	id, err := d.channel.Send(ctx, address, body)
	if err != nil {
		log.Error("message delivery failed", map[string]interface{}{"error": err.Error()})
		return Result{Err: err}
	}
	if id == "" {
		id = uuid.New().String()
	}

	log.Info("message dispatched", map[string]interface{}{"notificationId": id})
	return Result{Success: true, NotificationID: id}
}
