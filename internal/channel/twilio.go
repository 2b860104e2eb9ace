package channel

import (
	"context"
	"strings"

	"careportal-reminders/internal/common/config"
	apperrors "careportal-reminders/internal/common/errors"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator is the slice of the Twilio REST API the channel uses.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// WhatsApp sends through the Twilio WhatsApp Business channel. Addresses use
// the "whatsapp:+<digits>" scheme.
type WhatsApp struct {
	api        messageCreator
	from       string
	configured bool
}

func NewWhatsApp(cfg config.NotificationConfig) *WhatsApp {
	t := cfg.Twilio
	if t.AccountSID == "" || t.AuthToken == "" || t.From == "" {
		return &WhatsApp{}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: t.AccountSID,
		Password: t.AuthToken,
	})

	from := t.From
	if !strings.HasPrefix(from, "whatsapp:") {
		from = "whatsapp:+" + strings.TrimPrefix(from, "+")
	}

	return &WhatsApp{
		api:        client.Api,
		from:       from,
		configured: true,
	}
}

func (w *WhatsApp) Configured() bool {
	return w.configured
}

func (w *WhatsApp) AddressFor(digits string) string {
	return "whatsapp:+" + digits
}

// Send submits one message. The Twilio client manages its own HTTP timeouts;
// ctx is accepted for interface symmetry but the SDK call is not cancelable.
func (w *WhatsApp) Send(_ context.Context, address, body string) (string, error) {
	if !w.configured {
		return "", apperrors.NewConfigurationAbsentError()
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(address)
	params.SetFrom(w.from)
	params.SetBody(body)

	resp, err := w.api.CreateMessage(params)
	if err != nil {
		return "", apperrors.NewChannelDeliveryFailureError(err)
	}
	if resp.Sid != nil {
		return *resp.Sid, nil
	}
	return "", nil
}
