package channel

import (
	"context"

	appconfig "careportal-reminders/internal/common/config"
	apperrors "careportal-reminders/internal/common/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSService is the slice of the SNS API the channel uses, mockable in tests.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SMS sends plain text messages through AWS SNS. Addresses are bare E.164
// ("+<digits>").
type SMS struct {
	client     SNSService
	senderID   string
	configured bool
}

func NewSMS(ctx context.Context, cfg appconfig.NotificationConfig) (*SMS, error) {
	if cfg.SNS.Region == "" {
		return &SMS{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.SNS.Region))
	if err != nil {
		return nil, err
	}

	return &SMS{
		client:     sns.NewFromConfig(awsCfg),
		senderID:   cfg.SNS.SenderID,
		configured: true,
	}, nil
}

func (s *SMS) Configured() bool {
	return s.configured
}

func (s *SMS) AddressFor(digits string) string {
	return "+" + digits
}

func (s *SMS) Send(ctx context.Context, address, body string) (string, error) {
	if !s.configured {
		return "", apperrors.NewConfigurationAbsentError()
	}

	input := &sns.PublishInput{
		PhoneNumber: aws.String(address),
		Message:     aws.String(body),
	}
	if s.senderID != "" {
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(s.senderID),
			},
		}
	}

	out, err := s.client.Publish(ctx, input)
	if err != nil {
		return "", apperrors.NewChannelDeliveryFailureError(err)
	}
	if out.MessageId != nil {
		return *out.MessageId, nil
	}
	return "", nil
}
