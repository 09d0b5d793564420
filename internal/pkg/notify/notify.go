package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/adiazny/calendar-events/internal/pkg/calendar"
	"github.com/adiazny/calendar-events/internal/pkg/dates"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sirupsen/logrus"
)

const subject = "Calendar events submitted"

// SNSPublisher is the part of *sns.Client used here.
type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Publisher struct {
	Log      *logrus.Entry
	TopicARN string
	SNS      SNSPublisher
}

func (p *Publisher) Notify(ctx context.Context, payload calendar.CalendarEventAPIPayload, resp *calendar.BackendResponse) error {
	input := &sns.PublishInput{
		Subject:  aws.String(subject),
		Message:  aws.String(Message(payload, resp)),
		TopicArn: aws.String(p.TopicARN),
	}

	out, err := p.SNS.Publish(ctx, input)
	if err != nil {
		p.Log.WithError(err).Error()
		return fmt.Errorf("error publishing to AWS SNS topic %s: %w", p.TopicARN, err)
	}

	p.Log.WithField("message_id", aws.ToString(out.MessageId)).Info("published submission")

	return nil
}

// Message renders one line per event followed by the backend status.
func Message(payload calendar.CalendarEventAPIPayload, resp *calendar.BackendResponse) string {
	var sb strings.Builder

	for _, event := range payload.Payload {
		label := event.Date
		if day, err := dates.ParseDay(event.Date); err == nil {
			label = dates.Header.Format(day) + ", " + dates.Display.Format(day)
		}
		fmt.Fprintf(&sb, "%s: %s\n", label, event.Name)
	}

	fmt.Fprintf(&sb, "Status: %s (%d)", resp.Status, resp.Code)

	return sb.String()
}
