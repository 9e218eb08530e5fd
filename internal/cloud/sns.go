package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient publishes dam alerts to one topic.
type SNSClient struct {
	svc      snsAPI
	topicArn string
	now      func() time.Time
}

func NewSNSClient(ctx context.Context, region, topicArn string) (*SNSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &SNSClient{svc: sns.NewFromConfig(cfg), topicArn: topicArn, now: time.Now}, nil
}

func (c *SNSClient) SendAlert(ctx context.Context, subject, message string) error {
	out, err := c.svc.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	log.Info().Str("message_id", aws.ToString(out.MessageId)).Str("subject", subject).Msg("alert sent")
	return nil
}

// SendFloodAlert notifies that a dam's flood risk has turned Red.
func (c *SNSClient) SendFloodAlert(ctx context.Context, dam domain.Dam, s domain.Safety) error {
	contact := s.EmergencyContact.Val
	subject := fmt.Sprintf("Flood Risk RED: %s", dam.Name)
	message := fmt.Sprintf(
		"Flood risk raised to %s\n\n"+
			"Dam: %s (%s)\n"+
			"River: %s\n"+
			"State: %s\n"+
			"Authority: %s %s\n"+
			"Time: %s\n\n"+
			"Follow the emergency action plan.",
		s.FloodRiskLevel,
		dam.Name, dam.ID,
		dam.RiverName,
		dam.StateName,
		contact.AuthorityName, contact.Phone,
		c.now().UTC().Format(time.RFC3339),
	)
	return c.SendAlert(ctx, subject, message)
}

// SendLevelAlert notifies that a reading reached the dam's maximum level.
func (c *SNSClient) SendLevelAlert(ctx context.Context, damID string, level, maxLevel float64, unit string) error {
	subject := fmt.Sprintf("Water Level Alert: dam %s", damID)
	message := fmt.Sprintf(
		"Water level at or above maximum\n\n"+
			"Dam: %s\n"+
			"Level: %.2f %s\n"+
			"Maximum: %.2f %s\n"+
			"Time: %s\n\n"+
			"Check spillway and gate operation.",
		damID,
		level, unit,
		maxLevel, unit,
		c.now().UTC().Format(time.RFC3339),
	)
	return c.SendAlert(ctx, subject, message)
}
