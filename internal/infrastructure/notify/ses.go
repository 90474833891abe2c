package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog"

	"github.com/stylematch/waitlist/internal/core/domain"
)

// SESConfig selects the SES region, sender and recipients. Static keys are
// optional; without them the default AWS credential chain is used.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	From            string
	To              []string
}

type sesAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESNotifier emails a summary of every new submission through Amazon SES.
type SESNotifier struct {
	client sesAPI
	from   string
	to     []string
	log    zerolog.Logger
}

func NewSESNotifier(ctx context.Context, cfg SESConfig, log zerolog.Logger) (*SESNotifier, error) {
	if cfg.Region == "" || cfg.From == "" || len(cfg.To) == 0 {
		return nil, errors.New("ses notifier: region, sender and recipients are required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ses notifier: load aws config: %w", err)
	}
	return newSESNotifier(sesv2.NewFromConfig(awsCfg), cfg.From, cfg.To, log), nil
}

func newSESNotifier(client sesAPI, from string, to []string, log zerolog.Logger) *SESNotifier {
	return &SESNotifier{client: client, from: from, to: to, log: log}
}

func (n *SESNotifier) Notify(ctx context.Context, sub domain.Submission) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.from),
		Destination:      &types.Destination{ToAddresses: n.to},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject(sub)), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body(sub)), Charset: aws.String("UTF-8")},
				},
			},
		},
		EmailTags: []types.MessageTag{
			{Name: aws.String("kind"), Value: aws.String(string(sub.Kind()))},
		},
	}

	out, err := n.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send %s %s: %w", sub.Kind(), sub.SubmissionID(), err)
	}

	n.log.Debug().
		Str("kind", string(sub.Kind())).
		Str("id", sub.SubmissionID()).
		Str("message_id", aws.ToString(out.MessageId)).
		Msg("notification sent")
	return nil
}
