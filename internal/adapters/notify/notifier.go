package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"eventdesk/internal/domain"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// NotifierConfig holds configuration for creating a notifier.
type NotifierConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// NewNotifier creates a notifier from config. Provider "ses" delivers via
// AWS SES; "console" simulates delivery by printing each send; "noop" or
// unknown drops sends.
func NewNotifier(config NotifierConfig) (domain.Notifier, error) {
	switch config.Provider {
	case "ses":
		sesConfig := config.SES
		if sesConfig.InsecureSkipVerify {
			log.Printf("[NOTIFY] WARNING: TLS certificate verification is disabled for SES. Use only in development.")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: sesConfig.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg := aws.Config{
			Region: sesConfig.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					sesConfig.AccessKeyID,
					sesConfig.SecretAccessKey,
					"",
				),
			),
			HTTPClient: httpClient,
		}
		client := ses.NewFromConfig(awsCfg)
		return &sesNotifier{
			client:      client,
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
		}, nil
	case "console":
		return &consoleNotifier{}, nil
	case "noop":
		return &noopNotifier{}, nil
	default:
		log.Printf("[NOTIFY] Unknown notifier provider %q, using noop", config.Provider)
		return &noopNotifier{}, nil
	}
}

type sesNotifier struct {
	client      *ses.Client
	fromAddress string
	fromName    string
}

func (s *sesNotifier) Send(to, subject, html, text string) error {
	source := s.fromAddress
	if s.fromName != "" {
		source = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}
	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}
	if html != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(html),
			Charset: aws.String("UTF-8"),
		}
	}
	if text != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(text),
			Charset: aws.String("UTF-8"),
		}
	}
	ctx := context.Background()
	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send notification via SES: %w", err)
	}
	log.Printf("[NOTIFY] Notification sent via SES. MessageID: %s", aws.ToString(result.MessageId))
	return nil
}

// consoleNotifier simulates delivery by printing each send. It is the
// default provider.
type consoleNotifier struct{}

func (c *consoleNotifier) Send(to, subject, html, text string) error {
	log.Printf("[NOTIFY]   -> %s | %s", to, subject)
	return nil
}

type noopNotifier struct{}

func (n *noopNotifier) Send(to, subject, html, text string) error {
	log.Println("[NOTIFY] Notification would be sent (noop)", "to", to, "subject", subject)
	return nil
}
