package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"prayer-circle/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/resend/resend-go/v2"
	"github.com/spf13/viper"
)

// Mailer delivers operator alert emails. Delivery is best-effort; callers
// must never let a send failure block the mutation that triggered it.
type Mailer struct {
	sesClient *ses.Client
	from      string
	to        string
}

// New builds a mailer from configuration. SES is used when AWS_REGION is
// configured, otherwise Resend. Returns nil when no operator address is set,
// which disables alerts entirely.
func New() *Mailer {
	to := viper.GetString("OPERATOR_EMAIL")
	if to == "" {
		return nil
	}

	m := &Mailer{
		from: viper.GetString("ALERT_FROM_EMAIL"),
		to:   to,
	}
	if m.from == "" {
		m.from = "alerts@prayercircle.app"
	}

	if region := viper.GetString("AWS_REGION"); region != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
		if err != nil {
			logger.Get().Warn("Failed to load AWS config, falling back to Resend", logger.Err(err))
		} else {
			m.sesClient = ses.NewFromConfig(cfg)
		}
	}

	return m
}

// SendModerationAlert emails the operator about a flagged or rejected item.
func (m *Mailer) SendModerationAlert(ctx context.Context, subject, htmlBody string) error {
	if m == nil {
		return nil
	}
	if m.sesClient != nil {
		return m.sendSES(ctx, subject, htmlBody)
	}
	return m.sendResend(subject, htmlBody)
}

func (m *Mailer) sendSES(ctx context.Context, subject, htmlBody string) error {
	_, err := m.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{m.to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}

func (m *Mailer) sendResend(subject, htmlBody string) error {
	apiKey := viper.GetString("RESEND_API")
	if apiKey == "" {
		return fmt.Errorf("no mail provider configured")
	}

	client := resend.NewClient(apiKey)
	_, err := client.Emails.Send(&resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.to},
		Subject: subject,
		Html:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}

// AlertBody renders a small HTML body for a moderation alert. Title and
// concerns come from user input and are escaped.
func AlertBody(title string, id int64, status string, concerns []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Prayer request <strong>%s</strong> (id %d) was %s by automated moderation.</p>", html.EscapeString(title), id, status)
	if len(concerns) > 0 {
		b.WriteString("<ul>")
		for _, c := range concerns {
			fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(c))
		}
		b.WriteString("</ul>")
	}
	return b.String()
}
