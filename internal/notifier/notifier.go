package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"doorbell_monitor/internal/config"
	"doorbell_monitor/internal/logger"

	"github.com/resend/resend-go/v2"
)

const (
	defaultSubject = "Wyze Doorbell Alert"
	runIDHeader    = "X-Entity-Ref-ID"
)

// ErrNotification wraps every setup and delivery failure.
var ErrNotification = errors.New("notification failed")

// Mailer is the subset of the Resend emails API used here.
type Mailer interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailNotifier sends alerts through Resend.
type EmailNotifier struct {
	mailer     Mailer
	sender     string
	recipients []string
	runID      string
	log        *logger.Logger
}

// NewEmailNotifier validates n and returns a notifier using mailer.
func NewEmailNotifier(n config.NotificationSettings, mailer Mailer, runID string, log *logger.Logger) (*EmailNotifier, error) {
	if strings.TrimSpace(n.APIKey) == "" {
		return nil, fmt.Errorf("%w: %s must be set", ErrNotification, config.EnvResendAPIKey)
	}
	if strings.TrimSpace(n.Sender) == "" {
		return nil, fmt.Errorf("%w: %s must be set (your verified Resend domain email)", ErrNotification, config.EnvSenderEmail)
	}
	if strings.TrimSpace(n.RawRecipients) == "" {
		return nil, fmt.Errorf("%w: %s must be set", ErrNotification, config.EnvRecipientMail)
	}
	recipients := n.Recipients()
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: %s must include at least one address", ErrNotification, config.EnvRecipientMail)
	}

	return &EmailNotifier{
		mailer:     mailer,
		sender:     strings.TrimSpace(n.Sender),
		recipients: recipients,
		runID:      runID,
		log:        log,
	}, nil
}

// NewResendNotifier builds a notifier backed by the real Resend client.
func NewResendNotifier(n config.NotificationSettings, runID string, log *logger.Logger) (*EmailNotifier, error) {
	client := resend.NewClient(n.APIKey)
	return NewEmailNotifier(n, client.Emails, runID, log)
}

// Recipients returns the parsed recipient list.
func (e *EmailNotifier) Recipients() []string {
	return append([]string(nil), e.recipients...)
}

// SendAlert emails message to all recipients. An empty subject uses the
// default one.
func (e *EmailNotifier) SendAlert(ctx context.Context, message, subject string) error {
	if subject == "" {
		subject = defaultSubject
	}
	params := &resend.SendEmailRequest{
		From:    e.sender,
		To:      e.recipients,
		Subject: subject,
		Text:    message,
	}
	if e.runID != "" {
		params.Headers = map[string]string{runIDHeader: e.runID}
	}

	sent, err := e.mailer.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("%w: send email via Resend: %w", ErrNotification, err)
	}

	id := ""
	if sent != nil {
		id = sent.Id
	}
	e.log.Infow("email sent", "to", strings.Join(e.recipients, ", "), "id", id)
	return nil
}

// SendBatteryAlert sends the low-battery email for one device.
func (e *EmailNotifier) SendBatteryAlert(ctx context.Context, level int, deviceName string) error {
	return e.SendAlert(ctx, BatteryMessage(level, deviceName), BatterySubject(level, deviceName))
}

func BatteryMessage(level int, deviceName string) string {
	return fmt.Sprintf(
		"Your Wyze doorbell battery is low!\n\nDevice: %s\nBattery: %d%%\n\nPlease charge it soon.",
		deviceName, level,
	)
}

func BatterySubject(level int, deviceName string) string {
	return fmt.Sprintf("Low Battery: %s (%d%%)", deviceName, level)
}
