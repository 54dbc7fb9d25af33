package notifier

import (
	"context"
	"errors"
	"testing"

	"doorbell_monitor/internal/config"
	"doorbell_monitor/internal/logger"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeMailer) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.sent = append(f.sent, params)
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

var validSettings = config.NotificationSettings{
	APIKey:        "re_test",
	Sender:        "alerts@example.com",
	RawRecipients: "a@x.com; b@x.com, c@x.com",
}

func TestNewEmailNotifier_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.NotificationSettings)
		want   string
	}{
		{"missing api key", func(n *config.NotificationSettings) { n.APIKey = "" }, "RESEND_API_KEY"},
		{"missing sender", func(n *config.NotificationSettings) { n.Sender = " " }, "SENDER_EMAIL"},
		{"missing recipients", func(n *config.NotificationSettings) { n.RawRecipients = "" }, "RECIPIENT_EMAIL must be set"},
		{"only delimiters", func(n *config.NotificationSettings) { n.RawRecipients = " ;, " }, "at least one address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := validSettings
			tc.mutate(&n)

			_, err := NewEmailNotifier(n, &fakeMailer{}, "", logger.Nop())

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotification))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestSendBatteryAlert(t *testing.T) {
	mailer := &fakeMailer{}
	n, err := NewEmailNotifier(validSettings, mailer, "run-42", logger.Nop())
	require.NoError(t, err)

	require.NoError(t, n.SendBatteryAlert(context.Background(), 15, "Front Door"))

	require.Len(t, mailer.sent, 1)
	got := mailer.sent[0]
	assert.Equal(t, "alerts@example.com", got.From)
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, got.To)
	assert.Equal(t, "Low Battery: Front Door (15%)", got.Subject)
	assert.Equal(t, "Your Wyze doorbell battery is low!\n\nDevice: Front Door\nBattery: 15%\n\nPlease charge it soon.", got.Text)
	assert.Equal(t, "run-42", got.Headers[runIDHeader])
}

func TestSendAlert_DefaultSubject(t *testing.T) {
	mailer := &fakeMailer{}
	n, err := NewEmailNotifier(validSettings, mailer, "", logger.Nop())
	require.NoError(t, err)

	require.NoError(t, n.SendAlert(context.Background(), "hello", ""))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, defaultSubject, mailer.sent[0].Subject)
	assert.Nil(t, mailer.sent[0].Headers)
}

func TestSendAlert_FailureIsWrapped(t *testing.T) {
	cause := errors.New("rate limited")
	n, err := NewEmailNotifier(validSettings, &fakeMailer{err: cause}, "", logger.Nop())
	require.NoError(t, err)

	err = n.SendBatteryAlert(context.Background(), 5, "Front Door")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotification))
	assert.True(t, errors.Is(err, cause))
}

func TestRecipientsIsACopy(t *testing.T) {
	n, err := NewEmailNotifier(validSettings, &fakeMailer{}, "", logger.Nop())
	require.NoError(t, err)

	r := n.Recipients()
	r[0] = "changed"

	assert.Equal(t, "a@x.com", n.Recipients()[0])
}
