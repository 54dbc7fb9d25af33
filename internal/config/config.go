package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"doorbell_monitor/internal/models"

	"github.com/spf13/viper"
)

// Environment variable names. Viper keys are the lower-cased form.
const (
	EnvWyzeEmail     = "WYZE_EMAIL"
	EnvWyzePassword  = "WYZE_PASSWORD"
	EnvWyzeKeyID     = "WYZE_KEY_ID"
	EnvWyzeAPIKey    = "WYZE_API_KEY"
	EnvWyzeAuthURL   = "WYZE_AUTH_URL"
	EnvWyzeAPIURL    = "WYZE_API_URL"
	EnvThreshold     = "BATTERY_THRESHOLD"
	EnvForceAlert    = "FORCE_ALERT"
	EnvExploreMode   = "EXPLORE_MODE"
	EnvResendAPIKey  = "RESEND_API_KEY"
	EnvSenderEmail   = "SENDER_EMAIL"
	EnvRecipientMail = "RECIPIENT_EMAIL"
	EnvLogLevel      = "LOG_LEVEL"
)

const (
	DefaultThreshold = 20
	DefaultLogLevel  = "info"
	DefaultAuthURL   = "https://auth-prod.api.wyze.com"
	DefaultAPIURL    = "https://api.wyzecam.com"

	apiKeyHint = "get API keys at: https://developer-api-console.wyze.com/#/apikey/view"
)

var (
	ErrMissingVariables = errors.New("missing required variables")
	ErrInvalidSetting   = errors.New("invalid setting")
)

// WyzeSettings holds the device-directory credentials and endpoints.
type WyzeSettings struct {
	Email    string
	Password string
	KeyID    string
	APIKey   string
	AuthURL  string
	APIURL   string
}

// NotificationSettings holds what the email notifier needs. Recipients stay
// raw until Recipients() is called.
type NotificationSettings struct {
	APIKey        string
	Sender        string
	RawRecipients string
}

// Settings is built once per process and passed by value.
type Settings struct {
	BatteryThreshold int
	ForceAlert       bool
	ExploreMode      bool
	LogLevel         string
	Wyze             WyzeSettings
	Notification     NotificationSettings
}

// NewViper returns a viper instance reading the environment, with defaults
// applied. If envFile is non-empty and exists it is read as a dotenv file;
// real environment variables take precedence over it.
func NewViper(envFile string) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(key(EnvThreshold), DefaultThreshold)
	v.SetDefault(key(EnvForceAlert), "false")
	v.SetDefault(key(EnvExploreMode), "false")
	v.SetDefault(key(EnvLogLevel), DefaultLogLevel)
	v.SetDefault(key(EnvWyzeAuthURL), DefaultAuthURL)
	v.SetDefault(key(EnvWyzeAPIURL), DefaultAPIURL)

	if envFile == "" {
		return v, nil
	}
	if _, err := os.Stat(envFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("stat env file %q: %w", envFile, err)
	}

	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read env file %q: %w", envFile, err)
	}
	return v, nil
}

// Load reads Settings from v. Only BATTERY_THRESHOLD can fail here; presence
// of credentials is checked later by Validate and ValidateNotification.
func Load(v *viper.Viper) (Settings, error) {
	rawThreshold := strings.TrimSpace(v.GetString(key(EnvThreshold)))
	threshold, err := models.ToInt(rawThreshold)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidSetting, EnvThreshold, rawThreshold)
	}

	return Settings{
		BatteryThreshold: threshold,
		ForceAlert:       isTrue(v.GetString(key(EnvForceAlert))),
		ExploreMode:      isTrue(v.GetString(key(EnvExploreMode))),
		LogLevel:         v.GetString(key(EnvLogLevel)),
		Wyze: WyzeSettings{
			Email:    v.GetString(key(EnvWyzeEmail)),
			Password: v.GetString(key(EnvWyzePassword)),
			KeyID:    v.GetString(key(EnvWyzeKeyID)),
			APIKey:   v.GetString(key(EnvWyzeAPIKey)),
			AuthURL:  v.GetString(key(EnvWyzeAuthURL)),
			APIURL:   v.GetString(key(EnvWyzeAPIURL)),
		},
		Notification: NotificationSettings{
			APIKey:        v.GetString(key(EnvResendAPIKey)),
			Sender:        v.GetString(key(EnvSenderEmail)),
			RawRecipients: v.GetString(key(EnvRecipientMail)),
		},
	}, nil
}

// Validate checks the four Wyze credentials required for any run.
func (s Settings) Validate() error {
	missing := missingVars(map[string]string{
		EnvWyzeEmail:    s.Wyze.Email,
		EnvWyzePassword: s.Wyze.Password,
		EnvWyzeKeyID:    s.Wyze.KeyID,
		EnvWyzeAPIKey:   s.Wyze.APIKey,
	}, EnvWyzeEmail, EnvWyzePassword, EnvWyzeKeyID, EnvWyzeAPIKey)
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (%s)", ErrMissingVariables, strings.Join(missing, ", "), apiKeyHint)
	}
	return nil
}

// ValidateNotification checks the variables needed to send an alert.
func (s Settings) ValidateNotification() error {
	missing := missingVars(map[string]string{
		EnvResendAPIKey:  s.Notification.APIKey,
		EnvSenderEmail:   s.Notification.Sender,
		EnvRecipientMail: s.Notification.RawRecipients,
	}, EnvResendAPIKey, EnvSenderEmail, EnvRecipientMail)
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingVariables, strings.Join(missing, ", "))
	}
	return nil
}

// Recipients returns the parsed recipient list.
func (n NotificationSettings) Recipients() []string {
	return ParseRecipients(n.RawRecipients)
}

// ParseRecipients splits on ',' or ';', trims each address and drops empty
// entries. Order is preserved.
func ParseRecipients(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// missingVars returns the names in order whose value is blank.
func missingVars(values map[string]string, order ...string) []string {
	var missing []string
	for _, name := range order {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

func isTrue(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// Key returns the viper key for an environment variable name.
func Key(envName string) string {
	return key(envName)
}

func key(envName string) string {
	return strings.ToLower(envName)
}
