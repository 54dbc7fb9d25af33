package wyze

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"doorbell_monitor/internal/config"
	"doorbell_monitor/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// Client talks to the Wyze cloud: one login, then device-list calls.
// It is not safe for concurrent use.
type Client struct {
	http        *resty.Client
	authURL     string
	apiURL      string
	phoneID     string
	accessToken string
	now         func() time.Time
}

// NewClient builds an unauthenticated client for the configured endpoints.
func NewClient(cfg config.WyzeSettings) *Client {
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = config.DefaultAuthURL
	}
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = config.DefaultAPIURL
	}

	return &Client{
		http: resty.New().
			SetTimeout(defaultTimeout).
			SetHeader("User-Agent", userAgent).
			SetHeader("Content-Type", "application/json"),
		authURL: strings.TrimRight(authURL, "/"),
		apiURL:  strings.TrimRight(apiURL, "/"),
		phoneID: uuid.NewString(),
		now:     time.Now,
	}
}

// Login authenticates with the developer key pair and stores the access
// token. Every failure wraps ErrAuthFailed.
func (c *Client) Login(ctx context.Context, creds config.WyzeSettings) error {
	var out loginResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("keyid", creds.KeyID).
		SetHeader("apikey", creds.APIKey).
		SetBody(loginRequest{
			Email:    strings.TrimSpace(creds.Email),
			Password: hashPassword(creds.Password),
		}).
		SetResult(&out).
		SetError(&out).
		Post(c.authURL + loginPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d: %s", ErrAuthFailed, resp.StatusCode(), describe(out, resp))
	}
	if out.AccessToken == "" {
		return fmt.Errorf("%w: no access token in response: %s", ErrAuthFailed, describe(out, resp))
	}

	c.accessToken = out.AccessToken
	return nil
}

// DevicesList returns every device registered to the account in API order.
func (c *Client) DevicesList(ctx context.Context) ([]models.Device, error) {
	if c.accessToken == "" {
		return nil, ErrNotAuthenticated
	}

	var out objectListResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(objectListRequest{
			AccessToken:     c.accessToken,
			AppName:         appName,
			AppVer:          appName + "___" + appVersion,
			AppVersion:      appVersion,
			PhoneID:         c.phoneID,
			PhoneSystemType: phoneSystemType,
			SC:              signatureSC,
			SV:              signatureSV,
			TS:              c.now().UnixMilli(),
		}).
		SetResult(&out).
		Post(c.apiURL + objectListPath)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: list devices: status %d: %s", ErrAPI, resp.StatusCode(), resp.String())
	}
	if !out.ok() {
		return nil, fmt.Errorf("%w: list devices: code %v: %s", ErrAPI, out.Code, out.Msg)
	}

	devices := make([]models.Device, 0, len(out.Data.DeviceList))
	for _, raw := range out.Data.DeviceList {
		devices = append(devices, toDevice(raw))
	}
	return devices, nil
}

// hashPassword applies MD5 three times, hex-encoding between rounds, as the
// Wyze login endpoint expects.
func hashPassword(password string) string {
	h := password
	for i := 0; i < 3; i++ {
		sum := md5.Sum([]byte(h))
		h = hex.EncodeToString(sum[:])
	}
	return h
}

func describe(out loginResponse, resp *resty.Response) string {
	if out.Description != "" {
		if out.ErrorCode != nil {
			return fmt.Sprintf("%s (code %v)", out.Description, out.ErrorCode)
		}
		return out.Description
	}
	return resp.String()
}
