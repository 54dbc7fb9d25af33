package service

import (
	"context"
	"errors"

	"doorbell_monitor/internal/config"
	"doorbell_monitor/internal/models"
)

// fakeDirectory satisfies Directory with canned results.
type fakeDirectory struct {
	devices  []models.Device
	listErr  error
	loginErr error

	loginCalls int
	listCalls  int
	gotCreds   config.WyzeSettings
}

func (f *fakeDirectory) Login(_ context.Context, creds config.WyzeSettings) error {
	f.loginCalls++
	f.gotCreds = creds
	return f.loginErr
}

func (f *fakeDirectory) DevicesList(_ context.Context) ([]models.Device, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.devices, nil
}

// fakeSender records battery alerts.
type fakeSender struct {
	err        error
	calls      int
	lastLevel  int
	lastDevice string
}

func (f *fakeSender) SendBatteryAlert(_ context.Context, level int, deviceName string) error {
	f.calls++
	f.lastLevel = level
	f.lastDevice = deviceName
	return f.err
}

// telemetryOnly exposes Field but neither optional capability.
type telemetryOnly map[string]any

func (t telemetryOnly) Field(name string) (any, bool) {
	v, ok := t[name]
	return v, ok
}

// probedDevice lets tests control the optional capabilities.
type probedDevice struct {
	telemetryOnly
	dump    map[string]any
	dumpErr error
	nonNull map[string]any
	nnErr   error
}

func (p probedDevice) Dump() (map[string]any, error) {
	return p.dump, p.dumpErr
}

func (p probedDevice) NonNullAttributes() (map[string]any, error) {
	return p.nonNull, p.nnErr
}

// boxed mimics a vendor value object exposing Value().
type boxed struct{ v any }

func (b boxed) Value() any { return b.v }

var errSchemaDrift = errors.New("schema drift")

func doorbellDevice(telemetry map[string]any) models.Device {
	return models.Device{
		MAC:       "GW_BE1_7C78B2000002",
		Nickname:  "Front Door",
		IsOnline:  true,
		Product:   &models.Product{Type: "Doorbell", Model: "GW_BE1"},
		Telemetry: telemetry,
	}
}

func validSettings() config.Settings {
	return config.Settings{
		BatteryThreshold: 20,
		Wyze: config.WyzeSettings{
			Email: "me@example.com", Password: "pw", KeyID: "kid", APIKey: "key",
		},
		Notification: config.NotificationSettings{
			APIKey: "re_test", Sender: "alerts@example.com", RawRecipients: "me@example.com",
		},
	}
}
