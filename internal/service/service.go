package service

import (
	"context"
	"io"

	"doorbell_monitor/internal/config"
	"doorbell_monitor/internal/logger"
	"doorbell_monitor/internal/models"
)

// DeviceLister returns the account's devices in API order.
type DeviceLister interface {
	DevicesList(ctx context.Context) ([]models.Device, error)
}

// Directory is the vendor cloud: log in once, then list devices.
type Directory interface {
	DeviceLister
	Login(ctx context.Context, creds config.WyzeSettings) error
}

// AlertSender delivers a low-battery email.
type AlertSender interface {
	SendBatteryAlert(ctx context.Context, level int, deviceName string) error
}

// NotifierFactory builds an AlertSender once notification settings have
// been validated. runID tags outgoing mail.
type NotifierFactory func(n config.NotificationSettings, runID string) (AlertSender, error)

// Locator finds the doorbell.
type Locator interface {
	FindDoorbell(ctx context.Context) (*models.Device, []models.DeviceInfo, error)
}

// Battery turns device telemetry into a reading.
type Battery interface {
	ExtractBattery(src TelemetrySource) (models.BatteryReading, error)
}

// Explorer dumps all devices for discovery.
type Explorer interface {
	Explore(ctx context.Context) error
}

// Service aggregates the sub-services a run uses.
type Service struct {
	Locator
	Battery
	Explorer
}

// NewService wires the sub-services around one directory client. Explore
// output goes to out.
func NewService(dir DeviceLister, out io.Writer, log *logger.Logger) *Service {
	return &Service{
		Locator:  NewLocatorService(dir, log),
		Battery:  NewBatteryService(log),
		Explorer: NewExplorerService(dir, out, log),
	}
}
