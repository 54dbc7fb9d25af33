package service

import (
	"context"
	"fmt"
	"time"

	"doorbell_monitor/internal/config"
	"doorbell_monitor/internal/logger"
	"doorbell_monitor/internal/models"

	"github.com/google/uuid"
)

// Monitor runs one battery check from login to (optional) alert.
type Monitor struct {
	settings    config.Settings
	dir         Directory
	services    *Service
	newNotifier NotifierFactory
	log         *logger.Logger
	runID       string
	now         func() time.Time
}

func NewMonitor(settings config.Settings, dir Directory, services *Service, newNotifier NotifierFactory, log *logger.Logger) *Monitor {
	runID := uuid.NewString()
	return &Monitor{
		settings:    settings,
		dir:         dir,
		services:    services,
		newNotifier: newNotifier,
		log:         log.With("run_id", runID),
		runID:       runID,
		now:         time.Now,
	}
}

// RunID identifies this run in logs and outgoing mail.
func (m *Monitor) RunID() string {
	return m.runID
}

// Run performs a single check. The returned error, if any, belongs to one
// of the package's error classes; see ExitCode.
func (m *Monitor) Run(ctx context.Context) error {
	m.log.Infow("doorbell battery monitor", "started_at", m.now().Format("2006-01-02 15:04:05"))

	if err := m.settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	m.log.Infow("authenticating with wyze")
	if err := m.dir.Login(ctx, m.settings.Wyze); err != nil {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	m.log.Infow("authenticated with wyze")

	if m.settings.ExploreMode {
		m.log.Infow("running in exploration mode")
		if err := m.services.Explore(ctx); err != nil {
			return fmt.Errorf("explore devices: %w", err)
		}
		m.log.Infow("exploration complete; use the device info above to identify your doorbell")
		return nil
	}

	doorbell, devices, err := m.services.FindDoorbell(ctx)
	if err != nil {
		return fmt.Errorf("list devices: %w", err)
	}
	if doorbell == nil {
		m.log.Infow("available devices", "count", len(devices))
		for _, d := range devices {
			m.log.Infow("device",
				"nickname", d.Nickname,
				"mac", d.MAC,
				"type", d.ProductType,
				"model", d.ProductModel,
				"online", d.IsOnline,
			)
		}
		return ErrDeviceNotFound
	}

	reading, err := m.services.ExtractBattery(doorbell)
	if err != nil {
		return fmt.Errorf("extract battery from %q: %w", doorbell.Nickname, err)
	}

	decision, err := Decide(reading, doorbell.Nickname, m.settings)
	if err != nil {
		return fmt.Errorf("%q: %w", doorbell.Nickname, err)
	}
	m.log.Infow("battery level", "device", doorbell.Nickname, "percent", reading.String())

	if !decision.Alert {
		m.log.Infow("battery level OK", "threshold", decision.Threshold)
		m.log.Infow("monitor completed successfully")
		return nil
	}

	if decision.Forced {
		m.log.Infow("force alert enabled, sending test notification")
	} else {
		m.log.Infow("battery below threshold, sending alert", "threshold", decision.Threshold)
	}

	if err := m.sendAlert(ctx, decision.DeviceName, reading); err != nil {
		return err
	}

	m.log.Infow("alert sent successfully")
	m.log.Infow("monitor completed successfully")
	return nil
}

func (m *Monitor) sendAlert(ctx context.Context, deviceName string, reading models.BatteryReading) error {
	if err := m.settings.ValidateNotification(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotification, err)
	}
	sender, err := m.newNotifier(m.settings.Notification, m.runID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotification, err)
	}
	level, _ := reading.Percent()
	if err := sender.SendBatteryAlert(ctx, level, deviceName); err != nil {
		return fmt.Errorf("%w: %w", ErrNotification, err)
	}
	return nil
}
