package service

import (
	"doorbell_monitor/internal/config"
	"doorbell_monitor/internal/models"
)

// Decide reports whether to alert. An absent reading is an error, not a
// silent "no alert".
func Decide(reading models.BatteryReading, deviceName string, s config.Settings) (models.AlertDecision, error) {
	p, ok := reading.Percent()
	if !ok {
		return models.AlertDecision{}, ErrBatteryUndeterminable
	}
	return models.AlertDecision{
		Alert:      p < s.BatteryThreshold || s.ForceAlert,
		Forced:     s.ForceAlert,
		Reading:    reading,
		DeviceName: deviceName,
		Threshold:  s.BatteryThreshold,
	}, nil
}
