package service

import (
	"errors"
)

// Run failure classes. Each maps to its own process exit code.
var (
	ErrConfiguration         = errors.New("configuration error")
	ErrAuthentication        = errors.New("authentication error")
	ErrDeviceNotFound        = errors.New("doorbell not found")
	ErrBatteryUndeterminable = errors.New("could not determine battery level")
	ErrNotification          = errors.New("notification error")
)

// Process exit codes.
const (
	ExitOK                    = 0
	ExitConfiguration         = 1
	ExitDeviceNotFound        = 2
	ExitBatteryUndeterminable = 3
	ExitNotification          = 4
)

// ExitCode maps a run error to the process exit status. Errors outside the
// taxonomy (directory failures, malformed telemetry) exit with 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrDeviceNotFound):
		return ExitDeviceNotFound
	case errors.Is(err, ErrBatteryUndeterminable):
		return ExitBatteryUndeterminable
	case errors.Is(err, ErrNotification):
		return ExitNotification
	default:
		return ExitConfiguration
	}
}
