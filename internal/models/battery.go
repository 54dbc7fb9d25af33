package models

import "fmt"

const (
	MinBatteryPercent = 0
	MaxBatteryPercent = 100
)

// BatteryReading is a battery percentage in [0,100], or absent when no
// source on the device yielded a value. The zero value is absent.
type BatteryReading struct {
	percent int
	present bool
}

// NewBatteryReading clamps p into [0,100].
func NewBatteryReading(p int) BatteryReading {
	switch {
	case p < MinBatteryPercent:
		p = MinBatteryPercent
	case p > MaxBatteryPercent:
		p = MaxBatteryPercent
	}
	return BatteryReading{percent: p, present: true}
}

// NoBatteryReading is the absent reading.
func NoBatteryReading() BatteryReading {
	return BatteryReading{}
}

// Percent returns the value and whether it is present.
func (r BatteryReading) Percent() (int, bool) {
	return r.percent, r.present
}

// Present reports whether a value was determined.
func (r BatteryReading) Present() bool {
	return r.present
}

func (r BatteryReading) String() string {
	if !r.present {
		return "unknown"
	}
	return fmt.Sprintf("%d%%", r.percent)
}
