package models

// AlertDecision records whether to notify and the values that justified it.
type AlertDecision struct {
	Alert      bool
	Forced     bool
	Reading    BatteryReading
	DeviceName string
	Threshold  int
}
