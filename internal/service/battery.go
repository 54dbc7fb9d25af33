package service

import (
	"fmt"
	"strings"

	"doorbell_monitor/internal/logger"
	"doorbell_monitor/internal/models"

	"github.com/spf13/cast"
)

// Li-ion cell range used when the voltage field carries a real voltage.
const (
	minCellVoltage = 2.5
	maxCellVoltage = 4.2
	// Values above this in the voltage field are already percentages.
	voltageIsPercentAbove = 10
)

// dumpBatteryKeys are looked up, in order, in a full attribute dump.
var dumpBatteryKeys = []string{
	"battery",
	"battery_level",
	"battery_percentage",
	"power_level",
	"electricity",
}

// TelemetrySource is the minimum a device must offer to be probed.
type TelemetrySource interface {
	Field(name string) (any, bool)
}

// Optional capabilities probed by the later strategies.
type (
	attributeDumper interface {
		Dump() (map[string]any, error)
	}
	nonNullAttributer interface {
		NonNullAttributes() (map[string]any, error)
	}
	valuer interface {
		Value() any
	}
)

// batteryProbe returns a raw percentage, whether it found one, and a fatal
// error.
type batteryProbe func(src TelemetrySource) (int, bool, error)

type batteryStrategy struct {
	name  string
	probe batteryProbe
}

// batteryStrategies run in order; the first hit wins. The last two swallow
// their errors because vendor attribute dumps drift between firmware
// versions.
var batteryStrategies = []batteryStrategy{
	{name: "battery", probe: probeBatteryField},
	{name: "battery_level", probe: probeBatteryLevel},
	{name: "voltage", probe: probeVoltage},
	{name: "attribute dump", probe: tolerant(probeAttributeDump)},
	{name: "non-null attributes", probe: tolerant(probeNonNullAttributes)},
}

// BatteryService extracts a battery percentage from a device.
type BatteryService struct {
	log *logger.Logger
}

func NewBatteryService(log *logger.Logger) *BatteryService {
	return &BatteryService{log: log}
}

// ExtractBattery runs the strategy chain against src. An absent reading
// with a nil error means every strategy came up empty.
func (s *BatteryService) ExtractBattery(src TelemetrySource) (models.BatteryReading, error) {
	reading, source, err := ExtractBattery(src)
	if err != nil {
		return reading, err
	}
	if reading.Present() {
		s.log.Debugw("battery level extracted", "source", source, "reading", reading.String())
	}
	return reading, nil
}

// ExtractBattery returns the reading and the name of the strategy that
// produced it.
func ExtractBattery(src TelemetrySource) (models.BatteryReading, string, error) {
	for _, st := range batteryStrategies {
		p, ok, err := st.probe(src)
		if err != nil {
			return models.NoBatteryReading(), st.name, fmt.Errorf("read %s: %w", st.name, err)
		}
		if ok {
			return models.NewBatteryReading(p), st.name, nil
		}
	}
	return models.NoBatteryReading(), "", nil
}

// probeBatteryField reads a numeric battery field, or the inner value of a
// value object. Any other shape falls through to the next strategy.
func probeBatteryField(src TelemetrySource) (int, bool, error) {
	v, ok := src.Field("battery")
	if !ok || v == nil {
		return 0, false, nil
	}
	if f, ok := asNumber(v); ok {
		return int(f), true, nil
	}

	var inner any
	switch b := v.(type) {
	case valuer:
		inner = b.Value()
	case map[string]any:
		val, has := b["value"]
		if !has {
			return 0, false, nil
		}
		inner = val
	default:
		return 0, false, nil
	}
	p, err := models.ToInt(inner)
	if err != nil {
		return 0, false, err
	}
	return p, true, nil
}

func probeBatteryLevel(src TelemetrySource) (int, bool, error) {
	v, ok := src.Field("battery_level")
	if !ok || v == nil {
		return 0, false, nil
	}
	p, err := models.ToInt(v)
	if err != nil {
		return 0, false, err
	}
	return p, true, nil
}

// probeVoltage handles a field that carries either a cell voltage or, on
// some firmware, a percentage.
func probeVoltage(src TelemetrySource) (int, bool, error) {
	v, ok := src.Field("voltage")
	if !ok || v == nil {
		return 0, false, nil
	}

	var volts float64
	if s, isString := v.(string); isString {
		n, err := models.ToInt(s)
		if err != nil {
			return 0, false, err
		}
		volts = float64(n)
	} else {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return 0, false, err
		}
		volts = f
	}

	if volts > voltageIsPercentAbove {
		return int(volts), true, nil
	}
	return VoltageToPercent(volts), true, nil
}

func probeAttributeDump(src TelemetrySource) (int, bool, error) {
	d, ok := src.(attributeDumper)
	if !ok {
		return 0, false, nil
	}
	data, err := d.Dump()
	if err != nil {
		return 0, false, err
	}
	for _, key := range dumpBatteryKeys {
		v, has := data[key]
		if !has || v == nil {
			continue
		}
		p, err := models.ToInt(v)
		if err != nil {
			return 0, false, err
		}
		return p, true, nil
	}
	return 0, false, nil
}

// probeNonNullAttributes scans keys in sorted order so the result does not
// depend on map iteration.
func probeNonNullAttributes(src TelemetrySource) (int, bool, error) {
	a, ok := src.(nonNullAttributer)
	if !ok {
		return 0, false, nil
	}
	attrs, err := a.NonNullAttributes()
	if err != nil {
		return 0, false, err
	}
	for _, key := range models.SortedKeys(attrs) {
		k := strings.ToLower(key)
		if !strings.Contains(k, "battery") && !strings.Contains(k, "power") {
			continue
		}
		if f, ok := asNumber(attrs[key]); ok {
			return int(f), true, nil
		}
	}
	return 0, false, nil
}

// tolerant turns any error from probe into "nothing found".
func tolerant(probe batteryProbe) batteryProbe {
	return func(src TelemetrySource) (int, bool, error) {
		p, ok, err := probe(src)
		if err != nil {
			return 0, false, nil
		}
		return p, ok, nil
	}
}

// VoltageToPercent maps a Li-ion cell voltage linearly onto 0-100,
// truncating toward zero.
func VoltageToPercent(volts float64) int {
	if volts <= minCellVoltage {
		return 0
	}
	if volts >= maxCellVoltage {
		return 100
	}
	return int((volts - minCellVoltage) / (maxCellVoltage - minCellVoltage) * 100)
}

// asNumber accepts Go's integer and float kinds. Strings and bools are not
// numbers here.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
