package entities

import (
	"strconv"
	"time"
)

// SensorErrorValue is what a TemperatureSource returns alongside a SensorError.
const SensorErrorValue float64 = -127.0

// CloudStatus is the short cloud indicator shown on the display.
type CloudStatus string

const (
	CloudUnknown  CloudStatus = "--"
	CloudOK       CloudStatus = "OK"
	CloudFailed   CloudStatus = "ERR"
	CloudDisabled CloudStatus = "OFF"
)

// TelemetrySample is one temperature reading sent to the cloud.
type TelemetrySample struct {
	SensorID    int
	Temperature float64
	Timestamp   time.Time
}

// Key identifies a sample for duplicate suppression.
func (s TelemetrySample) Key() string {
	return s.Timestamp.UTC().Format(time.RFC3339Nano) + "_" + strconv.Itoa(s.SensorID)
}

// Status is everything a StatusDisplay renders on one refresh.
type Status struct {
	Temperature   float64
	HasReading    bool
	SensorFault   bool
	DaysRemaining int
	CloudStatus   CloudStatus
	Mixing        bool
	NextToggle    time.Duration
	Completed     bool
	Interrupted   bool
}
