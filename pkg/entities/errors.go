package entities

import "fmt"

// ConfigurationError is fatal: the process stops before touching hardware.
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("configuration: %v", e.Err)
	}
	return fmt.Sprintf("configuration %q: %v", e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// HardwareInitError is fatal: a device could not be opened at startup.
type HardwareInitError struct {
	Device string
	Err    error
}

func (e *HardwareInitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Device, e.Err)
}

func (e *HardwareInitError) Unwrap() error { return e.Err }

// SensorError is transient; the loop keeps the last reading.
type SensorError struct {
	Probe string
	Err   error
}

func (e *SensorError) Error() string {
	return fmt.Sprintf("sensor %s: %v", e.Probe, e.Err)
}

func (e *SensorError) Unwrap() error { return e.Err }

// CloudError is transient; the sample is dropped.
type CloudError struct {
	Transport string
	Err       error
}

func (e *CloudError) Error() string {
	return fmt.Sprintf("cloud %s: %v", e.Transport, e.Err)
}

func (e *CloudError) Unwrap() error { return e.Err }
