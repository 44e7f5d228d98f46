// Package hardware holds the tank's devices behind three capability interfaces so the
// controller runs the same against the Raspberry Pi and against simulated parts.
package hardware

import (
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// TemperatureSource reads the wine temperature in °C. On a fault it returns
// entities.SensorErrorValue and a *entities.SensorError.
type TemperatureSource interface {
	Read() (float64, error)
}

// RelayActuator drives the mixer motor. Setting the current state again is a no-op.
type RelayActuator interface {
	SetMixing(on bool) error
}

// StatusDisplay overwrites the display with the given status.
type StatusDisplay interface {
	Render(status entities.Status) error
}

// DigitalWriter sets a GPIO pin level.
type DigitalWriter interface {
	DigitalWrite(pin string, level byte) error
}

// ByteWriter is a single-address I2C connection.
type ByteWriter interface {
	WriteByte(value byte) error
	Close() error
}

// Board is the controller board the relay and the display are wired to.
type Board interface {
	DigitalWriter
	Connect() error
	Finalize() error
	I2cWriter(bus, address int) (ByteWriter, error)
}

// Devices groups the opened hardware.
type Devices struct {
	Probe   TemperatureSource
	Relay   RelayActuator
	Display StatusDisplay
	close   func() error
}

// Close releases the board. The relay must already be off.
func (d *Devices) Close() error {
	if d.close == nil {
		return nil
	}
	return d.close()
}

// Open connects the board, finds the probe and initialises the relay (off) and the LCD.
// Every failure is a *entities.HardwareInitError.
func Open(conf entities.HardwareConfig, fs afero.Fs, board Board, log *logrus.Entry) (*Devices, error) {
	if err := board.Connect(); err != nil {
		return nil, &entities.HardwareInitError{Device: "board", Err: err}
	}
	devices := &Devices{close: board.Finalize}

	probe, err := NewW1Probe(fs, conf.W1DevicesDir, conf.ProbeID)
	if err != nil {
		_ = board.Finalize()
		return nil, &entities.HardwareInitError{Device: "ds18b20", Err: err}
	}
	devices.Probe = probe
	log.Infof("temperature probe %s", probe.ID())

	relay := NewRelay(board, conf.RelayPin, conf.RelayActiveLow)
	if err := relay.SetMixing(false); err != nil {
		_ = board.Finalize()
		return nil, &entities.HardwareInitError{Device: "relay", Err: err}
	}
	devices.Relay = relay

	conn, err := board.I2cWriter(conf.LCDBus, conf.LCDAddress)
	if err != nil {
		_ = board.Finalize()
		return nil, &entities.HardwareInitError{Device: "lcd", Err: err}
	}
	lcd := NewLCD(conn)
	if err := lcd.Init(); err != nil {
		_ = board.Finalize()
		return nil, &entities.HardwareInitError{Device: "lcd", Err: err}
	}
	devices.Display = lcd
	devices.close = func() error {
		_ = lcd.Close()
		return board.Finalize()
	}

	return devices, nil
}
