package hardware

import (
	"github.com/pkg/errors"
	"gobot.io/x/gobot/v2/drivers/gpio"
)

// Relay switches the mixer through a gobot relay driver on one GPIO pin.
type Relay struct {
	driver *gpio.RelayDriver
	// the driver's State is only meaningful after the first write
	written bool
}

func NewRelay(writer DigitalWriter, pin string, activeLow bool) *Relay {
	driver := gpio.NewRelayDriver(writer, pin)
	driver.Inverted = activeLow
	return &Relay{driver: driver}
}

func (r *Relay) SetMixing(on bool) error {
	if r.written && r.driver.State() == on {
		return nil
	}

	var err error
	if on {
		err = r.driver.On()
	} else {
		err = r.driver.Off()
	}
	if err != nil {
		return errors.Wrapf(err, "relay pin %s", r.driver.Pin())
	}
	r.written = true
	return nil
}

func (r *Relay) Mixing() bool {
	return r.written && r.driver.State()
}
