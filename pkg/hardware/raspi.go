package hardware

import (
	"gobot.io/x/gobot/v2/platforms/raspi"
)

type raspiBoard struct {
	*raspi.Adaptor
}

// NewRaspiBoard returns the Raspberry Pi GPIO/I2C adaptor. Pins are physical header numbers.
func NewRaspiBoard() Board {
	return raspiBoard{Adaptor: raspi.NewAdaptor()}
}

func (b raspiBoard) I2cWriter(bus, address int) (ByteWriter, error) {
	conn, err := b.GetI2cConnection(address, bus)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
