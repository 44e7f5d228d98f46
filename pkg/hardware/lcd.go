package hardware

import (
	"time"

	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
	"github.com/pkg/errors"
)

// PCF8574 backpack bits. D4-D7 sit on the high nibble.
const (
	lcdRegisterSelect byte = 0x01
	lcdEnable         byte = 0x04
	lcdBacklight      byte = 0x08

	lcdClear          byte = 0x01
	lcdEntryModeLeft  byte = 0x06
	lcdDisplayOn      byte = 0x0C
	lcdFunctionSet4x2 byte = 0x28
	lcdSetDDRAM       byte = 0x80
)

const lcdClearDelay = 2 * time.Millisecond

var lcdRowOffsets = [LCDRows]byte{0x00, 0x40}

// LCD is a 16x2 HD44780 character display behind a PCF8574 I2C expander.
type LCD struct {
	conn  ByteWriter
	sleep func(time.Duration)
}

func NewLCD(conn ByteWriter) *LCD {
	return &LCD{conn: conn, sleep: time.Sleep}
}

// Init switches the controller to 4-bit mode and clears the screen.
func (l *LCD) Init() error {
	l.sleep(50 * time.Millisecond)
	for i := 0; i < 3; i++ {
		if err := l.write4bits(0x30); err != nil {
			return errors.Wrap(err, "lcd reset")
		}
		l.sleep(5 * time.Millisecond)
	}
	if err := l.write4bits(0x20); err != nil {
		return errors.Wrap(err, "lcd 4-bit mode")
	}

	for _, cmd := range []byte{lcdFunctionSet4x2, lcdDisplayOn, lcdClear, lcdEntryModeLeft} {
		if err := l.command(cmd); err != nil {
			return errors.Wrap(err, "lcd init")
		}
		if cmd == lcdClear {
			// clear takes up to 1.52ms, commands sent before that are dropped
			l.sleep(lcdClearDelay)
		}
	}
	return nil
}

func (l *LCD) Render(status entities.Status) error {
	for row, line := range FormatStatus(status) {
		if err := l.command(lcdSetDDRAM | lcdRowOffsets[row]); err != nil {
			return errors.Wrapf(err, "lcd row %d", row)
		}
		for i := 0; i < len(line); i++ {
			if err := l.send(line[i], lcdRegisterSelect); err != nil {
				return errors.Wrapf(err, "lcd row %d", row)
			}
		}
	}
	return nil
}

func (l *LCD) Close() error {
	return l.conn.Close()
}

func (l *LCD) command(value byte) error {
	return l.send(value, 0)
}

func (l *LCD) send(value, mode byte) error {
	if err := l.write4bits(value&0xF0 | mode); err != nil {
		return err
	}
	return l.write4bits(value<<4 | mode)
}

func (l *LCD) write4bits(value byte) error {
	for _, b := range []byte{value | lcdBacklight, value | lcdEnable | lcdBacklight, value | lcdBacklight} {
		if err := l.conn.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}
