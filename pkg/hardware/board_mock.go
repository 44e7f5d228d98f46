package hardware

import "github.com/stretchr/testify/mock"

type BoardMock struct {
	mock.Mock
}

func (b *BoardMock) Connect() error {
	args := b.Called()
	return args.Error(0)
}

func (b *BoardMock) Finalize() error {
	args := b.Called()
	return args.Error(0)
}

func (b *BoardMock) DigitalWrite(pin string, level byte) error {
	args := b.Called(pin, level)
	return args.Error(0)
}

func (b *BoardMock) I2cWriter(bus, address int) (ByteWriter, error) {
	args := b.Called(bus, address)
	writer, _ := args.Get(0).(ByteWriter)
	return writer, args.Error(1)
}

// ByteRecorder is an I2C connection that keeps every written byte.
type ByteRecorder struct {
	Bytes  []byte
	Closed bool
	Err    error
}

func (r *ByteRecorder) WriteByte(value byte) error {
	if r.Err != nil {
		return r.Err
	}
	r.Bytes = append(r.Bytes, value)
	return nil
}

func (r *ByteRecorder) Close() error {
	r.Closed = true
	return nil
}
