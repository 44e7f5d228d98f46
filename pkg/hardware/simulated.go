package hardware

import (
	"math"

	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
	"github.com/sirupsen/logrus"
)

const (
	simulatedBaseTemperature = 24.0
	simulatedSwing           = 1.5
	simulatedPeriod          = 60.0
)

// SimulatedProbe produces a slow temperature wave around 24 °C.
type SimulatedProbe struct {
	reads int
}

func (p *SimulatedProbe) Read() (float64, error) {
	p.reads++
	phase := 2 * math.Pi * float64(p.reads) / simulatedPeriod
	return math.Round((simulatedBaseTemperature+simulatedSwing*math.Sin(phase))*10) / 10, nil
}

// SimulatedBoard keeps pin levels in memory and logs every change.
type SimulatedBoard struct {
	log  *logrus.Entry
	pins map[string]byte
}

func NewSimulatedBoard(log *logrus.Entry) *SimulatedBoard {
	return &SimulatedBoard{log: log, pins: map[string]byte{}}
}

func (b *SimulatedBoard) DigitalWrite(pin string, level byte) error {
	b.pins[pin] = level
	b.log.Debugf("pin %s <- %d", pin, level)
	return nil
}

func (b *SimulatedBoard) Level(pin string) byte {
	return b.pins[pin]
}

// LogDisplay writes the two display lines to the log whenever they change.
type LogDisplay struct {
	log  *logrus.Entry
	last [LCDRows]string
}

func NewLogDisplay(log *logrus.Entry) *LogDisplay {
	return &LogDisplay{log: log}
}

func (d *LogDisplay) Render(status entities.Status) error {
	lines := FormatStatus(status)
	if lines == d.last {
		return nil
	}
	d.last = lines
	d.log.Infof("[%s] [%s]", lines[0], lines[1])
	return nil
}

// OpenSimulated returns devices that need no hardware.
func OpenSimulated(conf entities.HardwareConfig, log *logrus.Entry) *Devices {
	board := NewSimulatedBoard(log)
	relay := NewRelay(board, conf.RelayPin, conf.RelayActiveLow)
	_ = relay.SetMixing(false)
	return &Devices{
		Probe:   &SimulatedProbe{},
		Relay:   relay,
		Display: NewLogDisplay(log),
	}
}
