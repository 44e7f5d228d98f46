package hardware

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	ds18b20Family  = "28-"
	w1SlaveFile    = "w1_slave"
	powerOnReset   = 85000
	millidegrees   = 1000.0
	crcOKSuffix    = "YES"
	temperatureTag = "t="
)

// W1Probe reads a DS18B20 through the kernel w1-therm driver.
type W1Probe struct {
	fs   afero.Fs
	path string
	id   string
}

// NewW1Probe binds to probeID under devicesDir, or to the first DS18B20 found when probeID is empty.
func NewW1Probe(fs afero.Fs, devicesDir, probeID string) (*W1Probe, error) {
	if probeID == "" {
		matches, err := afero.Glob(fs, filepath.Join(devicesDir, ds18b20Family+"*"))
		if err != nil {
			return nil, errors.Wrap(err, "scan w1 devices")
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("no DS18B20 under %s", devicesDir)
		}
		sort.Strings(matches)
		probeID = filepath.Base(matches[0])
	}

	path := filepath.Join(devicesDir, probeID, w1SlaveFile)
	if _, err := fs.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "probe %s", probeID)
	}
	return &W1Probe{fs: fs, path: path, id: probeID}, nil
}

func (p *W1Probe) ID() string {
	return p.id
}

func (p *W1Probe) Read() (float64, error) {
	content, err := afero.ReadFile(p.fs, p.path)
	if err != nil {
		return entities.SensorErrorValue, &entities.SensorError{Probe: p.id, Err: err}
	}
	value, err := parseW1Slave(string(content))
	if err != nil {
		return entities.SensorErrorValue, &entities.SensorError{Probe: p.id, Err: err}
	}
	return value, nil
}

// parseW1Slave decodes the two-line w1_slave format:
//
//	72 01 4b 46 7f ff 0e 10 57 : crc=57 YES
//	72 01 4b 46 7f ff 0e 10 57 t=23125
func parseW1Slave(content string) (float64, error) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) < 2 {
		return 0, errors.New("short read")
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[0]), crcOKSuffix) {
		return 0, errors.New("crc check failed")
	}

	idx := strings.LastIndex(lines[1], temperatureTag)
	if idx < 0 {
		return 0, errors.New("no temperature in reading")
	}
	raw, err := strconv.Atoi(strings.TrimSpace(lines[1][idx+len(temperatureTag):]))
	if err != nil {
		return 0, errors.Wrap(err, "parse temperature")
	}
	if raw == powerOnReset {
		return 0, errors.New("power-on reset value")
	}
	return float64(raw) / millidegrees, nil
}
