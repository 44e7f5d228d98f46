package entities

import "time"

const (
	TransportAMQP   = "amqp"
	TransportInflux = "influxdb"
	TransportNone   = "none"
)

// MacerationConfig is the whole configuration file. It is loaded once and never mutated.
type MacerationConfig struct {
	Cloud             CloudConfig    `yaml:"cloud"`
	Mixing            MixingConfig   `yaml:"mixing"`
	Maceration        DurationConfig `yaml:"maceration"`
	PollInterval      time.Duration  `yaml:"pollInterval"`
	TelemetryInterval time.Duration  `yaml:"telemetryInterval"`
	Hardware          HardwareConfig `yaml:"hardware"`
	Metrics           MetricsConfig  `yaml:"metrics"`
	Log               LogConfig      `yaml:"log"`
}

type CloudConfig struct {
	Transport      string        `yaml:"transport"`
	URL            string        `yaml:"url"`
	Token          string        `yaml:"token"`
	Device         Device        `yaml:"device"`
	Org            string        `yaml:"org"`
	Bucket         string        `yaml:"bucket"`
	ConnectTimeout time.Duration `yaml:"connectTimeout"`
	PublishTimeout time.Duration `yaml:"publishTimeout"`
}

type MixingConfig struct {
	On  time.Duration `yaml:"on"`
	Off time.Duration `yaml:"off"`
}

type DurationConfig struct {
	Duration time.Duration `yaml:"duration"`
}

type HardwareConfig struct {
	Simulate       bool   `yaml:"simulate"`
	RelayPin       string `yaml:"relayPin"`
	RelayActiveLow bool   `yaml:"relayActiveLow"`
	W1DevicesDir   string `yaml:"w1DevicesDir"`
	ProbeID        string `yaml:"probeId"`
	LCDBus         int    `yaml:"lcdBus"`
	LCDAddress     int    `yaml:"lcdAddress"`
}

type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}
