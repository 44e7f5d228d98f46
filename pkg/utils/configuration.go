package utils

import (
	"os"
	"time"

	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	CloudTokenVariable = "MACERATOR_CLOUD_TOKEN"

	defaultConnectTimeout = 30 * time.Second
	defaultPublishTimeout = 5 * time.Second
	defaultRelayPin       = "37"
	defaultW1DevicesDir   = "/sys/bus/w1/devices"
	defaultLCDBus         = 1
	defaultLCDAddress     = 0x27
	defaultLogLevel       = "info"
)

var errMissing = errors.New("required key is missing")

// LoadConfiguration reads the configuration file, applies the .env file and environment
// overrides, fills defaults and validates the result. Every failure is a *entities.ConfigurationError.
func LoadConfiguration(configPath, envPath string) (entities.MacerationConfig, error) {
	conf, err := ConfigurationParser(configPath, entities.MacerationConfig{})
	if err != nil {
		return conf, &entities.ConfigurationError{Err: errors.Wrapf(err, "parse %s", configPath)}
	}

	if err := loadEnvFile(envPath); err != nil {
		return conf, &entities.ConfigurationError{Err: errors.Wrapf(err, "load %s", envPath)}
	}
	conf.Cloud.Token = getValueFromEnvironmentVariable(CloudTokenVariable, conf.Cloud.Token)

	applyDefaults(&conf)
	return conf, Validate(conf)
}

func loadEnvFile(envPath string) error {
	if envPath == "" {
		return nil
	}
	err := godotenv.Load(envPath)
	if err != nil && os.IsNotExist(errors.Cause(err)) {
		return nil
	}
	return err
}

func getValueFromEnvironmentVariable(variableName, defaultValue string) string {
	value := os.Getenv(variableName)
	if value != "" {
		return value
	}
	return defaultValue
}

func applyDefaults(conf *entities.MacerationConfig) {
	if conf.Cloud.Transport == "" {
		conf.Cloud.Transport = entities.TransportAMQP
	}
	if conf.Cloud.ConnectTimeout == 0 {
		conf.Cloud.ConnectTimeout = defaultConnectTimeout
	}
	if conf.Cloud.PublishTimeout == 0 {
		conf.Cloud.PublishTimeout = defaultPublishTimeout
	}
	if conf.TelemetryInterval == 0 {
		conf.TelemetryInterval = conf.PollInterval
	}
	if conf.Hardware.RelayPin == "" {
		conf.Hardware.RelayPin = defaultRelayPin
	}
	if conf.Hardware.W1DevicesDir == "" {
		conf.Hardware.W1DevicesDir = defaultW1DevicesDir
	}
	if conf.Hardware.LCDBus == 0 {
		conf.Hardware.LCDBus = defaultLCDBus
	}
	if conf.Hardware.LCDAddress == 0 {
		conf.Hardware.LCDAddress = defaultLCDAddress
	}
	if conf.Log.Level == "" {
		conf.Log.Level = defaultLogLevel
	}
}

// Validate checks the keys the controller cannot run without.
func Validate(conf entities.MacerationConfig) error {
	durations := []struct {
		key   string
		value time.Duration
	}{
		{"mixing.on", conf.Mixing.On},
		{"mixing.off", conf.Mixing.Off},
		{"maceration.duration", conf.Maceration.Duration},
		{"pollInterval", conf.PollInterval},
		{"telemetryInterval", conf.TelemetryInterval},
	}
	for _, d := range durations {
		if d.value == 0 {
			return &entities.ConfigurationError{Key: d.key, Err: errMissing}
		}
		if d.value < 0 {
			return &entities.ConfigurationError{Key: d.key, Err: errors.Errorf("must be positive, got %s", d.value)}
		}
	}

	return validateCloud(conf.Cloud)
}

func validateCloud(cloud entities.CloudConfig) error {
	var required map[string]string
	switch cloud.Transport {
	case entities.TransportNone:
		return nil
	case entities.TransportAMQP:
		required = map[string]string{
			"cloud.url":       cloud.URL,
			"cloud.token":     cloud.Token,
			"cloud.device.id": cloud.Device.ID,
		}
	case entities.TransportInflux:
		required = map[string]string{
			"cloud.url":    cloud.URL,
			"cloud.token":  cloud.Token,
			"cloud.org":    cloud.Org,
			"cloud.bucket": cloud.Bucket,
		}
	default:
		return &entities.ConfigurationError{Key: "cloud.transport", Err: errors.Errorf("unknown transport %q", cloud.Transport)}
	}

	for _, key := range []string{"cloud.url", "cloud.token", "cloud.device.id", "cloud.org", "cloud.bucket"} {
		if value, ok := required[key]; ok && value == "" {
			return &entities.ConfigurationError{Key: key, Err: errMissing}
		}
	}
	return nil
}
