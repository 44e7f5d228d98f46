package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/gateways/influx"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/gateways/knot"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/hardware"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/logging"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/maceration"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/metrics"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	exitCompleted     = 0
	exitConfiguration = 1
	exitHardware      = 2
	exitInterrupted   = 130
)

type deviceOpener func(conf entities.HardwareConfig, log *logrus.Entry) (*hardware.Devices, error)

func openDevices(conf entities.HardwareConfig, log *logrus.Entry) (*hardware.Devices, error) {
	if conf.Simulate {
		log.Warnln("running on simulated hardware")
		return hardware.OpenSimulated(conf, log), nil
	}
	return hardware.Open(conf, afero.NewOsFs(), hardware.NewRaspiBoard(), log)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr, openDevices)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer, open deviceOpener) int {
	flags := flag.NewFlagSet("macerator", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "configs/macerator.yaml", "configuration file")
	envPath := flags.String("env", ".env", "optional .env file with the cloud credential")
	simulate := flags.Bool("simulate", false, "run without the Raspberry Pi hardware")
	if err := flags.Parse(args); err != nil {
		return exitConfiguration
	}

	conf, err := utils.LoadConfiguration(*configPath, *envPath)
	if err != nil {
		fmt.Fprintf(stderr, "macerator: %v\n", err)
		return exitConfiguration
	}
	if *simulate {
		conf.Hardware.Simulate = true
	}

	runID := uuid.NewString()
	logs := logging.NewLogrus(conf.Log.Level, stderr).WithRunID(runID)
	log := logs.Get("Main")

	devices, err := open(conf.Hardware, logs.Get("Hardware"))
	if err != nil {
		log.Errorln(err)
		return exitHardware
	}
	defer func() {
		if err := devices.Close(); err != nil {
			log.Warnf("hardware close: %v", err)
		}
	}()

	collector := metrics.NewCollector()
	if conf.Metrics.Listen != "" {
		srv := collector.Serve(conf.Metrics.Listen, logs.Get("Metrics"))
		defer srv.Close()
	}

	reporter, err := newReporter(conf.Cloud, runID, logs)
	if err != nil {
		log.Errorln(err)
		return exitConfiguration
	}

	controller := maceration.NewController(devices, reporter, collector, maceration.SystemClock(), maceration.OptionsFromConfig(conf), logs.Get("Maceration"))
	err = controller.Run(ctx)
	switch {
	case err == nil:
		return exitCompleted
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		log.Errorln(err)
		return exitInterrupted
	}
}

// newReporter returns a nil reporter when telemetry is disabled.
func newReporter(conf entities.CloudConfig, runID string, logs *logging.Logrus) (maceration.CloudReporter, error) {
	switch conf.Transport {
	case entities.TransportAMQP:
		integration, err := knot.NewKNoTIntegration(conf, logs.Get("KNoT"))
		if err != nil {
			return nil, &entities.ConfigurationError{Key: "cloud", Err: err}
		}
		return integration, nil
	case entities.TransportInflux:
		return influx.NewReporter(conf, runID, logs.Get("InfluxDB")), nil
	default:
		logs.Get("Main").Infoln("telemetry disabled")
		return nil, nil
	}
}
