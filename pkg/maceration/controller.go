// Package maceration runs the maceration: one loop that reads the probe, drives the mixer on
// its duty cycle, refreshes the display and hands samples to the cloud until the duration
// elapses.
package maceration

import (
	"context"
	"time"

	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/hardware"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/metrics"
	"github.com/sirupsen/logrus"
)

type Phase string

const (
	Running Phase = "RUNNING"
	Stopped Phase = "STOPPED"
)

// CloudReporter sends one sample, fire and forget.
type CloudReporter interface {
	Send(ctx context.Context, sample entities.TelemetrySample) error
	Close() error
}

type Options struct {
	Cycle             MixCycle
	Total             time.Duration
	PollInterval      time.Duration
	TelemetryInterval time.Duration
	SensorID          int
}

// OptionsFromConfig maps the configuration file onto loop options.
func OptionsFromConfig(conf entities.MacerationConfig) Options {
	return Options{
		Cycle:             MixCycle{On: conf.Mixing.On, Off: conf.Mixing.Off},
		Total:             conf.Maceration.Duration,
		PollInterval:      conf.PollInterval,
		TelemetryInterval: conf.TelemetryInterval,
		SensorID:          conf.Cloud.Device.SensorID,
	}
}

// LoopState is all the mutable state of a run.
type LoopState struct {
	Phase         Phase
	Temperature   float64
	HasReading    bool
	SensorFault   bool
	Mixing        bool
	Cloud         entities.CloudStatus
	Polls         int
	NextPoll      time.Time
	NextTelemetry time.Time
}

type Controller struct {
	probe    hardware.TemperatureSource
	relay    hardware.RelayActuator
	display  hardware.StatusDisplay
	reporter CloudReporter
	metrics  *metrics.Collector
	clock    Clock
	opts     Options
	log      *logrus.Entry

	timer MacerationTimer
	state LoopState
}

// NewController wires the loop. reporter may be nil when telemetry is disabled.
func NewController(devices *hardware.Devices, reporter CloudReporter, collector *metrics.Collector, clock Clock, opts Options, log *logrus.Entry) *Controller {
	cloud := entities.CloudUnknown
	if reporter == nil {
		cloud = entities.CloudDisabled
	}
	return &Controller{
		probe:    devices.Probe,
		relay:    devices.Relay,
		display:  devices.Display,
		reporter: reporter,
		metrics:  collector,
		clock:    clock,
		opts:     opts,
		log:      log,
		state:    LoopState{Phase: Stopped, Cloud: cloud},
	}
}

func (c *Controller) State() LoopState {
	return c.state
}

// Run blocks until the maceration completes (nil) or ctx is cancelled (ctx.Err()).
// Either way the relay is switched off and the final screen rendered before it returns.
func (c *Controller) Run(ctx context.Context) error {
	start := c.clock.Now()
	c.timer = NewMacerationTimer(start, c.opts.Total)
	c.state.Phase = Running
	c.state.NextPoll = start
	c.state.NextTelemetry = start
	c.log.Infof("maceration started, %s total, mixing %s every %s", c.opts.Total, c.opts.Cycle.On, c.opts.Cycle.Period())

	completed := false
	defer func() {
		c.stop(completed)
	}()

	for {
		now := c.clock.Now()
		if c.timer.Expired(now) {
			completed = true
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		c.step(ctx, now)

		// step may block on the probe or the cloud, so sleep towards the absolute wake-up
		delay := c.nextWake(now).Sub(c.clock.Now())
		if delay < 0 {
			delay = 0
		}
		if err := c.clock.Sleep(ctx, delay); err != nil {
			return err
		}
	}
}

func (c *Controller) step(ctx context.Context, now time.Time) {
	elapsed := c.timer.Elapsed(now)
	c.driveRelay(elapsed)

	poll := !now.Before(c.state.NextPoll)
	if poll {
		c.state.NextPoll = advance(c.state.NextPoll, c.opts.PollInterval, now)
		c.readSensor()
	}

	c.render(now, elapsed)

	if poll && !now.Before(c.state.NextTelemetry) {
		c.state.NextTelemetry = advance(c.state.NextTelemetry, c.opts.TelemetryInterval, now)
		c.report(ctx, now)
	}

	if c.metrics != nil {
		c.metrics.SetRemaining(c.timer.Remaining(now))
	}
}

func (c *Controller) driveRelay(elapsed time.Duration) {
	mixing := c.opts.Cycle.Mixing(elapsed)
	if err := c.relay.SetMixing(mixing); err != nil {
		c.log.Errorf("relay: %v", err)
		return
	}
	if mixing != c.state.Mixing {
		c.log.Infof("mixing %t", mixing)
	}
	c.state.Mixing = mixing
	if c.metrics != nil {
		c.metrics.SetMixing(mixing)
	}
}

func (c *Controller) readSensor() {
	c.state.Polls++
	value, err := c.probe.Read()
	if err != nil {
		c.state.SensorFault = true
		c.log.Warnln(err)
		if c.metrics != nil {
			c.metrics.SensorError()
		}
		return
	}

	c.state.Temperature = value
	c.state.HasReading = true
	c.state.SensorFault = false
	if c.metrics != nil {
		c.metrics.ObserveTemperature(value)
	}
}

func (c *Controller) render(now time.Time, elapsed time.Duration) {
	status := entities.Status{
		Temperature:   c.state.Temperature,
		HasReading:    c.state.HasReading,
		SensorFault:   c.state.SensorFault,
		DaysRemaining: c.timer.DaysRemaining(now),
		CloudStatus:   c.state.Cloud,
		Mixing:        c.state.Mixing,
		NextToggle:    c.opts.Cycle.UntilToggle(elapsed),
	}
	if err := c.display.Render(status); err != nil {
		c.log.Warnf("display: %v", err)
	}
}

// report sends the fresh reading of this poll, if there is one. There is no second attempt.
func (c *Controller) report(ctx context.Context, now time.Time) {
	if c.reporter == nil {
		return
	}
	if c.state.SensorFault || !c.state.HasReading {
		c.log.Debugln("no fresh reading, telemetry skipped")
		return
	}

	sample := entities.TelemetrySample{
		SensorID:    c.opts.SensorID,
		Temperature: c.state.Temperature,
		Timestamp:   now,
	}
	if err := c.reporter.Send(ctx, sample); err != nil {
		c.state.Cloud = entities.CloudFailed
		c.log.Warnf("telemetry dropped: %v", err)
		if c.metrics != nil {
			c.metrics.TelemetryFailed()
		}
		return
	}
	c.state.Cloud = entities.CloudOK
	if c.metrics != nil {
		c.metrics.TelemetrySent()
	}
}

func (c *Controller) nextWake(now time.Time) time.Time {
	wake := c.timer.Deadline()
	if c.state.NextPoll.Before(wake) {
		wake = c.state.NextPoll
	}
	toggle := now.Add(c.opts.Cycle.UntilToggle(c.timer.Elapsed(now)))
	if toggle.Before(wake) {
		wake = toggle
	}
	return wake
}

func (c *Controller) stop(completed bool) {
	c.state.Phase = Stopped

	if err := c.relay.SetMixing(false); err != nil {
		c.log.Errorf("relay off: %v", err)
	} else {
		c.state.Mixing = false
	}
	if c.metrics != nil {
		c.metrics.SetMixing(false)
	}

	final := entities.Status{Completed: completed, Interrupted: !completed}
	if err := c.display.Render(final); err != nil {
		c.log.Warnf("display: %v", err)
	}

	if c.reporter != nil {
		if err := c.reporter.Close(); err != nil {
			c.log.Warnf("cloud close: %v", err)
		}
	}

	if completed {
		c.log.Infoln("maceration completed")
	} else {
		c.log.Infoln("maceration interrupted")
	}
}

// advance moves a schedule forward by whole intervals until it is after now.
func advance(next time.Time, interval time.Duration, now time.Time) time.Time {
	for !next.After(now) {
		next = next.Add(interval)
	}
	return next
}
