// Package metrics exposes the controller state to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Collector struct {
	registry        *prometheus.Registry
	temperature     prometheus.Gauge
	mixing          prometheus.Gauge
	remaining       prometheus.Gauge
	sensorErrors    prometheus.Counter
	telemetrySent   prometheus.Counter
	telemetryFailed prometheus.Counter
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Collector{
		registry: registry,
		temperature: factory.NewGauge(prometheus.GaugeOpts{
			Name: "maceration_temperature_celsius",
			Help: "Last good wine temperature reading",
		}),
		mixing: factory.NewGauge(prometheus.GaugeOpts{
			Name: "maceration_mixing",
			Help: "1 while the mixer relay is on",
		}),
		remaining: factory.NewGauge(prometheus.GaugeOpts{
			Name: "maceration_remaining_seconds",
			Help: "Time left until the maceration completes",
		}),
		sensorErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "maceration_sensor_errors_total",
			Help: "Failed temperature reads",
		}),
		telemetrySent: factory.NewCounter(prometheus.CounterOpts{
			Name: "maceration_telemetry_sent_total",
			Help: "Samples accepted by the cloud",
		}),
		telemetryFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "maceration_telemetry_failed_total",
			Help: "Samples dropped after a failed send",
		}),
	}
}

func (c *Collector) ObserveTemperature(celsius float64) {
	c.temperature.Set(celsius)
}

func (c *Collector) SetMixing(on bool) {
	if on {
		c.mixing.Set(1)
		return
	}
	c.mixing.Set(0)
}

func (c *Collector) SetRemaining(d time.Duration) {
	c.remaining.Set(d.Seconds())
}

func (c *Collector) SensorError() {
	c.sensorErrors.Inc()
}

func (c *Collector) TelemetrySent() {
	c.telemetrySent.Inc()
}

func (c *Collector) TelemetryFailed() {
	c.telemetryFailed.Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr in the background. The returned server is closed by the caller.
func (c *Collector) Serve(addr string, log *logrus.Entry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("metrics server: %v", err)
		}
	}()
	log.Infof("metrics on %s/metrics", addr)
	return srv
}
