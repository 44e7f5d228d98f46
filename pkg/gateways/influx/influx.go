// Package influx reports telemetry samples to an InfluxDB v2 bucket.
package influx

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
	"github.com/sirupsen/logrus"
)

const measurement = "maceration"

type pointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// Reporter writes one point per sample with a blocking write, no batching and no retry.
type Reporter struct {
	client         influxdb2.Client
	writer         pointWriter
	device         entities.Device
	runID          string
	publishTimeout time.Duration
	log            *logrus.Entry
}

func NewReporter(conf entities.CloudConfig, runID string, log *logrus.Entry) *Reporter {
	client := influxdb2.NewClient(conf.URL, conf.Token)
	return &Reporter{
		client:         client,
		writer:         client.WriteAPIBlocking(conf.Org, conf.Bucket),
		device:         conf.Device,
		runID:          runID,
		publishTimeout: conf.PublishTimeout,
		log:            log,
	}
}

func (r *Reporter) Send(ctx context.Context, sample entities.TelemetrySample) error {
	if r.publishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.publishTimeout)
		defer cancel()
	}

	point := influxdb2.NewPointWithMeasurement(measurement).
		AddTag("device_id", r.device.ID).
		AddTag("run_id", r.runID).
		AddField("temperature", sample.Temperature).
		AddField("sensor_id", sample.SensorID).
		SetTime(sample.Timestamp)

	if err := r.writer.WritePoint(ctx, point); err != nil {
		return &entities.CloudError{Transport: entities.TransportInflux, Err: err}
	}
	r.log.Debugf("wrote %.2f at %s", sample.Temperature, sample.Timestamp.UTC().Format(time.RFC3339))
	return nil
}

func (r *Reporter) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
