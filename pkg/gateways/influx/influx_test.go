package influx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	points []*write.Point
	err    error
}

func (w *recordingWriter) WritePoint(ctx context.Context, point ...*write.Point) error {
	if w.err != nil {
		return w.err
	}
	w.points = append(w.points, point...)
	return nil
}

func newTestReporter(writer pointWriter) *Reporter {
	logger, _ := test.NewNullLogger()
	return &Reporter{
		writer:         writer,
		device:         entities.Device{ID: "tank-1"},
		runID:          "run-1",
		publishTimeout: time.Second,
		log:            logrus.NewEntry(logger),
	}
}

func TestSend(t *testing.T) {
	writer := &recordingWriter{}
	at := time.Date(2023, 9, 10, 9, 8, 0, 0, time.UTC)

	err := newTestReporter(writer).Send(context.Background(), entities.TelemetrySample{SensorID: 1, Temperature: 23.5, Timestamp: at})
	require.NoError(t, err)
	require.Len(t, writer.points, 1)

	point := writer.points[0]
	assert.Equal(t, measurement, point.Name())
	assert.Equal(t, at, point.Time())
	tags := map[string]string{}
	for _, tag := range point.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, map[string]string{"device_id": "tank-1", "run_id": "run-1"}, tags)
	fields := map[string]interface{}{}
	for _, field := range point.FieldList() {
		fields[field.Key] = field.Value
	}
	assert.Equal(t, 23.5, fields["temperature"])
}

func TestSendWhenWriteFailsThenCloudError(t *testing.T) {
	writer := &recordingWriter{err: errors.New("401 unauthorized")}

	err := newTestReporter(writer).Send(context.Background(), entities.TelemetrySample{Temperature: 20, Timestamp: time.Now()})
	var cloudErr *entities.CloudError
	require.True(t, errors.As(err, &cloudErr))
	assert.Equal(t, entities.TransportInflux, cloudErr.Transport)
}

func TestNewReporterAndClose(t *testing.T) {
	logger, _ := test.NewNullLogger()
	reporter := NewReporter(entities.CloudConfig{
		URL:    "http://127.0.0.1:8086",
		Token:  "token",
		Org:    "winery",
		Bucket: "maceration",
	}, "run-1", logrus.NewEntry(logger))
	assert.NotNil(t, reporter.writer)
	assert.NoError(t, reporter.Close())
}
