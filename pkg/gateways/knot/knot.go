package knot

import (
	"context"
	"os"
	"strconv"
	"time"

	bloomFilter "github.com/bits-and-blooms/bloom/v3"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/gateways/knot/network"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	FILTER_CAPACITY               = "100000"
	DUPLICATION_PROBABILITY       = "0.01"
	RESET_FILTER_USAGE_PERCENTAGE = "0.75"
)

var ErrDuplicatedSample = errors.New("sample already handed to the cloud")

// Integration publishes telemetry samples to the KNoT cloud, each sample at most once.
type Integration struct {
	amqp                         network.Messaging
	publisher                    network.Publisher
	device                       entities.Device
	userToken                    string
	publishTimeout               time.Duration
	filter                       *bloomFilter.BloomFilter
	filterCapacity               uint
	maximumPercentageFilterUsage float64
	log                          *logrus.Entry
}

// NewKNoTIntegration connects to the broker. A failed connection is logged, not returned:
// every later Send makes one reconnection attempt.
func NewKNoTIntegration(conf entities.CloudConfig, log *logrus.Entry) (*Integration, error) {
	amqp := network.NewAMQP(conf.URL, conf.ConnectTimeout)
	if err := amqp.Start(); err != nil {
		log.Warnf("KNoT connection error: %v", err)
	} else {
		log.Println("KNoT connected")
	}
	return newIntegration(amqp, network.NewMsgPublisher(amqp), conf, log)
}

func newIntegration(amqp network.Messaging, publisher network.Publisher, conf entities.CloudConfig, log *logrus.Entry) (*Integration, error) {
	filterCapacity, err := strconv.ParseUint(getValueFromEnvironmentVariable("FILTER_CAPACITY", FILTER_CAPACITY), 10, 0)
	if err != nil {
		return nil, errors.Wrap(err, "FILTER_CAPACITY")
	}
	duplicationProbability, err := strconv.ParseFloat(getValueFromEnvironmentVariable("DUPLICATION_PROBABILITY", DUPLICATION_PROBABILITY), 64)
	if err != nil {
		return nil, errors.Wrap(err, "DUPLICATION_PROBABILITY")
	}
	maximumPercentageFilterUsage, err := strconv.ParseFloat(getValueFromEnvironmentVariable("RESET_FILTER_USAGE_PERCENTAGE", RESET_FILTER_USAGE_PERCENTAGE), 64)
	if err != nil {
		return nil, errors.Wrap(err, "RESET_FILTER_USAGE_PERCENTAGE")
	}

	return &Integration{
		amqp:                         amqp,
		publisher:                    publisher,
		device:                       conf.Device,
		userToken:                    conf.Token,
		publishTimeout:               conf.PublishTimeout,
		filter:                       bloomFilter.NewWithEstimates(uint(filterCapacity), duplicationProbability),
		filterCapacity:               uint(filterCapacity),
		maximumPercentageFilterUsage: maximumPercentageFilterUsage,
		log:                          log,
	}, nil
}

// Send publishes one sample. The sample is marked as handed over before the attempt, so a
// failed sample is never published later.
func (i *Integration) Send(ctx context.Context, sample entities.TelemetrySample) error {
	key := sample.Key()
	if i.isMeasurementDuplicated(key) {
		return &entities.CloudError{Transport: entities.TransportAMQP, Err: ErrDuplicatedSample}
	}
	i.updateDuplicationFilter(key)

	if !i.amqp.Connected() {
		if err := i.amqp.Reconnect(); err != nil {
			return &entities.CloudError{Transport: entities.TransportAMQP, Err: errors.Wrap(err, "reconnect")}
		}
		i.log.Println("KNoT reconnected")
	}

	if i.publishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.publishTimeout)
		defer cancel()
	}

	data := []entities.Data{{
		SensorID:  sample.SensorID,
		Value:     sample.Temperature,
		TimeStamp: sample.Timestamp.UTC().Format(time.RFC3339),
	}}
	if err := i.publisher.PublishDeviceData(ctx, i.userToken, &i.device, data); err != nil {
		return &entities.CloudError{Transport: entities.TransportAMQP, Err: err}
	}
	i.log.Debugf("published %.2f at %s", sample.Temperature, data[0].TimeStamp)
	return nil
}

func (i *Integration) Close() error {
	return i.amqp.Stop()
}

func (i *Integration) isMeasurementDuplicated(key string) bool {
	return i.filter.Test([]byte(key))
}

func (i *Integration) updateDuplicationFilter(key string) {
	i.resetDuplicationFilter()
	i.filter.Add([]byte(key))
}

func (i *Integration) resetDuplicationFilter() {
	approximatedFilterSize := i.filter.ApproximatedSize()
	currentFilterUsage := float64(approximatedFilterSize) / float64(i.filterCapacity)
	if currentFilterUsage >= i.maximumPercentageFilterUsage {
		i.log.Debugln("resetting duplication filter")
		i.filter.ClearAll()
	}
}

func getValueFromEnvironmentVariable(variableName, defaultValue string) string {
	value := os.Getenv(variableName)
	if value != "" {
		return value
	}
	return defaultValue
}
