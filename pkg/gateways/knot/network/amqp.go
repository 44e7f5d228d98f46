package network

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeTypeFanout = "fanout"

	exchangeSent     = "data.sent"
	durable          = true
	deleteWhenUnused = false
	internal         = false
	noWait           = false

	dialTimeout = 5 * time.Second
)

// Messaging is the AMQP surface the telemetry publisher needs.
type Messaging interface {
	Start() error
	Stop() error
	Connected() bool
	Reconnect() error
	PublishPersistentMessage(ctx context.Context, exchange, exchangeType, key string, data interface{}, options *MessageOptions) error
}

// connection and channel are the parts of *amqp.Connection and *amqp.Channel in use.
type connection interface {
	IsClosed() bool
	Close() error
}

type channel interface {
	IsClosed() bool
	Close() error
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type AMQP struct {
	url               string
	connectTimeout    time.Duration
	conn              connection
	channel           channel
	declaredExchanges map[string]struct{}
}

// MessageOptions represents the message publishing options
type MessageOptions struct {
	Authorization string
	CorrelationID string
	ReplyTo       string
	Expiration    string
}

// NewAMQP returns a handler that gives up connecting after connectTimeout.
func NewAMQP(url string, connectTimeout time.Duration) *AMQP {
	declaredExchanges := make(map[string]struct{})
	return &AMQP{url: url, connectTimeout: connectTimeout, declaredExchanges: declaredExchanges}
}

// Start connects with exponential backoff bounded by the connect timeout.
func (a *AMQP) Start() error {
	connectionBackOff := backoff.NewExponentialBackOff()
	connectionBackOff.MaxElapsedTime = a.connectTimeout
	return backoff.Retry(a.connect, connectionBackOff)
}

// Reconnect makes a single connection attempt.
func (a *AMQP) Reconnect() error {
	_ = a.Stop()
	return a.connect()
}

func (a *AMQP) Stop() error {
	var err error
	if a.channel != nil {
		_ = a.channel.Close()
		a.channel = nil
	}
	if a.conn != nil && !a.conn.IsClosed() {
		err = a.conn.Close()
	}
	a.conn = nil
	a.declaredExchanges = make(map[string]struct{})
	return err
}

func (a *AMQP) Connected() bool {
	return a.conn != nil && !a.conn.IsClosed() && a.channel != nil && !a.channel.IsClosed()
}

func (a *AMQP) PublishPersistentMessage(ctx context.Context, exchange, exchangeType, key string, data interface{}, options *MessageOptions) error {
	var headers amqp.Table
	var corrID, expTime, replyTo string

	if options != nil {
		headers = amqp.Table{
			"Authorization": options.Authorization,
		}
		corrID = options.CorrelationID
		replyTo = options.ReplyTo
		expTime = options.Expiration
	}

	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error enconding JSON message: %w", err)
	}

	if !a.Connected() {
		return fmt.Errorf("amqp connection to %s is closed", a.url)
	}

	// Reduces communication with the AMQP server by avoiding redeclaring an exchange.
	if !a.exchangeAlreadyDeclared(exchange) {
		err = a.declareExchange(exchange, exchangeType)
		if err != nil {
			return fmt.Errorf("error declaring exchange: %w", err)
		}
		a.declaredExchanges[exchange] = struct{}{}
	}

	err = a.channel.PublishWithContext(
		ctx,
		exchange,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			Headers:       headers,
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			CorrelationId: corrID,
			ReplyTo:       replyTo,
			Body:          body,
			Expiration:    expTime,
			Timestamp:     time.Now().UTC(),
		},
	)
	if err != nil {
		return fmt.Errorf("error publishing message in channel: %w", err)
	}

	return nil
}

func (a *AMQP) exchangeAlreadyDeclared(exchangeName string) bool {
	_, ok := a.declaredExchanges[exchangeName]
	return ok
}

func (a *AMQP) connect() error {
	conn, err := amqp.DialConfig(a.url, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	a.conn = conn
	a.channel = ch
	return nil
}

func (a *AMQP) declareExchange(name, exchangeType string) error {
	return a.channel.ExchangeDeclare(
		name,
		exchangeType,
		durable,
		deleteWhenUnused,
		internal,
		noWait,
		nil, // arguments
	)
}
