package network

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type AmqpMock struct {
	mock.Mock
}

func (m *AmqpMock) Start() error {
	args := m.Called()
	return args.Error(0)
}

func (m *AmqpMock) Stop() error {
	args := m.Called()
	return args.Error(0)
}

func (m *AmqpMock) Connected() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *AmqpMock) Reconnect() error {
	args := m.Called()
	return args.Error(0)
}

func (m *AmqpMock) PublishPersistentMessage(ctx context.Context, exchange, exchangeType, key string, data interface{}, options *MessageOptions) error {
	args := m.Called(exchange, exchangeType, key, data, options)
	return args.Error(0)
}
