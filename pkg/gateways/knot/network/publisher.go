package network

import (
	"context"

	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
)

const (
	defaultExpirationTime = "2000"
)

type Publisher interface {
	PublishDeviceData(ctx context.Context, userToken string, device *entities.Device, data []entities.Data) error
}

type msgPublisher struct {
	amqp Messaging
}

func NewMsgPublisher(amqp Messaging) Publisher {
	return &msgPublisher{amqp}
}

func (mp *msgPublisher) PublishDeviceData(ctx context.Context, userToken string, device *entities.Device, data []entities.Data) error {
	options := MessageOptions{
		Authorization: userToken,
		Expiration:    defaultExpirationTime,
	}

	message := DataSent{
		ID:   device.ID,
		Data: data,
	}

	err := mp.amqp.PublishPersistentMessage(ctx, exchangeSent, exchangeTypeFanout, "", message, &options)
	if err != nil {
		return err
	}

	return nil
}
