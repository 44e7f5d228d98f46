package mocks

import (
	"context"

	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
	"github.com/stretchr/testify/mock"
)

type PublisherMock struct {
	mock.Mock
}

func (p *PublisherMock) PublishDeviceData(ctx context.Context, userToken string, device *entities.Device, data []entities.Data) error {
	args := p.Called(userToken, device, data)
	return args.Error(0)
}
