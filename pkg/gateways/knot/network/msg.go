package network

import (
	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
)

type DataSent struct {
	ID   string          `json:"id"`
	Data []entities.Data `json:"data"`
}
