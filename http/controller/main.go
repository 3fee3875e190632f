package controller

import (
	"github.com/tnqbao/gau-storage-gateway/config"
	"github.com/tnqbao/gau-storage-gateway/infra"
	"github.com/tnqbao/gau-storage-gateway/service"
)

type Controller struct {
	Config  *config.Config
	Infra   *infra.Infra
	Storage *service.StorageService
}

func NewController(config *config.Config, infra *infra.Infra) *Controller {
	storage := service.NewStorageService(infra.Azure)
	return &Controller{
		Config:  config,
		Infra:   infra,
		Storage: storage,
	}
}
