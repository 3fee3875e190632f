package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-storage-gateway/http/controller"
)

type Middlewares struct {
	CORSMiddleware      gin.HandlerFunc
	ExceptionMiddleware gin.HandlerFunc
}

func NewMiddlewares(ctrl *controller.Controller) (*Middlewares, error) {
	cors := CORSMiddleware(ctrl.Config.EnvConfig)
	exception := ExceptionMiddleware(ctrl.Infra.Logger)

	return &Middlewares{
		CORSMiddleware:      cors,
		ExceptionMiddleware: exception,
	}, nil
}
