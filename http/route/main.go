package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-storage-gateway/http/controller"
	middlewares "github.com/tnqbao/gau-storage-gateway/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)
	r.Use(middles.ExceptionMiddleware)

	apiRoutes := r.Group("/api")
	{
		storageRoutes := apiRoutes.Group("/storage")
		{
			storageRoutes.POST("/upload-token", ctrl.GetUploadToken)
			storageRoutes.GET("/download-token/:blobName", ctrl.GetDownloadToken)
			storageRoutes.GET("/blobs", ctrl.ListBlobs)
			storageRoutes.GET("/health", ctrl.HealthCheck)
		}
	}
	return r
}
