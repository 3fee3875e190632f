package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-storage-gateway/http/controller/dto"
	"github.com/tnqbao/gau-storage-gateway/utils"
)

func (ctrl *Controller) GetUploadToken(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SasTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Storage] Malformed upload token request: %v", err)
		utils.JSONAppError(c, utils.NewInvalidRequest("FileName is required"))
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Storage] Upload token requested for file '%s' (%s)", req.FileName, req.ContentType)

	token, err := ctrl.Storage.GenerateUploadToken(ctx, req.FileName, req.ContentType)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Storage] Failed to generate upload token for file '%s'", req.FileName)
		utils.JSONAppError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Storage] Generated upload token for blob '%s'", token.BlobName)
	utils.JSON200(c, token, "SAS token generated successfully")
}

func (ctrl *Controller) GetDownloadToken(c *gin.Context) {
	ctx := c.Request.Context()
	blobName := c.Param("blobName")

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Storage] Download token requested for blob '%s'", blobName)

	token, err := ctrl.Storage.GenerateDownloadToken(ctx, blobName)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Storage] Failed to generate download token for blob '%s'", blobName)
		utils.JSONAppError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Storage] Generated download token for blob '%s'", blobName)
	utils.JSON200(c, token, "Download SAS token generated successfully")
}

func (ctrl *Controller) ListBlobs(c *gin.Context) {
	ctx := c.Request.Context()

	blobs, err := ctrl.Storage.ListBlobs(ctx)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Storage] Failed to list blobs")
		utils.JSONAppError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Storage] Listed %d blobs", len(blobs))
	utils.JSON200(c, blobs, fmt.Sprintf("Retrieved %d blobs", len(blobs)))
}

func (ctrl *Controller) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}
