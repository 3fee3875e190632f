package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tnqbao/gau-storage-gateway/entity"
	"github.com/tnqbao/gau-storage-gateway/http/controller/dto"
	"github.com/tnqbao/gau-storage-gateway/utils"
)

// GetUploadToken asks the gateway for a write-scoped token for fileName.
func (c *Client) GetUploadToken(ctx context.Context, fileName, contentType string) (*entity.SasTokenResponse, error) {
	c.Telemetry.Event(ctx, "GetUploadToken", map[string]string{"fileName": fileName, "contentType": contentType})

	body, err := json.Marshal(dto.SasTokenRequest{FileName: fileName, ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/storage/upload-token", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := doEnvelope[entity.SasTokenResponse](c, req)
	if err != nil {
		c.Telemetry.Exception(ctx, err)
		return nil, err
	}

	c.Telemetry.Event(ctx, "UploadTokenReceived", map[string]string{"fileName": fileName, "blobName": token.BlobName})
	return token, nil
}

// GetDownloadToken asks the gateway for a read-only token for blobName.
func (c *Client) GetDownloadToken(ctx context.Context, blobName string) (*entity.SasTokenResponse, error) {
	c.Telemetry.Event(ctx, "GetDownloadToken", map[string]string{"blobName": blobName})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/api/storage/download-token/"+url.PathEscape(blobName), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	token, err := doEnvelope[entity.SasTokenResponse](c, req)
	if err != nil {
		c.Telemetry.Exception(ctx, err)
		return nil, err
	}

	c.Telemetry.Event(ctx, "DownloadTokenReceived", map[string]string{"blobName": blobName})
	return token, nil
}

// ListBlobs fetches the container listing through the gateway.
func (c *Client) ListBlobs(ctx context.Context) ([]entity.BlobListItem, error) {
	c.Telemetry.Event(ctx, "ListBlobs", nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/storage/blobs", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list request: %w", err)
	}

	blobs, err := doEnvelope[[]entity.BlobListItem](c, req)
	if err != nil {
		c.Telemetry.Exception(ctx, err)
		return nil, err
	}
	return *blobs, nil
}

func doEnvelope[T any](c *Client, req *http.Request) (*T, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	var envelope utils.Response[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if !envelope.Success {
		message := envelope.Message
		if message == "" {
			message = fmt.Sprintf("gateway returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", message)
	}
	return &envelope.Data, nil
}
