package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tnqbao/gau-storage-gateway/entity"
)

// progressReader reports the running fraction of bytes handed to the
// transport.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	onProgress func(float64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		if p.onProgress != nil && p.total > 0 {
			p.onProgress(float64(p.read) / float64(p.total))
		}
	}
	return n, err
}

// UploadFile requests an upload token and PUTs the payload straight to the
// storage backend. onProgress receives fractions in (0, 1].
func (c *Client) UploadFile(ctx context.Context, fileName, contentType string, payload io.Reader, size int64, onProgress func(float64)) (*entity.SasTokenResponse, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	token, err := c.GetUploadToken(ctx, fileName, contentType)
	if err != nil {
		return nil, err
	}

	c.Telemetry.Event(ctx, "UploadFileStart", map[string]string{"fileName": fileName, "blobName": token.BlobName})

	reader := &progressReader{
		r:     payload,
		total: size,
		onProgress: func(fraction float64) {
			if onProgress != nil {
				onProgress(fraction)
			}
			c.Telemetry.Metric(ctx, "TransferProgress", fraction, map[string]string{"fileName": fileName})
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, token.BlobURI, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("x-ms-blob-type", "BlockBlob")
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Telemetry.Exception(ctx, err)
		return nil, fmt.Errorf("failed to upload blob: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("storage backend returned %d: %s", resp.StatusCode, raw)
		c.Telemetry.Exception(ctx, err)
		return nil, err
	}

	c.Telemetry.Event(ctx, "UploadFileComplete", map[string]string{"fileName": fileName, "blobName": token.BlobName})
	return token, nil
}

// DownloadFile fetches a read token and streams the blob into dest.
func (c *Client) DownloadFile(ctx context.Context, blobName string, dest io.Writer) error {
	token, err := c.GetDownloadToken(ctx, blobName)
	if err != nil {
		return err
	}

	c.Telemetry.Event(ctx, "DownloadFileStart", map[string]string{"blobName": blobName})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, token.BlobURI, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Telemetry.Exception(ctx, err)
		return fmt.Errorf("failed to download blob: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("storage backend returned %d: %s", resp.StatusCode, raw)
		c.Telemetry.Exception(ctx, err)
		return err
	}

	if _, err := io.Copy(dest, resp.Body); err != nil {
		c.Telemetry.Exception(ctx, err)
		return fmt.Errorf("failed to read blob body: %w", err)
	}

	c.Telemetry.Event(ctx, "DownloadFileComplete", map[string]string{"blobName": blobName})
	return nil
}

// DisplayName strips the unique-id prefix from a synthesized blob name for
// presentation. The prefix ends at the first underscore.
func DisplayName(blobName string) string {
	if i := strings.Index(blobName, "_"); i >= 0 {
		return blobName[i+1:]
	}
	return blobName
}
