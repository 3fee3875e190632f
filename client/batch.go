package client

import (
	"context"
	"io"
)

// UploadItem is one file in a batch upload.
type UploadItem struct {
	FileName    string
	ContentType string
	Payload     io.Reader
	Size        int64
}

// UploadResult captures the outcome of one file in a batch.
type UploadResult struct {
	FileName string
	BlobName string
	Err      error
}

// UploadAll uploads the batch strictly one file at a time. A failed file is
// recorded in its result entry and the loop moves on; earlier failures
// never abort later files.
func (c *Client) UploadAll(ctx context.Context, items []UploadItem, onProgress func(fileName string, fraction float64)) []UploadResult {
	results := make([]UploadResult, 0, len(items))
	for _, item := range items {
		var cb func(float64)
		if onProgress != nil {
			name := item.FileName
			cb = func(fraction float64) {
				onProgress(name, fraction)
			}
		}

		token, err := c.UploadFile(ctx, item.FileName, item.ContentType, item.Payload, item.Size, cb)
		result := UploadResult{FileName: item.FileName, Err: err}
		if err == nil {
			result.BlobName = token.BlobName
		}
		results = append(results, result)
	}
	return results
}
