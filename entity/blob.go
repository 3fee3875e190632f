package entity

import "time"

// BlobListItem is the read-only listing projection returned by the API.
type BlobListItem struct {
	Name         string     `json:"name"`
	URI          string     `json:"uri"`
	Size         int64      `json:"size"`
	LastModified *time.Time `json:"lastModified,omitempty"`
	ContentType  string     `json:"contentType"`
}

// BlobEntry is a raw enumeration entry as reported by the storage backend.
// Optional properties stay as pointers; defaulting happens when the entry is
// projected into a BlobListItem.
type BlobEntry struct {
	Name         string
	URI          string
	Size         *int64
	LastModified *time.Time
	ContentType  *string
}
