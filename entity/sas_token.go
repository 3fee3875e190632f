package entity

import "time"

// SasTokenResponse is the scoped credential handed back to a client. It is
// built fresh per request, valid only for the exact blob and permission set
// it was issued for, and never persisted anywhere.
type SasTokenResponse struct {
	SasToken      string    `json:"sasToken"`
	BlobURI       string    `json:"blobUri"`
	ContainerName string    `json:"containerName"`
	BlobName      string    `json:"blobName"`
	ExpiresOn     time.Time `json:"expiresOn"`
}
