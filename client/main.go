package client

import (
	"net/http"
	"strings"
)

// Client talks to the gateway for tokens and listings, and moves file bytes
// directly against the storage backend with the issued credentials. The
// gateway never sees the payload.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Telemetry  *Telemetry
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{},
		Telemetry:  NewTelemetry("gau-storage-client"),
	}
}
