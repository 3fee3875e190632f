package dto

type SasTokenRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}
