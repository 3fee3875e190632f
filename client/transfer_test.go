package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-storage-gateway/client"
	"github.com/tnqbao/gau-storage-gateway/entity"
	"github.com/tnqbao/gau-storage-gateway/http/controller/dto"
	"github.com/tnqbao/gau-storage-gateway/utils"
)

// fakeBackends simulates the gateway (token issuance + listing) and the
// storage service (direct PUT/GET) the way a real transfer uses them.
type fakeBackends struct {
	gateway *httptest.Server
	storage *httptest.Server

	blobs       map[string][]byte
	putHeaders  map[string]http.Header
	tokenDenied map[string]bool
}

func newFakeBackends(t *testing.T) *fakeBackends {
	t.Helper()

	f := &fakeBackends{
		blobs:       make(map[string][]byte),
		putHeaders:  make(map[string]http.Header),
		tokenDenied: make(map[string]bool),
	}

	storageMux := http.NewServeMux()
	storageMux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		blobName := strings.TrimPrefix(r.URL.Path, "/files/")
		switch r.Method {
		case http.MethodPut:
			body, err := io.ReadAll(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			f.blobs[blobName] = body
			f.putHeaders[blobName] = r.Header.Clone()
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			content, ok := f.blobs[blobName]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write(content)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	f.storage = httptest.NewServer(storageMux)
	t.Cleanup(f.storage.Close)

	gatewayMux := http.NewServeMux()
	gatewayMux.HandleFunc("/api/storage/upload-token", func(w http.ResponseWriter, r *http.Request) {
		var req dto.SasTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeEnvelopeError(w, http.StatusBadRequest, "FileName is required", "INVALID_REQUEST")
			return
		}
		if f.tokenDenied[req.FileName] {
			writeEnvelopeError(w, http.StatusInternalServerError, "Failed to generate SAS token", "TOKEN_GENERATION_FAILED")
			return
		}
		blobName := fmt.Sprintf("%s_%s", uuid.New().String(), req.FileName)
		writeEnvelope(w, f.token(blobName))
	})
	gatewayMux.HandleFunc("/api/storage/download-token/", func(w http.ResponseWriter, r *http.Request) {
		blobName := strings.TrimPrefix(r.URL.Path, "/api/storage/download-token/")
		writeEnvelope(w, f.token(blobName))
	})
	gatewayMux.HandleFunc("/api/storage/blobs", func(w http.ResponseWriter, r *http.Request) {
		items := make([]entity.BlobListItem, 0, len(f.blobs))
		for name, content := range f.blobs {
			items = append(items, entity.BlobListItem{
				Name:        name,
				URI:         f.storage.URL + "/files/" + name,
				Size:        int64(len(content)),
				ContentType: "application/octet-stream",
			})
		}
		writeEnvelope(w, items)
	})
	f.gateway = httptest.NewServer(gatewayMux)
	t.Cleanup(f.gateway.Close)

	return f
}

func (f *fakeBackends) token(blobName string) entity.SasTokenResponse {
	return entity.SasTokenResponse{
		SasToken:      "sig=fake",
		BlobURI:       f.storage.URL + "/files/" + blobName + "?sig=fake",
		ContainerName: "files",
		BlobName:      blobName,
		ExpiresOn:     time.Now().UTC().Add(time.Hour),
	}
}

func writeEnvelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(utils.SuccessResponse(data, "ok"))
}

func writeEnvelopeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(utils.ErrorResponse(message, code))
}

func TestUploadFile(t *testing.T) {
	f := newFakeBackends(t)
	cl := client.NewClient(f.gateway.URL)

	payload := bytes.Repeat([]byte("gau-storage"), 1024)
	var fractions []float64

	token, err := cl.UploadFile(context.Background(), "report.pdf", "application/pdf",
		bytes.NewReader(payload), int64(len(payload)), func(fraction float64) {
			fractions = append(fractions, fraction)
		})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(token.BlobName, "_report.pdf"))
	assert.Equal(t, payload, f.blobs[token.BlobName])

	headers := f.putHeaders[token.BlobName]
	require.NotNil(t, headers)
	assert.Equal(t, "BlockBlob", headers.Get("x-ms-blob-type"))
	assert.Equal(t, "application/pdf", headers.Get("Content-Type"))

	require.NotEmpty(t, fractions)
	assert.Equal(t, 1.0, fractions[len(fractions)-1])
	for i := 1; i < len(fractions); i++ {
		assert.GreaterOrEqual(t, fractions[i], fractions[i-1], "progress must not go backwards")
	}
}

func TestUploadAll_PartialFailure(t *testing.T) {
	f := newFakeBackends(t)
	f.tokenDenied["bad.bin"] = true
	cl := client.NewClient(f.gateway.URL)

	items := []client.UploadItem{
		{FileName: "first.txt", Payload: strings.NewReader("first"), Size: 5},
		{FileName: "bad.bin", Payload: strings.NewReader("nope"), Size: 4},
		{FileName: "last.txt", Payload: strings.NewReader("last!"), Size: 5},
	}

	results := cl.UploadAll(context.Background(), items, nil)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err, "a denied token must fail only its own file")
	assert.NoError(t, results[2].Err, "a mid-batch failure must not abort later files")

	assert.Equal(t, "first.txt", results[0].FileName)
	assert.Equal(t, "bad.bin", results[1].FileName)
	assert.Empty(t, results[1].BlobName)

	// Only the two good files reached the storage backend.
	assert.Len(t, f.blobs, 2)
	assert.Contains(t, f.blobs, results[0].BlobName)
	assert.Contains(t, f.blobs, results[2].BlobName)
}

func TestDownloadFile(t *testing.T) {
	f := newFakeBackends(t)
	f.blobs["abc_notes.txt"] = []byte("remember the milk")
	cl := client.NewClient(f.gateway.URL)

	var dest bytes.Buffer
	err := cl.DownloadFile(context.Background(), "abc_notes.txt", &dest)
	require.NoError(t, err)
	assert.Equal(t, "remember the milk", dest.String())
}

func TestDownloadFile_MissingBlob(t *testing.T) {
	f := newFakeBackends(t)
	cl := client.NewClient(f.gateway.URL)

	// The gateway issues a token without checking existence; the failure
	// only shows up at transfer time.
	var dest bytes.Buffer
	err := cl.DownloadFile(context.Background(), "ghost.bin", &dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestListBlobs(t *testing.T) {
	f := newFakeBackends(t)
	f.blobs["a.bin"] = []byte("aaaa")
	cl := client.NewClient(f.gateway.URL)

	blobs, err := cl.ListBlobs(context.Background())
	require.NoError(t, err)
	require.Len(t, blobs, 1)
	assert.Equal(t, "a.bin", blobs[0].Name)
	assert.Equal(t, int64(4), blobs[0].Size)
}

func TestGetUploadToken_GatewayError(t *testing.T) {
	f := newFakeBackends(t)
	f.tokenDenied["report.pdf"] = true
	cl := client.NewClient(f.gateway.URL)

	_, err := cl.GetUploadToken(context.Background(), "report.pdf", "application/pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to generate SAS token")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "report.pdf", client.DisplayName("3f8a1c2e-aaaa-bbbb-cccc-0123456789ab_report.pdf"))
	assert.Equal(t, "a_b.txt", client.DisplayName("prefix_a_b.txt"))
	assert.Equal(t, "plain.txt", client.DisplayName("plain.txt"))
}
