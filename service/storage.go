package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	azservice "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"github.com/google/uuid"
	"github.com/tnqbao/gau-storage-gateway/entity"
	"github.com/tnqbao/gau-storage-gateway/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// clockSkewBackdate protects against caller/backend clock drift so a
	// fresh token is never rejected as "not yet valid".
	clockSkewBackdate = 5 * time.Minute
	grantDuration     = time.Hour

	defaultContentType = "application/octet-stream"
)

// CredentialClient is the surface of the storage backend the issuance
// service needs: delegation keys, SAS signing and container enumeration.
type CredentialClient interface {
	ObtainDelegationKey(ctx context.Context, validFrom, validUntil time.Time) (*azservice.UserDelegationCredential, error)
	SignScopedToken(containerName, blobName string, permissions sas.BlobPermissions, validFrom, validUntil time.Time, key *azservice.UserDelegationCredential) (string, error)
	ListBlobs(ctx context.Context) ([]entity.BlobEntry, error)
	BlobURL(blobName string) string
	Container() string
}

// StorageService translates client intent (upload or download) into a
// fully-formed scoped access token. It holds no state between requests.
type StorageService struct {
	credentials CredentialClient
	tracer      trace.Tracer
}

func NewStorageService(credentials CredentialClient) *StorageService {
	return &StorageService{
		credentials: credentials,
		tracer:      otel.Tracer("storage-service"),
	}
}

// GenerateUploadToken mints a read+write+create token for a fresh blob name
// derived from fileName. The random prefix keeps concurrent uploads of the
// same file name from colliding; delete permission is never granted.
func (s *StorageService) GenerateUploadToken(ctx context.Context, fileName, contentType string) (*entity.SasTokenResponse, error) {
	ctx, span := s.tracer.Start(ctx, "storage.upload_token")
	defer span.End()

	if strings.TrimSpace(fileName) == "" {
		return nil, utils.NewInvalidRequest("FileName is required")
	}
	if contentType == "" {
		contentType = defaultContentType
	}
	// The content type travels with the upload itself, not the token.
	span.SetAttributes(
		attribute.String("file.name", fileName),
		attribute.String("file.content_type", contentType),
	)

	blobName := fmt.Sprintf("%s_%s", uuid.New().String(), fileName)

	return s.issueToken(ctx, blobName, sas.BlobPermissions{Read: true, Write: true, Create: true})
}

// GenerateDownloadToken mints a read-only token for an existing blob name.
// No existence check is performed: a token for a missing blob simply fails
// at transfer time.
func (s *StorageService) GenerateDownloadToken(ctx context.Context, blobName string) (*entity.SasTokenResponse, error) {
	ctx, span := s.tracer.Start(ctx, "storage.download_token")
	defer span.End()

	if strings.TrimSpace(blobName) == "" {
		return nil, utils.NewInvalidRequest("BlobName is required")
	}
	span.SetAttributes(attribute.String("blob.name", blobName))

	return s.issueToken(ctx, blobName, sas.BlobPermissions{Read: true})
}

func (s *StorageService) issueToken(ctx context.Context, blobName string, permissions sas.BlobPermissions) (*entity.SasTokenResponse, error) {
	now := time.Now().UTC()
	validFrom := now.Add(-clockSkewBackdate)
	validUntil := now.Add(grantDuration)

	key, err := s.credentials.ObtainDelegationKey(ctx, validFrom, validUntil)
	if err != nil {
		return nil, utils.NewTokenGenerationFailed(err)
	}

	containerName := s.credentials.Container()
	token, err := s.credentials.SignScopedToken(containerName, blobName, permissions, validFrom, validUntil, key)
	if err != nil {
		return nil, utils.NewTokenGenerationFailed(err)
	}

	return &entity.SasTokenResponse{
		SasToken:      token,
		BlobURI:       s.credentials.BlobURL(blobName) + "?" + token,
		ContainerName: containerName,
		BlobName:      blobName,
		ExpiresOn:     validUntil,
	}, nil
}

// ListBlobs projects the backend enumeration into the API listing shape,
// defaulting absent sizes to zero and absent content types to the generic
// binary MIME type.
func (s *StorageService) ListBlobs(ctx context.Context) ([]entity.BlobListItem, error) {
	ctx, span := s.tracer.Start(ctx, "storage.list_blobs")
	defer span.End()

	entries, err := s.credentials.ListBlobs(ctx)
	if err != nil {
		return nil, utils.NewListBlobsFailed(err)
	}

	items := make([]entity.BlobListItem, 0, len(entries))
	for _, entry := range entries {
		item := entity.BlobListItem{
			Name:         entry.Name,
			URI:          entry.URI,
			LastModified: entry.LastModified,
			ContentType:  defaultContentType,
		}
		if entry.Size != nil {
			item.Size = *entry.Size
		}
		if entry.ContentType != nil && *entry.ContentType != "" {
			item.ContentType = *entry.ContentType
		}
		items = append(items, item)
	}

	span.SetAttributes(attribute.Int("blob.count", len(items)))
	return items, nil
}
