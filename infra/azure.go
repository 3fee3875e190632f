package infra

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"
	"github.com/tnqbao/gau-storage-gateway/config"
	"github.com/tnqbao/gau-storage-gateway/entity"
	"github.com/tnqbao/gau-storage-gateway/utils"
)

// AzureClient wraps the blob service's delegation-key, SAS-signing and
// enumeration primitives. The credential is selected once at startup:
// an explicit service principal when the full triple is configured,
// otherwise the ambient default credential chain.
type AzureClient struct {
	Service       *service.Client
	AccountName   string
	ContainerName string
	ServiceURL    string
}

func InitAzureClient(cfg *config.EnvConfig) *AzureClient {
	accountName := cfg.AzureStorage.AccountName
	if accountName == "" {
		panic("Azure storage account name is not configured")
	}

	containerName := cfg.AzureStorage.ContainerName
	if containerName == "" {
		panic("Azure storage container name is not configured")
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)

	var cred azcore.TokenCredential
	var err error
	if cfg.AzureStorage.TenantID != "" && cfg.AzureStorage.ClientID != "" && cfg.AzureStorage.ClientSecret != "" {
		cred, err = azidentity.NewClientSecretCredential(
			cfg.AzureStorage.TenantID,
			cfg.AzureStorage.ClientID,
			cfg.AzureStorage.ClientSecret,
			nil,
		)
		log.Println("Azure blob service client initialized with ClientSecretCredential")
	} else {
		cred, err = azidentity.NewDefaultAzureCredential(nil)
		log.Println("Azure blob service client initialized with DefaultAzureCredential")
	}
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize Azure credential: %v", err))
	}

	client, err := service.NewClient(serviceURL, cred, nil)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize Azure blob service client: %v", err))
	}

	return &AzureClient{
		Service:       client,
		AccountName:   accountName,
		ContainerName: containerName,
		ServiceURL:    serviceURL,
	}
}

// ObtainDelegationKey requests a short-lived signing key for the given
// window. Keys are never cached: each issuance selects its own window.
func (a *AzureClient) ObtainDelegationKey(ctx context.Context, validFrom, validUntil time.Time) (*service.UserDelegationCredential, error) {
	info := service.KeyInfo{
		Start:  to.Ptr(validFrom.UTC().Format(sas.TimeFormat)),
		Expiry: to.Ptr(validUntil.UTC().Format(sas.TimeFormat)),
	}

	key, err := a.Service.GetUserDelegationCredential(ctx, info, nil)
	if err != nil {
		return nil, utils.NewAuthFailure(err)
	}
	return key, nil
}

// SignScopedToken builds the SAS query string for a single blob. Pure
// parameter construction plus signing, no I/O.
func (a *AzureClient) SignScopedToken(containerName, blobName string, permissions sas.BlobPermissions, validFrom, validUntil time.Time, key *service.UserDelegationCredential) (string, error) {
	values := sas.BlobSignatureValues{
		Protocol:      sas.ProtocolHTTPS,
		StartTime:     validFrom.UTC(),
		ExpiryTime:    validUntil.UTC(),
		Permissions:   permissions.String(),
		ContainerName: containerName,
		BlobName:      blobName,
	}

	params, err := values.SignWithUserDelegation(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign SAS values: %w", err)
	}
	return params.Encode(), nil
}

// BlobURL returns the fully qualified blob URL without any query string.
func (a *AzureClient) BlobURL(blobName string) string {
	return a.ServiceURL + a.ContainerName + "/" + url.PathEscape(blobName)
}

func (a *AzureClient) Container() string {
	return a.ContainerName
}

// ListBlobs enumerates the container from scratch on every call. The
// returned slice is a finite snapshot, not a restartable cursor.
func (a *AzureClient) ListBlobs(ctx context.Context) ([]entity.BlobEntry, error) {
	pager := a.Service.NewContainerClient(a.ContainerName).NewListBlobsFlatPager(nil)

	var entries []entity.BlobEntry
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, utils.NewBackendUnavailable(err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			entry := entity.BlobEntry{
				Name: *item.Name,
				URI:  a.BlobURL(*item.Name),
			}
			if item.Properties != nil {
				entry.Size = item.Properties.ContentLength
				entry.LastModified = item.Properties.LastModified
				entry.ContentType = item.Properties.ContentType
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
