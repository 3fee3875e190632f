package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-storage-gateway/config"
)

func testEnvConfig(t *testing.T) *config.EnvConfig {
	t.Helper()
	t.Setenv("AZURE_STORAGE_ACCOUNT", "devaccount")
	t.Setenv("AZURE_STORAGE_CONTAINER", "files")
	t.Setenv("AZURE_TENANT_ID", "11111111-1111-1111-1111-111111111111")
	t.Setenv("AZURE_CLIENT_ID", "22222222-2222-2222-2222-222222222222")
	t.Setenv("AZURE_CLIENT_SECRET", "secret")
	return config.LoadEnvConfig()
}

func TestInitAzureClient(t *testing.T) {
	azure := InitAzureClient(testEnvConfig(t))

	assert.Equal(t, "devaccount", azure.AccountName)
	assert.Equal(t, "files", azure.Container())
	assert.Equal(t, "https://devaccount.blob.core.windows.net/", azure.ServiceURL)
	require.NotNil(t, azure.Service)
}

func TestAzureClientBlobURL(t *testing.T) {
	azure := InitAzureClient(testEnvConfig(t))

	assert.Equal(t,
		"https://devaccount.blob.core.windows.net/files/report.pdf",
		azure.BlobURL("report.pdf"))
	assert.Equal(t,
		"https://devaccount.blob.core.windows.net/files/my%20file.txt",
		azure.BlobURL("my file.txt"))
	assert.Equal(t,
		"https://devaccount.blob.core.windows.net/files/abc_report.pdf",
		azure.BlobURL("abc_report.pdf"))
}

func TestInitAzureClient_MissingConfig(t *testing.T) {
	cfg := testEnvConfig(t)
	cfg.AzureStorage.AccountName = ""
	assert.Panics(t, func() { InitAzureClient(cfg) })

	cfg = testEnvConfig(t)
	cfg.AzureStorage.ContainerName = ""
	assert.Panics(t, func() { InitAzureClient(cfg) })
}
