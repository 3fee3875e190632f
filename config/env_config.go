package config

import "os"

type EnvConfig struct {
	AzureStorage struct {
		AccountName   string
		ContainerName string
		TenantID      string
		ClientID      string
		ClientSecret  string
	}
	CORS struct {
		AllowDomains string
	}
	Telemetry struct {
		OTLPEndpoint string
		ServiceName  string
	}
	Environment struct {
		Mode string
	}
	Server struct {
		Port string
	}
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	// Azure Storage
	config.AzureStorage.AccountName = os.Getenv("AZURE_STORAGE_ACCOUNT")
	config.AzureStorage.ContainerName = os.Getenv("AZURE_STORAGE_CONTAINER")
	config.AzureStorage.TenantID = os.Getenv("AZURE_TENANT_ID")
	config.AzureStorage.ClientID = os.Getenv("AZURE_CLIENT_ID")
	config.AzureStorage.ClientSecret = os.Getenv("AZURE_CLIENT_SECRET")

	config.CORS.AllowDomains = os.Getenv("ALLOWED_DOMAINS")
	if config.CORS.AllowDomains == "" {
		config.CORS.AllowDomains = "http://localhost:4200"
	}

	// Telemetry is optional: without an OTLP endpoint logs go to stdout
	config.Telemetry.OTLPEndpoint = os.Getenv("OTLP_ENDPOINT")
	config.Telemetry.ServiceName = os.Getenv("SERVICE_NAME")
	if config.Telemetry.ServiceName == "" {
		config.Telemetry.ServiceName = "gau-storage-gateway"
	}

	config.Environment.Mode = os.Getenv("DEPLOY_ENV")
	if config.Environment.Mode == "" {
		config.Environment.Mode = "development"
	}

	config.Server.Port = os.Getenv("PORT")
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	return &config
}
