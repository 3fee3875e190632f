package infra

import (
	"github.com/tnqbao/gau-storage-gateway/config"
)

type Infra struct {
	Logger *LoggerClient
	Azure  *AzureClient
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	azure := InitAzureClient(cfg.EnvConfig)
	if azure == nil {
		panic("Failed to initialize Azure storage service")
	}

	infraInstance = &Infra{
		Logger: logger,
		Azure:  azure,
	}

	return infraInstance
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}
