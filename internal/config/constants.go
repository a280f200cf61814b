package config

const (
	// Configuration file paths
	ConfigPathCatalog       = "configs/catalog.json"
	ConfigPathCatalogSchema = "configs/schemas/catalog.schema.json"
)

// Ledger drivers
const (
	LedgerDriverPostgres = "postgres"
	LedgerDriverMemory   = "memory"
)

// Environments
const (
	EnvDevelopment = "dev"
	EnvProduction  = "prod"
)
