package config

const (
	// EnvPrefix namespaces every environment variable the app reads.
	EnvPrefix = "COINQUEST"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "COINQUEST_DB_DSN"
	EnvDBHost = "COINQUEST_DB_HOST"
	EnvDBUser = "COINQUEST_DB_USER"
	EnvDBName = "COINQUEST_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
