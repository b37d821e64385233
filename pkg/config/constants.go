package config

// EnvPrefix is handed to envconfig; individual fields carry fully-qualified
// env tags so the prefix stays empty to avoid double-prefixing.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv = "ORDERPULSE_APP_ENV"
	EnvDBDSN  = "ORDERPULSE_DB_DSN"
	EnvDBHost = "ORDERPULSE_DB_HOST"
	EnvDBUser = "ORDERPULSE_DB_USER"
	EnvDBName = "ORDERPULSE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
