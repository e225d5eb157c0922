package config

const (
	EnvPrefix = "SALESANALYTICS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	LedgerBackendSQL      = "sql"
	LedgerBackendBigQuery = "bigquery"
)

const (
	EnvAppEnv      = "SALESANALYTICS_APP_ENV"
	EnvPort        = "SALESANALYTICS_APP_PORT"
	EnvLogLevel    = "SALESANALYTICS_LOG_LEVEL"
	EnvAutoMigrate = "SALESANALYTICS_AUTO_MIGRATE"

	EnvDBDSN    = "SALESANALYTICS_DB_DSN"
	EnvDBDriver = "SALESANALYTICS_DB_DRIVER"
	EnvDBHost   = "SALESANALYTICS_DB_HOST"
	EnvDBPort   = "SALESANALYTICS_DB_PORT"
	EnvDBUser   = "SALESANALYTICS_DB_USER"
	EnvDBPass   = "SALESANALYTICS_DB_PASSWORD"
	EnvDBName   = "SALESANALYTICS_DB_NAME"

	EnvRedisURL = "SALESANALYTICS_REDIS_URL"

	EnvDailyDefaultDays = "SALESANALYTICS_DAILY_DEFAULT_DAYS"
	EnvDailyMaxDays     = "SALESANALYTICS_DAILY_MAX_DAYS"
	EnvDefaultTop       = "SALESANALYTICS_DEFAULT_TOP"
	EnvMaxTop           = "SALESANALYTICS_MAX_TOP"
	EnvLedgerBackend    = "SALESANALYTICS_LEDGER_BACKEND"
	EnvCacheTTL         = "SALESANALYTICS_CACHE_TTL"

	EnvGCPProjectID = "SALESANALYTICS_GCP_PROJECT_ID"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
