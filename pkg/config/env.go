package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for fields without one.
const EnvPrefix = "TOURMARKET"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Database driver names accepted by db.New.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// SQLiteDefaultDSN is used when the sqlite flag is on and no DSN is set.
const SQLiteDefaultDSN = "file:tourmarket.db?cache=shared"

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv     = "TOURMARKET_APP_ENV"
	EnvAppPort    = "TOURMARKET_APP_PORT"
	EnvDBDSN      = "TOURMARKET_DB_DSN"
	EnvDBHost     = "TOURMARKET_DB_HOST"
	EnvDBUser     = "TOURMARKET_DB_USER"
	EnvDBName     = "TOURMARKET_DB_NAME"
	EnvRedisURL   = "TOURMARKET_REDIS_URL"
	EnvJWTSecret  = "TOURMARKET_JWT_SECRET"
	EnvSMTPHost   = "TOURMARKET_SMTP_HOST"
	EnvLogFormat  = "LOG_FORMAT"
	EnvJWTIssuer  = "TOURMARKET_JWT_ISSUER"
	EnvJWTExpMins = "TOURMARKET_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
