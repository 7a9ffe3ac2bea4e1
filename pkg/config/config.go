package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	SMTP          SMTPConfig
	Cart          CartConfig
	Notifications NotificationsConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = SQLiteDefaultDSN
		}
	} else if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TOURMARKET_APP_ENV" required:"true"`
	Port         string `envconfig:"TOURMARKET_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TOURMARKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TOURMARKET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"TOURMARKET_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"TOURMARKET_DB_DSN"`
	Driver string `envconfig:"TOURMARKET_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TOURMARKET_DB_HOST"`
	LegacyPort     int    `envconfig:"TOURMARKET_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TOURMARKET_DB_USER"`
	LegacyPassword string `envconfig:"TOURMARKET_DB_PASSWORD"`
	LegacyName     string `envconfig:"TOURMARKET_DB_NAME"`
	LegacySSLMode  string `envconfig:"TOURMARKET_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TOURMARKET_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TOURMARKET_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TOURMARKET_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TOURMARKET_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"TOURMARKET_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TOURMARKET_REDIS_ADDR"`
	Password     string        `envconfig:"TOURMARKET_REDIS_PASSWORD"`
	DB           int           `envconfig:"TOURMARKET_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TOURMARKET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TOURMARKET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TOURMARKET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TOURMARKET_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TOURMARKET_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TOURMARKET_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TOURMARKET_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TOURMARKET_JWT_EXPIRATION_MINUTES" required:"true"`
}

type SMTPConfig struct {
	Host     string `envconfig:"TOURMARKET_SMTP_HOST" required:"true"`
	Port     int    `envconfig:"TOURMARKET_SMTP_PORT" default:"587"`
	Username string `envconfig:"TOURMARKET_SMTP_USERNAME"`
	Password string `envconfig:"TOURMARKET_SMTP_PASSWORD"`
	Protocol string `envconfig:"TOURMARKET_SMTP_PROTOCOL" default:"smtp"`
	Auth     bool   `envconfig:"TOURMARKET_SMTP_AUTH" default:"true"`
	StartTLS bool   `envconfig:"TOURMARKET_SMTP_STARTTLS" default:"true"`
}

type CartConfig struct {
	GuestTTL time.Duration `envconfig:"TOURMARKET_CART_GUEST_TTL" default:"168h"`
	UserTTL  time.Duration `envconfig:"TOURMARKET_CART_USER_TTL" default:"720h"`
}

type NotificationsConfig struct {
	RetentionDays int `envconfig:"TOURMARKET_NOTIFICATION_RETENTION_DAYS" default:"30"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TOURMARKET_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TOURMARKET_AUTO_MIGRATE" default:"false"`
}
