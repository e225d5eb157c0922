package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Analytics AnalyticsConfig
	GCP       GCPConfig
	BigQuery  BigQueryConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Analytics.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SALESANALYTICS_APP_ENV" required:"true"`
	Port         string `envconfig:"SALESANALYTICS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SALESANALYTICS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SALESANALYTICS_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"SALESANALYTICS_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SALESANALYTICS_DB_DSN"`
	Driver string `envconfig:"SALESANALYTICS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SALESANALYTICS_DB_HOST"`
	Port     int    `envconfig:"SALESANALYTICS_DB_PORT" default:"5432"`
	User     string `envconfig:"SALESANALYTICS_DB_USER"`
	Password string `envconfig:"SALESANALYTICS_DB_PASSWORD"`
	Name     string `envconfig:"SALESANALYTICS_DB_NAME"`
	SSLMode  string `envconfig:"SALESANALYTICS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SALESANALYTICS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SALESANALYTICS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SALESANALYTICS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SALESANALYTICS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the ledger database is a local SQLite file.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"SALESANALYTICS_REDIS_URL"`
	Address      string        `envconfig:"SALESANALYTICS_REDIS_ADDR"`
	Password     string        `envconfig:"SALESANALYTICS_REDIS_PASSWORD"`
	DB           int           `envconfig:"SALESANALYTICS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SALESANALYTICS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SALESANALYTICS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SALESANALYTICS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SALESANALYTICS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SALESANALYTICS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

// AnalyticsConfig carries the business thresholds of the report windows plus
// the knobs of the HTTP surface exposing them.
type AnalyticsConfig struct {
	DailyDefaultDays     int `envconfig:"SALESANALYTICS_DAILY_DEFAULT_DAYS" default:"30"`
	DailyMaxDays         int `envconfig:"SALESANALYTICS_DAILY_MAX_DAYS" default:"90"`
	MonthlyDefaultMonths int `envconfig:"SALESANALYTICS_MONTHLY_DEFAULT_MONTHS" default:"12"`
	MonthlyMaxDays       int `envconfig:"SALESANALYTICS_MONTHLY_MAX_DAYS" default:"730"`
	MonthlyClampMonths   int `envconfig:"SALESANALYTICS_MONTHLY_CLAMP_MONTHS" default:"24"`

	DefaultTop int `envconfig:"SALESANALYTICS_DEFAULT_TOP" default:"10"`
	MaxTop     int `envconfig:"SALESANALYTICS_MAX_TOP" default:"100"`

	LedgerBackend string        `envconfig:"SALESANALYTICS_LEDGER_BACKEND" default:"sql"`
	CacheTTL      time.Duration `envconfig:"SALESANALYTICS_CACHE_TTL" default:"0s"`

	RateLimitWindow time.Duration `envconfig:"SALESANALYTICS_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitPerIP  int           `envconfig:"SALESANALYTICS_RATE_LIMIT_PER_IP" default:"0"`

	WarmInterval time.Duration `envconfig:"SALESANALYTICS_WARM_INTERVAL" default:"5m"`
}

// UsesBigQuery reports whether orders are read from the warehouse instead of SQL.
func (a AnalyticsConfig) UsesBigQuery() bool {
	return strings.EqualFold(strings.TrimSpace(a.LedgerBackend), LedgerBackendBigQuery)
}

func (a AnalyticsConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(a.LedgerBackend)) {
	case LedgerBackendSQL, LedgerBackendBigQuery:
	default:
		return fmt.Errorf("%s must be %q or %q", EnvLedgerBackend, LedgerBackendSQL, LedgerBackendBigQuery)
	}
	if a.MaxTop > 0 && a.DefaultTop > a.MaxTop {
		return fmt.Errorf("%s cannot exceed %s", EnvDefaultTop, EnvMaxTop)
	}
	return nil
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SALESANALYTICS_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"SALESANALYTICS_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"SALESANALYTICS_GOOGLE_APPLICATION_CREDENTIALS"`
}

type BigQueryConfig struct {
	Dataset     string `envconfig:"SALESANALYTICS_BIGQUERY_DATASET" default:"sales"`
	OrdersTable string `envconfig:"SALESANALYTICS_BIGQUERY_ORDERS_TABLE" default:"orders_flat"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
