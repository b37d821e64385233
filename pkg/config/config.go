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
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ORDERPULSE_APP_ENV" required:"true"`
	Port         string `envconfig:"ORDERPULSE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ORDERPULSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ORDERPULSE_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"ORDERPULSE_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"ORDERPULSE_DB_DSN"`

	LegacyHost     string `envconfig:"ORDERPULSE_DB_HOST"`
	LegacyPort     int    `envconfig:"ORDERPULSE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ORDERPULSE_DB_USER"`
	LegacyPassword string `envconfig:"ORDERPULSE_DB_PASSWORD"`
	LegacyName     string `envconfig:"ORDERPULSE_DB_NAME"`
	LegacySSLMode  string `envconfig:"ORDERPULSE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ORDERPULSE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ORDERPULSE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ORDERPULSE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ORDERPULSE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ORDERPULSE_REDIS_URL"`
	Address      string        `envconfig:"ORDERPULSE_REDIS_ADDR"`
	Password     string        `envconfig:"ORDERPULSE_REDIS_PASSWORD"`
	DB           int           `envconfig:"ORDERPULSE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ORDERPULSE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ORDERPULSE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ORDERPULSE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ORDERPULSE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ORDERPULSE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured. The dashboard
// response cache degrades to recompute-per-request when it was not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type AnalyticsConfig struct {
	LowStockThreshold int           `envconfig:"ORDERPULSE_ANALYTICS_LOW_STOCK_THRESHOLD" default:"5"`
	DefaultTopN       int           `envconfig:"ORDERPULSE_ANALYTICS_DEFAULT_TOP_N" default:"10"`
	DefaultPeriods    int           `envconfig:"ORDERPULSE_ANALYTICS_DEFAULT_PERIODS" default:"3"`
	MetricTimeout     time.Duration `envconfig:"ORDERPULSE_ANALYTICS_METRIC_TIMEOUT" default:"10s"`
	StoreRetryBackoff time.Duration `envconfig:"ORDERPULSE_ANALYTICS_STORE_RETRY_BACKOFF" default:"250ms"`
	DashboardCacheTTL time.Duration `envconfig:"ORDERPULSE_ANALYTICS_DASHBOARD_CACHE_TTL" default:"60s"`
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
