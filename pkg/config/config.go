package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "itstock"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Sheets   SheetsConfig
	Cache    CacheConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ITSTOCK_APP_ENV" default:"dev"`
	Port         string `envconfig:"ITSTOCK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ITSTOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ITSTOCK_LOG_WARN_STACK" default:"false"`
	Timezone     string `envconfig:"ITSTOCK_TIMEZONE" default:"Asia/Bangkok"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SheetsConfig locates the backing spreadsheet and the service-account
// credentials used to reach it. Credential sources are ranked: embedded,
// then env JSON, then file.
type SheetsConfig struct {
	SpreadsheetID          string `envconfig:"ITSTOCK_SHEETS_SPREADSHEET_ID" required:"true"`
	EmbeddedCredentialsB64 string `envconfig:"ITSTOCK_SHEETS_EMBEDDED_CREDENTIALS_B64"`
	CredentialsJSON        string `envconfig:"ITSTOCK_SHEETS_CREDENTIALS_JSON"`
	CredentialsFile        string `envconfig:"ITSTOCK_SHEETS_CREDENTIALS_FILE" default:"service_account.json"`
	DefaultAdminPassword   string `envconfig:"ITSTOCK_DEFAULT_ADMIN_PASSWORD" default:"admin123"`
}

type CacheConfig struct {
	Backend string        `envconfig:"ITSTOCK_CACHE_BACKEND" default:"memory"`
	TTL     time.Duration `envconfig:"ITSTOCK_CACHE_TTL" default:"60s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ITSTOCK_REDIS_URL"`
	Address      string        `envconfig:"ITSTOCK_REDIS_ADDR"`
	Password     string        `envconfig:"ITSTOCK_REDIS_PASSWORD"`
	DB           int           `envconfig:"ITSTOCK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ITSTOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ITSTOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ITSTOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ITSTOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ITSTOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"ITSTOCK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ITSTOCK_JWT_ISSUER" default:"itstock"`
	ExpirationMinutes int    `envconfig:"ITSTOCK_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ITSTOCK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ITSTOCK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ITSTOCK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ITSTOCK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ITSTOCK_ARGON_KEY_LEN" default:"32"`
}
