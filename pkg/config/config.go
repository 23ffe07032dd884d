package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable read by the service.
	EnvPrefix = "FREIGHTOPS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv = "FREIGHTOPS_APP_ENV"
	EnvDBDSN  = "FREIGHTOPS_DB_DSN"
	EnvDBHost = "FREIGHTOPS_DB_HOST"
	EnvDBUser = "FREIGHTOPS_DB_USER"
	EnvDBName = "FREIGHTOPS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Ops           OpsConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
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
	Env          string   `envconfig:"FREIGHTOPS_APP_ENV" required:"true"`
	Port         string   `envconfig:"FREIGHTOPS_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"FREIGHTOPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"FREIGHTOPS_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"FREIGHTOPS_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FREIGHTOPS_DB_DSN"`
	Driver string `envconfig:"FREIGHTOPS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FREIGHTOPS_DB_HOST"`
	LegacyPort     int    `envconfig:"FREIGHTOPS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FREIGHTOPS_DB_USER"`
	LegacyPassword string `envconfig:"FREIGHTOPS_DB_PASSWORD"`
	LegacyName     string `envconfig:"FREIGHTOPS_DB_NAME"`
	LegacySSLMode  string `envconfig:"FREIGHTOPS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FREIGHTOPS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FREIGHTOPS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FREIGHTOPS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FREIGHTOPS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FREIGHTOPS_REDIS_URL"`
	Address      string        `envconfig:"FREIGHTOPS_REDIS_ADDR"`
	Password     string        `envconfig:"FREIGHTOPS_REDIS_PASSWORD"`
	DB           int           `envconfig:"FREIGHTOPS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FREIGHTOPS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FREIGHTOPS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FREIGHTOPS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FREIGHTOPS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FREIGHTOPS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FREIGHTOPS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FREIGHTOPS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FREIGHTOPS_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTTLHours   int    `envconfig:"FREIGHTOPS_JWT_REFRESH_TTL_HOURS" default:"720"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token lifetime stored in Redis.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTTLHours <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(j.RefreshTTLHours) * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FREIGHTOPS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FREIGHTOPS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FREIGHTOPS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FREIGHTOPS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FREIGHTOPS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"FREIGHTOPS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"FREIGHTOPS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"FREIGHTOPS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FREIGHTOPS_AUTO_MIGRATE" default:"false"`
}

// OpsConfig carries operations-file domain settings that are deployment
// specific rather than data driven.
type OpsConfig struct {
	// ClosedStatusID designates which op_status counts as "closed" when the
	// statistics endpoint splits open vs closed files.
	ClosedStatusID int `envconfig:"FREIGHTOPS_OPS_CLOSED_STATUS_ID" default:"5"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"FREIGHTOPS_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"FREIGHTOPS_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"FREIGHTOPS_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	OpsEventsTopic string `envconfig:"FREIGHTOPS_PUBSUB_OPS_EVENTS_TOPIC" default:"freightops-ops-events"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"FREIGHTOPS_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"FREIGHTOPS_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"FREIGHTOPS_OUTBOX_MAX_ATTEMPTS" default:"10"`
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
