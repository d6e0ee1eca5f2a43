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
	Password      PasswordConfig
	Challenge     ChallengeConfig
	Feed          FeedConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"COINQUEST_APP_ENV" required:"true"`
	Port         string `envconfig:"COINQUEST_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"COINQUEST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COINQUEST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"COINQUEST_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"COINQUEST_DB_DSN"`
	Driver string `envconfig:"COINQUEST_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"COINQUEST_DB_HOST"`
	LegacyPort     int    `envconfig:"COINQUEST_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"COINQUEST_DB_USER"`
	LegacyPassword string `envconfig:"COINQUEST_DB_PASSWORD"`
	LegacyName     string `envconfig:"COINQUEST_DB_NAME"`
	LegacySSLMode  string `envconfig:"COINQUEST_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COINQUEST_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"COINQUEST_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"COINQUEST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COINQUEST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"COINQUEST_REDIS_URL" required:"true"`
	Address      string        `envconfig:"COINQUEST_REDIS_ADDR"`
	Password     string        `envconfig:"COINQUEST_REDIS_PASSWORD"`
	DB           int           `envconfig:"COINQUEST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COINQUEST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COINQUEST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COINQUEST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COINQUEST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COINQUEST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"COINQUEST_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"COINQUEST_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"COINQUEST_JWT_EXPIRATION_MINUTES" default:"1440"`
	RefreshTokenDays  int    `envconfig:"COINQUEST_JWT_REFRESH_TOKEN_DAYS" default:"30"`
}

// RefreshTokenTTL converts the configured refresh window into a duration.
func (c JWTConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenDays) * 24 * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"COINQUEST_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"COINQUEST_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"COINQUEST_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"COINQUEST_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"COINQUEST_ARGON_KEY_LEN" default:"32"`
}

// ChallengeConfig tunes the friend-challenge lifecycle.
type ChallengeConfig struct {
	AcceptWindow    time.Duration `envconfig:"COINQUEST_CHALLENGE_ACCEPT_WINDOW" default:"24h"`
	MinWager        int           `envconfig:"COINQUEST_CHALLENGE_MIN_WAGER" default:"1"`
	MaxDays         int           `envconfig:"COINQUEST_CHALLENGE_MAX_DAYS" default:"30"`
	SweepInterval   time.Duration `envconfig:"COINQUEST_CHALLENGE_SWEEP_INTERVAL" default:"10m"`
	StartingBalance int           `envconfig:"COINQUEST_STARTING_BALANCE" default:"100"`
}

// FeedConfig caps the per-user activity feed kept in Redis.
type FeedConfig struct {
	MaxEntries int64 `envconfig:"COINQUEST_FEED_MAX_ENTRIES" default:"100"`
}

// AuthRateLimitConfig throttles credential endpoints per IP and per email.
type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"COINQUEST_RL_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit       int           `envconfig:"COINQUEST_RL_LOGIN_IP_LIMIT" default:"10"`
	LoginEmailLimit    int           `envconfig:"COINQUEST_RL_LOGIN_EMAIL_LIMIT" default:"5"`
	RegisterWindow     time.Duration `envconfig:"COINQUEST_RL_REGISTER_WINDOW" default:"1h"`
	RegisterIPLimit    int           `envconfig:"COINQUEST_RL_REGISTER_IP_LIMIT" default:"10"`
	RegisterEmailLimit int           `envconfig:"COINQUEST_RL_REGISTER_EMAIL_LIMIT" default:"3"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"COINQUEST_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"COINQUEST_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"COINQUEST_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"COINQUEST_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	ChallengeTopic        string `envconfig:"COINQUEST_PUBSUB_CHALLENGE_TOPIC" default:"cq-challenge-events"`
	ChallengeSubscription string `envconfig:"COINQUEST_PUBSUB_CHALLENGE_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int           `envconfig:"COINQUEST_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int           `envconfig:"COINQUEST_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int           `envconfig:"COINQUEST_OUTBOX_MAX_ATTEMPTS" default:"10"`
	IdempotencyTTL time.Duration `envconfig:"COINQUEST_OUTBOX_IDEMPOTENCY_TTL" default:"72h"`
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
