package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the platform reads.
	EnvPrefix = "DUKAAN"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "DUKAAN_DB_DSN"
	EnvDBHost = "DUKAAN_DB_HOST"
	EnvDBUser = "DUKAAN_DB_USER"
	EnvDBName = "DUKAAN_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	CORS     CORSConfig
	Cron     CronConfig
	Checkout CheckoutConfig
	Flags    FeatureFlagsConfig

	AuthRateLimit AuthRateLimitConfig
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
	Env          string `envconfig:"DUKAAN_APP_ENV" default:"development"`
	Port         string `envconfig:"DUKAAN_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"DUKAAN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DUKAAN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DUKAAN_DB_DSN"`
	Driver string `envconfig:"DUKAAN_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"DUKAAN_DB_HOST"`
	Port     int    `envconfig:"DUKAAN_DB_PORT" default:"5432"`
	User     string `envconfig:"DUKAAN_DB_USER"`
	Password string `envconfig:"DUKAAN_DB_PASSWORD"`
	Name     string `envconfig:"DUKAAN_DB_NAME"`
	SSLMode  string `envconfig:"DUKAAN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DUKAAN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DUKAAN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DUKAAN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DUKAAN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DUKAAN_REDIS_URL"`
	Address      string        `envconfig:"DUKAAN_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"DUKAAN_REDIS_PASSWORD"`
	DB           int           `envconfig:"DUKAAN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DUKAAN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DUKAAN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DUKAAN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DUKAAN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DUKAAN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"DUKAAN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DUKAAN_JWT_ISSUER" default:"dukaan"`
	ExpirationMinutes int    `envconfig:"DUKAAN_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DUKAAN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DUKAAN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DUKAAN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DUKAAN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DUKAAN_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DUKAAN_CORS_ALLOWED_ORIGINS" default:"*"`
}

type CronConfig struct {
	StaleCartMaxAge time.Duration `envconfig:"DUKAAN_CRON_STALE_CART_MAX_AGE" default:"720h"`
	SweepInterval   time.Duration `envconfig:"DUKAAN_CRON_SWEEP_INTERVAL" default:"1h"`
	LockTTL         time.Duration `envconfig:"DUKAAN_CRON_LOCK_TTL" default:"5m"`
}

type CheckoutConfig struct {
	IdempotencyTTL time.Duration `envconfig:"DUKAAN_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
	// MaxOrderAttempts bounds retries of the whole order-creation step when
	// the order number collides at insert time.
	MaxOrderAttempts int `envconfig:"DUKAAN_CHECKOUT_MAX_ORDER_ATTEMPTS" default:"3"`
}

// AuthRateLimitConfig throttles the credential endpoints per client IP and
// per target email. A zero limit disables the corresponding check.
type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"DUKAAN_RL_LOGIN_WINDOW" default:"5m"`
	LoginIPLimit       int           `envconfig:"DUKAAN_RL_LOGIN_IP_LIMIT" default:"30"`
	LoginEmailLimit    int           `envconfig:"DUKAAN_RL_LOGIN_EMAIL_LIMIT" default:"10"`
	RegisterWindow     time.Duration `envconfig:"DUKAAN_RL_REGISTER_WINDOW" default:"1h"`
	RegisterIPLimit    int           `envconfig:"DUKAAN_RL_REGISTER_IP_LIMIT" default:"15"`
	RegisterEmailLimit int           `envconfig:"DUKAAN_RL_REGISTER_EMAIL_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DUKAAN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DUKAAN_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
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
