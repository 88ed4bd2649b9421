package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Store backends.
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// Mail providers.
const (
	MailSMTP   = "smtp"
	MailResend = "resend"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	AppURL   string `env:"APP_URL,   default=http://localhost:3000"`

	// StoreBackend selects the persistence implementation: mongo or postgres.
	StoreBackend string `env:"STORE_BACKEND, default=mongo"`
	BcryptCost   int    `env:"BCRYPT_COST,   default=10"`

	Auth     AuthConfig
	Mongo    MongoConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Mail     MailConfig
	Notify   NotifyConfig
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET"`
	JWTTTL           time.Duration `env:"JWT_TTL,            default=24h"`
	ResetTokenSecret string        `env:"RESET_TOKEN_SECRET"`
	ResetTokenTTL    time.Duration `env:"RESET_TOKEN_TTL,    default=10m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	DB       int           `env:"REDIS_DB,       default=0"`
	Password string        `env:"REDIS_PASSWORD"`
	LockTTL  time.Duration `env:"LOCK_TTL,       default=5s"`
	LockWait time.Duration `env:"LOCK_WAIT,      default=2s"`
}

type MailConfig struct {
	Provider     string `env:"MAIL_PROVIDER,  default=smtp"`
	Domain       string `env:"MAIL_DOMAIN,    default=example.com"`
	SMTPHost     string `env:"SMTP_HOST,      default=localhost"`
	SMTPPort     int    `env:"SMTP_PORT,      default=587"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	ResendAPIKey string `env:"RESEND_API_KEY"`
}

type NotifyConfig struct {
	Workers int `env:"NOTIFY_WORKERS, default=4"`
	Buffer  int `env:"NOTIFY_BUFFER,  default=256"`
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads a .env file when one exists, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return process(ctx, envconfig.OsLookuper())
}

func process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field requirements envconfig cannot express.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.Auth.ResetTokenSecret == "" {
		return errors.New("config: RESET_TOKEN_SECRET is required")
	}
	switch c.StoreBackend {
	case BackendMongo:
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("config: POSTGRES_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.Mail.Provider {
	case MailSMTP:
	case MailResend:
		if c.Mail.ResendAPIKey == "" {
			return errors.New("config: RESEND_API_KEY is required for the resend provider")
		}
	default:
		return fmt.Errorf("config: unknown MAIL_PROVIDER %q", c.Mail.Provider)
	}
	return nil
}
