package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// TrustProxy takes the client IP from X-Forwarded-For instead of the
	// socket address. Enable only behind a trusted reverse proxy.
	TrustProxy bool `env:"TRUST_PROXY, default=false"`

	Admin     AdminConfig
	CORS      CORSConfig
	Storage   StorageConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Notify    NotifyConfig
}

type AdminConfig struct {
	Secret       string        `env:"ADMIN_SECRET, required"`
	TokenTTL     time.Duration `env:"ADMIN_TOKEN_TTL,     default=12h"`
	ProtectLists bool          `env:"ADMIN_PROTECT_LISTS, default=true"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:3000"`
}

type StorageConfig struct {
	Backend string `env:"STORAGE_BACKEND, default=file"`
	DataDir string `env:"DATA_DIR,        default=./data"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=stylematch"`
}

// RedisConfig is optional. An empty Addr keeps rate limiting in process and
// disables email claims.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type RateLimitConfig struct {
	Window  time.Duration `env:"RATE_LIMIT_WINDOW,  default=15m"`
	General int           `env:"RATE_LIMIT_GENERAL, default=100"`
	Submit  int           `env:"RATE_LIMIT_SUBMIT,  default=5"`
}

// NotifyConfig enables the SES notifier when Region, From and To are all set.
type NotifyConfig struct {
	SESRegion          string   `env:"NOTIFY_SES_REGION"`
	SESAccessKeyID     string   `env:"NOTIFY_SES_ACCESS_KEY_ID"`
	SESSecretAccessKey string   `env:"NOTIFY_SES_SECRET_ACCESS_KEY"`
	From               string   `env:"NOTIFY_FROM"`
	To                 []string `env:"NOTIFY_TO"`
	MaxPerSecond       float64  `env:"NOTIFY_MAX_PER_SECOND, default=1"`
}

func (n NotifyConfig) SESEnabled() bool {
	return n.SESRegion != "" && n.From != "" && len(n.To) > 0
}

// IsDevelopment reports whether pretty console logging should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l. Tests pass envconfig.MapLookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.CORS.AllowedOrigins = trimAll(c.CORS.AllowedOrigins)
	c.Notify.To = trimAll(c.Notify.To)
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Admin.Secret) == "" {
		errs = append(errs, errors.New("ADMIN_SECRET must not be blank"))
	}
	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.DataDir == "" {
			errs = append(errs, errors.New("DATA_DIR is required for the file backend"))
		}
	case BackendMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			errs = append(errs, errors.New("MONGO_URI and MONGO_DB are required for the mongo backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND %q must be %q or %q", c.Storage.Backend, BackendFile, BackendMongo))
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must list at least one origin"))
	}
	for _, o := range c.CORS.AllowedOrigins {
		if o == "*" {
			errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must list explicit origins, not *"))
		}
	}
	if c.RateLimit.Window <= 0 || c.RateLimit.General <= 0 || c.RateLimit.Submit <= 0 {
		errs = append(errs, errors.New("rate limit window and bounds must be positive"))
	}
	if c.Admin.TokenTTL <= 0 {
		errs = append(errs, errors.New("ADMIN_TOKEN_TTL must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func trimAll(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
