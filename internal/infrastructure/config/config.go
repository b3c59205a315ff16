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

const (
	EnvProduction = "production"

	StoreFile  = "file"
	StoreMongo = "mongo"

	minSecretLength = 16
)

type Config struct {
	Port       string        `env:"PORT,        default=3000"`
	Env        string        `env:"ENV,         default=development"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret  string        `env:"JWT_SECRET,  required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=168h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
	CORSOrigin string        `env:"CORS_ORIGIN, default=http://localhost:5173"`

	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
	Login LoginConfig
}

type StoreConfig struct {
	Driver  string `env:"STORE_DRIVER, default=file"`
	DataDir string `env:"DATA_DIR,     default=./data"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=stargazing"`
}

type RedisConfig struct {
	Enabled bool   `env:"REDIS_ENABLED, default=false"`
	Addr    string `env:"REDIS_ADDR,    default=localhost:6379"`
	DB      int    `env:"REDIS_DB,      default=0"`

	// Timeout bounds dial, read and write so a slow Redis delays a login
	// by at most this much before the throttle fails open.
	Timeout  time.Duration `env:"REDIS_TIMEOUT,   default=500ms"`
	PoolSize int           `env:"REDIS_POOL_SIZE, default=10"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

// IsProduction reports whether the deployment is production; it controls the
// Secure cookie attribute and log format.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate rejects configurations the server cannot safely start with.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("config: JWT_SECRET must be at least %d bytes", minSecretLength)
	}
	switch c.Store.Driver {
	case StoreFile, StoreMongo:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}
	return nil
}

// LoadDotEnv preloads variables from path when the file exists. Variables
// already present in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// Load reads configuration from environment variables using go-envconfig and
// validates it.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
