package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevSigningKey is used for session tokens when none is configured outside production.
const DevSigningKey = "dev-secret-key-change-in-production"

// Config is the process configuration.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	MongoDB MongoConfig   `mapstructure:"mongodb"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	Session SessionConfig `mapstructure:"session"`
	Permit  PermitConfig  `mapstructure:"permit"`
	Log     LogConfig     `mapstructure:"log"`
}

type AppConfig struct {
	Environment string `mapstructure:"environment"`
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// MongoConfig configures the user and session store. An empty URI selects the in-memory store.
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// RedisConfig configures the permit cache. An empty URL disables caching.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LedgerConfig points at the License contract. An empty RPC URL selects the in-memory ledger.
type LedgerConfig struct {
	RPCURL           string        `mapstructure:"rpc_url"`
	LicenseAddress   string        `mapstructure:"license_address"`
	Timeout          time.Duration `mapstructure:"timeout"`
	// consecutive outages before the circuit opens, and how long it stays open
	BreakerThreshold int           `mapstructure:"breaker_threshold"`
	BreakerCooldown  time.Duration `mapstructure:"breaker_cooldown"`
}

type SessionConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	Issuer     string        `mapstructure:"issuer"`
	TTL        time.Duration `mapstructure:"ttl"`
}

type PermitConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

var defaults = map[string]any{
	"app.environment":          "development",
	"server.addr":              ":8080",
	"server.read_timeout":      "10s",
	"server.write_timeout":     "15s",
	"server.shutdown_timeout":  "10s",
	"mongodb.uri":              "",
	"mongodb.database":         "licensing",
	"mongodb.connect_timeout":  "10s",
	"redis.url":                "",
	"redis.pool_size":          10,
	"redis.min_idle_conns":     2,
	"redis.dial_timeout":       "5s",
	"redis.read_timeout":       "3s",
	"redis.write_timeout":      "3s",
	"ledger.rpc_url":           "",
	"ledger.license_address":   "",
	"ledger.timeout":           "10s",
	"ledger.breaker_threshold": 5,
	"ledger.breaker_cooldown":  "10s",
	"session.signing_key":      "",
	"session.issuer":           "licensing",
	"session.ttl":              "24h",
	"permit.cache_ttl":         "5m",
	"log.level":                "info",
	"log.format":               "json",
}

// Load reads an optional .env file, an optional config.yaml and the environment,
// in increasing order of precedence. Keys map to variables by upper-casing and
// replacing dots, so ledger.rpc_url is LEDGER_RPC_URL.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// LICENSE_ADDRESS is accepted as a shorthand.
	if err := v.BindEnv("ledger.license_address", "LEDGER_LICENSE_ADDRESS", "LICENSE_ADDRESS"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("app.environment", "APP_ENVIRONMENT", "APP_ENV"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Session.SigningKey == "" && !cfg.IsProduction() {
		cfg.Session.SigningKey = DevSigningKey
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Session.SigningKey == "" {
		return errors.New("session.signing_key is required in production")
	}
	if c.IsProduction() && c.Session.SigningKey == DevSigningKey {
		return errors.New("session.signing_key must be changed in production")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.Ledger.RPCURL != "" && !common.IsHexAddress(c.Ledger.LicenseAddress) {
		return fmt.Errorf("ledger.license_address %q is not a contract address", c.Ledger.LicenseAddress)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
