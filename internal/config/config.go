package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds application level configuration loaded from a config file, environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string

	AirtableURL     string
	AirtableBaseID  string
	AirtableAPIKey  string
	DrinkTable      string
	OrderTable      string
	AirtableTimeout time.Duration

	IdentitySecret        string
	IdentityPublicKeyFile string
	IdentityIssuer        string
	IdentityAudience      string

	RedisAddr      string
	RedisPassword  string
	IdempotencyTTL time.Duration

	AMQPURL      string
	AMQPExchange string

	CatalogTTL             time.Duration
	RefreshInterval        time.Duration
	WorkerPoolSize         int
	EventBuffer            int
	EnforceRequiredOptions bool
	ShutdownTimeout        time.Duration
	CORSAllowedOrigins     []string

	LogLevel string
	LogFile  string
}

const (
	defaultRunAddress      = ":8080"
	defaultAirtableURL     = "https://api.airtable.com/v0"
	defaultDrinkTable      = "Drink"
	defaultOrderTable      = "OrderDrink"
	defaultAirtableTimeout = 10 * time.Second
	defaultIdempotencyTTL  = 24 * time.Hour
	defaultAMQPExchange    = "drinkshop.orders"
	defaultRefreshInterval = 30 * time.Second
	defaultWorkerPoolSize  = 4
	defaultEventBuffer     = 64
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
)

// Load parses configuration from flags, environment variables and an optional CONFIG_FILE.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	if path := getString(lookup, "CONFIG_FILE", ""); path != "" {
		fromFile, err := fileLookup(path)
		if err != nil {
			return nil, err
		}
		lookup = layered(lookup, fromFile)
	}

	cfg := &Config{
		RunAddress:             getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:            getString(lookup, "DATABASE_URI", ""),
		AirtableURL:            getString(lookup, "AIRTABLE_URL", defaultAirtableURL),
		AirtableBaseID:         getString(lookup, "AIRTABLE_BASE_ID", ""),
		AirtableAPIKey:         getString(lookup, "AIRTABLE_API_KEY", ""),
		DrinkTable:             getString(lookup, "AIRTABLE_DRINK_TABLE", defaultDrinkTable),
		OrderTable:             getString(lookup, "AIRTABLE_ORDER_TABLE", defaultOrderTable),
		AirtableTimeout:        getDuration(lookup, "AIRTABLE_TIMEOUT", defaultAirtableTimeout),
		IdentitySecret:         getString(lookup, "IDENTITY_SECRET", ""),
		IdentityPublicKeyFile:  getString(lookup, "IDENTITY_PUBLIC_KEY_FILE", ""),
		IdentityIssuer:         getString(lookup, "IDENTITY_ISSUER", ""),
		IdentityAudience:       getString(lookup, "IDENTITY_AUDIENCE", ""),
		RedisAddr:              getString(lookup, "REDIS_ADDR", ""),
		RedisPassword:          getString(lookup, "REDIS_PASSWORD", ""),
		IdempotencyTTL:         getDuration(lookup, "IDEMPOTENCY_TTL", defaultIdempotencyTTL),
		AMQPURL:                getString(lookup, "AMQP_URL", ""),
		AMQPExchange:           getString(lookup, "AMQP_EXCHANGE", defaultAMQPExchange),
		CatalogTTL:             getDuration(lookup, "CATALOG_TTL", 0),
		RefreshInterval:        getDuration(lookup, "REFRESH_INTERVAL", defaultRefreshInterval),
		WorkerPoolSize:         getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		EventBuffer:            getInt(lookup, "EVENT_BUFFER", defaultEventBuffer),
		EnforceRequiredOptions: getBool(lookup, "ENFORCE_REQUIRED_OPTIONS", true),
		ShutdownTimeout:        getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		CORSAllowedOrigins:     getList(lookup, "CORS_ALLOWED_ORIGINS"),
		LogLevel:               getString(lookup, "LOG_LEVEL", defaultLogLevel),
		LogFile:                getString(lookup, "LOG_FILE", ""),
	}

	fs := flag.NewFlagSet("drinkshop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		refreshIntervalStr = cfg.RefreshInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		catalogTTLStr      = cfg.CatalogTTL.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AirtableURL, "airtable-url", cfg.AirtableURL, "Airtable API base URL")
	fs.StringVar(&cfg.AirtableBaseID, "airtable-base", cfg.AirtableBaseID, "Airtable base id")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address")
	fs.StringVar(&cfg.AMQPURL, "amqp", cfg.AMQPURL, "AMQP broker URL")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent refresh workers")
	fs.BoolVar(&cfg.EnforceRequiredOptions, "enforce-options", cfg.EnforceRequiredOptions, "Reject submits with unselected size, ice or sugar")
	fs.StringVar(&refreshIntervalStr, "refresh-interval", refreshIntervalStr, "Interval between order list refreshes")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&catalogTTLStr, "catalog-ttl", catalogTTLStr, "Menu cache lifetime, 0 keeps it forever")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RefreshInterval, err = time.ParseDuration(refreshIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid refresh interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.CatalogTTL, err = time.ParseDuration(catalogTTLStr); err != nil {
		return nil, fmt.Errorf("invalid catalog ttl: %w", err)
	}

	if cfg.AirtableAPIKey, err = readSecret(lookup, "AIRTABLE_API_KEY_FILE", cfg.AirtableAPIKey); err != nil {
		return nil, fmt.Errorf("read airtable api key file: %w", err)
	}

	if cfg.IdentitySecret, err = readSecret(lookup, "IDENTITY_SECRET_FILE", cfg.IdentitySecret); err != nil {
		return nil, fmt.Errorf("read identity secret file: %w", err)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = defaultEventBuffer
	}

	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = defaultRefreshInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.AirtableTimeout <= 0 {
		cfg.AirtableTimeout = defaultAirtableTimeout
	}

	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = defaultIdempotencyTTL
	}

	if cfg.CatalogTTL < 0 {
		cfg.CatalogTTL = 0
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.AirtableBaseID == "" {
		return nil, fmt.Errorf("airtable base id must be provided")
	}

	if cfg.AirtableAPIKey == "" {
		return nil, fmt.Errorf("airtable api key must be provided")
	}

	if cfg.IdentitySecret == "" && cfg.IdentityPublicKeyFile == "" {
		return nil, fmt.Errorf("identity secret or public key file must be provided")
	}

	return cfg, nil
}

// fileLookup exposes YAML keys as lower-cased environment names.
func fileLookup(path string) (envLookup, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load config file: %w", err)
	}

	return func(key string) (string, bool) {
		name := strings.ToLower(key)
		if !k.Exists(name) {
			return "", false
		}
		return k.String(name), true
	}, nil
}

func layered(primary, fallback envLookup) envLookup {
	return func(key string) (string, bool) {
		if v, ok := primary(key); ok && v != "" {
			return v, true
		}
		return fallback(key)
	}
}

func readSecret(lookup envLookup, key, current string) (string, error) {
	path, ok := lookup(key)
	if !ok || path == "" {
		return current, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

// getList splits a comma separated value, skipping blanks.
func getList(lookup envLookup, key string) []string {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	var result []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
