package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"coinbot/database"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Storage backends
const (
	StorageBackendFile     = "file"
	StorageBackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string

	// Storage configuration
	StorageBackend string // "file" or "postgres"
	DataDir        string // Directory for the JSON backend
	DatabaseURL    string
	DatabaseName   string

	DatabaseMaxConns        int32         // 0 keeps the pgxpool default
	DatabaseMaxConnLifetime time.Duration // 0 keeps the pgxpool default

	// Economy configuration
	CatalogFile      string // Optional YAML catalog seeded at startup
	DefaultPrefix    string
	ReferralBonus    int64
	AutosaveInterval time.Duration
	InterestHour     int // Hour in UTC when the interest sweep runs (0-23)
	NukeTimeout      time.Duration

	// NATS configuration
	NATSServers string // Comma-separated; empty disables the event bus

	// Debug API configuration
	DebugAPIPort int // 0 disables the debug API

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelServiceName          string
	OTelExporterType         string // "console", "otlp" or "none"
	OTelOTLPEndpoint         string
	OTelExportIntervalMillis int

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// Already set, possibly by tests
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// Load reads configuration without touching the global instance
func Load() (*Config, error) {
	return load()
}

// GetDatabaseURL combines the base URL and the database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// UsesPostgres reports whether the PostgreSQL backend is selected
func (c *Config) UsesPostgres() bool {
	return c.StorageBackend == StorageBackendPostgres
}

// NATSServerList splits NATSServers into trimmed addresses
func (c *Config) NATSServerList() []string {
	var servers []string
	for _, s := range strings.Split(c.NATSServers, ",") {
		if s = strings.TrimSpace(s); s != "" {
			servers = append(servers, s)
		}
	}
	return servers
}

func load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Failed to read .env file")
	}

	config := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),

		StorageBackend: strings.ToLower(getEnvWithDefault("STORAGE_BACKEND", StorageBackendFile)),
		DataDir:        getEnvWithDefault("DATA_DIR", "data"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabaseName:   os.Getenv("DATABASE_NAME"),

		CatalogFile:      os.Getenv("CATALOG_FILE"),
		DefaultPrefix:    getEnvWithDefault("DEFAULT_PREFIX", "!"),
		ReferralBonus:    50,
		AutosaveInterval: 5 * time.Minute,
		InterestHour:     0,
		NukeTimeout:      60 * time.Second,

		NATSServers: os.Getenv("NATS_SERVERS"),

		DebugAPIPort: 8899,

		OTelEnabled:              os.Getenv("OTEL_ENABLED") == "true",
		OTelServiceName:          getEnvWithDefault("OTEL_SERVICE_NAME", "coinbot"),
		OTelExporterType:         getEnvWithDefault("OTEL_EXPORTER_TYPE", "console"),
		OTelOTLPEndpoint:         getEnvWithDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelExportIntervalMillis: 60000,

		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	var err error
	if config.ReferralBonus, err = getEnvInt64("REFERRAL_BONUS", config.ReferralBonus); err != nil {
		return nil, err
	}
	if config.AutosaveInterval, err = getEnvDuration("AUTOSAVE_INTERVAL", config.AutosaveInterval); err != nil {
		return nil, err
	}
	if config.NukeTimeout, err = getEnvDuration("NUKE_TIMEOUT", config.NukeTimeout); err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt64("DATABASE_MAX_CONNS", 0)
	if err != nil {
		return nil, err
	}
	if maxConns < 0 || maxConns > math.MaxInt32 {
		return nil, fmt.Errorf("DATABASE_MAX_CONNS must be between 0 and %d, got %d", math.MaxInt32, maxConns)
	}
	config.DatabaseMaxConns = int32(maxConns)
	if config.DatabaseMaxConnLifetime, err = getEnvDuration("DATABASE_MAX_CONN_LIFETIME", 0); err != nil {
		return nil, err
	}
		hour, err := getEnvInt64("INTEREST_HOUR", int64(config.InterestHour))
	if err != nil {
		return nil, err
	}
	config.InterestHour = int(hour)
	port, err := getEnvInt64("DEBUG_API_PORT", int64(config.DebugAPIPort))
	if err != nil {
		return nil, err
	}
	config.DebugAPIPort = int(port)
	interval, err := getEnvInt64("OTEL_EXPORT_INTERVAL_MILLIS", int64(config.OTelExportIntervalMillis))
	if err != nil {
		return nil, err
	}
	config.OTelExportIntervalMillis = int(interval)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks required settings and value ranges
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageBackendFile, StorageBackendPostgres:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageBackendFile, StorageBackendPostgres, c.StorageBackend)
	}
	if c.InterestHour < 0 || c.InterestHour > 23 {
		return fmt.Errorf("INTEREST_HOUR must be between 0 and 23, got %d", c.InterestHour)
	}
	if c.ReferralBonus < 0 {
		return fmt.Errorf("REFERRAL_BONUS cannot be negative")
	}
	if c.AutosaveInterval <= 0 {
		return fmt.Errorf("AUTOSAVE_INTERVAL must be positive")
	}
	if c.NukeTimeout <= 0 {
		return fmt.Errorf("NUKE_TIMEOUT must be positive")
	}
	if c.DatabaseMaxConns < 0 || c.DatabaseMaxConnLifetime < 0 {
		return fmt.Errorf("database pool limits cannot be negative")
	}

	if c.Environment == "test" {
		return nil
	}
	if c.UsesPostgres() && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for the postgres backend")
	}
	return nil
}

// DatabasePoolOptions returns the configured connection pool limits
func (c *Config) DatabasePoolOptions() database.PoolOptions {
	return database.PoolOptions{
		MaxConns:        c.DatabaseMaxConns,
		MaxConnLifetime: c.DatabaseMaxConnLifetime,
	}
}

// ValidateForBot checks the settings only the running bot needs, so
// maintenance commands work without a token
func (c *Config) ValidateForBot() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90")
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		DiscordToken:             "test-token",
		StorageBackend:           StorageBackendFile,
		DataDir:                  "data",
		DefaultPrefix:            "!",
		ReferralBonus:            50,
		AutosaveInterval:         5 * time.Minute,
		NukeTimeout:              60 * time.Second,
		DebugAPIPort:             0,
		OTelServiceName:          "coinbot",
		OTelExporterType:         "none",
		OTelExportIntervalMillis: 60000,
		LogLevel:                 "info",
		Environment:              "test",
	}
}
