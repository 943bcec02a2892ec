package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Auth verification modes. "verify" enforces signature and expiry checks;
// "trust" decodes the token without any verification and exists only for
// non-production setups sitting behind a gateway that already validated the
// token.
const (
	AuthModeVerify = "verify"
	AuthModeTrust  = "trust"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Server    ServerConfig
	Storage   StorageConfig
	Provision ProvisionConfig
}

// DatabaseConfig holds PostgreSQL server settings. The same host and
// credentials serve the global database and every tenant database; only the
// database name differs per connection.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	GlobalDB string
	SSLMode  string
	MaxConns int
}

// RedisConfig holds Redis connection settings. An empty Addr disables the
// provisioning lock; the unique constraint on tenant.tenant_id remains the
// backstop against duplicate provisioning.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// AuthConfig holds bearer-token verification settings.
type AuthConfig struct {
	Mode   string
	Secret string //nolint:gosec // G117: JWT signing secret config
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// StorageConfig holds S3 object storage settings. An empty Bucket disables
// uploads (tenant logos and flow files are then rejected).
type StorageConfig struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string //nolint:gosec // G117: S3 credential config
}

// ProvisionConfig bounds the slow provisioning steps.
type ProvisionConfig struct {
	LockTTL     time.Duration
	StepTimeout time.Duration
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("FLOWMASTER_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("FLOWMASTER_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("FLOWMASTER_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("FLOWMASTER_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("FLOWMASTER_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	lockTTL, err := getEnvDuration("FLOWMASTER_PROVISION_LOCK_TTL", 2*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	stepTimeout, err := getEnvDuration("FLOWMASTER_PROVISION_STEP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("FLOWMASTER_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("FLOWMASTER_DB_USER", "flowmaster"),
			Password: getEnv("FLOWMASTER_DB_PASSWORD", ""),
			GlobalDB: getEnv("FLOWMASTER_DB_NAME", "flowmaster_dev"),
			SSLMode:  getEnv("FLOWMASTER_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("FLOWMASTER_REDIS_ADDR", ""),
			Password: getEnv("FLOWMASTER_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			Mode:   getEnv("FLOWMASTER_AUTH_MODE", AuthModeVerify),
			Secret: getEnv("FLOWMASTER_AUTH_SECRET", ""),
		},
		Server: ServerConfig{
			Addr:         getEnv("FLOWMASTER_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  getEnvList("FLOWMASTER_CORS_ORIGINS", []string{"http://localhost:5173"}),
		},
		Storage: StorageConfig{
			Region:          getEnv("FLOWMASTER_S3_REGION", ""),
			Bucket:          getEnv("FLOWMASTER_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		Provision: ProvisionConfig{
			LockTTL:     lockTTL,
			StepTimeout: stepTimeout,
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	switch c.Auth.Mode {
	case AuthModeVerify:
		if c.Auth.Secret == "" {
			return errors.New("FLOWMASTER_AUTH_SECRET is required in verify mode")
		}
		if len(c.Auth.Secret) < 32 {
			return errors.New("FLOWMASTER_AUTH_SECRET must be at least 32 characters")
		}
	case AuthModeTrust:
		log.Warn().Msg("FLOWMASTER_AUTH_MODE=trust accepts unverified tokens; never use in production")
	default:
		return fmt.Errorf("FLOWMASTER_AUTH_MODE must be %q or %q, got %q", AuthModeVerify, AuthModeTrust, c.Auth.Mode)
	}

	if c.Database.SSLMode == "disable" {
		log.Warn().Msg("FLOWMASTER_DB_SSLMODE=disable is insecure for production; set to 'require' or 'verify-full'")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("FLOWMASTER_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("FLOWMASTER_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("FLOWMASTER_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("FLOWMASTER_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Provision.LockTTL <= 0 {
		return fmt.Errorf("FLOWMASTER_PROVISION_LOCK_TTL must be positive, got %s", c.Provision.LockTTL)
	}
	if c.Provision.StepTimeout <= 0 {
		return fmt.Errorf("FLOWMASTER_PROVISION_STEP_TIMEOUT must be positive, got %s", c.Provision.StepTimeout)
	}

	return nil
}

// GlobalDSN returns the connection string for the global database.
func (c *DatabaseConfig) GlobalDSN() string {
	return c.dsn(c.GlobalDB)
}

// TenantDSN returns the connection string for one tenant database. dbName
// must already be normalized via domain.NormalizeTenantID.
func (c *DatabaseConfig) TenantDSN(dbName string) string {
	return c.dsn(dbName)
}

func (c *DatabaseConfig) dsn(dbName string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + dbName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
