// Package config manages environment variables.
//
// It reads variables from the `.env` file (if present), layers them over
// built-in defaults, loads them into structured Go types and validates that
// required values are present so they can be reused across the application
// runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any of the code below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix YAMDB_. Keys are lowercased and the
	prefix removed. Nesting uses "." or a double underscore:

	  YAMDB_SERVER.PORT    -> server.port -> Config.Server.Port
	  YAMDB_SERVER__PORT   -> server.port -> Config.Server.Port

	Single underscores are kept as-is, so YAMDB_DATABASE__SSL_MODE maps to
	database.ssl_mode.
*/

// EnvPrefix is the prefix shared by every environment variable the service reads.
const EnvPrefix = "YAMDB_"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Pagination    PaginationConfig     `koanf:"pagination"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs/traces and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
	// AuthRateLimit is the sustained requests-per-second budget per client IP
	// for the /auth endpoints. AuthRateBurst is the bucket size.
	AuthRateLimit float64 `koanf:"auth_rate_limit" validate:"gt=0"`
	AuthRateBurst int     `koanf:"auth_rate_burst" validate:"min=1"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// DSN builds the postgres URL for this database.
//
// The password is URL-escaped so characters like ":" or "@" don't break the
// URL structure, and host+port are joined with IPv6 bracket handling.
func (d DatabaseConfig) DSN() string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		hostPort,
		d.Name,
		d.SSLMode,
	)
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores token signing and confirmation code settings.
type AuthConfig struct {
	// SecretKey signs issued access tokens (HS256). Must be at least 32 characters.
	SecretKey string `koanf:"secret_key" validate:"required,min=32"`

	// TokenTTL is the access token lifetime in hours.
	TokenTTL int `koanf:"token_ttl" validate:"required,min=1"`

	// CodeLength is the number of digits in a generated confirmation code.
	CodeLength int `koanf:"code_length" validate:"required,min=6,max=32"`
}

// IntegrationConfig holds third-party service credentials.
//
// An empty ResendAPIKey disables outbound email; messages are logged and dropped.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from" validate:"required"`
}

// PaginationConfig controls list endpoint page sizes.
type PaginationConfig struct {
	PageSize int `koanf:"page_size" validate:"min=1,max=100"`
}

// defaultConfig is the bottom layer of configuration. Environment variables
// are loaded on top of it, so every value here can be overridden.
//
// Connection credentials and secrets are deliberately left empty so
// validation fails when they are not provided.
func defaultConfig() Config {
	return Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			AuthRateLimit:      1,
			AuthRateBurst:      5,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 300,
		},
		Redis: RedisConfig{Address: "localhost:6379"},
		Auth: AuthConfig{
			TokenTTL:   24,
			CodeLength: 8,
		},
		Integration: IntegrationConfig{
			EmailFrom: "YaMDb <noreply@yamdb.local>",
		},
		Pagination: PaginationConfig{
			PageSize: 10,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey maps a raw env var name to a koanf key path.
//
//	YAMDB_DATABASE__SSL_MODE -> database.ssl_mode
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// listKeys are the settings read from a single comma-separated variable.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

// envValue maps a raw env var to its key path and, for list settings, splits
// the value on commas.
//
//	YAMDB_SERVER__CORS_ALLOWED_ORIGINS=https://a.test,https://b.test
//	  -> server.cors_allowed_origins = [https://a.test https://b.test]
func envValue(name, value string) (string, any) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// LoadConfig loads configuration from defaults and environment variables,
// unmarshals it into Config, validates it and returns the result.
//
// Behavior summary:
//   - Loads built-in defaults
//   - Loads env vars with prefix YAMDB_ on top
//   - Unmarshals into Config and validates struct tags
//   - Injects default observability if it ended up missing
//   - Forces observability service name + environment
//   - Runs the observability block's own Validate
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("could not load default config: %w", err)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Telemetry always reports under the same service name, and the
	// environment label always follows primary.env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
