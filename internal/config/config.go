package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Env      string         // Env is the current environment: local, development, production.
	HTTP     HTTPConfig     // HTTP holds the API and monitoring listener configuration
	Storage  StorageConfig  // Storage selects the record store
	Postgres PostgresConfig // Postgres holds the database configuration, used only with the postgres store
}

// HTTPConfig struct holds the configuration of the API server and the monitoring server.
type HTTPConfig struct {
	Port            int           // Port is the API listener port.
	MonitoringPort  int           // MonitoringPort serves /metrics and /healthz.
	ShutdownTimeout time.Duration // ShutdownTimeout bounds graceful shutdown.
	AllowedOrigins  []string      // AllowedOrigins restricts CORS; empty allows every origin.
}

// StorageConfig struct holds the record store selection.
type StorageConfig struct {
	Driver string // Driver is either `memory` or `postgres`.
	Seed   bool   // Seed inserts the initial record into the memory store.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Dbname   string // Dbname is the name of the database.
}

// Load reads the configuration from an optional .env file, an optional YAML file pointed
// to by CONFIG_PATH and the environment, in increasing order of precedence.
func Load() (*Config, error) {
	// a missing .env is not an error, a broken one is
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	vpr := viper.New()

	vpr.SetDefault("env", "local")
	vpr.SetDefault("http.port", 3005)            //nolint:mnd // default API port
	vpr.SetDefault("http.monitoring_port", 8080) //nolint:mnd // default monitoring port
	vpr.SetDefault("http.shutdown_timeout", 10*time.Second)
	vpr.SetDefault("http.allowed_origins", "")
	vpr.SetDefault("storage.driver", StorageMemory)
	vpr.SetDefault("storage.seed", true)
	vpr.SetDefault("postgres.port", "5432")

	bindings := map[string]string{
		"env":                   "APP_ENV",
		"http.port":             "PORT",
		"http.monitoring_port":  "MONITORING_PORT",
		"http.shutdown_timeout": "SHUTDOWN_TIMEOUT",
		"http.allowed_origins":  "CORS_ALLOWED_ORIGINS",
		"storage.driver":        "STORAGE_DRIVER",
		"storage.seed":          "STORAGE_SEED",
		"postgres.host":         "DB_HOST",
		"postgres.port":         "DB_PORT",
		"postgres.user":         "DB_USERNAME",
		"postgres.password":     "DB_PASSWORD",
		"postgres.db_name":      "DB_NAME",
	}
	for key, env := range bindings {
		if err := vpr.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		vpr.SetConfigFile(configPath)
		if err := vpr.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Env: vpr.GetString("env"),
		HTTP: HTTPConfig{
			Port:            vpr.GetInt("http.port"),
			MonitoringPort:  vpr.GetInt("http.monitoring_port"),
			ShutdownTimeout: vpr.GetDuration("http.shutdown_timeout"),
			AllowedOrigins:  splitOrigins(vpr.GetStringSlice("http.allowed_origins")),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(vpr.GetString("storage.driver")),
			Seed:   vpr.GetBool("storage.seed"),
		},
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoad loads the configuration and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic("config error: " + err.Error())
	}

	return cfg
}

func (c *Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: port %d is out of range", ErrInvalidConfig, c.HTTP.Port)
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Postgres.Host == "" || c.Postgres.Dbname == "" {
			return fmt.Errorf("%w: postgres storage requires host and db_name", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	return nil
}

// splitOrigins accepts both YAML lists and comma separated env values.
func splitOrigins(raw []string) []string {
	origins := []string{}
	for _, item := range raw {
		for _, origin := range strings.Split(item, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	return origins
}
