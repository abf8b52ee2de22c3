package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDSN          string `yaml:"db_dsn"`
	DBMaxOpenConns int    `yaml:"db_max_open_conns"`
	DBMaxIdleConns int    `yaml:"db_max_idle_conns"`

	ServerPort    string `yaml:"server_port"`
	SessionSecret string `yaml:"session_secret"`
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`

	LogLevel       string `yaml:"log_level"`
	WorkflowStrict bool   `yaml:"workflow_strict"`

	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

func defaults() *Config {
	return &Config{
		DBMaxOpenConns: 10,
		DBMaxIdleConns: 5,
		ServerPort:     "8080",
		TokenTTLHours:  24,
		LogLevel:       "info",
		WorkflowStrict: true,
		AdminEmail:     "admin@tracker.local",
		AdminPassword:  "Admin123!",
	}
}

// Load builds the configuration from defaults, an optional YAML file at
// path and the environment, in that order. A .env file in the working
// directory is loaded into the environment first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	str := map[string]*string{
		"DB_DSN":         &cfg.DBDSN,
		"SERVER_PORT":    &cfg.ServerPort,
		"SESSION_SECRET": &cfg.SessionSecret,
		"JWT_SECRET":     &cfg.JWTSecret,
		"LOG_LEVEL":      &cfg.LogLevel,
		"ADMIN_EMAIL":    &cfg.AdminEmail,
		"ADMIN_PASSWORD": &cfg.AdminPassword,
	}
	for key, dst := range str {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"TOKEN_TTL_HOURS":   &cfg.TokenTTLHours,
		"DB_MAX_OPEN_CONNS": &cfg.DBMaxOpenConns,
		"DB_MAX_IDLE_CONNS": &cfg.DBMaxIdleConns,
	}
	for key, dst := range ints {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}

	if v := strings.TrimSpace(os.Getenv("WORKFLOW_STRICT")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("WORKFLOW_STRICT: %w", err)
		}
		cfg.WorkflowStrict = b
	}
	return nil
}

func (c *Config) validate() error {
	var errs []error
	if c.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN is not set"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.TokenTTLHours <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL_HOURS must be positive"))
	}
	return errors.Join(errs...)
}
