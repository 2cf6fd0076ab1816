package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines client configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Server  ServerConfig  `yaml:"server"`
	Web     WebConfig     `yaml:"web"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

type BackendConfig struct {
	BaseURL string `yaml:"base_url" env:"NOTEBOARD_BACKEND_URL" validate:"required,http_url"`
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration `yaml:"timeout" env:"NOTEBOARD_BACKEND_TIMEOUT" validate:"gte=0"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"NOTEBOARD_SERVER_HOST"`
	Port int    `yaml:"port" env:"NOTEBOARD_SERVER_PORT" validate:"min=1,max=65535"`
}

type WebConfig struct {
	PageTTL time.Duration `yaml:"page_ttl" env:"NOTEBOARD_PAGE_TTL" validate:"gt=0"`
}

type UIConfig struct {
	NoticeTTL time.Duration `yaml:"notice_ttl" env:"NOTEBOARD_NOTICE_TTL" validate:"gt=0"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"NOTEBOARD_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Path  string `yaml:"path" env:"NOTEBOARD_LOG_PATH"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:5000/api",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Web: WebConfig{
			PageTTL: 30 * time.Minute,
		},
		UI: UIConfig{
			NoticeTTL: 3 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and
// environment variables. A .env file in the working directory is loaded
// into the environment first.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("NOTEBOARD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func Validate(cfg Config) error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
