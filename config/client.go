package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// ClientConfig holds the settings of the tracker CLI. The base address comes
// from the command line; the rest from the environment.
type ClientConfig struct {
	BaseAddress string `validate:"required,http_url"`
	LogLevel    string `env:"TRACKER_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFormat   string `env:"TRACKER_LOG_FORMAT" env-default:"text" validate:"oneof=text json"`
}

// LoadClientConfig reads an optional .env file, then the environment.
func LoadClientConfig(baseAddress string) (*ClientConfig, error) {
	_ = godotenv.Load()

	var cfg ClientConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.BaseAddress = baseAddress

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	return &cfg, nil
}
