package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string         `yaml:"env" validate:"omitempty,oneof=dev staging prod"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Cache    CacheConfig    `yaml:"cache"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address string `yaml:"address" validate:"required,hostname_port"`
	Swagger bool   `yaml:"swagger"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver" validate:"required,oneof=postgres sqlite"`
	Host     string `yaml:"host" validate:"required_if=Driver postgres"`
	Port     int    `yaml:"port" validate:"required_if=Driver postgres"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name" validate:"required_if=Driver postgres"`
	SSLMode  string `yaml:"ssl_mode"`
	Path     string `yaml:"path" validate:"required_if=Driver sqlite"`
	SeedPath string `yaml:"seed_path"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig with an empty Addr disables the listings cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// KafkaConfig with no brokers disables query auditing.
type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	AuditTopic string   `yaml:"audit_topic" validate:"required_with=Brokers"`
	GroupID    string   `yaml:"group_id"`
}

type CacheConfig struct {
	ListingsTTLSeconds int `yaml:"listings_ttl_seconds" validate:"gte=0"`
}

func (c CacheConfig) ListingsTTL() time.Duration {
	return time.Duration(c.ListingsTTLSeconds) * time.Second
}

type WorkerConfig struct {
	SummaryIntervalSeconds int `yaml:"summary_interval_seconds" validate:"gte=0"`
}

func (w WorkerConfig) SummaryInterval() time.Duration {
	if w.SummaryIntervalSeconds == 0 {
		return time.Minute
	}
	return time.Duration(w.SummaryIntervalSeconds) * time.Second
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

// Path returns CONFIG_PATH, falling back to config.yaml.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
