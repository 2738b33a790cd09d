package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. SPORTHUB_REDIS_ADDR.
const EnvPrefix = "SPORTHUB"

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http" envconfig:"http"`
	Storage  StorageConfig  `yaml:"storage" envconfig:"storage"`
	Database DatabaseConfig `yaml:"database" envconfig:"database"`
	Redis    RedisConfig    `yaml:"redis" envconfig:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka" envconfig:"kafka"`
	Booking  BookingConfig  `yaml:"booking" envconfig:"booking"`
	Pricing  PricingConfig  `yaml:"pricing" envconfig:"pricing"`
	Identity IdentityConfig `yaml:"identity" envconfig:"identity"`
	Log      LogConfig      `yaml:"log" envconfig:"log"`
}

type HTTPConfig struct {
	Address               string `yaml:"address" envconfig:"address"`
	BasePath              string `yaml:"base_path" envconfig:"base_path"`
	Mode                  string `yaml:"mode" envconfig:"mode"`
	SwaggerDir            string `yaml:"swagger_dir" envconfig:"swagger_dir"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds" envconfig:"request_timeout_seconds"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" envconfig:"driver"`
	Table  string `yaml:"table" envconfig:"table"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" envconfig:"host"`
	Port     int    `yaml:"port" envconfig:"port"`
	User     string `yaml:"user" envconfig:"user"`
	Password string `yaml:"password" envconfig:"password"`
	Name     string `yaml:"name" envconfig:"name"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"addr"`
	Password string `yaml:"password" envconfig:"password"`
	DB       int    `yaml:"db" envconfig:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers" envconfig:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic" envconfig:"booking_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic" envconfig:"notifications_topic"`
	GroupID            string   `yaml:"group_id" envconfig:"group_id"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type BookingConfig struct {
	// AllowDoubleBooking turns off the slot claim written at creation, leaving
	// availability checks advisory only.
	AllowDoubleBooking bool `yaml:"allow_double_booking" envconfig:"allow_double_booking"`
}

type PricingConfig struct {
	TaxRate       string   `yaml:"tax_rate" envconfig:"tax_rate"`
	PromoDiscount string   `yaml:"promo_discount" envconfig:"promo_discount"`
	PromoCodes    []string `yaml:"promo_codes" envconfig:"promo_codes"`
}

type IdentityConfig struct {
	JWTSecret string `yaml:"jwt_secret" envconfig:"jwt_secret"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"level"`
	Format string `yaml:"format" envconfig:"format"`
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

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.BasePath == "" {
		c.HTTP.BasePath = "/api/v1"
	}
	if c.HTTP.RequestTimeoutSeconds == 0 {
		c.HTTP.RequestTimeoutSeconds = 10
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageMemory
	}
	if c.Storage.Table == "" {
		c.Storage.Table = "kv_store"
	}
	if c.Kafka.BookingEventsTopic == "" {
		c.Kafka.BookingEventsTopic = "booking-events"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "sporthub-notifier"
	}
	if c.Pricing.TaxRate == "" {
		c.Pricing.TaxRate = "0.08"
	}
	if c.Pricing.PromoDiscount == "" {
		c.Pricing.PromoDiscount = "0.10"
	}
	if len(c.Pricing.PromoCodes) == 0 {
		c.Pricing.PromoCodes = []string{"SAVE10", "FIRST10", "WELCOME10"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == StorageRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required for the redis storage driver")
	}
	return nil
}
