package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Redis      RedisConfig      `toml:"redis"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Delivery   DeliveryConfig   `toml:"delivery"`
	OrderLog   OrderLogConfig   `toml:"orderlog"`
	Admin      AdminConfig      `toml:"admin"`
	RateLimit  RateLimitConfig  `toml:"ratelimit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	SlotGridTTLSecs int    `toml:"slot_grid_ttl"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type SchedulingConfig struct {
	DefaultHorizonDays int `toml:"default_horizon_days"`
	MaxHorizonDays     int `toml:"max_horizon_days"`
	MinLeadMinutes     int `toml:"min_lead_minutes"`
}

type DeliveryConfig struct {
	ZipZonesFile string `toml:"zip_zones_file"` // пусто - встроенный справочник
}

type OrderLogConfig struct {
	Enabled bool   `toml:"enabled"`
	File    string `toml:"file"`
	Sheet   string `toml:"sheet"`
}

type AdminConfig struct {
	UserIDs []int64 `toml:"user_ids"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Load читает .env (если есть), затем TOML-файл, затем применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: HTTP_PORT=%q is not a number", v)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 15)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	setDefault(&c.Redis.SlotGridTTLSecs, 300)

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc-storeslots"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	setDefault(&c.Scheduling.DefaultHorizonDays, 30)
	setDefault(&c.Scheduling.MaxHorizonDays, 90)

	if c.OrderLog.File == "" {
		c.OrderLog.File = "data/orders.xlsx"
	}
	if c.OrderLog.Sheet == "" {
		c.OrderLog.Sheet = "Orders"
	}

	if c.RateLimit.RequestsPerSecond <= 0 {
		c.RateLimit.RequestsPerSecond = 20
	}
	setDefault(&c.RateLimit.Burst, 40)
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Scheduling.DefaultHorizonDays > c.Scheduling.MaxHorizonDays {
		return fmt.Errorf("config: scheduling.default_horizon_days=%d exceeds max_horizon_days=%d",
			c.Scheduling.DefaultHorizonDays, c.Scheduling.MaxHorizonDays)
	}
	if c.Scheduling.MinLeadMinutes < 0 {
		return fmt.Errorf("config: scheduling.min_lead_minutes must not be negative")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis is enabled")
	}
	return nil
}

// IsAdmin проверяет, входит ли пользователь в список администраторов
func (c AdminConfig) IsAdmin(userID int64) bool {
	for _, id := range c.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func setDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
