package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	Definitions DefinitionsConfig `yaml:"definitions"`
	Server      ServerConfig      `yaml:"server"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// Бэкенды хранилища записей определений
const (
	BackendDir    = "dir"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// DefinitionsConfig описывает, откуда читаются записи определений объектов
type DefinitionsConfig struct {
	Backend    string      `yaml:"backend"`     // dir | badger | redis
	Dir        string      `yaml:"dir"`         // каталог с файлами <id>.json
	BadgerPath string      `yaml:"badger_path"` // каталог базы BadgerDB
	Redis      RedisConfig `yaml:"redis"`
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	KeyPrefix string        `yaml:"key_prefix"`
	Timeout   time.Duration `yaml:"timeout"`
}

type ServerConfig struct {
	RESTPort          int     `yaml:"rest_port"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// Default возвращает конфигурацию по умолчанию с учётом переменных окружения
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getIntWithEnvFallback(s.RESTPort, "OBJDEF_REST_PORT", 8089)
}

// applyDefaults заполняет пустые поля: config -> env -> default
func (c *Config) applyDefaults() {
	d := &c.Definitions
	d.Backend = getStringWithEnvFallback(d.Backend, "OBJDEF_BACKEND", BackendDir)
	d.Dir = getStringWithEnvFallback(d.Dir, "OBJDEF_DIR", "assets/objects")
	d.BadgerPath = getStringWithEnvFallback(d.BadgerPath, "OBJDEF_BADGER_PATH", "data/objects")
	d.Redis.Addr = getStringWithEnvFallback(d.Redis.Addr, "OBJDEF_REDIS_ADDR", "localhost:6379")
	d.Redis.Password = getStringWithEnvFallback(d.Redis.Password, "OBJDEF_REDIS_PASSWORD", "")
	d.Redis.KeyPrefix = getStringWithEnvFallback(d.Redis.KeyPrefix, "OBJDEF_REDIS_PREFIX", "objdef:")
	if d.Redis.Timeout <= 0 {
		d.Redis.Timeout = 2 * time.Second
	}

	if c.Server.RequestsPerSecond <= 0 {
		c.Server.RequestsPerSecond = 50
	}
	if c.Server.Burst <= 0 {
		c.Server.Burst = 100
	}

	c.Telemetry.ServiceName = getStringWithEnvFallback(c.Telemetry.ServiceName, "OTEL_SERVICE_NAME", "objdef")
	c.Logging.Level = getStringWithEnvFallback(c.Logging.Level, "OBJDEF_LOG_LEVEL", "info")
	c.Logging.Dir = getStringWithEnvFallback(c.Logging.Dir, "OBJDEF_LOG_DIR", "")
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Definitions.Backend {
	case BackendDir, BackendBadger, BackendRedis:
	default:
		return fmt.Errorf("unknown definitions backend %q", c.Definitions.Backend)
	}
	if port := c.Server.GetRESTPort(); port <= 0 || port > 65535 {
		return fmt.Errorf("invalid rest port %d", port)
	}
	return nil
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	if configValue > 0 {
		return configValue
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}

	return defaultValue
}

// getStringWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getStringWithEnvFallback(configValue, envVar, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultValue
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV OBJDEF_CONFIG, иначе возвращает конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("OBJDEF_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
