package infra

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config — корневая структура конфигурации консоли.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Views       ViewsConfig       `mapstructure:"views"`
	Simulation  SimulationConfig  `mapstructure:"simulation"`
	Reliability ReliabilityConfig `mapstructure:"reliability"`
	RateLimit   RateLimitConfig   `mapstructure:"ratelimit"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// ServerConfig описывает настройки HTTP-сервера.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisConfig описывает подключение к Redis (хранилище view при нескольких инстансах).
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ViewsConfig — жизненный цикл состояний страниц.
type ViewsConfig struct {
	Store         string        `mapstructure:"store"` // memory, redis
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// SimulationConfig — искусственные задержки вместо сетевых вызовов.
type SimulationConfig struct {
	AgentToggleLatency time.Duration `mapstructure:"agent_toggle_latency"`
	SignupLatency      time.Duration `mapstructure:"signup_latency"`
	SettingsLatency    time.Duration `mapstructure:"settings_latency"`
	SparkleInterval    time.Duration `mapstructure:"sparkle_interval"`
}

// ReliabilityConfig — обвязка вокруг бэкенда действий (Circuit Breaker, ретраи, лимитер).
type ReliabilityConfig struct {
	CBMaxRequests uint32        `mapstructure:"cb_max_requests"`
	CBInterval    time.Duration `mapstructure:"cb_interval"`
	CBTimeout     time.Duration `mapstructure:"cb_timeout"`
	RetryAttempts uint          `mapstructure:"retry_attempts"`
	CallTimeout   time.Duration `mapstructure:"call_timeout"`
	RateLimit     float64       `mapstructure:"rate_limit"`
	RateBurst     int           `mapstructure:"rate_burst"`
}

// RateLimitConfig — лимит на сабмит signup с одного IP.
type RateLimitConfig struct {
	SignupPerMinute int `mapstructure:"signup_per_minute"`
}

// LoggerConfig настраивает поведение zap логгера.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoadConfig инициализирует конфигурацию, объединяя значения из файла и ENV.
// path — явный путь к файлу (флаг --config), пустая строка включает поиск по умолчанию.
func LoadConfig(path string) (*Config, error) {
	// .env подхватываем, если он есть
	_ = godotenv.Load()

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	// SERVER_PORT=9000 перекроет server.port
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Файла нет — работаем на ENV и дефолтах
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.cors_origins", []string{})

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("views.store", "memory")
	v.SetDefault("views.ttl", 30*time.Minute)
	v.SetDefault("views.sweep_interval", time.Minute)

	v.SetDefault("simulation.agent_toggle_latency", 800*time.Millisecond)
	v.SetDefault("simulation.signup_latency", 1500*time.Millisecond)
	v.SetDefault("simulation.settings_latency", 800*time.Millisecond)
	v.SetDefault("simulation.sparkle_interval", 4*time.Second)

	v.SetDefault("reliability.cb_max_requests", 3)
	v.SetDefault("reliability.cb_interval", 5*time.Second)
	v.SetDefault("reliability.cb_timeout", 30*time.Second)
	v.SetDefault("reliability.retry_attempts", 3)
	v.SetDefault("reliability.call_timeout", 10*time.Second)
	v.SetDefault("reliability.rate_limit", 100)
	v.SetDefault("reliability.rate_burst", 20)

	v.SetDefault("ratelimit.signup_per_minute", 5)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	switch c.Views.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("views.store must be memory or redis, got %q", c.Views.Store)
	}
	if c.Views.TTL <= 0 {
		return errors.New("views.ttl must be positive")
	}
	if c.Views.SweepInterval <= 0 {
		return errors.New("views.sweep_interval must be positive")
	}
	if c.Simulation.AgentToggleLatency < 0 || c.Simulation.SignupLatency < 0 || c.Simulation.SettingsLatency < 0 {
		return errors.New("simulation latencies must not be negative")
	}
	if c.Simulation.SparkleInterval <= 0 {
		return errors.New("simulation.sparkle_interval must be positive")
	}
	if c.Reliability.RetryAttempts == 0 {
		return errors.New("reliability.retry_attempts must be at least 1")
	}
	if c.RateLimit.SignupPerMinute <= 0 {
		return errors.New("ratelimit.signup_per_minute must be positive")
	}
	return nil
}
