// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	Seed            bool   `yaml:"seed" env:"SEED" env-default:"true"`
	HTTPServer      `yaml:"http_server"`
	CORS            `yaml:"cors"`
	RateLimit       `yaml:"rate_limit"`
	RedisConnection `yaml:"redis_connection"`
	RabbitMQ        `yaml:"rabbitmq"`
	Payment         `yaml:"payment"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":5000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// CORS список разрешённых источников; пустой список разрешает любой
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// RateLimit настройки ограничителя для /api/auth
type RateLimit struct {
	RPS      float64       `yaml:"rps" env-default:"1"`
	Burst    int           `yaml:"burst" env-default:"5"`
	Window   time.Duration `yaml:"window" env-default:"1m"`
	UseRedis bool          `yaml:"use_redis" env:"RATE_LIMIT_REDIS"`

	// TrustProxy включает разбор X-Real-IP/X-Forwarded-For. Только за своим прокси.
	TrustProxy bool `yaml:"trust_proxy" env:"TRUST_PROXY"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// RabbitMQ подключение к брокеру событий. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL      string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string        `yaml:"exchange" env-default:"storefront.events"`
	Retries  int           `yaml:"retries" env-default:"5"`
	Delay    time.Duration `yaml:"delay" env-default:"2s"`
}

// Payment настройки платёжного провайдера. Пустой SecretKey отключает оплату.
type Payment struct {
	SecretKey string        `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	APIURL    string        `yaml:"api_url" env:"STRIPE_API_URL"`
	Currency  string        `yaml:"currency" env-default:"usd"`
	Timeout   time.Duration `yaml:"timeout" env-default:"10s"`
}

// Load читает конфиг из файла path, переменные окружения перекрывают значения файла.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Seed: %t\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"CORS: %v\n"+
			"RateLimit: rps=%g burst=%d window=%s redis=%t trust_proxy=%t\n"+
			"Redis: %s db=%d\n"+
			"RabbitMQ: exchange=%s enabled=%t\n"+
			"Payment: currency=%s enabled=%t\n",
		c.Env,
		c.Seed,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AllowedOrigins,
		c.RPS, c.Burst, c.Window, c.UseRedis, c.TrustProxy,
		c.AddressRedis, c.DB,
		c.Exchange, c.URL != "",
		c.Currency, c.SecretKey != "",
	)
}
