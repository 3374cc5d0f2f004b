package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	AI       AIConfig
	Queue    QueueConfig
	App      AppConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Host     string
	Port     int
	Env      string
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret    string
	AccessTTL time.Duration
}

type StorageConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

type AIConfig struct {
	Endpoint     string
	Timeout      time.Duration
	ClientID     string
	ClientSecret string
	TokenURL     string
}

type QueueConfig struct {
	Concurrency int
}

// AppConfig holds the deployment values shared with the frontend.
type AppConfig struct {
	PublicBaseURL string
	VercelURL     string
}

// AdminConfig seeds the bootstrap admin account when both fields are set.
type AdminConfig struct {
	Username string
	Password string
}

var (
	mu       sync.RWMutex
	instance *Config
)

// Load reads .env, config.yaml and the environment, in that order of increasing priority.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	for key, env := range map[string]string{
		"jwt.secret":          "JWT_SECRET",
		"app.public_base_url": "NEXT_PUBLIC_BASE_URL",
		"app.vercel_url":      "VERCEL_URL",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:     v.GetString("server.host"),
			Port:     v.GetInt("server.port"),
			Env:      v.GetString("server.env"),
			LogLevel: v.GetString("server.log_level"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:    v.GetString("jwt.secret"),
			AccessTTL: v.GetDuration("jwt.access_ttl"),
		},
		Storage: StorageConfig{
			Bucket:    v.GetString("storage.bucket"),
			Region:    v.GetString("storage.region"),
			Endpoint:  v.GetString("storage.endpoint"),
			AccessKey: v.GetString("storage.access_key"),
			SecretKey: v.GetString("storage.secret_key"),
			PublicURL: v.GetString("storage.public_url"),
		},
		AI: AIConfig{
			Endpoint:     v.GetString("ai.endpoint"),
			Timeout:      v.GetDuration("ai.timeout"),
			ClientID:     v.GetString("ai.client_id"),
			ClientSecret: v.GetString("ai.client_secret"),
			TokenURL:     v.GetString("ai.token_url"),
		},
		Queue: QueueConfig{
			Concurrency: v.GetInt("queue.concurrency"),
		},
		App: AppConfig{
			PublicBaseURL: v.GetString("app.public_base_url"),
			VercelURL:     v.GetString("app.vercel_url"),
		},
		Admin: AdminConfig{
			Username: v.GetString("admin.username"),
			Password: v.GetString("admin.password"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	Set(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "ndrop")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.access_ttl", 24*time.Hour)
	v.SetDefault("storage.region", "ap-northeast-2")
	v.SetDefault("ai.timeout", 8*time.Second)
	v.SetDefault("ai.endpoint", "")
	v.SetDefault("queue.concurrency", 10)
}

// Set replaces the process configuration. Tests use it to install fixtures.
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = cfg
}

// Get returns the loaded configuration and panics when Load has not run.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: not initialized")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

// Origin is the public origin used in join links:
// NEXT_PUBLIC_BASE_URL, then VERCEL_URL, then the server's own address.
func (c *Config) Origin() string {
	if base := strings.TrimRight(c.App.PublicBaseURL, "/"); base != "" {
		return base
	}
	if host := strings.TrimRight(c.App.VercelURL, "/"); host != "" {
		if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
			return host
		}
		return "https://" + host
	}
	return fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
}
