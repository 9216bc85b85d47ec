package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	Session  SessionConfig  `json:"session"`
	Uploads  UploadsConfig  `json:"uploads"`
	Catalog  CatalogConfig  `json:"catalog"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type DatabaseConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Password       string `json:"password"`
	DBName         string `json:"dbname"`
	SSLMode        string `json:"sslmode"`
	MigrationsPath string `json:"migrations_path"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type SessionConfig struct {
	TTLMinutes int `json:"ttl_minutes"`
}

type UploadsConfig struct {
	Dir      string `json:"dir"`
	BaseURL  string `json:"base_url"`
	MaxBytes int64  `json:"max_bytes"`
}

type CatalogConfig struct {
	StorefrontCacheTTLSeconds  int `json:"storefront_cache_ttl_seconds"`
	MetricsRefreshIntervalSecs int `json:"metrics_refresh_interval_seconds"`
}

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Session.TTLMinutes <= 0 {
		c.Session.TTLMinutes = 60
	}
	if c.Uploads.MaxBytes <= 0 {
		c.Uploads.MaxBytes = 5 << 20
	}
	if c.Catalog.StorefrontCacheTTLSeconds <= 0 {
		c.Catalog.StorefrontCacheTTLSeconds = 60
	}
	if c.Catalog.MetricsRefreshIntervalSecs <= 0 {
		c.Catalog.MetricsRefreshIntervalSecs = 300
	}
}

func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

func (c CatalogConfig) StorefrontCacheTTL() time.Duration {
	return time.Duration(c.StorefrontCacheTTLSeconds) * time.Second
}

func (c CatalogConfig) MetricsRefreshInterval() time.Duration {
	return time.Duration(c.MetricsRefreshIntervalSecs) * time.Second
}

func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}
