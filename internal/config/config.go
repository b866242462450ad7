package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "parkfleet/libs/config"
)

// PlatformConfig points at one external automation endpoint.
type PlatformConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// Config represents worker configuration loaded from YAML/env.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"FLEET_HTTP_PORT"`
	} `yaml:"http"`
	Ingest struct {
		Addr string `yaml:"addr" env:"FLEET_INGEST_ADDR"`
	} `yaml:"ingest"`
	Database struct {
		DSN string `yaml:"dsn" env:"FLEET_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"FLEET_REDIS_ADDR"`
		Password string `yaml:"password" env:"FLEET_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"FLEET_REDIS_DB"`
	} `yaml:"redis"`
	JWT struct {
		Secret string `yaml:"secret" env:"FLEET_JWT_SECRET"`
	} `yaml:"jwt"`
	Timezone string `yaml:"timezone" env:"FLEET_TIMEZONE"`
	Lock     struct {
		ExpireSeconds   int `yaml:"expireSeconds" env:"FLEET_LOCK_EXPIRE_SECONDS"`
		CooldownSeconds int `yaml:"cooldownSeconds" env:"FLEET_LOCK_COOLDOWN_SECONDS"`
	} `yaml:"lock"`
	Platforms struct {
		Bolt  PlatformConfig `yaml:"bolt"`
		Uklon PlatformConfig `yaml:"uklon"`
		Uber  PlatformConfig `yaml:"uber"`
		UaGps PlatformConfig `yaml:"uagps"`
	} `yaml:"platforms"`
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Ingest.Addr = ":5500"
	cfg.Timezone = "Europe/Kiev"
	cfg.Lock.ExpireSeconds = 600
	cfg.Lock.CooldownSeconds = 10

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.Database.DSN == "" {
		return nil, errors.New("config: database DSN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("config: jwt secret is required")
	}
	if cfg.Lock.ExpireSeconds <= 0 {
		cfg.Lock.ExpireSeconds = 600
	}
	if cfg.Lock.CooldownSeconds <= 0 {
		cfg.Lock.CooldownSeconds = 10
	}

	return cfg, nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// Location resolves the configured deployment time zone. Telemetry timestamps
// and cron schedules are interpreted in this zone.
func (c *Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// LockExpire converts the configured lock expiry to a duration.
func (c *Config) LockExpire() time.Duration {
	return time.Duration(c.Lock.ExpireSeconds) * time.Second
}

// LockCooldown converts the configured post-run cooldown to a duration.
func (c *Config) LockCooldown() time.Duration {
	return time.Duration(c.Lock.CooldownSeconds) * time.Second
}
