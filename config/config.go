package config

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

// DatabaseConfig holds the hosted Postgres connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

// AuthConfig selects and configures the identity provider.
// Provider is "gotrue" for a hosted GoTrue-compatible service or "local"
// for the built-in Postgres-backed provider.
type AuthConfig struct {
	Provider string       `mapstructure:"provider"`
	GoTrue   GoTrueConfig `mapstructure:"gotrue"`
	JWT      JWTConfig    `mapstructure:"jwt"`
}

// GoTrueConfig holds the hosted identity provider endpoint settings.
type GoTrueConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// JWTConfig configures access tokens minted by the local provider.
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

var (
	// GlobalConfig is the process-wide configuration instance.
	GlobalConfig *Config
)

// LoadConfig loads configuration with the following precedence:
// external config file > embedded defaults, with FINTRACK_* environment
// variables overriding both. configPath is an optional explicit file path.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. Embedded defaults first.
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("read embedded config: %w", err)
	}

	// 2. Optional external config file overriding the defaults.
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("warning: cannot read config file %s: %v", configPath, err)
		} else {
			log.Printf("merged external config file: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/fintrack")
		externalViper.AddConfigPath("$HOME/.fintrack")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("warning: merging external config failed: %v", err)
			} else {
				log.Printf("merged external config file: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. Environment variable override, e.g. FINTRACK_DATABASE_PASSWORD.
	v.SetEnvPrefix("FINTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Auth.JWT.ExpireHours <= 0 {
		cfg.Auth.JWT.ExpireHours = 24
	}
	cfg.Auth.JWT.ExpireTime = time.Duration(cfg.Auth.JWT.ExpireHours) * time.Hour

	GlobalConfig = &cfg

	return &cfg, nil
}

// MustLoadConfig loads configuration and panics on failure.
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}

// GetConfig returns the global configuration.
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("config not initialized, call LoadConfig first")
	}
	return GlobalConfig
}

// PrintConfig logs the active configuration with secrets omitted.
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("active configuration:")
	log.Printf("  server:   %s (mode: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	log.Printf("  database: %s@%s:%s/%s",
		GlobalConfig.Database.Username,
		GlobalConfig.Database.Host,
		GlobalConfig.Database.Port,
		GlobalConfig.Database.DBName)
	log.Printf("  identity: %s", GlobalConfig.Auth.Provider)
}

// SafeErrorMessage returns err.Error() in debug mode and the fallback in
// release mode, so internal store errors are not leaked to clients.
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
