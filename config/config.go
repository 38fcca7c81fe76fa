// Package config loads service configuration from an optional config file,
// a .env file and environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is everything the binary needs to start.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Backup BackupConfig `mapstructure:"backup"`
	Debug  bool         `mapstructure:"debug"`
}

type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	PublicDir string `mapstructure:"public_dir"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type BackupConfig struct {
	Dir       string `mapstructure:"dir"`
	Retention int    `mapstructure:"retention"`
}

// Load reads config.yaml (if present), .env (best effort) and TASKBOARD_*
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.public_dir", "")
	v.SetDefault("store.path", "data/taskboard.json")
	v.SetDefault("backup.dir", "data/backups")
	v.SetDefault("backup.retention", 7)
	v.SetDefault("debug", false)

	v.SetEnvPrefix("taskboard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Backup.Retention <= 0 {
		return nil, fmt.Errorf("backup retention must be positive, got %d", cfg.Backup.Retention)
	}
	return &cfg, nil
}
