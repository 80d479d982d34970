// Package config loads service configuration from file and environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Log        LogConfig
	Projection ProjectionConfig
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port        int
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// ProjectionConfig holds simulation defaults.
type ProjectionConfig struct {
	HorizonMonths int `mapstructure:"horizon_months"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// WALLENGINE_, e.g. WALLENGINE_SERVER_PORT=9000. A config file is optional:
// WALLENGINE_CONFIG points at one explicitly, otherwise ./wall-engine.yaml
// is picked up when present.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173", "http://localhost:8080"})
	v.SetDefault("database.path", "walls.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("projection.horizon_months", 12)

	v.SetConfigType("yaml")

	if cfgPath := v.GetString("config"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("wall-engine")
	}

	v.SetEnvPrefix("WALLENGINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
