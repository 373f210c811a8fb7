package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. INVSIM_SERVER_PORT.
const EnvPrefix = "INVSIM"

// Settings holds application (not simulation) configuration.
type Settings struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Pretty bool   `mapstructure:"pretty"`
	} `mapstructure:"log"`

	Server struct {
		Port           int           `mapstructure:"port"`
		MaxSimulations int           `mapstructure:"max_simulations"`
		RequestTimeout time.Duration `mapstructure:"request_timeout"`
		DevMode        bool          `mapstructure:"dev_mode"`
	} `mapstructure:"server"`

	Simulation struct {
		Workers int `mapstructure:"workers"`
	} `mapstructure:"simulation"`
}

// NewViper returns a viper instance carrying defaults and environment binding.
// A .env file in the working directory is loaded first when present.
func NewViper() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_simulations", 100_000)
	v.SetDefault("server.request_timeout", 60*time.Second)
	v.SetDefault("server.dev_mode", false)
	v.SetDefault("simulation.workers", 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads the optional settings file into v and decodes the result.
func LoadSettings(v *viper.Viper, settingsFile string) (*Settings, error) {
	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings %s: %w", settingsFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks settings ranges
func (s *Settings) Validate() error {
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535, got %d", s.Server.Port)
	}
	if s.Server.MaxSimulations < 1 || s.Server.MaxSimulations > MaxSimulations {
		return fmt.Errorf("server.max_simulations must be between 1 and %d, got %d", MaxSimulations, s.Server.MaxSimulations)
	}
	if s.Server.RequestTimeout <= 0 {
		return errors.New("server.request_timeout must be positive")
	}
	if s.Simulation.Workers < 0 || s.Simulation.Workers > MaxWorkers {
		return fmt.Errorf("simulation.workers must be between 0 and %d, got %d", MaxWorkers, s.Simulation.Workers)
	}
	return nil
}
