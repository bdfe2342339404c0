package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/samvad-hq/fritzbox-request/pkg/fritzrequest"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	Server           string `mapstructure:"fritz_server"`
	Protocol         string `mapstructure:"fritz_protocol"`
	SID              string `mapstructure:"fritz_sid"`
	RemoveSIDFromURI bool   `mapstructure:"fritz_remove_sid_from_uri"`

	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	ProfilesFile string `mapstructure:"profiles_file"`
	Profile      string `mapstructure:"profile"`
	ReportFile   string `mapstructure:"report_file"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	return LoadFrom("configs/.env")
}

// LoadFrom is Load with an explicit dotenv path. A missing dotenv file is not an error.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	v := viper.New()

	v.SetDefault("app_name", "fritzbox-request")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("fritz_server", "")
	v.SetDefault("fritz_protocol", "http")
	v.SetDefault("fritz_sid", "")
	v.SetDefault("fritz_remove_sid_from_uri", false)
	v.SetDefault("request_timeout_seconds", 0) // no timeout
	v.SetDefault("profiles_file", "")
	v.SetDefault("profile", "")
	v.SetDefault("report_file", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	return &cfg, nil
}

// Options returns the connection options described by the environment.
func (c *Config) Options() fritzrequest.Options {
	return fritzrequest.Options{
		Server:           c.Server,
		Protocol:         c.Protocol,
		SID:              c.SID,
		RemoveSIDFromURI: c.RemoveSIDFromURI,
	}
}
