package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBSource      string        `mapstructure:"db_source"`
	LoginDBSource string        `mapstructure:"login_db_source"`
	Port          string        `mapstructure:"server_port"`
	Env           string        `mapstructure:"environment"`
	ShutdownAfter time.Duration `mapstructure:"shutdown_timeout"`

	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`

	AWSRegion      string `mapstructure:"aws_region"`
	BucketName     string `mapstructure:"aws_bucket_name"`
	DocumentBucket string `mapstructure:"document_bucket_name"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load reads an optional YAML file, then lets the environment override it.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.LoginDBSource == "" {
		cfg.LoginDBSource = cfg.DBSource
	}
	if cfg.DocumentBucket == "" {
		cfg.DocumentBucket = cfg.BucketName
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("environment", "development")
	v.SetDefault("shutdown_timeout", 15*time.Second)
	v.SetDefault("token_ttl", 7*24*time.Hour)
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("log_level", "info")
}

func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"db_source", "login_db_source", "server_port", "environment", "shutdown_timeout",
		"jwt_secret", "token_ttl",
		"aws_region", "aws_bucket_name", "document_bucket_name",
		"log_level", "log_format",
	} {
		// Keys are the lower-case form of their environment variable.
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()
}

func (c *Config) Validate() error {
	if c.DBSource == "" {
		return errors.New("DB_SOURCE is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

// IsProduction picks the JSON log encoder when LOG_FORMAT is unset.
func (c *Config) IsProduction() bool { return c.Env == "production" }
