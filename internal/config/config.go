package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the process configuration. Every key can be overridden by
// an environment variable: PORT, DATABASE_PATH, SESSION_SECRET,
// SESSION_COOKIESECURE, BCRYPTCOST.
type Config struct {
	Port     int `mapstructure:"port"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Session struct {
		Secret       string `mapstructure:"secret"`
		CookieSecure bool   `mapstructure:"cookieSecure"`
	} `mapstructure:"session"`
	BcryptCost int `mapstructure:"bcryptCost"`
}

// Load reads configuration from the given YAML file and the environment.
// A missing file is not an error; defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Defaults also register the keys so AutomaticEnv can see them.
	v.SetDefault("port", 8080)
	v.SetDefault("database.path", "petition.db")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookieSecure", true)
	v.SetDefault("bcryptCost", 12)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the constraints that make a configuration unusable.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return errors.New("session secret is required (SESSION_SECRET)")
	}
	if len(c.Session.Secret) < 32 {
		return errors.New("session secret must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost must be between 4 and 14, got %d", c.BcryptCost)
	}
	return nil
}
