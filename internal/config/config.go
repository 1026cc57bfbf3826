package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	UI        UIConfig        `mapstructure:"ui"`
	Log       LogConfig       `mapstructure:"log"`
	DevServer DevServerConfig `mapstructure:"devserver"`
}

// APIConfig points the client at the user-service.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // zero disables
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize  int   `mapstructure:"page_size"`
	PageSizes []int `mapstructure:"page_sizes"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DevServerConfig configures the local user-service stand-in.
type DevServerConfig struct {
	Addr      string `mapstructure:"addr"`
	DBPath    string `mapstructure:"db_path"`
	BasePath  string `mapstructure:"base_path"`
	Seed      bool   `mapstructure:"seed"` // demo rows on an empty database
	SeedExtra int    `mapstructure:"seed_extra"`
}

const DefaultBaseURL = "http://localhost:8080/user"

// Load reads configuration from defaults, an optional TOML file, a .env file
// in the working directory and the environment. Env var overrides use prefix
// USERDESK_, e.g. USERDESK_API_BASE_URL.
func Load() (Config, error) {
	// Variables already set in the environment win over .env.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("ui.page_size", 5)
	v.SetDefault("ui.page_sizes", []int{5, 10, 25})
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("devserver.addr", ":8080")
	v.SetDefault("devserver.db_path", "userdesk-dev.db")
	v.SetDefault("devserver.base_path", "/user")
	v.SetDefault("devserver.seed", true)
	v.SetDefault("devserver.seed_extra", 0)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("USERDESK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "userdesk"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("USERDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit USERDESK_CONFIG that cannot be read is an error; a
		// missing default file is not.
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("config: api.base_url is empty")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("config: api.timeout must not be negative")
	}
	if c.UI.PageSize < 1 {
		return fmt.Errorf("config: ui.page_size must be at least 1, got %d", c.UI.PageSize)
	}
	for _, n := range c.UI.PageSizes {
		if n < 1 {
			return fmt.Errorf("config: ui.page_sizes entries must be at least 1, got %d", n)
		}
	}
	return nil
}
