// Package config loads moodlog settings from .moodlog.yaml and MOODLOG_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// LocalGateway as gateway.url makes the CLI read and write the store
// directly instead of talking to a server.
const LocalGateway = "local"

type Config struct {
	Gateway Gateway `mapstructure:"gateway"`
	Store   Store   `mapstructure:"store"`
	Server  Server  `mapstructure:"server"`
	Log     Log     `mapstructure:"log"`
	Color   Color   `mapstructure:"color"`
}

type Gateway struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
	Rate    float64       `mapstructure:"rate"`
	Retries int           `mapstructure:"retries"`
}

type Store struct {
	Path string `mapstructure:"path"`
}

type Server struct {
	Addr  string `mapstructure:"addr"`
	Token string `mapstructure:"token"`
}

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Color struct {
	Neutral string `mapstructure:"neutral"`
}

// BasePath is the expanded store path.
func (c *Config) BasePath() string {
	return c.Store.Path
}

// Local reports whether the CLI should bypass the HTTP gateway.
func (c *Config) Local() bool {
	return strings.EqualFold(strings.TrimSpace(c.Gateway.URL), LocalGateway)
}

// New returns a viper instance with the moodlog defaults, search paths and
// environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("gateway.url", "http://127.0.0.1:8080/api")
	v.SetDefault("gateway.token", "")
	v.SetDefault("gateway.timeout", "10s")
	v.SetDefault("gateway.rate", 10.0)
	v.SetDefault("gateway.retries", 1)
	v.SetDefault("store.path", "~/.moodlog.db")
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.token", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("color.neutral", "#F0F0F0")

	v.SetConfigName(".moodlog") // .yaml is implicit
	v.SetEnvPrefix("MOODLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("MOODLOG_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	return v
}

// Load reads the config file if there is one and decodes the settings. A
// missing file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = New()
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	path, err := homedir.Expand(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("config: store path: %w", err)
	}
	cfg.Store.Path = path

	if cfg.Gateway.Timeout <= 0 {
		return nil, fmt.Errorf("config: gateway.timeout must be positive, got %s", cfg.Gateway.Timeout)
	}
	if cfg.Gateway.Retries < 0 {
		return nil, fmt.Errorf("config: gateway.retries must not be negative, got %d", cfg.Gateway.Retries)
	}
	return cfg, nil
}
