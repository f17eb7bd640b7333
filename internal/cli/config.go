package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/morphgraph/pkg/api"
)

// Cache backends accepted in [cache].backend.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the on-disk configuration. Every field is optional; zero values
// fall back to built-in defaults and command-line flags override both.
//
//	[pipeline]
//	repair = true
//	stick_figure = false
//	formats = ["dot", "svg"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":9000"
//
//	[log]
//	level = "debug"
type Config struct {
	Pipeline PipelineConfig `toml:"pipeline"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// PipelineConfig sets defaults for the render and processes commands.
type PipelineConfig struct {
	Repair      bool     `toml:"repair"`
	StickFigure bool     `toml:"stick_figure"`
	Formats     []string `toml:"formats"`
}

type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
	TTL       time.Duration `toml:"ttl"`
}

type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// defaultConfig returns the built-in defaults.
func defaultConfig() *Config {
	return &Config{
		Cache:  CacheConfig{Backend: backendFile},
		Server: ServerConfig{Addr: api.DefaultAddr, MaxBodyBytes: api.DefaultMaxBodyBytes},
		Log:    LogConfig{Level: log.InfoLevel.String()},
	}
}

// loadConfig reads path over the defaults. A missing file at the default
// location is not an error; a missing file the user asked for is.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendNone:
	case backendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache.backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl must not be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// logLevel returns the configured level, defaulting to info.
func (c *Config) logLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// defaultConfigPath returns $XDG_CONFIG_HOME/morphgraph/config.toml, or
// ~/.config/morphgraph/config.toml.
func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
