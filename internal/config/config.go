// Package config loads the tq application settings: where the data file
// lives, how to log, how to serve, and which timezone the day boundaries use.
// Game tunables (points, thresholds) are not here; they are part of the data
// document.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"taskquest/internal/logging"
)

const EnvPrefix = "TASKQUEST"

type Config struct {
	Data   DataConfig     `mapstructure:"data" yaml:"data"`
	Log    logging.Config `mapstructure:"log" yaml:"log"`
	Server ServerConfig   `mapstructure:"server" yaml:"server"`
	Clock  ClockConfig    `mapstructure:"clock" yaml:"clock"`
}

type DataConfig struct {
	// Path of the JSON data file; empty means ~/.taskquest/taskquest-data.json.
	Path string `mapstructure:"path" yaml:"path"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr" yaml:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

type ClockConfig struct {
	// Timezone is an IANA name; empty means the machine's local zone.
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

func Default() *Config {
	return &Config{
		Log: logging.Config{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:7420",
			AllowedOrigins: []string{"*"},
		},
	}
}

// DefaultPath returns ~/.taskquest/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".taskquest", "config.yaml")
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"data":       "data.path",
	"log-level":  "log.level",
	"log-format": "log.format",
	"addr":       "server.addr",
	"timezone":   "clock.timezone",
}

// Load layers defaults, the YAML file at path, TASKQUEST_* environment
// variables and any changed flags, in increasing precedence. An empty path
// means DefaultPath and tolerates the file being absent; an explicit path
// must exist.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("data.path", d.Data.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("clock.timezone", d.Clock.Timezone)
}

// Location resolves Clock.Timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Clock.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("clock.timezone: %w", err)
	}
	return loc, nil
}

// WriteDefault writes the default configuration as YAML to path, creating
// parent directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
