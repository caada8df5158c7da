// Package config loads dataquery settings from defaults, a YAML config
// file, .env files and DATAQUERY_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "DATAQUERY"

// ConfigName is the config file base name searched in the working
// directory and the home directory.
const ConfigName = ".dataquery"

// Config holds the application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig configures the SQLite connection.
type DatabaseConfig struct {
	Path        string        `mapstructure:"path"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

// LogConfig configures the slog handler installed by the CLI.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // text | json
}

// keys lists every setting, so .env values can be mapped onto them.
var keys = []string{
	"database.path",
	"database.busy_timeout",
	"log.level",
	"log.format",
}

// EnvName returns the environment variable read for key,
// e.g. database.path → DATAQUERY_DATABASE_PATH.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Loader loads configuration. The zero value reads the OS filesystem
// relative to the working directory.
type Loader struct {
	Fs  afero.Fs
	Dir string
}

// Load is shorthand for (&Loader{}).Load(configFile).
func Load(configFile string) (*Config, error) {
	return (&Loader{}).Load(configFile)
}

// Load reads configuration. An explicit configFile must exist; otherwise
// .dataquery.yaml is looked up in Dir, then the home directory, and is
// optional.
func (l *Loader) Load(configFile string) (*Config, error) {
	fs := l.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	dir := l.Dir
	if dir == "" {
		dir = "."
	}

	v := viper.New()
	v.SetFs(fs)

	v.SetDefault("database.path", "dataquery.db")
	v.SetDefault("database.busy_timeout", "5s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if configFile != "" {
		path, err := homedir.Expand(configFile)
		if err != nil {
			return nil, fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "dataquery"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	dotenv, err := readDotenv(fs, dir)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		if _, set := os.LookupEnv(EnvName(key)); set {
			continue
		}
		if val, ok := dotenv[EnvName(key)]; ok {
			v.Set(key, val)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Database.Path != ":memory:" {
		path, err := homedir.Expand(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("expand database path: %w", err)
		}
		cfg.Database.Path = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readDotenv reads .env then .env.local from dir; .env.local wins.
// Missing files are skipped.
func readDotenv(fs afero.Fs, dir string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(dir, name)
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			continue
		}
		vars, err := godotenv.Unmarshal(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		for k, val := range vars {
			merged[k] = val
		}
	}
	return merged, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database.path must not be empty")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", c.Level, err)
	}
	return level, nil
}
