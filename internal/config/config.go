// Package config resolves shelf settings from flags, environment, .env files
// and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Makepad-fr/shelf/internal/logging"
	"github.com/Makepad-fr/shelf/internal/store"
)

// EnvPrefix namespaces environment overrides, e.g. SHELF_STORE_BACKEND.
const EnvPrefix = "SHELF"

// Config keys.
const (
	KeyBackend      = "store.backend"
	KeyPath         = "store.path"
	KeyDefaultsFile = "defaults_file"
	KeyTheme        = "theme"
	KeyLogLevel     = "log.level"
	KeyVerbose      = "verbose"
)

const configName = ".shelf"

// Config is the resolved configuration for one run.
type Config struct {
	Backend      string
	Path         string
	DefaultsFile string
	Theme        string
	LogLevel     string
	Verbose      bool
}

// DefaultStoreDir is ~/.shelf, or .shelf in the working directory when the
// home directory is unknown.
func DefaultStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configName
	}
	return filepath.Join(home, configName)
}

// Init wires defaults, .env files, environment and the config file into v.
// A missing config file is not an error unless configFile names one.
func Init(v *viper.Viper, configFile string) error {
	v.SetDefault(KeyBackend, store.BackendJSON)
	v.SetDefault(KeyPath, DefaultStoreDir())
	v.SetDefault(KeyTheme, "classic")
	v.SetDefault(KeyLogLevel, logging.DefaultLevel)

	loadEnvFiles()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(configName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// loadEnvFiles loads .env.local before .env. godotenv never overwrites a
// variable, so the process environment wins over .env.local, which wins
// over .env.
func loadEnvFiles() {
	for _, f := range []string{".env.local", ".env"} {
		_ = godotenv.Load(f)
	}
}

// FromViper extracts and validates a Config.
func FromViper(v *viper.Viper) (Config, error) {
	c := Config{
		Backend:      strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		Path:         v.GetString(KeyPath),
		DefaultsFile: v.GetString(KeyDefaultsFile),
		Theme:        v.GetString(KeyTheme),
		LogLevel:     v.GetString(KeyLogLevel),
		Verbose:      v.GetBool(KeyVerbose),
	}
	switch c.Backend {
	case store.BackendJSON, store.BackendSQLite, store.BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown store backend %q (want json, sqlite or memory)", c.Backend)
	}
	if c.Path == "" && c.Backend != store.BackendMemory {
		return Config{}, errors.New("store path is empty")
	}
	return c, nil
}
