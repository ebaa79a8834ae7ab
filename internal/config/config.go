// Package config resolves settings from flags, ESTIMATE_* environment
// variables, an optional .env file and an optional estimate.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "ESTIMATE"

// Store kinds.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

type StoreConfig struct {
	Kind          string
	SQLitePath    string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type ExportConfig struct {
	PDFFont string
}

type Config struct {
	Store     StoreConfig
	Workspace string
	Log       LogConfig
	Export    ExportConfig
}

// LoadOptions controls where Load looks besides the environment.
type LoadOptions struct {
	// ConfigFile is an explicit config path. It must exist when set.
	ConfigFile string
	// EnvFile defaults to ".env" in the working directory. A missing file
	// is ignored.
	EnvFile string
	// Flags, when set, override every other source for flags the user
	// changed. Flag names use dashes for the underscore in the key.
	Flags *pflag.FlagSet
	// SearchPaths replaces the default estimate.yaml lookup directories.
	SearchPaths []string
}

var flagKeys = map[string]string{
	"store":     "store",
	"db":        "db",
	"workspace": "workspace",
	"log-level": "log_level",
}

func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("store", StoreSQLite)
	v.SetDefault("db", defaultSQLitePath())
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_max_size_mb", 10)
	v.SetDefault("log_max_backups", 3)
	v.SetDefault("log_max_age_days", 28)
	v.SetDefault("log_compress", false)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("estimate")
		v.SetConfigType("yaml")
		paths := opts.SearchPaths
		if paths == nil {
			paths = defaultSearchPaths()
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Store: StoreConfig{
			Kind:          strings.ToLower(strings.TrimSpace(v.GetString("store"))),
			SQLitePath:    expandHome(v.GetString("db")),
			PostgresDSN:   v.GetString("postgres_dsn"),
			RedisAddr:     v.GetString("redis_addr"),
			RedisPassword: v.GetString("redis_password"),
			RedisDB:       v.GetInt("redis_db"),
		},
		Workspace: strings.TrimSpace(v.GetString("workspace")),
		Log: LogConfig{
			Level:      strings.ToLower(v.GetString("log_level")),
			File:       expandHome(v.GetString("log_file")),
			MaxSizeMB:  v.GetInt("log_max_size_mb"),
			MaxBackups: v.GetInt("log_max_backups"),
			MaxAgeDays: v.GetInt("log_max_age_days"),
			Compress:   v.GetBool("log_compress"),
		},
		Export: ExportConfig{
			PDFFont: expandHome(v.GetString("pdf_font")),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Store.Kind {
	case StoreSQLite:
		if cfg.Store.SQLitePath == "" {
			return fmt.Errorf("ESTIMATE_DB is required for the sqlite store")
		}
	case StorePostgres:
		if cfg.Store.PostgresDSN == "" {
			return fmt.Errorf("ESTIMATE_POSTGRES_DSN is required for the postgres store")
		}
	case StoreRedis:
		if cfg.Store.RedisAddr == "" {
			return fmt.Errorf("ESTIMATE_REDIS_ADDR is required for the redis store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want sqlite, postgres, redis or memory)", cfg.Store.Kind)
	}
	if strings.Contains(cfg.Workspace, ":") {
		return fmt.Errorf("workspace %q must not contain ':'", cfg.Workspace)
	}
	return nil
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "estimate.db"
	}
	return filepath.Join(home, ".estimate", "estimate.db")
}

func defaultSearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".estimate"))
	}
	return paths
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
