// Package config resolves rowsql settings from flags, environment variables,
// a .env file and an optional .rowsql.yaml config file.
//
// Precedence, highest first: command-line flags, ROWSQL_* environment
// variables (including those loaded from .env), the config file, defaults.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AppFs is the filesystem used to look for .env files
var AppFs = afero.NewOsFs()

const (
	configName = ".rowsql"
	envPrefix  = "ROWSQL"
)

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"source":     "source",
	"table":      "table",
	"format":     "format",
	"log-level":  "log.level",
	"log-format": "log.format",
	"no-color":   "no_color",
}

// Config holds the resolved configuration
type Config struct {
	Source    string
	Table     string
	Format    string
	LogLevel  string
	LogFormat string
	NoColor   bool
	// File is the config file that was read, if any
	File string
}

// Load resolves the configuration. Flags that were set on the command line
// override every other source.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("source", "")
	v.SetDefault("table", "")
	v.SetDefault("format", "jsonl")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("no_color", false)

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "rowsql"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if _, err := AppFs.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	return &Config{
		Source:    v.GetString("source"),
		Table:     v.GetString("table"),
		Format:    strings.ToLower(v.GetString("format")),
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		NoColor:   v.GetBool("no_color"),
		File:      v.ConfigFileUsed(),
	}, nil
}

// RegisterFlags adds the flags Load understands to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("source", "s", "", "table source: parquet, csv, json, jsonl or sqlite file (default: built-in student table)")
	flags.StringP("table", "t", "", "table name (default: file name without extension)")
	flags.StringP("format", "f", "jsonl", "output format: jsonl, json, csv, table")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text, json")
	flags.Bool("no-color", false, "disable colored output")
}
