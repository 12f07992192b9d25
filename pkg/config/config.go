// Package config builds runtime configuration from, in order of
// precedence: command-line flags, a YAML config file, and environment
// variables (WEALTHWISE_*, with .env support).
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config is the runtime configuration shared by the CLI and server.
type Config struct {
	// ListenAddr is the HTTP listen address of the serve command.
	ListenAddr string
	// OutputDir is where convert writes exported files; empty means
	// alongside the input file (or stdout for single files).
	OutputDir string
	// AccountID is the default account transactions are imported into
	// when a manifest entry or request does not name one.
	AccountID string
}

// flagBindings maps config keys to the CLI flag that overrides them.
var flagBindings = map[string]string{
	"listen_addr": "listen",
	"output_dir":  "output",
	"account_id":  "account",
}

// Build loads configuration. cfgFile may be empty, in which case
// ./config.yaml is used when present.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	_ = gotenv.Load() // .env is optional

	v := viper.New()
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("output_dir", "")
	v.SetDefault("account_id", "default")

	v.SetEnvPrefix("WEALTHWISE")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if flags != nil {
		for key, flagName := range flagBindings {
			if f := flags.Lookup(flagName); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	return &Config{
		ListenAddr: v.GetString("listen_addr"),
		OutputDir:  v.GetString("output_dir"),
		AccountID:  v.GetString("account_id"),
	}, nil
}
