// Config loading for the nbkit CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/nbkit"
	"github.com/aretw0/nbkit/pkg/codec"
)

const (
	configFileName = ".nbkit.yaml"
	envPrefix      = "NBKIT"

	cfgKeyStrict         = "strict"
	cfgKeyStrictNumbers  = "strict_numbers"
	cfgKeyAtomic         = "atomic"
	cfgKeyIndexedGlyphs  = "indexed_glyphs"
	cfgKeyColor          = "color"
	cfgKeyPercentVersion = "percent_version"
)

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"strict":          cfgKeyStrict,
	"strict-numbers":  cfgKeyStrictNumbers,
	"atomic":          cfgKeyAtomic,
	"indexed":         cfgKeyIndexedGlyphs,
	"color":           cfgKeyColor,
	"percent-version": cfgKeyPercentVersion,
}

// loadConfig resolves configuration from, in increasing priority: defaults,
// the config file (explicit path or nearest .nbkit.yaml), NBKIT_* environment
// variables and command-line flags. A missing config file is not an error.
func loadConfig(explicit string, cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyPercentVersion, codec.DefaultPercentVersion)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path := explicit
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			if dir, err := nbkit.FindConfig(cwd); err == nil {
				path = filepath.Join(dir, configFileName)
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	return v, nil
}
