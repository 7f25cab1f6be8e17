// Package config is for app-wide settings that are unmarshalled from Viper
// (see /internal/cli).
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// SearchConfig holds the knobs for one search run.
type SearchConfig struct {
	// number of match/insert/delete column triples in the model
	ModelLength int `mapstructure:"model-length"`

	// maximum FASTA records read per run (0 = unlimited)
	MaxSequences int `mapstructure:"max-sequences"`

	// worker threads; 0 means all CPUs
	Threads int `mapstructure:"threads"`

	// stdout format: text | tsv | json
	Output string `mapstructure:"output"`

	// ranked rows printed to stdout (0 = all)
	Top int `mapstructure:"top"`

	// reject residues outside the amino-acid alphabet
	Strict bool `mapstructure:"strict"`
}

// Config is the root-level settings struct, a mix of settings available in
// settings.yaml and those bound from the command line.
type Config struct {
	Search SearchConfig `mapstructure:"search"`
}

// SetDefaults registers the baseline values every run starts from.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("search.model-length", 50)
	v.SetDefault("search.max-sequences", 1000)
	v.SetDefault("search.threads", 0)
	v.SetDefault("search.output", "text")
	v.SetDefault("search.top", 10)
	v.SetDefault("search.strict", false)
}

// New returns a Config populated from v.
func New(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}
