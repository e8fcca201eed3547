// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"os"

	"github.com/marketmood/marketmood/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for marketmood.
type Configuration struct {
	Pairs    []Pair
	Analysis AnalysisConfig `yaml:"analysis,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// AnalysisConfig holds shared analysis parameters applied to every pair that
// does not override them.
type AnalysisConfig struct {
	MaxLag int `yaml:"maxLag,omitempty"` // symmetric lag bound; 0 means use the default
}

// Pair names two series files whose co-movement should be scored.
type Pair struct {
	Name    string
	SeriesA string
	SeriesB string
	MaxLag  int `yaml:"maxLag,omitempty"` // per-pair override; 0 means inherit
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// EffectiveMaxLag resolves the lag bound for a pair: the per-pair override
// wins, then the shared analysis setting, then the application default.
func (conf *Configuration) EffectiveMaxLag(pair Pair) int {
	if pair.MaxLag > 0 {
		return pair.MaxLag
	}
	if conf.Analysis.MaxLag > 0 {
		return conf.Analysis.MaxLag
	}
	return constants.DefaultMaxLag
}

// ValidateConfiguration checks the configuration for conditions that will
// not stop the run but likely indicate a mistake, returning one warning per
// finding.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.Pairs) == 0 {
		warnings = append(warnings, "no series pairs are configured; nothing will be analyzed")
	}

	seen := make(map[string]bool)
	for i, pair := range conf.Pairs {
		label := pair.Name
		if label == "" {
			label = fmt.Sprintf("pair %d", i+1)
			warnings = append(warnings, fmt.Sprintf("%s has no name", label))
		}
		if seen[pair.Name] && pair.Name != "" {
			warnings = append(warnings, fmt.Sprintf("duplicate pair name %q", pair.Name))
		}
		seen[pair.Name] = true

		if pair.SeriesA == "" {
			warnings = append(warnings, fmt.Sprintf("%s has no seriesA file", label))
		} else if _, err := os.Stat(pair.SeriesA); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s seriesA file %s is not readable", label, pair.SeriesA))
		}
		if pair.SeriesB == "" {
			warnings = append(warnings, fmt.Sprintf("%s has no seriesB file", label))
		} else if _, err := os.Stat(pair.SeriesB); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s seriesB file %s is not readable", label, pair.SeriesB))
		}
		if pair.MaxLag < 0 {
			warnings = append(warnings, fmt.Sprintf("%s has negative maxLag %d; it will be treated as unset", label, pair.MaxLag))
		}
	}

	if conf.Analysis.MaxLag < 0 {
		warnings = append(warnings, fmt.Sprintf("analysis maxLag %d is negative; the default of %d will be used", conf.Analysis.MaxLag, constants.DefaultMaxLag))
	}

	return warnings
}
