/*
 * config.go, part of hbocc.
 *
 * Copyright 2024 The hbocc Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config loads the settings of an hbocc run from a file, HBOCC_*
// environment variables and command line flags, in increasing priority.
package config

import (
	"fmt"
	"strings"

	"github.com/rmera/hbocc"
	"github.com/rmera/hbocc/internal/logging"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix is the prefix of the environment variables read. Nested keys use "_"
// instead of ".", e.g. HBOCC_OUTPUT_PREFIX for output.prefix.
const EnvPrefix = "HBOCC"

// Keys of the settings.
const (
	KeyStartFrame   = "start_frame"
	KeyLigand       = "ligand"
	KeyThreshold    = "threshold"
	KeyMode         = "mode"
	KeyCpus         = "cpus"
	KeyTopology     = "topology"
	KeyHBonds       = "hbonds"
	KeyOutputPrefix = "output.prefix"
	KeyOutputJSON   = "output.json"
	KeyOutputPlot   = "output.plot"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
)

const (
	DefaultMode         = "pair"
	DefaultOutputPrefix = "protein_ligand"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
)

// Config is the full configuration of a run.
type Config struct {
	StartFrame int          `mapstructure:"start_frame"`
	Ligand     string       `mapstructure:"ligand"`
	Threshold  float64      `mapstructure:"threshold"`
	Mode       string       `mapstructure:"mode"`
	Cpus       int          `mapstructure:"cpus"`
	Topology   string       `mapstructure:"topology"`
	HBonds     string       `mapstructure:"hbonds"`
	Output     OutputConfig `mapstructure:"output"`
	Log        LogConfig    `mapstructure:"log"`
}

// OutputConfig selects the reports written.
type OutputConfig struct {
	Prefix string `mapstructure:"prefix"`
	JSON   bool   `mapstructure:"json"`
	Plot   bool   `mapstructure:"plot"`
}

// LogConfig sets up the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance with the defaults set and the environment
// variables bound.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// SetDefaults sets the default value of every key in v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStartFrame, 0)
	v.SetDefault(KeyLigand, hbocc.DefaultLigand)
	v.SetDefault(KeyThreshold, hbocc.DefaultThreshold)
	v.SetDefault(KeyMode, DefaultMode)
	v.SetDefault(KeyCpus, 1)
	v.SetDefault(KeyTopology, "")
	v.SetDefault(KeyHBonds, "")
	v.SetDefault(KeyOutputPrefix, DefaultOutputPrefix)
	v.SetDefault(KeyOutputJSON, false)
	v.SetDefault(KeyOutputPlot, false)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
}

// Load reads the configuration file configPath into v, if a path is given, and
// returns the resulting, validated, configuration. The file format is taken from
// its extension (yaml, toml, json...).
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: can't read %q: %w", configPath, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: can't unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that can be checked without reading any file.
func (c *Config) Validate() error {
	if c.StartFrame < 0 {
		return fmt.Errorf("negative start frame %d", c.StartFrame)
	}
	if strings.TrimSpace(c.Ligand) == "" {
		return fmt.Errorf("empty ligand residue name")
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold %g out of (0,1]", c.Threshold)
	}
	if c.Cpus < 1 {
		return fmt.Errorf("cpus must be at least 1, got %d", c.Cpus)
	}
	if _, err := hbocc.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.Output.Prefix == "" {
		return fmt.Errorf("empty output prefix")
	}
	return nil
}

// Options returns the run options given by the configuration, logging to log.
func (c *Config) Options(log *zap.Logger) (*hbocc.Options, error) {
	m, err := hbocc.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	o := hbocc.DefaultOptions()
	o.StartFrame(c.StartFrame)
	o.Ligand(c.Ligand)
	o.Threshold(c.Threshold)
	o.Mode(m)
	o.Cpus(c.Cpus)
	o.Logger(log)
	return o, nil
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.Log.Level, Format: c.Log.Format}
}
