/*
 * root.go, part of hbocc.
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

// Package cli implements the hbocc command line.
package cli

import (
	"fmt"

	"github.com/rmera/hbocc/internal/config"
	"github.com/rmera/hbocc/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Build-time variables, set with ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
	log        *zap.Logger
}

// NewRootCommand returns the hbocc root command, with its subcommands.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}
	cmd := &cobra.Command{
		Use:   "hbocc",
		Short: "Protein-ligand hydrogen bond occupancy along MD trajectories",
		Long: "hbocc computes, from the hydrogen bonds found in each frame of a molecular dynamics\n" +
			"trajectory, the percentage of frames in which each protein-ligand atom pair, or each\n" +
			"protein residue, is hydrogen-bonded to the ligand.",
		Version:           fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		PersistentPreRunE: a.init,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "configuration file (yaml, toml or json)")
	pf.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.String("log-format", config.DefaultLogFormat, "log format (console, json)")
	a.bind(pf, config.KeyLogLevel, "log-level")
	a.bind(pf, config.KeyLogFormat, "log-format")

	cmd.AddCommand(newRunCommand(a), newPackCommand(a))
	return cmd
}

// bind ties the flag name in fs to the configuration key.
func (a *app) bind(fs *pflag.FlagSet, key, name string) {
	if err := a.v.BindPFlag(key, fs.Lookup(name)); err != nil {
		panic(fmt.Sprintf("cli: can't bind flag %s: %v", name, err))
	}
}

// init loads the configuration and builds the logger. It runs before any subcommand.
func (a *app) init(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Logging())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// Execute runs the hbocc command line with the arguments of the process.
func Execute() error {
	cmd := NewRootCommand()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}
