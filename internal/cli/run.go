/*
 * run.go, part of hbocc.
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

package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/rmera/hbocc"
	"github.com/rmera/hbocc/hbplot"
	"github.com/rmera/hbocc/internal/config"
	"github.com/rmera/hbocc/report"
	"github.com/rmera/hbocc/traj/hbt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute hydrogen bond occupancies",
		Long: "run reads the system topology from a structure file (gro or pdb) and the hydrogen\n" +
			"bonds of each frame from an hbt file, and writes the occupancy reports.",
		Example: "  hbocc run -t complex.gro -b bonds.hbs --mode both --start-frame 100",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd)
		},
	}
	f := cmd.Flags()
	f.StringP("topology", "t", "", "structure file with the system topology (.gro, .pdb)")
	f.StringP("hbonds", "b", "", "hydrogen bond trajectory file (see 'hbocc pack')")
	f.IntP("start-frame", "s", 0, "first frame to analyze (0-based)")
	f.StringP("ligand", "l", hbocc.DefaultLigand, "residue name of the ligand")
	f.Float64("threshold", hbocc.DefaultThreshold, "frequency threshold for the bond detector")
	f.StringP("mode", "m", config.DefaultMode, "aggregation: pair, residue or both")
	f.IntP("cpus", "j", 1, "number of goroutines processing frames")
	f.StringP("prefix", "o", config.DefaultOutputPrefix, "prefix of the output files")
	f.Bool("json", false, "also write a JSON report")
	f.Bool("plot", false, "also plot the occupancies as PNG bar charts")
	for key, name := range map[string]string{
		config.KeyTopology:     "topology",
		config.KeyHBonds:       "hbonds",
		config.KeyStartFrame:   "start-frame",
		config.KeyLigand:       "ligand",
		config.KeyThreshold:    "threshold",
		config.KeyMode:         "mode",
		config.KeyCpus:         "cpus",
		config.KeyOutputPrefix: "prefix",
		config.KeyOutputJSON:   "json",
		config.KeyOutputPlot:   "plot",
	} {
		a.bind(f, key, name)
	}
	return cmd
}

func (a *app) run(cmd *cobra.Command) error {
	cfg, log := a.cfg, a.log
	defer log.Sync() //nolint:errcheck
	if cfg.Topology == "" || cfg.HBonds == "" {
		return fmt.Errorf("run: both a topology and an hbonds file are needed")
	}
	top, _, err := hbocc.StructureFileRead(cfg.Topology)
	if err != nil {
		return fmt.Errorf("run: reading topology: %w", err)
	}
	log.Info("topology read",
		zap.String("file", cfg.Topology),
		zap.Int("atoms", top.Len()),
		zap.Int("residues", top.NResidues()),
		zap.Int("protein_residues", top.NProteinResidues()))
	traj, header, err := hbt.FileRead(cfg.HBonds)
	if err != nil {
		return fmt.Errorf("run: reading hydrogen bonds: %w", err)
	}
	log.Info("hydrogen bonds read", zap.String("file", cfg.HBonds), zap.Int("frames", traj.NFrames()))
	if t, ok := header[hbt.ThresholdKey]; ok {
		if th, err := strconv.ParseFloat(t, 64); err == nil && th != cfg.Threshold {
			log.Warn("the bonds were recorded with a different threshold",
				zap.Float64("recorded", th), zap.Float64("requested", cfg.Threshold))
		}
	}
	o, err := cfg.Options(log)
	if err != nil {
		return err
	}
	res, err := hbocc.Run(traj, top, hbocc.Precomputed{}, o)
	if err != nil {
		log.Error("run failed", zap.Error(err), zap.String("trace", hbocc.Trace(err)))
		return fmt.Errorf("run: %w", err)
	}

	var run *report.Run
	if cfg.Output.JSON {
		run = report.NewRun(res, cfg.Ligand, cfg.Topology, cfg.HBonds)
		run.Extra = header
	}
	written, err := report.WriteFiles(cfg.Output.Prefix, res, run)
	if err != nil {
		return fmt.Errorf("run: writing reports: %w", err)
	}
	if cfg.Output.Plot {
		plots, err := a.plot(res, cfg.Output.Prefix)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		written = append(written, plots...)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Frames analyzed: %d (from frame %d)\n", res.FramesProcessed, res.StartFrame)
	if res.Mode.Pair() {
		fmt.Fprintf(out, "Protein-ligand atom pairs: %d\n", len(res.Pairs))
	}
	if res.Mode.Residue() {
		fmt.Fprintln(out, "Protein residues bonded to the ligand:")
		if err := report.WriteRanked(out, res.Residues); err != nil {
			return err
		}
	}
	for _, w := range written {
		fmt.Fprintf(out, "Wrote %s\n", w)
	}
	return nil
}

// plot draws the bar charts for the non-empty tables in res.
func (a *app) plot(res *hbocc.Result, prefix string) ([]string, error) {
	var written []string
	base := filepath.Base(prefix)
	if len(res.Pairs) > 0 {
		name := prefix + "_hbonds.png"
		if err := hbplot.PairBars(res.Pairs, base+": atom pair occupancy", name); err != nil {
			return written, err
		}
		written = append(written, name)
	}
	if len(res.Residues) > 0 {
		name := prefix + "_residues.png"
		if err := hbplot.ResidueBars(res.Residues, base+": residue occupancy", name); err != nil {
			return written, err
		}
		written = append(written, name)
	}
	if len(written) == 0 {
		a.log.Warn("nothing to plot")
	}
	return written, nil
}
