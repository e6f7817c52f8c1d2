/*
 * pack.go, part of hbocc.
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
	"os"
	"path/filepath"
	"strconv"

	"github.com/rmera/hbocc"
	"github.com/rmera/hbocc/traj/hbt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type packOptions struct {
	topology  string
	natoms    int
	frames    int
	threshold float64
	level     int
}

func newPackCommand(a *app) *cobra.Command {
	po := &packOptions{}
	cmd := &cobra.Command{
		Use:   "pack <listing> <output.hbs>",
		Short: "Convert a plain listing of hydrogen bonds into an hbt file",
		Long: "pack reads a text listing with one hydrogen bond per line, given as the frame index\n" +
			"followed by the donor, hydrogen and acceptor atom indexes (all 0-based), and writes\n" +
			"it as an hbt file. The compression is chosen by the last letter of the output\n" +
			"extension: s (zstd), z (gzip), r (deflate), l (lzw) or t (none).",
		Example: "  hbocc pack -t complex.gro --frames 5000 bonds.txt bonds.hbs",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pack(cmd, po, args[0], args[1])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&po.topology, "topology", "t", "", "structure file, to take the number of atoms from")
	f.IntVarP(&po.natoms, "natoms", "n", 0, "number of atoms in the system, if no topology is given")
	f.IntVarP(&po.frames, "frames", "f", 0, "number of frames in the trajectory (default: last frame in the listing + 1)")
	f.Float64Var(&po.threshold, "threshold", hbocc.DefaultThreshold, "frequency threshold used to find the bonds")
	f.IntVar(&po.level, "level", 9, "compression level for gzip and deflate")
	return cmd
}

func (a *app) pack(cmd *cobra.Command, po *packOptions, in, out string) error {
	natoms := po.natoms
	header := map[string]string{hbt.ThresholdKey: strconv.FormatFloat(po.threshold, 'g', -1, 64)}
	if po.topology != "" {
		top, _, err := hbocc.StructureFileRead(po.topology)
		if err != nil {
			return fmt.Errorf("pack: reading topology: %w", err)
		}
		natoms = top.Len()
		header[hbt.TopologyKey] = filepath.Base(po.topology)
	}
	if natoms <= 0 {
		return fmt.Errorf("pack: the number of atoms is needed (--topology or --natoms)")
	}
	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}
	defer f.Close()
	traj, err := hbt.ReadTable(f, natoms, po.frames)
	if err != nil {
		return fmt.Errorf("pack: reading %s: %w", in, err)
	}
	W, err := hbt.NewWriter(out, natoms, header, po.level)
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}
	if err := hbt.WriteTraj(W, traj); err != nil {
		W.Close()
		return fmt.Errorf("pack: writing %s: %w", out, err)
	}
	if err := W.Close(); err != nil {
		return fmt.Errorf("pack: closing %s: %w", out, err)
	}
	a.log.Info("packed hydrogen bonds", zap.String("file", out), zap.Int("frames", traj.NFrames()), zap.Int("atoms", natoms))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d frames to %s\n", traj.NFrames(), out)
	return nil
}
