/*
 * cli_test.go, part of hbocc.
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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/hbocc"
	"github.com/rmera/hbocc/traj/hbt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSystem writes, in dir, a gro file with an aspartate (atoms 0-2) and
// a ligand (atoms 3-4), and a listing of bonds for 4 frames.
func writeSystem(t *testing.T, dir string) (gro, listing string) {
	t.Helper()
	atoms := []struct {
		resnum        int
		resname, name string
	}{
		{1, "ASP", "N"}, {1, "ASP", "H"}, {1, "ASP", "OD1"},
		{2, "UNL", "O1"}, {2, "UNL", "H1"},
	}
	var b strings.Builder
	b.WriteString("test\n")
	fmt.Fprintf(&b, "%5d\n", len(atoms))
	for i, a := range atoms {
		fmt.Fprintf(&b, "%5d%-5s%5s%5d%8.3f%8.3f%8.3f\n", a.resnum, a.resname, a.name, i+1, 0.1*float64(i), 0.0, 0.0)
	}
	b.WriteString("   1.00000   1.00000   1.00000\n")
	gro = filepath.Join(dir, "complex.gro")
	require.NoError(t, os.WriteFile(gro, []byte(b.String()), 0644))
	listing = filepath.Join(dir, "bonds.txt")
	table := "frame donor hydrogen acceptor\n0 0 1 3\n1 0 1 3\n1 3 4 2\n"
	require.NoError(t, os.WriteFile(listing, []byte(table), 0644))
	return gro, listing
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "hbocc", cmd.Use)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["pack"])
}

func TestPackAndRun(t *testing.T) {
	dir := t.TempDir()
	gro, listing := writeSystem(t, dir)
	hbs := filepath.Join(dir, "bonds.hbs")

	out, err := execute(t, "pack", "-t", gro, "--frames", "4", listing, hbs)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Wrote 4 frames")
	traj, header, err := hbt.FileRead(hbs)
	require.NoError(t, err)
	assert.Equal(t, 4, traj.NFrames())
	assert.Equal(t, 5, traj.Len())
	assert.Equal(t, "complex.gro", header[hbt.TopologyKey])
	assert.Equal(t, "0.1", header[hbt.ThresholdKey])

	prefix := filepath.Join(dir, "protein_ligand")
	out, err = execute(t, "run", "-t", gro, "-b", hbs, "--mode", "both", "-o", prefix, "--json", "--plot")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Frames analyzed: 4")
	assert.Contains(t, out, "Asp0 - 50.0%")

	pairs, err := os.ReadFile(prefix + "_hbonds.csv")
	require.NoError(t, err)
	assert.Equal(t, "Protein_Chain,Protein_ResName,Protein_ResID,Protein_Atom,Ligand_ResName,Ligand_ResID,Ligand_Atom,Occupancy_Percent\n"+
		"0,ASP,0,N,UNL,1,O1,50.0\n"+
		"0,ASP,0,OD1,UNL,1,O1,25.0\n", string(pairs))
	residues, err := os.ReadFile(prefix + "_residues.csv")
	require.NoError(t, err)
	assert.Equal(t, "Protein_Chain,Protein_ResName,Protein_ResID,Occupancy_Percent\n0,ASP,0,50.0\n", string(residues))
	ranked, err := os.ReadFile(prefix + "_residues.txt")
	require.NoError(t, err)
	assert.Equal(t, "Asp0 - 50.0%\n", string(ranked))

	data, err := os.ReadFile(prefix + ".json")
	require.NoError(t, err)
	var run map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &run))
	assert.Equal(t, "both", run["mode"])
	assert.NotEmpty(t, run["run_id"])
	_, err = os.Stat(prefix + "_residues.png")
	assert.NoError(t, err)

	//nothing left to process from frame 4 on.
	_, err = execute(t, "run", "-t", gro, "-b", hbs, "-s", "4", "-o", prefix)
	require.Error(t, err)
	var cerr *hbocc.ConfigError
	assert.True(t, errors.As(err, &cerr))
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	gro, listing := writeSystem(t, dir)
	hbs := filepath.Join(dir, "bonds.hbz")
	_, err := execute(t, "pack", "-t", gro, listing, hbs)
	require.NoError(t, err)

	prefix := filepath.Join(dir, "fromfile")
	conf := filepath.Join(dir, "hbocc.yaml")
	content := fmt.Sprintf("topology: %s\nhbonds: %s\nmode: residue\nstart_frame: 1\noutput:\n  prefix: %s\n", gro, hbs, prefix)
	require.NoError(t, os.WriteFile(conf, []byte(content), 0644))
	out, err := execute(t, "run", "--config", conf)
	require.NoError(t, err, out)
	//the listing has 2 frames, so only frame 1 is analyzed.
	residues, err := os.ReadFile(prefix + "_residues.csv")
	require.NoError(t, err)
	assert.Equal(t, "Protein_Chain,Protein_ResName,Protein_ResID,Occupancy_Percent\n0,ASP,0,100.0\n", string(residues))
	_, err = os.Stat(prefix + "_hbonds.csv")
	assert.True(t, os.IsNotExist(err))
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	gro, listing := writeSystem(t, dir)
	_, err := execute(t, "run", "-t", gro)
	assert.Error(t, err)
	_, err = execute(t, "run", "-t", gro, "-b", filepath.Join(dir, "missing.hbs"))
	assert.Error(t, err)
	_, err = execute(t, "run", "-t", gro, "-b", listing, "--threshold", "3")
	assert.Error(t, err)
	_, err = execute(t, "pack", listing, filepath.Join(dir, "x.hbs"))
	assert.Error(t, err, "no atom count")
	_, err = execute(t, "pack", "-n", "2", listing, filepath.Join(dir, "x.hbs"))
	assert.Error(t, err, "atom index out of range")
}
