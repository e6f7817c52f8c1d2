/*
 * config_test.go, part of hbocc.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/hbocc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.StartFrame)
	assert.Equal(t, "UNL", cfg.Ligand)
	assert.Equal(t, 0.1, cfg.Threshold)
	assert.Equal(t, "pair", cfg.Mode)
	assert.Equal(t, 1, cfg.Cpus)
	assert.Equal(t, "protein_ligand", cfg.Output.Prefix)
	assert.False(t, cfg.Output.JSON)
	assert.Equal(t, "info", cfg.Log.Level)

	o, err := cfg.Options(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, hbocc.PairMode, o.Mode())
	assert.Equal(t, "UNL", o.Ligand())
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "hbocc.yaml", `
start_frame: 100
ligand: LIG
mode: both
cpus: 4
topology: complex.gro
output:
  prefix: run1
  json: true
log:
  level: debug
  format: json
`)
	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.StartFrame)
	assert.Equal(t, "LIG", cfg.Ligand)
	assert.Equal(t, 0.1, cfg.Threshold)
	assert.Equal(t, 4, cfg.Cpus)
	assert.Equal(t, "complex.gro", cfg.Topology)
	assert.Equal(t, "run1", cfg.Output.Prefix)
	assert.True(t, cfg.Output.JSON)
	assert.Equal(t, "json", cfg.Logging().Format)

	o, err := cfg.Options(nil)
	require.NoError(t, err)
	assert.Equal(t, hbocc.BothModes, o.Mode())
	assert.Equal(t, 100, o.StartFrame())
	assert.Equal(t, 4, o.Cpus())
	assert.NotNil(t, o.Logger())
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "hbocc.toml", "threshold = 0.25\nmode = \"residue\"\n")
	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Threshold)
	assert.Equal(t, "residue", cfg.Mode)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("HBOCC_LIGAND", "MOL")
	t.Setenv("HBOCC_OUTPUT_PREFIX", "fromenv")
	t.Setenv("HBOCC_START_FRAME", "7")
	path := writeConfig(t, "hbocc.yaml", "ligand: LIG\n")
	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "MOL", cfg.Ligand)
	assert.Equal(t, "fromenv", cfg.Output.Prefix)
	assert.Equal(t, 7, cfg.StartFrame)
}

func TestValidate(t *testing.T) {
	for name, content := range map[string]string{
		"threshold": "threshold: 1.5\n",
		"cpus":      "cpus: 0\n",
		"mode":      "mode: chain\n",
		"start":     "start_frame: -2\n",
		"ligand":    "ligand: \" \"\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(New(), writeConfig(t, "bad.yaml", content))
			assert.Error(t, err)
		})
	}
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
