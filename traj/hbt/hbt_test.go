/*
 * hbt_test.go, part of hbocc.
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

package hbt

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/hbocc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFrames = [][]hbocc.Triplet{
	{{Donor: 2, Hydrogen: 7, Acceptor: 15}},
	nil,
	{{Donor: 2, Hydrogen: 7, Acceptor: 15}, {Donor: 15, Hydrogen: 16, Acceptor: 4}},
}

func TestHBTRoundTrip(Te *testing.T) {
	for _, ext := range []string{".hbs", ".hbz", ".hbr", ".hbl", ".hbt", ".dat"} {
		Te.Run(ext, func(t *testing.T) {
			name := filepath.Join(t.TempDir(), "test"+ext)
			header := map[string]string{ThresholdKey: "0.1", TopologyKey: "complex.gro"}
			W, err := NewWriter(name, 20, header)
			require.NoError(t, err)
			for _, f := range testFrames {
				require.NoError(t, W.WNext(f))
			}
			require.NoError(t, W.Close())

			traj, h, err := FileRead(name)
			require.NoError(t, err)
			assert.Equal(t, header, h)
			assert.Equal(t, 20, traj.Len())
			require.Equal(t, len(testFrames), traj.NFrames())
			for i, want := range testFrames {
				f, err := traj.Frame(i)
				require.NoError(t, err)
				assert.Equal(t, i, f.Index)
				assert.Equal(t, len(want), len(f.Bonds))
				for j := range want {
					assert.Equal(t, want[j], f.Bonds[j])
				}
			}
		})
	}
}

func TestHBTReaderNext(Te *testing.T) {
	in := "threshold=0.25\nsomething = else\n** 20\n2 7 15\n*\n*\n"
	R, h, err := NewReader(strings.NewReader(in), "plain.hbt")
	require.NoError(Te, err)
	assert.Equal(Te, "else", h["something"])
	th, ok := R.Threshold()
	assert.True(Te, ok)
	assert.Equal(Te, 0.25, th)
	assert.Equal(Te, 20, R.Len())

	b, err := R.Next()
	require.NoError(Te, err)
	assert.Equal(Te, []hbocc.Triplet{{Donor: 2, Hydrogen: 7, Acceptor: 15}}, b)
	b, err = R.Next()
	require.NoError(Te, err)
	assert.Empty(Te, b)
	_, err = R.Next()
	require.Error(Te, err)
	_, ok = err.(hbocc.LastFrameError)
	assert.True(Te, ok, "expected a last frame error, got %v", err)
	assert.False(Te, R.Readable())
}

func TestHBTBadInput(Te *testing.T) {
	_, _, err := NewReader(strings.NewReader("no header here\n"), "bad.hbt")
	assert.Error(Te, err)
	_, _, err = NewReader(strings.NewReader("** zero\n"), "bad.hbt")
	assert.Error(Te, err)

	R, _, err := NewReader(strings.NewReader("** 10\n2 7 15\n*\n"), "range.hbt")
	require.NoError(Te, err)
	_, err = R.Next()
	require.Error(Te, err)
	terr, ok := err.(hbocc.TrajError)
	require.True(Te, ok)
	assert.True(Te, terr.Critical())
	assert.Equal(Te, "hbt", terr.Format())

	R, _, err = NewReader(strings.NewReader("** 20\n2 7 15\n"), "unclosed.hbt")
	require.NoError(Te, err)
	_, err = R.Next()
	assert.Error(Te, err)

	var buf bytes.Buffer
	W, err := NewStreamWriter(&buf, "out.hbt", 5, nil)
	require.NoError(Te, err)
	assert.Error(Te, W.WNext([]hbocc.Triplet{{Donor: 1, Hydrogen: 2, Acceptor: 5}}))
	_, err = NewStreamWriter(&buf, "out.hbt", 0, nil)
	assert.Error(Te, err)
	_, err = NewStreamWriter(&buf, "out.hbt", 5, map[string]string{"a=b": "c"})
	assert.Error(Te, err)
}

func TestReadTable(Te *testing.T) {
	in := `frame donor hydrogen acceptor
# frame 1 has nothing
3 15 16 4
0 2 7 15

2 2 7 15
`
	traj, err := ReadTable(strings.NewReader(in), 20, 0)
	require.NoError(Te, err)
	assert.Equal(Te, 4, traj.NFrames())
	f, err := traj.Frame(1)
	require.NoError(Te, err)
	assert.Empty(Te, f.Bonds)
	f, err = traj.Frame(3)
	require.NoError(Te, err)
	assert.Equal(Te, []hbocc.Triplet{{Donor: 15, Hydrogen: 16, Acceptor: 4}}, f.Bonds)

	traj, err = ReadTable(strings.NewReader(in), 20, 10)
	require.NoError(Te, err)
	assert.Equal(Te, 10, traj.NFrames())

	_, err = ReadTable(strings.NewReader(in), 20, 2)
	assert.Error(Te, err)
	_, err = ReadTable(strings.NewReader("0 2 7 25\n"), 20, 0)
	assert.Error(Te, err)
	_, err = ReadTable(strings.NewReader("0 2 7\n"), 20, 0)
	assert.Error(Te, err)
}

func TestWriteTraj(Te *testing.T) {
	traj, err := ReadTable(strings.NewReader("0 2 7 15\n2 2 7 15\n"), 20, 0)
	require.NoError(Te, err)
	var buf bytes.Buffer
	W, err := NewStreamWriter(&buf, "out.hbt", traj.Len(), map[string]string{ThresholdKey: "0.1"})
	require.NoError(Te, err)
	require.NoError(Te, WriteTraj(W, traj))
	require.NoError(Te, W.Close())
	assert.Equal(Te, "threshold=0.1\n** 20\n2 7 15\n*\n*\n2 7 15\n*\n", buf.String())
}

func TestErrorTrace(Te *testing.T) {
	dir := Te.TempDir()
	_, _, err := FileRead(filepath.Join(dir, "missing.hbs"))
	require.Error(Te, err)
	assert.Equal(Te, "New <- FileRead", hbocc.Trace(err))

	bad := filepath.Join(dir, "bad.hbt")
	require.NoError(Te, os.WriteFile(bad, []byte("no header here\n"), 0644))
	_, _, err = FileRead(bad)
	require.Error(Te, err)
	assert.Equal(Te, "NewReader <- New <- FileRead", hbocc.Trace(err))
	var herr *Error
	require.ErrorAs(Te, err, &herr)
	assert.Equal(Te, bad, herr.FileName())
}
