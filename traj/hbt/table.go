/*
 * table.go, part of hbocc.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rmera/hbocc"
)

// ReadTable reads a plain listing of hydrogen bonds, one per line, given as four
// integers: the 0-based frame index and the donor, hydrogen and acceptor atom indexes.
// Empty lines and lines starting with "#" are skipped, as is a first line that doesn't
// start with a number (a column header). The lines need not be sorted by frame.
// The returned trajectory has nframes frames, or, if nframes is not positive, as many
// frames as needed for the largest frame index in the listing.
func ReadTable(r io.Reader, natoms, nframes int) (*hbocc.MemTraj, error) {
	if natoms <= 0 {
		return nil, &Error{fmt.Sprintf("Invalid number of atoms %d", natoms), "", []string{"ReadTable"}, true}
	}
	bonds := make(map[int][]hbocc.Triplet)
	maxframe := -1
	s := bufio.NewScanner(r)
	for l := 1; s.Scan(); l++ {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		frame, err := strconv.Atoi(fields[0])
		if err != nil {
			if l == 1 {
				continue //header
			}
			return nil, &Error{fmt.Sprintf("%s: line %d: bad frame index %q", WrongFormat, l, fields[0]), "", []string{"ReadTable"}, true}
		}
		if frame < 0 || (nframes > 0 && frame >= nframes) {
			return nil, &Error{fmt.Sprintf("%s: line %d: frame %d out of range", WrongFormat, l, frame), "", []string{"ReadTable"}, true}
		}
		t, err := tripletDecode(strings.Join(fields[1:], " "), natoms)
		if err != nil {
			return nil, &Error{fmt.Sprintf("%s: line %d: %s", WrongFormat, l, err.Error()), "", []string{"ReadTable"}, true}
		}
		bonds[frame] = append(bonds[frame], t)
		if frame > maxframe {
			maxframe = frame
		}
	}
	if err := s.Err(); err != nil {
		return nil, &Error{err.Error(), "", []string{"ReadTable"}, true}
	}
	if nframes <= 0 {
		nframes = maxframe + 1
	}
	traj := hbocc.NewMemTraj(natoms)
	for i := 0; i < nframes; i++ {
		if err := traj.AddFrame(&hbocc.Frame{Bonds: bonds[i]}); err != nil {
			return nil, err
		}
	}
	return traj, nil
}
