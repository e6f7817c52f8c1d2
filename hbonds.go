/*
 * hbonds.go, part of hbocc.
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

package hbocc

import "fmt"

// DefaultThreshold is the frequency threshold given to the detector unless told otherwise.
const DefaultThreshold = 0.1

// Triplet is one hydrogen bond as reported by a detector, given by the
// indexes of the donor, hydrogen and acceptor atoms.
type Triplet struct {
	Donor    int
	Hydrogen int
	Acceptor int
}

func (t Triplet) String() string {
	return fmt.Sprintf("%d-%d...%d", t.Donor, t.Hydrogen, t.Acceptor)
}

// DetectorFunc allows an ordinary function to be used as a Detector.
type DetectorFunc func(f *Frame, threshold float64, periodic bool) ([]Triplet, error)

// Detect calls D.
func (D DetectorFunc) Detect(f *Frame, threshold float64, periodic bool) ([]Triplet, error) {
	return D(f, threshold, periodic)
}

// Precomputed is a Detector that returns the bonds already stored in each frame,
// for trajectories recorded from an external detector (see the traj/hbt package).
// The threshold and periodicity were decided when the bonds were recorded,
// so they are ignored here.
type Precomputed struct{}

// Detect returns the bonds stored in f.
func (Precomputed) Detect(f *Frame, threshold float64, periodic bool) ([]Triplet, error) {
	return f.Bonds, nil
}

// Extract obtains the hydrogen bonds in frame f using the detector d, with the given
// frequency threshold and no periodic boundary conditions. Repeated triplets are
// returned only once, in the order in which they were first reported.
func Extract(d Detector, f *Frame, threshold float64) ([]Triplet, error) {
	trips, err := d.Detect(f, threshold, false)
	if err != nil {
		return nil, newCollaboratorError(err, "Extract", "detector failed")
	}
	if len(trips) < 2 {
		return trips, nil
	}
	seen := make(map[Triplet]struct{}, len(trips))
	ret := make([]Triplet, 0, len(trips))
	for _, t := range trips {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		ret = append(ret, t)
	}
	return ret, nil
}
