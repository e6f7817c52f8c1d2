/*
 * tally.go, part of hbocc.
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

import (
	"fmt"
	"sort"
	"strings"
)

// PairTally counts, for each protein-ligand atom pair, the frames in which
// the pair was found bonded.
type PairTally struct {
	counts map[PairKey]int
	last   map[PairKey]int //last frame in which each pair was counted
}

// NewPairTally returns an empty PairTally.
func NewPairTally() *PairTally {
	return &PairTally{counts: make(map[PairKey]int), last: make(map[PairKey]int)}
}

// Add counts the contact c for frame. A pair is counted at most once per frame,
// so two hydrogens of the same donor bonded to the same acceptor count once.
func (P *PairTally) Add(frame int, c Contact) {
	k := c.Key()
	if l, ok := P.last[k]; ok && l == frame {
		return
	}
	P.last[k] = frame
	P.counts[k]++
}

// Merge adds the counts of other, which must be a *PairTally built from a frame
// range that doesn't overlap the receiver's, to the receiver.
func (P *PairTally) Merge(other Tally) error {
	o, ok := other.(*PairTally)
	if !ok {
		return newCollaboratorError(nil, "PairTally.Merge", "can't merge a %T into a PairTally", other)
	}
	for k, v := range o.counts {
		P.counts[k] += v
		if l, ok := o.last[k]; ok && l > P.last[k] {
			P.last[k] = l
		}
	}
	return nil
}

// Len returns the number of distinct pairs observed.
func (P *PairTally) Len() int {
	return len(P.counts)
}

// Count returns the number of frames in which the pair k was observed.
func (P *PairTally) Count(k PairKey) int {
	return P.counts[k]
}

// Keys returns the observed pairs, sorted by their first and then second atom.
func (P *PairTally) Keys() []PairKey {
	ret := make([]PairKey, 0, len(P.counts))
	for k := range P.counts {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].A != ret[j].A {
			return ret[i].A < ret[j].A
		}
		return ret[i].B < ret[j].B
	})
	return ret
}

// ResidueTally keeps, for each protein residue, the set of frames in which
// the residue made at least one hydrogen bond with the ligand.
type ResidueTally struct {
	frames map[int]map[int]struct{}
}

// NewResidueTally returns an empty ResidueTally.
func NewResidueTally() *ResidueTally {
	return &ResidueTally{frames: make(map[int]map[int]struct{})}
}

// Add records that the residue of the protein atom of c was bonded in frame.
// Any number of contacts of one residue in a frame count as one.
func (R *ResidueTally) Add(frame int, c Contact) {
	res := c.Protein.Residue.Index
	set, ok := R.frames[res]
	if !ok {
		set = make(map[int]struct{})
		R.frames[res] = set
	}
	set[frame] = struct{}{}
}

// Merge puts in the receiver the union of its frame sets and those of other,
// which must be a *ResidueTally.
func (R *ResidueTally) Merge(other Tally) error {
	o, ok := other.(*ResidueTally)
	if !ok {
		return newCollaboratorError(nil, "ResidueTally.Merge", "can't merge a %T into a ResidueTally", other)
	}
	for res, set := range o.frames {
		dst, ok := R.frames[res]
		if !ok {
			dst = make(map[int]struct{}, len(set))
			R.frames[res] = dst
		}
		for f := range set {
			dst[f] = struct{}{}
		}
	}
	return nil
}

// Len returns the number of distinct residues observed.
func (R *ResidueTally) Len() int {
	return len(R.frames)
}

// Count returns the number of frames in which the residue with index res
// was bonded to the ligand.
func (R *ResidueTally) Count(res int) int {
	return len(R.frames[res])
}

// Frames returns the sorted frame indexes in which residue res was bonded.
func (R *ResidueTally) Frames(res int) []int {
	set := R.frames[res]
	ret := make([]int, 0, len(set))
	for f := range set {
		ret = append(ret, f)
	}
	sort.Ints(ret)
	return ret
}

// Residues returns the indexes of the observed residues, in increasing order.
func (R *ResidueTally) Residues() []int {
	ret := make([]int, 0, len(R.frames))
	for r := range R.frames {
		ret = append(ret, r)
	}
	sort.Ints(ret)
	return ret
}

// Mode selects the aggregation done by a run.
type Mode int

const (
	PairMode    Mode = 1 << iota //count atom pairs
	ResidueMode                  //count frames per protein residue
	BothModes   = PairMode | ResidueMode
)

func (m Mode) String() string {
	switch m {
	case PairMode:
		return "pair"
	case ResidueMode:
		return "residue"
	case BothModes:
		return "both"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the Mode named by s ("pair", "residue" or "both"), in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pair", "pairs", "atom":
		return PairMode, nil
	case "residue", "residues":
		return ResidueMode, nil
	case "both", "all":
		return BothModes, nil
	}
	return 0, newConfigError("ParseMode", "unknown aggregation mode %q", s)
}

// Pair returns true if m includes the pair tally.
func (m Mode) Pair() bool { return m&PairMode != 0 }

// Residue returns true if m includes the residue tally.
func (m Mode) Residue() bool { return m&ResidueMode != 0 }

// newTallies returns the tallies needed for mode m. Unused ones are nil.
func newTallies(m Mode) (*PairTally, *ResidueTally) {
	var p *PairTally
	var r *ResidueTally
	if m.Pair() {
		p = NewPairTally()
	}
	if m.Residue() {
		r = NewResidueTally()
	}
	return p, r
}
