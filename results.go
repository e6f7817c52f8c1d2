/*
 * results.go, part of hbocc.
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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PairRow is the occupancy of one protein-ligand atom pair.
type PairRow struct {
	ProteinChain   int     `json:"protein_chain"`
	ProteinResName string  `json:"protein_resname"`
	ProteinResID   int     `json:"protein_resid"`
	ProteinAtom    string  `json:"protein_atom"`
	LigandResName  string  `json:"ligand_resname"`
	LigandResID    int     `json:"ligand_resid"`
	LigandAtom     string  `json:"ligand_atom"`
	Occupancy      float64 `json:"occupancy_percent"`
	Frames         int     `json:"frames"`

	proteinIndex int
	ligandIndex  int
}

// Key returns the canonical key of the pair in the row.
func (P PairRow) Key() PairKey {
	return NewPairKey(P.proteinIndex, P.ligandIndex)
}

// ResidueRow is the occupancy of one protein residue, i.e. the percentage of frames
// in which the residue made at least one hydrogen bond with the ligand.
type ResidueRow struct {
	ProteinChain   int     `json:"protein_chain"`
	ProteinResName string  `json:"protein_resname"`
	ProteinResID   int     `json:"protein_resid"`
	Occupancy      float64 `json:"occupancy_percent"`
	Frames         int     `json:"frames"`
}

// Result is the finalized output of a run.
type Result struct {
	Mode            Mode
	StartFrame      int
	FramesProcessed int
	Pairs           []PairRow    //nil unless Mode includes PairMode
	Residues        []ResidueRow //nil unless Mode includes ResidueMode
}

// PairRows builds one row per pair in t, with occupancies relative to frames, and
// returns them sorted (see SortPairRows).
func PairRows(top *Topology, t *PairTally, frames int) ([]PairRow, error) {
	if frames <= 0 {
		return nil, newConfigError("PairRows", "non-positive number of frames %d", frames)
	}
	rows := make([]PairRow, 0, t.Len())
	for _, k := range t.Keys() {
		a, b := top.Atom(k.A), top.Atom(k.B)
		//The tally only gets classified contacts, so exactly one of the two is protein.
		prot, lig := a, b
		if !a.Residue.Protein {
			prot, lig = b, a
		}
		n := t.Count(k)
		rows = append(rows, PairRow{
			ProteinChain:   prot.Residue.Chain,
			ProteinResName: prot.Residue.Name,
			ProteinResID:   prot.Residue.Index,
			ProteinAtom:    prot.Name,
			LigandResName:  lig.Residue.Name,
			LigandResID:    lig.Residue.Index,
			LigandAtom:     lig.Name,
			Occupancy:      Occupancy(n, frames),
			Frames:         n,
			proteinIndex:   prot.Index,
			ligandIndex:    lig.Index,
		})
	}
	SortPairRows(rows)
	return rows, nil
}

// SortPairRows sorts rows by decreasing occupancy. Ties are broken by increasing
// protein residue index, then protein atom index, then ligand atom index.
func SortPairRows(rows []PairRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Occupancy != b.Occupancy {
			return a.Occupancy > b.Occupancy
		}
		if a.ProteinResID != b.ProteinResID {
			return a.ProteinResID < b.ProteinResID
		}
		if a.proteinIndex != b.proteinIndex {
			return a.proteinIndex < b.proteinIndex
		}
		return a.ligandIndex < b.ligandIndex
	})
}

// ResidueRows builds one row per residue in t, with occupancies relative to frames,
// and returns them sorted (see SortResidueRows).
func ResidueRows(top *Topology, t *ResidueTally, frames int) ([]ResidueRow, error) {
	if frames <= 0 {
		return nil, newConfigError("ResidueRows", "non-positive number of frames %d", frames)
	}
	rows := make([]ResidueRow, 0, t.Len())
	for _, i := range t.Residues() {
		r := top.Residue(i)
		n := t.Count(i)
		rows = append(rows, ResidueRow{
			ProteinChain:   r.Chain,
			ProteinResName: r.Name,
			ProteinResID:   r.Index,
			Occupancy:      Occupancy(n, frames),
			Frames:         n,
		})
	}
	SortResidueRows(rows)
	return rows, nil
}

// SortResidueRows sorts rows by decreasing occupancy, and by increasing residue
// index among rows with the same occupancy.
func SortResidueRows(rows []ResidueRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Occupancy != b.Occupancy {
			return a.Occupancy > b.Occupancy
		}
		if a.ProteinChain != b.ProteinChain {
			return a.ProteinChain < b.ProteinChain
		}
		return a.ProteinResID < b.ProteinResID
	})
}

// Capitalize returns s with the first letter in upper case and the rest
// in lower case, e.g. "ASP" -> "Asp".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// RankedLine returns the human-readable form of a residue row: "Asp12 - 50.0%"
func (R ResidueRow) RankedLine() string {
	return fmt.Sprintf("%s%d - %.1f%%", Capitalize(R.ProteinResName), R.ProteinResID, R.Occupancy)
}

// RankedLines returns the RankedLine of each row, in the same order.
func RankedLines(rows []ResidueRow) []string {
	ret := make([]string, len(rows))
	for i, r := range rows {
		ret[i] = r.RankedLine()
	}
	return ret
}

// Summary gives a few descriptors of a set of occupancies.
type Summary struct {
	Entities int     `json:"entities"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Max      float64 `json:"max"`
}

// Summarize returns a Summary of occ. An empty occ gives a zero Summary.
func Summarize(occ []float64) Summary {
	if len(occ) == 0 {
		return Summary{}
	}
	S := Summary{Entities: len(occ), Max: floats.Max(occ)}
	if len(occ) == 1 {
		S.Mean = occ[0]
		return S
	}
	S.Mean, S.StdDev = stat.MeanStdDev(occ, nil)
	return S
}

// PairOccupancies returns the occupancies in rows.
func PairOccupancies(rows []PairRow) []float64 {
	ret := make([]float64, len(rows))
	for i, r := range rows {
		ret[i] = r.Occupancy
	}
	return ret
}

// ResidueOccupancies returns the occupancies in rows.
func ResidueOccupancies(rows []ResidueRow) []float64 {
	ret := make([]float64, len(rows))
	for i, r := range rows {
		ret[i] = r.Occupancy
	}
	return ret
}
