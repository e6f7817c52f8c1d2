/*
 * chem.go, part of hbocc.
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
	"strings"
)

/**Note: Atom and Topology accessors panic on out-of-range indexes, as slices do.
 * The classifier methods (ResidueOf, IsProtein) are the ones to use with indexes
 * coming from outside (a detector, a file), as they return errors instead.**/

// DefaultLigand is the residue name that marks ligand atoms unless told otherwise.
const DefaultLigand = "UNL"

// Atom contains the information about one atom, except for its coordinates,
// which are kept per frame in a v3.Matrix.
type Atom struct {
	Name    string
	Index   int //0-based position in the topology. This is the atom id used by detectors.
	Symbol  string
	Residue *Residue
}

// Residue is a group of atoms with a common residue name and number.
type Residue struct {
	Name    string
	Index   int //0-based sequential index in the topology.
	Number  int //residue number as given in the structure file.
	Chain   int //0-based chain index.
	Protein bool
	Atoms   []int
}

// String returns the name of the residue followed by its index, e.g. ASP12
func (R *Residue) String() string {
	return fmt.Sprintf("%s%d", R.Name, R.Index)
}

/*****Topology type***/

// Topology contains the information about a system which is not expected to change
// in time (i.e. everything except for coordinates). It doesn't change after
// construction.
type Topology struct {
	atoms    []*Atom
	residues []*Residue
	nchains  int
}

// AtomSpec is the per-atom data needed to build a Topology.
type AtomSpec struct {
	Name    string
	Symbol  string
	ResName string
	ResNum  int
	Chain   int
}

// NewTopology builds a Topology from the given atom specifications. Consecutive atoms
// with the same residue name, number and chain are put in the same residue. The protein
// flag of each residue is set from the standard residue names (see IsProteinResidue).
// It returns error if specs is empty or if chain indexes decrease along the list.
func NewTopology(specs []AtomSpec) (*Topology, error) {
	if len(specs) == 0 {
		return nil, newCollaboratorError(nil, "NewTopology", "no atoms given")
	}
	T := &Topology{atoms: make([]*Atom, 0, len(specs)), residues: make([]*Residue, 0, len(specs)/10+1)}
	var cur *Residue
	for i, s := range specs {
		if cur != nil && s.Chain < cur.Chain {
			return nil, newCollaboratorError(nil, "NewTopology", "chain index decreases at atom %d", i)
		}
		if cur == nil || s.ResName != cur.Name || s.ResNum != cur.Number || s.Chain != cur.Chain {
			cur = &Residue{
				Name:    s.ResName,
				Index:   len(T.residues),
				Number:  s.ResNum,
				Chain:   s.Chain,
				Protein: IsProteinResidue(s.ResName),
			}
			T.residues = append(T.residues, cur)
		}
		at := &Atom{Name: s.Name, Index: i, Symbol: s.Symbol, Residue: cur}
		if at.Symbol == "" {
			at.Symbol = symbolFromName(s.Name)
		}
		cur.Atoms = append(cur.Atoms, i)
		T.atoms = append(T.atoms, at)
		if s.Chain+1 > T.nchains {
			T.nchains = s.Chain + 1
		}
	}
	return T, nil
}

/*Topology methods*/

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.atoms)
}

// Atom returns the Atom corresponding to the index i
// of the Atom slice in the Topology. Panics if
// out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() || i < 0 {
		panic(fmt.Sprintf("Topology: Requested Atom %d out of bounds", i))
	}
	return T.atoms[i]
}

// NResidues returns the number of residues in the topology.
func (T *Topology) NResidues() int {
	return len(T.residues)
}

// NChains returns the number of chains in the topology.
func (T *Topology) NChains() int {
	return T.nchains
}

// Residue returns the residue with index i. Panics if out of range.
func (T *Topology) Residue(i int) *Residue {
	if i >= len(T.residues) || i < 0 {
		panic(fmt.Sprintf("Topology: Requested Residue %d out of bounds", i))
	}
	return T.residues[i]
}

//The classifier

// ResidueOf returns the residue the atom with index atom belongs to.
func (T *Topology) ResidueOf(atom int) (*Residue, error) {
	if atom >= T.Len() || atom < 0 {
		return nil, newCollaboratorError(nil, "ResidueOf", "atom index %d out of range (%d atoms in topology)", atom, T.Len())
	}
	return T.atoms[atom].Residue, nil
}

// IsProtein returns true if the atom with index atom is part of a protein residue.
func (T *Topology) IsProtein(atom int) (bool, error) {
	r, err := T.ResidueOf(atom)
	if err != nil {
		return false, errDecorate(err, "IsProtein")
	}
	return r.Protein, nil
}

// IsLigand returns true if the residue name is the ligand marker.
func (T *Topology) IsLigand(r *Residue, marker string) bool {
	return r.Name == marker
}

// ChainOf returns the chain index of the residue.
func (T *Topology) ChainOf(r *Residue) int {
	return r.Chain
}

// Ligands returns the residues whose name matches marker.
func (T *Topology) Ligands(marker string) []*Residue {
	var ret []*Residue
	for _, r := range T.residues {
		if T.IsLigand(r, marker) {
			ret = append(ret, r)
		}
	}
	return ret
}

// NProteinResidues returns the number of protein residues in the topology
func (T *Topology) NProteinResidues() int {
	n := 0
	for _, r := range T.residues {
		if r.Protein {
			n++
		}
	}
	return n
}

// symbolFromName guesses the element symbol from a PDB/GRO atom name. Mostly based on AMBER
// names, it only deals with some common bio-elements, and returns the empty string for the rest.
func symbolFromName(name string) string {
	name = strings.ToUpper(strings.TrimLeft(strings.TrimSpace(name), "0123456789"))
	if name == "" {
		return ""
	}
	switch name {
	case "CU":
		return "Cu"
	case "CO":
		return "Co"
	case "CL":
		return "Cl"
	case "NA":
		return "Na"
	case "SE":
		return "Se"
	case "MG":
		return "Mg"
	case "ZN":
		return "Zn"
	case "FE":
		return "Fe"
	}
	if len(name) == 4 || name[0] == 'H' { //Only Hs get 4-character names in amber.
		return "H"
	}
	switch name[0] {
	case 'C', 'N', 'O', 'P', 'S', 'F':
		return name[:1]
	}
	return ""
}
