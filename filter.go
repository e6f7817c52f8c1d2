/*
 * filter.go, part of hbocc.
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

// PairKey identifies an atom pair regardless of the order of its atoms.
// A is always the smaller index.
type PairKey struct {
	A int
	B int
}

// NewPairKey returns the canonical key for the atoms a and b.
func NewPairKey(a, b int) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

func (P PairKey) String() string {
	return fmt.Sprintf("{%d,%d}", P.A, P.B)
}

// Contact is a hydrogen bond between a protein atom and a ligand atom.
type Contact struct {
	Protein *Atom
	Ligand  *Atom
}

// Key returns the canonical pair key of the contact.
func (C Contact) Key() PairKey {
	return NewPairKey(C.Protein.Index, C.Ligand.Index)
}

// Classify decides whether the bond t joins the protein and the ligand marked with
// the residue name marker. That is the case when exactly one of the donor and acceptor
// is a protein atom and the other one belongs to a marker residue, whichever
// plays which role. If so, the protein and ligand atoms are returned, and true.
// Bonds within the protein, within the ligand, or involving anything else (solvent,
// ions) give false, which is not an error. An error is returned only if an atom
// index is not in the topology.
func Classify(top *Topology, t Triplet, marker string) (Contact, bool, error) {
	dres, err := top.ResidueOf(t.Donor)
	if err != nil {
		return Contact{}, false, errDecorate(err, fmt.Sprintf("Classify: triplet %s", t))
	}
	ares, err := top.ResidueOf(t.Acceptor)
	if err != nil {
		return Contact{}, false, errDecorate(err, fmt.Sprintf("Classify: triplet %s", t))
	}
	switch {
	case dres.Protein && !ares.Protein && top.IsLigand(ares, marker):
		return Contact{Protein: top.Atom(t.Donor), Ligand: top.Atom(t.Acceptor)}, true, nil
	case ares.Protein && !dres.Protein && top.IsLigand(dres, marker):
		return Contact{Protein: top.Atom(t.Acceptor), Ligand: top.Atom(t.Donor)}, true, nil
	}
	return Contact{}, false, nil
}
