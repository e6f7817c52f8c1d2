/*
 * residues.go, part of hbocc.
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

import "strings"

// The residue names considered protein. Standard amino acids, the protonation
// and disulfide variants used by Amber/Gromacs/CHARMM force fields, and the
// usual capping groups.
var proteinResidues = map[string]bool{
	"ALA": true, "ARG": true, "ASN": true, "ASP": true, "CYS": true,
	"GLN": true, "GLU": true, "GLY": true, "HIS": true, "ILE": true,
	"LEU": true, "LYS": true, "MET": true, "PHE": true, "PRO": true,
	"SER": true, "THR": true, "TRP": true, "TYR": true, "VAL": true,
	"SEC": true, "PYL": true, "ASX": true, "GLX": true, "MSE": true,
	//protonation states and the like
	"ASH": true, "GLH": true, "HID": true, "HIE": true, "HIP": true,
	"HSD": true, "HSE": true, "HSP": true, "HISA": true, "HISB": true,
	"HISD": true, "HISE": true, "HISH": true, "LYN": true, "LSN": true,
	"CYM": true, "CYX": true, "CYS2": true, "ASPH": true, "GLUH": true,
	"LYSH": true, "ARGN": true,
	//caps
	"ACE": true, "NME": true, "NMA": true, "NH2": true,
}

// IsProteinResidue returns true if name is the name of an amino acid residue,
// including the N- and C-terminal variants Amber uses (e.g. NALA, CALA).
func IsProteinResidue(name string) bool {
	n := strings.ToUpper(strings.TrimSpace(name))
	if proteinResidues[n] {
		return true
	}
	if len(n) == 4 && (n[0] == 'N' || n[0] == 'C') {
		return proteinResidues[n[1:]]
	}
	return false
}
