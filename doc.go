/*
 * doc.go, part of hbocc.
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

/*
Package hbocc computes the occupancy of the hydrogen bonds between a protein and a
bound ligand along a molecular dynamics trajectory.

For each frame, a Detector gives the donor-hydrogen-acceptor triplets it finds.
Those joining a protein atom and an atom of the ligand (the residue with the marker
name, "UNL" by default) are kept, and counted either per atom pair or per protein
residue. At the end, the counts are turned into the percentage of processed frames
in which each pair, or residue, was bonded, and sorted.

	**hbocc capabilities**

	Reads topologies and coordinates from Gromacs (gro) and PDB files.

	Classifies protein and ligand atoms, and hydrogen bonds crossing between them.

	Counts protein-ligand atom pairs (the pair is the same whichever atom is the donor)
	and protein residues (a residue counts once per frame, no matter how many bonds it
	makes in that frame).

	Processes frame ranges concurrently, with the same result as a sequential run.

The detection of hydrogen bonds is not done here. The traj/hbt package reads and
writes files with the bonds found by an external program, which the Precomputed
detector replays. Any other detector can be plugged in through the Detector interface.
*/
package hbocc
