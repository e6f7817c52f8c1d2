/*
 * gro.go, part of hbocc.
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
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	v3 "github.com/rmera/hbocc/v3"
)

const nm2A = 10.0

// GroFileRead reads the Gromacs structure file groname and returns the topology and
// the coordinates (in A) it contains.
func GroFileRead(groname string) (*Topology, *v3.Matrix, error) {
	f, err := os.Open(groname)
	if err != nil {
		return nil, nil, newCollaboratorError(err, "GroFileRead", "can't open %s", groname)
	}
	defer f.Close()
	top, coords, err := GroRead(f)
	if err != nil {
		err = errDecorate(err, "GroFileRead: "+groname)
	}
	return top, coords, err
}

// GroRead reads a structure in the Gromacs gro format from gro. All residues are put in
// chain 0, as the format carries no chain information. Only the first frame is read.
func GroRead(gro io.Reader) (*Topology, *v3.Matrix, error) {
	r := bufio.NewReader(gro)
	_, err := r.ReadString('\n') //title
	if err != nil {
		return nil, nil, newCollaboratorError(err, "GroRead", "can't read title line")
	}
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, nil, newCollaboratorError(err, "GroRead", "can't read the number of atoms")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, nil, newCollaboratorError(err, "GroRead", "malformed atom number line %q", strings.TrimSpace(line))
	}
	if natoms <= 0 {
		return nil, nil, newCollaboratorError(nil, "GroRead", "structure with %d atoms", natoms)
	}
	specs := make([]AtomSpec, natoms)
	coords := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms; i++ {
		line, err = r.ReadString('\n')
		if err != nil && !(err == io.EOF && line != "") {
			return nil, nil, newCollaboratorError(err, "GroRead", "file ended after %d of %d atoms", i, natoms)
		}
		c, err := groAtomLine(strings.TrimRight(line, "\r\n"), &specs[i])
		if err != nil {
			return nil, nil, newCollaboratorError(err, "GroRead", "line %d", i+3)
		}
		coords = append(coords, c[0]*nm2A, c[1]*nm2A, c[2]*nm2A)
	}
	top, err := NewTopology(specs)
	if err != nil {
		return nil, nil, errDecorate(err, "GroRead")
	}
	mat, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, nil, newCollaboratorError(err, "GroRead", "")
	}
	return top, mat, nil
}

// groAtomLine parses one atom line of a gro file, putting the atom data in spec and returning
// the coordinates (in nm).
func groAtomLine(line string, spec *AtomSpec) ([3]float64, error) {
	var c [3]float64
	if len(line) < 44 {
		return c, newCollaboratorError(nil, "groAtomLine", "atom line too short: %q", line)
	}
	resnum, err := strconv.Atoi(strings.TrimSpace(line[0:5]))
	if err != nil {
		return c, newCollaboratorError(err, "groAtomLine", "bad residue number")
	}
	spec.ResNum = resnum
	spec.ResName = strings.TrimSpace(line[5:10])
	spec.Name = strings.TrimSpace(line[10:15])
	spec.Chain = 0
	//The standard format has 8-wide coordinate fields. Some programs write
	//them wider, which we can still read if they are space-separated.
	fixed := true
	for i := range c {
		c[i], err = strconv.ParseFloat(strings.TrimSpace(line[20+8*i:28+8*i]), 64)
		if err != nil {
			fixed = false
			break
		}
	}
	if !fixed {
		f := strings.Fields(line[20:])
		if len(f) < 3 {
			return c, newCollaboratorError(nil, "groAtomLine", "can't read coordinates from %q", line)
		}
		for i := range c {
			c[i], err = strconv.ParseFloat(f[i], 64)
			if err != nil {
				return c, newCollaboratorError(err, "groAtomLine", "can't read coordinates")
			}
		}
	}
	return c, nil
}

// StructureFileRead reads a structure file, deciding the format from its extension
// (.gro, or .pdb/.ent for PDB).
func StructureFileRead(name string) (*Topology, *v3.Matrix, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gro":
		return GroFileRead(name)
	case ".pdb", ".ent":
		return PDBFileRead(name)
	}
	return nil, nil, newCollaboratorError(nil, "StructureFileRead", "unknown structure format for %s", name)
}
