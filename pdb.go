/*
 * pdb.go, part of hbocc.
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
	"strconv"
	"strings"

	v3 "github.com/rmera/hbocc/v3"
)

// PDBFileRead reads the PDB file pdbname and returns the topology and coordinates
// of its first model.
func PDBFileRead(pdbname string) (*Topology, *v3.Matrix, error) {
	f, err := os.Open(pdbname)
	if err != nil {
		return nil, nil, newCollaboratorError(err, "PDBFileRead", "can't open %s", pdbname)
	}
	defer f.Close()
	top, coords, err := PDBRead(f)
	if err != nil {
		err = errDecorate(err, "PDBFileRead: "+pdbname)
	}
	return top, coords, err
}

// PDBRead reads the ATOM and HETATM records of the first model in pdb. Chains are
// numbered from 0 in the order they appear. A new chain starts whenever the chain
// identifier changes, or after a TER record.
func PDBRead(pdb io.Reader) (*Topology, *v3.Matrix, error) {
	r := bufio.NewReader(pdb)
	specs := make([]AtomSpec, 0, 1000)
	coords := make([]float64, 0, 3000)
	chain := -1
	var chainID byte
	ter := true //so the first atom opens chain 0
	contlines := 0
	for {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, nil, newCollaboratorError(err, "PDBRead", "reading line %d", contlines+1)
		}
		if line == "" && err == io.EOF {
			break
		}
		contlines++
		line = strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(line, "ENDMDL") || strings.HasPrefix(line, "END ") || line == "END" {
			if len(specs) > 0 {
				break
			}
		}
		if strings.HasPrefix(line, "TER") {
			ter = true
			continue
		}
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			if err == io.EOF {
				break
			}
			continue
		}
		var s AtomSpec
		c, id, perr := pdbAtomLine(line, &s)
		if perr != nil {
			return nil, nil, newCollaboratorError(perr, "PDBRead", "line %d", contlines)
		}
		if ter || id != chainID {
			chain++
			chainID = id
			ter = false
		}
		s.Chain = chain
		specs = append(specs, s)
		coords = append(coords, c[0], c[1], c[2])
		if err == io.EOF {
			break
		}
	}
	top, err := NewTopology(specs)
	if err != nil {
		return nil, nil, errDecorate(err, "PDBRead")
	}
	mat, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, nil, newCollaboratorError(err, "PDBRead", "")
	}
	return top, mat, nil
}

// pdbAtomLine parses an ATOM or HETATM line, putting the atom data in spec and returning
// the coordinates and the chain identifier.
func pdbAtomLine(line string, spec *AtomSpec) ([3]float64, byte, error) {
	var c [3]float64
	if len(line) < 54 {
		return c, 0, newCollaboratorError(nil, "pdbAtomLine", "ATOM line too short: %q", line)
	}
	var err error
	spec.Name = strings.TrimSpace(line[12:16])
	//PDB says that column 17 is for other thing but it is
	//used for 4-letter residue names in many cases
	spec.ResName = strings.TrimSpace(line[17:21])
	chainID := line[21]
	spec.ResNum, err = strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return c, 0, newCollaboratorError(err, "pdbAtomLine", "bad residue number")
	}
	for i := range c {
		c[i], err = strconv.ParseFloat(strings.TrimSpace(line[30+8*i:38+8*i]), 64)
		if err != nil {
			return c, 0, newCollaboratorError(err, "pdbAtomLine", "bad coordinate")
		}
	}
	if len(line) >= 78 {
		sym := strings.TrimSpace(line[76:78])
		if sym != "" {
			spec.Symbol = Capitalize(sym)
		}
	}
	return c, chainID, nil
}
