/*
 * traj.go, part of hbocc.
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
	v3 "github.com/rmera/hbocc/v3"
)

// Frame is one structural snapshot of a trajectory.
type Frame struct {
	Index  int
	Coords *v3.Matrix //may be nil if the source only carries precomputed bonds
	Box    []float64
	Bonds  []Triplet //precomputed detector output, if the source has it.
}

// MemTraj is a trajectory kept in memory. It is safe to read concurrently
// once no more frames are being added.
type MemTraj struct {
	natoms int
	frames []*Frame
}

// NewMemTraj returns an empty trajectory for systems of natoms atoms.
func NewMemTraj(natoms int) *MemTraj {
	return &MemTraj{natoms: natoms, frames: make([]*Frame, 0, 100)}
}

// AddFrame appends f to the trajectory, setting its index. It returns error
// if f has coordinates for a different number of atoms than the trajectory.
func (M *MemTraj) AddFrame(f *Frame) error {
	if f == nil {
		return newCollaboratorError(nil, "AddFrame", "nil frame")
	}
	if f.Coords != nil && f.Coords.NVecs() != M.natoms {
		return newCollaboratorError(nil, "AddFrame", "frame has %d atoms, trajectory has %d", f.Coords.NVecs(), M.natoms)
	}
	f.Index = len(M.frames)
	M.frames = append(M.frames, f)
	return nil
}

// NFrames returns the number of frames in the trajectory.
func (M *MemTraj) NFrames() int {
	return len(M.frames)
}

// Len returns the number of atoms per frame.
func (M *MemTraj) Len() int {
	return M.natoms
}

// Frame returns the frame i of the trajectory.
func (M *MemTraj) Frame(i int) (*Frame, error) {
	if i < 0 || i >= len(M.frames) {
		return nil, newCollaboratorError(nil, "Frame", "frame %d requested from a trajectory of %d frames", i, len(M.frames))
	}
	return M.frames[i], nil
}
