/*
 * interfaces.go, part of hbocc.
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

// Trajectory is a random-access source of frames. Implementations must allow
// concurrent calls to Frame, as frame ranges may be processed in parallel.
type Trajectory interface {

	//NFrames returns the total number of frames in the trajectory
	NFrames() int

	//Frame returns the frame with index i, or error if it can't be obtained.
	Frame(i int) (*Frame, error)

	//Returns the number of atoms per frame
	Len() int
}

// Detector is the per-frame hydrogen-bond detector. Given one frame, it returns
// the donor-hydrogen-acceptor triplets satisfying its bond criterion at the
// given frequency threshold. Detectors used with Options.Cpus > 1 must be safe
// for concurrent use.
type Detector interface {
	Detect(f *Frame, threshold float64, periodic bool) ([]Triplet, error)
}

// Tally accumulates classified contacts over the frames of a run.
type Tally interface {
	//Add records the contact c, observed in frame.
	Add(frame int, c Contact)

	//Merge adds the observations in other, which must be of the same
	//concrete type, to the receiver.
	Merge(other Tally) error

	//Len returns the number of distinct entities observed.
	Len() int
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
}

// TrajError is the interface for errors in trajectories
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a useless function to distinguish the harmless errors (i.e. last frame) so they can be
// filtered in a typeswitch that looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}
