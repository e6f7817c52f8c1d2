/*
 * occupancy.go, part of hbocc.
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

// FramesProcessed returns the number of frames in the range [start, total).
// It returns a ConfigError if the range is empty or start is negative.
func FramesProcessed(total, start int) (int, error) {
	if start < 0 {
		return 0, newConfigError("FramesProcessed", "negative start frame %d", start)
	}
	n := total - start
	if n <= 0 {
		return 0, newConfigError("FramesProcessed", "start frame %d leaves no frames to process in a trajectory of %d frames", start, total)
	}
	return n, nil
}

// Occupancy returns the percentage of frames, out of frames, represented by n.
// frames must be positive (see FramesProcessed).
func Occupancy(n, frames int) float64 {
	if frames <= 0 {
		panic("Occupancy: non-positive number of frames")
	}
	return 100 * float64(n) / float64(frames)
}
