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
Package hbt implements the hydrogen-bond trajectory format, which keeps, for each frame
of a trajectory, the hydrogen bonds found by a detector. It lets the output of an
external detector be stored once and analyzed many times.

	******************** Format Specification   ***************************************

An hbt file may only contain ASCII symbols. It may be compressed. The compression is
given by the last letter of the file extension:

	s (e.g. file.hbs): zstd. Also used for unknown extensions.
	z (file.hbz): gzip.
	r (file.hbr): raw deflate.
	l (file.hbl): lzw.
	t (file.hbt): no compression.

An hbt file has a header, starting in the first line and ending with a line that starts
with the characters "**" followed by one or more spaces and the number of atoms in the
system. Each line of the header before that is a key=value pair. The keys "threshold"
(the frequency threshold given to the detector) and "topology" (the name of the structure
file) are recognized, others are kept but ignored.

After the header, each frame is written as one line per hydrogen bond, with three
integers separated by spaces: the 0-based indexes of the donor, the hydrogen and the
acceptor atoms, followed by a line starting with "*", which closes the frame.
A frame with no bonds is just the "*" line. For instance, a 3-frame file:

	threshold=0.1
	** 1200
	20 21 1105
	*
	*
	20 21 1105
	1107 1108 340
	*
*/
package hbt
