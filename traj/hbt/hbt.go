/*
 * hbt.go, part of hbocc.
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

package hbt

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/hbocc"
)

const (
	lzwLitwidth  int = 8
	defaultLevel int = 9
)

// compression returns the compression letter for the file name.
func compression(name string) byte {
	if name == "" {
		return 's'
	}
	c := strings.ToLower(name)[len(name)-1]
	switch c {
	case 's', 'z', 'r', 'l', 't':
		return c
	}
	return 's'
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// *zstd.Decoder doesn't implement io.ReadCloser, as its Close returns nothing.
type zstdql struct {
	*zstd.Decoder
}

// Close Closes the object. It can not be used after this call
func (z zstdql) Close() error {
	z.Decoder.Close()
	return nil
}

func newDecompressor(r io.Reader, c byte) (io.ReadCloser, error) {
	switch c {
	case 't':
		return io.NopCloser(r), nil
	case 'z':
		return gzip.NewReader(r)
	case 'r':
		return flate.NewReader(r), nil
	case 'l':
		return lzw.NewReader(r, lzw.MSB, lzwLitwidth), nil
	}
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zstdql{d}, nil
}

func newCompressor(w io.Writer, c byte, level int) (io.WriteCloser, error) {
	switch c {
	case 't':
		return nopCloser{w}, nil
	case 'z':
		return gzip.NewWriterLevel(w, level)
	case 'r':
		return flate.NewWriter(w, level)
	case 'l':
		return lzw.NewWriter(w, lzw.MSB, lzwLitwidth), nil
	}
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
}

//Read!

// Reader reads an hbt trajectory, one frame at the time.
type Reader struct {
	f        io.Closer //the file, if we opened it
	dec      io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	header   map[string]string
	frame    int
	readable bool
}

// New opens the hbt file name for reading, and returns a pointer to the handle,
// the header key/value pairs, and error or nil.
func New(name string) (*Reader, map[string]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, &Error{fmt.Sprintf("%s: %s", UnableToOpen, err.Error()), name, []string{"New"}, true}
	}
	R, h, err := NewReader(f, name)
	if err != nil {
		f.Close()
		return nil, nil, errDecorate(err, "New")
	}
	R.f = f
	return R, h, nil
}

// NewReader reads the header of the hbt trajectory in r, which is decompressed
// according to the extension of name (see the package documentation).
func NewReader(r io.Reader, name string) (*Reader, map[string]string, error) {
	R := &Reader{natoms: -1, filename: name, header: make(map[string]string)}
	var err error
	R.dec, err = newDecompressor(bufio.NewReader(r), compression(name))
	if err != nil {
		return nil, nil, &Error{"Can't read header " + err.Error(), name, []string{"NewReader"}, true}
	}
	R.h = bufio.NewReader(R.dec)
	for {
		str, err := R.h.ReadString('\n')
		if err != nil {
			return nil, nil, &Error{"Can't read header " + err.Error(), name, []string{"NewReader"}, true}
		}
		str = strings.TrimSpace(str)
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				return nil, nil, &Error{fmt.Sprintf("Can't read atom number from '%s'", str), name, []string{"NewReader"}, true}
			}
			R.natoms, err = strconv.Atoi(nat[1])
			if err != nil || R.natoms <= 0 {
				return nil, nil, &Error{fmt.Sprintf("Can't read atom number from '%s'", nat[1]), name, []string{"NewReader"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			return nil, nil, &Error{fmt.Sprintf("Malformed header line '%s'", str), name, []string{"NewReader"}, true}
		}
		R.header[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	R.readable = true
	return R, R.header, nil
}

// Readable returns true if the handle is readable (if it is possible to call Next on it)
func (R *Reader) Readable() bool {
	return R.readable
}

// Len returns the number of atoms in the system.
func (R *Reader) Len() int {
	return R.natoms
}

// Header returns the header key/value pairs.
func (R *Reader) Header() map[string]string {
	return R.header
}

// Threshold returns the frequency threshold recorded in the header, and whether it was there.
func (R *Reader) Threshold() (float64, bool) {
	t, ok := R.header[ThresholdKey]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Next returns the hydrogen bonds of the next frame. At the end of the trajectory it
// closes the reader and returns an error implementing hbocc.LastFrameError.
func (R *Reader) Next() ([]hbocc.Triplet, error) {
	if !R.readable {
		return nil, &Error{TrajUnIniRead, R.filename, []string{"Next"}, true}
	}
	var ret []hbocc.Triplet
	for lines := 0; ; lines++ {
		b, err := R.h.ReadString('\n')
		if err != nil && !(err == io.EOF && b != "") {
			if err == io.EOF && lines == 0 {
				//nothing bad happened here, the trajectory just ended.
				R.Close()
				return nil, newlastFrameError(R.filename, "Next")
			}
			return nil, &Error{fmt.Sprintf("%s %d: %s", ReadError, R.frame, err.Error()), R.filename, []string{"Next"}, true}
		}
		b = strings.TrimSpace(b)
		if strings.HasPrefix(b, "*") {
			break
		}
		if err == io.EOF {
			return nil, &Error{fmt.Sprintf("%s: frame %d is not closed", WrongFormat, R.frame), R.filename, []string{"Next"}, true}
		}
		t, err := tripletDecode(b, R.natoms)
		if err != nil {
			return nil, &Error{fmt.Sprintf("%s: frame %d: %s", WrongFormat, R.frame, err.Error()), R.filename, []string{"Next"}, true}
		}
		ret = append(ret, t)
	}
	R.frame++
	return ret, nil
}

// Close closes the object, and marks it as unreadable
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	R.dec.Close()
	if R.f != nil {
		R.f.Close()
	}
	R.readable = false
}

func tripletDecode(str string, natoms int) (hbocc.Triplet, error) {
	var t hbocc.Triplet
	s := strings.Fields(str)
	if len(s) != 3 {
		return t, fmt.Errorf("expected 3 fields in bond line, got %d: %s", len(s), str)
	}
	var v [3]int
	for i := range s {
		n, err := strconv.Atoi(s[i])
		if err != nil {
			return t, fmt.Errorf("can't parse atom index %d (%s): %s", i, s[i], err.Error())
		}
		if n < 0 || n >= natoms {
			return t, fmt.Errorf("atom index %d out of range for %d atoms", n, natoms)
		}
		v[i] = n
	}
	return hbocc.Triplet{Donor: v[0], Hydrogen: v[1], Acceptor: v[2]}, nil
}

// ReadAll reads the remaining frames of R into a trajectory, and closes R.
func ReadAll(R *Reader) (*hbocc.MemTraj, error) {
	traj := hbocc.NewMemTraj(R.Len())
	for {
		b, err := R.Next()
		if err != nil {
			if _, ok := err.(hbocc.LastFrameError); ok {
				break
			}
			R.Close()
			return nil, errDecorate(err, "ReadAll")
		}
		if err := traj.AddFrame(&hbocc.Frame{Bonds: b}); err != nil {
			R.Close()
			return nil, err
		}
	}
	return traj, nil
}

// FileRead reads the whole hbt file name, returning the trajectory and the header.
func FileRead(name string) (*hbocc.MemTraj, map[string]string, error) {
	R, h, err := New(name)
	if err != nil {
		return nil, nil, errDecorate(err, "FileRead")
	}
	traj, err := ReadAll(R)
	if err != nil {
		return nil, nil, errDecorate(err, "FileRead")
	}
	return traj, h, nil
}

//Write!

// Writer writes an hbt trajectory.
type Writer struct {
	f         io.Closer //the file, if we created it
	h         io.WriteCloser
	w         *bufio.Writer
	natoms    int
	filename  string
	writeable bool
}

// NewWriter creates the file name and writes on it the header of an hbt trajectory
// for a system of natoms atoms. The compression depends on the extension of name.
// If given, compressionLevel is used for the gzip and deflate compressions.
func NewWriter(name string, natoms int, header map[string]string, compressionLevel ...int) (*Writer, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, &Error{fmt.Sprintf("%s: %s", UnableToOpen, err.Error()), name, []string{"NewWriter"}, true}
	}
	W, err := NewStreamWriter(f, name, natoms, header, compressionLevel...)
	if err != nil {
		f.Close()
		return nil, errDecorate(err, "NewWriter")
	}
	W.f = f
	return W, nil
}

// NewStreamWriter is like NewWriter, but writes to w. name is only used to decide the
// compression.
func NewStreamWriter(w io.Writer, name string, natoms int, header map[string]string, compressionLevel ...int) (*Writer, error) {
	level := defaultLevel
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	if natoms <= 0 {
		return nil, &Error{fmt.Sprintf("Invalid number of atoms %d", natoms), name, []string{"NewStreamWriter"}, true}
	}
	W := &Writer{natoms: natoms, filename: name}
	var err error
	W.h, err = newCompressor(w, compression(name), level)
	if err != nil {
		return nil, &Error{"Can't set compression " + err.Error(), name, []string{"NewStreamWriter"}, true}
	}
	W.w = bufio.NewWriter(W.h)
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.ContainsAny(k, "=\n") || strings.Contains(header[k], "\n") || strings.HasPrefix(k, "*") {
			return nil, &Error{fmt.Sprintf("Invalid header entry %q", k), name, []string{"NewStreamWriter"}, true}
		}
		fmt.Fprintf(W.w, "%s=%s\n", k, header[k])
	}
	fmt.Fprintf(W.w, "** %d\n", natoms)
	W.writeable = true
	return W, nil
}

// Len returns the number of atoms in the system.
func (W *Writer) Len() int {
	return W.natoms
}

// WNext writes bonds as the next frame of the trajectory.
func (W *Writer) WNext(bonds []hbocc.Triplet) error {
	if !W.writeable {
		return &Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	for _, t := range bonds {
		for _, v := range [3]int{t.Donor, t.Hydrogen, t.Acceptor} {
			if v < 0 || v >= W.natoms {
				return &Error{fmt.Sprintf("Atom index %d out of range for %d atoms", v, W.natoms), W.filename, []string{"WNext"}, true}
			}
		}
		fmt.Fprintf(W.w, "%d %d %d\n", t.Donor, t.Hydrogen, t.Acceptor)
	}
	if _, err := W.w.WriteString("*\n"); err != nil {
		return &Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	return nil
}

// Close flushes and closes the writer. It can't be used after this call.
func (W *Writer) Close() error {
	if W == nil || !W.writeable {
		return nil
	}
	W.writeable = false
	err := W.w.Flush()
	if err2 := W.h.Close(); err == nil {
		err = err2
	}
	if W.f != nil {
		if err2 := W.f.Close(); err == nil {
			err = err2
		}
	}
	if err != nil {
		return &Error{err.Error(), W.filename, []string{"Close"}, true}
	}
	return nil
}

// WriteTraj writes all the frames of traj, using their precomputed bonds, to W.
func WriteTraj(W *Writer, traj hbocc.Trajectory) error {
	for i := 0; i < traj.NFrames(); i++ {
		f, err := traj.Frame(i)
		if err != nil {
			return err
		}
		if err := W.WNext(f.Bonds); err != nil {
			return errDecorate(err, "WriteTraj")
		}
	}
	return nil
}

//Errors

// ThresholdKey and TopologyKey are the header keys recognized by this package.
const (
	ThresholdKey = "threshold"
	TopologyKey  = "topology"
)

// errDecorate is a helper function that decorates the error with the caller's name
// if the error implements hbocc.Error, and returns it.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(hbocc.Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

// Error is the general structure for hbt trajectory errors. It fullfills hbocc.Error and hbocc.TrajError
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("hbt file %s error: %s", err.filename, err.message)
}

// Decorate Adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the failing trajectory was associated
func (err *Error) FileName() string { return err.filename }

// Format returns the format of the file (always "hbt") associated to the error
func (err *Error) Format() string { return "hbt" }

// Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	ReadError      = "Error reading frame"
	UnableToOpen   = "Unable to open file"
	WrongFormat    = "Wrong format in the hbt file or frame"
)

// lastFrameError implements hbocc.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

// NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "hbt" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
