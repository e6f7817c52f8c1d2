/*
 * pipeline.go, part of hbocc.
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
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ctxState int

const (
	accumulating ctxState = iota
	finalized
)

// Context carries the configuration and the tallies of one run. Frames are given to
// it with Process and, once all of them have been processed, Finalize produces the
// Result. A finalized Context doesn't accept more frames.
// A Context is not safe for concurrent use. Concurrent runs use one Context per
// goroutine and merge them.
type Context struct {
	top       *Topology
	o         *Options
	pairs     *PairTally
	residues  *ResidueTally
	processed int
	state     ctxState
	result    *Result
}

// NewContext returns a Context to process frames of a system with topology top.
// If no options are given, DefaultOptions() is used. The options are copied, and
// those left unset take their default values.
func NewContext(top *Topology, options ...*Options) (*Context, error) {
	if top == nil {
		return nil, newCollaboratorError(nil, "NewContext", "nil topology")
	}
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0].withDefaults()
	} else {
		o = DefaultOptions()
	}
	if m := o.Mode(); m&BothModes == 0 {
		return nil, newConfigError("NewContext", "invalid aggregation mode %s", m)
	}
	C := &Context{top: top, o: o}
	C.pairs, C.residues = newTallies(o.Mode())
	return C, nil
}

// Processed returns the number of frames processed so far.
func (C *Context) Processed() int {
	return C.processed
}

// Finalized returns true if the Context has already produced its Result.
func (C *Context) Finalized() bool {
	return C.state == finalized
}

// Process obtains the hydrogen bonds of f, the frame i of the trajectory, with the
// detector d, and adds those between the protein and the ligand to the tallies of
// the context. Frames are identified by i only, f.Index is not used.
func (C *Context) Process(i int, f *Frame, d Detector) error {
	if C.state == finalized {
		return ErrFinalized
	}
	if f == nil {
		return newCollaboratorError(nil, "Process", "nil frame %d", i)
	}
	trips, err := Extract(d, f, C.o.Threshold())
	if err != nil {
		return errDecorate(err, fmt.Sprintf("Process: frame %d", i))
	}
	marker := C.o.Ligand()
	for _, t := range trips {
		c, ok, err := Classify(C.top, t, marker)
		if err != nil {
			return errDecorate(err, fmt.Sprintf("Process: frame %d", i))
		}
		if !ok {
			continue
		}
		if C.pairs != nil {
			C.pairs.Add(i, c)
		}
		if C.residues != nil {
			C.residues.Add(i, c)
		}
	}
	C.processed++
	return nil
}

// merge adds the tallies of other to the receiver. Both must be accumulating
// and have the same mode.
func (C *Context) merge(other *Context) error {
	if C.state == finalized || other.state == finalized {
		return ErrFinalized
	}
	if C.pairs != nil {
		if err := C.pairs.Merge(other.pairs); err != nil {
			return errDecorate(err, "merge")
		}
	}
	if C.residues != nil {
		if err := C.residues.Merge(other.residues); err != nil {
			return errDecorate(err, "merge")
		}
	}
	C.processed += other.processed
	return nil
}

// Finalize turns the tallies into occupancies relative to the frames in
// [StartFrame, total), and returns the sorted result. After the first call,
// the Context is finalized and further calls return the same Result.
func (C *Context) Finalize(total int) (*Result, error) {
	if C.state == finalized {
		return C.result, nil
	}
	frames, err := FramesProcessed(total, C.o.StartFrame())
	if err != nil {
		return nil, errDecorate(err, "Finalize")
	}
	res := &Result{Mode: C.o.Mode(), StartFrame: C.o.StartFrame(), FramesProcessed: frames}
	if C.pairs != nil {
		res.Pairs, err = PairRows(C.top, C.pairs, frames)
		if err != nil {
			return nil, errDecorate(err, "Finalize")
		}
	}
	if C.residues != nil {
		res.Residues, err = ResidueRows(C.top, C.residues, frames)
		if err != nil {
			return nil, errDecorate(err, "Finalize")
		}
	}
	C.result = res
	C.state = finalized
	return res, nil
}

// Run processes the frames [StartFrame, NFrames) of traj with the detector d and
// returns the occupancies of the protein-ligand hydrogen bonds found. If no options
// are given, DefaultOptions() is used, and options left unset take their default
// values. An empty frame range is a ConfigError,
// detected before any frame is read. Any other failure aborts the run, and no
// partial result is returned.
// If Options.Cpus is larger than 1, the frame range is split in contiguous blocks
// processed concurrently and then merged. The result doesn't depend on it.
func Run(traj Trajectory, top *Topology, d Detector, options ...*Options) (*Result, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0].withDefaults()
	} else {
		o = DefaultOptions()
	}
	if traj == nil || top == nil || d == nil {
		return nil, newCollaboratorError(nil, "Run", "nil trajectory, topology or detector")
	}
	log := o.Logger()
	total := traj.NFrames()
	frames, err := FramesProcessed(total, o.StartFrame())
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	if n := traj.Len(); n > 0 && n != top.Len() {
		return nil, newCollaboratorError(nil, "Run", "trajectory has %d atoms but the topology has %d", n, top.Len())
	}
	if len(top.Ligands(o.Ligand())) == 0 {
		log.Warn("no ligand residue in topology", zap.String("ligand", o.Ligand()))
	}
	C, err := NewContext(top, o)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	log.Info("processing frames",
		zap.Int("start", o.StartFrame()),
		zap.Int("total", total),
		zap.Int("frames", frames),
		zap.Stringer("mode", o.Mode()),
		zap.Int("cpus", o.Cpus()))
	if o.Cpus() > 1 && frames > 1 {
		err = runConc(C, traj, d, o.StartFrame(), total, o.Cpus(), log)
	} else {
		err = processRange(C, traj, d, o.StartFrame(), total, log)
	}
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	res, err := C.Finalize(total)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	log.Info("run finalized",
		zap.Int("frames", res.FramesProcessed),
		zap.Int("pairs", len(res.Pairs)),
		zap.Int("residues", len(res.Residues)))
	return res, nil
}

// ProgressInterval is the number of frames between progress log entries.
// Zero or less disables them.
var ProgressInterval = 1000

// processRange gives the frames [ini, end) of traj to C, logging the progress
// every ProgressInterval frames.
func processRange(C *Context, traj Trajectory, d Detector, ini, end int, log *zap.Logger) error {
	every := ProgressInterval
	for i := ini; i < end; i++ {
		f, err := traj.Frame(i)
		if err != nil {
			return errDecorate(err, fmt.Sprintf("processRange: reading frame %d", i))
		}
		if err := C.Process(i, f, d); err != nil {
			return errDecorate(err, "processRange")
		}
		if done := i - ini + 1; every > 0 && (done%every == 0 || i == end-1) {
			log.Info("progress",
				zap.Int("from", ini),
				zap.Int("to", end),
				zap.Int("done", done),
				zap.Float64("percent", 100*float64(done)/float64(end-ini)))
		}
	}
	return nil
}

// runConc splits [ini, end) in up to cpus contiguous blocks, processes each in its own
// goroutine with its own Context, and merges the results into C, in block order.
func runConc(C *Context, traj Trajectory, d Detector, ini, end, cpus int, log *zap.Logger) error {
	n := end - ini
	if cpus > n {
		cpus = n
	}
	block := (n + cpus - 1) / cpus
	parts := make([]*Context, 0, cpus)
	var g errgroup.Group
	for b := ini; b < end; b += block {
		bend := b + block
		if bend > end {
			bend = end
		}
		part, err := NewContext(C.top, C.o)
		if err != nil {
			return errDecorate(err, "runConc")
		}
		parts = append(parts, part)
		b := b
		g.Go(func() error {
			log.Debug("processing block", zap.Int("from", b), zap.Int("to", bend))
			return processRange(part, traj, d, b, bend, log)
		})
	}
	if err := g.Wait(); err != nil {
		return errDecorate(err, "runConc")
	}
	for _, p := range parts {
		if err := C.merge(p); err != nil {
			return errDecorate(err, "runConc")
		}
	}
	return nil
}
