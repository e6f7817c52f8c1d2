/*
 * options.go, part of hbocc.
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
	"go.uber.org/zap"
)

// Options for an occupancy run. Each method returns the current value of an option
// and sets it to the given value, if a valid one is given.
type Options struct {
	start     int
	ligand    string
	threshold float64
	mode      Mode
	cpus      int
	logger    *zap.Logger
}

// DefaultOptions returns an Options with the default values: start frame 0,
// ligand marker "UNL", frequency threshold 0.1, pair aggregation, one goroutine,
// and no logging.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.start = 0
	ret.ligand = DefaultLigand
	ret.threshold = DefaultThreshold
	ret.mode = PairMode
	ret.cpus = 1
	ret.logger = zap.NewNop()
	return ret
}

// StartFrame returns the first frame to be processed, and sets it, if given.
// Negative values are accepted here and rejected when the run starts.
func (o *Options) StartFrame(start ...int) int {
	ret := o.start
	if len(start) > 0 {
		o.start = start[0]
	}
	return ret
}

// Ligand returns the residue name that marks the ligand, and sets it, if a
// non-empty name is given.
func (o *Options) Ligand(name ...string) string {
	ret := o.ligand
	if len(name) > 0 && name[0] != "" {
		o.ligand = name[0]
	}
	return ret
}

// Threshold returns the frequency threshold passed to the detector, and sets it,
// if a value in (0,1] is given.
func (o *Options) Threshold(t ...float64) float64 {
	ret := o.threshold
	if len(t) > 0 && t[0] > 0 && t[0] <= 1 {
		o.threshold = t[0]
	}
	return ret
}

// Mode returns the aggregation mode, and sets it, if a valid one is given.
func (o *Options) Mode(m ...Mode) Mode {
	ret := o.mode
	if len(m) > 0 && m[0]&BothModes != 0 && m[0]&^BothModes == 0 {
		o.mode = m[0]
	}
	return ret
}

// Cpus returns the number of goroutines used to process frames, and sets it,
// if a positive value is given.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

// Logger returns the logger used by the run, and sets it, if a non-nil one is given.
func (o *Options) Logger(l ...*zap.Logger) *zap.Logger {
	ret := o.logger
	if len(l) > 0 && l[0] != nil {
		o.logger = l[0]
	}
	return ret
}

// withDefaults returns a copy of o where the options never set, as in a
// zero-value Options, take their default values.
func (o *Options) withDefaults() *Options {
	ret := o.Copy()
	if ret.ligand == "" {
		ret.ligand = DefaultLigand
	}
	if ret.threshold <= 0 || ret.threshold > 1 {
		ret.threshold = DefaultThreshold
	}
	if ret.mode == 0 {
		ret.mode = PairMode
	}
	if ret.cpus < 1 {
		ret.cpus = 1
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	return ret
}

// Copy returns a copy of the options.
func (o *Options) Copy() *Options {
	ret := *o
	return &ret
}
