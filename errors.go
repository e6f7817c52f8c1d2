/*
 * errors.go, part of hbocc.
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
	"errors"
	"fmt"
	"strings"
)

// ErrFinalized is returned when a frame is given to a Context that has
// already produced its result.
var ErrFinalized = errors.New("hbocc: context already finalized")

// ConfigError reports a run configuration that can't produce a result,
// such as an empty frame range. It is always fatal and is returned before
// any frame is processed.
type ConfigError struct {
	msg  string
	deco []string
}

func newConfigError(caller, format string, a ...interface{}) *ConfigError {
	return &ConfigError{msg: fmt.Sprintf(format, a...), deco: []string{caller}}
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", err.msg)
}

// Decorate adds deco, if not empty, to the decoration slice of the error,
// and returns the slice.
func (err *ConfigError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// CollaboratorError wraps a failure coming from outside the aggregation core:
// structure or trajectory parsing, the bond detector, or an atom index
// that is not in the topology. It invalidates the whole run.
type CollaboratorError struct {
	msg  string
	deco []string
	err  error
}

func newCollaboratorError(err error, caller, format string, a ...interface{}) *CollaboratorError {
	return &CollaboratorError{msg: fmt.Sprintf(format, a...), deco: []string{caller}, err: err}
}

func (err *CollaboratorError) Error() string {
	if err.err == nil {
		return err.msg
	}
	if err.msg == "" {
		return err.err.Error()
	}
	return fmt.Sprintf("%s: %s", err.msg, err.err.Error())
}

// Unwrap returns the underlying error, if any.
func (err *CollaboratorError) Unwrap() error { return err.err }

// Decorate adds deco, if not empty, to the decoration slice of the error,
// and returns the slice.
func (err *CollaboratorError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Trace returns the decorations of err, from the innermost caller outwards,
// joined by " <- ". It returns an empty string if err doesn't implement Error.
func Trace(err error) string {
	var e Error
	if !errors.As(err, &e) {
		return ""
	}
	return strings.Join(e.Decorate(""), " <- ")
}

// errDecorate decorates err with the caller's name if err implements Error,
// and wraps it in a CollaboratorError otherwise. A nil err gives nil.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		switch e.(type) {
		case *ConfigError, *CollaboratorError:
			e.Decorate(caller)
			return err
		}
	}
	return newCollaboratorError(err, caller, "")
}
