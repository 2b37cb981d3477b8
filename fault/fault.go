// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type UnavailableError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised   = ProcessError("already initialised")
	InvalidRefreshLimit  = InvalidError("invalid refresh limit")
	InvalidStructPointer = InvalidError("invalid struct pointer")
	InvalidTableName     = InvalidError("invalid table name")
	NoRecordsAvailable   = NotFoundError("no records available")
	NotInitialised       = ProcessError("not initialised")
	SamplerReleased      = ProcessError("sampler already released")
	StoreReadFailed      = ProcessError("record store read failed")
	StoreUnavailable     = UnavailableError("record store cannot be opened")
	StoreWriteFailed     = ProcessError("record store write failed")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string      { return string(e) }
func (e InvalidError) Error() string     { return string(e) }
func (e NotFoundError) Error() string    { return string(e) }
func (e ProcessError) Error() string     { return string(e) }
func (e UnavailableError) Error() string { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool      { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool     { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool    { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool     { _, ok := e.(ProcessError); return ok }
func IsErrUnavailable(e error) bool { _, ok := e.(UnavailableError); return ok }
