// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reservoir - shared in-memory window over the record store
//
// The pool keeps two record slots. Exactly one is active and visible
// to readers; the other is the staging slot that a refresh fills from
// the store. Publishing a refresh is a pointer swap under the
// exclusive lock, so readers are never stalled by store I/O and never
// see a partially filled slot.
//
// Samplers hold the shared lock for their whole lifetime and draw
// uniformly from the active slot with a private random stream. A
// sampler that finds the slot empty drops its shared hold, runs a
// refresh, reacquires the hold and retries once; refreshes are
// serialised by their own mutex so concurrent demand produces a
// single store scan.
package reservoir
