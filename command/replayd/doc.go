// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// replayd - the record cache daemon
//
// opens the record database, pre-warms the shared cache and keeps it
// available for sampling until terminated; optionally watches the
// database file so that writes from other processes invalidate the
// cached window
package main
