// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// replay-cli - command line access to the record database
//
// inserts records, lists the most recent ones and draws random
// samples through the same cache the daemon uses; output is JSON
package main
