// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - the logged sample value stored and cached by replayd
//
// Records are plain values; the store keys them by timestamp only and
// the cache gives them no identity beyond their slot position.
package record

import (
	"fmt"
	"time"
)

// maximum length of the machine label column (MACHINE CHAR(80))
const MaximumMachineLength = 80

// Record - a single logged sample
type Record struct {
	Timestamp uint64  `json:"timestamp"` // wall-clock milliseconds; zero means: assign at insert
	GameID    uint64  `json:"game_id"`   // game/session identifier
	Machine   string  `json:"machine"`   // origin label
	Seq       int     `json:"seq"`       // sequence number within the session
	Pri       float64 `json:"pri"`       // priority weight (payload only, not a sampling weight)
	Reward    float64 `json:"reward"`    // reward value (payload only)
	Content   string  `json:"content"`   // opaque payload
}

// NowTimestamp - the timestamp assigned to records inserted with a
// zero timestamp
func NowTimestamp() uint64 {
	return uint64(time.Now().UnixNano() / int64(time.Millisecond))
}

// String - short form for logging
func (r Record) String() string {
	return fmt.Sprintf("record[%d game: %d seq: %d machine: %q]", r.Timestamp, r.GameID, r.Seq, r.Machine)
}
