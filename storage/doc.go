// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk record store
//
// This maintains a single SQLite table of records keyed by their
// millisecond timestamp. The table is created on first open.
//
// Schema (column order is fixed, scans parse columns in this order):
//
//   TIME     CHAR(20) PRIMARY KEY NOT NULL   millisecond timestamp, decimal digits
//   GAME_ID  INT      NOT NULL               game/session identifier
//   MACHINE  CHAR(80) NOT NULL               origin label
//   SEQ      INT      NOT NULL               sequence within the session
//   PRI      REAL     NOT NULL               priority weight
//   REWARD   REAL     NOT NULL               reward value
//   CONTENT  TEXT                            opaque payload
//
// indexes: idx_pri(PRI)  idx_reward(REWARD)
//
// Notes:
// 1. inserts fill a zero timestamp with the current time
// 2. recency is defined by ORDER BY TIME DESC
// 3. a small expiring cache of recently inserted timestamps rejects
//    duplicate keys without touching the database
package storage
