// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"strconv"

	cache "github.com/patrickmn/go-cache"

	"github.com/playkit/replayd/fault"
	"github.com/playkit/replayd/record"
)

// Insert - durably store one record
//
// a zero timestamp is replaced by the current time; the timestamp is
// the primary key so a duplicate is rejected, the caller may retry
// with a fresh timestamp
func (s *storeData) Insert(r record.Record) error {

	if 0 == r.Timestamp {
		r.Timestamp = record.NowTimestamp()
	}

	key := strconv.FormatUint(r.Timestamp, 10)

	// reject recent duplicates before touching the database
	if _, found := s.recent.Get(key); found {
		s.log.Warnf("duplicate timestamp: %s", key)
		return fault.StoreWriteFailed
	}

	_, err := s.insert.Exec(key, r.GameID, r.Machine, r.Seq, r.Pri, r.Reward, r.Content)
	if nil != err {
		s.log.Errorf("insert: %s  error: %s", r, err)
		return fault.StoreWriteFailed
	}

	s.recent.Set(key, struct{}{}, cache.DefaultExpiration)
	s.log.Debugf("inserted: %s", r)
	return nil
}
