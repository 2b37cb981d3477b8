// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"database/sql"
	"strconv"

	"github.com/playkit/replayd/fault"
	"github.com/playkit/replayd/record"
)

// ScanRecent - stream up to limit records, most recent first
//
// fn is called once per row in descending timestamp order; an error
// from fn aborts the scan and is returned unchanged
func (s *storeData) ScanRecent(limit int, fn func(r record.Record) error) error {

	if limit <= 0 {
		return fault.InvalidRefreshLimit
	}

	rows, err := s.scan.Query(limit)
	if nil != err {
		s.log.Errorf("scan query error: %s", err)
		return fault.StoreReadFailed
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var timestamp string
		var content sql.NullString
		var r record.Record

		err := rows.Scan(&timestamp, &r.GameID, &r.Machine, &r.Seq, &r.Pri, &r.Reward, &content)
		if nil != err {
			s.log.Errorf("scan row error: %s", err)
			return fault.StoreReadFailed
		}

		r.Timestamp, err = strconv.ParseUint(timestamp, 10, 64)
		if nil != err {
			s.log.Errorf("scan timestamp: %q  error: %s", timestamp, err)
			return fault.StoreReadFailed
		}
		r.Content = content.String

		if err := fn(r); nil != err {
			return err
		}
		n += 1
	}

	if err := rows.Err(); nil != err {
		s.log.Errorf("scan error: %s", err)
		return fault.StoreReadFailed
	}

	s.log.Debugf("scanned %d records (limit: %d)", n, limit)
	return nil
}
