// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"io/ioutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/playkit/replayd/fault"
	"github.com/playkit/replayd/record"
	"github.com/playkit/replayd/storage"
)

// collect a full scan into a slice
func scanAll(t *testing.T, s storage.Store, limit int) []record.Record {
	records := make([]record.Record, 0, limit)
	err := s.ScanRecent(limit, func(r record.Record) error {
		records = append(records, r)
		return nil
	})
	if nil != err {
		t.Fatalf("scan error: %s", err)
	}
	return records
}

// round-trip: a zero timestamp is filled at insert time
func TestInsertFillsTimestamp(t *testing.T) {
	s := setup(t)
	defer teardown(t, s)

	in := record.Record{
		Timestamp: 0,
		GameID:    7,
		Machine:   "m1",
		Seq:       3,
		Pri:       0.5,
		Reward:    1.0,
		Content:   "abc",
	}

	err := s.Insert(in)
	assert.Nil(t, err, "insert error")

	records := scanAll(t, s, 10)
	assert.Equal(t, 1, len(records), "wrong record count")

	out := records[0]
	assert.NotZero(t, out.Timestamp, "timestamp was not filled")
	assert.True(t, out.Timestamp <= record.NowTimestamp(), "timestamp in the future")
	assert.Equal(t, in.GameID, out.GameID, "game id mismatch")
	assert.Equal(t, in.Machine, out.Machine, "machine mismatch")
	assert.Equal(t, in.Seq, out.Seq, "seq mismatch")
	assert.Equal(t, in.Pri, out.Pri, "pri mismatch")
	assert.Equal(t, in.Reward, out.Reward, "reward mismatch")
	assert.Equal(t, in.Content, out.Content, "content mismatch")
}

// scans return min(limit, total) records in descending timestamp order
func TestScanRecentOrderAndLimit(t *testing.T) {
	s := setup(t)
	defer teardown(t, s)

	base := record.NowTimestamp()
	const total = 9

	for i := 0; i < total; i += 1 {
		err := s.Insert(record.Record{
			Timestamp: base + uint64(i),
			GameID:    uint64(i),
			Machine:   "m1",
			Seq:       i,
			Pri:       1.0,
			Reward:    0.0,
			Content:   "payload",
		})
		if nil != err {
			t.Fatalf("insert %d error: %s", i, err)
		}
	}

	// limit below total
	records := scanAll(t, s, 4)
	assert.Equal(t, 4, len(records), "limited scan count")
	for i, r := range records {
		expected := base + uint64(total-1-i)
		assert.Equal(t, expected, r.Timestamp, "scan order")
	}

	// limit above total
	records = scanAll(t, s, 100)
	assert.Equal(t, total, len(records), "full scan count")
	for i := 1; i < len(records); i += 1 {
		if records[i-1].Timestamp <= records[i].Timestamp {
			t.Errorf("not descending at %d: %d then %d", i, records[i-1].Timestamp, records[i].Timestamp)
		}
	}
}

// the timestamp is the primary key
func TestInsertDuplicateTimestamp(t *testing.T) {
	s := setup(t)
	defer teardown(t, s)

	r := record.Record{
		Timestamp: record.NowTimestamp(),
		GameID:    1,
		Machine:   "m1",
		Seq:       0,
		Pri:       0.1,
		Reward:    0.2,
		Content:   "first",
	}

	err := s.Insert(r)
	assert.Nil(t, err, "first insert error")

	r.Content = "second"
	err = s.Insert(r)
	assert.Equal(t, fault.StoreWriteFailed, err, "duplicate insert must fail")

	// retry with a fresh timestamp succeeds
	r.Timestamp += 1
	err = s.Insert(r)
	assert.Nil(t, err, "retry insert error")
}

// a scan error from the callback aborts the scan unchanged
func TestScanCallbackAbort(t *testing.T) {
	s := setup(t)
	defer teardown(t, s)

	base := record.NowTimestamp()
	for i := 0; i < 5; i += 1 {
		_ = s.Insert(record.Record{Timestamp: base + uint64(i), GameID: 1, Machine: "m", Seq: i, Pri: 0, Reward: 0})
	}

	seen := 0
	stop := fault.ProcessError("stop")
	err := s.ScanRecent(10, func(r record.Record) error {
		seen += 1
		if 2 == seen {
			return stop
		}
		return nil
	})
	assert.Equal(t, stop, err, "callback error must propagate unchanged")
	assert.Equal(t, 2, seen, "scan must stop at the failing row")
}

// zero and negative limits are rejected
func TestScanInvalidLimit(t *testing.T) {
	s := setup(t)
	defer teardown(t, s)

	err := s.ScanRecent(0, func(r record.Record) error { return nil })
	assert.Equal(t, fault.InvalidRefreshLimit, err, "zero limit")

	err = s.ScanRecent(-1, func(r record.Record) error { return nil })
	assert.Equal(t, fault.InvalidRefreshLimit, err, "negative limit")
}

// malformed table names must not reach the SQL layer
func TestOpenInvalidTableName(t *testing.T) {
	s := setup(t) // for the logger fixture
	defer teardown(t, s)

	_, err := storage.Open(databasePath(t), "bad name; DROP TABLE x")
	assert.Equal(t, fault.InvalidTableName, err, "table name validation")
}

// data survives close and reopen
func TestReopen(t *testing.T) {
	s := setup(t)

	ts := record.NowTimestamp()
	err := s.Insert(record.Record{Timestamp: ts, GameID: 3, Machine: "m2", Seq: 1, Pri: 0.5, Reward: 0.5, Content: "keep"})
	assert.Nil(t, err, "insert error")
	s.Close()

	s, err = storage.Open(databasePath(t), tableName)
	if nil != err {
		t.Fatalf("reopen error: %s", err)
	}
	defer teardown(t, s)

	records := scanAll(t, s, 10)
	assert.Equal(t, 1, len(records), "record count after reopen")
	assert.Equal(t, ts, records[0].Timestamp, "timestamp after reopen")
	assert.Equal(t, "keep", records[0].Content, "content after reopen")

	// duplicate detection must also work from the database, not only
	// from the in-memory memo of this handle
	err = s.Insert(record.Record{Timestamp: ts, GameID: 3, Machine: "m2", Seq: 2, Pri: 0, Reward: 0})
	assert.Equal(t, fault.StoreWriteFailed, err, "duplicate after reopen")
}

// a corrupt file must fail at open; the failed existence check must
// not be mistaken for an absent table
func TestOpenCorruptFile(t *testing.T) {
	s := setup(t) // for the logger fixture
	defer teardown(t, s)

	corrupt := testingDirName + "/corrupt.sqlite"
	if err := ioutil.WriteFile(corrupt, []byte("this is not a database"), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}

	_, err := storage.Open(corrupt, tableName)
	assert.Equal(t, fault.StoreUnavailable, err, "open on a corrupt file")
}

// an unusable path must fail construction, not later operations
func TestOpenUnavailable(t *testing.T) {
	s := setup(t) // for the logger fixture
	defer teardown(t, s)

	_, err := storage.Open(testingDirName, tableName) // a directory, not a file
	assert.Equal(t, fault.StoreUnavailable, err, "open on a directory")
}

// insert assigns distinct millisecond timestamps under normal pacing
func TestInsertPacing(t *testing.T) {
	s := setup(t)
	defer teardown(t, s)

	for i := 0; i < 3; i += 1 {
		err := s.Insert(record.Record{GameID: uint64(i), Machine: "m", Seq: i, Pri: 0, Reward: 0})
		if nil != err {
			t.Fatalf("insert %d error: %s", i, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	records := scanAll(t, s, 10)
	assert.Equal(t, 3, len(records), "record count")
}
