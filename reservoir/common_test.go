// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/playkit/replayd/record"
	"github.com/playkit/replayd/reservoir"
)

// test database
const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test.sqlite"
	tableName        = "replay"
	logCategory      = "testing"
)

// remove all files created by test
func removeFiles() {
	os.RemoveAll(testingDirName)
}

// configure logging for testing
func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      fmt.Sprintf("%s.log", logCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// pool over a fresh on-disk store
func setupPool(t *testing.T, refreshLimit int) *reservoir.Pool {
	setupTestLogger()

	pool, err := reservoir.Open(databaseFileName, tableName, refreshLimit)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	return pool
}

func teardownPool(pool *reservoir.Pool) {
	if nil != pool {
		pool.Close()
	}
	teardownTestLogger()
}

// insert n records with strictly increasing timestamps
func insertRecords(t *testing.T, pool *reservoir.Pool, n int) []record.Record {
	base := record.NowTimestamp()

	records := make([]record.Record, n)
	for i := 0; i < n; i += 1 {
		records[i] = record.Record{
			Timestamp: base + uint64(i),
			GameID:    uint64(i),
			Machine:   "m1",
			Seq:       i,
			Pri:       0.5,
			Reward:    1.0,
			Content:   fmt.Sprintf("content-%d", i),
		}
		if err := pool.Insert(records[i]); nil != err {
			t.Fatalf("insert %d error: %s", i, err)
		}
	}
	return records
}
