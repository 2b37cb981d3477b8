// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/playkit/replayd/storage"
)

// test database
const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test.sqlite"
	tableName        = "replay"
	logCategory      = "testing"
)

// common test setup routines

// remove all files created by test
func removeFiles() {
	os.RemoveAll(testingDirName)
}

// configure for testing
func setup(t *testing.T) storage.Store {
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

	s, err := storage.Open(databaseFileName, tableName)
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return s
}

// post test cleanup
func teardown(t *testing.T, s storage.Store) {
	if nil != s {
		s.Close()
	}
	logger.Finalise()
	removeFiles()
}

// absolute path of the database for reopen tests
func databasePath(t *testing.T) string {
	p, err := filepath.Abs(databaseFileName)
	if nil != err {
		t.Fatalf("abs path error: %s", err)
	}
	return p
}
