// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"database/sql"
	"regexp"
	"time"

	_ "github.com/mattn/go-sqlite3"
	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"

	"github.com/playkit/replayd/fault"
	"github.com/playkit/replayd/record"
)

// Store - interface to the durable record store
type Store interface {
	Insert(r record.Record) error
	ScanRecent(limit int, fn func(r record.Record) error) error
	Close() error
}

// expiry of the duplicate-timestamp detection cache
const (
	recentTimeout    = 1 * time.Minute
	recentExpiration = 2 * time.Minute
)

// table names cannot be bound as statement parameters so they are
// restricted to plain identifiers
var tableNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// storeData - SQLite backed implementation of Store
type storeData struct {
	db     *sql.DB
	table  string
	log    *logger.L
	recent *cache.Cache

	insert *sql.Stmt
	scan   *sql.Stmt
}

// Open - open or create the record table inside a SQLite database
//
// the file is created if it does not exist; the schema is created if
// the table is absent
func Open(filename string, table string) (Store, error) {

	log := logger.New("storage")

	if !tableNameRegexp.MatchString(table) {
		log.Errorf("invalid table name: %q", table)
		return nil, fault.InvalidTableName
	}

	db, err := sql.Open("sqlite3", filename)
	if nil != err {
		log.Errorf("open: %q  error: %s", filename, err)
		return nil, fault.StoreUnavailable
	}

	// sql.Open defers real work; force the file open now
	if err := db.Ping(); nil != err {
		log.Errorf("ping: %q  error: %s", filename, err)
		db.Close()
		return nil, fault.StoreUnavailable
	}

	s := &storeData{
		db:     db,
		table:  table,
		log:    log,
		recent: cache.New(recentTimeout, recentExpiration),
	}

	exists, err := s.tableExists()
	if nil != err {
		db.Close()
		return nil, err
	}
	if !exists {
		if err := s.tableCreate(); nil != err {
			db.Close()
			return nil, err
		}
	}

	if err := s.prepareStatements(); nil != err {
		db.Close()
		return nil, err
	}

	log.Infof("opened: %q table: %q", filename, table)

	return s, nil
}

// Close - release the database handle
func (s *storeData) Close() error {
	if nil != s.insert {
		s.insert.Close()
	}
	if nil != s.scan {
		s.scan.Close()
	}
	return s.db.Close()
}

// check whether the record table already exists
//
// a failed check is an error, not absence: creating over an existing
// table would fail and mask the real problem
func (s *storeData) tableExists() (bool, error) {
	rows, err := s.db.Query(
		"SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?",
		s.table,
	)
	if nil != err {
		s.log.Errorf("table existence query error: %s", err)
		return false, fault.StoreUnavailable
	}
	defer rows.Close()

	exists := rows.Next()
	if err := rows.Err(); nil != err {
		s.log.Errorf("table existence check error: %s", err)
		return false, fault.StoreUnavailable
	}
	return exists, nil
}

// create the record table and its indexes
func (s *storeData) tableCreate() error {

	statements := []string{
		"CREATE TABLE " + s.table + " (" +
			"TIME     CHAR(20) PRIMARY KEY NOT NULL," +
			"GAME_ID  INT      NOT NULL," +
			"MACHINE  CHAR(80) NOT NULL," +
			"SEQ      INT      NOT NULL," +
			"PRI      REAL     NOT NULL," +
			"REWARD   REAL     NOT NULL," +
			"CONTENT  TEXT)",
		"CREATE INDEX idx_pri ON " + s.table + "(PRI)",
		"CREATE INDEX idx_reward ON " + s.table + "(REWARD)",
	}

	for _, statement := range statements {
		s.log.Debugf("SQL: %s", statement)
		if _, err := s.db.Exec(statement); nil != err {
			s.log.Errorf("table create error: %s", err)
			return fault.StoreUnavailable
		}
	}
	return nil
}

// values are bound as parameters, only the validated table name is
// spliced into the statement text
func (s *storeData) prepareStatements() error {

	insert, err := s.db.Prepare(
		"INSERT INTO " + s.table +
			" (TIME, GAME_ID, MACHINE, SEQ, PRI, REWARD, CONTENT) VALUES (?, ?, ?, ?, ?, ?, ?)",
	)
	if nil != err {
		s.log.Errorf("prepare insert error: %s", err)
		return fault.StoreUnavailable
	}

	scan, err := s.db.Prepare(
		"SELECT TIME, GAME_ID, MACHINE, SEQ, PRI, REWARD, CONTENT FROM " + s.table +
			" ORDER BY TIME DESC LIMIT ?",
	)
	if nil != err {
		insert.Close()
		s.log.Errorf("prepare scan error: %s", err)
		return fault.StoreUnavailable
	}

	s.insert = insert
	s.scan = scan
	return nil
}
