// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package watcher - invalidate the record cache when the database
// file is written by another process
//
// intended for sampling-only deployments where the writers are other
// machines appending to the same database; a watching process that
// also inserts would invalidate itself on every insert
package watcher

import (
	"os"
	"path"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"

	"github.com/playkit/replayd/fault"
)

// Target - receives the invalidation when the watched file changes
type Target interface {
	Invalidate()
}

// Watcher - a background process watching one database file
type Watcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	target   Target
}

// New - watch targetFile and invalidate target on changes
//
// the file must already exist; run the watcher via background.Start
func New(targetFile string, target Target, log *logger.L) (*Watcher, error) {

	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		log.Errorf("parse file: %q  error: %s", targetFile, err)
		return nil, err
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		log.Errorf("file does not exist: %q", filePath)
		return nil, fault.StoreUnavailable
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		return nil, err
	}

	return &Watcher{
		log:      log,
		watcher:  fsWatcher,
		filePath: filePath,
		target:   target,
	}, nil
}

// Run - background event loop, exits on shutdown or file removal
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {

	log := w.log

	if err := w.watcher.Add(w.filePath); nil != err {
		log.Errorf("watcher add error: %s", err)
		return
	}
	defer w.watcher.Close()

	log.Infof("watching: %q", w.filePath)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event := <-w.watcher.Events:
			log.Debugf("file event: %v", event)

			if eventIsRemove(event) {
				log.Errorf("file removed: %q  stop", w.filePath)
				break loop
			}

			if path.Base(event.Name) != path.Base(w.filePath) {
				continue loop
			}

			if eventIsChange(event) {
				log.Debug("database changed, invalidating cache")
				w.target.Invalidate()
			}

		case err := <-w.watcher.Errors:
			if nil != err {
				log.Errorf("watcher error: %s", err)
			}
		}
	}
}

func eventIsRemove(event fsnotify.Event) bool {
	return "" == event.Name || event.Op&fsnotify.Remove == fsnotify.Remove
}

func eventIsChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
