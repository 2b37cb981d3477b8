// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/playkit/replayd/reservoir"
)

// interval between statistics log lines
const statsInterval = 60 * time.Second

// periodically logs cumulative pool statistics
type statsLogger struct {
	pool *reservoir.Pool
	log  *logger.L
}

// Run - wait for shutdown, logging statistics on each tick
func (s *statsLogger) Run(args interface{}, shutdown <-chan struct{}) {
	s.log.Info("starting…")

	timer := time.NewTicker(statsInterval)
	defer timer.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-timer.C:
			stats := s.pool.Stats()
			s.log.Infof("inserts: %d  refreshes: %d  samples: %d  cached: %d",
				stats.Inserts, stats.Refreshes, stats.Samples, stats.Size)
		}
	}

	s.log.Info("finished")
}
