// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - control of background processes
//
// starts a set of goroutines and provides a single point to shut them
// all down and wait for their completion
package background

// the shutdown and completed channels for a single background
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle for the running set
type T struct {
	s []shutdown
}

// Process - a single background
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - run a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := new(T)
	register.s = make([]shutdown, len(processes))

	// start each background
	for i, p := range processes {
		shutdownChannel := make(chan struct{})
		finishedChannel := make(chan struct{})
		register.s[i].shutdown = shutdownChannel
		register.s[i].finished = finishedChannel
		go func(p Process, shutdown <-chan struct{}, finished chan<- struct{}) {
			// pass shutdown to the Run loop
			// flag completion when it returns
			p.Run(args, shutdown)
			close(finished)
		}(p, shutdownChannel, finishedChannel)
	}
	return register
}

// Stop - shut down the background processes and wait for them to finish
func (t *T) Stop() {

	if nil == t {
		return
	}

	// shutdown all background tasks
	for _, shutdown := range t.s {
		close(shutdown.shutdown)
	}

	// wait for finished
	for _, shutdown := range t.s {
		<-shutdown.finished
	}
}
