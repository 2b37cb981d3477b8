// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"math/rand"
	"time"

	"github.com/playkit/replayd/fault"
	"github.com/playkit/replayd/record"
)

// Sampler - scoped randomised read access to the pool
//
// holds the pool's shared lock from creation until Release, so a
// refresh cannot publish while any sampler is mid-read; each sampler
// has its own random stream and is not safe for use from multiple
// goroutines, create one per goroutine instead
type Sampler struct {
	pool     *Pool
	rng      *rand.Rand
	released bool
}

// NewSampler - acquire the shared lock and a private random stream
//
// the caller must Release the sampler on every path, normally by defer
func (p *Pool) NewSampler() *Sampler {
	seed := time.Now().UnixNano() + int64(p.samplerSeq.Increment())
	p.RLock()
	return &Sampler{
		pool: p,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Sample - one record chosen uniformly from the active slot
//
// an empty slot triggers a refresh and a single retry; an empty store
// yields fault.NoRecordsAvailable
func (s *Sampler) Sample() (record.Record, error) {

	if s.released {
		return record.Record{}, fault.SamplerReleased
	}

	p := s.pool
	records := p.active.records
	if 0 == len(records) {
		// the publish step of a refresh needs the exclusive lock,
		// so the shared hold is dropped around the refresh and
		// reacquired before retrying - holding it across the
		// refresh would deadlock against our own publish
		p.RUnlock()
		err := p.Refresh(p.refreshLimit)
		p.RLock()
		if nil != err {
			return record.Record{}, err
		}

		records = p.active.records
		if 0 == len(records) {
			return record.Record{}, fault.NoRecordsAvailable
		}
	}

	p.samples.Increment()
	return records[s.rng.Intn(len(records))], nil
}

// Release - drop the shared hold
//
// safe to call more than once; a released sampler refuses further
// samples
func (s *Sampler) Release() {
	if s.released {
		return
	}
	s.released = true
	s.pool.RUnlock()
}
