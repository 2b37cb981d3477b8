// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/playkit/replayd/counter"
	"github.com/playkit/replayd/record"
	"github.com/playkit/replayd/storage"
)

// DefaultRefreshLimit - records loaded by a lazy refresh
const DefaultRefreshLimit = 1000

// one buffer of records; two of these exist per pool, allocated once
// and refilled in place
type slot struct {
	records []record.Record
}

// Pool - the shared record cache
//
// lock order: refreshLock before the embedded RWMutex; the exclusive
// mode of the RWMutex is only ever held for pointer swaps and
// truncation, never across store I/O
type Pool struct {
	sync.RWMutex // shared: samplers; exclusive: publish/invalidate

	refreshLock sync.Mutex // at most one refresh in flight

	store        storage.Store
	log          *logger.L
	refreshLimit int

	slotA slot
	slotB slot

	active  *slot // visible to readers, guarded by the RWMutex
	staging *slot // refresh target, guarded by refreshLock

	inserts    counter.Counter
	refreshes  counter.Counter
	samples    counter.Counter
	samplerSeq counter.Counter
}

// Stats - cumulative pool statistics
type Stats struct {
	Inserts   uint64 `json:"inserts"`
	Refreshes uint64 `json:"refreshes"`
	Samples   uint64 `json:"samples"`
	Size      int    `json:"size"`
}

// New - pool over an already opened store
//
// a non-positive refreshLimit selects DefaultRefreshLimit
func New(store storage.Store, refreshLimit int) *Pool {
	if refreshLimit <= 0 {
		refreshLimit = DefaultRefreshLimit
	}
	p := &Pool{
		store:        store,
		log:          logger.New("reservoir"),
		refreshLimit: refreshLimit,
	}
	p.active = &p.slotA
	p.staging = &p.slotB
	p.log.Infof("created: refresh limit: %d", refreshLimit)
	return p
}

// Open - open or create the backing store and build a pool over it
func Open(filename string, table string, refreshLimit int) (*Pool, error) {
	store, err := storage.Open(filename, table)
	if nil != err {
		return nil, err
	}
	return New(store, refreshLimit), nil
}

// Insert - durably store one record
//
// the cache is not touched; new records become samplable after the
// next refresh
func (p *Pool) Insert(r record.Record) error {
	err := p.store.Insert(r)
	if nil == err {
		p.inserts.Increment()
	}
	return err
}

// Refresh - rescan the store and publish a new active slot
//
// a non-positive limit selects the pool's refresh limit; on a scan
// error the previously published slot stays active
func (p *Pool) Refresh(limit int) error {

	if limit <= 0 {
		limit = p.refreshLimit
	}

	// at most one refresh in flight; concurrent requests queue here
	// so the store is never scanned twice at once
	p.refreshLock.Lock()
	defer p.refreshLock.Unlock()

	// the staging slot is never reader-visible, so filling it needs
	// no exclusive access
	staging := p.staging
	staging.records = staging.records[:0]

	err := p.store.ScanRecent(limit, func(r record.Record) error {
		staging.records = append(staging.records, r)
		return nil
	})
	if nil != err {
		p.log.Errorf("refresh abandoned: %s", err)
		return err
	}

	// count before publishing: once swapped in, the slot belongs to
	// the readers and Invalidate may truncate it at any time
	n := len(staging.records)

	// publish: the only exclusive section, an O(1) pointer swap
	p.Lock()
	p.active, p.staging = p.staging, p.active
	p.Unlock()

	p.refreshes.Increment()
	p.log.Debugf("refreshed: %d records (limit: %d)", n, limit)
	return nil
}

// Invalidate - empty the active slot
//
// the next sample will find the slot empty and refresh lazily; no
// scan happens here
func (p *Pool) Invalidate() {
	p.Lock()
	p.active.records = p.active.records[:0]
	p.Unlock()
	p.log.Debug("invalidated")
}

// Len - number of records currently samplable
func (p *Pool) Len() int {
	p.RLock()
	defer p.RUnlock()
	return len(p.active.records)
}

// Snapshot - copy of the active slot in its published order
func (p *Pool) Snapshot() []record.Record {
	p.RLock()
	defer p.RUnlock()
	return append([]record.Record(nil), p.active.records...)
}

// Stats - current statistics
func (p *Pool) Stats() Stats {
	return Stats{
		Inserts:   p.inserts.Uint64(),
		Refreshes: p.refreshes.Uint64(),
		Samples:   p.samples.Uint64(),
		Size:      p.Len(),
	}
}

// Close - release the backing store
//
// outstanding samplers must be released first
func (p *Pool) Close() error {
	p.log.Info("closing…")
	return p.store.Close()
}
