// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/playkit/replayd/record"
	"github.com/playkit/replayd/reservoir"
)

func runSample(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	limit := c.Int("limit")

	pool, err := reservoir.Open(m.file, m.table, limit)
	if nil != err {
		return err
	}
	defer pool.Close()

	sampler := pool.NewSampler()
	defer sampler.Release()

	records := make([]record.Record, 0, count)
	for i := 0; i < count; i += 1 {
		r, err := sampler.Sample()
		if nil != err {
			return err
		}
		records = append(records, r)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "cached window: %d records\n", len(pool.Snapshot()))
		printJson(m.e, pool.Stats())
	}

	printJson(m.w, records)

	return nil
}
