// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/playkit/replayd/record"
	"github.com/playkit/replayd/storage"
)

func runRecent(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	store, err := storage.Open(m.file, m.table)
	if nil != err {
		return err
	}
	defer store.Close()

	records := make([]record.Record, 0, count)
	err = store.ScanRecent(count, func(r record.Record) error {
		records = append(records, r)
		return nil
	})
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "records: %d\n", len(records))
	}

	printJson(m.w, records)

	return nil
}
