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

func runInsert(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	machine := c.String("machine")
	if "" == machine {
		return fmt.Errorf("missing machine name")
	}
	if len(machine) > record.MaximumMachineLength {
		return fmt.Errorf("machine name: %q exceeds %d characters", machine, record.MaximumMachineLength)
	}

	content := c.String("content")
	if "" == content {
		return fmt.Errorf("missing content")
	}

	r := record.Record{
		Timestamp: c.Uint64("timestamp"),
		GameID:    c.Uint64("game"),
		Machine:   machine,
		Seq:       c.Int("seq"),
		Pri:       c.Float64("pri"),
		Reward:    c.Float64("reward"),
		Content:   content,
	}

	if m.verbose {
		fmt.Fprintf(m.e, "record: %s\n", r)
	}

	store, err := storage.Open(m.file, m.table)
	if nil != err {
		return err
	}
	defer store.Close()

	err = store.Insert(r)
	if nil != err {
		return err
	}

	printJson(m.w, r)

	return nil
}
