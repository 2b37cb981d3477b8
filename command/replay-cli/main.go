// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"
)

type metadata struct {
	file    string
	table   string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "replay-cli"
	// app.Usage = ""
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "database, d",
			Value: "replay.sqlite",
			Usage: " record database `FILE`",
		},
		cli.StringFlag{
			Name:  "table, t",
			Value: "replay",
			Usage: " record table `NAME`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "insert",
			Usage:     "insert one record into the database",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "timestamp, T",
					Value: 0,
					Usage: " timestamp in milliseconds `MS` [now]",
				},
				cli.Uint64Flag{
					Name:  "game, g",
					Value: 0,
					Usage: " game identifier `NUMBER`",
				},
				cli.StringFlag{
					Name:  "machine, m",
					Value: "",
					Usage: "*originating machine `NAME`",
				},
				cli.IntFlag{
					Name:  "seq, s",
					Value: 0,
					Usage: " sequence number within the game `NUMBER`",
				},
				cli.Float64Flag{
					Name:  "pri, p",
					Value: 0,
					Usage: " priority `VALUE`",
				},
				cli.Float64Flag{
					Name:  "reward, r",
					Value: 0,
					Usage: " reward `VALUE`",
				},
				cli.StringFlag{
					Name:  "content, c",
					Value: "",
					Usage: "*record payload `STRING`",
				},
			},
			Action: runInsert,
		},
		{
			Name:      "recent",
			Usage:     "list the most recent records",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runRecent,
		},
		{
			Name:      "sample",
			Usage:     "draw random records from the cached window",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, c",
					Value: 1,
					Usage: " number of samples to draw `COUNT`",
				},
				cli.IntFlag{
					Name:  "limit, l",
					Value: 0,
					Usage: " cache window size `COUNT` [default limit]",
				},
			},
			Action: runSample,
		},
		{
			Name:  "version",
			Usage: "display replay-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// stash the global options
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress opening a database for certain commands
		command := c.Args().Get(0)
		if "version" == command {
			return nil
		}

		file := c.GlobalString("database")
		if "" == file {
			return fmt.Errorf("missing database file")
		}
		table := c.GlobalString("table")
		if "" == table {
			return fmt.Errorf("missing table name")
		}

		if verbose {
			fmt.Fprintf(e, "database: %q  table: %q\n", file, table)
		}

		// the library packages log through channels; send everything
		// to a scratch file and keep the console clean
		err := logger.Initialise(logger.Configuration{
			Directory: os.TempDir(),
			File:      "replay-cli.log",
			Size:      1048576,
			Count:     2,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		})
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			file:    file,
			table:   table,
			verbose: verbose,
			e:       e,
			w:       w,
		}

		return nil
	}

	app.After = func(c *cli.Context) error {
		if _, ok := c.App.Metadata["config"].(*metadata); ok {
			logger.Finalise()
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
