/*
 *  Copyright (C) 2017 gyee authors
 *
 *  This file is part of the gyee library.
 *
 *  The gyee library is free software: you can redistribute it and/or modify
 *  it under the terms of the GNU General Public License as published by
 *  the Free Software Foundation, either version 3 of the License, or
 *  (at your option) any later version.
 *
 *  The gyee library is distributed in the hope that it will be useful,
 *  but WITHOUT ANY WARRANTY; without even the implied warranty of
 *  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 *  GNU General Public License for more details.
 *
 *  You should have received a copy of the GNU General Public License
 *  along with the gyee library.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package main

/*
1. command line and flag handling
2. every command opens the node, acts on the ledger and commits on success
*/

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli"
	"github.com/yeeco/ledger/config"
	"github.com/yeeco/ledger/node"
	"github.com/yeeco/ledger/utils/logging"
)

var (
	app = cli.NewApp()
)

func init() {
	app.Name = filepath.Base(os.Args[0])
	app.Version = "0.1.0"
	app.Usage = "the ledger command line interface"
	app.Copyright = "Copyright 2017-2019 The gyee Authors"
	app.Flags = []cli.Flag{
		config.ConfigFlag,
		config.DataDirFlag,
		config.LogLevelFlag,
	}
	app.Commands = []cli.Command{
		initCommand,
		balanceCommand,
		issuanceCommand,
		listCommand,
		transferCommand,
		mintCommand,
		burnCommand,
		slashCommand,
		reserveCommand,
		unreserveCommand,
		freezeCommand,
		accountCommand,
		configCommand,
		licenseCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	if err := app.Run(os.Args); err != nil {
		logging.Logger.Fatal(err)
	}
}

func makeNode(ctx *cli.Context) (*node.Node, error) {
	conf, err := config.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	return node.NewNode(conf)
}

// withNode runs fn against a started node. Changes are committed only when
// fn succeeds.
func withNode(ctx *cli.Context, fn func(n *node.Node) error) error {
	n, err := makeNode(ctx)
	if err != nil {
		return err
	}
	if err := n.Start(); err != nil {
		return err
	}
	defer n.Stop()

	if err := fn(n); err != nil {
		return err
	}
	return n.Commit()
}
