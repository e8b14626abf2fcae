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

package config

import (
	"github.com/urfave/cli"
	"github.com/yeeco/ledger/utils"
)

var (
	DataDirFlag = cli.StringFlag{
		Name:  "datadir",
		Usage: "ledger data directory",
		Value: utils.DefaultDataDir(),
	}

	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}

	LogLevelFlag = cli.StringFlag{
		Name:  "loglevel",
		Usage: "log level (trace, debug, info, warn, error)",
	}

	KeepAliveFlag = cli.BoolFlag{
		Name:  "keep-alive",
		Usage: "refuse to reap the sender",
	}

	BestEffortFlag = cli.BoolFlag{
		Name:  "best-effort",
		Usage: "act on as much as is available instead of failing",
	}
)

// MergeFlags lets global flags also be given after a command name.
func MergeFlags(action func(ctx *cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		for _, name := range ctx.FlagNames() {
			if ctx.IsSet(name) {
				ctx.GlobalSet(name, ctx.String(name))
			}
		}
		return action(ctx)
	}
}
