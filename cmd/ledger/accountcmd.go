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

import (
	"fmt"

	"github.com/urfave/cli"
	"github.com/yeeco/ledger/config"
	"github.com/yeeco/ledger/node"
	"github.com/yeeco/ledger/system"
)

var (
	accountCommand = cli.Command{
		Name:        "account",
		Usage:       "Manage account records",
		Category:    "ACCOUNT COMMANDS",
		Description: "Create, remove or inspect account records and their references",

		Subcommands: []cli.Command{
			{
				Name:      "create",
				Usage:     "Add a reference under the configured policy",
				ArgsUsage: "<account>",
				Action:    config.MergeFlags(accountCreate),
			},
			{
				Name:      "remove",
				Usage:     "Drop a reference, reaping the record when nothing holds it",
				ArgsUsage: "<account>",
				Action:    config.MergeFlags(accountRemove),
			},
			{
				Name:      "info",
				Usage:     "Show nonce and reference counts",
				ArgsUsage: "<account>",
				Action:    config.MergeFlags(accountInfo),
			},
		},
	}
)

func accountCreate(ctx *cli.Context) error {
	who, err := parseAccountArg(ctx, 0)
	if err != nil {
		return err
	}
	return withNode(ctx, func(n *node.Node) error {
		if err := n.System().CreateAccount(who).Err(); err != nil {
			warnf("Account %s already referenced\n", who.Hex())
			return nil
		}
		okf("Account %s created (%s)\n", who.Hex(), n.System().Policy())
		return nil
	})
}

func accountRemove(ctx *cli.Context) error {
	who, err := parseAccountArg(ctx, 0)
	if err != nil {
		return err
	}
	return withNode(ctx, func(n *node.Node) error {
		switch outcome := n.System().RemoveAccount(who); outcome {
		case system.Reaped:
			okf("Account %s reaped\n", who.Hex())
		case system.Retained:
			warnf("Account %s retained, it still holds funds or references\n", who.Hex())
		default:
			return outcome.Err()
		}
		return nil
	})
}

func accountInfo(ctx *cli.Context) error {
	who, err := parseAccountArg(ctx, 0)
	if err != nil {
		return err
	}
	return withNode(ctx, func(n *node.Node) error {
		sys := n.System()
		if !sys.AccountExists(who) {
			return system.ErrAccountNotExist
		}
		info := sys.Account(who)
		fmt.Printf("%s %s\n", keyf("Account:"), who.Hex())
		fmt.Printf("%s %s\n", keyf("Base58:"), who.Base58())
		fmt.Printf("%s %d\n", keyf("Nonce:"), info.Nonce)
		fmt.Printf("%s %d\n", keyf("Consumers:"), info.Consumers)
		fmt.Printf("%s %d\n", keyf("Providers:"), info.Providers)
		fmt.Printf("%s %d\n", keyf("Sufficients:"), info.Sufficients)
		return nil
	})
}
