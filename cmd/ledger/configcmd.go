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
	"errors"

	"github.com/urfave/cli"
	"github.com/yeeco/ledger/config"
)

var (
	configCommand = cli.Command{
		Name:     "config",
		Usage:    "Manage config",
		Category: "CONFIG COMMANDS",
		Description: `
Manage ledger config, generate a default config file.`,

		Subcommands: []cli.Command{
			{
				Name:      "new",
				Usage:     "Generate a default config file",
				Action:    config.MergeFlags(createDefaultConfig),
				ArgsUsage: "<filename>",
			},
			{
				Name:      "save",
				Usage:     "Write the effective config to a file",
				Action:    config.MergeFlags(saveConfig),
				ArgsUsage: "<filename>",
			},
		},
	}
)

var errNoConfigFile = errors.New("please give a config file arg")

func saveConfig(ctx *cli.Context) error {
	fileName := ctx.Args().First()
	if len(fileName) == 0 {
		return errNoConfigFile
	}
	conf, err := config.GetConfig(ctx)
	if err != nil {
		return err
	}
	if err := config.SaveConfigToFile(fileName, conf); err != nil {
		return err
	}
	okf("Config saved to %s\n", fileName)
	return nil
}

func createDefaultConfig(ctx *cli.Context) error {
	fileName := ctx.Args().First()
	if len(fileName) == 0 {
		return errNoConfigFile
	}
	if err := config.SaveConfigToFile(fileName, config.Default()); err != nil {
		return err
	}
	okf("Create default config %s\n", fileName)
	return nil
}
