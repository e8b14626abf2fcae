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
	"strconv"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/yeeco/ledger/account"
	"github.com/yeeco/ledger/balances"
	"github.com/yeeco/ledger/common"
	"github.com/yeeco/ledger/config"
	"github.com/yeeco/ledger/node"
)

var (
	okf   = color.New(color.FgGreen).PrintfFunc()
	warnf = color.New(color.FgYellow).PrintfFunc()
	keyf  = color.New(color.FgCyan).SprintFunc()
)

var (
	reasonsFlag = cli.StringFlag{
		Name:  "reasons",
		Usage: "frozen floor to act on (fee, misc, all)",
		Value: "all",
	}
	thawFlag = cli.BoolFlag{
		Name:  "thaw",
		Usage: "clear the floor instead of raising it",
	}

	initCommand = cli.Command{
		Action:   config.MergeFlags(ledgerInit),
		Name:     "init",
		Usage:    "Create the ledger and endow the genesis accounts",
		Category: "LEDGER COMMANDS",
	}
	balanceCommand = cli.Command{
		Action:    config.MergeFlags(showBalance),
		Name:      "balance",
		Usage:     "Show the balance of an account",
		ArgsUsage: "<account>",
		Category:  "LEDGER COMMANDS",
	}
	issuanceCommand = cli.Command{
		Action:   config.MergeFlags(showIssuance),
		Name:     "issuance",
		Usage:    "Show total, inactive and active issuance",
		Category: "LEDGER COMMANDS",
	}
	listCommand = cli.Command{
		Action:   config.MergeFlags(listAccounts),
		Name:     "list",
		Usage:    "List every account record",
		Category: "LEDGER COMMANDS",
	}
	transferCommand = cli.Command{
		Action:    config.MergeFlags(transfer),
		Name:      "transfer",
		Usage:     "Move free balance between accounts",
		ArgsUsage: "<from> <to> <amount>",
		Flags:     []cli.Flag{config.KeepAliveFlag},
		Category:  "LEDGER COMMANDS",
	}
	mintCommand = cli.Command{
		Action:    config.MergeFlags(mint),
		Name:      "mint",
		Usage:     "Create new units in an account",
		ArgsUsage: "<account> <amount>",
		Category:  "LEDGER COMMANDS",
	}
	burnCommand = cli.Command{
		Action:    config.MergeFlags(burn),
		Name:      "burn",
		Usage:     "Destroy units held by an account",
		ArgsUsage: "<account> <amount>",
		Flags:     []cli.Flag{config.BestEffortFlag},
		Category:  "LEDGER COMMANDS",
	}
	slashCommand = cli.Command{
		Action:    config.MergeFlags(slash),
		Name:      "slash",
		Usage:     "Confiscate balance and remove it from issuance",
		ArgsUsage: "<account> <amount>",
		Category:  "LEDGER COMMANDS",
	}
	reserveCommand = cli.Command{
		Action:    config.MergeFlags(reserve),
		Name:      "reserve",
		Usage:     "Move free balance into reserve",
		ArgsUsage: "<account> <amount>",
		Category:  "LEDGER COMMANDS",
	}
	unreserveCommand = cli.Command{
		Action:    config.MergeFlags(unreserve),
		Name:      "unreserve",
		Usage:     "Move reserved balance back to free",
		ArgsUsage: "<account> <amount>",
		Category:  "LEDGER COMMANDS",
	}
	freezeCommand = cli.Command{
		Action:    config.MergeFlags(freeze),
		Name:      "freeze",
		Usage:     "Set a floor the free balance may not drop below",
		ArgsUsage: "<account> [amount]",
		Flags:     []cli.Flag{reasonsFlag, thawFlag},
		Category:  "LEDGER COMMANDS",
	}
)

func parseAccountArg(ctx *cli.Context, i int) (common.AccountID, error) {
	arg := ctx.Args().Get(i)
	if arg == "" {
		return common.AccountID{}, errors.Errorf("missing account argument #%d", i+1)
	}
	return common.ParseAccountID(arg)
}

func parseAmountArg(ctx *cli.Context, i int) (account.Balance, error) {
	arg := ctx.Args().Get(i)
	if arg == "" {
		return 0, errors.Errorf("missing amount argument #%d", i+1)
	}
	v, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "amount %q", arg)
	}
	return account.Balance(v), nil
}

func parseAccountAmount(ctx *cli.Context) (common.AccountID, account.Balance, error) {
	who, err := parseAccountArg(ctx, 0)
	if err != nil {
		return who, 0, err
	}
	amount, err := parseAmountArg(ctx, 1)
	return who, amount, err
}

func parseReasons(s string) (account.Reasons, error) {
	switch s {
	case "fee":
		return account.Fee, nil
	case "misc":
		return account.Misc, nil
	case "all", "":
		return account.All, nil
	}
	return account.All, errors.Errorf("unknown reasons %q", s)
}

func ledgerInit(ctx *cli.Context) error {
	return withNode(ctx, func(n *node.Node) error {
		okf("Ledger ready at %s, total issuance %d\n", n.Config().Storage.DataDir, n.Ledger().TotalIssuance())
		return nil
	})
}

func showBalance(ctx *cli.Context) error {
	who, err := parseAccountArg(ctx, 0)
	if err != nil {
		return err
	}
	return withNode(ctx, func(n *node.Node) error {
		data := n.Ledger().Account(who)
		info := n.System().Account(who)
		fmt.Printf("%s %s\n", keyf("Account:"), who.Hex())
		fmt.Printf("%s %d\n", keyf("Free:"), data.Free)
		fmt.Printf("%s %d\n", keyf("Reserved:"), data.Reserved)
		fmt.Printf("%s misc %d, fee %d\n", keyf("Frozen:"), data.MiscFrozen, data.FeeFrozen)
		fmt.Printf("%s %d\n", keyf("Total:"), data.Total())
		fmt.Printf("%s consumers %d, providers %d, sufficients %d\n", keyf("References:"),
			info.Consumers, info.Providers, info.Sufficients)
		return nil
	})
}

func showIssuance(ctx *cli.Context) error {
	return withNode(ctx, func(n *node.Node) error {
		l := n.Ledger()
		fmt.Printf("%s %d\n", keyf("Total:"), l.TotalIssuance())
		fmt.Printf("%s %d\n", keyf("Inactive:"), l.InactiveIssuance())
		fmt.Printf("%s %d\n", keyf("Active:"), l.ActiveIssuance())
		fmt.Printf("%s %d\n", keyf("Existential deposit:"), l.MinimumBalance())
		return nil
	})
}

func listAccounts(ctx *cli.Context) error {
	return withNode(ctx, func(n *node.Node) error {
		i := 0
		err := n.State().ForEachAccount(func(id common.AccountID, info account.Info) bool {
			fmt.Printf("Account #%d: %s %s\n", i, id.Hex(), info.Data.String())
			i++
			return true
		})
		return err
	})
}

func transfer(ctx *cli.Context) error {
	from, err := parseAccountArg(ctx, 0)
	if err != nil {
		return err
	}
	to, err := parseAccountArg(ctx, 1)
	if err != nil {
		return err
	}
	amount, err := parseAmountArg(ctx, 2)
	if err != nil {
		return err
	}
	req := balances.AllowDeath
	if ctx.Bool(config.KeepAliveFlag.Name) {
		req = balances.KeepAlive
	}
	return withNode(ctx, func(n *node.Node) error {
		if err := n.Ledger().Transfer(from, to, amount, req); err != nil {
			return err
		}
		okf("Transferred %d from %s to %s\n", amount, from.Hex(), to.Hex())
		return nil
	})
}

func mint(ctx *cli.Context) error {
	who, amount, err := parseAccountAmount(ctx)
	if err != nil {
		return err
	}
	return withNode(ctx, func(n *node.Node) error {
		minted, err := n.Ledger().Fungible().MintInto(who, amount)
		if err != nil {
			return err
		}
		okf("Minted %d into %s\n", minted, who.Hex())
		return nil
	})
}

func burn(ctx *cli.Context) error {
	who, amount, err := parseAccountAmount(ctx)
	if err != nil {
		return err
	}
	precision := balances.Exact
	if ctx.Bool(config.BestEffortFlag.Name) {
		precision = balances.BestEffort
	}
	return withNode(ctx, func(n *node.Node) error {
		burned, err := n.Ledger().Fungible().BurnFrom(who, amount, precision, balances.Polite)
		if err != nil {
			return err
		}
		if burned < amount {
			warnf("Burned %d of %d from %s\n", burned, amount, who.Hex())
			return nil
		}
		okf("Burned %d from %s\n", burned, who.Hex())
		return nil
	})
}

func slash(ctx *cli.Context) error {
	who, amount, err := parseAccountAmount(ctx)
	if err != nil {
		return err
	}
	return withNode(ctx, func(n *node.Node) error {
		slashed, remaining := n.Ledger().Slash(who, amount)
		taken := slashed.Peek()
		slashed.Settle()
		if remaining > 0 {
			warnf("Slashed %d from %s, %d could not be taken\n", taken, who.Hex(), remaining)
			return nil
		}
		okf("Slashed %d from %s\n", taken, who.Hex())
		return nil
	})
}

func reserve(ctx *cli.Context) error {
	who, amount, err := parseAccountAmount(ctx)
	if err != nil {
		return err
	}
	return withNode(ctx, func(n *node.Node) error {
		if err := n.Ledger().Reserve(who, amount); err != nil {
			return err
		}
		okf("Reserved %d on %s\n", amount, who.Hex())
		return nil
	})
}

func unreserve(ctx *cli.Context) error {
	who, amount, err := parseAccountAmount(ctx)
	if err != nil {
		return err
	}
	return withNode(ctx, func(n *node.Node) error {
		left := n.Ledger().Unreserve(who, amount)
		if left > 0 {
			warnf("Unreserved %d on %s, %d was not reserved\n", amount-left, who.Hex(), left)
			return nil
		}
		okf("Unreserved %d on %s\n", amount, who.Hex())
		return nil
	})
}

func freeze(ctx *cli.Context) error {
	who, err := parseAccountArg(ctx, 0)
	if err != nil {
		return err
	}
	reasons, err := parseReasons(ctx.String(reasonsFlag.Name))
	if err != nil {
		return err
	}
	if ctx.Bool(thawFlag.Name) {
		return withNode(ctx, func(n *node.Node) error {
			if err := n.Ledger().Thaw(who, reasons); err != nil {
				return err
			}
			okf("Thawed %s floor of %s\n", reasons, who.Hex())
			return nil
		})
	}
	amount, err := parseAmountArg(ctx, 1)
	if err != nil {
		return err
	}
	return withNode(ctx, func(n *node.Node) error {
		if err := n.Ledger().Freeze(who, reasons, amount); err != nil {
			return err
		}
		okf("Froze %d (%s) on %s\n", amount, reasons, who.Hex())
		return nil
	})
}
