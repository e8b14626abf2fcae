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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeeco/ledger/account"
	"github.com/yeeco/ledger/common"
	"github.com/yeeco/ledger/config"
	"github.com/yeeco/ledger/node"
)

var (
	alice = common.BytesToAccountID([]byte{1})
	bob   = common.BytesToAccountID([]byte{2})
)

func setup(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "ledger-cmd")
	require.NoError(t, err)
	conf := fmt.Sprintf(`
[app]
log_level = "warn"

[storage]
data_dir = %q

[ledger]
existential_deposit = 10

[[genesis]]
account = %q
free = 1000

[[genesis]]
account = %q
free = 500
`, filepath.Join(dir, "data"), alice.Hex(), bob.Hex())
	path := filepath.Join(dir, "ledger.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(conf), 0600))
	return path, func() { os.RemoveAll(dir) }
}

func run(path string, args ...string) error {
	return app.Run(append([]string{"ledger", "--config", path}, args...))
}

func inspect(t *testing.T, path string, fn func(n *node.Node)) {
	conf, err := config.Load(path)
	require.NoError(t, err)
	n, err := node.NewNode(conf)
	require.NoError(t, err)
	require.NoError(t, n.Start())
	defer n.Stop()
	fn(n)
}

func TestCommands(t *testing.T) {
	path, cleanup := setup(t)
	defer cleanup()

	require.NoError(t, run(path, "init"))
	require.NoError(t, run(path, "transfer", "--keep-alive", alice.Hex(), bob.Hex(), "300"))
	require.NoError(t, run(path, "reserve", bob.Hex(), "100"))
	require.NoError(t, run(path, "slash", alice.Hex(), "50"))
	require.NoError(t, run(path, "mint", alice.Hex(), "25"))
	require.NoError(t, run(path, "burn", "--best-effort", bob.Hex(), "1000"))
	require.NoError(t, run(path, "balance", alice.Hex()))

	inspect(t, path, func(n *node.Node) {
		l := n.Ledger()
		assert.EqualValues(t, 675, l.FreeBalance(alice))
		assert.EqualValues(t, 0, l.FreeBalance(bob))
		assert.EqualValues(t, 100, l.ReservedBalance(bob))
		assert.EqualValues(t, 775, l.TotalIssuance())
	})
}

func TestFailedCommandIsNotCommitted(t *testing.T) {
	path, cleanup := setup(t)
	defer cleanup()

	assert.Error(t, run(path, "transfer", "--keep-alive", alice.Hex(), bob.Hex(), "995"))
	assert.Error(t, run(path, "transfer", alice.Hex(), bob.Hex(), "not-a-number"))
	assert.Error(t, run(path, "balance"))

	inspect(t, path, func(n *node.Node) {
		assert.EqualValues(t, 1000, n.Ledger().FreeBalance(alice))
		assert.EqualValues(t, 1500, n.Ledger().TotalIssuance())
	})
}

func TestAccountCommands(t *testing.T) {
	path, cleanup := setup(t)
	defer cleanup()
	carol := common.BytesToAccountID([]byte{3})

	require.NoError(t, run(path, "account", "create", carol.Hex()))
	require.NoError(t, run(path, "account", "info", carol.Hex()))
	require.NoError(t, run(path, "freeze", "--reasons", "misc", alice.Hex(), "400"))
	assert.Error(t, run(path, "transfer", alice.Hex(), bob.Hex(), "700"))
	require.NoError(t, run(path, "freeze", "--thaw", alice.Hex()))
	require.NoError(t, run(path, "transfer", alice.Hex(), bob.Hex(), "700"))

	inspect(t, path, func(n *node.Node) {
		assert.True(t, n.System().AccountExists(carol))
		assert.Equal(t, account.Data{}, n.Ledger().Account(carol))
		assert.EqualValues(t, 300, n.Ledger().FreeBalance(alice))
	})

	require.NoError(t, run(path, "account", "remove", carol.Hex()))
	assert.Error(t, run(path, "account", "remove", carol.Hex()))
	inspect(t, path, func(n *node.Node) {
		assert.False(t, n.System().AccountExists(carol))
	})
}

func TestParseReasons(t *testing.T) {
	r, err := parseReasons("fee")
	require.NoError(t, err)
	assert.Equal(t, account.Fee, r)
	_, err = parseReasons("rent")
	assert.Error(t, err)
}
