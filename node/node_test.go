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

package node

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeeco/ledger/balances"
	"github.com/yeeco/ledger/common"
	"github.com/yeeco/ledger/config"
	"github.com/yeeco/ledger/event"
)

var (
	alice = common.BytesToAccountID([]byte{1})
	bob   = common.BytesToAccountID([]byte{2})
)

func testConfig(t *testing.T) (*config.Config, func()) {
	dir, err := ioutil.TempDir("", "ledger-node")
	require.NoError(t, err)
	conf := config.Default()
	conf.App.LogLevel = "warn"
	conf.Storage.DataDir = dir
	conf.Ledger.ExistentialDeposit = 10
	conf.Genesis = []*config.GenesisConfig{
		{Account: alice.Hex(), Free: 1000},
		{Account: bob.Hex(), Free: 500, Reserved: 50},
	}
	return conf, func() { os.RemoveAll(dir) }
}

func startNode(t *testing.T, conf *config.Config) *Node {
	n, err := NewNode(conf)
	require.NoError(t, err)
	require.NoError(t, n.Start())
	return n
}

func TestNodeGenesis(t *testing.T) {
	conf, cleanup := testConfig(t)
	defer cleanup()

	n := startNode(t, conf)
	defer n.Stop()

	l := n.Ledger()
	assert.EqualValues(t, 1550, l.TotalIssuance())
	assert.EqualValues(t, 1000, l.FreeBalance(alice))
	assert.EqualValues(t, 50, l.ReservedBalance(bob))
	assert.True(t, n.System().AccountExists(alice))
}

func TestNodeCommitAndRestart(t *testing.T) {
	conf, cleanup := testConfig(t)
	defer cleanup()

	n := startNode(t, conf)
	var transfers []event.Transfer
	require.NoError(t, n.Bus().Subscribe(event.TopicTransfer, func(ev event.Transfer) {
		transfers = append(transfers, ev)
	}))
	require.NoError(t, n.Ledger().Transfer(alice, bob, 300, balances.KeepAlive))
	require.Len(t, transfers, 1)
	require.NoError(t, n.Commit())

	// not committed, dropped on stop
	require.NoError(t, n.Ledger().Transfer(alice, bob, 100, balances.KeepAlive))
	require.NoError(t, n.Stop())

	n = startNode(t, conf)
	defer n.Stop()
	l := n.Ledger()
	assert.EqualValues(t, 700, l.FreeBalance(alice))
	assert.EqualValues(t, 800, l.FreeBalance(bob))
	// genesis is applied once
	assert.EqualValues(t, 1550, l.TotalIssuance())
}

func TestNodeDataDirLock(t *testing.T) {
	conf, cleanup := testConfig(t)
	defer cleanup()

	n := startNode(t, conf)

	other, err := NewNode(conf)
	require.NoError(t, err)
	assert.Error(t, other.Start())

	require.NoError(t, n.Stop())
	require.NoError(t, other.Start())
	require.NoError(t, other.Stop())
}

func TestNodeNotStarted(t *testing.T) {
	conf, cleanup := testConfig(t)
	defer cleanup()

	n, err := NewNode(conf)
	require.NoError(t, err)
	assert.Equal(t, ErrNotStarted, n.Commit())
	assert.Equal(t, ErrNotStarted, n.Stop())
}

func TestNodeRejectsBadGenesis(t *testing.T) {
	conf, cleanup := testConfig(t)
	defer cleanup()
	conf.Genesis = append(conf.Genesis, &config.GenesisConfig{
		Account: common.BytesToAccountID([]byte{3}).Hex(),
		Free:    1,
	})

	n, err := NewNode(conf)
	require.NoError(t, err)
	assert.Error(t, n.Start())
	// the lock is released after a failed start
	conf.Genesis = conf.Genesis[:2]
	n = startNode(t, conf)
	require.NoError(t, n.Stop())
}
