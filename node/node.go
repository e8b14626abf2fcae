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

/*
   Node owns everything a ledger process needs:
1. datadir is locked with a LOCK file so only one process opens it
2. the state lives in leveldb under datadir/ledgerdata
3. on the first start the genesis accounts are endowed and committed
4. ledger events go through one bus; callers subscribe to it
*/

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/yeeco/ledger/balances"
	"github.com/yeeco/ledger/common"
	"github.com/yeeco/ledger/config"
	"github.com/yeeco/ledger/event"
	"github.com/yeeco/ledger/log"
	"github.com/yeeco/ledger/persistent"
	"github.com/yeeco/ledger/state"
	"github.com/yeeco/ledger/system"
	"github.com/yeeco/ledger/utils"
	"github.com/yeeco/ledger/utils/fdlimit"
	"github.com/yeeco/ledger/utils/logging"
)

const (
	keyGenesis = "GenesisBuilt"

	// leveldb keeps up to 500 table files open
	storageHandles = 512
)

var ErrNotStarted = errors.New("node: not started")

type Node struct {
	config *config.Config

	storage persistent.Storage
	state   *state.StateDB
	bus     *event.Bus
	journal *event.Journal
	system  *system.System
	ledger  *balances.Ledger

	lock     sync.RWMutex
	filelock *flock.Flock
	started  bool
}

func NewNode(conf *config.Config) (*Node, error) {
	log.Info("Create new node")
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if conf.Storage.DataDir != "" {
		absdatadir, err := filepath.Abs(conf.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		conf.Storage.DataDir = absdatadir
	}
	if err := os.MkdirAll(conf.Storage.DataDir, 0755); err != nil {
		return nil, err
	}

	return &Node{
		config:   conf,
		filelock: flock.New(filepath.Join(conf.Storage.DataDir, "LOCK")),
	}, nil
}

func (n *Node) Start() (err error) {
	n.lock.Lock()
	defer n.lock.Unlock()
	log.Info("Node Start...")

	if err = n.setupLogging(); err != nil {
		return err
	}
	if err = n.lockDataDir(); err != nil {
		log.Error("node: lockDataDir()", "err", err)
		return err
	}
	defer func() {
		if err != nil {
			n.close()
		}
	}()

	if _, err := fdlimit.Ensure(storageHandles); err != nil {
		log.Warn("node: file descriptor limit", "err", err)
	}
	storage, err := persistent.NewLevelStorage(filepath.Join(n.config.Storage.DataDir, "ledgerdata"))
	if err != nil {
		return err
	}
	n.storage = storage
	if n.state, err = state.New(n.storage, n.config.Storage.CacheSize); err != nil {
		return err
	}

	n.bus = event.NewBus()
	if err = n.bus.SubscribeAll(func(ev event.Event) {
		log.Debug("ledger event", "topic", ev.Topic(), "event", ev)
	}); err != nil {
		return err
	}
	n.journal = event.NewJournal(n.bus)

	sysConf, err := n.config.SystemConfig()
	if err != nil {
		return err
	}
	sysConf.OnNewAccount, sysConf.OnKilledAccount = n, n
	n.system = system.New(n.state, n.journal, sysConf)

	balConf, err := n.config.BalancesConfig()
	if err != nil {
		return err
	}
	if n.ledger, err = balances.New(n.state, n.system, n.journal, balConf); err != nil {
		return err
	}

	if err = n.buildGenesis(); err != nil {
		return err
	}
	n.started = true
	log.Info("Node Started", "datadir", n.config.Storage.DataDir, "issuance", n.ledger.TotalIssuance())
	return nil
}

func (n *Node) buildGenesis() error {
	if n.state.GetValue(keyGenesis) != 0 {
		return nil
	}
	accounts, err := n.config.GenesisAccounts()
	if err != nil {
		return err
	}
	if err := n.ledger.BuildGenesis(accounts); err != nil {
		return err
	}
	n.state.SetValue(keyGenesis, 1)
	log.Info("Genesis built", "accounts", len(accounts))
	return n.state.Commit()
}

func (n *Node) setupLogging() error {
	if err := logging.SetLevel(n.config.App.LogLevel); err != nil {
		return err
	}
	if dir := n.config.LogDir(); dir != "" {
		return logging.SetFileRotationHooker(dir, n.config.App.LogRotation)
	}
	return nil
}

// Commit persists every change made since the last commit.
func (n *Node) Commit() error {
	n.lock.RLock()
	defer n.lock.RUnlock()
	if !n.started {
		return ErrNotStarted
	}
	return n.state.Commit()
}

// Stop drops uncommitted changes and releases the data dir.
func (n *Node) Stop() error {
	n.lock.Lock()
	defer n.lock.Unlock()
	log.Info("Node Stop...")
	if !n.started {
		return ErrNotStarted
	}
	n.ledger.PrintMetrics()
	log.Info("Memory usage", utils.MemUsage()...)
	n.started = false
	return n.close()
}

func (n *Node) close() error {
	if n.storage != nil {
		if err := n.storage.Close(); err != nil {
			log.Error("node: storage.Close()", "err", err)
		}
		n.storage = nil
	}
	if err := n.unlockDataDir(); err != nil {
		log.Error("node: unlockDataDir()", "err", err)
		return err
	}
	return nil
}

func (n *Node) lockDataDir() error {
	locked, err := n.filelock.TryLock()
	if err != nil {
		return err
	}
	if !locked {
		return errors.New("node: failed to acquire node file lock")
	}
	return nil
}

func (n *Node) unlockDataDir() error {
	if n.filelock != nil {
		if err := n.filelock.Unlock(); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) OnNewAccount(who common.AccountID) {
	log.Info("Account created", "who", who)
}

func (n *Node) OnKilledAccount(who common.AccountID) {
	log.Info("Account reaped", "who", who)
}

func (n *Node) Config() *config.Config {
	return n.config
}

func (n *Node) Ledger() *balances.Ledger {
	return n.ledger
}

func (n *Node) System() *system.System {
	return n.system
}

func (n *Node) Bus() *event.Bus {
	return n.bus
}

func (n *Node) State() *state.StateDB {
	return n.state
}
