// Copyright (C) 2019 gyee authors
//
// This file is part of the gyee library.
//
// The gyee library is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The gyee library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with the gyee library.  If not, see <http://www.gnu.org/licenses/>.

package state

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/yeeco/ledger/account"
	"github.com/yeeco/ledger/common"
	"github.com/yeeco/ledger/log"
	"github.com/yeeco/ledger/persistent"
)

// Key prefixes used in persistent.Storage
const (
	KeyPrefixAccount = "acct-" // accountID => encoded account.Info
	KeyPrefixValue   = "val-"  // name => big endian uint64

	DefaultCacheSize = 1024
)

type accountObj struct {
	info    account.Info
	deleted bool
}

// StateDB implements Store on top of persistent.Storage.
type StateDB struct {
	storage  persistent.Storage
	accounts persistent.Storage
	valueDB  persistent.Storage

	// decoded committed records
	clean *lru.Cache

	// pending changes since last Commit
	dirty  map[common.AccountID]*accountObj
	values map[string]uint64

	journal []journalEntry
	dbErr   error
}

var _ Store = (*StateDB)(nil)

// New creates a StateDB over storage with an LRU of cacheSize decoded records.
func New(storage persistent.Storage, cacheSize int) (*StateDB, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "state: create cache")
	}
	return &StateDB{
		storage:  storage,
		accounts: persistent.NewTable(storage, KeyPrefixAccount),
		valueDB:  persistent.NewTable(storage, KeyPrefixValue),
		clean:    cache,
		dirty:    make(map[common.AccountID]*accountObj),
		values:   make(map[string]uint64),
	}, nil
}

// Error returns the first storage error met while loading records.
func (db *StateDB) Error() error {
	return db.dbErr
}

func (db *StateDB) setError(err error) {
	if db.dbErr == nil {
		db.dbErr = err
	}
}

func (db *StateDB) Exists(id common.AccountID) bool {
	_, ok := db.GetAccount(id)
	return ok
}

func (db *StateDB) GetAccount(id common.AccountID) (account.Info, bool) {
	if obj, ok := db.dirty[id]; ok {
		if obj.deleted {
			return account.Info{}, false
		}
		return obj.info, true
	}
	if cached, ok := db.clean.Get(id); ok {
		return cached.(account.Info), true
	}

	enc, err := db.accounts.Get(id[:])
	if err != nil {
		if err != persistent.ErrKeyNotFound {
			log.Error("failed to load account", "id", id, "err", err)
			db.setError(errors.Wrapf(err, "state: load account %s", id))
		}
		return account.Info{}, false
	}
	var info account.Info
	if err := info.FromBytes(enc); err != nil {
		log.Error("failed to decode account", "id", id, "err", err)
		db.setError(errors.Wrapf(err, "state: decode account %s", id))
		return account.Info{}, false
	}
	db.clean.Add(id, info)
	return info, true
}

func (db *StateDB) SetAccount(id common.AccountID, info account.Info) {
	db.journalAccount(id)
	db.dirty[id] = &accountObj{info: info}
}

func (db *StateDB) DeleteAccount(id common.AccountID) {
	db.journalAccount(id)
	db.dirty[id] = &accountObj{deleted: true}
}

func (db *StateDB) journalAccount(id common.AccountID) {
	prev, ok := db.dirty[id]
	db.journal = append(db.journal, accountChange{id: id, prev: prev, hadPrev: ok})
}

func (db *StateDB) GetValue(key string) uint64 {
	if v, ok := db.values[key]; ok {
		return v
	}
	enc, err := db.valueDB.Get([]byte(key))
	if err != nil {
		if err != persistent.ErrKeyNotFound {
			db.setError(errors.Wrapf(err, "state: load value %s", key))
		}
		return 0
	}
	if len(enc) != 8 {
		db.setError(errors.Errorf("state: value %s has %d bytes", key, len(enc)))
		return 0
	}
	return binary.BigEndian.Uint64(enc)
}

func (db *StateDB) SetValue(key string, value uint64) {
	prev, ok := db.values[key]
	db.journal = append(db.journal, valueChange{key: key, prev: prev, hadPrev: ok})
	db.values[key] = value
}

func (db *StateDB) Snapshot() int {
	return len(db.journal)
}

func (db *StateDB) RevertToSnapshot(id int) {
	if id < 0 || id > len(db.journal) {
		log.Error("invalid state snapshot", "id", id, "journal", len(db.journal))
		return
	}
	for i := len(db.journal) - 1; i >= id; i-- {
		db.journal[i].revert(db)
	}
	db.journal = db.journal[:id]
}

// Commit flushes pending records and values in a single batch.
func (db *StateDB) Commit() error {
	if db.dbErr != nil {
		return db.dbErr
	}
	batch := db.storage.NewBatch()
	for id, obj := range db.dirty {
		key := append([]byte(KeyPrefixAccount), id[:]...)
		if obj.deleted {
			if err := batch.Del(key); err != nil {
				return errors.Wrapf(err, "state: delete account %s", id)
			}
			continue
		}
		enc, err := obj.info.ToBytes()
		if err != nil {
			return errors.Wrapf(err, "state: encode account %s", id)
		}
		if err := batch.Put(key, enc); err != nil {
			return errors.Wrapf(err, "state: put account %s", id)
		}
	}
	for key, v := range db.values {
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, v)
		if err := batch.Put(append([]byte(KeyPrefixValue), key...), buf); err != nil {
			return errors.Wrapf(err, "state: put value %s", key)
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "state: write batch")
	}

	for id, obj := range db.dirty {
		if obj.deleted {
			db.clean.Remove(id)
		} else {
			db.clean.Add(id, obj.info)
		}
	}
	log.Debug("state committed", "accounts", len(db.dirty), "values", len(db.values))
	db.dirty = make(map[common.AccountID]*accountObj)
	db.values = make(map[string]uint64)
	db.journal = db.journal[:0]
	return nil
}

// ForEachAccount visits every live record, pending changes included, in
// ascending id order.
func (db *StateDB) ForEachAccount(fn func(id common.AccountID, info account.Info) bool) error {
	merged := make(map[common.AccountID]account.Info)
	err := db.accounts.ForEach(nil, func(key, value []byte) bool {
		if len(key) != common.AccountIDLength {
			return true
		}
		var info account.Info
		if err := info.FromBytes(value); err != nil {
			db.setError(errors.Wrapf(err, "state: decode account %x", key))
			return true
		}
		merged[common.BytesToAccountID(key)] = info
		return true
	})
	if err != nil {
		return errors.Wrap(err, "state: iterate accounts")
	}
	for id, obj := range db.dirty {
		if obj.deleted {
			delete(merged, id)
		} else {
			merged[id] = obj.info
		}
	}

	ids := make([]common.AccountID, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
	for _, id := range ids {
		if !fn(id, merged[id]) {
			break
		}
	}
	return nil
}
