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

package persistent

import (
	"bytes"
	"encoding/hex"
	"sort"
	"sync"
)

type MemoryStorage struct {
	data *sync.Map
}

type kv struct {
	k, v []byte
	del  bool
}

type MemoryBatch struct {
	db      *MemoryStorage
	entries []*kv
	size    int
}

func NewMemoryStorage() (*MemoryStorage, error) {
	return &MemoryStorage{
		data: new(sync.Map),
	}, nil
}

func (db *MemoryStorage) Has(key []byte) (bool, error) {
	_, ok := db.data.Load(hex.EncodeToString(key))
	return ok, nil
}

func (db *MemoryStorage) Get(key []byte) ([]byte, error) {
	if entry, ok := db.data.Load(hex.EncodeToString(key)); ok {
		return copyBytes(entry.([]byte)), nil
	}
	return nil, ErrKeyNotFound
}

func (db *MemoryStorage) Put(key []byte, value []byte) error {
	db.data.Store(hex.EncodeToString(key), copyBytes(value))
	return nil
}

func (db *MemoryStorage) Del(key []byte) error {
	db.data.Delete(hex.EncodeToString(key))
	return nil
}

func (db *MemoryStorage) ForEach(prefix []byte, fn func(key, value []byte) bool) error {
	var keys [][]byte
	db.data.Range(func(k, _ interface{}) bool {
		key, err := hex.DecodeString(k.(string))
		if err == nil && bytes.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return true
	})
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 })
	for _, key := range keys {
		value, err := db.Get(key)
		if err != nil {
			// deleted concurrently
			continue
		}
		if !fn(key, value) {
			break
		}
	}
	return nil
}

func (db *MemoryStorage) Close() error {
	return nil
}

func (db *MemoryStorage) NewBatch() Batch {
	return &MemoryBatch{db: db}
}

func (b *MemoryBatch) Put(key, value []byte) error {
	b.entries = append(b.entries, &kv{k: copyBytes(key), v: copyBytes(value)})
	b.size += len(value)
	return nil
}

func (b *MemoryBatch) Del(key []byte) error {
	b.entries = append(b.entries, &kv{k: copyBytes(key), del: true})
	b.size += 1
	return nil
}

func (b *MemoryBatch) ValueSize() int {
	return b.size
}

func (b *MemoryBatch) Write() error {
	for _, e := range b.entries {
		if e.del {
			b.db.Del(e.k)
			continue
		}
		b.db.Put(e.k, e.v)
	}
	return nil
}

func (b *MemoryBatch) Reset() {
	b.entries = b.entries[:0]
	b.size = 0
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
