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

// table namespaces a Storage: every key is stored under prefix. Closing a
// table leaves the underlying storage open.
type table struct {
	storage Storage
	prefix  []byte
}

// NewTable returns a wrapped storage, which prefixes all keys
func NewTable(storage Storage, prefix string) Storage {
	return &table{
		storage: storage,
		prefix:  []byte(prefix),
	}
}

func prefixed(prefix, key []byte) []byte {
	full := make([]byte, len(prefix)+len(key))
	copy(full, prefix)
	copy(full[len(prefix):], key)
	return full
}

func (t *table) Get(key []byte) ([]byte, error) {
	return t.storage.Get(prefixed(t.prefix, key))
}

func (t *table) Has(key []byte) (bool, error) {
	return t.storage.Has(prefixed(t.prefix, key))
}

func (t *table) Put(key []byte, value []byte) error {
	return t.storage.Put(prefixed(t.prefix, key), value)
}

func (t *table) Del(key []byte) error {
	return t.storage.Del(prefixed(t.prefix, key))
}

// ForEach visits the keys of this table under prefix, with the table prefix
// stripped.
func (t *table) ForEach(prefix []byte, fn func(key, value []byte) bool) error {
	n := len(t.prefix)
	return t.storage.ForEach(prefixed(t.prefix, prefix), func(key, value []byte) bool {
		return fn(key[n:], value)
	})
}

func (t *table) Close() error {
	return nil
}

func (t *table) NewBatch() Batch {
	return &tableBatch{
		Batch:  t.storage.NewBatch(),
		prefix: t.prefix,
	}
}

// tableBatch prefixes writes; size, flush and reset go to the wrapped batch.
type tableBatch struct {
	Batch
	prefix []byte
}

func (tb *tableBatch) Put(key []byte, value []byte) error {
	return tb.Batch.Put(prefixed(tb.prefix, key), value)
}

func (tb *tableBatch) Del(key []byte) error {
	return tb.Batch.Del(prefixed(tb.prefix, key))
}
