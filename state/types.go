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
	"github.com/yeeco/ledger/account"
	"github.com/yeeco/ledger/common"
)

// interface for the account record store
// 1. cache committed account records in memory
// 2. cache created / updated / deleted records until Commit
// 3. journal every change so nested operations can be reverted
// NO CONCURRENCY is allowed
type Store interface {
	// whether a record exists for the account
	Exists(id common.AccountID) bool

	// account record, zero value and false if absent
	GetAccount(id common.AccountID) (account.Info, bool)

	SetAccount(id common.AccountID, info account.Info)

	DeleteAccount(id common.AccountID)

	// named counter, zero if never written
	GetValue(key string) uint64

	SetValue(key string, value uint64)

	// journal position to revert to
	Snapshot() int

	RevertToSnapshot(id int)

	// write pending changes to backing storage
	Commit() error
}
