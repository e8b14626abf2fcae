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
	"github.com/yeeco/ledger/common"
)

type journalEntry interface {
	revert(db *StateDB)
}

type (
	accountChange struct {
		id      common.AccountID
		prev    *accountObj
		hadPrev bool
	}
	valueChange struct {
		key     string
		prev    uint64
		hadPrev bool
	}
)

func (ch accountChange) revert(db *StateDB) {
	if ch.hadPrev {
		db.dirty[ch.id] = ch.prev
	} else {
		delete(db.dirty, ch.id)
	}
}

func (ch valueChange) revert(db *StateDB) {
	if ch.hadPrev {
		db.values[ch.key] = ch.prev
	} else {
		delete(db.values, ch.key)
	}
}
