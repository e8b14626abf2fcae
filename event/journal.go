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

package event

// Journal defers notifications and callbacks raised inside a transaction
// until the outermost transaction commits; a rollback discards those raised
// since its Begin.
type Journal struct {
	out     Emitter
	pending []func()
	depth   int
}

func NewJournal(out Emitter) *Journal {
	return &Journal{out: out}
}

func (j *Journal) Emit(ev Event) {
	j.Defer(func() {
		if j.out != nil {
			j.out.Emit(ev)
		}
	})
}

// Defer runs fn now outside a transaction, else on outermost commit.
func (j *Journal) Defer(fn func()) {
	if j.depth == 0 {
		fn()
		return
	}
	j.pending = append(j.pending, fn)
}

// Begin opens a (possibly nested) transaction and returns its mark.
func (j *Journal) Begin() int {
	j.depth++
	return len(j.pending)
}

func (j *Journal) Commit() {
	if j.depth == 0 {
		return
	}
	j.depth--
	if j.depth == 0 {
		j.flush()
	}
}

func (j *Journal) Rollback(mark int) {
	if j.depth == 0 {
		return
	}
	if mark >= 0 && mark <= len(j.pending) {
		j.pending = j.pending[:mark]
	}
	j.depth--
	if j.depth == 0 {
		j.flush()
	}
}

func (j *Journal) flush() {
	pending := j.pending
	j.pending = nil
	for _, fn := range pending {
		fn()
	}
}
