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

package balances

import (
	"github.com/yeeco/ledger/account"
	"github.com/yeeco/ledger/common"
	"github.com/yeeco/ledger/event"
	"github.com/yeeco/ledger/log"
)

// DustCleaner holds the residue of an account that fell below the existential
// deposit. Finish hands it to the dust sink; call it once every mutation that
// the sink could interfere with has been applied. A nil cleaner has no dust.
type DustCleaner struct {
	who    common.AccountID
	amount account.Balance
	ledger *Ledger
	done   bool
}

func (d *DustCleaner) Amount() account.Balance {
	if d == nil {
		return 0
	}
	return d.amount
}

func (d *DustCleaner) Finish() {
	if d == nil || d.done {
		return
	}
	d.done = true
	d.ledger.HandleDust(d.who, d.amount)
}

// HandleDust reports amount as lost by who and passes it to the dust sink.
func (l *Ledger) HandleDust(who common.AccountID, amount account.Balance) {
	if amount == 0 {
		return
	}
	markAmount(l.metrics.dust, amount)
	l.journal.Emit(event.DustLost{Account: who, Amount: amount})
	l.config.DustRemoval.OnUnbalanced(l.newNegative(amount))
}

// tryMutateAccountWithDust applies f to a copy of the balance of who and
// writes it back only if f succeeds. A result with total below the existential
// deposit removes the record; any non-zero residue comes back as a cleaner
// the caller must finish.
func (l *Ledger) tryMutateAccountWithDust(who common.AccountID, f func(acc *account.Data, isNew bool) error) (*DustCleaner, error) {
	var (
		dust    account.Balance
		endowed bool
		free    account.Balance
	)
	ed := l.config.ExistentialDeposit
	err := l.store.TryMutateExists(who, func(data *account.Data, exists bool) (bool, error) {
		isNew := !exists
		acc := *data
		if err := f(&acc, isNew); err != nil {
			return false, err
		}
		total := acc.Total()
		if total >= ed {
			*data = acc
			endowed, free = isNew, acc.Free
			return true, nil
		}
		dust = total
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	if endowed {
		log.Debug("account endowed", "who", who, "free", free)
		l.journal.Emit(event.Endowed{Account: who, FreeBalance: free})
	}
	if dust > 0 {
		log.Debug("account reduced to dust", "who", who, "dust", dust)
		return &DustCleaner{who: who, amount: dust, ledger: l}, nil
	}
	return nil, nil
}

// tryMutateAccount is tryMutateAccountWithDust with dust handled immediately.
func (l *Ledger) tryMutateAccount(who common.AccountID, f func(acc *account.Data, isNew bool) error) error {
	dust, err := l.tryMutateAccountWithDust(who, f)
	if err != nil {
		return err
	}
	dust.Finish()
	return nil
}
