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
	"github.com/pkg/errors"
	"github.com/yeeco/ledger/account"
	"github.com/yeeco/ledger/common"
	"github.com/yeeco/ledger/log"
)

type GenesisAccount struct {
	Account  common.AccountID
	Free     account.Balance
	Reserved account.Balance
}

// BuildGenesis endows accounts and adds their balances to total issuance.
func (l *Ledger) BuildGenesis(accounts []GenesisAccount) error {
	ed := l.config.ExistentialDeposit
	return l.transactional(func() error {
		issuance := l.TotalIssuance()
		for _, ga := range accounts {
			total, ok := account.CheckedAdd(ga.Free, ga.Reserved)
			if !ok {
				return errors.Wrapf(ErrOverflow, "genesis account %s", ga.Account)
			}
			if total < ed {
				return errors.Wrapf(ErrExistentialDeposit, "genesis account %s", ga.Account)
			}
			if issuance, ok = account.CheckedAdd(issuance, total); !ok {
				return errors.Wrap(ErrOverflow, "genesis issuance")
			}
			err := l.tryMutateAccount(ga.Account, func(acc *account.Data, _ bool) error {
				var ok bool
				if acc.Free, ok = account.CheckedAdd(acc.Free, ga.Free); !ok {
					return ErrOverflow
				}
				if acc.Reserved, ok = account.CheckedAdd(acc.Reserved, ga.Reserved); !ok {
					return ErrOverflow
				}
				return nil
			})
			if err != nil {
				return errors.Wrapf(err, "genesis account %s", ga.Account)
			}
		}
		l.setTotalIssuance(issuance)
		log.Info("genesis built", "accounts", len(accounts), "issuance", issuance)
		return nil
	})
}
