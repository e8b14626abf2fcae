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
	"fmt"

	"github.com/yeeco/ledger/account"
	"github.com/yeeco/ledger/common"
)

// Precision says whether an operation may act on less than the requested amount.
type Precision uint8

const (
	Exact Precision = iota
	BestEffort
)

// Preservation says whether an account may be reaped by a withdrawal.
type Preservation uint8

const (
	Expendable Preservation = iota
	Preserve
	Protect
)

// Fortitude says whether frozen floors are respected.
type Fortitude uint8

const (
	Polite Fortitude = iota
	Force
)

// Provenance tells whether deposited funds are new to the issuance.
type Provenance uint8

const (
	Minted Provenance = iota
	Extant
)

type DepositConsequence uint8

const (
	DepositSuccess DepositConsequence = iota
	DepositOverflow
	DepositBelowMinimum
)

func (c DepositConsequence) String() string {
	switch c {
	case DepositSuccess:
		return "Success"
	case DepositOverflow:
		return "Overflow"
	case DepositBelowMinimum:
		return "BelowMinimum"
	}
	return fmt.Sprintf("DepositConsequence(%d)", uint8(c))
}

// IntoResult turns a consequence into the error the deposit would fail with.
func (c DepositConsequence) IntoResult() error {
	switch c {
	case DepositOverflow:
		return ErrOverflow
	case DepositBelowMinimum:
		return ErrBelowMinimum
	}
	return nil
}

type WithdrawKind uint8

const (
	WithdrawSuccess WithdrawKind = iota
	// the account would be reaped; Remaining holds what is lost as dust
	WithdrawReducedToZero
	WithdrawNoFunds
	WithdrawUnderflow
	WithdrawFrozen
)

type WithdrawConsequence struct {
	Kind      WithdrawKind
	Remaining account.Balance
}

func (c WithdrawConsequence) String() string {
	switch c.Kind {
	case WithdrawSuccess:
		return "Success"
	case WithdrawReducedToZero:
		return fmt.Sprintf("ReducedToZero(%d)", c.Remaining)
	case WithdrawNoFunds:
		return "NoFunds"
	case WithdrawUnderflow:
		return "Underflow"
	case WithdrawFrozen:
		return "Frozen"
	}
	return fmt.Sprintf("WithdrawConsequence(%d)", uint8(c.Kind))
}

// IntoResult returns the dust a withdrawal would leave behind, or the error it
// would fail with. keepNonzero refuses withdrawals that reap the account.
func (c WithdrawConsequence) IntoResult(keepNonzero bool) (account.Balance, error) {
	switch c.Kind {
	case WithdrawNoFunds:
		return 0, ErrFundsUnavailable
	case WithdrawUnderflow:
		return 0, ErrUnderflow
	case WithdrawFrozen:
		return 0, ErrFrozen
	case WithdrawReducedToZero:
		if keepNonzero {
			return 0, ErrNotExpendable
		}
		return c.Remaining, nil
	}
	return 0, nil
}

// DepositConsequence predicts a deposit of amount into who without changing
// anything.
func (l *Ledger) DepositConsequence(who common.AccountID, amount account.Balance, provenance Provenance) DepositConsequence {
	if amount == 0 {
		return DepositSuccess
	}
	if provenance == Minted {
		if _, ok := account.CheckedAdd(l.TotalIssuance(), amount); !ok {
			return DepositOverflow
		}
	}
	data := l.store.Get(who)
	total, ok := account.CheckedAdd(data.Total(), amount)
	if !ok {
		return DepositOverflow
	}
	if total < l.config.ExistentialDeposit {
		return DepositBelowMinimum
	}
	return DepositSuccess
}

// WithdrawConsequence predicts a withdrawal of amount from the free balance
// of who without changing anything.
func (l *Ledger) WithdrawConsequence(who common.AccountID, amount account.Balance) WithdrawConsequence {
	if amount == 0 {
		return WithdrawConsequence{Kind: WithdrawSuccess}
	}
	if _, ok := account.CheckedSub(l.TotalIssuance(), amount); !ok {
		return WithdrawConsequence{Kind: WithdrawUnderflow}
	}
	data := l.store.Get(who)
	free, ok := account.CheckedSub(data.Free, amount)
	if !ok {
		return WithdrawConsequence{Kind: WithdrawNoFunds}
	}
	if l.config.FrozenFunds && free < data.Frozen(account.All) {
		return WithdrawConsequence{Kind: WithdrawFrozen}
	}
	if total := account.SaturatingAdd(free, data.Reserved); total < l.config.ExistentialDeposit {
		return WithdrawConsequence{Kind: WithdrawReducedToZero, Remaining: total}
	}
	return WithdrawConsequence{Kind: WithdrawSuccess}
}
