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
	"github.com/yeeco/ledger/state"
)

const (
	KeyTotalIssuance    = "TotalIssuance"
	KeyInactiveIssuance = "InactiveIssuance"
)

// AccountStore holds the balance payload of each account and decides whether
// a record exists after a mutation.
type AccountStore interface {
	Get(who common.AccountID) account.Data
	TryMutateExists(who common.AccountID, f func(data *account.Data, exists bool) (bool, error)) error
}

// Ledger keeps balances and total issuance. It is not safe for concurrent use.
type Ledger struct {
	state   state.Store
	store   AccountStore
	journal *event.Journal
	config  Config
	metrics *ledgerMetrics

	// tokens handed out and not consumed yet
	outstanding int64
}

func New(st state.Store, store AccountStore, journal *event.Journal, config Config) (*Ledger, error) {
	if config.ExistentialDeposit == 0 {
		return nil, ErrInvalidExistentialDeposit
	}
	if config.DustRemoval == nil {
		config.DustRemoval = BurnDust{}
	}
	if journal == nil {
		journal = event.NewJournal(nil)
	}
	return &Ledger{
		state:   st,
		store:   store,
		journal: journal,
		config:  config,
		metrics: newLedgerMetrics(),
	}, nil
}

// SetDustRemoval replaces the dust sink; nil burns dust.
func (l *Ledger) SetDustRemoval(sink OnUnbalanced) {
	if sink == nil {
		sink = BurnDust{}
	}
	l.config.DustRemoval = sink
}

// OutstandingImbalances is the number of tokens created and not yet consumed.
func (l *Ledger) OutstandingImbalances() int64 {
	return l.outstanding
}

func (l *Ledger) PrintMetrics() {
	l.metrics.printMetrics()
}

// transactional runs fn so that either all of its writes and notifications
// take effect or none do.
func (l *Ledger) transactional(fn func() error) error {
	snap := l.state.Snapshot()
	mark := l.journal.Begin()
	if err := fn(); err != nil {
		l.state.RevertToSnapshot(snap)
		l.journal.Rollback(mark)
		l.metrics.mutationFail.Mark(1)
		return err
	}
	l.journal.Commit()
	return nil
}

func (l *Ledger) MinimumBalance() account.Balance {
	return l.config.ExistentialDeposit
}

func (l *Ledger) TotalIssuance() account.Balance {
	return l.state.GetValue(KeyTotalIssuance)
}

func (l *Ledger) InactiveIssuance() account.Balance {
	return l.state.GetValue(KeyInactiveIssuance)
}

// ActiveIssuance is the issuance that is not deactivated.
func (l *Ledger) ActiveIssuance() account.Balance {
	return account.SaturatingSub(l.TotalIssuance(), l.InactiveIssuance())
}

// setTotalIssuance also lowers inactive issuance so that it never exceeds
// the total.
func (l *Ledger) setTotalIssuance(amount account.Balance) {
	l.state.SetValue(KeyTotalIssuance, amount)
	if inactive := l.InactiveIssuance(); inactive > amount {
		log.Warn("inactive issuance clamped to total", "inactive", inactive, "total", amount)
		l.state.SetValue(KeyInactiveIssuance, amount)
	}
}

// SetTotalIssuance overwrites total issuance without touching any account.
func (l *Ledger) SetTotalIssuance(amount account.Balance) {
	l.setTotalIssuance(amount)
}

// Deactivate moves amount of the issuance out of the active set, up to the
// total issuance.
func (l *Ledger) Deactivate(amount account.Balance) {
	inactive := account.Min(account.SaturatingAdd(l.InactiveIssuance(), amount), l.TotalIssuance())
	l.state.SetValue(KeyInactiveIssuance, inactive)
}

// Reactivate returns amount to the active set.
func (l *Ledger) Reactivate(amount account.Balance) {
	l.state.SetValue(KeyInactiveIssuance, account.SaturatingSub(l.InactiveIssuance(), amount))
}

// Account is the balance payload of who, zero if absent.
func (l *Ledger) Account(who common.AccountID) account.Data {
	return l.store.Get(who)
}

func (l *Ledger) TotalBalance(who common.AccountID) account.Balance {
	data := l.store.Get(who)
	return data.Total()
}

func (l *Ledger) FreeBalance(who common.AccountID) account.Balance {
	return l.store.Get(who).Free
}

func (l *Ledger) ReservedBalance(who common.AccountID) account.Balance {
	return l.store.Get(who).Reserved
}

// CanSlash reports whether value could be slashed from free balance alone.
func (l *Ledger) CanSlash(who common.AccountID, value account.Balance) bool {
	if value == 0 {
		return true
	}
	return l.FreeBalance(who) >= value
}

// EnsureCanWithdraw fails with ErrLiquidityRestrictions if taking amount from
// who, leaving newFree, would break the frozen floor for reasons.
func (l *Ledger) EnsureCanWithdraw(who common.AccountID, amount account.Balance, reasons account.WithdrawReasons, newFree account.Balance) error {
	data := l.store.Get(who)
	return l.ensureCanWithdraw(&data, amount, reasons, newFree)
}

func (l *Ledger) ensureCanWithdraw(data *account.Data, amount account.Balance, reasons account.WithdrawReasons, newFree account.Balance) error {
	if amount == 0 || !l.config.FrozenFunds {
		return nil
	}
	if min := data.Frozen(reasons.Reasons()); newFree < min {
		log.Debug("withdrawal below frozen floor", "newFree", newFree, "frozen", min, "reasons", reasons.Reasons())
		return ErrLiquidityRestrictions
	}
	return nil
}
