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

// Fungible is the policy-driven view of the ledger: operations take explicit
// precision, preservation and fortitude instead of reasons and liveness.
type Fungible struct {
	l *Ledger
}

func (l *Ledger) Fungible() Fungible {
	return Fungible{l: l}
}

func (f Fungible) TotalIssuance() account.Balance  { return f.l.TotalIssuance() }
func (f Fungible) ActiveIssuance() account.Balance { return f.l.ActiveIssuance() }
func (f Fungible) MinimumBalance() account.Balance { return f.l.MinimumBalance() }

func (f Fungible) SetTotalIssuance(amount account.Balance) { f.l.SetTotalIssuance(amount) }
func (f Fungible) Deactivate(amount account.Balance)       { f.l.Deactivate(amount) }
func (f Fungible) Reactivate(amount account.Balance)       { f.l.Reactivate(amount) }

func (f Fungible) TotalBalance(who common.AccountID) account.Balance {
	return f.l.TotalBalance(who)
}

// Balance is the free balance, the part these operations act on.
func (f Fungible) Balance(who common.AccountID) account.Balance {
	return f.l.FreeBalance(who)
}

// ReducibleBalance is how much of the free balance of who can be taken under
// the given policies.
func (f Fungible) ReducibleBalance(who common.AccountID, preservation Preservation, fortitude Fortitude) account.Balance {
	data := f.l.store.Get(who)
	var untouchable account.Balance
	if fortitude == Polite && f.l.config.FrozenFunds {
		untouchable = data.Frozen(account.All)
	}
	if preservation != Expendable {
		untouchable = account.Max(untouchable, account.SaturatingSub(f.l.config.ExistentialDeposit, data.Reserved))
	}
	return account.SaturatingSub(data.Free, untouchable)
}

func (f Fungible) CanDeposit(who common.AccountID, amount account.Balance, provenance Provenance) DepositConsequence {
	return f.l.DepositConsequence(who, amount, provenance)
}

func (f Fungible) CanWithdraw(who common.AccountID, amount account.Balance) WithdrawConsequence {
	return f.l.WithdrawConsequence(who, amount)
}

// WriteBalance sets the free balance of who to amount. The returned dust, if
// any, is not accounted for yet: pass it to HandleDust.
func (f Fungible) WriteBalance(who common.AccountID, amount account.Balance) (account.Balance, error) {
	var dust account.Balance
	err := f.l.transactional(func() error {
		var err error
		dust, err = f.writeBalance(who, amount)
		return err
	})
	return dust, err
}

func (f Fungible) writeBalance(who common.AccountID, amount account.Balance) (account.Balance, error) {
	dust, err := f.l.tryMutateAccountWithDust(who, func(acc *account.Data, _ bool) error {
		acc.Free = amount
		return nil
	})
	return dust.Amount(), err
}

func (f Fungible) HandleDust(who common.AccountID, amount account.Balance) {
	f.l.HandleDust(who, amount)
}

// IncreaseBalance credits who with amount, or as much as fits with
// BestEffort, and returns what was credited.
func (f Fungible) IncreaseBalance(who common.AccountID, amount account.Balance, precision Precision) (account.Balance, error) {
	var actual account.Balance
	err := f.l.transactional(func() error {
		var err error
		actual, err = f.increaseBalance(who, amount, precision)
		return err
	})
	return actual, err
}

func (f Fungible) increaseBalance(who common.AccountID, amount account.Balance, precision Precision) (account.Balance, error) {
	data := f.l.store.Get(who)
	old := data.Free
	next, ok := account.CheckedAdd(old, amount)
	if !ok {
		if precision == Exact {
			return 0, ErrOverflow
		}
		next = account.MaxBalance
	}
	if account.SaturatingAdd(next, data.Reserved) < f.l.config.ExistentialDeposit {
		if precision == BestEffort {
			return 0, nil
		}
		return 0, ErrBelowMinimum
	}
	if next != old {
		dust, err := f.writeBalance(who, next)
		if err != nil {
			return 0, err
		}
		f.l.HandleDust(who, dust)
	}
	return next - old, nil
}

// DecreaseBalance debits who by amount, or as much as the policies allow with
// BestEffort, and returns what was debited.
func (f Fungible) DecreaseBalance(who common.AccountID, amount account.Balance, precision Precision, preservation Preservation, fortitude Fortitude) (account.Balance, error) {
	var actual account.Balance
	err := f.l.transactional(func() error {
		var err error
		actual, err = f.decreaseBalance(who, amount, precision, preservation, fortitude)
		return err
	})
	return actual, err
}

func (f Fungible) decreaseBalance(who common.AccountID, amount account.Balance, precision Precision, preservation Preservation, fortitude Fortitude) (account.Balance, error) {
	old := f.l.FreeBalance(who)
	reducible := f.ReducibleBalance(who, preservation, fortitude)
	if precision == BestEffort {
		amount = account.Min(amount, reducible)
	} else if reducible < amount {
		return 0, ErrFundsUnavailable
	}
	next, ok := account.CheckedSub(old, amount)
	if !ok {
		return 0, ErrFundsUnavailable
	}
	dust, err := f.writeBalance(who, next)
	if err != nil {
		return 0, err
	}
	f.l.HandleDust(who, dust)
	return old - next, nil
}

// MintInto creates amount of new funds in who.
func (f Fungible) MintInto(who common.AccountID, amount account.Balance) (account.Balance, error) {
	var actual account.Balance
	err := f.l.transactional(func() error {
		if _, ok := account.CheckedAdd(f.l.TotalIssuance(), amount); !ok {
			return ErrOverflow
		}
		var err error
		if actual, err = f.increaseBalance(who, amount, Exact); err != nil {
			return err
		}
		f.l.setTotalIssuance(account.SaturatingAdd(f.l.TotalIssuance(), actual))
		f.l.journal.Emit(event.Minted{Who: who, Amount: amount})
		return nil
	})
	if err == nil {
		markAmount(f.l.metrics.issue, actual)
	}
	return actual, err
}

// BurnFrom destroys up to amount of the funds of who, reaping it if needed.
func (f Fungible) BurnFrom(who common.AccountID, amount account.Balance, precision Precision, fortitude Fortitude) (account.Balance, error) {
	var actual account.Balance
	err := f.l.transactional(func() error {
		var err error
		actual, err = f.reduceIssuance(who, amount, precision, fortitude)
		if err != nil {
			return err
		}
		f.l.journal.Emit(event.Burned{Who: who, Amount: actual})
		return nil
	})
	if err == nil {
		markAmount(f.l.metrics.burn, actual)
	}
	return actual, err
}

// Shelve takes exactly amount out of who and out of the issuance, to be
// brought back later with Restore.
func (f Fungible) Shelve(who common.AccountID, amount account.Balance) (account.Balance, error) {
	var actual account.Balance
	err := f.l.transactional(func() error {
		var err error
		actual, err = f.reduceIssuance(who, amount, Exact, Polite)
		if err != nil {
			return err
		}
		f.l.journal.Emit(event.Suspended{Who: who, Amount: actual})
		return nil
	})
	return actual, err
}

func (f Fungible) reduceIssuance(who common.AccountID, amount account.Balance, precision Precision, fortitude Fortitude) (account.Balance, error) {
	actual := account.Min(f.ReducibleBalance(who, Expendable, fortitude), amount)
	if actual != amount && precision == Exact {
		return 0, ErrFundsUnavailable
	}
	if _, ok := account.CheckedSub(f.l.TotalIssuance(), actual); !ok {
		return 0, ErrUnderflow
	}
	actual, err := f.decreaseBalance(who, actual, BestEffort, Expendable, fortitude)
	if err != nil {
		return 0, err
	}
	f.l.setTotalIssuance(account.SaturatingSub(f.l.TotalIssuance(), actual))
	return actual, nil
}

// Restore puts amount back into who and into the issuance.
func (f Fungible) Restore(who common.AccountID, amount account.Balance) (account.Balance, error) {
	var actual account.Balance
	err := f.l.transactional(func() error {
		if _, ok := account.CheckedAdd(f.l.TotalIssuance(), amount); !ok {
			return ErrOverflow
		}
		var err error
		if actual, err = f.increaseBalance(who, amount, Exact); err != nil {
			return err
		}
		f.l.setTotalIssuance(account.SaturatingAdd(f.l.TotalIssuance(), actual))
		f.l.journal.Emit(event.Restored{Who: who, Amount: amount})
		return nil
	})
	return actual, err
}

// Transfer moves exactly amount from source to dest.
func (f Fungible) Transfer(source, dest common.AccountID, amount account.Balance, preservation Preservation) (account.Balance, error) {
	err := f.l.transactional(func() error {
		if _, err := f.CanWithdraw(source, amount).IntoResult(preservation != Expendable); err != nil {
			return err
		}
		if err := f.CanDeposit(dest, amount, Extant).IntoResult(); err != nil {
			return err
		}
		if source == dest {
			return nil
		}
		taken, err := f.decreaseBalance(source, amount, BestEffort, preservation, Polite)
		if err != nil {
			return err
		}
		if taken != amount {
			return ErrFundsUnavailable
		}
		if _, err := f.increaseBalance(dest, amount, Exact); err != nil {
			return err
		}
		f.l.journal.Emit(event.Transfer{From: source, To: dest, Amount: amount})
		return nil
	})
	if err != nil {
		log.Debug("fungible transfer failed", "source", source, "dest", dest, "amount", amount, "err", err)
		return 0, err
	}
	if source != dest {
		f.l.metrics.transfer.Mark(1)
	}
	return amount, nil
}

// Deposit credits who and returns the debt the credit leaves in the issuance.
func (f Fungible) Deposit(who common.AccountID, amount account.Balance, precision Precision) (*PositiveImbalance, error) {
	var actual account.Balance
	err := f.l.transactional(func() error {
		var err error
		if actual, err = f.increaseBalance(who, amount, precision); err != nil {
			return err
		}
		f.l.journal.Emit(event.Deposit{Who: who, Amount: actual})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f.l.newPositive(actual), nil
}

// Withdraw debits who and returns the credit the debit leaves in the issuance.
func (f Fungible) Withdraw(who common.AccountID, amount account.Balance, precision Precision, preservation Preservation, fortitude Fortitude) (*NegativeImbalance, error) {
	var actual account.Balance
	err := f.l.transactional(func() error {
		var err error
		if actual, err = f.decreaseBalance(who, amount, precision, preservation, fortitude); err != nil {
			return err
		}
		f.l.journal.Emit(event.Withdraw{Who: who, Amount: actual})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f.l.newNegative(actual), nil
}

// Issue raises total issuance by amount, saturating, and returns the credit
// to be placed somewhere.
func (f Fungible) Issue(amount account.Balance) *NegativeImbalance {
	credit := f.l.Issue(amount)
	if issued := credit.Peek(); issued > 0 {
		f.l.journal.Emit(event.Issued{Amount: issued})
	}
	return credit
}

// Rescind lowers total issuance by amount, saturating, and returns the debt
// to be taken from somewhere.
func (f Fungible) Rescind(amount account.Balance) *PositiveImbalance {
	debt := f.l.Burn(amount)
	if rescinded := debt.Peek(); rescinded > 0 {
		f.l.journal.Emit(event.Rescinded{Amount: rescinded})
	}
	return debt
}

// Resolve places credit into who. On failure the credit is handed back.
func (f Fungible) Resolve(who common.AccountID, credit *NegativeImbalance) (*NegativeImbalance, error) {
	if credit.Peek() == 0 {
		return nil, nil
	}
	debt, err := f.Deposit(who, credit.Peek(), Exact)
	if err != nil {
		return credit, err
	}
	rest, residue := credit.Offset(debt)
	if rest != nil || residue != nil {
		log.Error("resolve left a residue", "who", who, "credit", rest.Peek(), "debt", residue.Peek())
		rest.Settle()
		residue.Settle()
	}
	return nil, nil
}

// Settle takes debt out of who, returning any credit left over. On failure the
// debt is handed back.
func (f Fungible) Settle(who common.AccountID, debt *PositiveImbalance, preservation Preservation) (*NegativeImbalance, *PositiveImbalance, error) {
	if debt.Peek() == 0 {
		return nil, nil, nil
	}
	credit, err := f.Withdraw(who, debt.Peek(), Exact, preservation, Polite)
	if err != nil {
		return nil, debt, err
	}
	rest, residue := credit.Offset(debt)
	if residue != nil {
		log.Error("settle left debt behind", "who", who, "debt", residue.Peek())
		return rest, residue, ErrFundsUnavailable
	}
	return rest, nil, nil
}
