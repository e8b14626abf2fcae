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
	"github.com/yeeco/ledger/event"
	"github.com/yeeco/ledger/log"
)

// ExistenceRequirement says whether an operation may reap the account it
// takes funds from.
type ExistenceRequirement uint8

const (
	KeepAlive ExistenceRequirement = iota
	AllowDeath
)

func (r ExistenceRequirement) String() string {
	if r == AllowDeath {
		return "AllowDeath"
	}
	return "KeepAlive"
}

var errNoop = errors.New("balances: no-op")

// Burn reduces total issuance by amount, saturating at zero, and returns the
// positive imbalance to be matched by funds removed from some account.
func (l *Ledger) Burn(amount account.Balance) *PositiveImbalance {
	if amount == 0 {
		return nil
	}
	issued := l.TotalIssuance()
	if amount > issued {
		log.Warn("burn exceeds total issuance", "amount", amount, "issuance", issued)
		amount = issued
	}
	l.setTotalIssuance(issued - amount)
	markAmount(l.metrics.burn, amount)
	return l.newPositive(amount)
}

// Issue increases total issuance by amount, saturating at the maximum, and
// returns the negative imbalance to be matched by funds credited somewhere.
func (l *Ledger) Issue(amount account.Balance) *NegativeImbalance {
	if amount == 0 {
		return nil
	}
	issued := l.TotalIssuance()
	next, ok := account.CheckedAdd(issued, amount)
	if !ok {
		log.Warn("issue saturates total issuance", "amount", amount, "issuance", issued)
		amount = account.MaxBalance - issued
		next = account.MaxBalance
	}
	l.setTotalIssuance(next)
	markAmount(l.metrics.issue, amount)
	return l.newNegative(amount)
}

// Transfer moves value of free balance from one account to another. Either
// both accounts change or neither does.
func (l *Ledger) Transfer(from, to common.AccountID, value account.Balance, req ExistenceRequirement) error {
	if value == 0 || from == to {
		return nil
	}
	ed := l.config.ExistentialDeposit
	err := l.transactional(func() error {
		var fromDust *DustCleaner
		toDust, err := l.tryMutateAccountWithDust(to, func(toAcc *account.Data, _ bool) error {
			var err error
			fromDust, err = l.tryMutateAccountWithDust(from, func(fromAcc *account.Data, _ bool) error {
				free, ok := account.CheckedSub(fromAcc.Free, value)
				if !ok {
					return ErrInsufficientBalance
				}
				fromAcc.Free = free

				if toAcc.Free, ok = account.CheckedAdd(toAcc.Free, value); !ok {
					return ErrOverflow
				}
				if toAcc.Total() < ed {
					return ErrExistentialDeposit
				}
				if err := l.ensureCanWithdraw(fromAcc, value, account.Transfer, fromAcc.Free); err != nil {
					return ErrLiquidityRestrictions
				}
				if req == KeepAlive && fromAcc.Total() < ed {
					return ErrKeepAlive
				}
				return nil
			})
			return err
		})
		if err != nil {
			return err
		}
		fromDust.Finish()
		toDust.Finish()

		l.journal.Emit(event.Transfer{From: from, To: to, Amount: value})
		return nil
	})
	if err != nil {
		log.Debug("transfer failed", "from", from, "to", to, "value", value, "err", err)
		return err
	}
	l.metrics.transfer.Mark(1)
	return nil
}

// Slash removes up to value from who, free balance first, returning what was
// taken and what could not be. It never fails: when reaping the account is
// refused, a second attempt leaves the existential deposit in place.
func (l *Ledger) Slash(who common.AccountID, value account.Balance) (*NegativeImbalance, account.Balance) {
	if value == 0 {
		return nil, 0
	}
	if l.TotalBalance(who) == 0 {
		return nil, value
	}
	ed := l.config.ExistentialDeposit
	for attempt := 0; attempt < 2; attempt++ {
		var slashed account.Balance
		err := l.transactional(func() error {
			return l.tryMutateAccount(who, func(acc *account.Data, _ bool) error {
				best := value
				if attempt > 0 {
					best = account.Min(value, account.SaturatingSub(l.slashable(acc), ed))
				}
				fromFree := account.Min(acc.Free, best)
				acc.Free -= fromFree
				slashed = fromFree
				if l.config.SlashReserved {
					fromReserved := account.Min(acc.Reserved, best-fromFree)
					acc.Reserved -= fromReserved
					slashed += fromReserved
				}
				if slashed > 0 {
					l.journal.Emit(event.Slashed{Who: who, Amount: slashed})
				}
				return nil
			})
		})
		if err == nil {
			markAmount(l.metrics.slash, slashed)
			return l.newNegative(slashed), value - slashed
		}
		log.Warn("slash attempt failed", "who", who, "value", value, "attempt", attempt, "err", err)
	}
	return nil, value
}

func (l *Ledger) slashable(acc *account.Data) account.Balance {
	if l.config.SlashReserved {
		return acc.Total()
	}
	return acc.Free
}

// DepositIntoExisting adds value to the free balance of an existing account.
func (l *Ledger) DepositIntoExisting(who common.AccountID, value account.Balance) (*PositiveImbalance, error) {
	if value == 0 {
		return nil, nil
	}
	err := l.transactional(func() error {
		return l.tryMutateAccount(who, func(acc *account.Data, isNew bool) error {
			if isNew {
				return ErrDeadAccount
			}
			free, ok := account.CheckedAdd(acc.Free, value)
			if !ok {
				return ErrOverflow
			}
			acc.Free = free
			l.journal.Emit(event.Deposit{Who: who, Amount: value})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return l.newPositive(value), nil
}

// DepositCreating adds value to the free balance of who, creating the account
// if needed. It does nothing when value cannot endow a new account or would
// overflow.
func (l *Ledger) DepositCreating(who common.AccountID, value account.Balance) *PositiveImbalance {
	if value == 0 {
		return nil
	}
	ed := l.config.ExistentialDeposit
	err := l.transactional(func() error {
		return l.tryMutateAccount(who, func(acc *account.Data, isNew bool) error {
			if value < ed && isNew {
				return ErrExistentialDeposit
			}
			free, ok := account.CheckedAdd(acc.Free, value)
			if !ok {
				return errNoop
			}
			acc.Free = free
			l.journal.Emit(event.Deposit{Who: who, Amount: value})
			return nil
		})
	})
	if err != nil {
		log.Debug("deposit creating skipped", "who", who, "value", value, "err", err)
		return nil
	}
	return l.newPositive(value)
}

// Withdraw takes value from the free balance of who for the given reasons.
func (l *Ledger) Withdraw(who common.AccountID, value account.Balance, reasons account.WithdrawReasons, liveness ExistenceRequirement) (*NegativeImbalance, error) {
	if value == 0 {
		return nil, nil
	}
	ed := l.config.ExistentialDeposit
	err := l.transactional(func() error {
		return l.tryMutateAccount(who, func(acc *account.Data, _ bool) error {
			free, ok := account.CheckedSub(acc.Free, value)
			if !ok {
				return ErrInsufficientBalance
			}
			total := account.SaturatingAdd(free, acc.Reserved)
			wouldKill := total < ed && acc.Total() >= ed
			if liveness == KeepAlive && wouldKill {
				return ErrKeepAlive
			}
			if err := l.ensureCanWithdraw(acc, value, reasons, free); err != nil {
				return err
			}
			acc.Free = free
			l.journal.Emit(event.Withdraw{Who: who, Amount: value})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return l.newNegative(value), nil
}

// MakeFreeBalanceBe forces the free balance of who to value. It refuses to
// create an account below the existential deposit, returning a zero imbalance.
func (l *Ledger) MakeFreeBalanceBe(who common.AccountID, value account.Balance) SignedImbalance {
	var (
		positive bool
		delta    account.Balance
	)
	ed := l.config.ExistentialDeposit
	err := l.transactional(func() error {
		return l.tryMutateAccount(who, func(acc *account.Data, isNew bool) error {
			if value < ed && isNew {
				return ErrExistentialDeposit
			}
			if acc.Free <= value {
				positive, delta = true, value-acc.Free
			} else {
				positive, delta = false, acc.Free-value
			}
			acc.Free = value
			l.journal.Emit(event.BalanceSet{Who: who, Free: value})
			return nil
		})
	})
	if err != nil {
		return SignedImbalance{}
	}
	if positive {
		return SignedImbalance{Positive: l.newPositive(delta)}
	}
	return SignedImbalance{Negative: l.newNegative(delta)}
}

// Reserve moves value from free to reserved balance.
func (l *Ledger) Reserve(who common.AccountID, value account.Balance) error {
	if value == 0 {
		return nil
	}
	return l.transactional(func() error {
		return l.tryMutateAccount(who, func(acc *account.Data, _ bool) error {
			free, ok := account.CheckedSub(acc.Free, value)
			if !ok {
				return ErrInsufficientBalance
			}
			reserved, ok := account.CheckedAdd(acc.Reserved, value)
			if !ok {
				return ErrOverflow
			}
			if err := l.ensureCanWithdraw(acc, value, account.Reserve, free); err != nil {
				return err
			}
			acc.Free, acc.Reserved = free, reserved
			l.journal.Emit(event.Reserved{Who: who, Amount: value})
			return nil
		})
	})
}

// Unreserve moves up to value from reserved back to free balance and returns
// the part that could not be moved.
func (l *Ledger) Unreserve(who common.AccountID, value account.Balance) account.Balance {
	if value == 0 {
		return 0
	}
	if l.TotalBalance(who) == 0 {
		return value
	}
	var actual account.Balance
	err := l.transactional(func() error {
		return l.tryMutateAccount(who, func(acc *account.Data, _ bool) error {
			actual = account.Min(acc.Reserved, value)
			acc.Reserved -= actual
			acc.Free = account.SaturatingAdd(acc.Free, actual)
			if actual > 0 {
				l.journal.Emit(event.Unreserved{Who: who, Amount: actual})
			}
			return nil
		})
	})
	if err != nil {
		log.Warn("unreserve failed", "who", who, "value", value, "err", err)
		return value
	}
	return value - actual
}

// Freeze raises the frozen floor of who for reasons to at least amount.
func (l *Ledger) Freeze(who common.AccountID, reasons account.Reasons, amount account.Balance) error {
	return l.transactional(func() error {
		return l.tryMutateAccount(who, func(acc *account.Data, isNew bool) error {
			if isNew {
				return ErrDeadAccount
			}
			// an unfunded record would be reaped along with the floor
			if acc.Total() < l.config.ExistentialDeposit {
				return ErrExistentialDeposit
			}
			if reasons != account.Fee {
				acc.MiscFrozen = account.Max(acc.MiscFrozen, amount)
			}
			if reasons != account.Misc {
				acc.FeeFrozen = account.Max(acc.FeeFrozen, amount)
			}
			return nil
		})
	})
}

// Thaw clears the frozen floor of who for reasons.
func (l *Ledger) Thaw(who common.AccountID, reasons account.Reasons) error {
	return l.transactional(func() error {
		return l.tryMutateAccount(who, func(acc *account.Data, isNew bool) error {
			if isNew {
				return ErrDeadAccount
			}
			if reasons != account.Fee {
				acc.MiscFrozen = 0
			}
			if reasons != account.Misc {
				acc.FeeFrozen = 0
			}
			return nil
		})
	})
}
