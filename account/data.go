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

package account

import "fmt"

// Reasons selects which frozen floor applies to a withdrawal.
type Reasons uint8

const (
	// Fee covers transaction payment only.
	Fee Reasons = iota
	// Misc covers everything except transaction payment.
	Misc
	// All is the stricter of the two floors.
	All
)

func (r Reasons) String() string {
	switch r {
	case Fee:
		return "fee"
	case Misc:
		return "misc"
	case All:
		return "all"
	}
	return fmt.Sprintf("reasons(%d)", uint8(r))
}

// WithdrawReasons is a bit set describing why funds leave an account.
type WithdrawReasons uint8

const (
	TransactionPayment WithdrawReasons = 1 << iota
	Transfer
	Reserve
	FeePayment
	Tip
)

const AllWithdrawReasons = TransactionPayment | Transfer | Reserve | FeePayment | Tip

func (w WithdrawReasons) Contains(o WithdrawReasons) bool {
	return w&o == o
}

// Reasons maps a withdrawal reason set to the frozen floor it is checked against.
func (w WithdrawReasons) Reasons() Reasons {
	switch {
	case w == TransactionPayment:
		return Fee
	case w.Contains(TransactionPayment):
		return All
	default:
		return Misc
	}
}

// Data holds all balance information of an account.
type Data struct {
	// Spendable part of the balance.
	Free Balance
	// Held balance; counts toward the total and is slashed last.
	Reserved Balance
	// Floor for free balance on anything except fee payment.
	MiscFrozen Balance
	// Floor for free balance on fee payment.
	FeeFrozen Balance
}

// Total is free plus reserved, ignoring any frozen floor.
func (d *Data) Total() Balance {
	return SaturatingAdd(d.Free, d.Reserved)
}

// Frozen is the amount free balance may not drop below for the given reasons.
func (d *Data) Frozen(reasons Reasons) Balance {
	switch reasons {
	case Fee:
		return d.FeeFrozen
	case Misc:
		return d.MiscFrozen
	default:
		return Max(d.MiscFrozen, d.FeeFrozen)
	}
}

// Usable is how much free balance can be reduced for the given reasons.
func (d *Data) Usable(reasons Reasons) Balance {
	return SaturatingSub(d.Free, d.Frozen(reasons))
}

func (d Data) IsZero() bool {
	return d == Data{}
}

func (d Data) String() string {
	return fmt.Sprintf("{free:%d reserved:%d miscFrozen:%d feeFrozen:%d}",
		d.Free, d.Reserved, d.MiscFrozen, d.FeeFrozen)
}
