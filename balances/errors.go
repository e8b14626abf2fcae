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

import "github.com/pkg/errors"

var (
	ErrInsufficientBalance   = errors.New("balances: insufficient balance")
	ErrExistentialDeposit    = errors.New("balances: value too low to create account due to existential deposit")
	ErrKeepAlive             = errors.New("balances: transfer/payment would kill account")
	ErrLiquidityRestrictions = errors.New("balances: account liquidity restrictions prevent withdrawal")
	ErrDeadAccount           = errors.New("balances: beneficiary account must pre-exist")
	ErrOverflow              = errors.New("balances: arithmetic overflow")
	ErrUnderflow             = errors.New("balances: arithmetic underflow")

	ErrFundsUnavailable = errors.New("balances: funds are unavailable")
	ErrBelowMinimum     = errors.New("balances: account cannot exist with the funds that would be given")
	ErrFrozen           = errors.New("balances: funds exist but are frozen")
	ErrNotExpendable    = errors.New("balances: operation would reduce account below the existential deposit")

	ErrInvalidExistentialDeposit = errors.New("balances: existential deposit must be at least 1")
)
