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

import (
	"github.com/ethereum/go-ethereum/common/math"
)

// Balance is the unit-of-account amount.
type Balance = uint64

const MaxBalance Balance = ^Balance(0)

// CheckedAdd returns a+b and false on overflow.
func CheckedAdd(a, b Balance) (Balance, bool) {
	sum, overflow := math.SafeAdd(a, b)
	return sum, !overflow
}

// CheckedSub returns a-b and false on underflow.
func CheckedSub(a, b Balance) (Balance, bool) {
	diff, underflow := math.SafeSub(a, b)
	return diff, !underflow
}

func SaturatingAdd(a, b Balance) Balance {
	if sum, ok := CheckedAdd(a, b); ok {
		return sum
	}
	return MaxBalance
}

func SaturatingSub(a, b Balance) Balance {
	if diff, ok := CheckedSub(a, b); ok {
		return diff
	}
	return 0
}

func Min(a, b Balance) Balance {
	if a < b {
		return a
	}
	return b
}

func Max(a, b Balance) Balance {
	if a > b {
		return a
	}
	return b
}
