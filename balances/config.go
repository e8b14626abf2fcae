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
)

// OnUnbalanced receives imbalances nobody else accounted for. The handler owns
// the token and must settle, merge or resolve it.
type OnUnbalanced interface {
	OnUnbalanced(amount *NegativeImbalance)
}

type Config struct {
	// minimum total balance an account record needs to exist
	ExistentialDeposit account.Balance

	// reserved funds are drawn after free ones when slashing
	SlashReserved bool

	// frozen floors restrict withdrawals and transfers
	FrozenFunds bool

	// where dust goes, burnt if nil
	DustRemoval OnUnbalanced
}

func DefaultConfig() Config {
	return Config{
		ExistentialDeposit: 1,
		SlashReserved:      true,
		FrozenFunds:        true,
	}
}
