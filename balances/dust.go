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
	"github.com/yeeco/ledger/common"
	"github.com/yeeco/ledger/log"
)

// BurnDust drops dust from total issuance.
type BurnDust struct{}

func (BurnDust) OnUnbalanced(dust *NegativeImbalance) {
	dust.Settle()
}

// DustToAccount credits dust to a fixed account, falling back to burning it
// when the account cannot take it.
type DustToAccount struct {
	Who common.AccountID
}

func (d DustToAccount) OnUnbalanced(dust *NegativeImbalance) {
	if dust == nil {
		return
	}
	rest, err := dust.ledger.Fungible().Resolve(d.Who, dust)
	if err != nil {
		log.Warn("dust account refused dust, burning it", "who", d.Who, "amount", rest.Peek(), "err", err)
		rest.Settle()
	}
}
