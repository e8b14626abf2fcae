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
	"math"

	"github.com/ethereum/go-ethereum/metrics"
	"github.com/yeeco/ledger/account"
	"github.com/yeeco/ledger/log"
)

type ledgerMetrics struct {
	transfer     metrics.Meter
	slash        metrics.Meter
	dust         metrics.Meter
	issue        metrics.Meter
	burn         metrics.Meter
	mutationFail metrics.Meter
}

func newLedgerMetrics() *ledgerMetrics {
	metrics.Enabled = true
	return &ledgerMetrics{
		transfer:     metrics.NewRegisteredMeter("ledger/transfer", nil),
		slash:        metrics.NewRegisteredMeter("ledger/slash", nil),
		dust:         metrics.NewRegisteredMeter("ledger/dust", nil),
		issue:        metrics.NewRegisteredMeter("ledger/issue", nil),
		burn:         metrics.NewRegisteredMeter("ledger/burn", nil),
		mutationFail: metrics.NewRegisteredMeter("ledger/mutation/fail", nil),
	}
}

// markAmount marks a balance amount, capped to what a meter can count.
func markAmount(m metrics.Meter, amount account.Balance) {
	if amount > math.MaxInt64 {
		amount = math.MaxInt64
	}
	m.Mark(int64(amount))
}

func (lm *ledgerMetrics) printMetrics() {
	log.Info("ledger metrics",
		"transfer", fmt.Sprintf("%d", lm.transfer.Count()),
		"slash", fmt.Sprintf("%d", lm.slash.Count()),
		"dust", fmt.Sprintf("%d", lm.dust.Count()),
		"issue/burn", fmt.Sprintf("%d / %d", lm.issue.Count(), lm.burn.Count()),
		"failed", fmt.Sprintf("%d", lm.mutationFail.Count()))
}
