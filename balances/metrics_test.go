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
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/yeeco/ledger/account"
)

func TestMarkAmountCapsLargeAmounts(t *testing.T) {
	metrics.Enabled = true
	m := metrics.NewMeter()

	markAmount(m, 7)
	assert.Equal(t, int64(7), m.Count())

	m = metrics.NewMeter()
	markAmount(m, account.MaxBalance)
	assert.Equal(t, int64(math.MaxInt64), m.Count())
}

func TestIssueMeterStaysPositive(t *testing.T) {
	l := newDefaultEnv(t).ledger
	l.Issue(account.MaxBalance).Settle()
	assert.True(t, l.metrics.issue.Count() > 0)
}
