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
	"github.com/yeeco/ledger/log"
)

const errImbalanceConsumed = "balances: imbalance used after it was consumed"

// imbalance is the shared body of both token kinds. Every token handed out is
// counted by its ledger until consumed; a consumed token must not be touched
// again. A nil token is the zero imbalance.
type imbalance struct {
	amount   account.Balance
	ledger   *Ledger
	consumed bool
}

func (i *imbalance) peek() account.Balance {
	if i.consumed {
		panic(errImbalanceConsumed)
	}
	return i.amount
}

func (i *imbalance) consume() account.Balance {
	if i.consumed {
		panic(errImbalanceConsumed)
	}
	i.consumed = true
	i.ledger.outstanding--
	return i.amount
}

// PositiveImbalance is funds added to some account without issuance having
// been increased yet. Settling it raises total issuance.
type PositiveImbalance struct {
	imbalance
}

// NegativeImbalance is funds removed from some account without issuance having
// been reduced yet. Settling it lowers total issuance.
type NegativeImbalance struct {
	imbalance
}

func (l *Ledger) newPositive(amount account.Balance) *PositiveImbalance {
	if amount == 0 {
		return nil
	}
	l.outstanding++
	return &PositiveImbalance{imbalance{amount: amount, ledger: l}}
}

func (l *Ledger) newNegative(amount account.Balance) *NegativeImbalance {
	if amount == 0 {
		return nil
	}
	l.outstanding++
	return &NegativeImbalance{imbalance{amount: amount, ledger: l}}
}

// Peek returns the amount without consuming the token.
func (p *PositiveImbalance) Peek() account.Balance {
	if p == nil {
		return 0
	}
	return p.peek()
}

// Split consumes p and returns two tokens, the first holding min(amount, p)
// and the second the rest.
func (p *PositiveImbalance) Split(amount account.Balance) (*PositiveImbalance, *PositiveImbalance) {
	if p == nil {
		return nil, nil
	}
	l := p.ledger
	total := p.consume()
	first := account.Min(amount, total)
	return l.newPositive(first), l.newPositive(total - first)
}

// Merge consumes both tokens into one.
func (p *PositiveImbalance) Merge(other *PositiveImbalance) *PositiveImbalance {
	if p == nil {
		return other
	}
	if other == nil {
		return p
	}
	l := p.ledger
	a, b := p.consume(), other.consume()
	sum, ok := account.CheckedAdd(a, b)
	if !ok {
		log.Warn("positive imbalance merge saturated", "a", a, "b", b)
		sum = account.MaxBalance
	}
	return l.newPositive(sum)
}

// Offset consumes p and an opposite token, returning whichever side remains.
// At most one of the results is non-nil.
func (p *PositiveImbalance) Offset(other *NegativeImbalance) (*PositiveImbalance, *NegativeImbalance) {
	if other == nil {
		return p, nil
	}
	if p == nil {
		return nil, other
	}
	l := p.ledger
	a, b := p.consume(), other.consume()
	switch {
	case a > b:
		return l.newPositive(a - b), nil
	case a < b:
		return nil, l.newNegative(b - a)
	}
	return nil, nil
}

// Settle consumes p and adds its amount to total issuance.
func (p *PositiveImbalance) Settle() {
	if p == nil {
		return
	}
	l := p.ledger
	amount := p.consume()
	issuance := l.TotalIssuance()
	next, ok := account.CheckedAdd(issuance, amount)
	if !ok {
		log.Warn("total issuance saturated settling positive imbalance", "issuance", issuance, "amount", amount)
		next = account.MaxBalance
	}
	l.setTotalIssuance(next)
}

func (n *NegativeImbalance) Peek() account.Balance {
	if n == nil {
		return 0
	}
	return n.peek()
}

func (n *NegativeImbalance) Split(amount account.Balance) (*NegativeImbalance, *NegativeImbalance) {
	if n == nil {
		return nil, nil
	}
	l := n.ledger
	total := n.consume()
	first := account.Min(amount, total)
	return l.newNegative(first), l.newNegative(total - first)
}

func (n *NegativeImbalance) Merge(other *NegativeImbalance) *NegativeImbalance {
	if n == nil {
		return other
	}
	if other == nil {
		return n
	}
	l := n.ledger
	a, b := n.consume(), other.consume()
	sum, ok := account.CheckedAdd(a, b)
	if !ok {
		log.Warn("negative imbalance merge saturated", "a", a, "b", b)
		sum = account.MaxBalance
	}
	return l.newNegative(sum)
}

func (n *NegativeImbalance) Offset(other *PositiveImbalance) (*NegativeImbalance, *PositiveImbalance) {
	p, rest := other.Offset(n)
	return rest, p
}

// Settle consumes n and removes its amount from total issuance.
func (n *NegativeImbalance) Settle() {
	if n == nil {
		return
	}
	l := n.ledger
	amount := n.consume()
	issuance := l.TotalIssuance()
	next, ok := account.CheckedSub(issuance, amount)
	if !ok {
		log.Warn("total issuance underflow settling negative imbalance", "issuance", issuance, "amount", amount)
		next = 0
	}
	l.setTotalIssuance(next)
}

// SignedImbalance carries either a positive or a negative token, never both.
type SignedImbalance struct {
	Positive *PositiveImbalance
	Negative *NegativeImbalance
}

func (s SignedImbalance) IsNegative() bool {
	return s.Negative != nil
}

// Peek returns the magnitude and whether it is positive.
func (s SignedImbalance) Peek() (account.Balance, bool) {
	if s.Negative != nil {
		return s.Negative.Peek(), false
	}
	return s.Positive.Peek(), true
}

func (s SignedImbalance) Settle() {
	s.Positive.Settle()
	s.Negative.Settle()
}
