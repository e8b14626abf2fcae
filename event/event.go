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

package event

import (
	"github.com/yeeco/ledger/account"
	"github.com/yeeco/ledger/common"
)

// Event is an informational ledger notification.
type Event interface {
	Topic() string
}

// Emitter receives notifications. Delivery failures never affect the ledger.
type Emitter interface {
	Emit(ev Event)
}

// Topics
const (
	TopicAll = "ledger:*"

	TopicEndowed       = "balances:Endowed"
	TopicDustLost      = "balances:DustLost"
	TopicTransfer      = "balances:Transfer"
	TopicBalanceSet    = "balances:BalanceSet"
	TopicReserved      = "balances:Reserved"
	TopicUnreserved    = "balances:Unreserved"
	TopicDeposit       = "balances:Deposit"
	TopicWithdraw      = "balances:Withdraw"
	TopicSlashed       = "balances:Slashed"
	TopicMinted        = "balances:Minted"
	TopicBurned        = "balances:Burned"
	TopicSuspended     = "balances:Suspended"
	TopicRestored      = "balances:Restored"
	TopicIssued        = "balances:Issued"
	TopicRescinded     = "balances:Rescinded"
	TopicNewAccount    = "system:NewAccount"
	TopicKilledAccount = "system:KilledAccount"
)

type (
	// Endowed: an account was created with some free balance.
	Endowed struct {
		Account     common.AccountID
		FreeBalance account.Balance
	}
	// DustLost: an account was removed whose balance was non-zero but below
	// the existential deposit.
	DustLost struct {
		Account common.AccountID
		Amount  account.Balance
	}
	Transfer struct {
		From, To common.AccountID
		Amount   account.Balance
	}
	BalanceSet struct {
		Who  common.AccountID
		Free account.Balance
	}
	Reserved struct {
		Who    common.AccountID
		Amount account.Balance
	}
	Unreserved struct {
		Who    common.AccountID
		Amount account.Balance
	}
	Deposit struct {
		Who    common.AccountID
		Amount account.Balance
	}
	Withdraw struct {
		Who    common.AccountID
		Amount account.Balance
	}
	Slashed struct {
		Who    common.AccountID
		Amount account.Balance
	}
	Minted struct {
		Who    common.AccountID
		Amount account.Balance
	}
	Burned struct {
		Who    common.AccountID
		Amount account.Balance
	}
	Suspended struct {
		Who    common.AccountID
		Amount account.Balance
	}
	Restored struct {
		Who    common.AccountID
		Amount account.Balance
	}
	Issued struct {
		Amount account.Balance
	}
	Rescinded struct {
		Amount account.Balance
	}
	NewAccount struct {
		Account common.AccountID
	}
	KilledAccount struct {
		Account common.AccountID
	}
)

func (Endowed) Topic() string       { return TopicEndowed }
func (DustLost) Topic() string      { return TopicDustLost }
func (Transfer) Topic() string      { return TopicTransfer }
func (BalanceSet) Topic() string    { return TopicBalanceSet }
func (Reserved) Topic() string      { return TopicReserved }
func (Unreserved) Topic() string    { return TopicUnreserved }
func (Deposit) Topic() string       { return TopicDeposit }
func (Withdraw) Topic() string      { return TopicWithdraw }
func (Slashed) Topic() string       { return TopicSlashed }
func (Minted) Topic() string        { return TopicMinted }
func (Burned) Topic() string        { return TopicBurned }
func (Suspended) Topic() string     { return TopicSuspended }
func (Restored) Topic() string      { return TopicRestored }
func (Issued) Topic() string        { return TopicIssued }
func (Rescinded) Topic() string     { return TopicRescinded }
func (NewAccount) Topic() string    { return TopicNewAccount }
func (KilledAccount) Topic() string { return TopicKilledAccount }
