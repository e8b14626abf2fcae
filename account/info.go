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
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// RefCount counts references keeping an account alive.
type RefCount = uint32

// Info is the persisted account record.
type Info struct {
	// Number of transactions sent by the account.
	Nonce uint64
	// Modules depending on the account which must not outlive it.
	Consumers RefCount
	// Modules providing for the account's existence (funded balances).
	Providers RefCount
	// Modules keeping the account alive on their own, without funds.
	Sufficients RefCount
	// Balance payload.
	Data Data
}

// References is the number of references that keep the record alive.
func (i *Info) References() RefCount {
	return i.Providers + i.Sufficients
}

func (i *Info) ToBytes() ([]byte, error) {
	enc, err := rlp.EncodeToBytes(i)
	if err != nil {
		return nil, errors.Wrap(err, "account: encode info")
	}
	return enc, nil
}

func (i *Info) FromBytes(enc []byte) error {
	if err := rlp.DecodeBytes(enc, i); err != nil {
		return errors.Wrap(err, "account: decode info")
	}
	return nil
}
