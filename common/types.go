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

package common

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
)

const AccountIDLength = 20

var (
	ErrInvalidAccountID       = errors.New("common: invalid account id")
	ErrInvalidAccountIDLength = errors.New("common: invalid account id length")
)

// AccountID identifies a ledger account.
type AccountID [AccountIDLength]byte

func BytesToAccountID(b []byte) AccountID {
	var id AccountID
	id.SetBytes(b)
	return id
}

// SetBytes sets the id to the value of b, cropping from the left if b is
// longer than the id.
func (id *AccountID) SetBytes(b []byte) {
	if len(b) > len(id) {
		b = b[len(b)-AccountIDLength:]
	}
	copy(id[AccountIDLength-len(b):], b)
}

func (id AccountID) Bytes() []byte { return id[:] }

func (id AccountID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id AccountID) Base58() string {
	return base58.Encode(id[:])
}

func (id AccountID) String() string {
	return id.Hex()
}

func (id AccountID) Equals(b AccountID) bool {
	return bytes.Equal(id[:], b[:])
}

func (id AccountID) IsZero() bool {
	return id == AccountID{}
}

// HexToAccountID parses a hex account id, with or without 0x prefix.
func HexToAccountID(s string) (AccountID, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return AccountID{}, errors.Wrap(ErrInvalidAccountID, err.Error())
	}
	if len(b) != AccountIDLength {
		return AccountID{}, ErrInvalidAccountIDLength
	}
	return BytesToAccountID(b), nil
}

func Base58ToAccountID(s string) (AccountID, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return AccountID{}, errors.Wrap(ErrInvalidAccountID, err.Error())
	}
	if len(b) != AccountIDLength {
		return AccountID{}, ErrInvalidAccountIDLength
	}
	return BytesToAccountID(b), nil
}

// ParseAccountID accepts either the hex or the base58 text form.
func ParseAccountID(s string) (AccountID, error) {
	if id, err := HexToAccountID(s); err == nil {
		return id, nil
	}
	return Base58ToAccountID(s)
}
