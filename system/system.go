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

package system

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/yeeco/ledger/account"
	"github.com/yeeco/ledger/common"
	"github.com/yeeco/ledger/event"
	"github.com/yeeco/ledger/log"
	"github.com/yeeco/ledger/state"
)

var (
	ErrAccountAlreadyExist = errors.New("system: account already exists")
	ErrAccountNotExist     = errors.New("system: account does not exist")
	ErrConsumerRemaining   = errors.New("system: account has consumers and cannot lose its last provider")
)

// RefPolicy selects which counter backs account existence.
type RefPolicy uint8

const (
	// Sufficients: explicit creation adds a sufficient reference; funded
	// balances keep the record alive on their own.
	Sufficients RefPolicy = iota
	// Providers: funded balances and explicit creation both add a provider
	// reference; consumers pin the last provider.
	Providers
)

func (p RefPolicy) String() string {
	switch p {
	case Sufficients:
		return "sufficients"
	case Providers:
		return "providers"
	}
	return fmt.Sprintf("policy(%d)", uint8(p))
}

func ParseRefPolicy(s string) (RefPolicy, error) {
	switch s {
	case "", "sufficients":
		return Sufficients, nil
	case "providers":
		return Providers, nil
	}
	return 0, errors.Errorf("system: unknown reference policy %q", s)
}

// OnNewAccount is told when a record comes into existence.
type OnNewAccount interface {
	OnNewAccount(who common.AccountID)
}

// OnKilledAccount is told when a record is reaped. All resources associated
// with the account should be cleaned up.
type OnKilledAccount interface {
	OnKilledAccount(who common.AccountID)
}

type Config struct {
	Policy          RefPolicy
	OnNewAccount    OnNewAccount
	OnKilledAccount OnKilledAccount
}

// CreationOutcome is the result of CreateAccount.
type CreationOutcome uint8

const (
	// Created: the reference count went from zero to one.
	Created CreationOutcome = iota
	// AlreadyExists: the account was already referenced.
	AlreadyExists
)

func (o CreationOutcome) Err() error {
	if o == AlreadyExists {
		return ErrAccountAlreadyExist
	}
	return nil
}

// RemovalOutcome is the result of RemoveAccount.
type RemovalOutcome uint8

const (
	// Reaped: the record no longer exists.
	Reaped RemovalOutcome = iota
	// Retained: the record still holds funds or references.
	Retained
	// DidNotExist: nothing to remove.
	DidNotExist
)

func (o RemovalOutcome) Err() error {
	if o == DidNotExist {
		return ErrAccountNotExist
	}
	return nil
}

// System owns account records: existence, reference counts and nonces. It is
// the store the balance ledger mutates through TryMutateExists.
type System struct {
	state    state.Store
	journal  *event.Journal
	policy   RefPolicy
	onNew    OnNewAccount
	onKilled OnKilledAccount
}

func New(st state.Store, journal *event.Journal, cfg Config) *System {
	if journal == nil {
		journal = event.NewJournal(nil)
	}
	return &System{
		state:    st,
		journal:  journal,
		policy:   cfg.Policy,
		onNew:    cfg.OnNewAccount,
		onKilled: cfg.OnKilledAccount,
	}
}

func (s *System) Policy() RefPolicy {
	return s.policy
}

func (s *System) AccountExists(who common.AccountID) bool {
	return s.state.Exists(who)
}

// Account returns the full record, zero if absent.
func (s *System) Account(who common.AccountID) account.Info {
	info, _ := s.state.GetAccount(who)
	return info
}

func (s *System) Sufficients(who common.AccountID) account.RefCount {
	return s.Account(who).Sufficients
}

func (s *System) Providers(who common.AccountID) account.RefCount {
	return s.Account(who).Providers
}

func (s *System) Consumers(who common.AccountID) account.RefCount {
	return s.Account(who).Consumers
}

func (s *System) AccountNonce(who common.AccountID) uint64 {
	return s.Account(who).Nonce
}

// IncAccountNonce bumps the nonce of an existing record.
func (s *System) IncAccountNonce(who common.AccountID) error {
	info, ok := s.state.GetAccount(who)
	if !ok {
		return ErrAccountNotExist
	}
	info.Nonce++
	s.state.SetAccount(who, info)
	return nil
}

func (s *System) counter(info *account.Info) *account.RefCount {
	if s.policy == Providers {
		return &info.Providers
	}
	return &info.Sufficients
}

// CreateAccount adds an existence reference to who.
func (s *System) CreateAccount(who common.AccountID) CreationOutcome {
	info, existed := s.state.GetAccount(who)
	refs := s.counter(&info)
	if *refs == 0 {
		*refs = 1
		s.state.SetAccount(who, info)
		if !existed {
			s.onCreatedAccount(who)
		}
		return Created
	}
	if *refs < ^account.RefCount(0) {
		*refs++
	}
	s.state.SetAccount(who, info)
	return AlreadyExists
}

// RemoveAccount drops an existence reference from who, reaping the record
// once it holds neither funds nor references.
func (s *System) RemoveAccount(who common.AccountID) RemovalOutcome {
	info, existed := s.state.GetAccount(who)
	if !existed {
		return DidNotExist
	}
	if !info.Data.IsZero() {
		return Retained
	}
	refs := s.counter(&info)
	if *refs > 0 {
		if *refs == 1 && info.References() == 1 && info.Consumers > 0 {
			return Retained
		}
		*refs--
	}
	if info.References() == 0 {
		s.state.DeleteAccount(who)
		s.onKilledAccount(who)
		return Reaped
	}
	s.state.SetAccount(who, info)
	return Retained
}

// IncConsumers records a module depending on who.
func (s *System) IncConsumers(who common.AccountID) error {
	info, ok := s.state.GetAccount(who)
	if !ok {
		return ErrAccountNotExist
	}
	if info.Consumers < ^account.RefCount(0) {
		info.Consumers++
	}
	s.state.SetAccount(who, info)
	return nil
}

func (s *System) DecConsumers(who common.AccountID) {
	info, ok := s.state.GetAccount(who)
	if !ok || info.Consumers == 0 {
		log.Warn("consumer reference underflow", "who", who)
		return
	}
	info.Consumers--
	s.state.SetAccount(who, info)
}

// Get returns the balance payload of who, zero if absent.
func (s *System) Get(who common.AccountID) account.Data {
	return s.Account(who).Data
}

// TryMutateExists hands f the balance payload of who and whether the record
// exists. f reports whether the record should exist afterwards. Nothing is
// written when f fails.
func (s *System) TryMutateExists(who common.AccountID, f func(data *account.Data, exists bool) (bool, error)) error {
	info, existed := s.state.GetAccount(who)
	data := info.Data
	keep, err := f(&data, existed)
	if err != nil {
		return err
	}

	funded := existed && !info.Data.IsZero()
	switch {
	case keep:
		if s.policy == Providers && !funded {
			info.Providers++
		}
		info.Data = data
		s.state.SetAccount(who, info)
		if !existed {
			s.onCreatedAccount(who)
		}
	case existed:
		if s.policy == Providers && funded {
			if info.References() == 1 && info.Providers == 1 && info.Consumers > 0 {
				return ErrConsumerRemaining
			}
			info.Providers--
		}
		info.Data = account.Data{}
		if info.References() > 0 {
			s.state.SetAccount(who, info)
			return nil
		}
		s.state.DeleteAccount(who)
		s.onKilledAccount(who)
	}
	return nil
}

func (s *System) onCreatedAccount(who common.AccountID) {
	log.Debug("account created", "who", who)
	if s.onNew != nil {
		s.journal.Defer(func() { s.onNew.OnNewAccount(who) })
	}
	s.journal.Emit(event.NewAccount{Account: who})
}

func (s *System) onKilledAccount(who common.AccountID) {
	log.Debug("account reaped", "who", who)
	if s.onKilled != nil {
		s.journal.Defer(func() { s.onKilled.OnKilledAccount(who) })
	}
	s.journal.Emit(event.KilledAccount{Account: who})
}
