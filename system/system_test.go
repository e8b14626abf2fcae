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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yeeco/ledger/account"
	"github.com/yeeco/ledger/common"
	"github.com/yeeco/ledger/event"
	"github.com/yeeco/ledger/persistent"
	"github.com/yeeco/ledger/state"
)

type hooks struct {
	mock.Mock
}

func (h *hooks) OnNewAccount(who common.AccountID)    { h.Called(who) }
func (h *hooks) OnKilledAccount(who common.AccountID) { h.Called(who) }

var alice = common.BytesToAccountID([]byte{0xa1})

func newSystem(t *testing.T, policy RefPolicy) (*System, *hooks, *event.Recorder) {
	storage, err := persistent.NewMemoryStorage()
	require.NoError(t, err)
	st, err := state.New(storage, 16)
	require.NoError(t, err)
	h := new(hooks)
	rec := new(event.Recorder)
	sys := New(st, event.NewJournal(rec), Config{
		Policy:          policy,
		OnNewAccount:    h,
		OnKilledAccount: h,
	})
	return sys, h, rec
}

func TestCreateRemoveLifecycle(t *testing.T) {
	sys, h, rec := newSystem(t, Sufficients)
	h.On("OnNewAccount", alice).Once()
	h.On("OnKilledAccount", alice).Once()

	assert.Equal(t, Created, sys.CreateAccount(alice))
	assert.True(t, sys.AccountExists(alice))
	assert.Equal(t, AlreadyExists, sys.CreateAccount(alice))
	assert.Equal(t, ErrAccountAlreadyExist, AlreadyExists.Err())
	assert.EqualValues(t, 2, sys.Sufficients(alice))

	assert.Equal(t, Retained, sys.RemoveAccount(alice))
	assert.True(t, sys.AccountExists(alice))
	assert.Equal(t, Reaped, sys.RemoveAccount(alice))
	assert.False(t, sys.AccountExists(alice))
	assert.Equal(t, DidNotExist, sys.RemoveAccount(alice))
	assert.Equal(t, ErrAccountNotExist, DidNotExist.Err())

	h.AssertExpectations(t)
	assert.Equal(t, []event.Event{
		event.NewAccount{Account: alice},
		event.KilledAccount{Account: alice},
	}, rec.Events())
}

func TestRemoveRetainsFundedRecord(t *testing.T) {
	sys, h, _ := newSystem(t, Sufficients)
	h.On("OnNewAccount", alice).Once()
	require.Equal(t, Created, sys.CreateAccount(alice))
	require.NoError(t, sys.TryMutateExists(alice, func(d *account.Data, exists bool) (bool, error) {
		assert.True(t, exists)
		d.Free = 10
		return true, nil
	}))

	assert.Equal(t, Retained, sys.RemoveAccount(alice))
	assert.EqualValues(t, 1, sys.Sufficients(alice))
	assert.EqualValues(t, 10, sys.Get(alice).Free)
	h.AssertExpectations(t)
}

func TestTryMutateExistsCreatesAndReaps(t *testing.T) {
	sys, h, rec := newSystem(t, Sufficients)
	h.On("OnNewAccount", alice).Once()
	h.On("OnKilledAccount", alice).Once()

	require.NoError(t, sys.TryMutateExists(alice, func(d *account.Data, exists bool) (bool, error) {
		assert.False(t, exists)
		d.Free = 5
		return true, nil
	}))
	assert.EqualValues(t, 5, sys.Get(alice).Free)

	require.NoError(t, sys.TryMutateExists(alice, func(d *account.Data, exists bool) (bool, error) {
		return false, nil
	}))
	assert.False(t, sys.AccountExists(alice))
	assert.Len(t, rec.Events(), 2)
	h.AssertExpectations(t)
}

func TestTryMutateExistsKeepsReferencedRecord(t *testing.T) {
	sys, h, _ := newSystem(t, Sufficients)
	h.On("OnNewAccount", alice).Once()
	sys.CreateAccount(alice)
	require.NoError(t, sys.TryMutateExists(alice, func(d *account.Data, _ bool) (bool, error) {
		d.Free = 3
		return true, nil
	}))
	require.NoError(t, sys.TryMutateExists(alice, func(d *account.Data, _ bool) (bool, error) {
		return false, nil
	}))
	assert.True(t, sys.AccountExists(alice))
	assert.True(t, sys.Get(alice).IsZero())
	h.AssertExpectations(t)
}

func TestTryMutateExistsErrorWritesNothing(t *testing.T) {
	sys, _, rec := newSystem(t, Sufficients)
	boom := ErrAccountNotExist
	err := sys.TryMutateExists(alice, func(d *account.Data, _ bool) (bool, error) {
		d.Free = 100
		return true, boom
	})
	assert.Equal(t, boom, err)
	assert.False(t, sys.AccountExists(alice))
	assert.Empty(t, rec.Events())
}

func TestProvidersPolicy(t *testing.T) {
	sys, h, _ := newSystem(t, Providers)
	h.On("OnNewAccount", alice).Once()

	require.NoError(t, sys.TryMutateExists(alice, func(d *account.Data, _ bool) (bool, error) {
		d.Free = 7
		return true, nil
	}))
	assert.EqualValues(t, 1, sys.Providers(alice))

	// a second funded write does not add another provider
	require.NoError(t, sys.TryMutateExists(alice, func(d *account.Data, _ bool) (bool, error) {
		d.Free = 9
		return true, nil
	}))
	assert.EqualValues(t, 1, sys.Providers(alice))

	require.NoError(t, sys.IncConsumers(alice))
	err := sys.TryMutateExists(alice, func(d *account.Data, _ bool) (bool, error) {
		return false, nil
	})
	assert.Equal(t, ErrConsumerRemaining, err)
	assert.EqualValues(t, 9, sys.Get(alice).Free)

	sys.DecConsumers(alice)
	h.On("OnKilledAccount", alice).Once()
	require.NoError(t, sys.TryMutateExists(alice, func(d *account.Data, _ bool) (bool, error) {
		return false, nil
	}))
	assert.False(t, sys.AccountExists(alice))
	h.AssertExpectations(t)
}

func TestNonce(t *testing.T) {
	sys, h, _ := newSystem(t, Sufficients)
	assert.Equal(t, ErrAccountNotExist, sys.IncAccountNonce(alice))
	assert.Equal(t, ErrAccountNotExist, sys.IncConsumers(alice))

	h.On("OnNewAccount", alice).Once()
	sys.CreateAccount(alice)
	require.NoError(t, sys.IncAccountNonce(alice))
	require.NoError(t, sys.IncAccountNonce(alice))
	assert.EqualValues(t, 2, sys.AccountNonce(alice))
}

func TestJournalDefersCallbacks(t *testing.T) {
	storage, err := persistent.NewMemoryStorage()
	require.NoError(t, err)
	st, err := state.New(storage, 16)
	require.NoError(t, err)
	h := new(hooks)
	rec := new(event.Recorder)
	journal := event.NewJournal(rec)
	sys := New(st, journal, Config{OnNewAccount: h})

	mark := journal.Begin()
	snap := st.Snapshot()
	sys.CreateAccount(alice)
	st.RevertToSnapshot(snap)
	journal.Rollback(mark)

	assert.False(t, sys.AccountExists(alice))
	assert.Empty(t, rec.Events())
	h.AssertNotCalled(t, "OnNewAccount", alice)
}

func TestParseRefPolicy(t *testing.T) {
	p, err := ParseRefPolicy("providers")
	require.NoError(t, err)
	assert.Equal(t, Providers, p)
	p, err = ParseRefPolicy("")
	require.NoError(t, err)
	assert.Equal(t, Sufficients, p)
	_, err = ParseRefPolicy("consumers")
	assert.Error(t, err)
}
