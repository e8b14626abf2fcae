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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeeco/ledger/account"
	"github.com/yeeco/ledger/event"
	"github.com/yeeco/ledger/system"
)

func TestReducibleBalance(t *testing.T) {
	env := newDefaultEnv(t)
	f := env.ledger.Fungible()

	assert.Equal(t, initBalance, f.ReducibleBalance(alice, Expendable, Polite))
	assert.Equal(t, initBalance-1, f.ReducibleBalance(alice, Preserve, Polite))
	assert.Equal(t, initBalance-1, f.ReducibleBalance(alice, Protect, Polite))

	require.NoError(t, env.ledger.Freeze(alice, account.Misc, 100))
	assert.Equal(t, initBalance-100, f.ReducibleBalance(alice, Preserve, Polite))
	assert.Equal(t, initBalance-1, f.ReducibleBalance(alice, Preserve, Force))

	// reserved funds keep the account alive on their own
	require.NoError(t, env.ledger.Thaw(alice, account.All))
	require.NoError(t, env.ledger.Reserve(alice, 10))
	assert.Equal(t, initBalance-10, f.ReducibleBalance(alice, Preserve, Polite))
}

func TestCanDeposit(t *testing.T) {
	env := newTestEnv(t, withED(10), system.Sufficients)
	f := env.ledger.Fungible()

	assert.Equal(t, DepositSuccess, f.CanDeposit(alice, 10, Minted))
	assert.Equal(t, DepositSuccess, f.CanDeposit(alice, 0, Minted))
	assert.Equal(t, DepositOverflow, f.CanDeposit(alice, account.MaxBalance, Minted))
	assert.Equal(t, DepositBelowMinimum, f.CanDeposit(charlie, 9, Extant))
	assert.Equal(t, DepositSuccess, f.CanDeposit(charlie, 10, Extant))

	// only minted funds are checked against the issuance
	f.SetTotalIssuance(account.MaxBalance)
	assert.Equal(t, DepositOverflow, f.CanDeposit(charlie, 10, Minted))
	assert.Equal(t, DepositSuccess, f.CanDeposit(charlie, 10, Extant))

	assert.Equal(t, ErrBelowMinimum, DepositBelowMinimum.IntoResult())
	assert.Equal(t, ErrOverflow, DepositOverflow.IntoResult())
	assert.NoError(t, DepositSuccess.IntoResult())
}

func TestCanWithdraw(t *testing.T) {
	env := newDefaultEnv(t)
	f := env.ledger.Fungible()

	assert.Equal(t, WithdrawConsequence{Kind: WithdrawSuccess}, f.CanWithdraw(alice, 10))
	assert.Equal(t, WithdrawConsequence{Kind: WithdrawUnderflow}, f.CanWithdraw(alice, account.MaxBalance))
	assert.Equal(t, WithdrawConsequence{Kind: WithdrawNoFunds}, f.CanWithdraw(alice, initBalance+1))
	assert.Equal(t, WithdrawConsequence{Kind: WithdrawReducedToZero}, f.CanWithdraw(alice, initBalance))

	require.NoError(t, env.ledger.Freeze(alice, account.Fee, 100))
	assert.Equal(t, WithdrawConsequence{Kind: WithdrawFrozen}, f.CanWithdraw(alice, initBalance-99))
	assert.Equal(t, WithdrawConsequence{Kind: WithdrawSuccess}, f.CanWithdraw(alice, initBalance-100))
}

func TestCanWithdrawReportsDust(t *testing.T) {
	env := newTestEnv(t, withED(10), system.Sufficients)
	f := env.ledger.Fungible()

	c := f.CanWithdraw(alice, initBalance-4)
	assert.Equal(t, WithdrawConsequence{Kind: WithdrawReducedToZero, Remaining: 4}, c)
	assert.Equal(t, "ReducedToZero(4)", c.String())

	dust, err := c.IntoResult(false)
	require.NoError(t, err)
	assert.Equal(t, account.Balance(4), dust)
	_, err = c.IntoResult(true)
	assert.Equal(t, ErrNotExpendable, err)

	_, err = WithdrawConsequence{Kind: WithdrawNoFunds}.IntoResult(false)
	assert.Equal(t, ErrFundsUnavailable, err)
	_, err = WithdrawConsequence{Kind: WithdrawFrozen}.IntoResult(false)
	assert.Equal(t, ErrFrozen, err)
	_, err = WithdrawConsequence{Kind: WithdrawUnderflow}.IntoResult(false)
	assert.Equal(t, ErrUnderflow, err)
}

func TestWriteBalance(t *testing.T) {
	env := newTestEnv(t, withED(10), system.Sufficients)
	f := env.ledger.Fungible()

	dust, err := f.WriteBalance(alice, 10)
	require.NoError(t, err)
	assert.Zero(t, dust)
	assert.Equal(t, account.Balance(10), f.TotalBalance(alice))

	dust, err = f.WriteBalance(alice, 4)
	require.NoError(t, err)
	assert.Equal(t, account.Balance(4), dust)
	assert.False(t, env.system.AccountExists(alice))

	f.SetTotalIssuance(initBalance)
	env.assertConserved(t)

	// writes are forced through frozen floors
	require.NoError(t, env.ledger.Freeze(bob, account.All, 100))
	dust, err = f.WriteBalance(bob, 50)
	require.NoError(t, err)
	assert.Zero(t, dust)
	assert.Equal(t, account.Balance(50), f.Balance(bob))
	f.SetTotalIssuance(50)
	env.assertConserved(t)
}

func TestIncreaseBalance(t *testing.T) {
	env := newDefaultEnv(t)
	f := env.ledger.Fungible()

	actual, err := f.IncreaseBalance(alice, 100, Exact)
	require.NoError(t, err)
	assert.Equal(t, account.Balance(100), actual)
	assert.Equal(t, initBalance+100, f.TotalBalance(alice))

	_, err = f.IncreaseBalance(alice, account.MaxBalance, Exact)
	assert.Equal(t, ErrOverflow, err)

	actual, err = f.IncreaseBalance(alice, account.MaxBalance, BestEffort)
	require.NoError(t, err)
	assert.Equal(t, account.MaxBalance-initBalance-100, actual)
	assert.Equal(t, account.MaxBalance, f.TotalBalance(alice))
}

func TestIncreaseBalanceBelowMinimum(t *testing.T) {
	env := newTestEnv(t, withED(10), system.Sufficients)
	f := env.ledger.Fungible()

	_, err := f.IncreaseBalance(charlie, 5, Exact)
	assert.Equal(t, ErrBelowMinimum, err)
	actual, err := f.IncreaseBalance(charlie, 5, BestEffort)
	require.NoError(t, err)
	assert.Zero(t, actual)
	assert.False(t, env.system.AccountExists(charlie))
}

func TestDecreaseBalance(t *testing.T) {
	env := newDefaultEnv(t)
	f := env.ledger.Fungible()

	actual, err := f.DecreaseBalance(alice, 100, Exact, Expendable, Polite)
	require.NoError(t, err)
	assert.Equal(t, account.Balance(100), actual)
	assert.Equal(t, initBalance-100, f.TotalBalance(alice))

	actual, err = f.DecreaseBalance(bob, initBalance+1, BestEffort, Preserve, Polite)
	require.NoError(t, err)
	assert.Equal(t, initBalance-1, actual)
	assert.Equal(t, account.Balance(1), f.TotalBalance(bob))

	_, err = f.DecreaseBalance(alice, initBalance, Exact, Preserve, Polite)
	assert.Equal(t, ErrFundsUnavailable, err)
}

func TestDecreaseBalanceReaps(t *testing.T) {
	env := newDefaultEnv(t)
	f := env.ledger.Fungible()

	_, err := f.DecreaseBalance(alice, initBalance, Exact, Expendable, Polite)
	require.NoError(t, err)
	assert.Zero(t, f.TotalBalance(alice))
	assert.False(t, env.system.AccountExists(alice))
	assert.True(t, env.events.Has(event.KilledAccount{Account: alice}))
}

func TestDecreaseBalanceHandlesDust(t *testing.T) {
	env := newTestEnv(t, withED(10), system.Sufficients)
	sink := new(dustSink)
	sink.On("OnUnbalanced", account.Balance(5)).Once()
	env.ledger.SetDustRemoval(sink)
	f := env.ledger.Fungible()

	actual, err := f.DecreaseBalance(alice, initBalance-5, Exact, Expendable, Polite)
	require.NoError(t, err)
	assert.Equal(t, initBalance-5, actual)
	assert.False(t, env.system.AccountExists(alice))
	assert.True(t, env.events.Has(event.DustLost{Account: alice, Amount: 5}))
	sink.AssertExpectations(t)
}

func TestMintInto(t *testing.T) {
	env := newDefaultEnv(t)
	f := env.ledger.Fungible()

	actual, err := f.MintInto(alice, 10)
	require.NoError(t, err)
	assert.Equal(t, account.Balance(10), actual)
	assert.Equal(t, initBalance+10, f.TotalBalance(alice))
	assert.Equal(t, 2*initBalance+10, f.TotalIssuance())
	assert.True(t, env.events.Has(event.Minted{Who: alice, Amount: 10}))
	env.assertConserved(t)

	_, err = f.MintInto(alice, account.MaxBalance)
	assert.Equal(t, ErrOverflow, err)
	env.assertConserved(t)
}

func TestBurnFrom(t *testing.T) {
	env := newDefaultEnv(t)
	f := env.ledger.Fungible()

	actual, err := f.BurnFrom(alice, 10, Exact, Polite)
	require.NoError(t, err)
	assert.Equal(t, account.Balance(10), actual)
	assert.Equal(t, initBalance-10, f.TotalBalance(alice))
	assert.Equal(t, 2*initBalance-10, f.TotalIssuance())
	assert.True(t, env.events.Has(event.Burned{Who: alice, Amount: 10}))
	env.assertConserved(t)

	_, err = f.BurnFrom(bob, initBalance+1, Exact, Polite)
	assert.Equal(t, ErrFundsUnavailable, err)

	actual, err = f.BurnFrom(bob, initBalance+1, BestEffort, Polite)
	require.NoError(t, err)
	assert.Equal(t, initBalance, actual)
	assert.False(t, env.system.AccountExists(bob))
	assert.True(t, env.events.Has(event.Burned{Who: bob, Amount: initBalance}))
	assert.True(t, env.events.Has(event.KilledAccount{Account: bob}))
	env.assertConserved(t)
}

func TestShelveRestore(t *testing.T) {
	env := newDefaultEnv(t)
	f := env.ledger.Fungible()

	actual, err := f.Shelve(alice, 10)
	require.NoError(t, err)
	assert.Equal(t, account.Balance(10), actual)
	assert.Equal(t, initBalance-10, f.TotalBalance(alice))
	assert.Equal(t, 2*initBalance-10, f.TotalIssuance())
	assert.True(t, env.events.Has(event.Suspended{Who: alice, Amount: 10}))

	_, err = f.Shelve(alice, initBalance)
	assert.Equal(t, ErrFundsUnavailable, err)

	actual, err = f.Restore(alice, 10)
	require.NoError(t, err)
	assert.Equal(t, account.Balance(10), actual)
	assert.Equal(t, initBalance, f.TotalBalance(alice))
	assert.Equal(t, 2*initBalance, f.TotalIssuance())
	assert.True(t, env.events.Has(event.Restored{Who: alice, Amount: 10}))

	_, err = f.Restore(alice, account.MaxBalance)
	assert.Equal(t, ErrOverflow, err)
	env.assertConserved(t)
}

func TestFungibleTransfer(t *testing.T) {
	env := newDefaultEnv(t)
	f := env.ledger.Fungible()

	actual, err := f.Transfer(alice, bob, 100, Preserve)
	require.NoError(t, err)
	assert.Equal(t, account.Balance(100), actual)
	assert.Equal(t, initBalance-100, f.Balance(alice))
	assert.Equal(t, initBalance+100, f.Balance(bob))
	assert.True(t, env.events.Has(event.Transfer{From: alice, To: bob, Amount: 100}))

	_, err = f.Transfer(alice, bob, initBalance, Preserve)
	assert.Equal(t, ErrFundsUnavailable, err)
	_, err = f.Transfer(alice, bob, initBalance-100, Preserve)
	assert.Equal(t, ErrNotExpendable, err)

	_, err = f.Transfer(alice, charlie, initBalance-100, Expendable)
	require.NoError(t, err)
	assert.False(t, env.system.AccountExists(alice))
	assert.Equal(t, initBalance-100, f.Balance(charlie))
	env.assertConserved(t)
}

func TestFungibleTransferFrozen(t *testing.T) {
	env := newDefaultEnv(t)
	f := env.ledger.Fungible()
	require.NoError(t, env.ledger.Freeze(alice, account.Misc, initBalance-10))

	_, err := f.Transfer(alice, bob, 11, Preserve)
	assert.Equal(t, ErrFrozen, err)
	_, err = f.Transfer(alice, bob, 10, Preserve)
	require.NoError(t, err)
	env.assertConserved(t)
}

func TestBalancedDepositWithdraw(t *testing.T) {
	env := newDefaultEnv(t)
	f := env.ledger.Fungible()

	debt, err := f.Deposit(alice, 50, Exact)
	require.NoError(t, err)
	assert.Equal(t, account.Balance(50), debt.Peek())
	assert.True(t, env.events.Has(event.Deposit{Who: alice, Amount: 50}))

	credit, err := f.Withdraw(bob, 50, Exact, Preserve, Polite)
	require.NoError(t, err)
	assert.Equal(t, account.Balance(50), credit.Peek())
	assert.True(t, env.events.Has(event.Withdraw{Who: bob, Amount: 50}))

	rest, residue := debt.Offset(credit)
	assert.Nil(t, rest)
	assert.Nil(t, residue)
	env.assertConserved(t)

	_, err = f.Withdraw(bob, initBalance, Exact, Preserve, Polite)
	assert.Equal(t, ErrFundsUnavailable, err)
}

func TestIssueRescind(t *testing.T) {
	env := newDefaultEnv(t)
	f := env.ledger.Fungible()

	credit := f.Issue(100)
	assert.Equal(t, 2*initBalance+100, f.TotalIssuance())
	assert.True(t, env.events.Has(event.Issued{Amount: 100}))

	rest, err := f.Resolve(charlie, credit)
	require.NoError(t, err)
	assert.Nil(t, rest)
	assert.Equal(t, account.Balance(100), f.Balance(charlie))
	env.assertConserved(t)

	debt := f.Rescind(40)
	assert.True(t, env.events.Has(event.Rescinded{Amount: 40}))
	leftover, unpaid, err := f.Settle(charlie, debt, Preserve)
	require.NoError(t, err)
	assert.Nil(t, leftover)
	assert.Nil(t, unpaid)
	assert.Equal(t, account.Balance(60), f.Balance(charlie))
	env.assertConserved(t)
}

func TestResolveAndSettleHandBackOnFailure(t *testing.T) {
	env := newTestEnv(t, withED(10), system.Sufficients)
	f := env.ledger.Fungible()

	credit := f.Issue(5)
	rest, err := f.Resolve(charlie, credit)
	assert.Equal(t, ErrBelowMinimum, err)
	assert.Equal(t, credit, rest)
	rest.Settle()

	debt := f.Rescind(initBalance)
	_, unpaid, err := f.Settle(alice, debt, Preserve)
	assert.Error(t, err)
	assert.Equal(t, debt, unpaid)
	unpaid.Settle()
	env.assertConserved(t)
}

func TestDustToAccount(t *testing.T) {
	env := newTestEnv(t, withED(10), system.Sufficients)
	env.ledger.SetDustRemoval(DustToAccount{Who: bob})

	require.NoError(t, env.ledger.Transfer(alice, charlie, initBalance-5, AllowDeath))
	assert.False(t, env.system.AccountExists(alice))
	assert.Equal(t, initBalance+5, env.ledger.FreeBalance(bob))
	assert.Equal(t, 2*initBalance, env.ledger.TotalIssuance())
	env.assertConserved(t)
}

func TestDustToMissingAccountIsBurnt(t *testing.T) {
	env := newTestEnv(t, withED(10), system.Sufficients)
	treasury := charlie
	env.ledger.SetDustRemoval(DustToAccount{Who: treasury})

	credit, err := env.ledger.Withdraw(alice, initBalance-5, account.TransactionPayment, AllowDeath)
	require.NoError(t, err)
	credit.Settle()

	assert.False(t, env.system.AccountExists(alice))
	assert.False(t, env.system.AccountExists(treasury))
	assert.True(t, env.events.Has(event.DustLost{Account: alice, Amount: 5}))
	assert.Equal(t, initBalance, env.ledger.TotalIssuance())
	env.assertConserved(t)
}
