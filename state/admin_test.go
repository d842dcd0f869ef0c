package state

import (
	"testing"

	"github.com/carbonledger/carbond/tx"
	"github.com/stretchr/testify/require"
)

func TestSetPaused(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	admin := s.Admin()
	other := newTestAccount(t, s, 0)

	_, err := s.SetPaused(&tx.PauseTx{Paused: true}, other, false)
	require.ErrorIs(err, ErrAdminOnly)

	_, err = s.SetPaused(&tx.PauseTx{Paused: true}, admin, false)
	require.NoError(err)
	require.True(s.Paused())

	// setting the current value again still succeeds
	_, err = s.SetPaused(&tx.PauseTx{Paused: true}, admin, false)
	require.NoError(err)

	_, err = s.SetPaused(&tx.PauseTx{Paused: false}, admin, false)
	require.NoError(err)
	require.False(s.Paused())
}

func TestSetAdmin(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	admin := s.Admin()
	next := newTestAccount(t, s, 0)

	_, err := s.SetAdmin(&tx.SetAdminTx{Admin: next}, next, false)
	require.ErrorIs(err, ErrAdminOnly)
	_, err = s.SetAdmin(&tx.SetAdminTx{Admin: 999999}, admin, false)
	require.Error(err)

	_, err = s.SetAdmin(&tx.SetAdminTx{Admin: next}, admin, false)
	require.NoError(err)
	require.Equal(next, s.Admin())

	// the old admin lost the role with the handoff
	_, err = s.SetPaused(&tx.PauseTx{Paused: true}, admin, false)
	require.ErrorIs(err, ErrAdminOnly)
	_, err = s.SetPaused(&tx.PauseTx{Paused: true}, next, false)
	require.NoError(err)
}

func TestSetProject(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	admin := s.Admin()
	owner := newTestAccount(t, s, 0)

	_, err := s.SetProject(&tx.SetProjectTx{Project: 3, Name: "mangrove"}, owner, false)
	require.ErrorIs(err, ErrAdminOnly)
	_, err = s.SetProject(&tx.SetProjectTx{Project: 3}, admin, false)
	require.ErrorIs(err, ErrInvalidName)

	_, err = s.Issue(&tx.IssueTx{Project: 3, Amount: 500}, owner, false)
	require.NoError(err)

	_, err = s.SetProject(&tx.SetProjectTx{
		Project: 3, Name: "mangrove", Location: "sundarbans", Standard: "vcs",
	}, admin, false)
	require.NoError(err)

	p, err := s.GetProject(3)
	require.NoError(err)
	require.Equal("mangrove", p.Name)
	require.Equal("sundarbans", p.Location)
	require.Equal("vcs", p.Standard)
	// metadata updates never touch the staked aggregate
	require.Equal(uint64(500), p.TotalStaked)
}

func TestFund(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	admin := s.Admin()
	to := newTestAccount(t, s, 0)

	_, err := s.Fund(&tx.FundTx{To: to, Amount: 100}, to, false)
	require.ErrorIs(err, ErrAdminOnly)
	_, err = s.Fund(&tx.FundTx{To: to, Amount: 0}, admin, false)
	require.ErrorIs(err, ErrInvalidAmount)
	_, err = s.Fund(&tx.FundTx{To: 999999, Amount: 100}, admin, false)
	require.Error(err)

	_, err = s.Fund(&tx.FundTx{To: to, Amount: 100}, admin, false)
	require.NoError(err)
	a, err := s.GetAccount(to)
	require.NoError(err)
	require.Equal(uint64(100), a.Balance)
}
