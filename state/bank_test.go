package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransferNative(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)

	fromIdx := newTestAccount(t, s, 500)
	toIdx := newTestAccount(t, s, 0)
	from, err := s.GetAccount(fromIdx)
	require.NoError(err)
	to, err := s.GetAccount(toIdx)
	require.NoError(err)

	require.NoError(s.transferNative(from, to, 200))
	require.ErrorIs(s.transferNative(from, to, 301), ErrInsufficientFunds)

	from, err = s.GetAccount(fromIdx)
	require.NoError(err)
	to, err = s.GetAccount(toIdx)
	require.NoError(err)
	require.Equal(uint64(300), from.Balance)
	require.Equal(uint64(200), to.Balance)
}

func TestMintReward(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)

	idx := newTestAccount(t, s, 0)
	a, err := s.GetAccount(idx)
	require.NoError(err)

	s.mintReward(a, 77)
	a, err = s.GetAccount(idx)
	require.NoError(err)
	require.Equal(uint64(77), a.RewardBalance)
	require.Zero(a.Balance)
}

func TestEscrowBalance(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)

	bal, err := s.EscrowBalance()
	require.NoError(err)
	require.Zero(bal)

	esc, err := s.escrowAccount()
	require.NoError(err)
	s.mintNative(esc, 1000)

	bal, err = s.EscrowBalance()
	require.NoError(err)
	require.Equal(uint64(1000), bal)
}
