package state

import (
	"testing"

	"github.com/carbonledger/carbond/config"
	"github.com/carbonledger/carbond/tx"
	"github.com/stretchr/testify/require"
)

func TestPendingRewardAccrual(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)

	ev, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 1000}, owner, false)
	require.NoError(err)

	pending, err := s.PendingReward(ev.Record)
	require.NoError(err)
	require.Zero(pending)

	advance(s, 500)
	pending, err = s.PendingReward(ev.Record)
	require.NoError(err)
	require.Equal(uint64(500), pending) // 1000 * 500 / 1000

	pending, err = s.PendingReward(999)
	require.NoError(err)
	require.Zero(pending)
}

func TestPendingRewardLoyaltyDoubling(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)

	ev, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 1000}, owner, false)
	require.NoError(err)

	milestone := config.LoyaltyMilestoneBlocks(s.Height())
	advance(s, milestone-1)
	pending, err := s.PendingReward(ev.Record)
	require.NoError(err)
	require.Equal(1000*(milestone-1)/config.RewardRateDivisor(s.Height()), pending)

	advance(s, 1)
	pending, err = s.PendingReward(ev.Record)
	require.NoError(err)
	require.Equal(2*1000*milestone/config.RewardRateDivisor(s.Height()), pending)
}

func TestClaim(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)

	ev, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 1000}, owner, false)
	require.NoError(err)

	_, err = s.Claim(&tx.ClaimTx{Record: ev.Record}, owner, false)
	require.ErrorIs(err, ErrNothingToClaim)

	advance(s, 500)
	cev, err := s.Claim(&tx.ClaimTx{Record: ev.Record}, owner, false)
	require.NoError(err)
	require.Equal(uint64(500), cev.Reward)

	a, err := s.GetAccount(owner)
	require.NoError(err)
	require.Equal(uint64(500), a.RewardBalance)
	require.Equal(uint64(500), a.TotalEarned)
	require.Equal(uint64(50), a.LoyaltyPoints)
	require.Equal(s.Height(), a.LastClaimHeight)

	// the claimed window never accrues twice
	pending, err := s.PendingReward(ev.Record)
	require.NoError(err)
	require.Zero(pending)
}

func TestClaimCooldown(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)

	ev, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 1000}, owner, false)
	require.NoError(err)
	advance(s, 500)

	_, err = s.Claim(&tx.ClaimTx{Record: ev.Record}, owner, false)
	require.NoError(err)

	cooldown := config.ClaimCooldownBlocks(s.Height())
	advance(s, cooldown-1)
	_, err = s.Claim(&tx.ClaimTx{Record: ev.Record}, owner, false)
	require.ErrorIs(err, ErrCooldownActive)

	advance(s, 1)
	cev, err := s.Claim(&tx.ClaimTx{Record: ev.Record}, owner, false)
	require.NoError(err)
	require.Equal(1000*cooldown/config.RewardRateDivisor(s.Height()), cev.Reward)
}

func TestClaimOwnerOnly(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)
	other := newTestAccount(t, s, 0)

	ev, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 1000}, owner, false)
	require.NoError(err)
	advance(s, 500)

	_, err = s.Claim(&tx.ClaimTx{Record: ev.Record}, other, false)
	require.ErrorIs(err, ErrUnauthorized)
	_, err = s.Claim(&tx.ClaimTx{Record: 999}, owner, false)
	require.ErrorIs(err, ErrNotFound)
}

func TestClaimAfterTransfer(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)
	to := newTestAccount(t, s, 0)

	id := issueVerified(t, s, owner, 1, 1000)
	_, err := s.Claim(&tx.ClaimTx{Record: id}, owner, false)
	require.NoError(err)

	_, err = s.Transfer(&tx.TransferTx{Record: id, To: to}, owner, false)
	require.NoError(err)

	// the new owner's marker is independent: accrual restarts from the
	// issue height, not from the previous owner's claim
	r, err := s.getRecord(id)
	require.NoError(err)
	pending, err := s.PendingReward(id)
	require.NoError(err)
	require.Equal(1000*s.elapsed(r)/config.RewardRateDivisor(s.Height()), pending)
}

func TestReferral(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	caller := newTestAccount(t, s, 0)
	referrer := newTestAccount(t, s, 0)

	_, err := s.AddReferral(&tx.ReferralTx{Referrer: caller}, caller, false)
	require.ErrorIs(err, ErrSelfReferral)

	_, err = s.AddReferral(&tx.ReferralTx{Referrer: 999999}, caller, false)
	require.ErrorIs(err, ErrNotFound)

	rev, err := s.AddReferral(&tx.ReferralTx{Referrer: referrer}, caller, false)
	require.NoError(err)
	require.Equal(config.ReferralRewardAmount(s.Height()), rev.Reward)

	a, err := s.GetAccount(caller)
	require.NoError(err)
	require.Equal(referrer, a.Referrer)
	ref, err := s.GetAccount(referrer)
	require.NoError(err)
	require.Equal(uint64(1), ref.ReferralCount)
	require.Equal(config.ReferralRewardAmount(s.Height()), ref.RewardBalance)
	require.Equal(config.ReferralLoyaltyBonus(s.Height()), ref.LoyaltyPoints)

	// the marker is one time
	other := newTestAccount(t, s, 0)
	_, err = s.AddReferral(&tx.ReferralTx{Referrer: other}, caller, false)
	require.ErrorIs(err, ErrAlreadyReferred)
}
