package state

import (
	"fmt"

	"github.com/carbonledger/carbond/config"
	"github.com/carbonledger/carbond/tx"
	carbontypes "github.com/carbonledger/carbond/types"
	"github.com/ethereum/go-ethereum/rlp"
)

func claimKey(account, record uint64) string {
	return fmt.Sprintf(KeyClaimMarker, account, record)
}

// claimMarker returns the height of the last successful claim for the pair,
// zero if none.
func (s *State) claimMarker(account, record uint64) (uint64, error) {
	key := claimKey(account, record)
	if h, ok := s.claims[key]; ok {
		return h, nil
	}
	val, err := s.db.Get([]byte(key))
	if err != nil {
		return 0, err
	}
	var h uint64
	if val != nil {
		if err = rlp.DecodeBytes(val, &h); err != nil {
			return 0, err
		}
	}
	s.claims[key] = h
	return h, nil
}

func (s *State) setClaimMarker(account, record, height uint64) {
	key := claimKey(account, record)
	s.claims[key] = height
	s.modifiedClaims[key] = true
}

// PendingReward estimates the claimable reward for a record. Accrual runs
// from the later of the issue height and the owner's last claim marker, so a
// claimed window never accrues twice. The loyalty doubling keys off the
// record's total age.
func (s *State) PendingReward(id uint64) (uint64, error) {
	r, err := s.getRecord(id)
	if err != nil || r == nil {
		return 0, err
	}
	height := s.header.Height
	from := r.IssueHeight
	marker, err := s.claimMarker(r.Owner, id)
	if err != nil {
		return 0, err
	}
	if marker > from {
		from = marker
	}
	if height <= from {
		return 0, nil
	}
	reward := r.Amount * (height - from) / config.RewardRateDivisor(height)
	if s.elapsed(r) >= config.LoyaltyMilestoneBlocks(height) {
		reward *= 2
	}
	return reward, nil
}

// Claim mints the accrued reward to the record's owner, subject to the
// per-(owner, record) cooldown.
func (s *State) Claim(wtx *tx.ClaimTx, caller uint64, checkOnly bool) (event *carbontypes.EventClaim, err error) {
	if s.header.Paused {
		return nil, ErrPaused
	}
	r, err := s.getRecord(wtx.Record)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	if r.Owner != caller {
		return nil, ErrUnauthorized
	}
	height := s.header.Height
	marker, err := s.claimMarker(caller, wtx.Record)
	if err != nil {
		return nil, err
	}
	if marker != 0 && height-marker < config.ClaimCooldownBlocks(height) {
		return nil, ErrCooldownActive
	}
	reward, err := s.PendingReward(wtx.Record)
	if err != nil {
		return nil, err
	}
	if reward == 0 {
		return nil, ErrNothingToClaim
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	if checkOnly {
		return nil, nil
	}
	s.mintReward(a, reward)
	a.TotalEarned += reward
	a.LastClaimHeight = height
	a.LoyaltyPoints += reward / 10
	s.setClaimMarker(caller, wtx.Record, height)
	s.bumpNonce(a)
	event = &carbontypes.EventClaim{
		Record: wtx.Record,
		Owner:  caller,
		Reward: reward,
	}
	return
}

// AddReferral records the caller's referrer once and credits the referrer's
// bonus. A caller can never be referred twice.
func (s *State) AddReferral(wtx *tx.ReferralTx, caller uint64, checkOnly bool) (event *carbontypes.EventReferral, err error) {
	if s.header.Paused {
		return nil, ErrPaused
	}
	if wtx.Referrer == caller {
		return nil, ErrSelfReferral
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	if a.Referrer != 0 {
		return nil, ErrAlreadyReferred
	}
	referrer, err := s.GetAccount(wtx.Referrer)
	if err != nil {
		return nil, ErrNotFound
	}
	if checkOnly {
		return nil, nil
	}
	a.Referrer = wtx.Referrer
	s.creditReferrer(referrer)
	s.bumpNonce(a)
	event = &carbontypes.EventReferral{
		Account:  caller,
		Referrer: wtx.Referrer,
		Reward:   config.ReferralRewardAmount(s.header.Height),
	}
	return
}
