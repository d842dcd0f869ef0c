package state

import (
	"testing"

	"github.com/carbonledger/carbond/tx"
	"github.com/cometbft/cometbft/crypto/ed25519"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/iavl"
	dbm "github.com/cosmos/iavl/db"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) *State {
	logger := cmtlog.NewNopLogger()
	tree := iavl.NewMutableTree(dbm.NewMemDB(), 128, true, Cometbft2CosmosLogger(logger))
	_, err := tree.Load()
	require.NoError(t, err)
	s := newState(tree, logger)
	pk := ed25519.GenPrivKey().PubKey().Bytes()
	require.NoError(t, s.InitLedger("carbon-test", [][]byte{pk}))
	s.header.Height = 1
	return s
}

// newTestAccount registers a funded account directly, bypassing the tx path.
func newTestAccount(t *testing.T, s *State, balance uint64) uint64 {
	a := &Account{Balance: balance}
	a.SetPubKey(ed25519.GenPrivKey().PubKey().Bytes())
	require.NoError(t, s.AddAccount(a))
	return a.Index
}

func advance(s *State, blocks uint64) {
	s.header.Height += blocks
}

func TestInitLedger(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)

	require.Equal(uint64(StartAccountIdx), s.Admin())
	admin, err := s.GetAccount(s.Admin())
	require.NoError(err)
	require.NotZero(admin.Balance)

	esc, err := s.GetAccount(EscrowAccountIdx)
	require.NoError(err)
	require.Zero(esc.Balance)
	require.Empty(esc.PubKey)
}

func TestRegister(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)

	pk := ed25519.GenPrivKey().PubKey().Bytes()
	ev, err := s.Register(&tx.RegisterTx{Pubkey: pk}, false)
	require.NoError(err)
	require.Equal(uint64(StartAccountIdx+1), ev.Account)

	_, err = s.Register(&tx.RegisterTx{Pubkey: pk}, false)
	require.ErrorIs(err, ErrAccountAlreadyExists)

	_, err = s.Register(&tx.RegisterTx{Pubkey: pk[:10]}, false)
	require.ErrorIs(err, tx.ErrInvalidTx)
}

func TestRegisterWithReferrer(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	referrer := newTestAccount(t, s, 0)

	pk := ed25519.GenPrivKey().PubKey().Bytes()
	ev, err := s.Register(&tx.RegisterTx{Pubkey: pk, Referrer: referrer}, false)
	require.NoError(err)
	require.Equal(referrer, ev.Referrer)

	a, err := s.GetAccount(ev.Account)
	require.NoError(err)
	require.Equal(referrer, a.Referrer)

	ref, err := s.GetAccount(referrer)
	require.NoError(err)
	require.Equal(uint64(1), ref.ReferralCount)
	require.NotZero(ref.RewardBalance)
	require.NotZero(ref.LoyaltyPoints)

	// unknown referrer rejects the registration outright
	pk2 := ed25519.GenPrivKey().PubKey().Bytes()
	_, err = s.Register(&tx.RegisterTx{Pubkey: pk2, Referrer: 999999}, false)
	require.ErrorIs(err, ErrNotFound)
}

func TestVerifyEnvelope(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)

	priv := ed25519.GenPrivKey()
	ev, err := s.Register(&tx.RegisterTx{Pubkey: priv.PubKey().Bytes()}, false)
	require.NoError(err)

	btx := &tx.CarbonTx{
		Version: tx.CarbonTxVersion1,
		Type:    tx.CarbonTxTypeIssue,
		Nonce:   0,
		Account: ev.Account,
		Tx:      &tx.IssueTx{Project: 1, Amount: 10},
	}
	dat, err := btx.SigData([]byte("carbon-test"))
	require.NoError(err)
	sig, err := priv.Sign(dat)
	require.NoError(err)
	btx.Sig = [][]byte{sig}

	ok, err := s.Verify(btx, false)
	require.NoError(err)
	require.True(ok)

	// a signature over the wrong chain id must not verify
	dat, err = btx.SigData([]byte("other-chain"))
	require.NoError(err)
	sig, err = priv.Sign(dat)
	require.NoError(err)
	btx.Sig = [][]byte{sig}
	_, err = s.Verify(btx, false)
	require.ErrorIs(err, ErrTxSigInvalid)

	btx.Nonce = 5
	_, err = s.Verify(btx, false)
	require.ErrorIs(err, ErrTxNonceInvalid)
}

func TestAccountRecordSet(t *testing.T) {
	require := require.New(t)
	a := &Account{}

	a.AddRecord(5)
	a.AddRecord(1)
	a.AddRecord(3)
	a.AddRecord(3)
	require.Equal([]uint64{1, 3, 5}, a.Records)
	require.True(a.HasRecord(3))
	require.False(a.HasRecord(2))

	require.True(a.RemoveRecord(3))
	require.False(a.RemoveRecord(3))
	require.Equal([]uint64{1, 5}, a.Records)
	require.Equal(2, a.RecordCount())
}

func TestCloneIsolation(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)

	_, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 100}, owner, false)
	require.NoError(err)

	st := s.Clone()
	_, err = st.Issue(&tx.IssueTx{Project: 1, Amount: 50}, owner, false)
	require.NoError(err)

	// the clone sees its own issue, the parent does not
	r, err := st.GetRecord(2)
	require.NoError(err)
	require.NotNil(r)
	r, err = s.GetRecord(2)
	require.NoError(err)
	require.Nil(r)

	a, err := s.GetAccount(owner)
	require.NoError(err)
	require.Equal(1, a.RecordCount())
}

func TestUpdateDeterministicHash(t *testing.T) {
	require := require.New(t)

	build := func() *State {
		logger := cmtlog.NewNopLogger()
		tree := iavl.NewMutableTree(dbm.NewMemDB(), 128, true, Cometbft2CosmosLogger(logger))
		_, err := tree.Load()
		require.NoError(err)
		s := newState(tree, logger)
		require.NoError(s.InitLedger("carbon-test", [][]byte{make([]byte, ed25519.PubKeySize)}))
		s.header.Height = 1
		_, err = s.Issue(&tx.IssueTx{Project: 7, Amount: 42}, s.Admin(), false)
		require.NoError(err)
		return s
	}

	s1, s2 := build(), build()
	h1, err := s1.Update()
	require.NoError(err)
	h2, err := s2.Update()
	require.NoError(err)
	require.Equal(h1, h2)
}
