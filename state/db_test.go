package state

import (
	"testing"

	"github.com/carbonledger/carbond/tx"
	"github.com/cometbft/cometbft/crypto/ed25519"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/require"
)

func newTestStateDB(t *testing.T) *StateDB {
	db, err := NewStateDB(t.TempDir(), cmtlog.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := db.NewState()
	pk := ed25519.GenPrivKey().PubKey().Bytes()
	require.NoError(t, st.InitLedger("carbon-test", [][]byte{pk}))
	_, err = st.Update()
	require.NoError(t, err)
	_, err = db.SetState(st)
	require.NoError(t, err)
	return db
}

func TestStateDBOracleLookup(t *testing.T) {
	require := require.New(t)
	db := newTestStateDB(t)

	st := db.NewState()
	admin := st.Admin()
	_, err := st.SubmitOraclePoint(&tx.OracleTx{
		Project: 5, DataType: "ndvi", Value: "0.81",
	}, admin, false)
	require.NoError(err)
	_, err = st.Update()
	require.NoError(err)
	_, err = db.SetState(st)
	require.NoError(err)

	o, height, err := db.GetOraclePoint(5, "ndvi")
	require.NoError(err)
	require.NotNil(o)
	require.Equal("0.81", o.Value)
	require.True(o.Verified)
	require.Equal(db.Header().Height, height)

	o, _, err = db.GetOraclePoint(5, "biomass")
	require.NoError(err)
	require.Nil(o)
}

func TestStateDBVerificationLookup(t *testing.T) {
	require := require.New(t)
	db := newTestStateDB(t)

	st := db.NewState()
	_, err := st.SubmitVerification(&tx.VerificationTx{
		Project: 9, Satellite: true, Audited: true, Source: "field-audit",
	}, st.Admin(), false)
	require.NoError(err)
	_, err = st.Update()
	require.NoError(err)
	_, err = db.SetState(st)
	require.NoError(err)

	v, _, err := db.GetVerification(9)
	require.NoError(err)
	require.NotNil(v)
	require.Equal(uint64(70), v.Score)
}
