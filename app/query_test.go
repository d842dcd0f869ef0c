package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/carbonledger/carbond/state"
	"github.com/carbonledger/carbond/tx"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	"github.com/cometbft/cometbft/crypto/ed25519"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/require"
)

func newQueryTestDB(t *testing.T) *state.StateDB {
	db, err := state.NewStateDB(t.TempDir(), cmtlog.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := db.NewState()
	pk := ed25519.GenPrivKey().PubKey().Bytes()
	require.NoError(t, st.InitLedger("carbon-test", [][]byte{pk}))
	admin := st.Admin()
	_, err = st.SubmitVerification(&tx.VerificationTx{
		Project: 7, Satellite: true, Audited: true, Source: "field-audit",
	}, admin, false)
	require.NoError(t, err)
	_, err = st.SubmitOraclePoint(&tx.OracleTx{
		Project: 7, DataType: "ndvi", Value: "0.74",
	}, admin, false)
	require.NoError(t, err)
	_, err = st.Update()
	require.NoError(t, err)
	_, err = db.SetState(st)
	require.NoError(t, err)
	return db
}

func TestOracleQuerier(t *testing.T) {
	require := require.New(t)
	db := newQueryTestDB(t)
	q := NewOracleQuerier(db, cmtlog.NewNopLogger())
	ctx := context.Background()

	res, err := q.Query(ctx, &abcitypes.RequestQuery{Data: []byte("7:ndvi")})
	require.NoError(err)
	require.Zero(res.Code)
	var o state.OraclePoint
	require.NoError(json.Unmarshal(res.Value, &o))
	require.Equal("0.74", o.Value)
	require.Equal("ndvi", o.DataType)

	res, err = q.Query(ctx, &abcitypes.RequestQuery{Data: []byte("7:biomass")})
	require.NoError(err)
	require.Equal(uint32(1), res.Code)

	res, err = q.Query(ctx, &abcitypes.RequestQuery{Data: []byte("7")})
	require.NoError(err)
	require.Equal(uint32(1), res.Code)
	require.NotEmpty(res.Log)

	res, err = q.Query(ctx, &abcitypes.RequestQuery{Data: []byte("seven:ndvi")})
	require.NoError(err)
	require.Equal(uint32(1), res.Code)
}

func TestVerificationQuerierImpact(t *testing.T) {
	require := require.New(t)
	db := newQueryTestDB(t)
	q := NewVerificationQuerier(db, cmtlog.NewNopLogger())

	res, err := q.Query(context.Background(), &abcitypes.RequestQuery{Data: []byte{7}})
	require.NoError(err)
	require.Zero(res.Code)

	var view struct {
		Score        uint64 `json:"score"`
		ImpactPassed bool   `json:"impactPassed"`
	}
	require.NoError(json.Unmarshal(res.Value, &view))
	require.Equal(uint64(70), view.Score)
	require.True(view.ImpactPassed)
}
