package state

import (
	"testing"

	"github.com/carbonledger/carbond/tx"
	"github.com/stretchr/testify/require"
)

func TestVerificationScore(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(0), verificationScore(false, false, false))
	require.Equal(uint64(30), verificationScore(true, false, false))
	require.Equal(uint64(60), verificationScore(true, true, false))
	require.Equal(uint64(70), verificationScore(true, false, true))
	require.Equal(uint64(100), verificationScore(true, true, true))
}

func TestSubmitVerification(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	admin := s.Admin()
	other := newTestAccount(t, s, 0)

	_, err := s.SubmitVerification(&tx.VerificationTx{Project: 5, Satellite: true}, other, false)
	require.ErrorIs(err, ErrAdminOnly)

	ev, err := s.SubmitVerification(&tx.VerificationTx{
		Project: 5, Satellite: true, Iot: true, Source: "sentinel-2",
	}, admin, false)
	require.NoError(err)
	require.Equal(uint64(60), ev.Score)

	v, err := s.GetVerification(5)
	require.NoError(err)
	require.True(v.Satellite)
	require.True(v.Iot)
	require.False(v.Audited)
	require.Equal("sentinel-2", v.Source)
	require.Equal(s.Height(), v.UpdatedHeight)

	// resubmission replaces the entry wholesale
	_, err = s.SubmitVerification(&tx.VerificationTx{Project: 5, Audited: true}, admin, false)
	require.NoError(err)
	v, err = s.GetVerification(5)
	require.NoError(err)
	require.False(v.Satellite)
	require.True(v.Audited)
	require.Equal(uint64(40), v.Score)
}

func TestVerifyProjectImpact(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	admin := s.Admin()

	_, err := s.VerifyProjectImpact(&tx.VerifyImpactTx{Project: 5}, admin, false)
	require.ErrorIs(err, ErrNotFound)

	_, err = s.SubmitVerification(&tx.VerificationTx{Project: 5, Satellite: true, Iot: true}, admin, false)
	require.NoError(err)
	_, err = s.VerifyProjectImpact(&tx.VerifyImpactTx{Project: 5}, admin, false)
	require.ErrorIs(err, ErrInvalidVerification)

	_, err = s.SubmitVerification(&tx.VerificationTx{Project: 5, Satellite: true, Audited: true}, admin, false)
	require.NoError(err)
	ev, err := s.VerifyProjectImpact(&tx.VerifyImpactTx{Project: 5}, admin, false)
	require.NoError(err)
	require.Equal(uint64(70), ev.Score)
}

func TestSubmitOraclePoint(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	admin := s.Admin()
	other := newTestAccount(t, s, 0)

	_, err := s.SubmitOraclePoint(&tx.OracleTx{Project: 5, DataType: "ndvi", Value: "0.81"}, other, false)
	require.ErrorIs(err, ErrAdminOnly)
	_, err = s.SubmitOraclePoint(&tx.OracleTx{Project: 5, Value: "0.81"}, admin, false)
	require.ErrorIs(err, ErrInvalidName)

	_, err = s.SubmitOraclePoint(&tx.OracleTx{Project: 5, DataType: "ndvi", Value: "0.81"}, admin, false)
	require.NoError(err)
	o, err := s.GetOraclePoint(5, "ndvi")
	require.NoError(err)
	require.Equal("0.81", o.Value)
	require.True(o.Verified)

	// a later point for the same (project, type) pair overwrites
	_, err = s.SubmitOraclePoint(&tx.OracleTx{Project: 5, DataType: "ndvi", Value: "0.85"}, admin, false)
	require.NoError(err)
	o, err = s.GetOraclePoint(5, "ndvi")
	require.NoError(err)
	require.Equal("0.85", o.Value)

	o, err = s.GetOraclePoint(5, "rainfall")
	require.NoError(err)
	require.Nil(o)
}
