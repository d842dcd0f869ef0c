package state

import (
	"testing"

	"github.com/carbonledger/carbond/config"
	"github.com/carbonledger/carbond/tx"
	"github.com/stretchr/testify/require"
)

// issueVerified issues a record, moves it to verified and waits out the
// holding window so it is transfer eligible.
func issueVerified(t *testing.T, s *State, owner, project, amount uint64) uint64 {
	ev, err := s.Issue(&tx.IssueTx{Project: project, Amount: amount}, owner, false)
	require.NoError(t, err)
	_, err = s.UpdateStatus(&tx.UpdateStatusTx{Record: ev.Record, Status: "verified"}, owner, false, false)
	require.NoError(t, err)
	advance(s, config.MinHoldingBlocks(s.Height()))
	return ev.Record
}

func TestIssue(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)

	for i := uint64(1); i <= 3; i++ {
		ev, err := s.Issue(&tx.IssueTx{Project: 7, Amount: 100}, owner, false)
		require.NoError(err)
		require.Equal(i, ev.Record)
		require.Equal(owner, ev.Owner)
	}

	r, err := s.GetRecord(1)
	require.NoError(err)
	require.Equal(StatusPending, r.Status)
	require.Equal(uint64(100), r.Amount)
	require.Equal(s.Height(), r.IssueHeight)

	p, err := s.GetProject(7)
	require.NoError(err)
	require.Equal(uint64(300), p.TotalStaked)

	a, err := s.GetAccount(owner)
	require.NoError(err)
	require.Equal(3, a.RecordCount())
	require.Equal(uint64(3), a.Nonce)

	_, err = s.Issue(&tx.IssueTx{Project: 7, Amount: 0}, owner, false)
	require.ErrorIs(err, ErrInvalidAmount)
}

func TestIssueCapacity(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)

	for i := 0; i < config.MaxOwnedRecords(s.Height()); i++ {
		_, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 1}, owner, false)
		require.NoError(err)
	}
	_, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 1}, owner, false)
	require.ErrorIs(err, ErrCapacityExceeded)
}

func TestIssueBatch(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)

	_, err := s.IssueBatch(&tx.IssueBatchTx{}, owner, false)
	require.ErrorIs(err, ErrEmptyBatch)

	over := make([]tx.IssueEntry, tx.MaxBatchIssues+1)
	for i := range over {
		over[i] = tx.IssueEntry{Project: 1, Amount: 1}
	}
	_, err = s.IssueBatch(&tx.IssueBatchTx{Entries: over}, owner, false)
	require.ErrorIs(err, ErrBatchLimitExceeded)

	events, err := s.IssueBatch(&tx.IssueBatchTx{Entries: []tx.IssueEntry{
		{Project: 1, Amount: 10},
		{Project: 2, Amount: 20},
	}}, owner, false)
	require.NoError(err)
	require.Len(events, 2)
	require.Equal(uint64(1), events[0].Record)
	require.Equal(uint64(2), events[1].Record)

	a, err := s.GetAccount(owner)
	require.NoError(err)
	require.Equal(2, a.RecordCount())
	require.Equal(uint64(1), a.Nonce)
}

func TestIssueBatchAtomic(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)

	// a failing entry fails the whole batch on the tentative clone,
	// leaving the parent state untouched
	st := s.Clone()
	_, err := st.IssueBatch(&tx.IssueBatchTx{Entries: []tx.IssueEntry{
		{Project: 1, Amount: 10},
		{Project: 1, Amount: 0},
	}}, owner, false)
	require.ErrorIs(err, ErrInvalidAmount)

	a, err := s.GetAccount(owner)
	require.NoError(err)
	require.Zero(a.RecordCount())
	r, err := s.GetRecord(1)
	require.NoError(err)
	require.Nil(r)
}

func TestUpdateStatus(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)
	other := newTestAccount(t, s, 0)

	ev, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 10}, owner, false)
	require.NoError(err)

	_, err = s.UpdateStatus(&tx.UpdateStatusTx{Record: ev.Record, Status: "verified"}, other, false, false)
	require.ErrorIs(err, ErrUnauthorized)

	_, err = s.UpdateStatus(&tx.UpdateStatusTx{Record: ev.Record, Status: "golden"}, owner, false, false)
	require.ErrorIs(err, ErrInvalidStatus)

	sev, err := s.UpdateStatus(&tx.UpdateStatusTx{Record: ev.Record, Status: "verified"}, owner, false, false)
	require.NoError(err)
	require.Equal("verified", sev.Status)

	r, err := s.GetRecord(ev.Record)
	require.NoError(err)
	require.Equal(StatusVerified, r.Status)

	_, err = s.UpdateStatus(&tx.UpdateStatusTx{Record: 999, Status: "verified"}, owner, false, false)
	require.ErrorIs(err, ErrNotFound)
}

func TestAdminStatusOverride(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	admin := s.Admin()
	owner := newTestAccount(t, s, 0)

	ev, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 10}, owner, false)
	require.NoError(err)

	// the admin override works on records it does not own, even paused
	_, err = s.SetPaused(&tx.PauseTx{Paused: true}, admin, false)
	require.NoError(err)
	_, err = s.UpdateStatus(&tx.UpdateStatusTx{Record: ev.Record, Status: "expired"}, admin, true, false)
	require.NoError(err)

	_, err = s.UpdateStatus(&tx.UpdateStatusTx{Record: ev.Record, Status: "verified"}, owner, true, false)
	require.ErrorIs(err, ErrAdminOnly)
	_, err = s.UpdateStatus(&tx.UpdateStatusTx{Record: ev.Record, Status: "verified"}, owner, false, false)
	require.ErrorIs(err, ErrPaused)
}

func TestTransferEligibility(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)
	to := newTestAccount(t, s, 0)

	ev, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 10}, owner, false)
	require.NoError(err)

	// pending and inside the holding window
	_, err = s.Transfer(&tx.TransferTx{Record: ev.Record, To: to}, owner, false)
	require.ErrorIs(err, ErrNotEligible)

	// window passed but still pending
	advance(s, config.MinHoldingBlocks(s.Height()))
	ok, err := s.EligibleForTransfer(ev.Record)
	require.NoError(err)
	require.False(ok)
	_, err = s.Transfer(&tx.TransferTx{Record: ev.Record, To: to}, owner, false)
	require.ErrorIs(err, ErrNotEligible)

	_, err = s.UpdateStatus(&tx.UpdateStatusTx{Record: ev.Record, Status: "verified"}, owner, false, false)
	require.NoError(err)
	ok, err = s.EligibleForTransfer(ev.Record)
	require.NoError(err)
	require.True(ok)

	tev, err := s.Transfer(&tx.TransferTx{Record: ev.Record, To: to}, owner, false)
	require.NoError(err)
	require.Equal(owner, tev.From)
	require.Equal(to, tev.To)

	got, err := s.OwnerOf(ev.Record)
	require.NoError(err)
	require.Equal(to, got)

	a, err := s.GetAccount(owner)
	require.NoError(err)
	require.False(a.HasRecord(ev.Record))
	b, err := s.GetAccount(to)
	require.NoError(err)
	require.True(b.HasRecord(ev.Record))
}

func TestTransferUnauthorized(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)
	other := newTestAccount(t, s, 0)

	id := issueVerified(t, s, owner, 1, 10)
	_, err := s.Transfer(&tx.TransferTx{Record: id, To: other}, other, false)
	require.ErrorIs(err, ErrUnauthorized)

	// the admin may move any eligible record
	_, err = s.Transfer(&tx.TransferTx{Record: id, To: other}, s.Admin(), false)
	require.NoError(err)
	got, err := s.OwnerOf(id)
	require.NoError(err)
	require.Equal(other, got)
}

func TestRetire(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)

	ev, err := s.Issue(&tx.IssueTx{Project: 9, Amount: 60}, owner, false)
	require.NoError(err)

	_, err = s.Retire(&tx.RetireTx{Record: ev.Record}, owner, false)
	require.ErrorIs(err, ErrNotEligible)

	advance(s, config.MinHoldingBlocks(s.Height()))
	rev, err := s.Retire(&tx.RetireTx{Record: ev.Record}, owner, false)
	require.NoError(err)
	require.Equal(uint64(60), rev.Amount)

	r, err := s.GetRecord(ev.Record)
	require.NoError(err)
	require.Nil(r)
	a, err := s.GetAccount(owner)
	require.NoError(err)
	require.Zero(a.RecordCount())
	p, err := s.GetProject(9)
	require.NoError(err)
	require.Zero(p.TotalStaked)

	_, err = s.Retire(&tx.RetireTx{Record: ev.Record}, owner, false)
	require.ErrorIs(err, ErrNotFound)
}

func TestRetireOwnerOnly(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)
	other := newTestAccount(t, s, 0)

	ev, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 10}, owner, false)
	require.NoError(err)
	advance(s, config.MinHoldingBlocks(s.Height()))

	_, err = s.Retire(&tx.RetireTx{Record: ev.Record}, other, false)
	require.ErrorIs(err, ErrUnauthorized)
}

func TestElapsedDays(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	owner := newTestAccount(t, s, 0)

	ev, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 10}, owner, false)
	require.NoError(err)
	r, err := s.GetRecord(ev.Record)
	require.NoError(err)

	require.Zero(s.ElapsedDays(r))
	advance(s, config.BlocksPerDay()*3+1)
	require.Equal(uint64(3), s.ElapsedDays(r))
}
