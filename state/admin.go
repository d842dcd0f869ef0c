package state

import (
	"github.com/carbonledger/carbond/tx"
	carbontypes "github.com/carbonledger/carbond/types"
)

// SetPaused toggles the global write gate. Admin only; setting the current
// value again is a no-op that still succeeds.
func (s *State) SetPaused(wtx *tx.PauseTx, caller uint64, checkOnly bool) (event *carbontypes.EventPause, err error) {
	if !s.isAdmin(caller) {
		return nil, ErrAdminOnly
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	if checkOnly {
		return nil, nil
	}
	s.header.Paused = wtx.Paused
	s.bumpNonce(a)
	return &carbontypes.EventPause{Paused: wtx.Paused}, nil
}

// SetAdmin hands the admin role to another registered account.
func (s *State) SetAdmin(wtx *tx.SetAdminTx, caller uint64, checkOnly bool) (event *carbontypes.EventAdminUpdate, err error) {
	if !s.isAdmin(caller) {
		return nil, ErrAdminOnly
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	next, err := s.GetAccount(wtx.Admin)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, ErrTxAccountNoexists
	}
	if checkOnly {
		return nil, nil
	}
	s.header.Admin = wtx.Admin
	s.bumpNonce(a)
	return &carbontypes.EventAdminUpdate{Admin: wtx.Admin}, nil
}

// SetProject creates or updates project metadata. TotalStaked is owned by
// the issuance path and survives metadata updates untouched.
func (s *State) SetProject(wtx *tx.SetProjectTx, caller uint64, checkOnly bool) (event *carbontypes.EventProjectUpdate, err error) {
	if !s.isAdmin(caller) {
		return nil, ErrAdminOnly
	}
	if wtx.Name == "" {
		return nil, ErrInvalidName
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	p, err := s.getProject(wtx.Project)
	if err != nil {
		return nil, err
	}
	if checkOnly {
		return nil, nil
	}
	if p == nil {
		p = &Project{Id: wtx.Project}
	}
	p.Name = wtx.Name
	p.Location = wtx.Location
	p.Standard = wtx.Standard
	s.touchProject(p)
	s.bumpNonce(a)
	return &carbontypes.EventProjectUpdate{Project: wtx.Project, Name: wtx.Name}, nil
}

// Fund mints native currency into a registered account. Admin only; this is
// the only inflation path besides reward claims.
func (s *State) Fund(wtx *tx.FundTx, caller uint64, checkOnly bool) (event *carbontypes.EventFund, err error) {
	if !s.isAdmin(caller) {
		return nil, ErrAdminOnly
	}
	if wtx.Amount == 0 {
		return nil, ErrInvalidAmount
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	to, err := s.GetAccount(wtx.To)
	if err != nil {
		return nil, err
	}
	if to == nil {
		return nil, ErrTxAccountNoexists
	}
	if checkOnly {
		return nil, nil
	}
	s.mintNative(to, wtx.Amount)
	s.bumpNonce(a)
	return &carbontypes.EventFund{To: wtx.To, Amount: wtx.Amount}, nil
}
