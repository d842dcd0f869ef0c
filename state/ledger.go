package state

import (
	"encoding/json"
	"fmt"

	"github.com/carbonledger/carbond/config"
	"github.com/carbonledger/carbond/tx"
	carbontypes "github.com/carbonledger/carbond/types"
)

func (s *State) getRecord(id uint64) (*Record, error) {
	if s.deletedRecords[id] {
		return nil, nil
	}
	if r, ok := s.records[id]; ok {
		return r, nil
	}
	val, err := s.db.Get([]byte(fmt.Sprintf(KeyRecordBody, id)))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	r := new(Record)
	if err = json.Unmarshal(val, r); err != nil {
		return nil, err
	}
	s.records[id] = r
	return r, nil
}

// GetRecord returns a copy of the record, or nil if it was never issued or
// has been retired.
func (s *State) GetRecord(id uint64) (*Record, error) {
	r, err := s.getRecord(id)
	if err != nil || r == nil {
		return nil, err
	}
	return r.Clone(), nil
}

// OwnerOf is the non-fungible registry lookup. Zero means no such token.
func (s *State) OwnerOf(id uint64) (uint64, error) {
	r, err := s.getRecord(id)
	if err != nil || r == nil {
		return 0, err
	}
	return r.Owner, nil
}

func (s *State) touchRecord(r *Record) {
	s.records[r.Id] = r
	s.modifiedRecords[r.Id] = true
}

func (s *State) getProject(id uint64) (*Project, error) {
	if p, ok := s.projects[id]; ok {
		return p, nil
	}
	val, err := s.db.Get([]byte(fmt.Sprintf(KeyProjectBody, id)))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	p := new(Project)
	if err = json.Unmarshal(val, p); err != nil {
		return nil, err
	}
	s.projects[id] = p
	return p, nil
}

func (s *State) GetProject(id uint64) (*Project, error) {
	p, err := s.getProject(id)
	if err != nil || p == nil {
		return nil, err
	}
	return p.Clone(), nil
}

func (s *State) touchProject(p *Project) {
	s.projects[p.Id] = p
	s.modifiedProjects[p.Id] = true
}

// ensureProject creates an empty aggregate on first issue when metadata was
// never set.
func (s *State) ensureProject(id uint64) (*Project, error) {
	p, err := s.getProject(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &Project{Id: id}
	}
	return p, nil
}

func (s *State) elapsed(r *Record) uint64 {
	if s.header.Height < r.IssueHeight {
		return 0
	}
	return s.header.Height - r.IssueHeight
}

// ElapsedDays floor-divides a record's age into day-equivalents.
func (s *State) ElapsedDays(r *Record) uint64 {
	return s.elapsed(r) / config.BlocksPerDay()
}

func (s *State) transferEligible(r *Record) bool {
	if s.elapsed(r) < config.MinHoldingBlocks(s.header.Height) {
		return false
	}
	return r.Status == StatusVerified || r.Status == StatusCompleted
}

// EligibleForTransfer is a pure predicate; an unknown record is simply not
// eligible.
func (s *State) EligibleForTransfer(id uint64) (bool, error) {
	r, err := s.getRecord(id)
	if err != nil || r == nil {
		return false, err
	}
	return s.transferEligible(r), nil
}

func (s *State) issueOne(caller *Account, project, amount uint64) (*Record, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if caller.RecordCount() >= config.MaxOwnedRecords(s.header.Height) {
		return nil, ErrCapacityExceeded
	}
	id := s.header.NextRecordId
	s.header.NextRecordId += 1
	r := &Record{
		Id:          id,
		Owner:       caller.Index,
		IssueHeight: s.header.Height,
		Project:     project,
		Status:      StatusPending,
		Amount:      amount,
	}
	s.touchRecord(r)
	caller.AddRecord(id)
	p, err := s.ensureProject(project)
	if err != nil {
		return nil, err
	}
	p.TotalStaked += amount
	s.touchProject(p)
	return r, nil
}

// Issue mints one record to the caller.
func (s *State) Issue(wtx *tx.IssueTx, caller uint64, checkOnly bool) (event *carbontypes.EventIssue, err error) {
	if s.header.Paused {
		return nil, ErrPaused
	}
	if wtx.Amount == 0 {
		return nil, ErrInvalidAmount
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	if a.RecordCount() >= config.MaxOwnedRecords(s.header.Height) {
		return nil, ErrCapacityExceeded
	}
	if checkOnly {
		return nil, nil
	}
	r, err := s.issueOne(a, wtx.Project, wtx.Amount)
	if err != nil {
		return nil, err
	}
	s.bumpNonce(a)
	event = &carbontypes.EventIssue{
		Record:  r.Id,
		Owner:   a.Index,
		Project: r.Project,
		Amount:  r.Amount,
		Height:  r.IssueHeight,
	}
	return
}

// IssueBatch issues up to MaxBatchIssues records in input order. Any failing
// entry fails the whole batch.
func (s *State) IssueBatch(wtx *tx.IssueBatchTx, caller uint64, checkOnly bool) (events []*carbontypes.EventIssue, err error) {
	if s.header.Paused {
		return nil, ErrPaused
	}
	if len(wtx.Entries) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(wtx.Entries) > tx.MaxBatchIssues {
		return nil, ErrBatchLimitExceeded
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	if checkOnly {
		held := a.RecordCount()
		for _, e := range wtx.Entries {
			if e.Amount == 0 {
				return nil, ErrInvalidAmount
			}
			if held >= config.MaxOwnedRecords(s.header.Height) {
				return nil, ErrCapacityExceeded
			}
			held += 1
		}
		return nil, nil
	}
	for _, e := range wtx.Entries {
		r, err1 := s.issueOne(a, e.Project, e.Amount)
		if err1 != nil {
			return nil, err1
		}
		events = append(events, &carbontypes.EventIssue{
			Record:  r.Id,
			Owner:   a.Index,
			Project: r.Project,
			Amount:  r.Amount,
			Height:  r.IssueHeight,
		})
	}
	s.bumpNonce(a)
	return
}

// UpdateStatus moves a record through the status machine. With admin set the
// caller must be the administrator and the pause flag is bypassed.
func (s *State) UpdateStatus(wtx *tx.UpdateStatusTx, caller uint64, admin bool, checkOnly bool) (event *carbontypes.EventStatus, err error) {
	status, err := ParseStatus(wtx.Status)
	if err != nil {
		return nil, err
	}
	r, err := s.getRecord(wtx.Record)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	if admin {
		if !s.isAdmin(caller) {
			return nil, ErrAdminOnly
		}
	} else {
		if s.header.Paused {
			return nil, ErrPaused
		}
		if r.Owner != caller {
			return nil, ErrUnauthorized
		}
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	if checkOnly {
		return nil, nil
	}
	r.Status = status
	s.touchRecord(r)
	s.bumpNonce(a)
	event = &carbontypes.EventStatus{
		Record: r.Id,
		Status: status.String(),
		Caller: caller,
	}
	return
}

// moveRecord performs the registry-level custody change and keeps both
// ownership indexes consistent. Capacity is not enforced for the escrow
// account.
func (s *State) moveRecord(r *Record, from, to *Account) error {
	if r.Owner != from.Index {
		return ErrUnauthorized
	}
	if to.Index != EscrowAccountIdx &&
		to.RecordCount() >= config.MaxOwnedRecords(s.header.Height) {
		return ErrCapacityExceeded
	}
	if !from.RemoveRecord(r.Id) {
		return ErrNotFound
	}
	to.AddRecord(r.Id)
	r.Owner = to.Index
	s.touchRecord(r)
	s.touchAccount(from, ModifiedFlagMod)
	s.touchAccount(to, ModifiedFlagMod)
	return nil
}

// Transfer changes a record's custody. The caller must be the owner or the
// administrator, and the record must have passed the eligibility window in a
// transferable status.
func (s *State) Transfer(wtx *tx.TransferTx, caller uint64, checkOnly bool) (event *carbontypes.EventTransfer, err error) {
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
	if r.Owner != caller && !s.isAdmin(caller) {
		return nil, ErrUnauthorized
	}
	if !s.transferEligible(r) {
		return nil, ErrNotEligible
	}
	from, err := s.GetAccount(r.Owner)
	if err != nil {
		return nil, err
	}
	to, err := s.GetAccount(wtx.To)
	if err != nil {
		return nil, ErrNotFound
	}
	if to.Index != EscrowAccountIdx &&
		to.RecordCount() >= config.MaxOwnedRecords(s.header.Height) {
		return nil, ErrCapacityExceeded
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	if checkOnly {
		return nil, nil
	}
	if err = s.moveRecord(r, from, to); err != nil {
		return nil, err
	}
	s.bumpNonce(a)
	event = &carbontypes.EventTransfer{
		Record: r.Id,
		From:   from.Index,
		To:     to.Index,
	}
	return
}

// Retire burns a record after the eligibility window: it leaves the ledger,
// the owner's index and the project aggregate.
func (s *State) Retire(wtx *tx.RetireTx, caller uint64, checkOnly bool) (event *carbontypes.EventRetire, err error) {
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
	if s.elapsed(r) < config.MinHoldingBlocks(s.header.Height) {
		return nil, ErrNotEligible
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	if checkOnly {
		return nil, nil
	}
	if !a.RemoveRecord(r.Id) {
		return nil, ErrNotFound
	}
	p, err := s.ensureProject(r.Project)
	if err != nil {
		return nil, err
	}
	if p.TotalStaked > r.Amount {
		p.TotalStaked -= r.Amount
	} else {
		p.TotalStaked = 0
	}
	s.touchProject(p)
	delete(s.records, r.Id)
	delete(s.modifiedRecords, r.Id)
	s.deletedRecords[r.Id] = true
	s.bumpNonce(a)
	event = &carbontypes.EventRetire{
		Record:  wtx.Record,
		Owner:   caller,
		Project: r.Project,
		Amount:  r.Amount,
	}
	return
}
