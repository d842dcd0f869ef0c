package state

import (
	"encoding/json"
	"fmt"

	"github.com/carbonledger/carbond/tx"
	carbontypes "github.com/carbonledger/carbond/types"
)

// ImpactThreshold is the minimum weighted score a project needs before its
// impact can be verified.
const ImpactThreshold = 70

func verificationScore(satellite, iot, audited bool) uint64 {
	var score uint64
	if satellite {
		score += 30
	}
	if iot {
		score += 30
	}
	if audited {
		score += 40
	}
	return score
}

func (s *State) getVerification(project uint64) (*VerificationEntry, error) {
	if v, ok := s.verifs[project]; ok {
		return v, nil
	}
	val, err := s.db.Get([]byte(fmt.Sprintf(KeyVerification, project)))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	v := new(VerificationEntry)
	if err = json.Unmarshal(val, v); err != nil {
		return nil, err
	}
	s.verifs[project] = v
	return v, nil
}

func (s *State) GetVerification(project uint64) (*VerificationEntry, error) {
	v, err := s.getVerification(project)
	if err != nil || v == nil {
		return nil, err
	}
	return v.Clone(), nil
}

func (s *State) touchVerification(v *VerificationEntry) {
	s.verifs[v.Project] = v
	s.modifiedVerifs[v.Project] = true
}

func oracleKey(project uint64, dataType string) string {
	return fmt.Sprintf(KeyOraclePoint, project, dataType)
}

func (s *State) GetOraclePoint(project uint64, dataType string) (*OraclePoint, error) {
	key := oracleKey(project, dataType)
	if o, ok := s.oracles[key]; ok {
		n := *o
		return &n, nil
	}
	val, err := s.db.Get([]byte(key))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	o := new(OraclePoint)
	if err = json.Unmarshal(val, o); err != nil {
		return nil, err
	}
	return o, nil
}

// SubmitVerification records the three environmental checks for a project
// and derives its weighted score. Admin only; later submissions replace
// earlier ones wholesale.
func (s *State) SubmitVerification(wtx *tx.VerificationTx, caller uint64, checkOnly bool) (event *carbontypes.EventVerification, err error) {
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
	v := &VerificationEntry{
		Project:       wtx.Project,
		Satellite:     wtx.Satellite,
		Iot:           wtx.Iot,
		Audited:       wtx.Audited,
		Score:         verificationScore(wtx.Satellite, wtx.Iot, wtx.Audited),
		UpdatedHeight: s.header.Height,
		Source:        wtx.Source,
	}
	s.touchVerification(v)
	s.bumpNonce(a)
	return &carbontypes.EventVerification{Project: wtx.Project, Score: v.Score, Source: wtx.Source}, nil
}

// SubmitOraclePoint stores an external data point, overwriting any prior
// point for the same (project, data type) pair.
func (s *State) SubmitOraclePoint(wtx *tx.OracleTx, caller uint64, checkOnly bool) (event *carbontypes.EventOraclePoint, err error) {
	if !s.isAdmin(caller) {
		return nil, ErrAdminOnly
	}
	if wtx.DataType == "" {
		return nil, ErrInvalidName
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	if checkOnly {
		return nil, nil
	}
	o := &OraclePoint{
		Project:  wtx.Project,
		DataType: wtx.DataType,
		Value:    wtx.Value,
		Height:   s.header.Height,
		Verified: true,
	}
	s.oracles[oracleKey(o.Project, o.DataType)] = o
	s.modifiedOracles[oracleKey(o.Project, o.DataType)] = true
	s.bumpNonce(a)
	return &carbontypes.EventOraclePoint{Project: wtx.Project, DataType: wtx.DataType, Value: wtx.Value}, nil
}

// VerifyProjectImpact checks the stored verification entry against the
// impact threshold. It records nothing beyond the event; the entry itself
// stays as submitted.
func (s *State) VerifyProjectImpact(wtx *tx.VerifyImpactTx, caller uint64, checkOnly bool) (event *carbontypes.EventImpactVerified, err error) {
	if !s.isAdmin(caller) {
		return nil, ErrAdminOnly
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	v, err := s.getVerification(wtx.Project)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNotFound
	}
	if v.Score < ImpactThreshold {
		return nil, ErrInvalidVerification
	}
	if checkOnly {
		return nil, nil
	}
	s.bumpNonce(a)
	return &carbontypes.EventImpactVerified{Project: wtx.Project, Score: v.Score}, nil
}
