package app

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/carbonledger/carbond/config"
	"github.com/carbonledger/carbond/state"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

func (app *CarbonApp) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	path := req.Path
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	q, ok := app.queriers[path]
	if !ok {
		res = &abcitypes.ResponseQuery{}
		res.Code = 404
		return
	}
	res, err = q.Query(ctx, req)
	return
}

type Querier interface {
	Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error)
}

func dataToUint(dat []byte) uint64 {
	var v uint64
	for _, b := range dat {
		v <<= 8
		v |= uint64(b)
	}
	return v
}

type AccountQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewAccountQuerier(db *state.StateDB, logger cmtlog.Logger) *AccountQuerier {
	return &AccountQuerier{db: db, logger: logger}
}

func (q *AccountQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	var a *state.Account
	var height uint64
	if len(req.Data) == 20 {
		a, height, _ = q.db.GetAccountByAddress(req.Data)
	} else if len(req.Data) <= 8 {
		a, height, _ = q.db.GetAccountByIndex(dataToUint(req.Data))
	}
	if a != nil {
		res.Value, _ = json.Marshal(a)
		res.Height = int64(height)
	} else {
		res.Code = 1
	}
	return
}

type RecordQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewRecordQuerier(db *state.StateDB, logger cmtlog.Logger) *RecordQuerier {
	return &RecordQuerier{db: db, logger: logger}
}

type recordView struct {
	*state.Record
	Status        string `json:"status"`
	ElapsedBlocks uint64 `json:"elapsedBlocks"`
	ElapsedDays   uint64 `json:"elapsedDays"`
}

func (q *RecordQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	r, height, _ := q.db.GetRecord(dataToUint(req.Data))
	if r == nil {
		res.Code = 1
		return
	}
	var elapsed uint64
	if height > r.IssueHeight {
		elapsed = height - r.IssueHeight
	}
	res.Value, _ = json.Marshal(&recordView{
		Record:        r,
		Status:        r.Status.String(),
		ElapsedBlocks: elapsed,
		ElapsedDays:   elapsed / config.BlocksPerDay(),
	})
	res.Height = int64(height)
	return
}

type ProjectQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewProjectQuerier(db *state.StateDB, logger cmtlog.Logger) *ProjectQuerier {
	return &ProjectQuerier{db: db, logger: logger}
}

func (q *ProjectQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	p, height, _ := q.db.GetProject(dataToUint(req.Data))
	if p == nil {
		res.Code = 1
		return
	}
	res.Value, _ = json.Marshal(p)
	res.Height = int64(height)
	return
}

type ListingQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewListingQuerier(db *state.StateDB, logger cmtlog.Logger) *ListingQuerier {
	return &ListingQuerier{db: db, logger: logger}
}

func (q *ListingQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	l, height, _ := q.db.GetListing(dataToUint(req.Data))
	if l == nil {
		res.Code = 1
		return
	}
	res.Value, _ = json.Marshal(l)
	res.Height = int64(height)
	return
}

type AuctionQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewAuctionQuerier(db *state.StateDB, logger cmtlog.Logger) *AuctionQuerier {
	return &AuctionQuerier{db: db, logger: logger}
}

func (q *AuctionQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	a, height, _ := q.db.GetAuction(dataToUint(req.Data))
	if a == nil {
		res.Code = 1
		return
	}
	res.Value, _ = json.Marshal(a)
	res.Height = int64(height)
	return
}

type VerificationQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewVerificationQuerier(db *state.StateDB, logger cmtlog.Logger) *VerificationQuerier {
	return &VerificationQuerier{db: db, logger: logger}
}

type verificationView struct {
	*state.VerificationEntry
	ImpactPassed bool `json:"impactPassed"`
}

func (q *VerificationQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	v, height, _ := q.db.GetVerification(dataToUint(req.Data))
	if v == nil {
		res.Code = 1
		return
	}
	res.Value, _ = json.Marshal(&verificationView{
		VerificationEntry: v,
		ImpactPassed:      v.Score >= state.ImpactThreshold,
	})
	res.Height = int64(height)
	return
}

type OracleQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewOracleQuerier(db *state.StateDB, logger cmtlog.Logger) *OracleQuerier {
	return &OracleQuerier{db: db, logger: logger}
}

// Query data is "<project>:<dataType>" as text.
func (q *OracleQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	project, dataType, ok := strings.Cut(string(req.Data), ":")
	if !ok || dataType == "" {
		res.Code = 1
		res.Log = "want <project>:<dataType>"
		return
	}
	id, err := strconv.ParseUint(project, 10, 64)
	if err != nil {
		res.Code = 1
		res.Log = err.Error()
		return res, nil
	}
	o, height, _ := q.db.GetOraclePoint(id, dataType)
	if o == nil {
		res.Code = 1
		return
	}
	res.Value, _ = json.Marshal(o)
	res.Height = int64(height)
	return
}

type RewardQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewRewardQuerier(db *state.StateDB, logger cmtlog.Logger) *RewardQuerier {
	return &RewardQuerier{db: db, logger: logger}
}

type rewardView struct {
	Account       uint64 `json:"account"`
	Pending       uint64 `json:"pending"`
	RewardBalance uint64 `json:"rewardBalance"`
	TotalEarned   uint64 `json:"totalEarned"`
	LoyaltyPoints uint64 `json:"loyaltyPoints"`
}

func (q *RewardQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	idx := dataToUint(req.Data)
	a, height, _ := q.db.GetAccountByIndex(idx)
	if a == nil {
		res.Code = 1
		return
	}
	var pending uint64
	for _, rec := range a.Records {
		p, _, err := q.db.PendingReward(rec)
		if err != nil {
			res.Code = 1
			res.Log = err.Error()
			return res, nil
		}
		pending += p
	}
	res.Value, _ = json.Marshal(&rewardView{
		Account:       idx,
		Pending:       pending,
		RewardBalance: a.RewardBalance,
		TotalEarned:   a.TotalEarned,
		LoyaltyPoints: a.LoyaltyPoints,
	})
	res.Height = int64(height)
	return
}

type ParamsQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewParamsQuerier(db *state.StateDB, logger cmtlog.Logger) *ParamsQuerier {
	return &ParamsQuerier{db: db, logger: logger}
}

type paramsView struct {
	Height                 uint64 `json:"height"`
	Admin                  uint64 `json:"admin"`
	Paused                 bool   `json:"paused"`
	NextRecordId           uint64 `json:"nextRecordId"`
	NextAuctionId          uint64 `json:"nextAuctionId"`
	MaxOwnedRecords        int    `json:"maxOwnedRecords"`
	MinHoldingBlocks       uint64 `json:"minHoldingBlocks"`
	ClaimCooldownBlocks    uint64 `json:"claimCooldownBlocks"`
	LoyaltyMilestoneBlocks uint64 `json:"loyaltyMilestoneBlocks"`
	AuctionDurationBlocks  uint64 `json:"auctionDurationBlocks"`
	RewardRateDivisor      uint64 `json:"rewardRateDivisor"`
}

func (q *ParamsQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	header := q.db.Header()
	h := header.Height
	res.Value, _ = json.Marshal(&paramsView{
		Height:                 h,
		Admin:                  header.Admin,
		Paused:                 header.Paused,
		NextRecordId:           header.NextRecordId,
		NextAuctionId:          header.NextAuctionId,
		MaxOwnedRecords:        config.MaxOwnedRecords(h),
		MinHoldingBlocks:       config.MinHoldingBlocks(h),
		ClaimCooldownBlocks:    config.ClaimCooldownBlocks(h),
		LoyaltyMilestoneBlocks: config.LoyaltyMilestoneBlocks(h),
		AuctionDurationBlocks:  config.AuctionDurationBlocks(h),
		RewardRateDivisor:      config.RewardRateDivisor(h),
	})
	res.Height = int64(h)
	return
}
