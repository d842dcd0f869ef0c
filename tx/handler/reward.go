package handler

import (
	"context"

	"github.com/carbonledger/carbond/state"
	"github.com/carbonledger/carbond/tx"
	"github.com/carbonledger/carbond/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type ClaimTxHandler struct {
	logger cmtlog.Logger
}

func NewClaimTxHandler(logger cmtlog.Logger) *ClaimTxHandler {
	return &ClaimTxHandler{logger: logger.With("module", "claimTx")}
}

func (h *ClaimTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.ClaimTx)
	_, err1 := st.Claim(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx claim fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *ClaimTxHandler) NewContext(ctx context.Context) {}

func (h *ClaimTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.ClaimTx)
	event, err := st.Claim(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventClaim(event))
	return
}

func (h *ClaimTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *ClaimTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

type ReferralTxHandler struct {
	logger cmtlog.Logger
}

func NewReferralTxHandler(logger cmtlog.Logger) *ReferralTxHandler {
	return &ReferralTxHandler{logger: logger.With("module", "referralTx")}
}

func (h *ReferralTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.ReferralTx)
	_, err1 := st.AddReferral(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx referral fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *ReferralTxHandler) NewContext(ctx context.Context) {}

func (h *ReferralTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.ReferralTx)
	event, err := st.AddReferral(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventReferral(event))
	return
}

func (h *ReferralTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *ReferralTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
