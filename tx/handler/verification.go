package handler

import (
	"context"

	"github.com/carbonledger/carbond/state"
	"github.com/carbonledger/carbond/tx"
	"github.com/carbonledger/carbond/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type VerificationTxHandler struct {
	logger cmtlog.Logger
}

func NewVerificationTxHandler(logger cmtlog.Logger) *VerificationTxHandler {
	return &VerificationTxHandler{logger: logger.With("module", "verificationTx")}
}

func (h *VerificationTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.VerificationTx)
	_, err1 := st.SubmitVerification(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx verification fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *VerificationTxHandler) NewContext(ctx context.Context) {}

func (h *VerificationTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.VerificationTx)
	event, err := st.SubmitVerification(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventVerification(event))
	return
}

func (h *VerificationTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *VerificationTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

type OracleTxHandler struct {
	logger cmtlog.Logger
}

func NewOracleTxHandler(logger cmtlog.Logger) *OracleTxHandler {
	return &OracleTxHandler{logger: logger.With("module", "oracleTx")}
}

func (h *OracleTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.OracleTx)
	_, err1 := st.SubmitOraclePoint(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx oracle fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *OracleTxHandler) NewContext(ctx context.Context) {}

func (h *OracleTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.OracleTx)
	event, err := st.SubmitOraclePoint(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventOraclePoint(event))
	return
}

func (h *OracleTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *OracleTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

type VerifyImpactTxHandler struct {
	logger cmtlog.Logger
}

func NewVerifyImpactTxHandler(logger cmtlog.Logger) *VerifyImpactTxHandler {
	return &VerifyImpactTxHandler{logger: logger.With("module", "verifyImpactTx")}
}

func (h *VerifyImpactTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.VerifyImpactTx)
	_, err1 := st.VerifyProjectImpact(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx verify impact fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *VerifyImpactTxHandler) NewContext(ctx context.Context) {}

func (h *VerifyImpactTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.VerifyImpactTx)
	event, err := st.VerifyProjectImpact(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventImpactVerified(event))
	return
}

func (h *VerifyImpactTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *VerifyImpactTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
