package handler

import (
	"context"

	"github.com/carbonledger/carbond/state"
	"github.com/carbonledger/carbond/tx"
	"github.com/carbonledger/carbond/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type IssueTxHandler struct {
	logger cmtlog.Logger
}

func NewIssueTxHandler(logger cmtlog.Logger) *IssueTxHandler {
	return &IssueTxHandler{logger: logger.With("module", "issueTx")}
}

func (h *IssueTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.IssueTx)
	_, err1 := st.Issue(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx issue fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *IssueTxHandler) NewContext(ctx context.Context) {}

func (h *IssueTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.IssueTx)
	event, err := st.Issue(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventIssue(event))
	return
}

func (h *IssueTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *IssueTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

type IssueBatchTxHandler struct {
	logger cmtlog.Logger
}

func NewIssueBatchTxHandler(logger cmtlog.Logger) *IssueBatchTxHandler {
	return &IssueBatchTxHandler{logger: logger.With("module", "issueBatchTx")}
}

func (h *IssueBatchTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.IssueBatchTx)
	_, err1 := st.IssueBatch(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx issue batch fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *IssueBatchTxHandler) NewContext(ctx context.Context) {}

func (h *IssueBatchTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.IssueBatchTx)
	events, err := st.IssueBatch(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	for _, event := range events {
		res.Events = append(res.Events, types.EncodeEventIssue(event))
	}
	return
}

func (h *IssueBatchTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *IssueBatchTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
