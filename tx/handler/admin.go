package handler

import (
	"context"

	"github.com/carbonledger/carbond/state"
	"github.com/carbonledger/carbond/tx"
	"github.com/carbonledger/carbond/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type PauseTxHandler struct {
	logger cmtlog.Logger
}

func NewPauseTxHandler(logger cmtlog.Logger) *PauseTxHandler {
	return &PauseTxHandler{logger: logger.With("module", "pauseTx")}
}

func (h *PauseTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.PauseTx)
	_, err1 := st.SetPaused(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx pause fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *PauseTxHandler) NewContext(ctx context.Context) {}

func (h *PauseTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.PauseTx)
	event, err := st.SetPaused(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventPause(event))
	return
}

func (h *PauseTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *PauseTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

type SetAdminTxHandler struct {
	logger cmtlog.Logger
}

func NewSetAdminTxHandler(logger cmtlog.Logger) *SetAdminTxHandler {
	return &SetAdminTxHandler{logger: logger.With("module", "setAdminTx")}
}

func (h *SetAdminTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.SetAdminTx)
	_, err1 := st.SetAdmin(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx set admin fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *SetAdminTxHandler) NewContext(ctx context.Context) {}

func (h *SetAdminTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.SetAdminTx)
	event, err := st.SetAdmin(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventAdminUpdate(event))
	return
}

func (h *SetAdminTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *SetAdminTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

type SetProjectTxHandler struct {
	logger cmtlog.Logger
}

func NewSetProjectTxHandler(logger cmtlog.Logger) *SetProjectTxHandler {
	return &SetProjectTxHandler{logger: logger.With("module", "setProjectTx")}
}

func (h *SetProjectTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.SetProjectTx)
	_, err1 := st.SetProject(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx set project fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *SetProjectTxHandler) NewContext(ctx context.Context) {}

func (h *SetProjectTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.SetProjectTx)
	event, err := st.SetProject(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventProjectUpdate(event))
	return
}

func (h *SetProjectTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *SetProjectTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

type FundTxHandler struct {
	logger cmtlog.Logger
}

func NewFundTxHandler(logger cmtlog.Logger) *FundTxHandler {
	return &FundTxHandler{logger: logger.With("module", "fundTx")}
}

func (h *FundTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.FundTx)
	_, err1 := st.Fund(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx fund fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *FundTxHandler) NewContext(ctx context.Context) {}

func (h *FundTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.FundTx)
	event, err := st.Fund(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventFund(event))
	return
}

func (h *FundTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *FundTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
