package handler

import (
	"context"

	"github.com/carbonledger/carbond/state"
	"github.com/carbonledger/carbond/tx"
	"github.com/carbonledger/carbond/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type RegisterTxHandler struct {
	logger cmtlog.Logger
}

func NewRegisterTxHandler(logger cmtlog.Logger) *RegisterTxHandler {
	return &RegisterTxHandler{logger: logger.With("module", "registerTx")}
}

func (h *RegisterTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.RegisterTx)
	_, err1 := st.Register(wtx, true)
	if err1 != nil {
		h.logger.Info("CheckTx register fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *RegisterTxHandler) NewContext(ctx context.Context) {}

func (h *RegisterTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.RegisterTx)
	event, err := st.Register(wtx, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventRegister(event))
	return
}

func (h *RegisterTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *RegisterTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
