package handler

import (
	"context"

	"github.com/carbonledger/carbond/state"
	"github.com/carbonledger/carbond/tx"
	"github.com/carbonledger/carbond/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type StatusTxHandler struct {
	logger cmtlog.Logger
}

func NewStatusTxHandler(logger cmtlog.Logger) *StatusTxHandler {
	return &StatusTxHandler{logger: logger.With("module", "statusTx")}
}

func (h *StatusTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.UpdateStatusTx)
	_, err1 := st.UpdateStatus(wtx, btx.Account, false, true)
	if err1 != nil {
		h.logger.Info("CheckTx update status fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *StatusTxHandler) NewContext(ctx context.Context) {}

func (h *StatusTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.UpdateStatusTx)
	event, err := st.UpdateStatus(wtx, btx.Account, false, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventStatus(event))
	return
}

func (h *StatusTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *StatusTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

// AdminStatusTxHandler routes the admin override path of status updates. It
// bypasses ownership and the pause gate inside the state call.
type AdminStatusTxHandler struct {
	logger cmtlog.Logger
}

func NewAdminStatusTxHandler(logger cmtlog.Logger) *AdminStatusTxHandler {
	return &AdminStatusTxHandler{logger: logger.With("module", "adminStatusTx")}
}

func (h *AdminStatusTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.AdminStatusTx)
	_, err1 := st.UpdateStatus(&tx.UpdateStatusTx{Record: wtx.Record, Status: wtx.Status}, btx.Account, true, true)
	if err1 != nil {
		h.logger.Info("CheckTx admin status fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *AdminStatusTxHandler) NewContext(ctx context.Context) {}

func (h *AdminStatusTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.AdminStatusTx)
	event, err := st.UpdateStatus(&tx.UpdateStatusTx{Record: wtx.Record, Status: wtx.Status}, btx.Account, true, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventStatus(event))
	return
}

func (h *AdminStatusTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *AdminStatusTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

type TransferTxHandler struct {
	logger cmtlog.Logger
}

func NewTransferTxHandler(logger cmtlog.Logger) *TransferTxHandler {
	return &TransferTxHandler{logger: logger.With("module", "transferTx")}
}

func (h *TransferTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.TransferTx)
	_, err1 := st.Transfer(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx transfer fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *TransferTxHandler) NewContext(ctx context.Context) {}

func (h *TransferTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.TransferTx)
	event, err := st.Transfer(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventTransfer(event))
	return
}

func (h *TransferTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *TransferTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

type RetireTxHandler struct {
	logger cmtlog.Logger
}

func NewRetireTxHandler(logger cmtlog.Logger) *RetireTxHandler {
	return &RetireTxHandler{logger: logger.With("module", "retireTx")}
}

func (h *RetireTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.RetireTx)
	_, err1 := st.Retire(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx retire fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *RetireTxHandler) NewContext(ctx context.Context) {}

func (h *RetireTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.RetireTx)
	event, err := st.Retire(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventRetire(event))
	return
}

func (h *RetireTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *RetireTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
