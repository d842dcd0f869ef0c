package handler

import (
	"context"

	"github.com/carbonledger/carbond/state"
	"github.com/carbonledger/carbond/tx"
	"github.com/carbonledger/carbond/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type ListTxHandler struct {
	logger cmtlog.Logger
}

func NewListTxHandler(logger cmtlog.Logger) *ListTxHandler {
	return &ListTxHandler{logger: logger.With("module", "listTx")}
}

func (h *ListTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.ListTx)
	_, err1 := st.List(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx list fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *ListTxHandler) NewContext(ctx context.Context) {}

func (h *ListTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.ListTx)
	event, err := st.List(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventListed(event))
	return
}

func (h *ListTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *ListTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

type BuyTxHandler struct {
	logger cmtlog.Logger
}

func NewBuyTxHandler(logger cmtlog.Logger) *BuyTxHandler {
	return &BuyTxHandler{logger: logger.With("module", "buyTx")}
}

func (h *BuyTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.BuyTx)
	_, err1 := st.Buy(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx buy fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *BuyTxHandler) NewContext(ctx context.Context) {}

func (h *BuyTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.BuyTx)
	event, err := st.Buy(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventSale(event))
	return
}

func (h *BuyTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *BuyTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

type CancelListingTxHandler struct {
	logger cmtlog.Logger
}

func NewCancelListingTxHandler(logger cmtlog.Logger) *CancelListingTxHandler {
	return &CancelListingTxHandler{logger: logger.With("module", "cancelListingTx")}
}

func (h *CancelListingTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.CancelListingTx)
	_, err1 := st.CancelListing(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx cancel listing fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *CancelListingTxHandler) NewContext(ctx context.Context) {}

func (h *CancelListingTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.CancelListingTx)
	event, err := st.CancelListing(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventCancelListing(event))
	return
}

func (h *CancelListingTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *CancelListingTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
