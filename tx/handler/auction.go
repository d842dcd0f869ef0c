package handler

import (
	"context"

	"github.com/carbonledger/carbond/state"
	"github.com/carbonledger/carbond/tx"
	"github.com/carbonledger/carbond/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type CreateAuctionTxHandler struct {
	logger cmtlog.Logger
}

func NewCreateAuctionTxHandler(logger cmtlog.Logger) *CreateAuctionTxHandler {
	return &CreateAuctionTxHandler{logger: logger.With("module", "createAuctionTx")}
}

func (h *CreateAuctionTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.CreateAuctionTx)
	_, err1 := st.CreateAuction(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx create auction fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *CreateAuctionTxHandler) NewContext(ctx context.Context) {}

func (h *CreateAuctionTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.CreateAuctionTx)
	event, err := st.CreateAuction(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventAuctionCreated(event))
	return
}

func (h *CreateAuctionTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *CreateAuctionTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

type BidTxHandler struct {
	logger cmtlog.Logger
}

func NewBidTxHandler(logger cmtlog.Logger) *BidTxHandler {
	return &BidTxHandler{logger: logger.With("module", "bidTx")}
}

func (h *BidTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.BidTx)
	_, err1 := st.PlaceBid(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx bid fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *BidTxHandler) NewContext(ctx context.Context) {}

func (h *BidTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.BidTx)
	event, err := st.PlaceBid(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventBid(event))
	return
}

func (h *BidTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *BidTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

type FinalizeAuctionTxHandler struct {
	logger cmtlog.Logger
}

func NewFinalizeAuctionTxHandler(logger cmtlog.Logger) *FinalizeAuctionTxHandler {
	return &FinalizeAuctionTxHandler{logger: logger.With("module", "finalizeAuctionTx")}
}

func (h *FinalizeAuctionTxHandler) Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error) {
	wtx := btx.Tx.(*tx.FinalizeAuctionTx)
	_, err1 := st.FinalizeAuction(wtx, btx.Account, true)
	if err1 != nil {
		h.logger.Info("CheckTx finalize auction fail", "err", err1)
	}
	return checkResult(err1), nil
}

func (h *FinalizeAuctionTxHandler) NewContext(ctx context.Context) {}

func (h *FinalizeAuctionTxHandler) handle(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	wtx := btx.Tx.(*tx.FinalizeAuctionTx)
	event, err := st.FinalizeAuction(wtx, btx.Account, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{}
	res.Events = append(res.Events, types.EncodeEventAuctionSettled(event))
	return
}

func (h *FinalizeAuctionTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *FinalizeAuctionTxHandler) Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
