package handler

import (
	"context"

	"github.com/carbonledger/carbond/state"
	"github.com/carbonledger/carbond/tx"
	abcitypes "github.com/cometbft/cometbft/abci/types"
)

type TxHandler interface {
	Check(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ResponseCheckTx, err error)
	NewContext(ctx context.Context)
	Prepare(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error)
	Process(ctx context.Context, st *state.State, btx *tx.CarbonTx) (res *abcitypes.ExecTxResult, err error)
}

func checkResult(err error) *abcitypes.ResponseCheckTx {
	res := &abcitypes.ResponseCheckTx{Code: 0}
	if err != nil {
		res.Code = 1
		res.Log = err.Error()
	}
	return res
}
