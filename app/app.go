package app

import (
	"context"

	"github.com/carbonledger/carbond/config"
	"github.com/carbonledger/carbond/state"
	"github.com/carbonledger/carbond/tx"
	"github.com/carbonledger/carbond/tx/handler"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cometbft/cometbft/store"
	"github.com/ethereum/go-ethereum/common"
)

type finalizeBlock struct {
	Height uint64
	Hash   common.Hash
}

func (b *finalizeBlock) Set(blk *abcitypes.RequestFinalizeBlock) {
	b.Height = uint64(blk.Height)
	b.Hash = common.BytesToHash(blk.Hash)
}

var _ abcitypes.Application = &CarbonApp{}

type CarbonApp struct {
	cfg    *config.CarbonAppConfig
	logger cmtlog.Logger

	db       *state.StateDB
	lastBlk  finalizeBlock
	txHdlrs  map[tx.CarbonTxType]handler.TxHandler
	queriers map[string]Querier

	st *state.State
}

func NewCarbonApp(cfg *config.CarbonAppConfig, logger cmtlog.Logger) (app *CarbonApp, err error) {
	logger = logger.With("module", "app")

	dir := cfg.Home + "/data"
	db, err := state.NewStateDB(dir, logger)
	if err != nil {
		return nil, err
	}

	app = &CarbonApp{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		txHdlrs:  make(map[tx.CarbonTxType]handler.TxHandler),
		queriers: make(map[string]Querier),
	}
	app.registerTxHandler()
	app.registerQuerier()
	return
}

func (app *CarbonApp) Start(bs *store.BlockStore) {
	height := app.db.Header().Height
	if height > 0 {
		blk := bs.LoadBlock(int64(height))
		if blk == nil {
			panic("unexpected BlockStore")
		}
		app.lastBlk.Height = height
		app.lastBlk.Hash = common.BytesToHash(blk.Hash())
	}
}

func (app *CarbonApp) Stop() {
	err := app.db.Close()
	if err != nil {
		app.logger.Error("close db fail", "err", err)
	}
	app.logger.Info("carbon app stopped")
}

func (app *CarbonApp) DB() *state.StateDB {
	return app.db
}

func (app *CarbonApp) registerTxHandler() {
	app.txHdlrs = map[tx.CarbonTxType]handler.TxHandler{
		tx.CarbonTxTypeRegister:        handler.NewRegisterTxHandler(app.logger),
		tx.CarbonTxTypeIssue:           handler.NewIssueTxHandler(app.logger),
		tx.CarbonTxTypeIssueBatch:      handler.NewIssueBatchTxHandler(app.logger),
		tx.CarbonTxTypeUpdateStatus:    handler.NewStatusTxHandler(app.logger),
		tx.CarbonTxTypeTransfer:        handler.NewTransferTxHandler(app.logger),
		tx.CarbonTxTypeRetire:          handler.NewRetireTxHandler(app.logger),
		tx.CarbonTxTypeClaim:           handler.NewClaimTxHandler(app.logger),
		tx.CarbonTxTypeReferral:        handler.NewReferralTxHandler(app.logger),
		tx.CarbonTxTypeList:            handler.NewListTxHandler(app.logger),
		tx.CarbonTxTypeBuy:             handler.NewBuyTxHandler(app.logger),
		tx.CarbonTxTypeCancelListing:   handler.NewCancelListingTxHandler(app.logger),
		tx.CarbonTxTypeCreateAuction:   handler.NewCreateAuctionTxHandler(app.logger),
		tx.CarbonTxTypeBid:             handler.NewBidTxHandler(app.logger),
		tx.CarbonTxTypeFinalizeAuction: handler.NewFinalizeAuctionTxHandler(app.logger),
		tx.CarbonTxTypePause:           handler.NewPauseTxHandler(app.logger),
		tx.CarbonTxTypeSetAdmin:        handler.NewSetAdminTxHandler(app.logger),
		tx.CarbonTxTypeSetProject:      handler.NewSetProjectTxHandler(app.logger),
		tx.CarbonTxTypeFund:            handler.NewFundTxHandler(app.logger),
		tx.CarbonTxTypeAdminStatus:     handler.NewAdminStatusTxHandler(app.logger),
		tx.CarbonTxTypeVerification:    handler.NewVerificationTxHandler(app.logger),
		tx.CarbonTxTypeOracle:          handler.NewOracleTxHandler(app.logger),
		tx.CarbonTxTypeVerifyImpact:    handler.NewVerifyImpactTxHandler(app.logger),
	}
}

func (app *CarbonApp) registerQuerier() {
	app.queriers["/accounts/"] = NewAccountQuerier(app.db, app.logger)
	app.queriers["/records/"] = NewRecordQuerier(app.db, app.logger)
	app.queriers["/projects/"] = NewProjectQuerier(app.db, app.logger)
	app.queriers["/listings/"] = NewListingQuerier(app.db, app.logger)
	app.queriers["/auctions/"] = NewAuctionQuerier(app.db, app.logger)
	app.queriers["/verifications/"] = NewVerificationQuerier(app.db, app.logger)
	app.queriers["/oracles/"] = NewOracleQuerier(app.db, app.logger)
	app.queriers["/rewards/"] = NewRewardQuerier(app.db, app.logger)
	app.queriers["/params/"] = NewParamsQuerier(app.db, app.logger)
}

func (app *CarbonApp) InitChain(_ context.Context, chain *abcitypes.RequestInitChain) (res *abcitypes.ResponseInitChain, err error) {
	st := app.db.NewState()
	pubkeys := make([][]byte, 0, len(chain.Validators))
	for _, v := range chain.Validators {
		pubkeys = append(pubkeys, v.PubKey.GetEd25519())
	}
	if err = st.InitLedger(chain.ChainId, pubkeys); err != nil {
		app.logger.Error("InitChain seed ledger fail", "err", err)
		return nil, err
	}
	_, err = st.Update()
	if err != nil {
		app.logger.Error("InitChain update state fail", "err", err)
		return nil, err
	}
	h, err := app.db.SetState(st)
	if err != nil {
		app.logger.Error("InitChain apply state fail", "err", err)
		return nil, err
	}
	return &abcitypes.ResponseInitChain{
		AppHash: h.Bytes(),
	}, nil
}

func (app *CarbonApp) Info(ctx context.Context, info *abcitypes.RequestInfo) (*abcitypes.ResponseInfo, error) {
	header := app.db.Header()
	return &abcitypes.ResponseInfo{
		LastBlockHeight:  int64(header.Height),
		LastBlockAppHash: header.Hash,
	}, nil
}

func (app *CarbonApp) ExtendVote(_ context.Context, extend *abcitypes.RequestExtendVote) (*abcitypes.ResponseExtendVote, error) {
	return &abcitypes.ResponseExtendVote{}, nil
}

func (app *CarbonApp) VerifyVoteExtension(_ context.Context, verify *abcitypes.RequestVerifyVoteExtension) (*abcitypes.ResponseVerifyVoteExtension, error) {
	return &abcitypes.ResponseVerifyVoteExtension{}, nil
}

func (app *CarbonApp) ApplySnapshotChunk(context.Context, *abcitypes.RequestApplySnapshotChunk) (*abcitypes.ResponseApplySnapshotChunk, error) {
	return nil, nil
}

func (app *CarbonApp) ListSnapshots(context.Context, *abcitypes.RequestListSnapshots) (*abcitypes.ResponseListSnapshots, error) {
	return nil, nil
}

func (app *CarbonApp) LoadSnapshotChunk(context.Context, *abcitypes.RequestLoadSnapshotChunk) (*abcitypes.ResponseLoadSnapshotChunk, error) {
	return nil, nil
}

func (app *CarbonApp) OfferSnapshot(context.Context, *abcitypes.RequestOfferSnapshot) (*abcitypes.ResponseOfferSnapshot, error) {
	return nil, nil
}
