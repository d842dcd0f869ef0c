package state

import (
	"sync"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/iavl"
	dbm "github.com/cosmos/iavl/db"
	"github.com/ethereum/go-ethereum/common"
)

type StateDB struct {
	mtx sync.RWMutex

	dir    string
	logger cmtlog.Logger
	db     *iavl.MutableTree

	state *State
}

func NewStateDB(dir string, logger cmtlog.Logger) (db *StateDB, err error) {
	logger = logger.With("module", "carbondb")
	ldb, err := dbm.NewDB("carbon", "goleveldb", dir)
	if err != nil {
		return nil, err
	}
	tdb := iavl.NewMutableTree(ldb, 128, true, Cometbft2CosmosLogger(logger))
	version, err := tdb.Load()
	if err != nil {
		return nil, err
	}
	logger.Info("load db success", "version", version)
	st := newState(tdb, logger)
	err = st.load()
	if err != nil {
		logger.Error("from carbondb load fail", "err", err)
		return nil, err
	}
	db = &StateDB{
		dir:    dir,
		logger: logger,
		db:     tdb,
		state:  st,
	}
	return
}

func (db *StateDB) Close() (err error) {
	err = db.db.Close()
	return
}

func (db *StateDB) Header() (header *StateHeader) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	header = db.state.Header()
	return
}

func (db *StateDB) State() *State {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	return db.state
}

func (db *StateDB) NewState() (st *State) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	st = db.state.nextState()
	return
}

func (db *StateDB) SetState(st *State) (hash common.Hash, err error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	hash, err = st.save()
	if err != nil {
		return
	}
	db.state = st
	return
}

func (db *StateDB) GetAccountByIndex(idx uint64) (acnt *Account, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	acnt, err = db.state.GetAccount(idx)
	if err != nil {
		return
	}
	if acnt != nil {
		acnt = acnt.Clone()
	}
	height = db.state.header.Height
	return
}

func (db *StateDB) GetAccountByAddress(addr []byte) (acnt *Account, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	acnt, err = db.state.FindAccount(addr)
	if err != nil {
		return
	}
	if acnt != nil {
		acnt = acnt.Clone()
	}
	height = db.state.header.Height
	return
}

func (db *StateDB) GetRecord(id uint64) (r *Record, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	r, err = db.state.GetRecord(id)
	height = db.state.header.Height
	return
}

func (db *StateDB) GetProject(id uint64) (p *Project, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	p, err = db.state.GetProject(id)
	height = db.state.header.Height
	return
}

func (db *StateDB) GetListing(record uint64) (l *Listing, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	l, err = db.state.GetListing(record)
	height = db.state.header.Height
	return
}

func (db *StateDB) GetAuction(id uint64) (a *Auction, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	a, err = db.state.GetAuction(id)
	height = db.state.header.Height
	return
}

func (db *StateDB) GetVerification(project uint64) (v *VerificationEntry, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	v, err = db.state.GetVerification(project)
	height = db.state.header.Height
	return
}

func (db *StateDB) GetOraclePoint(project uint64, dataType string) (o *OraclePoint, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	o, err = db.state.GetOraclePoint(project, dataType)
	height = db.state.header.Height
	return
}

func (db *StateDB) PendingReward(idx uint64) (pending uint64, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	pending, err = db.state.PendingReward(idx)
	height = db.state.header.Height
	return
}
