package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/carbonledger/carbond/config"
	"github.com/carbonledger/carbond/tx"
	carbontypes "github.com/carbonledger/carbond/types"
	cmtcrypto "github.com/cometbft/cometbft/crypto"
	"github.com/cometbft/cometbft/crypto/ed25519"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/iavl"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/syndtr/goleveldb/leveldb"
)

const (
	// StartAccountIdx is the first index handed to registered accounts.
	// Indexes below it are reserved for system accounts.
	StartAccountIdx = 65536

	// EscrowAccountIdx is the ledger's own identity: it holds listed and
	// auctioned records plus escrowed bid funds until settlement.
	EscrowAccountIdx = 1

	ModifiedFlagNew = 1 << 0
	ModifiedFlagMod = 1 << 1
	ModifiedFlagPK  = 1 << 2
)

var (
	KeyState        = "s"
	KeyAccountIndex = "i%s"
	KeyAccountBody  = "a%x"
	KeyRecordBody   = "r%v"
	KeyProjectBody  = "g%v"
	KeyListingBody  = "l%v"
	KeyAuctionBody  = "u%v"
	KeyBidBody      = "b%v:%v"
	KeyVerification = "v%v"
	KeyOraclePoint  = "o%v:%s"
	KeyClaimMarker  = "c%v:%v"
)

type State struct {
	logger cmtlog.Logger
	db     *iavl.MutableTree
	dbVer  int64

	header *StateHeader
	idxs   map[string]uint64
	acnts  map[uint64]*Account

	records  map[uint64]*Record
	projects map[uint64]*Project
	listings map[uint64]*Listing
	auctions map[uint64]*Auction
	verifs   map[uint64]*VerificationEntry
	oracles  map[string]*OraclePoint
	claims   map[string]uint64

	modifiedAcnts    map[uint64]uint32
	modifiedRecords  map[uint64]bool
	deletedRecords   map[uint64]bool
	modifiedProjects map[uint64]bool
	modifiedListings map[uint64]bool
	modifiedAuctions map[uint64]bool
	modifiedVerifs   map[uint64]bool
	modifiedOracles  map[string]bool
	modifiedClaims   map[string]bool
	newBids          []*BidRecord
}

func newState(db *iavl.MutableTree, logger cmtlog.Logger) *State {
	s := &State{
		logger: logger,
		db:     db,
		dbVer:  0,
		header: new(StateHeader),
	}
	s.resetWorking()
	s.header.AccountIdx = StartAccountIdx
	s.header.NextRecordId = 1
	s.header.NextAuctionId = 1
	return s
}

func (s *State) resetWorking() {
	s.idxs = make(map[string]uint64)
	s.acnts = make(map[uint64]*Account)
	s.records = make(map[uint64]*Record)
	s.projects = make(map[uint64]*Project)
	s.listings = make(map[uint64]*Listing)
	s.auctions = make(map[uint64]*Auction)
	s.verifs = make(map[uint64]*VerificationEntry)
	s.oracles = make(map[string]*OraclePoint)
	s.claims = make(map[string]uint64)
	s.modifiedAcnts = make(map[uint64]uint32)
	s.modifiedRecords = make(map[uint64]bool)
	s.deletedRecords = make(map[uint64]bool)
	s.modifiedProjects = make(map[uint64]bool)
	s.modifiedListings = make(map[uint64]bool)
	s.modifiedAuctions = make(map[uint64]bool)
	s.modifiedVerifs = make(map[uint64]bool)
	s.modifiedOracles = make(map[string]bool)
	s.modifiedClaims = make(map[string]bool)
	s.newBids = nil
}

func (s *State) nextState() *State {
	n := &State{
		logger: s.logger,
		db:     s.db,
		dbVer:  s.dbVer,
	}
	n.resetWorking()
	n.header = s.header.Clone()
	if s.header.Hash != nil {
		n.header.Height = s.header.Height + 1
	}
	return n
}

func cloneEntityMap[K comparable, V interface{ Clone() V }](source map[K]V) map[K]V {
	res := make(map[K]V, len(source))
	for k, v := range source {
		res[k] = v.Clone()
	}
	return res
}

func copyFlatMap[K comparable, V any](source map[K]V) map[K]V {
	res := make(map[K]V, len(source))
	for k, v := range source {
		res[k] = v
	}
	return res
}

// Clone deep-copies the working caches so one tx can be applied tentatively
// and thrown away on failure without touching the parent state.
func (s *State) Clone() *State {
	n := &State{
		logger:           s.logger,
		db:               s.db,
		dbVer:            s.dbVer,
		header:           s.header.Clone(),
		idxs:             copyFlatMap(s.idxs),
		acnts:            cloneEntityMap(s.acnts),
		records:          cloneEntityMap(s.records),
		projects:         cloneEntityMap(s.projects),
		listings:         cloneEntityMap(s.listings),
		auctions:         cloneEntityMap(s.auctions),
		verifs:           cloneEntityMap(s.verifs),
		oracles:          cloneEntityMap(s.oracles),
		claims:           copyFlatMap(s.claims),
		modifiedAcnts:    copyFlatMap(s.modifiedAcnts),
		modifiedRecords:  copyFlatMap(s.modifiedRecords),
		deletedRecords:   copyFlatMap(s.deletedRecords),
		modifiedProjects: copyFlatMap(s.modifiedProjects),
		modifiedListings: copyFlatMap(s.modifiedListings),
		modifiedAuctions: copyFlatMap(s.modifiedAuctions),
		modifiedVerifs:   copyFlatMap(s.modifiedVerifs),
		modifiedOracles:  copyFlatMap(s.modifiedOracles),
		modifiedClaims:   copyFlatMap(s.modifiedClaims),
		newBids:          append([]*BidRecord(nil), s.newBids...),
	}
	return n
}

func (s *State) load() (err error) {
	val, err := s.db.Get([]byte(KeyState))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil
		}
		return err
	}
	if val != nil {
		err = json.Unmarshal(val, s.header)
		if err != nil {
			return
		}
		h := s.db.Hash()
		if h != nil {
			s.calcHash(h, true)
		}
	}
	return
}

func (s *State) calcHash(rootHash []byte, update bool) (h common.Hash) {
	h = crypto.Keccak256Hash(rootHash)
	if update {
		if s.header.RootHash == nil {
			s.header.RootHash = make([]byte, len(rootHash))
		}
		copy(s.header.RootHash, rootHash)
		if s.header.Hash == nil {
			s.header.Hash = make([]byte, len(h))
		}
		copy(s.header.Hash, h[:])
	}
	return
}

func sortedKeys[K uint64 | string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (s *State) setJSON(key string, v any) error {
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.Set([]byte(key), val)
	return err
}

// Update flushes every modified entity into the iavl working tree in a
// deterministic order and returns the resulting app hash.
func (s *State) Update() (h common.Hash, err error) {
	var hash []byte
	defer func() {
		if hash == nil {
			s.db.Rollback()
		}
	}()
	if err = s.setJSON(KeyState, s.header); err != nil {
		return
	}

	for _, idx := range sortedKeys(s.modifiedAcnts) {
		flag := s.modifiedAcnts[idx]
		acnt := s.acnts[idx]
		if err = s.setJSON(fmt.Sprintf(KeyAccountBody, acnt.Index), acnt); err != nil {
			return
		}
		if (flag&ModifiedFlagNew == ModifiedFlagNew) || (flag&ModifiedFlagPK == ModifiedFlagPK) {
			if len(acnt.PubKey) == 0 {
				continue
			}
			var val []byte
			val, err = rlp.EncodeToBytes(acnt.Index)
			if err != nil {
				return
			}
			_, err = s.db.Set([]byte(fmt.Sprintf(KeyAccountIndex, acnt.Address())), val)
			if err != nil {
				return
			}
		}
	}

	for _, id := range sortedKeys(s.modifiedRecords) {
		if err = s.setJSON(fmt.Sprintf(KeyRecordBody, id), s.records[id]); err != nil {
			return
		}
	}
	for _, id := range sortedKeys(s.deletedRecords) {
		if _, _, err = s.db.Remove([]byte(fmt.Sprintf(KeyRecordBody, id))); err != nil {
			return
		}
	}
	for _, id := range sortedKeys(s.modifiedProjects) {
		if err = s.setJSON(fmt.Sprintf(KeyProjectBody, id), s.projects[id]); err != nil {
			return
		}
	}
	for _, id := range sortedKeys(s.modifiedListings) {
		if err = s.setJSON(fmt.Sprintf(KeyListingBody, id), s.listings[id]); err != nil {
			return
		}
	}
	for _, id := range sortedKeys(s.modifiedAuctions) {
		if err = s.setJSON(fmt.Sprintf(KeyAuctionBody, id), s.auctions[id]); err != nil {
			return
		}
	}
	for _, id := range sortedKeys(s.modifiedVerifs) {
		if err = s.setJSON(fmt.Sprintf(KeyVerification, id), s.verifs[id]); err != nil {
			return
		}
	}
	for _, key := range sortedKeys(s.modifiedOracles) {
		if err = s.setJSON(key, s.oracles[key]); err != nil {
			return
		}
	}
	for _, key := range sortedKeys(s.modifiedClaims) {
		var val []byte
		val, err = rlp.EncodeToBytes(s.claims[key])
		if err != nil {
			return
		}
		if _, err = s.db.Set([]byte(key), val); err != nil {
			return
		}
	}
	for _, bid := range s.newBids {
		if err = s.setJSON(fmt.Sprintf(KeyBidBody, bid.Auction, bid.Bidder), bid); err != nil {
			return
		}
	}

	hash = s.db.WorkingHash()
	h = s.calcHash(hash, false)
	s.modifiedAcnts = make(map[uint64]uint32)
	s.modifiedRecords = make(map[uint64]bool)
	s.deletedRecords = make(map[uint64]bool)
	s.modifiedProjects = make(map[uint64]bool)
	s.modifiedListings = make(map[uint64]bool)
	s.modifiedAuctions = make(map[uint64]bool)
	s.modifiedVerifs = make(map[uint64]bool)
	s.modifiedOracles = make(map[string]bool)
	s.modifiedClaims = make(map[string]bool)
	s.newBids = nil
	return
}

func (s *State) save() (h common.Hash, err error) {
	hash, ver, err := s.db.SaveVersion()
	if err != nil {
		return h, err
	}

	s.dbVer = ver
	h = s.calcHash(hash, true)

	return
}

func (s *State) Header() *StateHeader {
	return s.header
}

func (s *State) Hash() (h common.Hash) {
	if s.header.Hash != nil {
		copy(h[:], s.header.Hash)
	}
	return
}

func (s *State) SetChainId(chainId string) {
	s.header.ChainId = chainId
}

// Height is the block height currently being applied.
func (s *State) Height() uint64 {
	return s.header.Height
}

func (s *State) Paused() bool {
	return s.header.Paused
}

func (s *State) Admin() uint64 {
	return s.header.Admin
}

func (s *State) isAdmin(caller uint64) bool {
	return s.header.Admin != 0 && caller == s.header.Admin
}

func (s *State) GetAccount(idx uint64) (acnt *Account, err error) {
	if idx >= s.header.AccountIdx {
		err = ErrTxAccountNoexists
		return
	}
	acnt = s.acnts[idx]
	if acnt != nil {
		return
	}
	val, err := s.db.Get([]byte(fmt.Sprintf(KeyAccountBody, idx)))
	if err != nil {
		return nil, err
	}
	if val == nil {
		err = ErrNotFound
		return
	}
	acnt = new(Account)
	err = json.Unmarshal(val, acnt)
	if err != nil {
		acnt = nil
		return
	}
	s.acnts[idx] = acnt
	return
}

func (s *State) existPubkey(pubkey []byte) (bool, error) {
	addr := ed25519.PubKey(pubkey).Address()[:]
	saddr := cmtcrypto.Address(addr).String()
	// exist in cache
	if _, ok := s.idxs[saddr]; ok {
		return true, nil
	}
	// exist in db
	val, err := s.db.Get([]byte(fmt.Sprintf(KeyAccountIndex, saddr)))
	if err != nil {
		if err != leveldb.ErrNotFound {
			return false, err
		}
	}
	if val != nil {
		return true, nil
	}
	// exist in modify
	for _, acc := range s.acnts {
		if bytes.Equal(acc.AddrBytes(), addr) {
			return true, nil
		}
	}
	return false, nil
}

func (s *State) FindAccount(addr []byte) (acnt *Account, err error) {
	saddr := cmtcrypto.Address(addr).String()
	idx, ok := s.idxs[saddr]
	if !ok {
		val, err := s.db.Get([]byte(fmt.Sprintf(KeyAccountIndex, saddr)))
		if err != nil {
			if err == leveldb.ErrNotFound {
				return nil, nil
			}
			return nil, err
		}
		if val == nil {
			return nil, nil
		}
		err = rlp.DecodeBytes(val, &idx)
		if err != nil {
			return nil, err
		}
		s.idxs[saddr] = idx
	}
	acnt, err = s.GetAccount(idx)

	return
}

func (s *State) AddAccount(acnt *Account) (err error) {
	if len(acnt.PubKey) > 0 {
		a, err := s.FindAccount(acnt.AddrBytes())
		if err != nil {
			return err
		}
		if a != nil {
			return ErrAccountAlreadyExists
		}
	}
	acnt.Index = s.header.AccountIdx
	s.header.AccountIdx += 1
	s.acnts[acnt.Index] = acnt.Clone()
	s.modifiedAcnts[acnt.Index] = ModifiedFlagNew
	return
}

// AddSystemAccount installs an account at a reserved index below
// StartAccountIdx. Used at InitChain for the escrow identity.
func (s *State) AddSystemAccount(idx uint64, acnt *Account) {
	acnt.Index = idx
	s.acnts[idx] = acnt.Clone()
	s.modifiedAcnts[idx] = ModifiedFlagNew
}

func (s *State) touchAccount(a *Account, flag uint32) {
	v := s.modifiedAcnts[a.Index]
	v |= flag
	s.modifiedAcnts[a.Index] = v
	s.acnts[a.Index] = a.Clone()
}

// Verify checks the envelope signature and nonce against the caller account.
// Register txs are self-certifying: the signature must match the pubkey
// being registered.
func (s *State) Verify(btx *tx.CarbonTx, allowNonceGap bool) (succ bool, err error) {
	if btx.Type == tx.CarbonTxTypeRegister {
		wtx, ok := btx.Tx.(*tx.RegisterTx)
		if !ok || len(wtx.Pubkey) != ed25519.PubKeySize {
			return false, tx.ErrInvalidTx
		}
		dat, err := btx.SigData([]byte(s.header.ChainId))
		if err != nil {
			return false, err
		}
		if len(btx.Sig) != 1 {
			return false, ErrTxSigInvalid
		}
		pk := ed25519.PubKey(wtx.Pubkey)
		if !pk.VerifySignature(dat, btx.Sig[0]) {
			return false, ErrTxSigInvalid
		}
		return true, nil
	}
	a, err := s.GetAccount(btx.Account)
	if err != nil {
		return succ, err
	}
	if a == nil {
		err = ErrTxAccountNoexists
		return
	}
	if !(a.Nonce == btx.Nonce || (allowNonceGap && a.Nonce < btx.Nonce)) {
		err = ErrTxNonceInvalid
		return
	}
	dat, err := btx.SigData([]byte(s.header.ChainId))
	if err != nil {
		return succ, err
	}
	succ = a.Verify(dat, btx.Sig)
	if !succ {
		err = ErrTxSigInvalid
	}
	return
}

// Register creates a caller account from its pubkey. A non-zero referrer
// applies the referral bonus in the same call.
func (s *State) Register(wtx *tx.RegisterTx, checkOnly bool) (event *carbontypes.EventRegister, err error) {
	if s.header.Paused {
		return nil, ErrPaused
	}
	if len(wtx.Pubkey) != ed25519.PubKeySize {
		return nil, tx.ErrInvalidTx
	}
	exists, err := s.existPubkey(wtx.Pubkey)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAccountAlreadyExists
	}
	var referrer *Account
	if wtx.Referrer != 0 {
		referrer, err = s.GetAccount(wtx.Referrer)
		if err != nil {
			return nil, ErrNotFound
		}
	}
	if checkOnly {
		return nil, nil
	}
	a := &Account{}
	a.SetPubKey(wtx.Pubkey)
	if err = s.AddAccount(a); err != nil {
		return nil, err
	}
	if referrer != nil {
		a = s.acnts[a.Index]
		a.Referrer = wtx.Referrer
		s.touchAccount(a, ModifiedFlagMod)
		s.creditReferrer(referrer)
	}
	event = &carbontypes.EventRegister{
		Account:  a.Index,
		Address:  a.Address(),
		Referrer: wtx.Referrer,
	}
	return
}

func (s *State) creditReferrer(referrer *Account) {
	height := s.header.Height
	referrer.ReferralCount += 1
	referrer.LoyaltyPoints += config.ReferralLoyaltyBonus(height)
	s.mintReward(referrer, config.ReferralRewardAmount(height))
}

func (s *State) bumpNonce(a *Account) {
	a.Nonce += 1
	s.touchAccount(a, ModifiedFlagMod)
}

func PrefixEndBytes(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}

	end := make([]byte, len(prefix))
	copy(end, prefix)

	for {
		if end[len(end)-1] != byte(255) {
			end[len(end)-1]++
			break
		}

		end = end[:len(end)-1]

		if len(end) == 0 {
			end = nil
			break
		}
	}

	return end
}
