package state

import (
	"sort"

	"github.com/cometbft/cometbft/crypto/ed25519"
)

// Account is a ledger participant. Records holds the ownership index: the
// sorted set of record ids currently owned, with len(Records) as the count.
type Account struct {
	Index   uint64 `json:"index"`
	PubKey  []byte `json:"pubKey"`
	Nonce   uint64 `json:"nonce"`
	Balance uint64 `json:"balance"`

	RewardBalance   uint64   `json:"rewardBalance"`
	Records         []uint64 `json:"records"`
	TotalEarned     uint64   `json:"totalEarned"`
	LastClaimHeight uint64   `json:"lastClaimHeight"`
	LoyaltyPoints   uint64   `json:"loyaltyPoints"`
	ReferralCount   uint64   `json:"referralCount"`
	// Referrer is a one-time marker; zero means never referred.
	Referrer uint64 `json:"referrer"`
}

func (a *Account) Clone() *Account {
	n := *a
	if a.PubKey != nil {
		n.PubKey = append([]byte(nil), a.PubKey...)
	}
	n.Records = append([]uint64(nil), a.Records...)
	return &n
}

func (a *Account) SetPubKey(pkey []byte) {
	if a.PubKey == nil {
		a.PubKey = make([]byte, len(pkey))
	}
	copy(a.PubKey, pkey)
}

func (a *Account) AddrBytes() []byte {
	if len(a.PubKey) == 0 {
		return nil
	}
	pk := ed25519.PubKey(a.PubKey[:])
	return pk.Address()[:]
}

func (a *Account) Address() string {
	if len(a.PubKey) == 0 {
		return ""
	}
	pk := ed25519.PubKey(a.PubKey[:])
	return pk.Address().String()
}

func (a *Account) Verify(msg []byte, sigs [][]byte) (succ bool) {
	if len(sigs) != 1 || len(a.PubKey) == 0 {
		return false
	}
	pk := ed25519.PubKey(a.PubKey[:])
	return pk.VerifySignature(msg, sigs[0])
}

// RecordCount is the ownership index count for this account.
func (a *Account) RecordCount() int {
	return len(a.Records)
}

func (a *Account) HasRecord(id uint64) bool {
	i := sort.Search(len(a.Records), func(i int) bool { return a.Records[i] >= id })
	return i < len(a.Records) && a.Records[i] == id
}

// AddRecord inserts id keeping the set sorted. Inserting a present id is a
// programming error upstream and is ignored.
func (a *Account) AddRecord(id uint64) {
	i := sort.Search(len(a.Records), func(i int) bool { return a.Records[i] >= id })
	if i < len(a.Records) && a.Records[i] == id {
		return
	}
	a.Records = append(a.Records, 0)
	copy(a.Records[i+1:], a.Records[i:])
	a.Records[i] = id
}

// RemoveRecord drops exactly id from the set. Returns false if absent.
func (a *Account) RemoveRecord(id uint64) bool {
	i := sort.Search(len(a.Records), func(i int) bool { return a.Records[i] >= id })
	if i >= len(a.Records) || a.Records[i] != id {
		return false
	}
	a.Records = append(a.Records[:i], a.Records[i+1:]...)
	return true
}
