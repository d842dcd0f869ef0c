package state

import "fmt"

// CreditStatus is the closed set of credit record states.
type CreditStatus uint8

const (
	StatusPending CreditStatus = iota
	StatusVerified
	StatusCompleted
	StatusExpired
)

var statusNames = map[CreditStatus]string{
	StatusPending:   "pending",
	StatusVerified:  "verified",
	StatusCompleted: "completed",
	StatusExpired:   "expired",
}

func (s CreditStatus) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

func (s CreditStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus validates a wire status string against the closed set.
func ParseStatus(name string) (CreditStatus, error) {
	for st, n := range statusNames {
		if n == name {
			return st, nil
		}
	}
	return 0, ErrInvalidStatus
}

// Record is a staked carbon-credit certificate. It exists iff currently
// staked; retire removes it.
type Record struct {
	Id          uint64       `json:"id"`
	Owner       uint64       `json:"owner"`
	IssueHeight uint64       `json:"issueHeight"`
	Project     uint64       `json:"project"`
	Status      CreditStatus `json:"status"`
	Amount      uint64       `json:"amount"`
}

func (r *Record) Clone() *Record {
	n := *r
	return &n
}

// Project carries per-project metadata plus the running staked aggregate.
// Created lazily on first issue when metadata was never set.
type Project struct {
	Id          uint64 `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Standard    string `json:"verificationStandard"`
	TotalStaked uint64 `json:"totalStaked"`
}

func (p *Project) Clone() *Project {
	n := *p
	return &n
}

// Listing is a fixed-price sale offer. At most one per record; the record's
// custody sits with the escrow account while the listing is active.
type Listing struct {
	Record       uint64 `json:"record"`
	Seller       uint64 `json:"seller"`
	Price        uint64 `json:"price"`
	ListedHeight uint64 `json:"listedHeight"`
	Active       bool   `json:"active"`
}

func (l *Listing) Clone() *Listing {
	n := *l
	return &n
}

// Auction is an English auction over one record. CurrentBid starts at the
// start price, so the first bid must exceed it. HighestBidder zero means no
// bid has been escrowed yet.
type Auction struct {
	Id            uint64 `json:"id"`
	Record        uint64 `json:"record"`
	Seller        uint64 `json:"seller"`
	StartPrice    uint64 `json:"startPrice"`
	CurrentBid    uint64 `json:"currentBid"`
	HighestBidder uint64 `json:"highestBidder"`
	StartHeight   uint64 `json:"startHeight"`
	EndHeight     uint64 `json:"endHeight"`
	Active        bool   `json:"active"`
}

func (a *Auction) Clone() *Auction {
	n := *a
	return &n
}

// BidRecord is bid history only; settlement uses the auction body.
type BidRecord struct {
	Auction uint64 `json:"auction"`
	Bidder  uint64 `json:"bidder"`
	Amount  uint64 `json:"amount"`
	Height  uint64 `json:"height"`
}

// VerificationEntry holds admin-submitted environmental flags for a project.
type VerificationEntry struct {
	Project       uint64 `json:"project"`
	Satellite     bool   `json:"satellite"`
	Iot           bool   `json:"iot"`
	Audited       bool   `json:"audited"`
	Score         uint64 `json:"score"`
	UpdatedHeight uint64 `json:"updatedHeight"`
	Source        string `json:"source"`
}

func (v *VerificationEntry) Clone() *VerificationEntry {
	n := *v
	return &n
}

// OraclePoint is one external data point keyed by (project, data type).
type OraclePoint struct {
	Project  uint64 `json:"project"`
	DataType string `json:"dataType"`
	Value    string `json:"value"`
	Height   uint64 `json:"height"`
	Verified bool   `json:"verified"`
}

func (o *OraclePoint) Clone() *OraclePoint {
	n := *o
	return &n
}

// StateHeader is the ledger-wide bookkeeping committed under KeyState.
type StateHeader struct {
	ChainId       string `json:"chainId"`
	Height        uint64 `json:"height"`
	Hash          []byte `json:"hash"`
	RootHash      []byte `json:"rootHash"`
	AccountIdx    uint64 `json:"accountIdx"`
	NextRecordId  uint64 `json:"nextRecordId"`
	NextAuctionId uint64 `json:"nextAuctionId"`
	Admin         uint64 `json:"admin"`
	Paused        bool   `json:"paused"`
}

func (h *StateHeader) Clone() *StateHeader {
	n := *h
	if h.Hash != nil {
		n.Hash = append([]byte(nil), h.Hash...)
	}
	if h.RootHash != nil {
		n.RootHash = append([]byte(nil), h.RootHash...)
	}
	return &n
}
