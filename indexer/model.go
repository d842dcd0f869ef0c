package indexer

// sqlite models

type Height struct {
	Id     uint64 `gorm:"primaryKey" json:"id"`
	Height uint64 `json:"height"`
}

type CreditRecord struct {
	Id           uint64 `gorm:"primaryKey" json:"id"`
	Owner        uint64 `json:"owner"`
	Project      uint64 `json:"project"`
	Amount       uint64 `json:"amount"`
	Status       string `json:"status"`
	IssueHeight  uint64 `json:"issue_height"`
	Retired      bool   `json:"retired"`
	RetireHeight uint64 `json:"retire_height"`
}

type ProjectRow struct {
	Id          uint64 `gorm:"primaryKey" json:"id"`
	TotalStaked uint64 `json:"total_staked"`
}

type TransferLog struct {
	Id     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Record uint64 `json:"record"`
	From   uint64 `json:"from"`
	To     uint64 `json:"to"`
	Price  uint64 `json:"price"`
	Kind   string `json:"kind"`
	Height uint64 `json:"height"`
}

type MarketListing struct {
	Record uint64 `gorm:"primaryKey" json:"record"`
	Seller uint64 `json:"seller"`
	Price  uint64 `json:"price"`
	Height uint64 `json:"height"`
	Active bool   `json:"active"`
}

type AuctionRow struct {
	Id            uint64 `gorm:"primaryKey" json:"id"`
	Record        uint64 `json:"record"`
	Seller        uint64 `json:"seller"`
	StartPrice    uint64 `json:"start_price"`
	CurrentBid    uint64 `json:"current_bid"`
	HighestBidder uint64 `json:"highest_bidder"`
	EndHeight     uint64 `json:"end_height"`
	Active        bool   `json:"active"`
	Winner        uint64 `json:"winner"`
	FinalPrice    uint64 `json:"final_price"`
	SettleHeight  uint64 `json:"settle_height"`
}

type BidRow struct {
	Id      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Auction uint64 `json:"auction"`
	Bidder  uint64 `json:"bidder"`
	Amount  uint64 `json:"amount"`
	Height  uint64 `json:"height"`
}

type ClaimRow struct {
	Id      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Record  uint64 `json:"record"`
	Account uint64 `json:"account"`
	Reward  uint64 `json:"reward"`
	Height  uint64 `json:"height"`
}

// VerificationRow mirrors the latest verification entry per project. A
// resubmission clears the impact columns until the impact is verified again.
type VerificationRow struct {
	Project      uint64 `gorm:"primaryKey" json:"project"`
	Score        uint64 `json:"score"`
	Source       string `json:"source"`
	Height       uint64 `json:"height"`
	ImpactPassed bool   `json:"impact_passed"`
	ImpactHeight uint64 `json:"impact_height"`
}

type OracleRow struct {
	Id       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Project  uint64 `json:"project"`
	DataType string `json:"data_type"`
	Value    string `json:"value"`
	Height   uint64 `json:"height"`
}
