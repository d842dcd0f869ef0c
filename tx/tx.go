package tx

import (
	"encoding/json"
)

// CarbonTx is the signed envelope every ledger call travels in. Account is
// the caller's account index; register txs carry zero and are verified
// against the embedded pubkey instead.
type CarbonTx struct {
	Version uint8        `json:"version"`
	Type    CarbonTxType `json:"type"`
	Nonce   uint64       `json:"nonce"`
	Account uint64       `json:"account"`
	Tx      any          `json:"tx"`
	Sig     [][]byte     `json:"sig"`
}

type RegisterTx struct {
	Pubkey   []byte `json:"pubkey"`
	Referrer uint64 `json:"referrer"`
}

type IssueEntry struct {
	Project uint64 `json:"project"`
	Amount  uint64 `json:"amount"`
}

type IssueTx struct {
	Project uint64 `json:"project"`
	Amount  uint64 `json:"amount"`
}

type IssueBatchTx struct {
	Entries []IssueEntry `json:"entries"`
}

type UpdateStatusTx struct {
	Record uint64 `json:"record"`
	Status string `json:"status"`
}

type TransferTx struct {
	Record uint64 `json:"record"`
	To     uint64 `json:"to"`
}

type RetireTx struct {
	Record uint64 `json:"record"`
}

type ClaimTx struct {
	Record uint64 `json:"record"`
}

type ReferralTx struct {
	Referrer uint64 `json:"referrer"`
}

type ListTx struct {
	Record uint64 `json:"record"`
	Price  uint64 `json:"price"`
}

type BuyTx struct {
	Record uint64 `json:"record"`
}

type CancelListingTx struct {
	Record uint64 `json:"record"`
}

type CreateAuctionTx struct {
	Record     uint64 `json:"record"`
	StartPrice uint64 `json:"startPrice"`
}

type BidTx struct {
	Auction uint64 `json:"auction"`
	Amount  uint64 `json:"amount"`
}

type FinalizeAuctionTx struct {
	Auction uint64 `json:"auction"`
}

type PauseTx struct {
	Paused bool `json:"paused"`
}

type SetAdminTx struct {
	Admin uint64 `json:"admin"`
}

type SetProjectTx struct {
	Project  uint64 `json:"project"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Standard string `json:"standard"`
}

type FundTx struct {
	To     uint64 `json:"to"`
	Amount uint64 `json:"amount"`
}

type AdminStatusTx struct {
	Record uint64 `json:"record"`
	Status string `json:"status"`
}

type VerificationTx struct {
	Project   uint64 `json:"project"`
	Satellite bool   `json:"satellite"`
	Iot       bool   `json:"iot"`
	Audited   bool   `json:"audited"`
	Source    string `json:"source"`
}

type OracleTx struct {
	Project  uint64 `json:"project"`
	DataType string `json:"dataType"`
	Value    string `json:"value"`
}

type VerifyImpactTx struct {
	Project uint64 `json:"project"`
}

type carbonTxTmpl[Tx any] struct {
	Version uint8        `json:"version"`
	Type    CarbonTxType `json:"type"`
	Nonce   uint64       `json:"nonce"`
	Account uint64       `json:"account"`
	Tx      Tx           `json:"tx"`
	Sig     [][]byte     `json:"sig"`
}

// SigData is the byte string signed by the caller: the envelope with the
// signature slot holding the chain id.
func (tx *CarbonTx) SigData(ext []byte) (dat []byte, err error) {
	ntx := *tx
	ntx.Sig = [][]byte{ext}
	dat, err = json.Marshal(ntx)
	return
}

func parseCarbonTxType(dat []byte) CarbonTxType {
	var tx struct {
		Type CarbonTxType `json:"type"`
	}
	err := json.Unmarshal(dat, &tx)
	if err != nil {
		return CarbonTxTypeUnknown
	}
	return tx.Type
}

func unmarshalCarbonTx[Tx any](dat []byte) (btx *CarbonTx, err error) {
	var txt carbonTxTmpl[Tx]
	err = json.Unmarshal(dat, &txt)
	if err != nil {
		return
	}
	btx = new(CarbonTx)
	btx.Version = txt.Version
	btx.Type = txt.Type
	btx.Nonce = txt.Nonce
	btx.Account = txt.Account
	btx.Tx = &txt.Tx
	btx.Sig = txt.Sig
	return
}

func UnmarshalCarbonTx(dat []byte) (btx *CarbonTx, err error) {
	tp := parseCarbonTxType(dat)
	switch tp {
	case CarbonTxTypeRegister:
		return unmarshalCarbonTx[RegisterTx](dat)
	case CarbonTxTypeIssue:
		return unmarshalCarbonTx[IssueTx](dat)
	case CarbonTxTypeIssueBatch:
		return unmarshalCarbonTx[IssueBatchTx](dat)
	case CarbonTxTypeUpdateStatus:
		return unmarshalCarbonTx[UpdateStatusTx](dat)
	case CarbonTxTypeTransfer:
		return unmarshalCarbonTx[TransferTx](dat)
	case CarbonTxTypeRetire:
		return unmarshalCarbonTx[RetireTx](dat)
	case CarbonTxTypeClaim:
		return unmarshalCarbonTx[ClaimTx](dat)
	case CarbonTxTypeReferral:
		return unmarshalCarbonTx[ReferralTx](dat)
	case CarbonTxTypeList:
		return unmarshalCarbonTx[ListTx](dat)
	case CarbonTxTypeBuy:
		return unmarshalCarbonTx[BuyTx](dat)
	case CarbonTxTypeCancelListing:
		return unmarshalCarbonTx[CancelListingTx](dat)
	case CarbonTxTypeCreateAuction:
		return unmarshalCarbonTx[CreateAuctionTx](dat)
	case CarbonTxTypeBid:
		return unmarshalCarbonTx[BidTx](dat)
	case CarbonTxTypeFinalizeAuction:
		return unmarshalCarbonTx[FinalizeAuctionTx](dat)
	case CarbonTxTypePause:
		return unmarshalCarbonTx[PauseTx](dat)
	case CarbonTxTypeSetAdmin:
		return unmarshalCarbonTx[SetAdminTx](dat)
	case CarbonTxTypeSetProject:
		return unmarshalCarbonTx[SetProjectTx](dat)
	case CarbonTxTypeFund:
		return unmarshalCarbonTx[FundTx](dat)
	case CarbonTxTypeAdminStatus:
		return unmarshalCarbonTx[AdminStatusTx](dat)
	case CarbonTxTypeVerification:
		return unmarshalCarbonTx[VerificationTx](dat)
	case CarbonTxTypeOracle:
		return unmarshalCarbonTx[OracleTx](dat)
	case CarbonTxTypeVerifyImpact:
		return unmarshalCarbonTx[VerifyImpactTx](dat)
	default:
		err = ErrUnsupportedTxType
	}
	return
}

func MarshalCarbonTx(btx *CarbonTx) (dat []byte, err error) {
	return json.Marshal(btx)
}
