package tx

import "errors"

type CarbonTxType uint8

const (
	CarbonTxTypeUnknown         CarbonTxType = 0
	CarbonTxTypeRegister        CarbonTxType = 1
	CarbonTxTypeIssue           CarbonTxType = 2
	CarbonTxTypeIssueBatch      CarbonTxType = 3
	CarbonTxTypeUpdateStatus    CarbonTxType = 4
	CarbonTxTypeTransfer        CarbonTxType = 5
	CarbonTxTypeRetire          CarbonTxType = 6
	CarbonTxTypeClaim           CarbonTxType = 7
	CarbonTxTypeReferral        CarbonTxType = 8
	CarbonTxTypeList            CarbonTxType = 9
	CarbonTxTypeBuy             CarbonTxType = 10
	CarbonTxTypeCancelListing   CarbonTxType = 11
	CarbonTxTypeCreateAuction   CarbonTxType = 12
	CarbonTxTypeBid             CarbonTxType = 13
	CarbonTxTypeFinalizeAuction CarbonTxType = 14
	CarbonTxTypePause           CarbonTxType = 15
	CarbonTxTypeSetAdmin        CarbonTxType = 16
	CarbonTxTypeSetProject      CarbonTxType = 17
	CarbonTxTypeFund            CarbonTxType = 18
	CarbonTxTypeAdminStatus     CarbonTxType = 19
	CarbonTxTypeVerification    CarbonTxType = 20
	CarbonTxTypeOracle          CarbonTxType = 21
	CarbonTxTypeVerifyImpact    CarbonTxType = 22
)

// MaxBatchIssues bounds a single batch issuance.
const MaxBatchIssues = 10

const (
	CarbonTxVersion0 uint8 = 0
	CarbonTxVersion1 uint8 = 1
)

var (
	ErrInvalidTx         = errors.New("invalid tx")
	ErrUnsupportedTxType = errors.New("unsupported tx type")
	ErrUnmatchedTxType   = errors.New("unmatched tx type")
)
