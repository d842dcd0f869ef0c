package state

import "errors"

var (
	ErrNotFound = errors.New("not found")
)

var (
	ErrTxAccountNoexists    = errors.New("account noexists")
	ErrTxNonceInvalid       = errors.New("nonce invalid")
	ErrTxSigInvalid         = errors.New("signature invalid")
	ErrAccountAlreadyExists = errors.New("account already exists")

	ErrUnauthorized        = errors.New("unauthorized")
	ErrAdminOnly           = errors.New("admin only")
	ErrPaused              = errors.New("ledger paused")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrInvalidBid          = errors.New("bid not above current bid")
	ErrInvalidStatus       = errors.New("invalid credit status")
	ErrInvalidName         = errors.New("invalid name")
	ErrEmptyBatch          = errors.New("empty batch")
	ErrBatchLimitExceeded  = errors.New("batch limit exceeded")
	ErrNotEligible         = errors.New("record not eligible")
	ErrCapacityExceeded    = errors.New("ownership capacity exceeded")
	ErrNotForSale          = errors.New("record not for sale")
	ErrAuctionEnded        = errors.New("auction ended")
	ErrAuctionActive       = errors.New("auction still active")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrSelfReferral        = errors.New("self referral")
	ErrAlreadyReferred     = errors.New("referral already recorded")
	ErrNothingToClaim      = errors.New("nothing to claim")
	ErrCooldownActive      = errors.New("claim cooldown active")
	ErrInvalidVerification = errors.New("verification score below threshold")
)
