package main

import (
	"github.com/carbonledger/carbond/tx"
	"github.com/spf13/cobra"
)

type claimArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	Record uint64
}

var claimArgs claimArguments

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim accrued rewards for a held record",
	Long:  ``,
	Run:   claimRun,
}

func init() {
	urlFlag(claimCmd, &claimArgs.Url)
	signerFlags(claimCmd, &claimArgs.Index, &claimArgs.Nonce, &claimArgs.Skey)
	claimCmd.Flags().Uint64VarP(&claimArgs.Record, "record", "r", 0, "record id")
}

func claimRun(cmd *cobra.Command, args []string) {
	stx := &tx.ClaimTx{Record: claimArgs.Record}
	sendTx(claimArgs.Url, claimArgs.Skey, claimArgs.Index, claimArgs.Nonce, tx.CarbonTxTypeClaim, stx)
}

type referralArguments struct {
	Url      string
	Index    uint64
	Nonce    uint64
	Skey     string
	Referrer uint64
}

var referralArgs referralArguments

var referralCmd = &cobra.Command{
	Use:   "referral",
	Short: "Record a referral for an existing account",
	Long:  ``,
	Run:   referralRun,
}

func init() {
	urlFlag(referralCmd, &referralArgs.Url)
	signerFlags(referralCmd, &referralArgs.Index, &referralArgs.Nonce, &referralArgs.Skey)
	referralCmd.Flags().Uint64VarP(&referralArgs.Referrer, "referrer", "r", 0, "referrer account index")
}

func referralRun(cmd *cobra.Command, args []string) {
	stx := &tx.ReferralTx{Referrer: referralArgs.Referrer}
	sendTx(referralArgs.Url, referralArgs.Skey, referralArgs.Index, referralArgs.Nonce, tx.CarbonTxTypeReferral, stx)
}
