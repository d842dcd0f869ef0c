package main

import (
	"github.com/carbonledger/carbond/crypto"
	"github.com/carbonledger/carbond/tx"
	"github.com/spf13/cobra"
)

type registerArguments struct {
	Url      string
	Skey     string
	Referrer uint64
}

var registerArgs registerArguments

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the local key as a ledger account",
	Long:  ``,
	Run:   registerRun,
}

func init() {
	urlFlag(registerCmd, &registerArgs.Url)
	registerCmd.Flags().StringVarP(&registerArgs.Skey, "skeyPath", "s", "./config/priv_validator_key.json", "private key path")
	registerCmd.Flags().Uint64VarP(&registerArgs.Referrer, "referrer", "r", 0, "referrer account index")
}

func registerRun(cmd *cobra.Command, args []string) {
	pv := crypto.LoadFilePV(registerArgs.Skey)
	stx := &tx.RegisterTx{
		Pubkey:   pv.PublicKey(),
		Referrer: registerArgs.Referrer,
	}
	sendTx(registerArgs.Url, registerArgs.Skey, 0, 0, tx.CarbonTxTypeRegister, stx)
}
