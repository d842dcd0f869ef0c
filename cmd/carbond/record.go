package main

import (
	"github.com/carbonledger/carbond/tx"
	"github.com/spf13/cobra"
)

type statusArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	Record uint64
	Status string
}

var statusArgs statusArguments

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Update a record's lifecycle status",
	Long:  `Status is one of pending, verified, completed, expired.`,
	Run:   statusRun,
}

func init() {
	urlFlag(statusCmd, &statusArgs.Url)
	signerFlags(statusCmd, &statusArgs.Index, &statusArgs.Nonce, &statusArgs.Skey)
	statusCmd.Flags().Uint64VarP(&statusArgs.Record, "record", "r", 0, "record id")
	statusCmd.Flags().StringVarP(&statusArgs.Status, "status", "t", "", "new status")
}

func statusRun(cmd *cobra.Command, args []string) {
	stx := &tx.UpdateStatusTx{
		Record: statusArgs.Record,
		Status: statusArgs.Status,
	}
	sendTx(statusArgs.Url, statusArgs.Skey, statusArgs.Index, statusArgs.Nonce, tx.CarbonTxTypeUpdateStatus, stx)
}

type transferArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	Record uint64
	To     uint64
}

var transferArgs transferArguments

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer a record to another account",
	Long:  ``,
	Run:   transferRun,
}

func init() {
	urlFlag(transferCmd, &transferArgs.Url)
	signerFlags(transferCmd, &transferArgs.Index, &transferArgs.Nonce, &transferArgs.Skey)
	transferCmd.Flags().Uint64VarP(&transferArgs.Record, "record", "r", 0, "record id")
	transferCmd.Flags().Uint64VarP(&transferArgs.To, "to", "t", 0, "recipient account index")
}

func transferRun(cmd *cobra.Command, args []string) {
	stx := &tx.TransferTx{
		Record: transferArgs.Record,
		To:     transferArgs.To,
	}
	sendTx(transferArgs.Url, transferArgs.Skey, transferArgs.Index, transferArgs.Nonce, tx.CarbonTxTypeTransfer, stx)
}

type retireArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	Record uint64
}

var retireArgs retireArguments

var retireCmd = &cobra.Command{
	Use:   "retire",
	Short: "Permanently retire a record",
	Long:  ``,
	Run:   retireRun,
}

func init() {
	urlFlag(retireCmd, &retireArgs.Url)
	signerFlags(retireCmd, &retireArgs.Index, &retireArgs.Nonce, &retireArgs.Skey)
	retireCmd.Flags().Uint64VarP(&retireArgs.Record, "record", "r", 0, "record id")
}

func retireRun(cmd *cobra.Command, args []string) {
	stx := &tx.RetireTx{Record: retireArgs.Record}
	sendTx(retireArgs.Url, retireArgs.Skey, retireArgs.Index, retireArgs.Nonce, tx.CarbonTxTypeRetire, stx)
}
