package main

import (
	"github.com/carbonledger/carbond/tx"
	"github.com/spf13/cobra"
)

type listArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	Record uint64
	Price  uint64
}

var listArgs listArguments

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a record for fixed-price sale",
	Long:  ``,
	Run:   listRun,
}

func init() {
	urlFlag(listCmd, &listArgs.Url)
	signerFlags(listCmd, &listArgs.Index, &listArgs.Nonce, &listArgs.Skey)
	listCmd.Flags().Uint64VarP(&listArgs.Record, "record", "r", 0, "record id")
	listCmd.Flags().Uint64VarP(&listArgs.Price, "price", "p", 0, "asking price")
}

func listRun(cmd *cobra.Command, args []string) {
	stx := &tx.ListTx{
		Record: listArgs.Record,
		Price:  listArgs.Price,
	}
	sendTx(listArgs.Url, listArgs.Skey, listArgs.Index, listArgs.Nonce, tx.CarbonTxTypeList, stx)
}

type buyArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	Record uint64
}

var buyArgs buyArguments

var buyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Buy a listed record",
	Long:  ``,
	Run:   buyRun,
}

func init() {
	urlFlag(buyCmd, &buyArgs.Url)
	signerFlags(buyCmd, &buyArgs.Index, &buyArgs.Nonce, &buyArgs.Skey)
	buyCmd.Flags().Uint64VarP(&buyArgs.Record, "record", "r", 0, "record id")
}

func buyRun(cmd *cobra.Command, args []string) {
	stx := &tx.BuyTx{Record: buyArgs.Record}
	sendTx(buyArgs.Url, buyArgs.Skey, buyArgs.Index, buyArgs.Nonce, tx.CarbonTxTypeBuy, stx)
}

type cancelListingArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	Record uint64
}

var cancelListingArgs cancelListingArguments

var cancelListingCmd = &cobra.Command{
	Use:   "cancel-listing",
	Short: "Cancel an active listing",
	Long:  ``,
	Run:   cancelListingRun,
}

func init() {
	urlFlag(cancelListingCmd, &cancelListingArgs.Url)
	signerFlags(cancelListingCmd, &cancelListingArgs.Index, &cancelListingArgs.Nonce, &cancelListingArgs.Skey)
	cancelListingCmd.Flags().Uint64VarP(&cancelListingArgs.Record, "record", "r", 0, "record id")
}

func cancelListingRun(cmd *cobra.Command, args []string) {
	stx := &tx.CancelListingTx{Record: cancelListingArgs.Record}
	sendTx(cancelListingArgs.Url, cancelListingArgs.Skey, cancelListingArgs.Index, cancelListingArgs.Nonce, tx.CarbonTxTypeCancelListing, stx)
}
