package main

import (
	"github.com/carbonledger/carbond/tx"
	"github.com/spf13/cobra"
)

type createAuctionArguments struct {
	Url        string
	Index      uint64
	Nonce      uint64
	Skey       string
	Record     uint64
	StartPrice uint64
}

var createAuctionArgs createAuctionArguments

var createAuctionCmd = &cobra.Command{
	Use:   "create-auction",
	Short: "Open an English auction for a record",
	Long:  ``,
	Run:   createAuctionRun,
}

func init() {
	urlFlag(createAuctionCmd, &createAuctionArgs.Url)
	signerFlags(createAuctionCmd, &createAuctionArgs.Index, &createAuctionArgs.Nonce, &createAuctionArgs.Skey)
	createAuctionCmd.Flags().Uint64VarP(&createAuctionArgs.Record, "record", "r", 0, "record id")
	createAuctionCmd.Flags().Uint64VarP(&createAuctionArgs.StartPrice, "startPrice", "p", 0, "starting price")
}

func createAuctionRun(cmd *cobra.Command, args []string) {
	stx := &tx.CreateAuctionTx{
		Record:     createAuctionArgs.Record,
		StartPrice: createAuctionArgs.StartPrice,
	}
	sendTx(createAuctionArgs.Url, createAuctionArgs.Skey, createAuctionArgs.Index, createAuctionArgs.Nonce, tx.CarbonTxTypeCreateAuction, stx)
}

type bidArguments struct {
	Url     string
	Index   uint64
	Nonce   uint64
	Skey    string
	Auction uint64
	Amount  uint64
}

var bidArgs bidArguments

var bidCmd = &cobra.Command{
	Use:   "bid",
	Short: "Bid on an active auction",
	Long:  ``,
	Run:   bidRun,
}

func init() {
	urlFlag(bidCmd, &bidArgs.Url)
	signerFlags(bidCmd, &bidArgs.Index, &bidArgs.Nonce, &bidArgs.Skey)
	bidCmd.Flags().Uint64VarP(&bidArgs.Auction, "auction", "a", 0, "auction id")
	bidCmd.Flags().Uint64VarP(&bidArgs.Amount, "amount", "m", 0, "bid amount")
}

func bidRun(cmd *cobra.Command, args []string) {
	stx := &tx.BidTx{
		Auction: bidArgs.Auction,
		Amount:  bidArgs.Amount,
	}
	sendTx(bidArgs.Url, bidArgs.Skey, bidArgs.Index, bidArgs.Nonce, tx.CarbonTxTypeBid, stx)
}

type finalizeAuctionArguments struct {
	Url     string
	Index   uint64
	Nonce   uint64
	Skey    string
	Auction uint64
}

var finalizeAuctionArgs finalizeAuctionArguments

var finalizeAuctionCmd = &cobra.Command{
	Use:   "finalize-auction",
	Short: "Settle an ended auction",
	Long:  ``,
	Run:   finalizeAuctionRun,
}

func init() {
	urlFlag(finalizeAuctionCmd, &finalizeAuctionArgs.Url)
	signerFlags(finalizeAuctionCmd, &finalizeAuctionArgs.Index, &finalizeAuctionArgs.Nonce, &finalizeAuctionArgs.Skey)
	finalizeAuctionCmd.Flags().Uint64VarP(&finalizeAuctionArgs.Auction, "auction", "a", 0, "auction id")
}

func finalizeAuctionRun(cmd *cobra.Command, args []string) {
	stx := &tx.FinalizeAuctionTx{Auction: finalizeAuctionArgs.Auction}
	sendTx(finalizeAuctionArgs.Url, finalizeAuctionArgs.Skey, finalizeAuctionArgs.Index, finalizeAuctionArgs.Nonce, tx.CarbonTxTypeFinalizeAuction, stx)
}
