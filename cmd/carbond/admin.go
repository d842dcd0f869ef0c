package main

import (
	"github.com/carbonledger/carbond/tx"
	"github.com/spf13/cobra"
)

type pauseArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	Paused bool
}

var pauseArgs pauseArguments

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause or resume ledger writes",
	Long:  ``,
	Run:   pauseRun,
}

func init() {
	urlFlag(pauseCmd, &pauseArgs.Url)
	signerFlags(pauseCmd, &pauseArgs.Index, &pauseArgs.Nonce, &pauseArgs.Skey)
	pauseCmd.Flags().BoolVarP(&pauseArgs.Paused, "paused", "p", true, "target pause state")
}

func pauseRun(cmd *cobra.Command, args []string) {
	stx := &tx.PauseTx{Paused: pauseArgs.Paused}
	sendTx(pauseArgs.Url, pauseArgs.Skey, pauseArgs.Index, pauseArgs.Nonce, tx.CarbonTxTypePause, stx)
}

type setAdminArguments struct {
	Url   string
	Index uint64
	Nonce uint64
	Skey  string
	Admin uint64
}

var setAdminArgs setAdminArguments

var setAdminCmd = &cobra.Command{
	Use:   "set-admin",
	Short: "Hand the admin role to another account",
	Long:  ``,
	Run:   setAdminRun,
}

func init() {
	urlFlag(setAdminCmd, &setAdminArgs.Url)
	signerFlags(setAdminCmd, &setAdminArgs.Index, &setAdminArgs.Nonce, &setAdminArgs.Skey)
	setAdminCmd.Flags().Uint64VarP(&setAdminArgs.Admin, "admin", "a", 0, "new admin account index")
}

func setAdminRun(cmd *cobra.Command, args []string) {
	stx := &tx.SetAdminTx{Admin: setAdminArgs.Admin}
	sendTx(setAdminArgs.Url, setAdminArgs.Skey, setAdminArgs.Index, setAdminArgs.Nonce, tx.CarbonTxTypeSetAdmin, stx)
}

type setProjectArguments struct {
	Url      string
	Index    uint64
	Nonce    uint64
	Skey     string
	Project  uint64
	Name     string
	Location string
	Standard string
}

var setProjectArgs setProjectArguments

var setProjectCmd = &cobra.Command{
	Use:   "set-project",
	Short: "Create or update project metadata",
	Long:  ``,
	Run:   setProjectRun,
}

func init() {
	urlFlag(setProjectCmd, &setProjectArgs.Url)
	signerFlags(setProjectCmd, &setProjectArgs.Index, &setProjectArgs.Nonce, &setProjectArgs.Skey)
	setProjectCmd.Flags().Uint64VarP(&setProjectArgs.Project, "project", "p", 0, "project id")
	setProjectCmd.Flags().StringVarP(&setProjectArgs.Name, "name", "m", "", "project name")
	setProjectCmd.Flags().StringVarP(&setProjectArgs.Location, "location", "l", "", "project location")
	setProjectCmd.Flags().StringVarP(&setProjectArgs.Standard, "standard", "t", "", "certification standard")
}

func setProjectRun(cmd *cobra.Command, args []string) {
	stx := &tx.SetProjectTx{
		Project:  setProjectArgs.Project,
		Name:     setProjectArgs.Name,
		Location: setProjectArgs.Location,
		Standard: setProjectArgs.Standard,
	}
	sendTx(setProjectArgs.Url, setProjectArgs.Skey, setProjectArgs.Index, setProjectArgs.Nonce, tx.CarbonTxTypeSetProject, stx)
}

type fundArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	To     uint64
	Amount uint64
}

var fundArgs fundArguments

var fundCmd = &cobra.Command{
	Use:   "fund",
	Short: "Mint native currency into an account",
	Long:  ``,
	Run:   fundRun,
}

func init() {
	urlFlag(fundCmd, &fundArgs.Url)
	signerFlags(fundCmd, &fundArgs.Index, &fundArgs.Nonce, &fundArgs.Skey)
	fundCmd.Flags().Uint64VarP(&fundArgs.To, "to", "t", 0, "recipient account index")
	fundCmd.Flags().Uint64VarP(&fundArgs.Amount, "amount", "a", 0, "amount to mint")
}

func fundRun(cmd *cobra.Command, args []string) {
	stx := &tx.FundTx{
		To:     fundArgs.To,
		Amount: fundArgs.Amount,
	}
	sendTx(fundArgs.Url, fundArgs.Skey, fundArgs.Index, fundArgs.Nonce, tx.CarbonTxTypeFund, stx)
}

type adminStatusArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	Record uint64
	Status string
}

var adminStatusArgs adminStatusArguments

var adminStatusCmd = &cobra.Command{
	Use:   "admin-status",
	Short: "Override a record's status as admin",
	Long:  ``,
	Run:   adminStatusRun,
}

func init() {
	urlFlag(adminStatusCmd, &adminStatusArgs.Url)
	signerFlags(adminStatusCmd, &adminStatusArgs.Index, &adminStatusArgs.Nonce, &adminStatusArgs.Skey)
	adminStatusCmd.Flags().Uint64VarP(&adminStatusArgs.Record, "record", "r", 0, "record id")
	adminStatusCmd.Flags().StringVarP(&adminStatusArgs.Status, "status", "t", "", "new status")
}

func adminStatusRun(cmd *cobra.Command, args []string) {
	stx := &tx.AdminStatusTx{
		Record: adminStatusArgs.Record,
		Status: adminStatusArgs.Status,
	}
	sendTx(adminStatusArgs.Url, adminStatusArgs.Skey, adminStatusArgs.Index, adminStatusArgs.Nonce, tx.CarbonTxTypeAdminStatus, stx)
}
