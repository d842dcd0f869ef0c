package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carbonledger/carbond/tx"
	"github.com/spf13/cobra"
)

type issueArguments struct {
	Url     string
	Index   uint64
	Nonce   uint64
	Skey    string
	Project uint64
	Amount  uint64
}

var issueArgs issueArguments

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a carbon credit record against a project",
	Long:  ``,
	Run:   issueRun,
}

func init() {
	urlFlag(issueCmd, &issueArgs.Url)
	signerFlags(issueCmd, &issueArgs.Index, &issueArgs.Nonce, &issueArgs.Skey)
	issueCmd.Flags().Uint64VarP(&issueArgs.Project, "project", "p", 0, "project id")
	issueCmd.Flags().Uint64VarP(&issueArgs.Amount, "amount", "a", 0, "tonnes of CO2")
}

func issueRun(cmd *cobra.Command, args []string) {
	stx := &tx.IssueTx{
		Project: issueArgs.Project,
		Amount:  issueArgs.Amount,
	}
	sendTx(issueArgs.Url, issueArgs.Skey, issueArgs.Index, issueArgs.Nonce, tx.CarbonTxTypeIssue, stx)
}

type issueBatchArguments struct {
	Url     string
	Index   uint64
	Nonce   uint64
	Skey    string
	Entries string
}

var issueBatchArgs issueBatchArguments

var issueBatchCmd = &cobra.Command{
	Use:   "issue-batch",
	Short: "Issue several records atomically",
	Long:  `Entries are comma separated project:amount pairs, e.g. 1:100,1:50,2:30.`,
	Run:   issueBatchRun,
}

func init() {
	urlFlag(issueBatchCmd, &issueBatchArgs.Url)
	signerFlags(issueBatchCmd, &issueBatchArgs.Index, &issueBatchArgs.Nonce, &issueBatchArgs.Skey)
	issueBatchCmd.Flags().StringVarP(&issueBatchArgs.Entries, "entries", "e", "", "project:amount pairs")
}

func issueBatchRun(cmd *cobra.Command, args []string) {
	entries := make([]tx.IssueEntry, 0)
	for _, part := range strings.Split(issueBatchArgs.Entries, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) != 2 {
			fmt.Printf("invalid entry:%v\n", part)
			return
		}
		project, err := strconv.ParseUint(kv[0], 10, 64)
		if err != nil {
			fmt.Printf("invalid project:%v\n", kv[0])
			return
		}
		amount, err := strconv.ParseUint(kv[1], 10, 64)
		if err != nil {
			fmt.Printf("invalid amount:%v\n", kv[1])
			return
		}
		entries = append(entries, tx.IssueEntry{Project: project, Amount: amount})
	}
	stx := &tx.IssueBatchTx{Entries: entries}
	sendTx(issueBatchArgs.Url, issueBatchArgs.Skey, issueBatchArgs.Index, issueBatchArgs.Nonce, tx.CarbonTxTypeIssueBatch, stx)
}
