package main

import (
	"github.com/carbonledger/carbond/tx"
	"github.com/spf13/cobra"
)

type verificationArguments struct {
	Url       string
	Index     uint64
	Nonce     uint64
	Skey      string
	Project   uint64
	Satellite bool
	Iot       bool
	Audited   bool
	Source    string
}

var verificationArgs verificationArguments

var verificationCmd = &cobra.Command{
	Use:   "verification",
	Short: "Submit environmental verification flags for a project",
	Long:  ``,
	Run:   verificationRun,
}

func init() {
	urlFlag(verificationCmd, &verificationArgs.Url)
	signerFlags(verificationCmd, &verificationArgs.Index, &verificationArgs.Nonce, &verificationArgs.Skey)
	verificationCmd.Flags().Uint64VarP(&verificationArgs.Project, "project", "p", 0, "project id")
	verificationCmd.Flags().BoolVarP(&verificationArgs.Satellite, "satellite", "", false, "satellite imagery check passed")
	verificationCmd.Flags().BoolVarP(&verificationArgs.Iot, "iot", "", false, "iot sensor check passed")
	verificationCmd.Flags().BoolVarP(&verificationArgs.Audited, "audited", "", false, "third party audit passed")
	verificationCmd.Flags().StringVarP(&verificationArgs.Source, "source", "", "", "data source label")
}

func verificationRun(cmd *cobra.Command, args []string) {
	stx := &tx.VerificationTx{
		Project:   verificationArgs.Project,
		Satellite: verificationArgs.Satellite,
		Iot:       verificationArgs.Iot,
		Audited:   verificationArgs.Audited,
		Source:    verificationArgs.Source,
	}
	sendTx(verificationArgs.Url, verificationArgs.Skey, verificationArgs.Index, verificationArgs.Nonce, tx.CarbonTxTypeVerification, stx)
}

type oracleArguments struct {
	Url      string
	Index    uint64
	Nonce    uint64
	Skey     string
	Project  uint64
	DataType string
	Value    string
}

var oracleArgs oracleArguments

var oracleCmd = &cobra.Command{
	Use:   "oracle",
	Short: "Submit an external oracle data point",
	Long:  ``,
	Run:   oracleRun,
}

func init() {
	urlFlag(oracleCmd, &oracleArgs.Url)
	signerFlags(oracleCmd, &oracleArgs.Index, &oracleArgs.Nonce, &oracleArgs.Skey)
	oracleCmd.Flags().Uint64VarP(&oracleArgs.Project, "project", "p", 0, "project id")
	oracleCmd.Flags().StringVarP(&oracleArgs.DataType, "dataType", "t", "", "data type label")
	oracleCmd.Flags().StringVarP(&oracleArgs.Value, "value", "v", "", "data value")
}

func oracleRun(cmd *cobra.Command, args []string) {
	stx := &tx.OracleTx{
		Project:  oracleArgs.Project,
		DataType: oracleArgs.DataType,
		Value:    oracleArgs.Value,
	}
	sendTx(oracleArgs.Url, oracleArgs.Skey, oracleArgs.Index, oracleArgs.Nonce, tx.CarbonTxTypeOracle, stx)
}

type verifyImpactArguments struct {
	Url     string
	Index   uint64
	Nonce   uint64
	Skey    string
	Project uint64
}

var verifyImpactArgs verifyImpactArguments

var verifyImpactCmd = &cobra.Command{
	Use:   "verify-impact",
	Short: "Check a project's verification score against the threshold",
	Long:  ``,
	Run:   verifyImpactRun,
}

func init() {
	urlFlag(verifyImpactCmd, &verifyImpactArgs.Url)
	signerFlags(verifyImpactCmd, &verifyImpactArgs.Index, &verifyImpactArgs.Nonce, &verifyImpactArgs.Skey)
	verifyImpactCmd.Flags().Uint64VarP(&verifyImpactArgs.Project, "project", "p", 0, "project id")
}

func verifyImpactRun(cmd *cobra.Command, args []string) {
	stx := &tx.VerifyImpactTx{Project: verifyImpactArgs.Project}
	sendTx(verifyImpactArgs.Url, verifyImpactArgs.Skey, verifyImpactArgs.Index, verifyImpactArgs.Nonce, tx.CarbonTxTypeVerifyImpact, stx)
}
