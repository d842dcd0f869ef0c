package main

import (
	"fmt"
	"os"
)

func main() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(pubkeyCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(issueCmd)
	rootCmd.AddCommand(issueBatchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(retireCmd)
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(referralCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(cancelListingCmd)
	rootCmd.AddCommand(createAuctionCmd)
	rootCmd.AddCommand(bidCmd)
	rootCmd.AddCommand(finalizeAuctionCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(setAdminCmd)
	rootCmd.AddCommand(setProjectCmd)
	rootCmd.AddCommand(fundCmd)
	rootCmd.AddCommand(adminStatusCmd)
	rootCmd.AddCommand(verificationCmd)
	rootCmd.AddCommand(oracleCmd)
	rootCmd.AddCommand(verifyImpactCmd)
	rootCmd.AddCommand(queryCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
