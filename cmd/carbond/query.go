package main

import (
	"context"
	"fmt"

	"github.com/cometbft/cometbft/rpc/client/http"
	"github.com/spf13/cobra"
)

type queryArguments struct {
	Url      string
	Path     string
	Id       uint64
	DataType string
}

var queryArgs queryArguments

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query ledger state by path and id",
	Long:  `Paths: /records/ /projects/ /listings/ /auctions/ /verifications/ /oracles/ /rewards/ /params/.`,
	Run:   queryRun,
}

func init() {
	urlFlag(queryCmd, &queryArgs.Url)
	queryCmd.Flags().StringVarP(&queryArgs.Path, "path", "p", "/records/", "query path")
	queryCmd.Flags().Uint64VarP(&queryArgs.Id, "id", "i", 0, "entity id")
	queryCmd.Flags().StringVarP(&queryArgs.DataType, "dataType", "t", "", "oracle data type, for /oracles/")
}

func uintToData(v uint64) []byte {
	if v == 0 {
		return nil
	}
	dat := make([]byte, 0, 8)
	started := false
	for shift := 56; shift >= 0; shift -= 8 {
		b := byte(v >> uint(shift))
		if b != 0 || started || shift == 0 {
			dat = append(dat, b)
			started = true
		}
	}
	return dat
}

func queryRun(cmd *cobra.Command, args []string) {
	cli, err := http.New(queryArgs.Url, "/websocket")
	if err != nil {
		fmt.Printf("new client err:%v\n", err)
		return
	}
	dat := uintToData(queryArgs.Id)
	if queryArgs.DataType != "" {
		dat = []byte(fmt.Sprintf("%v:%s", queryArgs.Id, queryArgs.DataType))
	}
	res, err := cli.ABCIQuery(context.Background(), queryArgs.Path, dat)
	if err != nil {
		fmt.Printf("request err:%v\n", err)
		return
	}
	if res.Response.Code != 0 {
		fmt.Printf("query failed code:%v log:%v\n", res.Response.Code, res.Response.Log)
		return
	}
	fmt.Printf("height:%v\n%s\n", res.Response.Height, string(res.Response.Value))
}
