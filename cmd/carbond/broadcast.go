package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/carbonledger/carbond/crypto"
	"github.com/carbonledger/carbond/tx"
	"github.com/cometbft/cometbft/rpc/client/http"
)

// sendTx signs the payload with the key at skeyPath and broadcasts it. A
// zero nonce is filled from the live account state first.
func sendTx(url, skeyPath string, index, nonce uint64, txType tx.CarbonTxType, payload any) {
	cli, err := http.New(url, "/websocket")
	if err != nil {
		fmt.Printf("new client err:%v\n", err)
		return
	}
	ctx := context.Background()
	gres, err := cli.Genesis(ctx)
	if err != nil {
		fmt.Printf("get chain genesis err:%v\n", err)
		return
	}
	chainId := gres.Genesis.ChainID
	if nonce == 0 && txType != tx.CarbonTxTypeRegister {
		act, err := queryAccount(url, index, "")
		if err != nil {
			return
		}
		nonce = act.Nonce
	}
	btx := tx.CarbonTx{
		Version: tx.CarbonTxVersion1,
		Type:    txType,
		Nonce:   nonce,
		Account: index,
		Tx:      payload,
	}
	dat, err := btx.SigData([]byte(chainId))
	if err != nil {
		fmt.Printf("tx sign data err:%v\n", err)
		return
	}
	pv := crypto.LoadFilePV(skeyPath)
	sig, err := pv.Sign(dat)
	if err != nil {
		fmt.Printf("sign tx err:%v\n", err)
		return
	}
	btx.Sig = [][]byte{sig}
	dat, err = tx.MarshalCarbonTx(&btx)
	if err != nil {
		fmt.Printf("encode tx err:%v\n", err)
		return
	}
	fmt.Printf("tx:%v\n", hex.EncodeToString(dat))
	res, err := cli.BroadcastTxSync(ctx, dat)
	if err != nil {
		fmt.Printf("broadcast tx err:%v\n", err)
		return
	}
	out, _ := json.Marshal(res)
	fmt.Printf("%v\n", string(out))
}
