package state

import (
	"github.com/carbonledger/carbond/config"
)

// InitLedger seeds a fresh chain: the escrow system account first, then one
// funded account per genesis validator. The first validator account becomes
// the admin.
func (s *State) InitLedger(chainId string, validatorPubkeys [][]byte) (err error) {
	s.SetChainId(chainId)
	s.AddSystemAccount(EscrowAccountIdx, &Account{})
	for i, pk := range validatorPubkeys {
		a := &Account{Balance: config.GenesisBalance()}
		a.SetPubKey(pk)
		if err = s.AddAccount(a); err != nil {
			return err
		}
		if i == 0 {
			s.header.Admin = a.Index
		}
	}
	return nil
}
