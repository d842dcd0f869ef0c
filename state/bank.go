package state

// Native currency and reward-token primitives. Balances live on the account
// bodies; the escrow account doubles as the ledger's own custody for bid
// escrow and sale settlement.

func (s *State) transferNative(from, to *Account, amount uint64) error {
	if from.Balance < amount {
		return ErrInsufficientFunds
	}
	from.Balance -= amount
	to.Balance += amount
	s.touchAccount(from, ModifiedFlagMod)
	s.touchAccount(to, ModifiedFlagMod)
	return nil
}

// mintNative credits freshly minted native currency. Only the admin fund
// bridge reaches this.
func (s *State) mintNative(to *Account, amount uint64) {
	to.Balance += amount
	s.touchAccount(to, ModifiedFlagMod)
}

// mintReward credits fungible reward tokens.
func (s *State) mintReward(to *Account, amount uint64) {
	to.RewardBalance += amount
	s.touchAccount(to, ModifiedFlagMod)
}

func (s *State) escrowAccount() (*Account, error) {
	return s.GetAccount(EscrowAccountIdx)
}

// EscrowBalance is the native currency currently held by the ledger itself.
// It must equal the sum of current highest bids over active auctions.
func (s *State) EscrowBalance() (uint64, error) {
	esc, err := s.escrowAccount()
	if err != nil {
		return 0, err
	}
	return esc.Balance, nil
}
