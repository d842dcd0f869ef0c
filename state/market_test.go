package state

import (
	"testing"

	"github.com/carbonledger/carbond/config"
	"github.com/carbonledger/carbond/tx"
	"github.com/stretchr/testify/require"
)

func TestListAndBuy(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	seller := newTestAccount(t, s, 0)
	buyer := newTestAccount(t, s, 1000)

	id := issueVerified(t, s, seller, 1, 100)

	_, err := s.List(&tx.ListTx{Record: id, Price: 0}, seller, false)
	require.ErrorIs(err, ErrInvalidPrice)

	lev, err := s.List(&tx.ListTx{Record: id, Price: 250}, seller, false)
	require.NoError(err)
	require.Equal(uint64(250), lev.Price)

	// custody sits with the escrow account while listed
	got, err := s.OwnerOf(id)
	require.NoError(err)
	require.Equal(uint64(EscrowAccountIdx), got)

	bev, err := s.Buy(&tx.BuyTx{Record: id}, buyer, false)
	require.NoError(err)
	require.Equal(seller, bev.Seller)
	require.Equal(uint64(250), bev.Price)

	got, err = s.OwnerOf(id)
	require.NoError(err)
	require.Equal(buyer, got)
	b, err := s.GetAccount(buyer)
	require.NoError(err)
	require.Equal(uint64(750), b.Balance)
	sa, err := s.GetAccount(seller)
	require.NoError(err)
	require.Equal(uint64(250), sa.Balance)

	l, err := s.GetListing(id)
	require.NoError(err)
	require.False(l.Active)
	_, err = s.Buy(&tx.BuyTx{Record: id}, buyer, false)
	require.ErrorIs(err, ErrNotForSale)
}

func TestListReprice(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	seller := newTestAccount(t, s, 0)

	id := issueVerified(t, s, seller, 1, 100)
	_, err := s.List(&tx.ListTx{Record: id, Price: 250}, seller, false)
	require.NoError(err)

	// relisting an active listing updates the price in place
	_, err = s.List(&tx.ListTx{Record: id, Price: 300}, seller, false)
	require.NoError(err)
	l, err := s.GetListing(id)
	require.NoError(err)
	require.Equal(uint64(300), l.Price)
	require.True(l.Active)

	got, err := s.OwnerOf(id)
	require.NoError(err)
	require.Equal(uint64(EscrowAccountIdx), got)
}

func TestListRequiresEligibility(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	seller := newTestAccount(t, s, 0)
	other := newTestAccount(t, s, 0)

	ev, err := s.Issue(&tx.IssueTx{Project: 1, Amount: 100}, seller, false)
	require.NoError(err)

	_, err = s.List(&tx.ListTx{Record: ev.Record, Price: 100}, seller, false)
	require.ErrorIs(err, ErrNotEligible)
	_, err = s.List(&tx.ListTx{Record: ev.Record, Price: 100}, other, false)
	require.ErrorIs(err, ErrUnauthorized)
	_, err = s.List(&tx.ListTx{Record: 999, Price: 100}, seller, false)
	require.ErrorIs(err, ErrNotFound)
}

func TestBuyRejections(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	seller := newTestAccount(t, s, 0)
	poor := newTestAccount(t, s, 10)

	id := issueVerified(t, s, seller, 1, 100)
	_, err := s.List(&tx.ListTx{Record: id, Price: 250}, seller, false)
	require.NoError(err)

	_, err = s.Buy(&tx.BuyTx{Record: id}, seller, false)
	require.ErrorIs(err, ErrUnauthorized)
	_, err = s.Buy(&tx.BuyTx{Record: id}, poor, false)
	require.ErrorIs(err, ErrInsufficientFunds)
	_, err = s.Buy(&tx.BuyTx{Record: 999}, poor, false)
	require.ErrorIs(err, ErrNotForSale)
}

func TestCancelListing(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	seller := newTestAccount(t, s, 0)
	other := newTestAccount(t, s, 0)

	id := issueVerified(t, s, seller, 1, 100)
	_, err := s.List(&tx.ListTx{Record: id, Price: 250}, seller, false)
	require.NoError(err)

	_, err = s.CancelListing(&tx.CancelListingTx{Record: id}, other, false)
	require.ErrorIs(err, ErrUnauthorized)

	_, err = s.CancelListing(&tx.CancelListingTx{Record: id}, seller, false)
	require.NoError(err)
	got, err := s.OwnerOf(id)
	require.NoError(err)
	require.Equal(seller, got)
	l, err := s.GetListing(id)
	require.NoError(err)
	require.False(l.Active)

	_, err = s.CancelListing(&tx.CancelListingTx{Record: id}, seller, false)
	require.ErrorIs(err, ErrNotForSale)
}

func TestCreateAuction(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	seller := newTestAccount(t, s, 0)

	id := issueVerified(t, s, seller, 1, 100)

	_, err := s.CreateAuction(&tx.CreateAuctionTx{Record: id, StartPrice: 0}, seller, false)
	require.ErrorIs(err, ErrInvalidPrice)

	aev, err := s.CreateAuction(&tx.CreateAuctionTx{Record: id, StartPrice: 100}, seller, false)
	require.NoError(err)
	require.Equal(uint64(1), aev.Auction)
	require.Equal(s.Height()+config.AuctionDurationBlocks(s.Height()), aev.EndHeight)

	auc, err := s.GetAuction(aev.Auction)
	require.NoError(err)
	require.True(auc.Active)
	require.Equal(uint64(100), auc.CurrentBid)
	require.Zero(auc.HighestBidder)

	got, err := s.OwnerOf(id)
	require.NoError(err)
	require.Equal(uint64(EscrowAccountIdx), got)
}

func TestPlaceBid(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	seller := newTestAccount(t, s, 1000)
	alice := newTestAccount(t, s, 1000)
	bob := newTestAccount(t, s, 1000)

	id := issueVerified(t, s, seller, 1, 100)
	aev, err := s.CreateAuction(&tx.CreateAuctionTx{Record: id, StartPrice: 100}, seller, false)
	require.NoError(err)

	_, err = s.PlaceBid(&tx.BidTx{Auction: aev.Auction, Amount: 200}, seller, false)
	require.ErrorIs(err, ErrUnauthorized)
	_, err = s.PlaceBid(&tx.BidTx{Auction: aev.Auction, Amount: 100}, alice, false)
	require.ErrorIs(err, ErrInvalidBid)
	_, err = s.PlaceBid(&tx.BidTx{Auction: aev.Auction, Amount: 2000}, alice, false)
	require.ErrorIs(err, ErrInsufficientFunds)
	_, err = s.PlaceBid(&tx.BidTx{Auction: 999, Amount: 200}, alice, false)
	require.ErrorIs(err, ErrNotFound)

	bev, err := s.PlaceBid(&tx.BidTx{Auction: aev.Auction, Amount: 200}, alice, false)
	require.NoError(err)
	require.Zero(bev.PrevBidder)
	require.Zero(bev.Refunded)

	esc, err := s.EscrowBalance()
	require.NoError(err)
	require.Equal(uint64(200), esc)

	// a higher bid refunds the previous bidder in the same call
	bev, err = s.PlaceBid(&tx.BidTx{Auction: aev.Auction, Amount: 300}, bob, false)
	require.NoError(err)
	require.Equal(alice, bev.PrevBidder)
	require.Equal(uint64(200), bev.Refunded)

	a, err := s.GetAccount(alice)
	require.NoError(err)
	require.Equal(uint64(1000), a.Balance)
	esc, err = s.EscrowBalance()
	require.NoError(err)
	require.Equal(uint64(300), esc)

	bid, err := s.GetBid(aev.Auction, bob)
	require.NoError(err)
	require.Equal(uint64(300), bid.Amount)
}

func TestFinalizeAuctionWithWinner(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	seller := newTestAccount(t, s, 0)
	bidder := newTestAccount(t, s, 1000)

	id := issueVerified(t, s, seller, 1, 100)
	aev, err := s.CreateAuction(&tx.CreateAuctionTx{Record: id, StartPrice: 100}, seller, false)
	require.NoError(err)
	_, err = s.PlaceBid(&tx.BidTx{Auction: aev.Auction, Amount: 300}, bidder, false)
	require.NoError(err)

	_, err = s.FinalizeAuction(&tx.FinalizeAuctionTx{Auction: aev.Auction}, seller, false)
	require.ErrorIs(err, ErrAuctionActive)
	advance(s, config.AuctionDurationBlocks(s.Height()))

	_, err = s.PlaceBid(&tx.BidTx{Auction: aev.Auction, Amount: 400}, bidder, false)
	require.ErrorIs(err, ErrAuctionEnded)

	// any account may finalize an ended auction
	fev, err := s.FinalizeAuction(&tx.FinalizeAuctionTx{Auction: aev.Auction}, bidder, false)
	require.NoError(err)
	require.Equal(bidder, fev.Winner)
	require.Equal(uint64(300), fev.Amount)

	got, err := s.OwnerOf(id)
	require.NoError(err)
	require.Equal(bidder, got)
	sa, err := s.GetAccount(seller)
	require.NoError(err)
	require.Equal(uint64(300), sa.Balance)
	esc, err := s.EscrowBalance()
	require.NoError(err)
	require.Zero(esc)

	_, err = s.FinalizeAuction(&tx.FinalizeAuctionTx{Auction: aev.Auction}, seller, false)
	require.ErrorIs(err, ErrAuctionEnded)
}

func TestFinalizeAuctionNoBids(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	seller := newTestAccount(t, s, 0)

	id := issueVerified(t, s, seller, 1, 100)
	aev, err := s.CreateAuction(&tx.CreateAuctionTx{Record: id, StartPrice: 100}, seller, false)
	require.NoError(err)
	advance(s, config.AuctionDurationBlocks(s.Height()))

	fev, err := s.FinalizeAuction(&tx.FinalizeAuctionTx{Auction: aev.Auction}, seller, false)
	require.NoError(err)
	require.Zero(fev.Winner)

	got, err := s.OwnerOf(id)
	require.NoError(err)
	require.Equal(seller, got)
}

func TestFinalizeAuctionStatusRecheck(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	seller := newTestAccount(t, s, 0)
	bidder := newTestAccount(t, s, 1000)

	id := issueVerified(t, s, seller, 1, 100)
	aev, err := s.CreateAuction(&tx.CreateAuctionTx{Record: id, StartPrice: 100}, seller, false)
	require.NoError(err)
	_, err = s.PlaceBid(&tx.BidTx{Auction: aev.Auction, Amount: 300}, bidder, false)
	require.NoError(err)

	// the status gate moved after the bid; settlement with a winner must
	// re-check it and refuse
	_, err = s.UpdateStatus(&tx.UpdateStatusTx{Record: id, Status: "expired"}, s.Admin(), true, false)
	require.NoError(err)
	advance(s, config.AuctionDurationBlocks(s.Height()))

	_, err = s.FinalizeAuction(&tx.FinalizeAuctionTx{Auction: aev.Auction}, bidder, false)
	require.ErrorIs(err, ErrNotEligible)
	auc, err := s.GetAuction(aev.Auction)
	require.NoError(err)
	require.True(auc.Active)
}

func TestBuyStatusRecheck(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	seller := newTestAccount(t, s, 0)
	buyer := newTestAccount(t, s, 1000)

	id := issueVerified(t, s, seller, 1, 100)
	_, err := s.List(&tx.ListTx{Record: id, Price: 250}, seller, false)
	require.NoError(err)

	// the status gate moved after listing; the sale must refuse and the
	// listing stays live
	_, err = s.UpdateStatus(&tx.UpdateStatusTx{Record: id, Status: "expired"}, s.Admin(), true, false)
	require.NoError(err)

	_, err = s.Buy(&tx.BuyTx{Record: id}, buyer, false)
	require.ErrorIs(err, ErrNotEligible)

	b, err := s.GetAccount(buyer)
	require.NoError(err)
	require.Equal(uint64(1000), b.Balance)
	got, err := s.OwnerOf(id)
	require.NoError(err)
	require.Equal(uint64(EscrowAccountIdx), got)
	l, err := s.GetListing(id)
	require.NoError(err)
	require.True(l.Active)

	// moving the record back through the gate lets the sale settle
	_, err = s.UpdateStatus(&tx.UpdateStatusTx{Record: id, Status: "completed"}, s.Admin(), true, false)
	require.NoError(err)
	_, err = s.Buy(&tx.BuyTx{Record: id}, buyer, false)
	require.NoError(err)
	got, err = s.OwnerOf(id)
	require.NoError(err)
	require.Equal(buyer, got)
}

func TestPauseBlocksMarket(t *testing.T) {
	require := require.New(t)
	s := newTestState(t)
	seller := newTestAccount(t, s, 0)

	id := issueVerified(t, s, seller, 1, 100)
	_, err := s.SetPaused(&tx.PauseTx{Paused: true}, s.Admin(), false)
	require.NoError(err)

	_, err = s.List(&tx.ListTx{Record: id, Price: 100}, seller, false)
	require.ErrorIs(err, ErrPaused)
	_, err = s.CreateAuction(&tx.CreateAuctionTx{Record: id, StartPrice: 100}, seller, false)
	require.ErrorIs(err, ErrPaused)
	_, err = s.Issue(&tx.IssueTx{Project: 1, Amount: 1}, seller, false)
	require.ErrorIs(err, ErrPaused)
}
