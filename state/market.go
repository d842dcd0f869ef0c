package state

import (
	"encoding/json"
	"fmt"

	"github.com/carbonledger/carbond/config"
	"github.com/carbonledger/carbond/tx"
	carbontypes "github.com/carbonledger/carbond/types"
)

func (s *State) getListing(id uint64) (*Listing, error) {
	if l, ok := s.listings[id]; ok {
		return l, nil
	}
	val, err := s.db.Get([]byte(fmt.Sprintf(KeyListingBody, id)))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	l := new(Listing)
	if err = json.Unmarshal(val, l); err != nil {
		return nil, err
	}
	s.listings[id] = l
	return l, nil
}

func (s *State) GetListing(record uint64) (*Listing, error) {
	l, err := s.getListing(record)
	if err != nil || l == nil {
		return nil, err
	}
	return l.Clone(), nil
}

func (s *State) touchListing(l *Listing) {
	s.listings[l.Record] = l
	s.modifiedListings[l.Record] = true
}

func (s *State) getAuction(id uint64) (*Auction, error) {
	if a, ok := s.auctions[id]; ok {
		return a, nil
	}
	val, err := s.db.Get([]byte(fmt.Sprintf(KeyAuctionBody, id)))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	a := new(Auction)
	if err = json.Unmarshal(val, a); err != nil {
		return nil, err
	}
	s.auctions[id] = a
	return a, nil
}

func (s *State) GetAuction(id uint64) (*Auction, error) {
	a, err := s.getAuction(id)
	if err != nil || a == nil {
		return nil, err
	}
	return a.Clone(), nil
}

func (s *State) touchAuction(a *Auction) {
	s.auctions[a.Id] = a
	s.modifiedAuctions[a.Id] = true
}

// GetBid returns the recorded bid history entry for (auction, bidder).
func (s *State) GetBid(auction, bidder uint64) (*BidRecord, error) {
	for i := len(s.newBids) - 1; i >= 0; i-- {
		if s.newBids[i].Auction == auction && s.newBids[i].Bidder == bidder {
			b := *s.newBids[i]
			return &b, nil
		}
	}
	val, err := s.db.Get([]byte(fmt.Sprintf(KeyBidBody, auction, bidder)))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	b := new(BidRecord)
	if err = json.Unmarshal(val, b); err != nil {
		return nil, err
	}
	return b, nil
}

// List puts a record up for fixed-price sale. Custody moves to the escrow
// account for the life of the listing; an active listing by the same seller
// is overwritten in place.
func (s *State) List(wtx *tx.ListTx, caller uint64, checkOnly bool) (event *carbontypes.EventListed, err error) {
	if s.header.Paused {
		return nil, ErrPaused
	}
	if wtx.Price == 0 {
		return nil, ErrInvalidPrice
	}
	r, err := s.getRecord(wtx.Record)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	l, err := s.getListing(wtx.Record)
	if err != nil {
		return nil, err
	}
	if l != nil && l.Active && l.Seller == caller && r.Owner == EscrowAccountIdx {
		// reprice an existing listing
		if checkOnly {
			return nil, nil
		}
		l.Price = wtx.Price
		l.ListedHeight = s.header.Height
		s.touchListing(l)
		s.bumpNonce(a)
		return &carbontypes.EventListed{Record: r.Id, Seller: caller, Price: wtx.Price}, nil
	}
	if r.Owner != caller {
		return nil, ErrUnauthorized
	}
	if !s.transferEligible(r) {
		return nil, ErrNotEligible
	}
	esc, err := s.escrowAccount()
	if err != nil {
		return nil, err
	}
	if checkOnly {
		return nil, nil
	}
	if err = s.moveRecord(r, a, esc); err != nil {
		return nil, err
	}
	l = &Listing{
		Record:       r.Id,
		Seller:       caller,
		Price:        wtx.Price,
		ListedHeight: s.header.Height,
		Active:       true,
	}
	s.touchListing(l)
	s.bumpNonce(a)
	event = &carbontypes.EventListed{Record: r.Id, Seller: caller, Price: wtx.Price}
	return
}

// Buy settles a fixed-price sale: price moves buyer to seller, custody moves
// from escrow to buyer, the listing goes inactive. All of it or none of it.
func (s *State) Buy(wtx *tx.BuyTx, caller uint64, checkOnly bool) (event *carbontypes.EventSale, err error) {
	if s.header.Paused {
		return nil, ErrPaused
	}
	l, err := s.getListing(wtx.Record)
	if err != nil {
		return nil, err
	}
	if l == nil || !l.Active {
		return nil, ErrNotForSale
	}
	if l.Seller == caller {
		return nil, ErrUnauthorized
	}
	r, err := s.getRecord(wtx.Record)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	// the status gate can have moved since listing; settlement re-checks
	// it and refuses the sale if it no longer holds
	if r.Status != StatusVerified && r.Status != StatusCompleted {
		return nil, ErrNotEligible
	}
	buyer, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	seller, err := s.GetAccount(l.Seller)
	if err != nil {
		return nil, err
	}
	esc, err := s.escrowAccount()
	if err != nil {
		return nil, err
	}
	if buyer.Balance < l.Price {
		return nil, ErrInsufficientFunds
	}
	if buyer.RecordCount() >= config.MaxOwnedRecords(s.header.Height) {
		return nil, ErrCapacityExceeded
	}
	if checkOnly {
		return nil, nil
	}
	if err = s.transferNative(buyer, seller, l.Price); err != nil {
		return nil, err
	}
	if err = s.moveRecord(r, esc, buyer); err != nil {
		return nil, err
	}
	l.Active = false
	s.touchListing(l)
	s.bumpNonce(buyer)
	event = &carbontypes.EventSale{
		Record: r.Id,
		Seller: l.Seller,
		Buyer:  caller,
		Price:  l.Price,
	}
	return
}

// CancelListing returns the record to the seller and deactivates the
// listing.
func (s *State) CancelListing(wtx *tx.CancelListingTx, caller uint64, checkOnly bool) (event *carbontypes.EventCancelListing, err error) {
	if s.header.Paused {
		return nil, ErrPaused
	}
	l, err := s.getListing(wtx.Record)
	if err != nil {
		return nil, err
	}
	if l == nil || !l.Active {
		return nil, ErrNotForSale
	}
	if l.Seller != caller {
		return nil, ErrUnauthorized
	}
	r, err := s.getRecord(wtx.Record)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	seller, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	esc, err := s.escrowAccount()
	if err != nil {
		return nil, err
	}
	if seller.RecordCount() >= config.MaxOwnedRecords(s.header.Height) {
		return nil, ErrCapacityExceeded
	}
	if checkOnly {
		return nil, nil
	}
	if err = s.moveRecord(r, esc, seller); err != nil {
		return nil, err
	}
	l.Active = false
	s.touchListing(l)
	s.bumpNonce(seller)
	event = &carbontypes.EventCancelListing{Record: r.Id, Seller: caller}
	return
}

// CreateAuction opens an English auction and escrows the record's custody
// until finalization.
func (s *State) CreateAuction(wtx *tx.CreateAuctionTx, caller uint64, checkOnly bool) (event *carbontypes.EventAuctionCreated, err error) {
	if s.header.Paused {
		return nil, ErrPaused
	}
	if wtx.StartPrice == 0 {
		return nil, ErrInvalidPrice
	}
	r, err := s.getRecord(wtx.Record)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	if r.Owner != caller {
		return nil, ErrUnauthorized
	}
	if !s.transferEligible(r) {
		return nil, ErrNotEligible
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	esc, err := s.escrowAccount()
	if err != nil {
		return nil, err
	}
	if checkOnly {
		return nil, nil
	}
	if err = s.moveRecord(r, a, esc); err != nil {
		return nil, err
	}
	height := s.header.Height
	id := s.header.NextAuctionId
	s.header.NextAuctionId += 1
	auc := &Auction{
		Id:          id,
		Record:      r.Id,
		Seller:      caller,
		StartPrice:  wtx.StartPrice,
		CurrentBid:  wtx.StartPrice,
		StartHeight: height,
		EndHeight:   height + config.AuctionDurationBlocks(height),
		Active:      true,
	}
	s.touchAuction(auc)
	s.bumpNonce(a)
	event = &carbontypes.EventAuctionCreated{
		Auction:    id,
		Record:     r.Id,
		Seller:     caller,
		StartPrice: wtx.StartPrice,
		EndHeight:  auc.EndHeight,
	}
	return
}

// PlaceBid escrows the bid and refunds the previous highest bidder before
// accepting, so at most one bidder's funds are ever held per auction.
func (s *State) PlaceBid(wtx *tx.BidTx, caller uint64, checkOnly bool) (event *carbontypes.EventBid, err error) {
	if s.header.Paused {
		return nil, ErrPaused
	}
	auc, err := s.getAuction(wtx.Auction)
	if err != nil {
		return nil, err
	}
	if auc == nil {
		return nil, ErrNotFound
	}
	if !auc.Active || s.header.Height >= auc.EndHeight {
		return nil, ErrAuctionEnded
	}
	if auc.Seller == caller {
		return nil, ErrUnauthorized
	}
	if wtx.Amount <= auc.CurrentBid {
		return nil, ErrInvalidBid
	}
	bidder, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	if bidder.Balance < wtx.Amount {
		return nil, ErrInsufficientFunds
	}
	esc, err := s.escrowAccount()
	if err != nil {
		return nil, err
	}
	if checkOnly {
		return nil, nil
	}
	var refunded uint64
	prevBidder := auc.HighestBidder
	if prevBidder != 0 {
		prev, err1 := s.GetAccount(prevBidder)
		if err1 != nil {
			return nil, err1
		}
		if err1 = s.transferNative(esc, prev, auc.CurrentBid); err1 != nil {
			return nil, err1
		}
		refunded = auc.CurrentBid
	}
	if err = s.transferNative(bidder, esc, wtx.Amount); err != nil {
		return nil, err
	}
	auc.CurrentBid = wtx.Amount
	auc.HighestBidder = caller
	s.touchAuction(auc)
	s.newBids = append(s.newBids, &BidRecord{
		Auction: auc.Id,
		Bidder:  caller,
		Amount:  wtx.Amount,
		Height:  s.header.Height,
	})
	s.bumpNonce(bidder)
	event = &carbontypes.EventBid{
		Auction:    auc.Id,
		Bidder:     caller,
		Amount:     wtx.Amount,
		PrevBidder: prevBidder,
		Refunded:   refunded,
	}
	return
}

// FinalizeAuction settles an ended auction: the escrowed winning bid pays
// the seller and custody moves to the winner, or with no bidder the record
// simply returns to the seller. Any caller may finalize.
func (s *State) FinalizeAuction(wtx *tx.FinalizeAuctionTx, caller uint64, checkOnly bool) (event *carbontypes.EventAuctionSettled, err error) {
	if s.header.Paused {
		return nil, ErrPaused
	}
	auc, err := s.getAuction(wtx.Auction)
	if err != nil {
		return nil, err
	}
	if auc == nil {
		return nil, ErrNotFound
	}
	if !auc.Active {
		return nil, ErrAuctionEnded
	}
	if s.header.Height < auc.EndHeight {
		return nil, ErrAuctionActive
	}
	r, err := s.getRecord(auc.Record)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	a, err := s.GetAccount(caller)
	if err != nil {
		return nil, err
	}
	esc, err := s.escrowAccount()
	if err != nil {
		return nil, err
	}
	if auc.HighestBidder != 0 {
		// the status gate can have moved since creation; settlement
		// re-checks it and fails the whole call if it no longer holds
		if r.Status != StatusVerified && r.Status != StatusCompleted {
			return nil, ErrNotEligible
		}
		winner, err1 := s.GetAccount(auc.HighestBidder)
		if err1 != nil {
			return nil, err1
		}
		if winner.RecordCount() >= config.MaxOwnedRecords(s.header.Height) {
			return nil, ErrCapacityExceeded
		}
		seller, err1 := s.GetAccount(auc.Seller)
		if err1 != nil {
			return nil, err1
		}
		if checkOnly {
			return nil, nil
		}
		if err = s.transferNative(esc, seller, auc.CurrentBid); err != nil {
			return nil, err
		}
		if err = s.moveRecord(r, esc, winner); err != nil {
			return nil, err
		}
		auc.Active = false
		s.touchAuction(auc)
		s.bumpNonce(a)
		return &carbontypes.EventAuctionSettled{
			Auction: auc.Id,
			Record:  r.Id,
			Winner:  winner.Index,
			Amount:  auc.CurrentBid,
		}, nil
	}
	seller, err := s.GetAccount(auc.Seller)
	if err != nil {
		return nil, err
	}
	if seller.RecordCount() >= config.MaxOwnedRecords(s.header.Height) {
		return nil, ErrCapacityExceeded
	}
	if checkOnly {
		return nil, nil
	}
	if err = s.moveRecord(r, esc, seller); err != nil {
		return nil, err
	}
	auc.Active = false
	s.touchAuction(auc)
	s.bumpNonce(a)
	event = &carbontypes.EventAuctionSettled{
		Auction: auc.Id,
		Record:  r.Id,
		Winner:  0,
		Amount:  0,
	}
	return
}
