package types

import (
	"fmt"
	"strconv"

	abci "github.com/cometbft/cometbft/abci/types"
)

const (
	EventRegisterType        = "register"
	EventIssueType           = "issue"
	EventStatusType          = "status"
	EventTransferType        = "transfer"
	EventRetireType          = "retire"
	EventClaimType           = "claim"
	EventReferralType        = "referral"
	EventListedType          = "listed"
	EventSaleType            = "sale"
	EventCancelListingType   = "cancel_listing"
	EventAuctionCreatedType  = "auction_created"
	EventBidType             = "bid"
	EventAuctionSettledType  = "auction_settled"
	EventVerificationType    = "verification"
	EventOraclePointType     = "oracle_point"
	EventImpactVerifiedType  = "impact_verified"
	EventPauseType           = "pause"
	EventAdminUpdateType     = "admin_update"
	EventProjectUpdateType   = "project_update"
	EventFundType            = "fund"
)

type EventRegister struct {
	Account  uint64 `json:"account"`
	Address  string `json:"address"`
	Referrer uint64 `json:"referrer"`
}

type EventIssue struct {
	Record  uint64 `json:"record"`
	Owner   uint64 `json:"owner"`
	Project uint64 `json:"project"`
	Amount  uint64 `json:"amount"`
	Height  uint64 `json:"height"`
}

type EventStatus struct {
	Record uint64 `json:"record"`
	Status string `json:"status"`
	Caller uint64 `json:"caller"`
}

type EventTransfer struct {
	Record uint64 `json:"record"`
	From   uint64 `json:"from"`
	To     uint64 `json:"to"`
}

type EventRetire struct {
	Record  uint64 `json:"record"`
	Owner   uint64 `json:"owner"`
	Project uint64 `json:"project"`
	Amount  uint64 `json:"amount"`
}

type EventClaim struct {
	Record uint64 `json:"record"`
	Owner  uint64 `json:"owner"`
	Reward uint64 `json:"reward"`
}

type EventReferral struct {
	Account  uint64 `json:"account"`
	Referrer uint64 `json:"referrer"`
	Reward   uint64 `json:"reward"`
}

type EventListed struct {
	Record uint64 `json:"record"`
	Seller uint64 `json:"seller"`
	Price  uint64 `json:"price"`
}

type EventSale struct {
	Record uint64 `json:"record"`
	Seller uint64 `json:"seller"`
	Buyer  uint64 `json:"buyer"`
	Price  uint64 `json:"price"`
}

type EventCancelListing struct {
	Record uint64 `json:"record"`
	Seller uint64 `json:"seller"`
}

type EventAuctionCreated struct {
	Auction    uint64 `json:"auction"`
	Record     uint64 `json:"record"`
	Seller     uint64 `json:"seller"`
	StartPrice uint64 `json:"startPrice"`
	EndHeight  uint64 `json:"endHeight"`
}

type EventBid struct {
	Auction    uint64 `json:"auction"`
	Bidder     uint64 `json:"bidder"`
	Amount     uint64 `json:"amount"`
	PrevBidder uint64 `json:"prevBidder"`
	Refunded   uint64 `json:"refunded"`
}

// EventAuctionSettled reports finalization. Winner zero means no bid was
// placed and the record went back to the seller.
type EventAuctionSettled struct {
	Auction uint64 `json:"auction"`
	Record  uint64 `json:"record"`
	Winner  uint64 `json:"winner"`
	Amount  uint64 `json:"amount"`
}

type EventVerification struct {
	Project uint64 `json:"project"`
	Score   uint64 `json:"score"`
	Source  string `json:"source"`
}

type EventOraclePoint struct {
	Project  uint64 `json:"project"`
	DataType string `json:"dataType"`
	Value    string `json:"value"`
}

type EventImpactVerified struct {
	Project uint64 `json:"project"`
	Score   uint64 `json:"score"`
}

type EventPause struct {
	Paused bool `json:"paused"`
}

type EventAdminUpdate struct {
	Admin uint64 `json:"admin"`
}

type EventProjectUpdate struct {
	Project uint64 `json:"project"`
	Name    string `json:"name"`
}

type EventFund struct {
	To     uint64 `json:"to"`
	Amount uint64 `json:"amount"`
}

func attrs(event abci.Event) map[string]string {
	m := make(map[string]string, len(event.Attributes))
	for _, a := range event.Attributes {
		m[a.Key] = a.Value
	}
	return m
}

func attrUint(m map[string]string, key string) uint64 {
	v, _ := strconv.ParseUint(m[key], 10, 64)
	return v
}

func u(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func EncodeEventRegister(event *EventRegister) abci.Event {
	return abci.Event{
		Type: EventRegisterType,
		Attributes: []abci.EventAttribute{
			{Key: "account", Value: u(event.Account), Index: true},
			{Key: "address", Value: event.Address, Index: true},
			{Key: "referrer", Value: u(event.Referrer), Index: false},
		},
	}
}

func DecodeEventRegister(originEvent abci.Event) *EventRegister {
	m := attrs(originEvent)
	return &EventRegister{
		Account:  attrUint(m, "account"),
		Address:  m["address"],
		Referrer: attrUint(m, "referrer"),
	}
}

func EncodeEventIssue(event *EventIssue) abci.Event {
	return abci.Event{
		Type: EventIssueType,
		Attributes: []abci.EventAttribute{
			{Key: "record", Value: u(event.Record), Index: true},
			{Key: "owner", Value: u(event.Owner), Index: true},
			{Key: "project", Value: u(event.Project), Index: true},
			{Key: "amount", Value: u(event.Amount), Index: false},
			{Key: "height", Value: u(event.Height), Index: false},
		},
	}
}

func DecodeEventIssue(originEvent abci.Event) *EventIssue {
	m := attrs(originEvent)
	return &EventIssue{
		Record:  attrUint(m, "record"),
		Owner:   attrUint(m, "owner"),
		Project: attrUint(m, "project"),
		Amount:  attrUint(m, "amount"),
		Height:  attrUint(m, "height"),
	}
}

func EncodeEventStatus(event *EventStatus) abci.Event {
	return abci.Event{
		Type: EventStatusType,
		Attributes: []abci.EventAttribute{
			{Key: "record", Value: u(event.Record), Index: true},
			{Key: "status", Value: event.Status, Index: false},
			{Key: "caller", Value: u(event.Caller), Index: false},
		},
	}
}

func DecodeEventStatus(originEvent abci.Event) *EventStatus {
	m := attrs(originEvent)
	return &EventStatus{
		Record: attrUint(m, "record"),
		Status: m["status"],
		Caller: attrUint(m, "caller"),
	}
}

func EncodeEventTransfer(event *EventTransfer) abci.Event {
	return abci.Event{
		Type: EventTransferType,
		Attributes: []abci.EventAttribute{
			{Key: "record", Value: u(event.Record), Index: true},
			{Key: "from", Value: u(event.From), Index: true},
			{Key: "to", Value: u(event.To), Index: true},
		},
	}
}

func DecodeEventTransfer(originEvent abci.Event) *EventTransfer {
	m := attrs(originEvent)
	return &EventTransfer{
		Record: attrUint(m, "record"),
		From:   attrUint(m, "from"),
		To:     attrUint(m, "to"),
	}
}

func EncodeEventRetire(event *EventRetire) abci.Event {
	return abci.Event{
		Type: EventRetireType,
		Attributes: []abci.EventAttribute{
			{Key: "record", Value: u(event.Record), Index: true},
			{Key: "owner", Value: u(event.Owner), Index: true},
			{Key: "project", Value: u(event.Project), Index: false},
			{Key: "amount", Value: u(event.Amount), Index: false},
		},
	}
}

func DecodeEventRetire(originEvent abci.Event) *EventRetire {
	m := attrs(originEvent)
	return &EventRetire{
		Record:  attrUint(m, "record"),
		Owner:   attrUint(m, "owner"),
		Project: attrUint(m, "project"),
		Amount:  attrUint(m, "amount"),
	}
}

func EncodeEventClaim(event *EventClaim) abci.Event {
	return abci.Event{
		Type: EventClaimType,
		Attributes: []abci.EventAttribute{
			{Key: "record", Value: u(event.Record), Index: true},
			{Key: "owner", Value: u(event.Owner), Index: true},
			{Key: "reward", Value: u(event.Reward), Index: false},
		},
	}
}

func DecodeEventClaim(originEvent abci.Event) *EventClaim {
	m := attrs(originEvent)
	return &EventClaim{
		Record: attrUint(m, "record"),
		Owner:  attrUint(m, "owner"),
		Reward: attrUint(m, "reward"),
	}
}

func EncodeEventReferral(event *EventReferral) abci.Event {
	return abci.Event{
		Type: EventReferralType,
		Attributes: []abci.EventAttribute{
			{Key: "account", Value: u(event.Account), Index: true},
			{Key: "referrer", Value: u(event.Referrer), Index: true},
			{Key: "reward", Value: u(event.Reward), Index: false},
		},
	}
}

func EncodeEventListed(event *EventListed) abci.Event {
	return abci.Event{
		Type: EventListedType,
		Attributes: []abci.EventAttribute{
			{Key: "record", Value: u(event.Record), Index: true},
			{Key: "seller", Value: u(event.Seller), Index: true},
			{Key: "price", Value: u(event.Price), Index: false},
		},
	}
}

func DecodeEventListed(originEvent abci.Event) *EventListed {
	m := attrs(originEvent)
	return &EventListed{
		Record: attrUint(m, "record"),
		Seller: attrUint(m, "seller"),
		Price:  attrUint(m, "price"),
	}
}

func EncodeEventSale(event *EventSale) abci.Event {
	return abci.Event{
		Type: EventSaleType,
		Attributes: []abci.EventAttribute{
			{Key: "record", Value: u(event.Record), Index: true},
			{Key: "seller", Value: u(event.Seller), Index: true},
			{Key: "buyer", Value: u(event.Buyer), Index: true},
			{Key: "price", Value: u(event.Price), Index: false},
		},
	}
}

func DecodeEventSale(originEvent abci.Event) *EventSale {
	m := attrs(originEvent)
	return &EventSale{
		Record: attrUint(m, "record"),
		Seller: attrUint(m, "seller"),
		Buyer:  attrUint(m, "buyer"),
		Price:  attrUint(m, "price"),
	}
}

func EncodeEventCancelListing(event *EventCancelListing) abci.Event {
	return abci.Event{
		Type: EventCancelListingType,
		Attributes: []abci.EventAttribute{
			{Key: "record", Value: u(event.Record), Index: true},
			{Key: "seller", Value: u(event.Seller), Index: false},
		},
	}
}

func DecodeEventCancelListing(originEvent abci.Event) *EventCancelListing {
	m := attrs(originEvent)
	return &EventCancelListing{
		Record: attrUint(m, "record"),
		Seller: attrUint(m, "seller"),
	}
}

func EncodeEventAuctionCreated(event *EventAuctionCreated) abci.Event {
	return abci.Event{
		Type: EventAuctionCreatedType,
		Attributes: []abci.EventAttribute{
			{Key: "auction", Value: u(event.Auction), Index: true},
			{Key: "record", Value: u(event.Record), Index: true},
			{Key: "seller", Value: u(event.Seller), Index: true},
			{Key: "startPrice", Value: u(event.StartPrice), Index: false},
			{Key: "endHeight", Value: u(event.EndHeight), Index: false},
		},
	}
}

func DecodeEventAuctionCreated(originEvent abci.Event) *EventAuctionCreated {
	m := attrs(originEvent)
	return &EventAuctionCreated{
		Auction:    attrUint(m, "auction"),
		Record:     attrUint(m, "record"),
		Seller:     attrUint(m, "seller"),
		StartPrice: attrUint(m, "startPrice"),
		EndHeight:  attrUint(m, "endHeight"),
	}
}

func EncodeEventBid(event *EventBid) abci.Event {
	return abci.Event{
		Type: EventBidType,
		Attributes: []abci.EventAttribute{
			{Key: "auction", Value: u(event.Auction), Index: true},
			{Key: "bidder", Value: u(event.Bidder), Index: true},
			{Key: "amount", Value: u(event.Amount), Index: false},
			{Key: "prevBidder", Value: u(event.PrevBidder), Index: false},
			{Key: "refunded", Value: u(event.Refunded), Index: false},
		},
	}
}

func DecodeEventBid(originEvent abci.Event) *EventBid {
	m := attrs(originEvent)
	return &EventBid{
		Auction:    attrUint(m, "auction"),
		Bidder:     attrUint(m, "bidder"),
		Amount:     attrUint(m, "amount"),
		PrevBidder: attrUint(m, "prevBidder"),
		Refunded:   attrUint(m, "refunded"),
	}
}

func EncodeEventAuctionSettled(event *EventAuctionSettled) abci.Event {
	return abci.Event{
		Type: EventAuctionSettledType,
		Attributes: []abci.EventAttribute{
			{Key: "auction", Value: u(event.Auction), Index: true},
			{Key: "record", Value: u(event.Record), Index: true},
			{Key: "winner", Value: u(event.Winner), Index: true},
			{Key: "amount", Value: u(event.Amount), Index: false},
		},
	}
}

func DecodeEventAuctionSettled(originEvent abci.Event) *EventAuctionSettled {
	m := attrs(originEvent)
	return &EventAuctionSettled{
		Auction: attrUint(m, "auction"),
		Record:  attrUint(m, "record"),
		Winner:  attrUint(m, "winner"),
		Amount:  attrUint(m, "amount"),
	}
}

func EncodeEventVerification(event *EventVerification) abci.Event {
	return abci.Event{
		Type: EventVerificationType,
		Attributes: []abci.EventAttribute{
			{Key: "project", Value: u(event.Project), Index: true},
			{Key: "score", Value: u(event.Score), Index: false},
			{Key: "source", Value: event.Source, Index: false},
		},
	}
}

func DecodeEventVerification(originEvent abci.Event) *EventVerification {
	m := attrs(originEvent)
	return &EventVerification{
		Project: attrUint(m, "project"),
		Score:   attrUint(m, "score"),
		Source:  m["source"],
	}
}

func EncodeEventOraclePoint(event *EventOraclePoint) abci.Event {
	return abci.Event{
		Type: EventOraclePointType,
		Attributes: []abci.EventAttribute{
			{Key: "project", Value: u(event.Project), Index: true},
			{Key: "dataType", Value: event.DataType, Index: false},
			{Key: "value", Value: event.Value, Index: false},
		},
	}
}

func DecodeEventOraclePoint(originEvent abci.Event) *EventOraclePoint {
	m := attrs(originEvent)
	return &EventOraclePoint{
		Project:  attrUint(m, "project"),
		DataType: m["dataType"],
		Value:    m["value"],
	}
}

func EncodeEventImpactVerified(event *EventImpactVerified) abci.Event {
	return abci.Event{
		Type: EventImpactVerifiedType,
		Attributes: []abci.EventAttribute{
			{Key: "project", Value: u(event.Project), Index: true},
			{Key: "score", Value: u(event.Score), Index: false},
		},
	}
}

func DecodeEventImpactVerified(originEvent abci.Event) *EventImpactVerified {
	m := attrs(originEvent)
	return &EventImpactVerified{
		Project: attrUint(m, "project"),
		Score:   attrUint(m, "score"),
	}
}

func EncodeEventPause(event *EventPause) abci.Event {
	return abci.Event{
		Type: EventPauseType,
		Attributes: []abci.EventAttribute{
			{Key: "paused", Value: fmt.Sprintf("%v", event.Paused), Index: false},
		},
	}
}

func EncodeEventAdminUpdate(event *EventAdminUpdate) abci.Event {
	return abci.Event{
		Type: EventAdminUpdateType,
		Attributes: []abci.EventAttribute{
			{Key: "admin", Value: u(event.Admin), Index: false},
		},
	}
}

func EncodeEventProjectUpdate(event *EventProjectUpdate) abci.Event {
	return abci.Event{
		Type: EventProjectUpdateType,
		Attributes: []abci.EventAttribute{
			{Key: "project", Value: u(event.Project), Index: true},
			{Key: "name", Value: event.Name, Index: false},
		},
	}
}

func EncodeEventFund(event *EventFund) abci.Event {
	return abci.Event{
		Type: EventFundType,
		Attributes: []abci.EventAttribute{
			{Key: "to", Value: u(event.To), Index: true},
			{Key: "amount", Value: u(event.Amount), Index: false},
		},
	}
}
