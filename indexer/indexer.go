package indexer

import (
	"context"
	"errors"
	"time"

	carbontypes "github.com/carbonledger/carbond/types"
	abci "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	comethttp "github.com/cometbft/cometbft/rpc/client/http"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// ChainIndexer tails block results over RPC and mirrors ledger events into
// sqlite for the read API.
type ChainIndexer struct {
	logger        cmtlog.Logger
	Url           string
	Height        int64
	db            *gorm.DB
	cli           *comethttp.HTTP
	eventHandlers map[string]eventHandler
	ChainId       string
}

func NewChainIndexer(logger cmtlog.Logger, dbPath string, chainUrl string) (*ChainIndexer, error) {
	logger.Info("NewChainIndexer", "dbPath", dbPath, "url", chainUrl)
	cli, err := comethttp.New(chainUrl, "/websocket")
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Height{}, &CreditRecord{}, &ProjectRow{}, &TransferLog{},
		&MarketListing{}, &AuctionRow{}, &BidRow{}, &ClaimRow{}, &VerificationRow{},
		&OracleRow{}).Error; err != nil {
		return nil, err
	}
	h := Height{Id: 1}
	if err = db.First(&h).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ctx := context.Background()
	gres, err := cli.Genesis(ctx)
	if err != nil {
		logger.Error("get genesis fail", "err", err)
		return nil, err
	}

	c := ChainIndexer{
		logger:        logger.With("module", "indexer"),
		Url:           chainUrl,
		Height:        int64(h.Height + 1),
		db:            db,
		cli:           cli,
		eventHandlers: map[string]eventHandler{},
		ChainId:       gres.Genesis.ChainID,
	}

	c.eventHandlers = map[string]eventHandler{
		carbontypes.EventIssueType:          c.handleEventIssue,
		carbontypes.EventStatusType:         c.handleEventStatus,
		carbontypes.EventTransferType:       c.handleEventTransfer,
		carbontypes.EventRetireType:         c.handleEventRetire,
		carbontypes.EventClaimType:          c.handleEventClaim,
		carbontypes.EventListedType:         c.handleEventListed,
		carbontypes.EventSaleType:           c.handleEventSale,
		carbontypes.EventCancelListingType:  c.handleEventCancelListing,
		carbontypes.EventAuctionCreatedType: c.handleEventAuctionCreated,
		carbontypes.EventBidType:            c.handleEventBid,
		carbontypes.EventAuctionSettledType: c.handleEventAuctionSettled,
		carbontypes.EventVerificationType:   c.handleEventVerification,
		carbontypes.EventOraclePointType:    c.handleEventOraclePoint,
		carbontypes.EventImpactVerifiedType: c.handleEventImpactVerified,
	}
	return &c, nil
}

type eventHandler func(ctx context.Context, event abci.Event, height int64)

func (c *ChainIndexer) handleEvent(ctx context.Context, event abci.Event, height int64) {
	if h, ok := c.eventHandlers[event.Type]; ok {
		h(ctx, event, height)
	}
}

func (c *ChainIndexer) handleEventIssue(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventIssue(event)
	rec := CreditRecord{
		Id:          ev.Record,
		Owner:       ev.Owner,
		Project:     ev.Project,
		Amount:      ev.Amount,
		Status:      "pending",
		IssueHeight: uint64(height),
	}
	if err := c.db.Save(&rec).Error; err != nil {
		c.logger.Error("save record fail", "err", err)
	}
	var p ProjectRow
	if err := c.db.First(&p, ev.Project).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.logger.Error("get project fail", "err", err)
		return
	}
	p.Id = ev.Project
	p.TotalStaked += ev.Amount
	if err := c.db.Save(&p).Error; err != nil {
		c.logger.Error("save project fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventStatus(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventStatus(event)
	var rec CreditRecord
	if err := c.db.First(&rec, ev.Record).Error; err != nil {
		c.logger.Error("get record fail", "err", err)
		return
	}
	rec.Status = ev.Status
	if err := c.db.Save(&rec).Error; err != nil {
		c.logger.Error("save record fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventTransfer(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventTransfer(event)
	var rec CreditRecord
	if err := c.db.First(&rec, ev.Record).Error; err != nil {
		c.logger.Error("get record fail", "err", err)
		return
	}
	rec.Owner = ev.To
	if err := c.db.Save(&rec).Error; err != nil {
		c.logger.Error("save record fail", "err", err)
	}
	log := TransferLog{
		Record: ev.Record,
		From:   ev.From,
		To:     ev.To,
		Kind:   "transfer",
		Height: uint64(height),
	}
	if err := c.db.Create(&log).Error; err != nil {
		c.logger.Error("save transfer fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventRetire(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventRetire(event)
	var rec CreditRecord
	if err := c.db.First(&rec, ev.Record).Error; err != nil {
		c.logger.Error("get record fail", "err", err)
		return
	}
	rec.Retired = true
	rec.RetireHeight = uint64(height)
	if err := c.db.Save(&rec).Error; err != nil {
		c.logger.Error("save record fail", "err", err)
	}
	var p ProjectRow
	if err := c.db.First(&p, ev.Project).Error; err == nil {
		if p.TotalStaked >= ev.Amount {
			p.TotalStaked -= ev.Amount
		} else {
			p.TotalStaked = 0
		}
		if err := c.db.Save(&p).Error; err != nil {
			c.logger.Error("save project fail", "err", err)
		}
	}
}

func (c *ChainIndexer) handleEventClaim(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventClaim(event)
	row := ClaimRow{
		Record:  ev.Record,
		Account: ev.Owner,
		Reward:  ev.Reward,
		Height:  uint64(height),
	}
	if err := c.db.Create(&row).Error; err != nil {
		c.logger.Error("save claim fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventListed(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventListed(event)
	l := MarketListing{
		Record: ev.Record,
		Seller: ev.Seller,
		Price:  ev.Price,
		Height: uint64(height),
		Active: true,
	}
	if err := c.db.Save(&l).Error; err != nil {
		c.logger.Error("save listing fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventSale(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventSale(event)
	var l MarketListing
	if err := c.db.First(&l, ev.Record).Error; err == nil {
		l.Active = false
		if err := c.db.Save(&l).Error; err != nil {
			c.logger.Error("save listing fail", "err", err)
		}
	}
	var rec CreditRecord
	if err := c.db.First(&rec, ev.Record).Error; err == nil {
		rec.Owner = ev.Buyer
		if err := c.db.Save(&rec).Error; err != nil {
			c.logger.Error("save record fail", "err", err)
		}
	}
	log := TransferLog{
		Record: ev.Record,
		From:   ev.Seller,
		To:     ev.Buyer,
		Price:  ev.Price,
		Kind:   "sale",
		Height: uint64(height),
	}
	if err := c.db.Create(&log).Error; err != nil {
		c.logger.Error("save sale fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventCancelListing(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventCancelListing(event)
	var l MarketListing
	if err := c.db.First(&l, ev.Record).Error; err != nil {
		c.logger.Error("get listing fail", "err", err)
		return
	}
	l.Active = false
	if err := c.db.Save(&l).Error; err != nil {
		c.logger.Error("save listing fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventAuctionCreated(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventAuctionCreated(event)
	a := AuctionRow{
		Id:         ev.Auction,
		Record:     ev.Record,
		Seller:     ev.Seller,
		StartPrice: ev.StartPrice,
		CurrentBid: ev.StartPrice,
		EndHeight:  ev.EndHeight,
		Active:     true,
	}
	if err := c.db.Save(&a).Error; err != nil {
		c.logger.Error("save auction fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventBid(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventBid(event)
	var a AuctionRow
	if err := c.db.First(&a, ev.Auction).Error; err != nil {
		c.logger.Error("get auction fail", "err", err)
		return
	}
	a.CurrentBid = ev.Amount
	a.HighestBidder = ev.Bidder
	if err := c.db.Save(&a).Error; err != nil {
		c.logger.Error("save auction fail", "err", err)
	}
	bid := BidRow{
		Auction: ev.Auction,
		Bidder:  ev.Bidder,
		Amount:  ev.Amount,
		Height:  uint64(height),
	}
	if err := c.db.Create(&bid).Error; err != nil {
		c.logger.Error("save bid fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventAuctionSettled(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventAuctionSettled(event)
	var a AuctionRow
	if err := c.db.First(&a, ev.Auction).Error; err != nil {
		c.logger.Error("get auction fail", "err", err)
		return
	}
	a.Active = false
	a.Winner = ev.Winner
	a.FinalPrice = ev.Amount
	a.SettleHeight = uint64(height)
	if err := c.db.Save(&a).Error; err != nil {
		c.logger.Error("save auction fail", "err", err)
	}
	if ev.Winner != 0 {
		var rec CreditRecord
		if err := c.db.First(&rec, ev.Record).Error; err == nil {
			rec.Owner = ev.Winner
			if err := c.db.Save(&rec).Error; err != nil {
				c.logger.Error("save record fail", "err", err)
			}
		}
		log := TransferLog{
			Record: ev.Record,
			From:   a.Seller,
			To:     ev.Winner,
			Price:  ev.Amount,
			Kind:   "auction",
			Height: uint64(height),
		}
		if err := c.db.Create(&log).Error; err != nil {
			c.logger.Error("save auction sale fail", "err", err)
		}
	}
}

func (c *ChainIndexer) handleEventVerification(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventVerification(event)
	v := VerificationRow{
		Project: ev.Project,
		Score:   ev.Score,
		Source:  ev.Source,
		Height:  uint64(height),
	}
	if err := c.db.Save(&v).Error; err != nil {
		c.logger.Error("save verification fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventOraclePoint(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventOraclePoint(event)
	var o OracleRow
	err := c.db.Where("project = ? AND data_type = ?", ev.Project, ev.DataType).First(&o).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.logger.Error("get oracle point fail", "err", err)
		return
	}
	o.Project = ev.Project
	o.DataType = ev.DataType
	o.Value = ev.Value
	o.Height = uint64(height)
	if err := c.db.Save(&o).Error; err != nil {
		c.logger.Error("save oracle point fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventImpactVerified(ctx context.Context, event abci.Event, height int64) {
	ev := carbontypes.DecodeEventImpactVerified(event)
	var v VerificationRow
	if err := c.db.First(&v, ev.Project).Error; err != nil {
		c.logger.Error("get verification fail", "err", err)
		return
	}
	v.ImpactPassed = true
	v.ImpactHeight = uint64(height)
	if err := c.db.Save(&v).Error; err != nil {
		c.logger.Error("save verification fail", "err", err)
	}
}

func (c *ChainIndexer) reconnect() {
	if !c.cli.IsRunning() {
		c.cli.Stop()
		cli, err := comethttp.New(c.Url, "/websocket")
		if err != nil {
			c.logger.Error("reconnect fail", "err", err)
			return
		}
		c.cli = cli
	}
}

func (c *ChainIndexer) Start(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b, err := c.cli.Status(context.TODO())
			if err != nil {
				c.logger.Error("get status fail", "err", err)
				c.reconnect()
				continue
			}
			for b.SyncInfo.LatestBlockHeight > c.Height {
				c.logger.Info("indexer syncing", "height", c.Height)
				events, err := c.cli.BlockResults(ctx, &c.Height)
				if err != nil {
					c.logger.Error("get block results fail", "err", err)
					c.reconnect()
					break
				}
				for _, res := range events.TxsResults {
					if res.Code != 0 {
						continue
					}
					for _, event := range res.Events {
						c.handleEvent(ctx, event, c.Height)
					}
				}
				if err := c.db.Save(&Height{
					Id:     1,
					Height: uint64(c.Height),
				}).Error; err != nil {
					c.logger.Error("save height fail", "err", err)
					break
				}
				c.Height++
			}
		}
	}
}

func (c *ChainIndexer) getRecords(owner, project uint64, page, pageSize int) (records []CreditRecord, total uint64, err error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	q := c.db.Model(&CreditRecord{})
	if owner != 0 {
		q = q.Where("owner = ?", owner)
	}
	if project != 0 {
		q = q.Where("project = ?", project)
	}
	if err = q.Count(&total).Error; err != nil {
		return
	}
	err = q.Order("id asc").Offset(page * pageSize).Limit(pageSize).Find(&records).Error
	return
}

func (c *ChainIndexer) getTransfers(record uint64, page, pageSize int) (logs []TransferLog, total uint64, err error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	q := c.db.Model(&TransferLog{})
	if record != 0 {
		q = q.Where("record = ?", record)
	}
	if err = q.Count(&total).Error; err != nil {
		return
	}
	err = q.Order("height desc").Offset(page * pageSize).Limit(pageSize).Find(&logs).Error
	return
}

func (c *ChainIndexer) getListings(activeOnly bool, page, pageSize int) (listings []MarketListing, total uint64, err error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	q := c.db.Model(&MarketListing{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err = q.Count(&total).Error; err != nil {
		return
	}
	err = q.Order("height desc").Offset(page * pageSize).Limit(pageSize).Find(&listings).Error
	return
}

func (c *ChainIndexer) getAuctions(activeOnly bool, page, pageSize int) (auctions []AuctionRow, total uint64, err error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	q := c.db.Model(&AuctionRow{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err = q.Count(&total).Error; err != nil {
		return
	}
	err = q.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&auctions).Error
	return
}

func (c *ChainIndexer) getBids(auction uint64, page, pageSize int) (bids []BidRow, total uint64, err error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	q := c.db.Model(&BidRow{}).Where("auction = ?", auction)
	if err = q.Count(&total).Error; err != nil {
		return
	}
	err = q.Order("height desc").Offset(page * pageSize).Limit(pageSize).Find(&bids).Error
	return
}

func (c *ChainIndexer) getClaims(account uint64, page, pageSize int) (claims []ClaimRow, total uint64, err error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	q := c.db.Model(&ClaimRow{})
	if account != 0 {
		q = q.Where("account = ?", account)
	}
	if err = q.Count(&total).Error; err != nil {
		return
	}
	err = q.Order("height desc").Offset(page * pageSize).Limit(pageSize).Find(&claims).Error
	return
}

func (c *ChainIndexer) getVerification(project uint64) (v VerificationRow, err error) {
	err = c.db.First(&v, project).Error
	return
}

func (c *ChainIndexer) getOracles(project uint64, page, pageSize int) (points []OracleRow, total uint64, err error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	q := c.db.Model(&OracleRow{}).Where("project = ?", project)
	if err = q.Count(&total).Error; err != nil {
		return
	}
	err = q.Order("height desc").Offset(page * pageSize).Limit(pageSize).Find(&points).Error
	return
}
