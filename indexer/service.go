package indexer

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Service is the HTTP read API backed by the sqlite mirror.
type Service struct {
	engine     *gin.Engine
	indexer    *ChainIndexer
	listenAddr string
}

func NewService(listenAddr string, indexer *ChainIndexer) *Service {
	r := gin.Default()
	s := &Service{
		engine:     r,
		indexer:    indexer,
		listenAddr: listenAddr,
	}
	s.engine.POST("/getRecords", s.handleGetRecords)
	s.engine.POST("/getTransfers", s.handleGetTransfers)
	s.engine.POST("/getListings", s.handleGetListings)
	s.engine.POST("/getAuctions", s.handleGetAuctions)
	s.engine.POST("/getBids", s.handleGetBids)
	s.engine.POST("/getClaims", s.handleGetClaims)
	s.engine.POST("/getVerification", s.handleGetVerification)
	s.engine.POST("/getOracles", s.handleGetOracles)
	return s
}

func (s *Service) Start() {
	s.engine.Run(s.listenAddr)
}

type GetRecordsReq struct {
	Owner    uint64 `json:"owner"`
	Project  uint64 `json:"project"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type GetRecordsResponse struct {
	Records []CreditRecord `json:"records"`
	Total   uint64         `json:"total"`
}

func (s *Service) handleGetRecords(c *gin.Context) {
	var req GetRecordsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	records, total, err := s.indexer.getRecords(req.Owner, req.Project, req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetRecordsResponse{Records: records, Total: total})
}

type GetTransfersReq struct {
	Record   uint64 `json:"record"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type GetTransfersResponse struct {
	Transfers []TransferLog `json:"transfers"`
	Total     uint64        `json:"total"`
}

func (s *Service) handleGetTransfers(c *gin.Context) {
	var req GetTransfersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logs, total, err := s.indexer.getTransfers(req.Record, req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetTransfersResponse{Transfers: logs, Total: total})
}

type GetListingsReq struct {
	ActiveOnly bool `json:"activeOnly"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
}

type GetListingsResponse struct {
	Listings []MarketListing `json:"listings"`
	Total    uint64          `json:"total"`
}

func (s *Service) handleGetListings(c *gin.Context) {
	var req GetListingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	listings, total, err := s.indexer.getListings(req.ActiveOnly, req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetListingsResponse{Listings: listings, Total: total})
}

type GetAuctionsReq struct {
	ActiveOnly bool `json:"activeOnly"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
}

type GetAuctionsResponse struct {
	Auctions []AuctionRow `json:"auctions"`
	Total    uint64       `json:"total"`
}

func (s *Service) handleGetAuctions(c *gin.Context) {
	var req GetAuctionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	auctions, total, err := s.indexer.getAuctions(req.ActiveOnly, req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetAuctionsResponse{Auctions: auctions, Total: total})
}

type GetBidsReq struct {
	Auction  uint64 `json:"auction"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type GetBidsResponse struct {
	Bids  []BidRow `json:"bids"`
	Total uint64   `json:"total"`
}

func (s *Service) handleGetBids(c *gin.Context) {
	var req GetBidsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bids, total, err := s.indexer.getBids(req.Auction, req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetBidsResponse{Bids: bids, Total: total})
}

type GetClaimsReq struct {
	Account  uint64 `json:"account"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type GetClaimsResponse struct {
	Claims []ClaimRow `json:"claims"`
	Total  uint64     `json:"total"`
}

func (s *Service) handleGetClaims(c *gin.Context) {
	var req GetClaimsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	claims, total, err := s.indexer.getClaims(req.Account, req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetClaimsResponse{Claims: claims, Total: total})
}

type GetVerificationReq struct {
	Project uint64 `json:"project"`
}

func (s *Service) handleGetVerification(c *gin.Context) {
	var req GetVerificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := s.indexer.getVerification(req.Project)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

type GetOraclesReq struct {
	Project  uint64 `json:"project"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type GetOraclesResponse struct {
	Points []OracleRow `json:"points"`
	Total  uint64      `json:"total"`
}

func (s *Service) handleGetOracles(c *gin.Context) {
	var req GetOraclesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	points, total, err := s.indexer.getOracles(req.Project, req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetOraclesResponse{Points: points, Total: total})
}
