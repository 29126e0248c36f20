package api

import (
	"fmt"      // Cache key formatting
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"creator_wallet/internal/domain"     // Importing domain models
	"creator_wallet/internal/ledger"     // Wallet ledger
	"creator_wallet/internal/middleware" // Authenticated user lookup
	"creator_wallet/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Money on the wire
	"github.com/sirupsen/logrus"    // Logging library
)

// TransactionRequest is the body of POST /wallet/transactions
type TransactionRequest struct {
	Type          string           `json:"type"`                          // Transaction kind
	Amount        *decimal.Decimal `json:"amount"`                        // Positive amount, at most two decimals
	Description   string           `json:"description" binding:"max=255"` // Optional free text
	RelatedUserID *uint            `json:"relatedUserId"`                 // Optional counterparty
}

// AmountRequest is the body of the deposit and withdrawal shortcuts
type AmountRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`     // Positive amount
	Description string           `json:"description" binding:"max=255"` // Optional free text
}

// walletView is the cached body of GET /wallet
type walletView struct {
	Wallet             WalletResponse        `json:"wallet"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
}

// historyView is the cached body of GET /wallet/transactions
type historyView struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
	Total        int64                 `json:"total"`
	TotalPages   int                   `json:"total_pages"`
}

// GetWalletHandler returns the caller's wallet and latest transactions, creating the wallet if needed
func GetWalletHandler(svc *ledger.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.WalletKey(userID)
		var view walletView
		// Serve from cache when possible
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &view); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"wallet": view.Wallet, "recentTransactions": view.RecentTransactions, "cached": true})
			return
		}
		wallet, err := svc.GetOrCreateWallet(ctx, userID)
		if err != nil {
			writeLedgerError(c, err, logrus.Fields{"user_id": userID}, "Failed to fetch wallet")
			return
		}
		recent, err := svc.ListRecentTransactions(ctx, userID, ledger.DefaultRecentLimit)
		if err != nil {
			writeLedgerError(c, err, logrus.Fields{"user_id": userID}, "Failed to fetch wallet")
			return
		}
		view = walletView{Wallet: newWalletResponse(*wallet), RecentTransactions: newTransactionResponses(recent)}
		_ = utils.SetCache(ctx, rdb, cacheKey, view, ttl) // Cache misses are not fatal
		c.JSON(http.StatusOK, gin.H{"wallet": view.Wallet, "recentTransactions": view.RecentTransactions, "cached": false})
	}
}

// CreateTransactionHandler records a transaction of any kind for the caller
func CreateTransactionHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req TransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Type == "" || req.Amount == nil || req.Amount.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Type and amount are required"})
			return
		}
		cents, err := domain.ToCents(*req.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ledger.ErrInvalidAmount.Error()})
			return
		}
		record(c, svc, rdb, ledger.Entry{
			UserID:        userID,
			Kind:          domain.TransactionKind(req.Type),
			Amount:        cents,
			Description:   req.Description,
			RelatedUserID: req.RelatedUserID,
		})
	}
}

// DepositHandler credits the caller's wallet
func DepositHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return amountHandler(svc, rdb, domain.KindDeposit)
}

// WithdrawHandler debits the caller's wallet
func WithdrawHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return amountHandler(svc, rdb, domain.KindWithdrawal)
}

func amountHandler(svc *ledger.Service, rdb *redis.Client, kind domain.TransactionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req AmountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		cents, err := domain.ToCents(*req.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		record(c, svc, rdb, ledger.Entry{UserID: userID, Kind: kind, Amount: cents, Description: req.Description})
	}
}

// record runs the entry through the ledger, invalidates the cached views it touches and answers 201
func record(c *gin.Context, svc *ledger.Service, rdb *redis.Client, entry ledger.Entry) {
	ctx := c.Request.Context()
	txn, err := svc.RecordTransaction(ctx, entry)
	if err != nil {
		writeLedgerError(c, err, logrus.Fields{
			"user_id": entry.UserID,
			"type":    entry.Kind,
			"amount":  entry.Amount,
		}, "Failed to create transaction")
		return
	}
	// Invalidate wallet, transaction history and admin listing caches
	if err := utils.DeleteCache(ctx, rdb, utils.WalletKey(entry.UserID)); err != nil {
		logrus.WithField("user_id", entry.UserID).WithError(err).Warn("Failed to invalidate wallet cache")
	}
	if err := utils.DeleteCachePrefix(ctx, rdb, utils.HistoryPrefix(entry.UserID)); err != nil {
		logrus.WithField("user_id", entry.UserID).WithError(err).Warn("Failed to invalidate history cache")
	}
	if err := utils.DeleteCachePrefix(ctx, rdb, utils.AdminPrefix); err != nil {
		logrus.WithField("user_id", entry.UserID).WithError(err).Warn("Failed to invalidate admin cache")
	}
	c.JSON(http.StatusCreated, newTransactionResponse(*txn))
}

// GetTransactionHistoryHandler returns the caller's transactions page by page
func GetTransactionHistoryHandler(svc *ledger.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		page, pageSize := pagination(c)
		kind := domain.TransactionKind(c.Query("type"))
		if kind != "" && !kind.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown transaction type"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.HistoryPrefix(userID) + fmt.Sprintf("page:%d:size:%d:type:%s", page, pageSize, kind)
		var view historyView
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &view); err == nil && found {
			c.JSON(http.StatusOK, historyBody(view, true))
			return
		}
		result, err := svc.Search(ctx, ledger.Filter{UserID: &userID, Kind: kind, Page: page, PageSize: pageSize})
		if err != nil {
			writeLedgerError(c, err, logrus.Fields{"user_id": userID}, "Failed to fetch transactions")
			return
		}
		view = historyView{
			Transactions: newTransactionResponses(result.Transactions),
			Page:         result.Page,
			PageSize:     result.PageSize,
			Total:        result.Total,
			TotalPages:   result.TotalPages,
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, view, ttl)
		c.JSON(http.StatusOK, historyBody(view, false))
	}
}

func historyBody(v historyView, cached bool) gin.H {
	return gin.H{
		"transactions": v.Transactions, // List of transactions
		"page":         v.Page,         // Current page
		"page_size":    v.PageSize,     // Page size
		"total":        v.Total,        // Total transactions
		"total_pages":  v.TotalPages,   // Total pages
		"cached":       cached,
	}
}

// pagination reads page and page_size, ignoring values out of range
func pagination(c *gin.Context) (page, pageSize int) {
	page = 1                          // Default page
	pageSize = ledger.DefaultPageSize // Default page size
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 && v <= ledger.MaxPageSize {
		pageSize = v
	}
	return page, pageSize
}
