package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation
	"time"     // Time parsing and durations

	"creator_wallet/internal/domain" // Importing domain models
	"creator_wallet/internal/ledger" // Wallet ledger
	"creator_wallet/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging
	"gorm.io/gorm"                 // GORM ORM library
)

// UserAdminResponse represents the user data returned to admin
type UserAdminResponse struct {
	ID     uint            `json:"id"`     // User ID
	Email  string          `json:"email"`  // Email
	Name   string          `json:"name"`   // Display name
	Role   string          `json:"role"`   // User role
	Wallet *WalletResponse `json:"wallet"` // Associated wallet, null until first access
}

type usersView struct {
	Users      []UserAdminResponse `json:"users"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	Total      int64               `json:"total"`
	TotalPages int                 `json:"total_pages"`
}

// ListUsersHandler returns all users with their wallet info
func ListUsersHandler(db *gorm.DB, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page, pageSize := pagination(c)
		cacheKey := utils.AdminPrefix + "users:page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
		var view usersView
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &view); err == nil && found {
			c.JSON(http.StatusOK, usersBody(view, true))
			return
		}
		var total int64
		if err := db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
			logrus.WithError(err).Error("Failed to count users")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
			return
		}
		var users []domain.User
		// Preload Wallet relation, apply offset and limit for pagination
		if err := db.WithContext(ctx).Preload("Wallet").Order("id").
			Offset((page - 1) * pageSize).Limit(pageSize).
			Find(&users).Error; err != nil {
			logrus.WithError(err).Error("Failed to fetch users")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		view = usersView{
			Users:      make([]UserAdminResponse, len(users)),
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: (int(total) + pageSize - 1) / pageSize,
		}
		for i, u := range users {
			view.Users[i] = UserAdminResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
			if u.Wallet.ID != 0 {
				w := newWalletResponse(u.Wallet)
				view.Users[i].Wallet = &w
			}
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, view, ttl)
		c.JSON(http.StatusOK, usersBody(view, false))
	}
}

func usersBody(v usersView, cached bool) gin.H {
	return gin.H{
		"users":       v.Users,      // List of users
		"page":        v.Page,       // Current page
		"page_size":   v.PageSize,   // Page size
		"total":       v.Total,      // Total number of users
		"total_pages": v.TotalPages, // Total pages
		"cached":      cached,       // Indicate whether the response is from cache
	}
}

// ListTransactionsHandler returns all transactions, with optional filtering by user, type, status or date
func ListTransactionsHandler(svc *ledger.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := adminFilter(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx := c.Request.Context()
		// Build cache key from all query params
		var keyParts []string
		for _, k := range []string{"user_id", "type", "status", "from", "to"} {
			keyParts = append(keyParts, k+"="+c.Query(k))
		}
		keyParts = append(keyParts, "page="+strconv.Itoa(filter.Page), "size="+strconv.Itoa(filter.PageSize))
		cacheKey := utils.AdminPrefix + "txs:" + strings.Join(keyParts, ":")

		var view historyView
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &view); err == nil && found {
			c.JSON(http.StatusOK, historyBody(view, true))
			return
		}
		result, err := svc.Search(ctx, filter)
		if err != nil {
			writeLedgerError(c, err, logrus.Fields{"query": c.Request.URL.RawQuery}, "Failed to fetch transactions")
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

type filterError string

func (e filterError) Error() string { return string(e) }

// adminFilter turns the admin query string into a ledger filter
func adminFilter(c *gin.Context) (ledger.Filter, error) {
	var f ledger.Filter
	f.Page, f.PageSize = pagination(c)
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return f, filterError("Invalid user_id")
		}
		uid := uint(id)
		f.UserID = &uid
	}
	if raw := c.Query("type"); raw != "" {
		f.Kind = domain.TransactionKind(raw)
		if !f.Kind.Valid() {
			return f, filterError("Unknown transaction type")
		}
	}
	if raw := c.Query("status"); raw != "" {
		f.Status = domain.TransactionStatus(raw)
	}
	for _, p := range []struct {
		key  string
		dest **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		raw := c.Query(p.key)
		if raw == "" {
			continue
		}
		t, err := parseTime(raw)
		if err != nil {
			return f, filterError("Invalid " + p.key + " date")
		}
		*p.dest = &t
	}
	return f, nil
}

// parseTime accepts RFC3339 timestamps or plain dates
func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}
