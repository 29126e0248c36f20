package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"creator_wallet/internal/ledger"     // Wallet ledger
	"creator_wallet/internal/middleware" // JWT and admin middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Deps carries everything the handlers need
type Deps struct {
	DB        *gorm.DB        // Relational store
	Ledger    *ledger.Service // Wallet ledger
	Redis     *redis.Client   // Cache, nil disables caching
	JWTSecret string          // Secret for signing and verifying tokens
	CacheTTL  time.Duration   // Lifetime of cached responses
}

// RegisterRoutes mounts every route on r
func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/healthz", HealthHandler(d.DB)) // Liveness probe

	// Auth routes
	r.POST("/user", RegisterHandler(d.DB))                  // Registration endpoint
	r.POST("/user/login", LoginHandler(d.DB, d.JWTSecret)) // Login endpoint

	// Wallet routes (protected by JWT)
	walletGroup := r.Group("/wallet")
	walletGroup.Use(middleware.JWTAuthMiddleware(d.JWTSecret))
	walletGroup.GET("", GetWalletHandler(d.Ledger, d.Redis, d.CacheTTL))                          // Wallet with recent transactions
	walletGroup.POST("/transactions", CreateTransactionHandler(d.Ledger, d.Redis))                // Record any transaction kind
	walletGroup.POST("/deposit", DepositHandler(d.Ledger, d.Redis))                               // Deposit shortcut
	walletGroup.POST("/withdraw", WithdrawHandler(d.Ledger, d.Redis))                             // Withdrawal shortcut
	walletGroup.GET("/transactions", GetTransactionHistoryHandler(d.Ledger, d.Redis, d.CacheTTL)) // Paginated history

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.AdminOnlyMiddleware(d.DB))
	adminGroup.GET("/users", ListUsersHandler(d.DB, d.Redis, d.CacheTTL))                   // List users endpoint
	adminGroup.GET("/transactions", ListTransactionsHandler(d.Ledger, d.Redis, d.CacheTTL)) // List transactions endpoint
}

// HealthHandler reports whether the database is reachable
func HealthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
