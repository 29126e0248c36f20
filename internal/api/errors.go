package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"creator_wallet/internal/ledger" // Ledger errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// writeLedgerError maps ledger failures onto status codes.
// Unexpected errors are logged and answered with fallback.
func writeLedgerError(c *gin.Context, err error, fields logrus.Fields, fallback string) {
	switch {
	case errors.Is(err, ledger.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type and amount are required"})
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrUnknownKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
	case errors.Is(err, ledger.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, ledger.ErrRelatedUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Related user not found"})
	default:
		if fields == nil {
			fields = logrus.Fields{}
		}
		fields["error"] = err.Error()
		logrus.WithFields(fields).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
