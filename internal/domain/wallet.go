package domain

import "time"

// Wallet Model. Monetary fields are integer cents.
type Wallet struct {
	ID          uint      `gorm:"primaryKey"`           // Primary key
	UserID      uint      `gorm:"uniqueIndex;not null"` // Foreign key to User, one wallet per user
	Balance     int64     `gorm:"not null;default:0"`   // Current balance
	TotalEarned int64     `gorm:"not null;default:0"`   // Lifetime credits
	TotalSpent  int64     `gorm:"not null;default:0"`   // Lifetime debits
	CreatedAt   time.Time // Creation time
	UpdatedAt   time.Time // Last mutation time
}
