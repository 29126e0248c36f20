package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`                                    // Primary key
	Email    string `gorm:"size:191;uniqueIndex;not null" json:"email"`              // Unique login identity
	Name     string `gorm:"size:100" json:"name"`                                    // Display name
	Password string `gorm:"not null" json:"-"`                                       // Hashed password
	Role     string `gorm:"size:20;default:user" json:"role"`                        // Role: user or admin
	Wallet   Wallet `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"` // One-to-one relationship with Wallet
}

// RoleAdmin grants access to the admin routes
const RoleAdmin = "admin"
