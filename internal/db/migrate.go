package db

import (
	"time" // Connection pool lifetimes

	"creator_wallet/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger levels
)

// Open connects to MySQL and configures the connection pool
func Open(dsn string, isProd bool) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	if isProd {
		cfg.Logger = logger.Default.LogMode(logger.Error) // Only log failing queries in production
	}
	db, err := gorm.Open(mysql.Open(dsn), cfg) // Open a connection to the database
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.Wallet{}, &domain.Transaction{}); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
