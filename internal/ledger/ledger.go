// Package ledger applies monetary movements to per-user wallets and keeps the
// append-only transaction log. Every balance change and its log entry commit
// together in one database transaction; debits are conditional updates bounded
// below by zero, so concurrent debits can never overdraw a wallet.
package ledger

import (
	"context" // Request scoping
	"errors"  // Error matching
	"fmt"     // Error wrapping
	"time"    // Clock

	"creator_wallet/internal/domain" // Domain models
	"creator_wallet/internal/events" // Event publishing

	"github.com/google/uuid"     // Transaction references
	"github.com/sirupsen/logrus" // Logging
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Upsert clauses
)

const (
	DefaultRecentLimit = 10  // Size of the recent transactions view
	DefaultPageSize    = 20  // History page size when none is requested
	MaxPageSize        = 100 // Upper bound for any listing
)

// Service is the wallet ledger
type Service struct {
	db  *gorm.DB
	bus events.Publisher
	now func() time.Time
}

// NewService builds a ledger over db. A nil bus disables event publishing.
func NewService(db *gorm.DB, bus events.Publisher) *Service {
	if bus == nil {
		bus = events.NopPublisher{}
	}
	return &Service{db: db, bus: bus, now: time.Now}
}

// SetClock replaces the clock used to stamp new transactions
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Entry describes a movement to record. Amount is in cents.
type Entry struct {
	UserID        uint
	Kind          domain.TransactionKind
	Amount        int64
	Description   string
	RelatedUserID *uint
}

func (e Entry) validate() (domain.Effect, error) {
	if e.Kind == "" || e.Amount == 0 {
		return domain.EffectNone, ErrMissingField
	}
	effect, ok := e.Kind.Effect()
	if !ok {
		return domain.EffectNone, fmt.Errorf("%w: %s", ErrUnknownKind, e.Kind)
	}
	if e.Amount < 0 {
		return domain.EffectNone, ErrInvalidAmount
	}
	return effect, nil
}

// GetOrCreateWallet returns the user's wallet, creating an empty one if absent
func (s *Service) GetOrCreateWallet(ctx context.Context, userID uint) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID, ErrUserNotFound); err != nil {
			return err
		}
		w, err := upsertWallet(tx, userID)
		if err != nil {
			return err
		}
		wallet = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// RecordTransaction validates e, applies its wallet effect and appends it to
// the log as a completed transaction. Nothing is written when it fails.
func (s *Service) RecordTransaction(ctx context.Context, e Entry) (*domain.Transaction, error) {
	effect, err := e.validate()
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		Reference:     uuid.NewString(),
		UserID:        e.UserID,
		Type:          e.Kind,
		Amount:        e.Amount,
		RelatedUserID: e.RelatedUserID,
		Status:        domain.StatusPending,
		CreatedAt:     s.now().UnixMilli(),
	}
	if e.Description != "" {
		desc := e.Description
		txn.Description = &desc
	}

	var balanceAfter int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, e.UserID, ErrUserNotFound); err != nil {
			return err
		}
		if e.RelatedUserID != nil {
			if err := requireUser(tx, *e.RelatedUserID, ErrRelatedUserNotFound); err != nil {
				return err
			}
		}
		if _, err := upsertWallet(tx, e.UserID); err != nil {
			return err
		}
		if err := applyEffect(tx, e.UserID, effect, e.Amount); err != nil {
			return err
		}
		if err := txn.Transition(domain.StatusCompleted); err != nil {
			return err
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		var wallet domain.Wallet
		if err := tx.Where("user_id = ?", e.UserID).First(&wallet).Error; err != nil {
			return err
		}
		balanceAfter = wallet.Balance
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			logrus.WithFields(logrus.Fields{
				"user_id": e.UserID,
				"type":    e.Kind,
				"amount":  e.Amount,
			}).Warn("Transaction rejected")
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":       e.UserID,
		"reference":     txn.Reference,
		"type":          txn.Type,
		"amount":        txn.Amount,
		"effect":        effect.String(),
		"balance_after": balanceAfter,
	}).Info("Transaction recorded")

	s.publish(txn, balanceAfter)
	return &txn, nil
}

// ListRecentTransactions returns up to limit transactions for the user, newest first
func (s *Service) ListRecentTransactions(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error) {
	page, err := s.Search(ctx, Filter{UserID: &userID, PageSize: clampLimit(limit, DefaultRecentLimit)})
	if err != nil {
		return nil, err
	}
	return page.Transactions, nil
}

// Filter narrows a transaction search. Zero values match everything.
type Filter struct {
	UserID   *uint
	Kind     domain.TransactionKind
	Status   domain.TransactionStatus
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// Page is one page of a transaction search
type Page struct {
	Transactions []domain.Transaction
	Page         int
	PageSize     int
	Total        int64
	TotalPages   int
}

// Search lists transactions matching f, newest first
func (s *Service) Search(ctx context.Context, f Filter) (*Page, error) {
	page := f.Page
	if page < 1 {
		page = 1 // Default page
	}
	pageSize := clampLimit(f.PageSize, DefaultPageSize)

	query := s.db.WithContext(ctx).Model(&domain.Transaction{}) // Start building the query
	if f.UserID != nil {
		query = query.Where("user_id = ?", *f.UserID) // Filter by owner
	}
	if f.Kind != "" {
		query = query.Where("type = ?", f.Kind) // Filter by transaction type
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status) // Filter by status
	}
	if f.From != nil {
		query = query.Where("created_at >= ?", f.From.UnixMilli()) // Filter by start date
	}
	if f.To != nil {
		query = query.Where("created_at <= ?", f.To.UnixMilli()) // Filter by end date
	}

	query = query.Session(&gorm.Session{}) // Count and Find each get their own statement

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count transactions: %w", err)
	}
	txs := make([]domain.Transaction, 0, pageSize)
	if err := query.Order("created_at desc").Order("id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	return &Page{
		Transactions: txs,
		Page:         page,
		PageSize:     pageSize,
		Total:        total,
		TotalPages:   (int(total) + pageSize - 1) / pageSize,
	}, nil
}

func clampLimit(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func requireUser(tx *gorm.DB, userID uint, notFound error) error {
	var count int64
	if err := tx.Model(&domain.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return nil
}

// upsertWallet inserts an empty wallet unless one exists, then reads it back.
// The unique index on user_id makes concurrent first calls converge on one row.
func upsertWallet(tx *gorm.DB, userID uint) (domain.Wallet, error) {
	fresh := domain.Wallet{UserID: userID}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&fresh).Error
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("create wallet: %w", err)
	}
	var wallet domain.Wallet
	if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return domain.Wallet{}, fmt.Errorf("load wallet: %w", err)
	}
	return wallet, nil
}

func applyEffect(tx *gorm.DB, userID uint, effect domain.Effect, amount int64) error {
	switch effect {
	case domain.EffectCredit:
		return tx.Model(&domain.Wallet{}).
			Where("user_id = ?", userID).
			Updates(map[string]any{
				"balance":      gorm.Expr("balance + ?", amount),
				"total_earned": gorm.Expr("total_earned + ?", amount),
			}).Error
	case domain.EffectDebit:
		// Check and decrement in one statement
		res := tx.Model(&domain.Wallet{}).
			Where("user_id = ? AND balance >= ?", userID, amount).
			Updates(map[string]any{
				"balance":     gorm.Expr("balance - ?", amount),
				"total_spent": gorm.Expr("total_spent + ?", amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}
		return nil
	case domain.EffectNone:
		return nil
	default:
		return fmt.Errorf("unhandled wallet effect %d", effect)
	}
}

func (s *Service) publish(txn domain.Transaction, balanceAfter int64) {
	data, err := events.Encode(events.TransactionCreated{
		Reference:     txn.Reference,
		UserID:        txn.UserID,
		Type:          string(txn.Type),
		Amount:        txn.Amount,
		RelatedUserID: txn.RelatedUserID,
		Status:        string(txn.Status),
		BalanceAfter:  balanceAfter,
		CreatedAt:     txn.CreatedTime(),
	})
	if err == nil {
		err = s.bus.Publish(events.SubjectTransactionCreated, data)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"reference": txn.Reference,
			"error":     err.Error(),
		}).Warn("Failed to publish transaction event")
	}
}
