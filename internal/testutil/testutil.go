// Package testutil builds throwaway stores for package tests.
package testutil

import (
	"fmt"
	"sync"
	"testing"

	"creator_wallet/internal/db"
	"creator_wallet/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
// The pool holds a single connection, so database transactions serialize and
// concurrent ledger tests cannot observe interleaving. Overdraft safety rests on
// the conditional debit (WHERE balance >= amount), which ledger tests cover directly.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(conn))
	return conn
}

// NewRedis starts a miniredis server and returns a client for it
func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

// CreateUser inserts a user with the given email and password "password123"
func CreateUser(t *testing.T, conn *gorm.DB, email, role string) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	if role == "" {
		role = "user"
	}
	user := domain.User{Email: email, Password: string(hash), Role: role}
	require.NoError(t, conn.Create(&user).Error)
	return user
}

// RecordingPublisher keeps every published message in memory
type RecordingPublisher struct {
	mu       sync.Mutex
	Subjects []string
	Payloads [][]byte
	Err      error
}

func (p *RecordingPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Subjects = append(p.Subjects, subject)
	p.Payloads = append(p.Payloads, data)
	return nil
}

// Count returns the number of recorded messages
func (p *RecordingPublisher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Payloads)
}
