package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "fan@example.com", "secret")
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "fan@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "fan@example.com", "secret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "other")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseJWTRejectsMissingUser(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)
}

func TestCacheHelpers(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	type payload struct {
		Balance int64 `json:"balance"`
	}
	found, err := GetCache(ctx, rdb, WalletKey(1), &payload{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, WalletKey(1), payload{Balance: 4001}, time.Minute))
	var got payload
	found, err = GetCache(ctx, rdb, WalletKey(1), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.EqualValues(t, 4001, got.Balance)

	require.NoError(t, DeleteCache(ctx, rdb, WalletKey(1)))
	assert.False(t, mr.Exists(WalletKey(1)))
}

func TestDeleteCachePrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	require.NoError(t, mr.Set(HistoryPrefix(7)+"page:1:size:20", "x"))
	require.NoError(t, mr.Set(HistoryPrefix(7)+"page:9:size:50", "x"))
	require.NoError(t, mr.Set(HistoryPrefix(70)+"page:1:size:20", "x"))

	require.NoError(t, DeleteCachePrefix(ctx, rdb, HistoryPrefix(7)))

	assert.False(t, mr.Exists(HistoryPrefix(7)+"page:1:size:20"))
	assert.False(t, mr.Exists(HistoryPrefix(7)+"page:9:size:50"))
	assert.True(t, mr.Exists(HistoryPrefix(70)+"page:1:size:20"))
}

func TestNilClientIsNoop(t *testing.T) {
	ctx := context.Background()
	found, err := GetCache(ctx, nil, "k", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetCache(ctx, nil, "k", 1, time.Second))
	assert.NoError(t, DeleteCachePrefix(ctx, nil, "k"))
}
