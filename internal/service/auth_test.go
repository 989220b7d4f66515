package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pageza/pantrychef/backend/internal/testhelpers"
	"github.com/pageza/pantrychef/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemoryDenylist() *memoryDenylist {
	return &memoryDenylist{revoked: map[string]time.Duration{}}
}

func (d *memoryDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = ttl
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[jti]
	return ok, nil
}

func TestLoginAndValidateToken(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	denylist := newMemoryDenylist()
	svc := NewAuthService(db, "test-secret", time.Hour, denylist, zaptest.NewLogger(t))
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "alice", "User", "Admin")

	token, loggedIn, err := svc.Login(ctx, "alice", testhelpers.TestPassword)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.HasRole("Admin"))
	assert.NotEmpty(t, claims.ID)

	require.NoError(t, svc.Logout(ctx, claims))
	ttl := denylist.revoked[claims.ID]
	assert.True(t, ttl > 0 && ttl <= time.Hour)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginFailures(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewAuthService(db, "test-secret", time.Hour, nil, zaptest.NewLogger(t))
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "alice")

	_, _, err := svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Login(ctx, "nobody", testhelpers.TestPassword)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, db.Model(user).Update("active", false).Error)
	_, _, err = svc.Login(ctx, "alice", testhelpers.TestPassword)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestValidateTokenRejectsBadTokens(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewAuthService(db, "test-secret", time.Hour, nil, zaptest.NewLogger(t))
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "alice")

	other := NewAuthService(db, "other-secret", time.Hour, nil, zaptest.NewLogger(t))
	foreign, err := other.GenerateToken(user)
	require.NoError(t, err)

	expired := NewAuthService(db, "test-secret", -time.Minute, nil, zaptest.NewLogger(t))
	stale, err := expired.GenerateToken(user)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &types.TokenClaims{UserID: user.ID}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      stale,
		"unsigned":     noneToken,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, token)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestLogoutWithoutDenylist(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewAuthService(db, "test-secret", time.Hour, nil, zaptest.NewLogger(t))
	assert.NoError(t, svc.Logout(context.Background(), &types.TokenClaims{}))
}

func TestRedisTokenDenylist(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	denylist := NewRedisTokenDenylist(client)
	ctx := context.Background()

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := client.TTL(ctx, denylistKey("jti-1")).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	// already expired tokens are not stored
	require.NoError(t, denylist.Revoke(ctx, "jti-2", 0))
	revoked, err = denylist.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
