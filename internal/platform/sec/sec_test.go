// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/erapp/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
}

/*
TestTokenService_RoundTrip verifies that issued tokens verify and carry the session claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "erapp")

	token, err := service.GenerateAccessToken("user-1", "a@b.c", string(sec.RoleAdmin), time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.True(t, claims.IsAdmin())
}

/*
TestTokenService_Rejects covers expired tokens and tokens signed by another key.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := newTokenService(t, "erapp")

	expired, err := service.GenerateAccessToken("user-1", "a@b.c", "user", -time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(expired)
	assert.Error(t, err)

	foreign, err := newTokenService(t, "erapp").GenerateAccessToken("user-1", "a@b.c", "user", time.Hour)
	require.NoError(t, err)
	_, err = service.VerifyToken(foreign)
	assert.Error(t, err)

	_, err = service.VerifyToken("not-a-token")
	assert.Error(t, err)
}

/*
TestPasswordHash verifies bcrypt hashing and comparison.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("admin@123")
	require.NoError(t, err)

	assert.NotEqual(t, "admin@123", hash)
	assert.True(t, sec.CheckPasswordHash("admin@123", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
}

/*
TestUserRole_AtLeast checks the two-level role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleUser))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleUser.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("moderator").Valid())
}
