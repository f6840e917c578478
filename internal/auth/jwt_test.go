package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospohub/internal/config"
)

// stubBlacklist is an in-memory TokenBlacklist for tests.
type stubBlacklist struct {
	revoked map[string]bool
	err     error
}

func (s *stubBlacklist) Add(ctx context.Context, jti string, originalTokenExpTime time.Time) error {
	if s.revoked == nil {
		s.revoked = map[string]bool{}
	}
	s.revoked[jti] = true
	return nil
}

func (s *stubBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[jti], nil
}

var testAuthCfg = config.AuthConfig{
	JWTSecretKey: "test-secret",
	JWTExpiry:    time.Hour,
}

func TestGenerateAndValidateToken(t *testing.T) {
	tokenString, err := GenerateToken("user-1", "jsmith", testAuthCfg)
	require.NoError(t, err)

	claims, err := ValidateToken(context.Background(), tokenString, testAuthCfg.JWTSecretKey, nil)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jsmith", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_WrongKey(t *testing.T) {
	tokenString, err := GenerateToken("user-1", "jsmith", testAuthCfg)
	require.NoError(t, err)

	_, err = ValidateToken(context.Background(), tokenString, "another-secret", nil)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	expiredCfg := testAuthCfg
	expiredCfg.JWTExpiry = -time.Minute

	tokenString, err := GenerateToken("user-1", "jsmith", expiredCfg)
	require.NoError(t, err)

	_, err = ValidateToken(context.Background(), tokenString, expiredCfg.JWTSecretKey, nil)
	assert.Error(t, err)
}

func TestValidateToken_RevokedJTI(t *testing.T) {
	tokenString, err := GenerateToken("user-1", "jsmith", testAuthCfg)
	require.NoError(t, err)

	claims, err := ValidateToken(context.Background(), tokenString, testAuthCfg.JWTSecretKey, nil)
	require.NoError(t, err)

	blacklist := &stubBlacklist{}
	require.NoError(t, blacklist.Add(context.Background(), claims.ID, claims.ExpiresAt.Time))

	_, err = ValidateToken(context.Background(), tokenString, testAuthCfg.JWTSecretKey, blacklist)
	assert.Error(t, err)
}

func TestValidateToken_BlacklistUnreachableFailsClosed(t *testing.T) {
	tokenString, err := GenerateToken("user-1", "jsmith", testAuthCfg)
	require.NoError(t, err)

	blacklist := &stubBlacklist{err: errors.New("connection refused")}
	_, err = ValidateToken(context.Background(), tokenString, testAuthCfg.JWTSecretKey, blacklist)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}
