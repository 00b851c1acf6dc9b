package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	accessSecret  = []byte("access-secret")
	refreshSecret = []byte("refresh-secret")
)

func TestAccessTokenRoundTrip(t *testing.T) {
	signed, exp, err := SignAccessToken(42, "admin", accessSecret)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(AccessTTL), exp, 5*time.Second)

	claims, err := AccessClaimsFromToken(signed, accessSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	signed, _, err := SignAccessToken(42, "user", accessSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(signed, []byte("something-else"))
	require.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	signed, exp, err := SignRefreshToken(7, "user", refreshSecret)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(RefreshTTL), exp, 5*time.Second)

	claims, err := RefreshClaimsFromToken(signed, refreshSecret)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.ID)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestRefreshTokensCarryUniqueJTI(t *testing.T) {
	first, _, err := SignRefreshToken(7, "user", refreshSecret)
	require.NoError(t, err)
	second, _, err := SignRefreshToken(7, "user", refreshSecret)
	require.NoError(t, err)

	firstClaims, err := RefreshClaimsFromToken(first, refreshSecret)
	require.NoError(t, err)
	secondClaims, err := RefreshClaimsFromToken(second, refreshSecret)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestTokenClassesAreNotInterchangeable(t *testing.T) {
	access, _, err := SignAccessToken(1, "user", accessSecret)
	require.NoError(t, err)

	// an access token must not verify against the refresh secret
	_, err = RefreshClaimsFromToken(access, refreshSecret)
	require.Error(t, err)
}

func TestGarbageToken(t *testing.T) {
	_, err := AccessClaimsFromToken("not-a-token", accessSecret)
	require.Error(t, err)
}
