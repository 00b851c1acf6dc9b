package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/tokens"
)

var (
	testJWTSecret     = []byte("test-jwt-secret")
	testRefreshSecret = []byte("test-refresh-secret")
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}))
	return db
}

func newService(t *testing.T) *TokenService {
	t.Helper()

	return &TokenService{
		DB:            initTestDB(t),
		JWTSecret:     testJWTSecret,
		RefreshSecret: testRefreshSecret,
	}
}

func testUser() *models.User {
	return &models.User{ID: 1, Name: "A", Email: "a@x.com", Role: "user"}
}

func TestIssueTokensThenValidate(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()

	pair, err := svc.IssueTokens(ctx, testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	accessClaims, err := tokens.AccessClaimsFromToken(pair.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "user", accessClaims.Role)
	id, err := accessClaims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)

	refreshClaims, err := svc.ValidateRefresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	id, err = refreshClaims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)
}

func TestValidateRefreshUnknownToken(t *testing.T) {
	svc := newService(t)

	_, err := svc.ValidateRefresh(t.Context(), "never-issued")
	assert.ErrorIs(t, err, ErrRefreshNotFound)
}

func TestValidateRefreshExpiredPurgesRow(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()

	pair, err := svc.IssueTokens(ctx, testUser())
	require.NoError(t, err)

	// age the stored row past its expiry
	require.NoError(t, svc.DB.Model(&models.RefreshToken{}).
		Where("token = ?", pair.RefreshToken).
		Update("expires_at", time.Now().Add(-time.Hour).Unix()).Error)

	_, err = svc.ValidateRefresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshExpired)

	// the dead row is gone, the next check reports NotFound
	var count int64
	require.NoError(t, svc.DB.Model(&models.RefreshToken{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	_, err = svc.ValidateRefresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshNotFound)
}

func TestValidateRefreshForeignSignature(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()

	forged, exp, err := tokens.SignRefreshToken(1, "user", []byte("wrong-secret"))
	require.NoError(t, err)

	// a stored row does not save a token whose signature fails
	row := models.RefreshToken{Token: forged, UserID: 1, ExpiresAt: exp.Unix()}
	require.NoError(t, svc.DB.Create(&row).Error)

	_, err = svc.ValidateRefresh(ctx, forged)
	assert.ErrorIs(t, err, ErrRefreshInvalid)
}

func TestRevokeRefresh(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()

	pair, err := svc.IssueTokens(ctx, testUser())
	require.NoError(t, err)

	require.NoError(t, svc.RevokeRefresh(ctx, pair.RefreshToken))

	_, err = svc.ValidateRefresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshNotFound)

	err = svc.RevokeRefresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshNotFound)
}

func TestRotateKeepsOldTokenValid(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()

	first, err := svc.IssueTokens(ctx, testUser())
	require.NoError(t, err)

	second, err := svc.RotateToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// default policy: concurrent sessions stay alive
	_, err = svc.ValidateRefresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	_, err = svc.ValidateRefresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestRevokePriorOnLogin(t *testing.T) {
	svc := newService(t)
	svc.RevokePriorOnLogin = true
	ctx := t.Context()

	first, err := svc.IssueTokens(ctx, testUser())
	require.NoError(t, err)

	second, err := svc.IssueTokens(ctx, testUser())
	require.NoError(t, err)

	_, err = svc.ValidateRefresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshNotFound)
	_, err = svc.ValidateRefresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestRotateRejectsRevokedToken(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()

	pair, err := svc.IssueTokens(ctx, testUser())
	require.NoError(t, err)
	require.NoError(t, svc.RevokeRefresh(ctx, pair.RefreshToken))

	_, err = svc.RotateToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshNotFound)
}
