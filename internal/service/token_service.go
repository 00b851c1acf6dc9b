package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/tokens"
)

var (
	ErrRefreshNotFound = errors.New("refresh token not found")
	ErrRefreshExpired  = errors.New("refresh token expired")
	ErrRefreshInvalid  = errors.New("invalid refresh token")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

// TokenService owns the refresh-token lifecycle. Access tokens are stateless,
// refresh tokens are backed by a DB row so the server can revoke them.
type TokenService struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte

	// RevokePriorOnLogin deletes the user's existing refresh tokens on every
	// new login. Off by default: concurrent sessions stay valid.
	RevokePriorOnLogin bool
}

func (t *TokenService) IssueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, accessExp, err := tokens.SignAccessToken(user.ID, user.Role, t.JWTSecret)
	if err != nil {
		return nil, err
	}

	refresh, refreshExp, err := tokens.SignRefreshToken(user.ID, user.Role, t.RefreshSecret)
	if err != nil {
		return nil, err
	}

	if t.RevokePriorOnLogin {
		if err := t.DB.WithContext(ctx).
			Where("user_id = ?", user.ID).
			Delete(&models.RefreshToken{}).Error; err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
	}

	row := models.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := t.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

// ValidateRefresh checks a raw refresh token in three steps: the row must
// exist, the row must not be past its expiry (expired rows are purged on the
// spot), and the signature must verify against the refresh secret.
func (t *TokenService) ValidateRefresh(ctx context.Context, rawToken string) (*tokens.RefreshClaims, error) {
	var stored models.RefreshToken
	if err := t.DB.WithContext(ctx).Where("token = ?", rawToken).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if time.Now().Unix() > stored.ExpiresAt {
		if err := t.DB.WithContext(ctx).Delete(&stored).Error; err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		return nil, ErrRefreshExpired
	}

	claims, err := tokens.RefreshClaimsFromToken(rawToken, t.RefreshSecret)
	if err != nil {
		return nil, ErrRefreshInvalid
	}

	return claims, nil
}

// RotateToken exchanges a valid refresh token for a fresh access+refresh
// pair. The old refresh token is not revoked here, matching the login
// behavior of keeping prior sessions alive.
func (t *TokenService) RotateToken(ctx context.Context, rawToken string) (*TokenPair, error) {
	claims, err := t.ValidateRefresh(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrRefreshInvalid
	}

	user := models.User{ID: userID, Role: claims.Role}
	return t.IssueTokens(ctx, &user)
}

// RevokeRefresh deletes the stored row. Reports ErrRefreshNotFound when no
// row matched so logout of an already-dead token is visible to the caller.
func (t *TokenService) RevokeRefresh(ctx context.Context, rawToken string) error {
	result := t.DB.WithContext(ctx).Where("token = ?", rawToken).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return fmt.Errorf("db error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRefreshNotFound
	}
	return nil
}
