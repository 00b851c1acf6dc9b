package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/service"
)

var (
	testJWTSecret     = []byte("test-jwt-secret")
	testRefreshSecret = []byte("test-refresh-secret")
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Category{},
		&models.Job{},
		&models.Comment{},
	))

	return db
}

func newTokenService(db *gorm.DB) *service.TokenService {
	return &service.TokenService{
		DB:            db,
		JWTSecret:     testJWTSecret,
		RefreshSecret: testRefreshSecret,
	}
}

// newContext builds an echo context carrying an optional JSON body and an
// optional authenticated identity, the way the auth middleware would set it.
func newContext(t *testing.T, e *echo.Echo, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asUser(c echo.Context, userID uint, role string) {
	c.Set("userID", userID)
	c.Set("role", role)
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()

	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createTestJob(t *testing.T, db *gorm.DB, categoryID, userID uint) models.Job {
	t.Helper()

	job := models.Job{
		Title:           "Backend Developer",
		Description:     "Go services",
		CategoryID:      categoryID,
		UserID:          userID,
		JobType:         "full-time",
		ExperienceLevel: "mid",
	}
	require.NoError(t, db.Create(&job).Error)
	return job
}

func TestHelpersCanModify(t *testing.T) {
	require.True(t, canModify(1, "user", 1))
	require.False(t, canModify(2, "user", 1))
	require.True(t, canModify(2, "admin", 1))
}
