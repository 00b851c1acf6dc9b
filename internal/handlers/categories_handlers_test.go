package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/job_board/internal/models"
)

func TestCreateCategory(t *testing.T) {
	db := initTestDB(t)
	h := &CategoryHandler{DB: db}
	e := echo.New()

	c, rec := newContext(t, e, http.MethodPost, "/categories", map[string]string{"name": "IT"})
	require.NoError(t, h.CreateCategory(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var category models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &category))
	require.Equal(t, "IT", category.Name)

	// duplicate name conflicts
	cDup, _ := newContext(t, e, http.MethodPost, "/categories", map[string]string{"name": "IT"})
	err := h.CreateCategory(cDup)
	requireHTTPError(t, err, http.StatusConflict)
}

func TestListCategories(t *testing.T) {
	db := initTestDB(t)
	h := &CategoryHandler{DB: db}
	e := echo.New()

	createTestCategory(t, db, "IT")
	createTestCategory(t, db, "Finance")

	c, rec := newContext(t, e, http.MethodGet, "/categories", nil)
	require.NoError(t, h.ListCategories(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 2)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	db := initTestDB(t)
	h := &CategoryHandler{DB: db}
	e := echo.New()

	c, _ := newContext(t, e, http.MethodPut, "/categories/7", map[string]string{"name": "Sales"})
	c.SetParamNames("id")
	c.SetParamValues("7")

	err := h.UpdateCategory(c)
	requireHTTPError(t, err, http.StatusNotFound)
}

func TestDeleteCategory(t *testing.T) {
	db := initTestDB(t)
	h := &CategoryHandler{DB: db}
	e := echo.New()

	createTestCategory(t, db, "IT")

	c, rec := newContext(t, e, http.MethodDelete, "/categories/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.DeleteCategory(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestJobsByCategory(t *testing.T) {
	db := initTestDB(t)
	h := &CategoryHandler{DB: db}
	e := echo.New()

	user := createTestUser(t, db, "a@x.com", "user")
	it := createTestCategory(t, db, "IT")
	finance := createTestCategory(t, db, "Finance")
	createTestJob(t, db, it.ID, user.ID)
	createTestJob(t, db, it.ID, user.ID)
	createTestJob(t, db, finance.ID, user.ID)

	c, rec := newContext(t, e, http.MethodGet, "/categories/1/jobs", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.JobsByCategory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var jobs []models.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	require.Len(t, jobs, 2)

	cMissing, _ := newContext(t, e, http.MethodGet, "/categories/99/jobs", nil)
	cMissing.SetParamNames("id")
	cMissing.SetParamValues("99")
	err := h.JobsByCategory(cMissing)
	requireHTTPError(t, err, http.StatusNotFound)
}
