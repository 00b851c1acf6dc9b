package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/job_board/internal/logging"
	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/mykafka"
	"github.com/Skotchmaster/job_board/internal/service/search"
	"github.com/Skotchmaster/job_board/internal/util"
)

var (
	jobTypes         = map[string]bool{"full-time": true, "part-time": true, "freelance": true, "internship": true}
	experienceLevels = map[string]bool{"entry": true, "mid": true, "senior": true}
)

type JobHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

func (h *JobHandler) indexJob(c echo.Context, job *models.Job) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexJob(ctx, h.ES, h.Index, job); err != nil {
		logging.FromContext(c.Request().Context()).Error("es index error", "job_id", job.ID, "error", err)
	}
}

func (h *JobHandler) removeFromIndex(c echo.Context, jobID uint) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.DeleteJob(ctx, h.ES, h.Index, jobID); err != nil {
		logging.FromContext(c.Request().Context()).Error("es delete error", "job_id", jobID, "error", err)
	}
}

func (h *JobHandler) ListJobs(c echo.Context) error {
	ctx := c.Request().Context()

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.WithContext(ctx).Model(&models.Job{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	var jobs []models.Job
	if err := h.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&jobs).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": jobs,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *JobHandler) GetJob(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var job models.Job
	if err := h.DB.WithContext(c.Request().Context()).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CreateJob(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := currentUser(c)

	var req struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		CategoryID      uint   `json:"category_id"`
		Remote          bool   `json:"remote"`
		JobType         string `json:"job_type"`
		ExperienceLevel string `json:"experience_level"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if req.Title == "" || req.Description == "" || req.CategoryID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "title, description and category_id are required")
	}
	if req.JobType == "" {
		req.JobType = "full-time"
	}
	if req.ExperienceLevel == "" {
		req.ExperienceLevel = "entry"
	}
	if !jobTypes[req.JobType] {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid job_type")
	}
	if !experienceLevels[req.ExperienceLevel] {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid experience_level")
	}

	var category models.Category
	if err := h.DB.WithContext(ctx).First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Category not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	job := models.Job{
		Title:           req.Title,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		UserID:          userID,
		Remote:          req.Remote,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
	}
	if err := h.DB.WithContext(ctx).Create(&job).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, "job_events", fmt.Sprint(job.ID), map[string]any{
		"type":   "job_created",
		"job_id": job.ID,
		"title":  job.Title,
	})
	h.indexJob(c, &job)

	return c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) UpdateJob(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var job models.Job
	if err := h.DB.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	callerID, role := currentUser(c)
	if !canModify(callerID, role, job.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	var req struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		CategoryID      uint   `json:"category_id"`
		Remote          *bool  `json:"remote"`
		JobType         string `json:"job_type"`
		ExperienceLevel string `json:"experience_level"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if req.Title != "" {
		job.Title = req.Title
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.CategoryID != 0 {
		var category models.Category
		if err := h.DB.WithContext(ctx).First(&category, req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Category not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
		job.CategoryID = req.CategoryID
	}
	if req.Remote != nil {
		job.Remote = *req.Remote
	}
	if req.JobType != "" {
		if !jobTypes[req.JobType] {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid job_type")
		}
		job.JobType = req.JobType
	}
	if req.ExperienceLevel != "" {
		if !experienceLevels[req.ExperienceLevel] {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid experience_level")
		}
		job.ExperienceLevel = req.ExperienceLevel
	}

	if err := h.DB.WithContext(ctx).Save(&job).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, "job_events", fmt.Sprint(job.ID), map[string]any{
		"type":   "job_updated",
		"job_id": job.ID,
		"title":  job.Title,
	})
	h.indexJob(c, &job)

	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var job models.Job
	if err := h.DB.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	callerID, role := currentUser(c)
	if !canModify(callerID, role, job.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	if err := h.DB.WithContext(ctx).Delete(&job).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, "job_events", fmt.Sprint(job.ID), map[string]any{
		"type":   "job_deleted",
		"job_id": job.ID,
	})
	h.removeFromIndex(c, job.ID)

	return c.NoContent(http.StatusNoContent)
}
