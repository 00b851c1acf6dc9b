package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/mykafka"
)

type CommentHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

// ListByJob serves GET /jobs/:id/comments.
func (h *CommentHandler) ListByJob(c echo.Context) error {
	ctx := c.Request().Context()

	jobID, err := pathID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var job models.Job
	if err := h.DB.WithContext(ctx).First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	var comments []models.Comment
	if err := h.DB.WithContext(ctx).Where("job_id = ?", jobID).Order("id ASC").Find(&comments).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := currentUser(c)

	jobID, err := pathID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var job models.Job
	if err := h.DB.WithContext(ctx).First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}

	comment := models.Comment{
		Content: req.Content,
		JobID:   jobID,
		UserID:  userID,
	}
	if err := h.DB.WithContext(ctx).Create(&comment).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, "comment_events", fmt.Sprint(comment.ID), map[string]any{
		"type":       "comment_created",
		"comment_id": comment.ID,
		"job_id":     comment.JobID,
	})

	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var comment models.Comment
	if err := h.DB.WithContext(c.Request().Context()).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) UpdateComment(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var comment models.Comment
	if err := h.DB.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	callerID, role := currentUser(c)
	if !canModify(callerID, role, comment.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields must be provided")
	}

	comment.Content = req.Content
	if err := h.DB.WithContext(ctx).Save(&comment).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var comment models.Comment
	if err := h.DB.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	callerID, role := currentUser(c)
	if !canModify(callerID, role, comment.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	if err := h.DB.WithContext(ctx).Delete(&comment).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, "comment_events", fmt.Sprint(comment.ID), map[string]any{
		"type":       "comment_deleted",
		"comment_id": comment.ID,
		"job_id":     comment.JobID,
	})

	return c.NoContent(http.StatusNoContent)
}
