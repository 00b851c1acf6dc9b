package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_board/internal/logging"
	authmw "github.com/Skotchmaster/job_board/internal/middleware/auth"
	"github.com/Skotchmaster/job_board/internal/mykafka"
)

func currentUser(c echo.Context) (uint, string) {
	id, _ := authmw.UserID(c)
	return id, authmw.Role(c)
}

// canModify is the ownership policy: admins pass, everyone else must own the
// resource. Compared as uint ids, never as strings.
func canModify(userID uint, role string, ownerID uint) bool {
	return role == "admin" || userID == ownerID
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// publish fires an event without letting broker trouble fail the request.
func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}
