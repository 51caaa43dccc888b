package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/anonto42/lms/backend/internal/middleware"
	"github.com/anonto42/lms/backend/internal/models"
	"github.com/anonto42/lms/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ActivityReader derives heatmaps and streaks from the activity log
type ActivityReader interface {
	ActivityLogger
	DefaultWindow() services.Window
	ComputeHeatmap(ctx context.Context, userID string, w services.Window) ([]models.HeatmapDay, error)
	ComputeStreaks(ctx context.Context, userID string, w services.Window) (models.Streaks, error)
}

// ActivityHandler serves the learner's own activity analytics
type ActivityHandler struct {
	activity ActivityReader
}

func NewActivityHandler(activity ActivityReader) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

func (h *ActivityHandler) RegisterActivityRoutes(g *echo.Group) {
	g.POST("/activity/log", h.Log)
	g.GET("/activity/heatmap", h.Heatmap)
	g.GET("/activity/streaks", h.Streaks)
}

// Log records an action reported by the client
func (h *ActivityHandler) Log(c echo.Context) error {
	uid, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.LogActivityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	topicID, action, err := services.ParseActivityInput(req.TopicID, req.ActionType)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTopicID) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid topicId")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid actionType")
	}

	h.activity.LogActivity(c.Request().Context(), uid, topicID, action)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Heatmap returns per-day activity over the trailing window; ?dense=true fills idle days
func (h *ActivityHandler) Heatmap(c echo.Context) error {
	uid, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	window := h.activity.DefaultWindow()
	days, err := h.activity.ComputeHeatmap(c.Request().Context(), uid, window)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch activity data")
	}
	if c.QueryParam("dense") == "true" {
		days = services.FillCalendar(days, window)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "activity": days})
}

// Streaks returns the current and longest learning streaks
func (h *ActivityHandler) Streaks(c echo.Context) error {
	uid, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	streaks, err := h.activity.ComputeStreaks(c.Request().Context(), uid, h.activity.DefaultWindow())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to calculate streaks")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"currentStreak": streaks.CurrentStreak,
		"longestStreak": streaks.LongestStreak,
	})
}
