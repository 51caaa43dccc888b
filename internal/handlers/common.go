package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/anonto42/lms/backend/internal/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityLogger records learner actions without failing the request
type ActivityLogger interface {
	LogActivity(ctx context.Context, userID string, topicID *primitive.ObjectID, action models.ActionType)
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

// intQuery parses a positive integer query parameter, clamped to max
func intQuery(c echo.Context, name string, def, max int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 1 {
		return def
	}
	if max > 0 && v > max {
		return max
	}
	return v
}
