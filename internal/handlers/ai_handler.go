package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/lms/backend/internal/middleware"
	"github.com/anonto42/lms/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// DoubtAnswerer answers a student question
type DoubtAnswerer interface {
	Ask(ctx context.Context, question, background string) (string, error)
}

// AskRequest is the body of POST /ai/ask
type AskRequest struct {
	Question string `json:"question" validate:"required,max=4000"`
	Context  string `json:"context,omitempty" validate:"max=4000"`
}

type AIHandler struct {
	tutor    DoubtAnswerer
	activity ActivityLogger
}

func NewAIHandler(tutor DoubtAnswerer, activity ActivityLogger) *AIHandler {
	return &AIHandler{tutor: tutor, activity: activity}
}

func (h *AIHandler) RegisterAIRoutes(g *echo.Group) {
	g.POST("/ai/ask", h.Ask)
}

// Ask forwards the doubt to the tutor model and logs AI_ASK on success
func (h *AIHandler) Ask(c echo.Context) error {
	uid, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}
	if h.tutor == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "AI tutor is not configured")
	}

	var req AskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	answer, err := h.tutor.Ask(ctx, req.Question, req.Context)
	if err != nil {
		c.Logger().Errorf("ai ask failed: %v", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to get answer")
	}

	h.activity.LogActivity(ctx, uid, nil, models.ActionAIAsk)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "answer": answer})
}
