package handlers

import (
	"net/http"
	"time"

	"github.com/anonto42/lms/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AnalyticsHandler serves admin dashboards
type AnalyticsHandler struct {
	activityRepository repositories.ActivityRepository
	postRepository     repositories.PostRepository
	donationRepository repositories.DonationRepository
	dauDefaultDays     int
	now                func() time.Time
}

func NewAnalyticsHandler(activityRepo repositories.ActivityRepository, postRepo repositories.PostRepository, donationRepo repositories.DonationRepository, dauDefaultDays int) *AnalyticsHandler {
	return &AnalyticsHandler{
		activityRepository: activityRepo,
		postRepository:     postRepo,
		donationRepository: donationRepo,
		dauDefaultDays:     dauDefaultDays,
		now:                time.Now,
	}
}

// RegisterAnalyticsRoutes registers analytics routes behind the admin check
func (h *AnalyticsHandler) RegisterAnalyticsRoutes(g *echo.Group, admin echo.MiddlewareFunc) {
	a := g.Group("/analytics", admin)
	a.GET("/dau", h.DailyActiveUsers)
	a.GET("/topics", h.Topics)
	a.GET("/donations", h.Donations)
	a.GET("/trending", h.Trending)
}

// DailyActiveUsers counts distinct active users per UTC day
func (h *AnalyticsHandler) DailyActiveUsers(c echo.Context) error {
	days := intQuery(c, "days", h.dauDefaultDays, 366)
	from := h.now().UTC().AddDate(0, 0, -days)

	dau, err := h.activityRepository.DailyActiveUsers(c.Request().Context(), from)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch DAU")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "dau": dau})
}

// Topics ranks the most studied courses
func (h *AnalyticsHandler) Topics(c echo.Context) error {
	limit := intQuery(c, "limit", 10, 100)

	topics, err := h.activityRepository.TopTopics(c.Request().Context(), int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch topics analytics")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "topics": topics})
}

// Donations sums completed donations
func (h *AnalyticsHandler) Donations(c echo.Context) error {
	totals, err := h.donationRepository.CompletedTotals(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch donation analytics")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"totalAmount": totals.TotalAmount,
		"totalCount":  totals.TotalCount,
	})
}

// Trending lists the most upvoted posts
func (h *AnalyticsHandler) Trending(c echo.Context) error {
	limit := intQuery(c, "limit", 10, 100)

	posts, err := h.postRepository.GetTrendingPosts(c.Request().Context(), int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch trending posts")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "posts": posts})
}
