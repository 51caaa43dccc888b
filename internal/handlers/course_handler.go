package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/anonto42/lms/backend/internal/middleware"
	"github.com/anonto42/lms/backend/internal/models"
	"github.com/anonto42/lms/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PlaylistSource lists the videos of a playlist
type PlaylistSource interface {
	PlaylistVideos(ctx context.Context, playlistID string) ([]models.Video, error)
}

// CourseHandler handles course requests
type CourseHandler struct {
	courseRepository repositories.CourseRepository
	playlists        PlaylistSource
	activity         ActivityLogger
}

// NewCourseHandler creates a new CourseHandler. playlists may be nil when no
// YouTube key is configured; courses are then served without videos.
func NewCourseHandler(courseRepo repositories.CourseRepository, playlists PlaylistSource, activity ActivityLogger) *CourseHandler {
	return &CourseHandler{
		courseRepository: courseRepo,
		playlists:        playlists,
		activity:         activity,
	}
}

// RegisterCourseRoutes registers course routes. Creation goes through admin.
func (h *CourseHandler) RegisterCourseRoutes(g *echo.Group, admin echo.MiddlewareFunc) {
	g.POST("/courses", h.CreateCourse, admin)
	g.GET("/courses", h.GetCourses)
	g.GET("/courses/:id", h.GetCourse)
	g.GET("/courses/:id/notes", h.GetNotes)
}

// CreateCourse creates a course backed by a playlist
func (h *CourseHandler) CreateCourse(c echo.Context) error {
	uid, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateCourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	course := &models.Course{
		Title:             req.Title,
		Description:       req.Description,
		YoutubePlaylistID: req.PlaylistID,
		NotesURL:          req.NotesURL,
		CreatedBy:         uid,
	}
	if err := h.courseRepository.CreateCourse(c.Request().Context(), course); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create course")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "course": course})
}

// GetCourses lists every course
func (h *CourseHandler) GetCourses(c echo.Context) error {
	courses, err := h.courseRepository.GetAllCourses(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch courses")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "courses": courses})
}

// GetCourse returns a course with its playlist videos and logs a video view
func (h *CourseHandler) GetCourse(c echo.Context) error {
	uid, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	course, err := h.loadCourse(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	videos := []models.Video{}
	if h.playlists != nil {
		fetched, err := h.playlists.PlaylistVideos(ctx, course.YoutubePlaylistID)
		if err != nil {
			c.Logger().Warnf("playlist lookup for course %s failed: %v", course.ID.Hex(), err)
		} else {
			videos = fetched
		}
	}

	h.activity.LogActivity(ctx, uid, &course.ID, models.ActionVideoView)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"course":  course,
		"videos":  videos,
	})
}

// GetNotes returns the notes link of a course and logs a notes read
func (h *CourseHandler) GetNotes(c echo.Context) error {
	uid, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	course, err := h.loadCourse(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	h.activity.LogActivity(ctx, uid, &course.ID, models.ActionNotesRead)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "notesUrl": course.NotesURL})
}

func (h *CourseHandler) loadCourse(ctx context.Context, id string) (*models.Course, error) {
	course, err := h.courseRepository.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Course not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch course")
	}
	return course, nil
}
