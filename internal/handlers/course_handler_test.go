package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/anonto42/lms/backend/internal/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seededCourses() (*stubCourseRepo, *models.Course) {
	course := &models.Course{ID: primitive.NewObjectID(), Title: "DSA", YoutubePlaylistID: "PL1", NotesURL: "https://notes"}
	return &stubCourseRepo{courses: map[string]*models.Course{course.ID.Hex(): course}}, course
}

func TestGetCourseReturnsVideosAndLogsView(t *testing.T) {
	repo, course := seededCourses()
	activity := &stubActivity{}
	h := NewCourseHandler(repo, stubPlaylists{videos: []models.Video{{VideoID: "v1"}}}, activity)

	c, rec := newContext(http.MethodGet, "/", "", "u1")
	c.SetParamNames("id")
	c.SetParamValues(course.ID.Hex())
	require.NoError(t, h.GetCourse(c))

	var body struct {
		Videos []models.Video `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Videos, 1)
	require.Len(t, activity.logged, 1)
	require.Equal(t, models.ActionVideoView, activity.logged[0].action)
	require.Equal(t, course.ID, *activity.logged[0].topicID)
}

func TestGetCourseToleratesPlaylistFailure(t *testing.T) {
	repo, course := seededCourses()
	h := NewCourseHandler(repo, stubPlaylists{err: errors.New("quota")}, &stubActivity{})

	c, rec := newContext(http.MethodGet, "/", "", "u1")
	c.SetParamNames("id")
	c.SetParamValues(course.ID.Hex())
	require.NoError(t, h.GetCourse(c))
	require.Contains(t, rec.Body.String(), `"videos":[]`)
}

func TestGetNotesLogsNotesRead(t *testing.T) {
	repo, course := seededCourses()
	activity := &stubActivity{}
	h := NewCourseHandler(repo, nil, activity)

	c, rec := newContext(http.MethodGet, "/", "", "u1")
	c.SetParamNames("id")
	c.SetParamValues(course.ID.Hex())
	require.NoError(t, h.GetNotes(c))
	require.Contains(t, rec.Body.String(), "https://notes")
	require.Equal(t, models.ActionNotesRead, activity.logged[0].action)
}

func TestGetCourseNotFound(t *testing.T) {
	repo, _ := seededCourses()
	h := NewCourseHandler(repo, nil, &stubActivity{})

	c, _ := newContext(http.MethodGet, "/", "", "u1")
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())
	require.Equal(t, http.StatusNotFound, httpStatus(h.GetCourse(c)))
}

func TestCreateCourseValidates(t *testing.T) {
	repo, _ := seededCourses()
	h := NewCourseHandler(repo, nil, &stubActivity{})

	c, _ := newContext(http.MethodPost, "/", `{"title":"Go"}`, "admin")
	require.Equal(t, http.StatusBadRequest, httpStatus(h.CreateCourse(c)))

	c, rec := newContext(http.MethodPost, "/", `{"title":"Go","playlistId":"PL9"}`, "admin")
	require.NoError(t, h.CreateCourse(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.courses, 2)
}
