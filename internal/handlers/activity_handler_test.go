package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/anonto42/lms/backend/internal/models"
	"github.com/anonto42/lms/backend/internal/services"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLogActivity(t *testing.T) {
	activity := &stubActivity{}
	h := NewActivityHandler(activity)
	topic := primitive.NewObjectID().Hex()

	c, rec := newContext(http.MethodPost, "/", `{"topicId":"`+topic+`","actionType":"NOTES_READ"}`, "u1")
	require.NoError(t, h.Log(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, activity.logged, 1)
	require.Equal(t, topic, activity.logged[0].topicID.Hex())
	require.Equal(t, models.ActionNotesRead, activity.logged[0].action)
}

func TestLogActivityRejectsBadInput(t *testing.T) {
	h := NewActivityHandler(&stubActivity{})

	c, _ := newContext(http.MethodPost, "/", `{"actionType":"SLEEP"}`, "u1")
	require.Equal(t, http.StatusBadRequest, httpStatus(h.Log(c)))

	c, _ = newContext(http.MethodPost, "/", `{"topicId":"xyz","actionType":"AI_ASK"}`, "u1")
	require.Equal(t, http.StatusBadRequest, httpStatus(h.Log(c)))
}

func TestHeatmapSparseAndDense(t *testing.T) {
	end := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	activity := &stubActivity{
		days:   []models.HeatmapDay{{Date: "2024-05-19", ActivityCount: 2}},
		window: services.Window{Start: end.AddDate(0, 0, -2), End: end},
	}
	h := NewActivityHandler(activity)

	c, rec := newContext(http.MethodGet, "/activity/heatmap", "", "u1")
	require.NoError(t, h.Heatmap(c))
	var sparse struct {
		Activity []models.HeatmapDay `json:"activity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sparse))
	require.Len(t, sparse.Activity, 1)

	c, rec = newContext(http.MethodGet, "/activity/heatmap?dense=true", "", "u1")
	require.NoError(t, h.Heatmap(c))
	var dense struct {
		Activity []models.HeatmapDay `json:"activity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dense))
	require.Equal(t, []models.HeatmapDay{
		{Date: "2024-05-18", ActivityCount: 0},
		{Date: "2024-05-19", ActivityCount: 2},
		{Date: "2024-05-20", ActivityCount: 0},
	}, dense.Activity)
}

func TestStreaksResponse(t *testing.T) {
	h := NewActivityHandler(&stubActivity{streaks: models.Streaks{CurrentStreak: 3, LongestStreak: 7}})

	c, rec := newContext(http.MethodGet, "/", "", "u1")
	require.NoError(t, h.Streaks(c))
	require.JSONEq(t, `{"success":true,"currentStreak":3,"longestStreak":7}`, rec.Body.String())
}

func TestStreaksStoreFailure(t *testing.T) {
	h := NewActivityHandler(&stubActivity{err: errors.New("mongo down")})
	c, _ := newContext(http.MethodGet, "/", "", "u1")
	require.Equal(t, http.StatusInternalServerError, httpStatus(h.Streaks(c)))
}
