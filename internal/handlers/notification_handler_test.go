package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/anonto42/lms/backend/internal/models"
	"github.com/stretchr/testify/require"
)

func countJSONArray(t *testing.T, raw []byte, key string) int {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &body))
	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(body[key], &items))
	return len(items)
}

func seededInbox() *stubNotificationRepo {
	return &stubNotificationRepo{rows: []models.Notification{
		{ID: 1, RecipientUID: "admin-1", Type: models.NotificationTypePostHighlighted},
		{ID: 2, RecipientUID: "admin-1", Type: models.NotificationTypePostHighlighted},
		{ID: 3, RecipientUID: "admin-2", Type: models.NotificationTypePostHighlighted},
	}}
}

func TestGetNotificationsPaginationMeta(t *testing.T) {
	h := NewNotificationHandler(seededInbox())

	c, rec := newContext(http.MethodGet, "/notifications?limit=1", "", "admin-1")
	require.NoError(t, h.GetNotifications(c))

	var body struct {
		Meta struct {
			TotalItems  int  `json:"totalItems"`
			TotalPages  int  `json:"totalPages"`
			HasNextPage bool `json:"hasNextPage"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Meta.TotalItems)
	require.Equal(t, 2, body.Meta.TotalPages)
	require.True(t, body.Meta.HasNextPage)
}

func TestMarkAsReadOnlyOwnNotifications(t *testing.T) {
	inbox := seededInbox()
	h := NewNotificationHandler(inbox)

	c, _ := newContext(http.MethodPut, "/", "", "admin-2")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.Equal(t, http.StatusNotFound, httpStatus(h.MarkAsRead(c)))

	c, _ = newContext(http.MethodPut, "/", "", "admin-1")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.MarkAsRead(c))

	c, rec := newContext(http.MethodGet, "/", "", "admin-1")
	require.NoError(t, h.GetUnreadCount(c))
	require.JSONEq(t, `{"success":true,"data":{"count":1}}`, rec.Body.String())

	c, _ = newContext(http.MethodPut, "/", "", "admin-1")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.Equal(t, http.StatusBadRequest, httpStatus(h.MarkAsRead(c)))
}

func TestMarkAllAsRead(t *testing.T) {
	inbox := seededInbox()
	h := NewNotificationHandler(inbox)

	c, _ := newContext(http.MethodPut, "/", "", "admin-1")
	require.NoError(t, h.MarkAllAsRead(c))
	require.False(t, inbox.rows[2].IsRead)
	require.True(t, inbox.rows[0].IsRead && inbox.rows[1].IsRead)
}
