package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/lms/backend/internal/middleware"
	"github.com/anonto42/lms/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if idToken != "firebase-token" {
		return nil, errors.New("expired")
	}
	return &auth.Token{UID: "fb-1", Claims: map[string]interface{}{"email": "s@example.com", "name": "Sam"}}, nil
}

func TestFirebaseLoginIssuesUsableJWT(t *testing.T) {
	users := &stubUserRepo{users: map[string]*models.User{}}
	h := NewAuthHandler(users, stubVerifier{}, "secret", time.Hour)

	c, rec := newContext(http.MethodPost, "/", `{"idToken":"firebase-token"}`, "")
	require.NoError(t, h.FirebaseLogin(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, models.RoleUser, users.users["fb-1"].Role)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// the issued token passes the session middleware
	mc, _ := newContext(http.MethodGet, "/", "", "")
	mc.Request().Header.Set("Authorization", "Bearer "+body.Token)
	err := middleware.JWTAuthMiddleware("secret")(func(c echo.Context) error { return nil })(mc)
	require.NoError(t, err)
	require.Equal(t, "fb-1", mc.Get(middleware.ContextUID))
}

func TestFirebaseLoginRejectsBadToken(t *testing.T) {
	h := NewAuthHandler(&stubUserRepo{users: map[string]*models.User{}}, stubVerifier{}, "secret", time.Hour)
	c, _ := newContext(http.MethodPost, "/", `{"idToken":"forged"}`, "")
	require.Equal(t, http.StatusUnauthorized, httpStatus(h.FirebaseLogin(c)))
}

func TestFirebaseLoginUnconfigured(t *testing.T) {
	h := NewAuthHandler(&stubUserRepo{users: map[string]*models.User{}}, nil, "secret", time.Hour)
	c, _ := newContext(http.MethodPost, "/", `{"idToken":"x"}`, "")
	require.Equal(t, http.StatusServiceUnavailable, httpStatus(h.FirebaseLogin(c)))
}

func TestMeAndFCMToken(t *testing.T) {
	users := &stubUserRepo{users: map[string]*models.User{"fb-1": {FirebaseUID: "fb-1", Role: models.RoleAdmin}}}
	h := NewAuthHandler(users, nil, "secret", time.Hour)

	c, rec := newContext(http.MethodGet, "/", "", "fb-1")
	require.NoError(t, h.Me(c))
	require.Contains(t, rec.Body.String(), `"role":"admin"`)
	require.NotContains(t, rec.Body.String(), "fcm")

	c, _ = newContext(http.MethodPut, "/", `{"token":"device-1"}`, "fb-1")
	require.NoError(t, h.UpdateFCMToken(c))
	require.Equal(t, "device-1", *users.users["fb-1"].FCMToken)

	c, _ = newContext(http.MethodGet, "/", "", "ghost")
	require.Equal(t, http.StatusNotFound, httpStatus(h.Me(c)))
}
