package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/anonto42/lms/backend/internal/middleware"
	"github.com/anonto42/lms/backend/internal/models"
	"github.com/anonto42/lms/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication and profile requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	verifier       middleware.TokenVerifier
	jwtSecret      string
	jwtTTL         time.Duration
}

// NewAuthHandler creates a new AuthHandler. verifier may be nil when Firebase
// is not configured, in which case Firebase login answers 503.
func NewAuthHandler(userRepo repositories.UserRepository, verifier middleware.TokenVerifier, jwtSecret string, jwtTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		verifier:       verifier,
		jwtSecret:      jwtSecret,
		jwtTTL:         jwtTTL,
	}
}

// RegisterAuthRoutes registers unauthenticated routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/firebase-login", h.FirebaseLogin)
}

// RegisterProfileRoutes registers routes for the signed-in user
func (h *AuthHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/me", h.Me)
	g.PUT("/me/fcm-token", h.UpdateFCMToken)
}

// FirebaseLogin verifies a Firebase ID token, upserts the user and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.verifier == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Firebase login is not configured")
	}

	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, err := h.verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	user := &models.User{FirebaseUID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		user.Name = name
	}
	if err := h.userRepository.UpsertByFirebaseUID(ctx, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save user")
	}

	localJWT, err := middleware.IssueToken(h.jwtSecret, h.jwtTTL, user.FirebaseUID, user.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate local JWT")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "token": localJWT, "user": user})
}

// Me returns the signed-in user
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByFirebaseUID(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load user")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

// UpdateFCMToken stores the device token used for push notifications
func (h *AuthHandler) UpdateFCMToken(c echo.Context) error {
	uid, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateFCMTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userRepository.UpdateFCMToken(c.Request().Context(), uid, req.Token); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update token")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
