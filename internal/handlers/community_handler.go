package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/anonto42/lms/backend/internal/middleware"
	"github.com/anonto42/lms/backend/internal/models"
	"github.com/anonto42/lms/backend/internal/repositories"
	"github.com/anonto42/lms/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// VoteCaster applies a vote to a post
type VoteCaster interface {
	CastVote(ctx context.Context, userID, postID string, voteType models.VoteType) (*services.VoteResult, error)
}

// CommunityHandler handles community posts and votes
type CommunityHandler struct {
	postRepository repositories.PostRepository
	votes          VoteCaster
	activity       ActivityLogger
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(postRepo repositories.PostRepository, votes VoteCaster, activity ActivityLogger) *CommunityHandler {
	return &CommunityHandler{
		postRepository: postRepo,
		votes:          votes,
		activity:       activity,
	}
}

// RegisterCommunityRoutes registers community routes
func (h *CommunityHandler) RegisterCommunityRoutes(g *echo.Group) {
	g.POST("/community", h.CreatePost)
	g.GET("/community", h.GetPosts)
	g.GET("/community/:postId", h.GetPost)
	g.POST("/community/:postId/vote", h.Vote)
}

// CreatePost creates a new community post
func (h *CommunityHandler) CreatePost(c echo.Context) error {
	uid, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post := &models.Post{
		AuthorID: uid,
		Title:    req.Title,
		Content:  req.Content,
	}
	if req.Link != "" {
		post.Link = &req.Link
	}

	ctx := c.Request().Context()
	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create post")
	}
	h.activity.LogActivity(ctx, uid, nil, models.ActionCommunityPost)

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "post": post})
}

// GetPosts lists posts, newest first
func (h *CommunityHandler) GetPosts(c echo.Context) error {
	skip := intQuery(c, "skip", 0, 0)
	limit := intQuery(c, "limit", 20, 100)

	posts, err := h.postRepository.GetAllPosts(c.Request().Context(), int64(skip), int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "posts": posts})
}

// GetPost retrieves a post by ID
func (h *CommunityHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("postId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "post": post})
}

// Vote casts an upvote or downvote
func (h *CommunityHandler) Vote(c echo.Context) error {
	uid, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CastVoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.votes.CastVote(c.Request().Context(), uid, c.Param("postId"), models.VoteType(req.VoteType))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidVoteType):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid vote type")
		case errors.Is(err, services.ErrPostNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		c.Logger().Errorf("vote on post %s failed: %v", c.Param("postId"), err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to process vote")
	}

	if result.AlreadyVoted {
		return c.JSON(http.StatusOK, echo.Map{
			"success":      true,
			"alreadyVoted": true,
			"message":      "Already voted",
			"post":         result.Post,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "post": result.Post})
}
