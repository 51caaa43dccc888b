package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/anonto42/lms/backend/internal/metrics"
	"github.com/anonto42/lms/backend/internal/models"
	"github.com/anonto42/lms/backend/internal/repositories"
)

// DefaultHighlightThreshold is the upvote count at which a post is highlighted.
const DefaultHighlightThreshold = 10

const notifyTimeout = 30 * time.Second

// PostReader loads posts.
type PostReader interface {
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
}

// VoteStore persists votes together with the post counters they move.
type VoteStore interface {
	GetVote(ctx context.Context, userID, postID string) (*models.Vote, error)
	ApplyVote(ctx context.Context, change models.VoteChange, rule repositories.HighlightRule) (*models.VoteOutcome, error)
}

// HighlightNotifier is told when a post becomes highlighted. It must not fail the caller.
type HighlightNotifier interface {
	PostHighlighted(ctx context.Context, post *models.Post)
}

// VoteResult is the response to a cast vote.
type VoteResult struct {
	Post         *models.Post
	AlreadyVoted bool
}

// VoteService runs the per-user vote state machine on community posts.
type VoteService struct {
	posts     PostReader
	votes     VoteStore
	notifier  HighlightNotifier
	threshold int
	logger    *log.Logger

	inflight sync.WaitGroup
}

func NewVoteService(posts PostReader, votes VoteStore, notifier HighlightNotifier, threshold int, opts ...Option) *VoteService {
	s := newSettings(opts)
	if threshold <= 0 {
		threshold = DefaultHighlightThreshold
	}
	return &VoteService{
		posts:     posts,
		votes:     votes,
		notifier:  notifier,
		threshold: threshold,
		logger:    s.logger,
	}
}

// IsHighlighted applies the highlight threshold.
func (s *VoteService) IsHighlighted(upvotes int) bool {
	return upvotes >= s.threshold
}

// CastVote records voteType for the user on the post. Re-casting the current
// vote changes nothing and reports AlreadyVoted; the opposite type flips the
// vote. There is no way back to having no vote.
func (s *VoteService) CastVote(ctx context.Context, userID, postID string, voteType models.VoteType) (*VoteResult, error) {
	if !voteType.Valid() {
		return nil, ErrInvalidVoteType
	}

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}

	change := models.VoteChange{UserID: userID, PostID: postID, To: voteType}
	existing, err := s.votes.GetVote(ctx, userID, postID)
	switch {
	case err == nil:
		if existing.VoteType == voteType {
			metrics.RecordVote(metrics.VoteAlreadyVoted)
			return &VoteResult{Post: post, AlreadyVoted: true}, nil
		}
		change.From = existing.VoteType
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("load vote: %w", err)
	}

	outcome, err := s.votes.ApplyVote(ctx, change, s.IsHighlighted)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate), errors.Is(err, repositories.ErrVoteConflict):
			// a concurrent request from the same user won
			metrics.RecordVote(metrics.VoteAlreadyVoted)
			if current, readErr := s.posts.GetPostByID(ctx, postID); readErr == nil {
				post = current
			}
			return &VoteResult{Post: post, AlreadyVoted: true}, nil
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrPostNotFound
		}
		metrics.RecordVote(metrics.VoteFailed)
		return nil, fmt.Errorf("apply vote: %w", err)
	}

	if change.From == "" {
		metrics.RecordVote(metrics.VoteCreated)
	} else {
		metrics.RecordVote(metrics.VoteFlipped)
	}

	if outcome.HighlightRaised {
		metrics.RecordHighlight()
		s.notify(ctx, *outcome.Post)
	}
	return &VoteResult{Post: outcome.Post}, nil
}

// notify hands the highlighted post to the notifier without blocking the vote.
func (s *VoteService) notify(ctx context.Context, post models.Post) {
	if s.notifier == nil {
		return
	}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Printf("vote: highlight notifier panicked for post %s: %v", post.ID.Hex(), r)
			}
		}()
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		s.notifier.PostHighlighted(notifyCtx, &post)
	}()
}

// Wait blocks until in-flight highlight notifications finish.
func (s *VoteService) Wait() {
	s.inflight.Wait()
}
