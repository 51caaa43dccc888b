package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/anonto42/lms/backend/internal/metrics"
	"github.com/anonto42/lms/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityStore is the part of the activity log the service needs.
type ActivityStore interface {
	CreateActivity(ctx context.Context, event *models.ActivityEvent) error
	ListActivityTimestamps(ctx context.Context, userID string, from, to time.Time) ([]time.Time, error)
}

// ActivityService records learner actions and derives heatmaps and streaks from them.
type ActivityService struct {
	store      ActivityStore
	windowDays int
	logger     *log.Logger
	now        func() time.Time
}

func NewActivityService(store ActivityStore, windowDays int, opts ...Option) *ActivityService {
	s := newSettings(opts)
	if windowDays <= 0 {
		windowDays = 365
	}
	return &ActivityService{
		store:      store,
		windowDays: windowDays,
		logger:     s.logger,
		now:        s.now,
	}
}

// ParseActivityInput validates a client supplied action type and optional topic id.
func ParseActivityInput(topicID, actionType string) (*primitive.ObjectID, models.ActionType, error) {
	action := models.ActionType(actionType)
	if !action.Valid() {
		return nil, "", ErrInvalidActionType
	}
	if topicID == "" {
		return nil, action, nil
	}
	id, err := primitive.ObjectIDFromHex(topicID)
	if err != nil {
		return nil, "", ErrInvalidTopicID
	}
	return &id, action, nil
}

// DefaultWindow is the trailing window ending now.
func (s *ActivityService) DefaultWindow() Window {
	return TrailingWindow(s.now().UTC(), s.windowDays)
}

// LogActivity appends an event. It never fails the caller; store errors are logged.
func (s *ActivityService) LogActivity(ctx context.Context, userID string, topicID *primitive.ObjectID, action models.ActionType) {
	if !action.Valid() {
		s.logger.Printf("activity: dropping unknown action type %q for user %s", action, userID)
		metrics.RecordActivity(metrics.UnknownActionType, ErrInvalidActionType)
		return
	}

	event := &models.ActivityEvent{
		UserID:     userID,
		TopicID:    topicID,
		ActionType: action,
		Timestamp:  s.now().UTC(),
	}
	err := s.store.CreateActivity(ctx, event)
	metrics.RecordActivity(string(action), err)
	if err != nil {
		s.logger.Printf("activity: failed to log %s for user %s: %v", action, userID, err)
	}
}

// ComputeHeatmap returns per-day activity counts in w, ascending, idle days omitted.
func (s *ActivityService) ComputeHeatmap(ctx context.Context, userID string, w Window) ([]models.HeatmapDay, error) {
	timestamps, err := s.store.ListActivityTimestamps(ctx, userID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return HeatmapFromTimestamps(timestamps), nil
}

// ComputeStreaks returns the current and longest streaks over events in w.
func (s *ActivityService) ComputeStreaks(ctx context.Context, userID string, w Window) (models.Streaks, error) {
	timestamps, err := s.store.ListActivityTimestamps(ctx, userID, w.Start, w.End)
	if err != nil {
		return models.Streaks{}, fmt.Errorf("list activity: %w", err)
	}
	return StreaksFromTimestamps(timestamps, s.now()), nil
}
