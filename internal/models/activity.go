package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActionType identifies what a learner did
type ActionType string

const (
	ActionVideoView     ActionType = "VIDEO_VIEW"
	ActionNotesRead     ActionType = "NOTES_READ"
	ActionAIAsk         ActionType = "AI_ASK"
	ActionCommunityPost ActionType = "COMMUNITY_POST"
)

// Valid reports whether a is one of the known action types
func (a ActionType) Valid() bool {
	switch a {
	case ActionVideoView, ActionNotesRead, ActionAIAsk, ActionCommunityPost:
		return true
	}
	return false
}

// ActivityEvent is one append-only entry of the activity log stored in MongoDB
type ActivityEvent struct {
	ID         primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     string              `json:"user_id" bson:"user_id"`             // Firebase UID
	TopicID    *primitive.ObjectID `json:"topic_id,omitempty" bson:"topic_id"` // course reference, null when not topic-bound
	ActionType ActionType          `json:"action_type" bson:"action_type"`
	Timestamp  time.Time           `json:"timestamp" bson:"timestamp"`
}

// LogActivityRequest defines the request body for manually logging an action
type LogActivityRequest struct {
	TopicID    string `json:"topicId,omitempty"`
	ActionType string `json:"actionType" validate:"required,oneof=VIDEO_VIEW NOTES_READ AI_ASK COMMUNITY_POST"`
}

// HeatmapDay is the activity count of a single UTC calendar day
type HeatmapDay struct {
	Date          string `json:"date"` // YYYY-MM-DD
	ActivityCount int    `json:"activityCount"`
}

// Streaks summarises consecutive active days
type Streaks struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// DailyActiveUsers is the number of distinct users active on a UTC day
type DailyActiveUsers struct {
	Date  string `json:"date" bson:"date"`
	Count int    `json:"count" bson:"count"`
}

// TopicStat counts study actions against a course
type TopicStat struct {
	TopicID    primitive.ObjectID `json:"topicId" bson:"topicId"`
	Title      string             `json:"title" bson:"title"`
	StudyCount int                `json:"studyCount" bson:"studyCount"`
}
