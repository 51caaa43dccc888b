package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoteType is a user's stance on a post
type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

// Valid reports whether v is upvote or downvote
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// CounterField is the post counter a vote of this type contributes to
func (v VoteType) CounterField() string {
	if v == VoteUp {
		return "upvotes"
	}
	return "downvotes"
}

// Vote is one user's current vote on one post. (user_id, post_id) is unique.
type Vote struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	PostID    primitive.ObjectID `json:"post_id" bson:"post_id"`
	VoteType  VoteType           `json:"vote_type" bson:"vote_type"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// VoteChange describes a transition to apply atomically. From is empty when the user had no vote.
type VoteChange struct {
	UserID string
	PostID string
	From   VoteType
	To     VoteType
}

// VoteOutcome is what the store reports after applying a VoteChange
type VoteOutcome struct {
	Post            *Post
	HighlightRaised bool // highlighted went from false to true in this change
}

// CastVoteRequest defines the request body for voting on a post
type CastVoteRequest struct {
	VoteType string `json:"voteType" validate:"required"`
}
