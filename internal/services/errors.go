package services

import "errors"

var (
	ErrInvalidVoteType   = errors.New("voteType must be upvote or downvote")
	ErrInvalidActionType = errors.New("unknown action type")
	ErrInvalidTopicID    = errors.New("invalid topic id")
	ErrPostNotFound      = errors.New("post not found")
)
