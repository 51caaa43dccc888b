package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a topic backed by a YouTube playlist
type Course struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title             string             `json:"title" bson:"title"`
	Description       string             `json:"description" bson:"description"`
	YoutubePlaylistID string             `json:"youtube_playlist_id" bson:"youtube_playlist_id"`
	NotesURL          string             `json:"notes_url" bson:"notes_url"`
	CreatedBy         string             `json:"created_by" bson:"created_by"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
}

// Video is a playlist entry
type Video struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// CreateCourseRequest defines the request body for creating a course
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	PlaylistID  string `json:"playlistId" validate:"required"`
	NotesURL    string `json:"notesUrl,omitempty" validate:"omitempty,url"`
}
