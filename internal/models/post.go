package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a community Q&A post stored in MongoDB
type Post struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID    string             `json:"author_id" bson:"author_id"` // Firebase UID of the author
	Title       string             `json:"title" bson:"title"`
	Content     string             `json:"content" bson:"content"`
	Link        *string            `json:"link,omitempty" bson:"link,omitempty"`
	Upvotes     int                `json:"upvotes" bson:"upvotes"`
	Downvotes   int                `json:"downvotes" bson:"downvotes"`
	Highlighted bool               `json:"highlighted" bson:"highlighted"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1,max=10000"`
	Link    string `json:"link,omitempty" validate:"omitempty,url"`
}
