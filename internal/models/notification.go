package models

import "time"

// NotificationTypePostHighlighted is stored when a post crosses the highlight threshold
const NotificationTypePostHighlighted = "post_highlighted"

// Notification is an in-app notification for a user (PostgreSQL)
type Notification struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Type         string    `json:"type" gorm:"size:30;index"`
	RecipientUID string    `json:"recipient_uid" gorm:"index"`
	TargetID     string    `json:"target_id"`                  // post ID, course ID, etc.
	TargetType   string    `json:"target_type" gorm:"size:20"` // post, course
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}
