package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Roles a user can hold
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a learner or admin, keyed by Firebase UID (PostgreSQL)
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FirebaseUID string    `json:"uid" gorm:"uniqueIndex;not null"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role" gorm:"size:10;default:user;index"`
	FCMToken    *string   `json:"-"` // device token for push notifications
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// FirebaseLoginRequest defines the request body for exchanging a Firebase ID token
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UpdateFCMTokenRequest defines the request body for registering a device token
type UpdateFCMTokenRequest struct {
	Token string `json:"token" validate:"required,max=4096"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}
