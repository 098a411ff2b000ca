package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a registered account. The password column only ever holds
// a bcrypt hash and is excluded from JSON serialization.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password  string    `json:"-"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
	Posts     []Post    `json:"-" gorm:"foreignKey:AuthorID"`
}

// UserSummary is the trimmed author/commenter shape embedded in feed responses
// and search results.
type UserSummary struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Summary returns the public subset of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

// RegisterRequest defines the request body for account registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the request body for authentication
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for partial profile updates.
// The avatar file, when present, arrives separately as multipart form data.
type UpdateProfileRequest struct {
	Name string `json:"name,omitempty" form:"name" validate:"omitempty,min=2,max=50"`
	Bio  string `json:"bio,omitempty" form:"bio" validate:"omitempty,max=300"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// ProfileResponse is a user together with their posts, newest first.
type ProfileResponse struct {
	ID     uint           `json:"id"`
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Bio    string         `json:"bio"`
	Avatar string         `json:"avatar"`
	Posts  []PostResponse `json:"posts"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}
