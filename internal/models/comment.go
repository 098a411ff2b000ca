package models

import "time"

// Comment represents a comment on a post. Comments are immutable once
// created and are removed only when their post is deleted.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content"`
	UserID    uint      `json:"userId" gorm:"index"`
	PostID    uint      `json:"postId" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

// CommentResponse is a comment plus its commenter summary.
type CommentResponse struct {
	ID        uint        `json:"id"`
	Content   string      `json:"content"`
	UserID    uint        `json:"userId"`
	PostID    uint        `json:"postId"`
	CreatedAt time.Time   `json:"createdAt"`
	User      UserSummary `json:"user"`
}

// Response assembles the wire shape from a comment with a preloaded User.
func (c *Comment) Response() CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		UserID:    c.UserID,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
		User:      c.User.Summary(),
	}
}
