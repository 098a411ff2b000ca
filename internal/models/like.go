package models

import "time"

// Like represents a like on a post. The composite unique index is the
// backstop for the like-toggle race: at most one row may exist per
// (user, post) pair no matter how requests interleave.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;uniqueIndex:idx_user_post_like"`
	PostID    uint      `json:"postId" gorm:"index;uniqueIndex:idx_user_post_like"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeToggleResponse reports the state after a toggle.
type LikeToggleResponse struct {
	Liked bool `json:"liked"`
}
