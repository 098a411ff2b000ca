package models

import "time"

// Post represents a text update published by a user. Posts are never edited;
// the only mutation is deletion, which cascades to likes and comments.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content"`
	AuthorID  uint      `json:"authorId" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`

	Author   User      `json:"-" gorm:"foreignKey:AuthorID"`
	Likes    []Like    `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// PostResponse is the feed shape of a post: the post row plus author summary,
// full like rows and comments with commenter summaries.
type PostResponse struct {
	ID        uint              `json:"id"`
	Content   string            `json:"content"`
	AuthorID  uint              `json:"authorId"`
	CreatedAt time.Time         `json:"createdAt"`
	Author    UserSummary       `json:"author"`
	Likes     []Like            `json:"likes"`
	Comments  []CommentResponse `json:"comments"`
}

// Response assembles the nested feed shape from a post with preloaded
// Author, Likes and Comments (with their Users).
func (p *Post) Response() PostResponse {
	likes := p.Likes
	if likes == nil {
		likes = []Like{}
	}
	comments := make([]CommentResponse, 0, len(p.Comments))
	for i := range p.Comments {
		comments = append(comments, p.Comments[i].Response())
	}
	return PostResponse{
		ID:        p.ID,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		Author:    p.Author.Summary(),
		Likes:     likes,
		Comments:  comments,
	}
}
