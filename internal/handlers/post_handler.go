package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sociallink-app/backend/internal/apperr"
	"github.com/sociallink-app/backend/internal/middleware"
	"github.com/sociallink-app/backend/internal/models"
	"github.com/sociallink-app/backend/internal/repositories"
)

// PostHandler handles the feed and all post mutations
type PostHandler struct {
	postRepository    repositories.PostRepository
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
	userRepository    repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
		userRepository:    userRepo,
	}
}

// RegisterPublicRoutes registers post routes that need no authentication
func (h *PostHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
}

// RegisterProtectedRoutes registers bearer-gated post routes
func (h *PostHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.POST("/posts/:id/like", h.ToggleLike)
	g.POST("/posts/:id/comment", h.AddComment)
	g.DELETE("/posts/:id", h.DeletePost)
}

// GetPosts returns every post, newest first, with nested author, likes and
// comments
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts()
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to load posts", err)
	}

	responses := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, posts[i].Response())
	}
	return c.JSON(http.StatusOK, responses)
}

// CreatePost creates a new post authored by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.BadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperr.New(apperr.BadRequest, "Post content must not be empty")
	}

	post := &models.Post{
		Content:  req.Content,
		AuthorID: userID,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to create post", err)
	}

	author, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to load post author", err)
	}
	post.Author = *author

	return c.JSON(http.StatusCreated, post.Response())
}

// ToggleLike flips the caller's like on a post. The (user, post) unique
// index is the backstop for two concurrent toggles: a duplicate insert is
// answered as liked rather than as a server error.
func (h *PostHandler) ToggleLike(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Post not found")
		}
		return apperr.Wrap(apperr.Internal, "Database error", err)
	}

	like, err := h.likeRepository.GetLike(userID, postID)
	if err == nil {
		if err := h.likeRepository.DeleteLike(like.ID); err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to remove like", err)
		}
		return c.JSON(http.StatusOK, models.LikeToggleResponse{Liked: false})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.Internal, "Database error", err)
	}

	err = h.likeRepository.CreateLike(&models.Like{UserID: userID, PostID: postID})
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Wrap(apperr.Internal, "Failed to like post", err)
	}
	return c.JSON(http.StatusOK, models.LikeToggleResponse{Liked: true})
}

// AddComment appends a comment to a post
func (h *PostHandler) AddComment(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.BadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperr.New(apperr.BadRequest, "Comment content must not be empty")
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Post not found")
		}
		return apperr.Wrap(apperr.Internal, "Database error", err)
	}

	comment := &models.Comment{
		Content: req.Content,
		UserID:  userID,
		PostID:  postID,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to create comment", err)
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to load commenter", err)
	}
	comment.User = *user

	return c.JSON(http.StatusCreated, comment.Response())
}

// DeletePost removes the caller's post and cascades to its likes and
// comments
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Post not found")
		}
		return apperr.Wrap(apperr.Internal, "Database error", err)
	}

	if post.AuthorID != userID {
		return apperr.New(apperr.Forbidden, "You are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(postID); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete post", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post removed"})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.New(apperr.BadRequest, "Invalid id")
	}
	return uint(id), nil
}
