package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sociallink-app/backend/internal/apperr"
	"github.com/sociallink-app/backend/internal/media"
	"github.com/sociallink-app/backend/internal/middleware"
	"github.com/sociallink-app/backend/internal/models"
	"github.com/sociallink-app/backend/internal/repositories"
)

// UserHandler handles profile reads, profile updates and user search
type UserHandler struct {
	userRepository repositories.UserRepository
	mediaStore     *media.Store
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, mediaStore *media.Store) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		mediaStore:     mediaStore,
	}
}

// RegisterPublicRoutes registers user routes that need no authentication
func (h *UserHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/search/:query", h.SearchUsers)
}

// RegisterProtectedRoutes registers bearer-gated user routes
func (h *UserHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.PUT("/users/profile", h.UpdateProfile)
}

// GetUser returns a user's profile with their posts, newest first
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserWithPosts(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "User not found")
		}
		return apperr.Wrap(apperr.Internal, "Database error", err)
	}

	posts := make([]models.PostResponse, 0, len(user.Posts))
	for i := range user.Posts {
		posts = append(posts, user.Posts[i].Response())
	}

	return c.JSON(http.StatusOK, models.ProfileResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Bio:    user.Bio,
		Avatar: user.Avatar,
		Posts:  posts,
	})
}

// UpdateProfile applies a partial update to the caller's profile. The body
// may be JSON or multipart form data; only a multipart body can carry an
// avatar file.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "User not found")
		}
		return apperr.Wrap(apperr.Internal, "Database error", err)
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.BadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	if isMultipart(c) {
		fh, err := c.FormFile("avatar")
		if err == nil {
			// Old avatar files are intentionally left on disk; the
			// reference is simply replaced.
			path, err := h.mediaStore.Save(user.ID, fh)
			if err != nil {
				return err
			}
			user.Avatar = path
		} else if !errors.Is(err, http.ErrMissingFile) {
			return apperr.New(apperr.BadRequest, "Invalid avatar upload")
		}
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to update profile", err)
	}

	return c.JSON(http.StatusOK, user)
}

// SearchUsers returns up to 10 users whose name or email contains the query,
// case-insensitively. Ordered by id for deterministic results.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.Param("query")
	if query == "" {
		return apperr.New(apperr.BadRequest, "Search query is required")
	}

	users, err := h.userRepository.SearchUsers(query, 10)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Search failed", err)
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return c.JSON(http.StatusOK, summaries)
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}
