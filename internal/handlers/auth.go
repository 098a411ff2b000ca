package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sociallink-app/backend/internal/apperr"
	"github.com/sociallink-app/backend/internal/models"
	"github.com/sociallink-app/backend/internal/repositories"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	userRepository repositories.UserRepository
	jwtSecret      string
	tokenTTL       time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// Register handles account creation with email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.BadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Check if user with this email already exists
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return apperr.New(apperr.Conflict, "User with this email already exists")
	}

	// Hash the password; the raw password is never stored
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to hash password", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		// The unique index backstops a concurrent registration with the
		// same email between the check above and this insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.Conflict, "User with this email already exists")
		}
		return apperr.Wrap(apperr.Internal, "Failed to create user", err)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to generate token", err)
	}

	return c.JSON(http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

// Login handles authentication with email and password. The response never
// reveals whether the email exists.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.BadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.Unauthorized, "Invalid credentials")
		}
		return apperr.Wrap(apperr.Internal, "Database error", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return apperr.New(apperr.Unauthorized, "Invalid credentials")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to generate token", err)
	}

	return c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: user})
}

// generateJWT generates a signed, time-bound token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
