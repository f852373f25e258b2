package webserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/voyago/tripdeck/pkg/db"
	"github.com/voyago/tripdeck/pkg/models"
	"github.com/voyago/tripdeck/pkg/utils"
)

// RegisterRequest represents the request to create an account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// authResponse is the body returned by register and login
type authResponse struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

// handleRegister creates a new user account and returns a session token
func (s *Server) handleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request data")
		return
	}

	req.Email = strings.ToLower(s.validator.SanitizeInput(req.Email))
	req.FullName = s.validator.SanitizeInput(req.FullName)

	if !s.validator.ValidateEmail(req.Email) {
		detail(c, http.StatusUnprocessableEntity, "Invalid email address")
		return
	}

	repo := db.NewRepository(s.db)
	if _, err := repo.GetUserByEmail(req.Email); err == nil {
		detail(c, http.StatusConflict, "Email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.logger.WithError(err).Error("Failed to hash password")
		detail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := &models.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
	}
	if err := repo.CreateUser(user); err != nil {
		s.logger.WithError(err).Error("Failed to create user")
		detail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate token")
		detail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.logger.LogAuth(user.ID, user.Email, "register", true)

	c.JSON(http.StatusCreated, authResponse{AccessToken: token, User: user})
}

// handleLogin authenticates with email/password and returns a session token
func (s *Server) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request data")
		return
	}

	repo := db.NewRepository(s.db)
	user, err := repo.GetUserByEmail(strings.ToLower(req.Email))
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			s.logger.WithError(err).Error("Failed to look up user")
		}
		s.logger.LogAuth(0, req.Email, "login", false)
		detail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.LogAuth(user.ID, user.Email, "login", false)
		detail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate token")
		detail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.logger.LogAuth(user.ID, user.Email, "login", true)

	c.JSON(http.StatusOK, authResponse{AccessToken: token, User: user})
}

// handleMe returns the current user profile
func (s *Server) handleMe(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	c.JSON(http.StatusOK, user)
}

// authMiddleware validates JWT bearer tokens
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			detail(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>" format
		tokenString := ""
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenString = authHeader[7:]
		} else {
			detail(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		// Validate token
		claims, err := s.jwtManager.ValidateToken(tokenString)
		if err != nil {
			s.logger.LogSecurity("invalid_token", 0, c.ClientIP(), map[string]interface{}{
				"error": err.Error(),
			})
			detail(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		// Get user from database
		repo := db.NewRepository(s.db)
		user, err := repo.GetUserByID(claims.UserID)
		if err != nil {
			s.logger.LogSecurity("user_not_found", claims.UserID, c.ClientIP(), map[string]interface{}{
				"error": err.Error(),
			})
			detail(c, http.StatusUnauthorized, "User not found")
			c.Abort()
			return
		}

		// Set user in context
		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// getCurrentUser gets the current user from context
func (s *Server) getCurrentUser(c *gin.Context) (*models.User, error) {
	user, exists := c.Get("user")
	if !exists {
		return nil, errNoUser
	}

	userModel, ok := user.(*models.User)
	if !ok {
		return nil, errNoUser
	}

	return userModel, nil
}
