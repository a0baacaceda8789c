package handlers

import (
	"net/http"
	"strings"
	"time"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.UserRepo{}
	user, hash, err := repo.GetCredentials(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email/username or password"})
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email/username or password"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(intconfig.Loaded.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Name == "":
		RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "required"})
		return
	case req.Username == "":
		RespondDomainError(c, domain.ValidationError{Field: "username", Msg: "required"})
		return
	case req.Email == "":
		RespondDomainError(c, domain.ValidationError{Field: "email", Msg: "required"})
		return
	case len(req.Password) < 6:
		RespondDomainError(c, domain.ValidationError{Field: "password", Msg: "must be at least 6 characters"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Phone:    strings.TrimSpace(req.Phone),
	}
	repo := repositories.UserRepo{}
	if err := repo.Create(c.Request.Context(), &user, string(hash)); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"user":    user,
	})
}
