package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"xelar/internal/domain"
	"xelar/internal/service"
)

// User-facing error messages for the auth flow.
const (
	msgInvalidCredentials = "Invalid credentials. Please check your details and try again."
	msgAccountExists      = "A user with this email or handle already exists."
	msgUnderage           = "You must be at least 16 years old to sign up."
)

const userContextKey = "xelar.user"

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidCredentials})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.notifications.Add(fmt.Sprintf("Welcome back, %s!", user.Name), domain.NotifySuccess)
	c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

type signupRequest struct {
	Name        string          `json:"name" binding:"required"`
	Handle      string          `json:"handle" binding:"required"`
	Email       string          `json:"email" binding:"required"`
	Password    string          `json:"password" binding:"required"`
	DateOfBirth string          `json:"dateOfBirth" binding:"required"`
	Role        domain.UserRole `json:"role" binding:"required"`
	Bio         string          `json:"bio"`
	BannerURL   string          `json:"bannerUrl"`
}

func (h *Handler) signup(c *gin.Context) {
	input, ok := h.bindSignup(c)
	if !ok {
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountExists):
			c.JSON(http.StatusConflict, gin.H{"error": msgAccountExists})
		case errors.Is(err, service.ErrUnderage):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msgUnderage})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.notifications.Add(fmt.Sprintf("Welcome back, %s!", user.Name), domain.NotifySuccess)
	c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// bindSignup accepts either a JSON body or a multipart form; the multipart
// variant may carry an avatar file which is handed to the auth service as an
// upload source.
func (h *Handler) bindSignup(c *gin.Context) (service.SignupInput, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return service.SignupInput{}, false
		}
		return service.SignupInput{
			Name:        req.Name,
			Handle:      req.Handle,
			Email:       req.Email,
			Password:    req.Password,
			DateOfBirth: req.DateOfBirth,
			Role:        req.Role,
			Bio:         req.Bio,
			BannerURL:   req.BannerURL,
		}, true
	}

	input := service.SignupInput{
		Name:        c.PostForm("name"),
		Handle:      c.PostForm("handle"),
		Email:       c.PostForm("email"),
		Password:    c.PostForm("password"),
		DateOfBirth: c.PostForm("dateOfBirth"),
		Role:        domain.UserRole(c.PostForm("role")),
		Bio:         c.PostForm("bio"),
		BannerURL:   c.PostForm("bannerUrl"),
	}

	file, header, err := c.Request.FormFile("avatar")
	if err == nil {
		defer file.Close()
		input.Avatar = file
		input.AvatarFileName = header.Filename
		input.AvatarContentType = header.Header.Get("Content-Type")
	}
	return input, true
}

func (h *Handler) logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context())
	h.notifications.Add("You have been logged out.", domain.NotifyInfo)
	c.Status(http.StatusNoContent)
}

func (h *Handler) me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatarUrl"`
	BannerURL *string `json:"bannerUrl"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), service.ProfileUpdate{
		Name:      req.Name,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		BannerURL: req.BannerURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.notifications.Add("Profile updated successfully!", domain.NotifySuccess)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// authRequired validates the bearer token and checks it against the
// persisted current session.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return h.jwtSecret, nil
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user := h.auth.CurrentUser(c.Request.Context())
		if user == nil || user.ID != claims.Subject {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set(userContextKey, *user)
		c.Next()
	}
}

func currentUser(c *gin.Context) domain.User {
	user, _ := c.Get(userContextKey)
	u, _ := user.(domain.User)
	return u
}
