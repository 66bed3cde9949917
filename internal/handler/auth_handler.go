package handler

import (
	"errors"
	"net/http"

	"revu/internal/middleware"
	"revu/internal/models"
	"revu/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc    *service.AuthService
	sessions   *service.SessionService
	cookieName string
}

func NewAuthHandler(authSvc *service.AuthService, sessions *service.SessionService, cookieName string) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, sessions: sessions, cookieName: cookieName}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username        string `json:"username" binding:"required,min=3,max=64"`
		Email           string `json:"email" binding:"required,email"`
		Password        string `json:"password" binding:"required,min=8"`
		ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
		Name            string `json:"name" binding:"required"`
		Role            string `json:"role" binding:"required,oneof=influencer advertiser"`
		ProfileImage    string `json:"profile_image"`
		Bio             string `json:"bio"`
		Followers       int    `json:"followers" binding:"min=0"`
		InstagramID     string `json:"instagram_id"`
		BlogURL         string `json:"blog_url"`
		TwitterID       string `json:"twitter_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration data", "details": err.Error()})
		return
	}
	user, err := h.authSvc.Register(service.RegisterInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Role:         req.Role,
		ProfileImage: req.ProfileImage,
		Bio:          req.Bio,
		Followers:    req.Followers,
		InstagramID:  req.InstagramID,
		BlogURL:      req.BlogURL,
		TwitterID:    req.TwitterID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists), errors.Is(err, service.ErrEmailExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	// registration logs the user in
	if err := h.issueSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}
	user, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if err := h.issueSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.GetSessionToken(c)
	if token != "" {
		if err := h.sessions.Invalidate(token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
			return
		}
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.GetUser(c))
}

func (h *AuthHandler) issueSession(c *gin.Context, user *models.User) error {
	sess, err := h.sessions.Issue(user.ID)
	if err != nil {
		return err
	}
	c.SetCookie(h.cookieName, sess.Token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	return nil
}
