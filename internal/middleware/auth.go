package middleware

import (
	"net/http"

	"revu/internal/models"
	"revu/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionAuth resolves the session cookie to a user and sets user_id, role
// and the user itself in the gin context. Requests without a valid session
// are rejected with 401.
func SessionAuth(sessions *service.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		user, err := sessions.Resolve(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Set("user", user)
		c.Set("session_token", token)
		c.Next()
	}
}

// OptionalSession is SessionAuth that lets anonymous requests through; used
// for public reads that enrich the response when a user is logged in.
func OptionalSession(sessions *service.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err == nil && token != "" {
			if user, err := sessions.Resolve(token); err == nil {
				c.Set("user_id", user.ID)
				c.Set("role", user.Role)
				c.Set("user", user)
				c.Set("session_token", token)
			}
		}
		c.Next()
	}
}

// RequireRole checks that the authenticated user has one of the allowed roles.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		r := role.(string)
		for _, a := range allowed {
			if r == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// GetUserID returns the authenticated user ID, or 0 for anonymous requests.
func GetUserID(c *gin.Context) uint {
	v, ok := c.Get("user_id")
	if !ok {
		return 0
	}
	return v.(uint)
}

// GetUser returns the authenticated user, or nil for anonymous requests.
func GetUser(c *gin.Context) *models.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	return v.(*models.User)
}

// GetSessionToken returns the raw session token the request carried.
func GetSessionToken(c *gin.Context) string {
	v, ok := c.Get("session_token")
	if !ok {
		return ""
	}
	return v.(string)
}
