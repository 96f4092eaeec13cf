package auth

import "github.com/gin-gonic/gin"

const (
	ctxKeyUserID    = "userID"
	ctxKeyUserEmail = "userEmail"
)

// GetUserID returns the authenticated user's id, or 0 when unauthenticated.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserEmail); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
