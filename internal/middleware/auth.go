package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware validates the JWT, checks the backing session is still
// live, and puts the current user into the gin context.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// 2) query param ?token=xxx, for download links that cannot set headers
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please log in again")
			c.Abort()
			return
		}

		// reject tokens whose session was revoked by logout
		if claims.SessionID != "" {
			var session models.Session
			if err := db.First(&session, "id = ?", claims.SessionID).Error; err != nil ||
				session.Revoked || session.ExpiresAt.Before(time.Now()) {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please log in again")
				c.Abort()
				return
			}
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user not found")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
			}
			c.Abort()
			return
		}

		c.Set("currentUser", &user)
		c.Set("sessionID", claims.SessionID)
		c.Next()
	}
}
