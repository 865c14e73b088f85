package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/elizabethangel02241/finance-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// sensitivePaths carry credentials in their bodies; only the method and
// path are logged for them, never the payload.
var sensitivePaths = map[string]bool{
	"/api/auth/register":    true,
	"/api/auth/login":       true,
	"/api/profile/password": true,
}

// ActivityMiddleware records mutating requests of logged-in users.
// Reads are not logged; neither are anonymous requests.
func ActivityMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID uint
		if v, ok := c.Get("currentUser"); ok {
			if user, ok := v.(*models.User); ok && user != nil {
				userID = user.ID
			}
		}

		var bodyBytes []byte
		if c.Request.Body != nil && c.Request.Method != http.MethodGet && !sensitivePaths[c.Request.URL.Path] {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		if userID == 0 || c.Request.Method == http.MethodGet {
			return
		}

		action := c.Request.Method + " " + c.Request.URL.Path
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			action += " " + string(bodyBytes)
		}

		log := models.ActivityLog{
			UserID:    &userID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		_ = db.Create(&log).Error
	}
}
