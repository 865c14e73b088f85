package handler

import (
	"net/http"
	"strconv"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user out of the gin context. On
// failure it writes the 401 envelope and returns nil; callers return
// immediately.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil
	}
	return user
}

// pathID parses the :id route parameter. On failure it writes the 400
// envelope and returns false.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}
