package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogHandler exposes the per-user activity trail written by the
// activity middleware.
type LogHandler struct {
	DB *gorm.DB
}

func NewLogHandler(db *gorm.DB) *LogHandler {
	return &LogHandler{DB: db}
}

type logResp struct {
	ID        uint   `json:"id"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Action    string `json:"action"`
	IP        string `json:"ip"`
	CreatedAt string `json:"created_at"`
}

// ListLogs returns the user's activity log, newest first, with
// pagination, date range, and keyword filters.
func (h *LogHandler) ListLogs(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	base := h.DB.Model(&models.ActivityLog{}).Where("user_id = ?", user.ID)

	if v := c.Query("start"); v != "" {
		start, err := time.Parse("2006-01-02", v)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start date")
			return
		}
		base = base.Where("created_at >= ?", start)
	}
	if v := c.Query("end"); v != "" {
		end, err := time.Parse("2006-01-02", v)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid end date")
			return
		}
		base = base.Where("created_at < ?", end.Add(24*time.Hour))
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		base = base.Where("path LIKE ? OR action LIKE ?", like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to count logs")
		return
	}

	var logs []models.ActivityLog
	if err := base.
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list logs")
		return
	}

	items := make([]logResp, 0, len(logs))
	for _, l := range logs {
		items = append(items, logResp{
			ID:        l.ID,
			Method:    l.Method,
			Path:      l.Path,
			Action:    l.Action,
			IP:        l.IP,
			CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	util.Success(c, util.Response{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": size,
	})
}
